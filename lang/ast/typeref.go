package ast

import (
	"fmt"

	"github.com/anode-lang/anode/lang/token"
	"github.com/anode-lang/anode/lang/types"
)

// TypeRef is either a KnownTypeRef (the type is already resolved, e.g. a
// type synthesized by template expansion) or a DeferredTypeRef (a name,
// possibly with generic type-argument refs, resolved by the type-resolution
// pass).
type TypeRef interface {
	Node

	// ResolvedType returns the referenced type once resolution has run. Before
	// that it returns types.Unresolved for a DeferredTypeRef.
	ResolvedType() types.Type

	typeRef() // unexported marker
}

// KnownTypeRef wraps an already-resolved Type.
type KnownTypeRef struct {
	base
	Typ types.Type
}

// NewKnownTypeRef creates a TypeRef around an already-resolved type, used
// when synthesizing AST during template expansion.
func NewKnownTypeRef(span token.Span, t types.Type) *KnownTypeRef {
	return &KnownTypeRef{base: newBase(span), Typ: t}
}

func (n *KnownTypeRef) Format(f fmt.State, verb rune) { format(f, verb, "type "+n.Typ.String()) }
func (n *KnownTypeRef) Walk(v Visitor)                {}
func (n *KnownTypeRef) ResolvedType() types.Type       { return n.Typ }
func (*KnownTypeRef) typeRef()                         {}

// DeferredTypeRef names a type by (possibly multi-part) identifier, with
// optional generic type-argument refs, e.g. "a::Foo<int>".
type DeferredTypeRef struct {
	base
	Name     []string // multi-part identifier, split on "::"
	TypeArgs []TypeRef

	deferred *types.ResolutionDeferred
}

// NewDeferredTypeRef creates an unresolved TypeRef by name.
func NewDeferredTypeRef(span token.Span, name []string, typeArgs []TypeRef) *DeferredTypeRef {
	return &DeferredTypeRef{
		base:     newBase(span),
		Name:     name,
		TypeArgs: typeArgs,
		deferred: &types.ResolutionDeferred{},
	}
}

func (n *DeferredTypeRef) Format(f fmt.State, verb rune) {
	format(f, verb, "typeref "+joinName(n.Name))
}
func (n *DeferredTypeRef) Walk(v Visitor) {
	for _, a := range n.TypeArgs {
		Walk(v, a)
	}
}
func (n *DeferredTypeRef) ResolvedType() types.Type { return n.deferred.Actual() }
func (*DeferredTypeRef) typeRef()                   {}

// Deferred returns the underlying ResolutionDeferred placeholder so the
// type-resolution pass can call Resolve on it.
func (n *DeferredTypeRef) Deferred() *types.ResolutionDeferred { return n.deferred }

func joinName(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += "::"
		}
		out += p
	}
	return out
}
