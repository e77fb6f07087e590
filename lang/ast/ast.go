// Package ast defines the AST model of spec.md §3.5: TypeRef nodes,
// ExprStmt nodes (the language is expression-oriented: statements are a
// subset of expressions) and the Module that owns the whole tree. Every
// node carries a process-unique NodeID, a source Span and a mutable parent
// reference installed by the parent-link semantic pass.
package ast

import (
	"fmt"
	"sync/atomic"

	"github.com/anode-lang/anode/lang/symbol"
	"github.com/anode-lang/anode/lang/token"
	"github.com/anode-lang/anode/lang/types"
)

// Node is implemented by every AST node.
type Node interface {
	fmt.Formatter

	// ID returns this node's process-unique id.
	ID() types.NodeID

	// Span reports the source range this node covers.
	Span() token.Span

	// Parent returns the enclosing node, or nil if unset or this is the
	// module root. It is only meaningful after the parent-link pass runs.
	Parent() Node

	// SetParent installs the enclosing node. Called only by the parent-link
	// pass.
	SetParent(Node)

	// Walk visits each child node to implement the Visitor pattern.
	Walk(v Visitor)
}

// ExprStmt is any of the ~25 expression/statement node variants (spec.md
// §3.5). Because the language is expression-oriented, every ExprStmt has a
// value Type, even if that type is Void by construction.
type ExprStmt interface {
	Node

	// Type returns this node's resolved value type. Before the
	// type-resolution pass runs it may be types.Unresolved.
	Type() types.Type

	// SetType assigns the resolved value type; called by the semantic
	// passes as they resolve each node's type.
	SetType(types.Type)

	exprStmt() // unexported marker, closes the union to this package
}

// VoidByConstruction is implemented by ExprStmt nodes whose value type is
// Void by construction regardless of context: declarations, loop bodies,
// namespaces and template forms (spec.md §3.5).
type VoidByConstruction interface {
	ExprStmt
	voidByConstruction()
}

var nodeCounter uint64

func nextID() types.NodeID {
	return types.NodeID(atomic.AddUint64(&nodeCounter, 1))
}

// base is embedded by every Node implementation to provide ID, Span and
// the mutable parent link.
type base struct {
	id     types.NodeID
	span   token.Span
	parent Node
}

func newBase(span token.Span) base {
	return base{id: nextID(), span: span}
}

func (b *base) ID() types.NodeID  { return b.id }
func (b *base) Span() token.Span  { return b.span }
func (b *base) Parent() Node      { return b.parent }
func (b *base) SetParent(p Node)  { b.parent = p }

// exprBase is embedded by every ExprStmt implementation, adding the
// resolved value Type on top of base.
type exprBase struct {
	base
	ty types.Type
}

func newExprBase(span token.Span) exprBase {
	return exprBase{base: newBase(span), ty: types.Unresolved}
}

func (e *exprBase) Type() types.Type     { return e.ty }
func (e *exprBase) SetType(t types.Type) { e.ty = t }
func (*exprBase) exprStmt()              {}

// voidBase additionally marks the node as VoidByConstruction.
type voidBase struct{ exprBase }

func (*voidBase) voidByConstruction() {}

// EnclosingScope walks up the parent chain starting at n (inclusive) and
// returns the nearest *symbol.Table owning scope, i.e. the innermost
// CompoundExpr, FuncDefExpr parameter scope, NamespaceExpr or Module
// scope. It returns nil if n has no enclosing scope yet (parent links or
// scopes not installed).
func EnclosingScope(n Node) *symbol.Table {
	for cur := n; cur != nil; cur = cur.Parent() {
		if sc, ok := cur.(interface{ Scope() *symbol.Table }); ok {
			if s := sc.Scope(); s != nil {
				return s
			}
		}
	}
	return nil
}

// format is the shared fmt.Formatter implementation used by every node,
// styled after the teacher's %v/%s/#/width rendering.
func format(f fmt.State, verb rune, label string) {
	if verb != 'v' && verb != 's' {
		fmt.Fprintf(f, "%%!%c(anode-node)", verb)
		return
	}
	fmt.Fprint(f, label)
}
