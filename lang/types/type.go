// Package types implements anode's static type hierarchy (spec.md §3.3): a
// tagged union of Unresolved, Scalar, Function, Class, Generic and
// ResolutionDeferred, with the single invariant that every type query goes
// through Actual(), which collapses resolution-deferred indirections.
package types

import "fmt"

// NodeID is a process-unique identifier assigned to every AST node at
// construction (spec.md §3.5, §9 "arena + ids instead of back-pointers").
// Class and Generic identity is defined by the NodeID of the AST node that
// declared them.
type NodeID uint64

// Type is implemented by every member of the type hierarchy.
type Type interface {
	fmt.Stringer

	// Actual collapses ResolutionDeferred indirections and returns the
	// concrete type that every arithmetic, cast and equality check must
	// compare against. For every type other than ResolutionDeferred, Actual
	// returns the receiver itself.
	Actual() Type

	typ() // unexported marker, closes the union to this package
}

// unresolvedType is the Unresolved sentinel: it never participates in
// arithmetic, casts or equality.
type unresolvedType struct{}

// Unresolved is the singleton sentinel type. It is never the Actual() of a
// successfully resolved expression.
var Unresolved Type = unresolvedType{}

func (unresolvedType) String() string { return "<unresolved>" }
func (t unresolvedType) Actual() Type { return t }
func (unresolvedType) typ()           {}

// Same reports whether a and b denote the same type once both are resolved
// to their Actual() form. Scalars compare by singleton identity; Class and
// Generic compare by NodeID (and, for Class, by type arguments, since two
// expansions of the same Generic with different arguments are distinct
// types); Function compares structurally.
func Same(a, b Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	a, b = a.Actual(), b.Actual()

	switch av := a.(type) {
	case *Scalar:
		bv, ok := b.(*Scalar)
		return ok && av == bv
	case *Function:
		bv, ok := b.(*Function)
		if !ok || len(av.Params) != len(bv.Params) {
			return false
		}
		if !Same(av.Return, bv.Return) {
			return false
		}
		for i := range av.Params {
			if !Same(av.Params[i], bv.Params[i]) {
				return false
			}
		}
		return true
	case *Class:
		bv, ok := b.(*Class)
		if !ok || av.NodeID != bv.NodeID {
			return false
		}
		return SameArgs(av.TypeArgs, bv.TypeArgs)
	case *Generic:
		bv, ok := b.(*Generic)
		return ok && av.NodeID == bv.NodeID
	case unresolvedType:
		_, ok := b.(unresolvedType)
		return ok
	default:
		return false
	}
}

// SameArgs reports whether two type-argument lists are structurally equal,
// the equality used by the Generic expansion cache (spec.md §9).
func SameArgs(a, b []Type) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Same(a[i], b[i]) {
			return false
		}
	}
	return true
}
