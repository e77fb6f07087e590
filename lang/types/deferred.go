package types

// ResolutionDeferred is the placeholder type used by an ast.TypeRef until
// the type-resolution pass runs (spec.md §3.3, §9 "ResolutionDeferredType
// is a state machine"). States: Unresolved (Actual nil) -> Resolved
// (Scalar|Function|Class) or Resolved(Generic) -> (after the generic-expand
// rewrite pass) Resolved(Class). Replacing an already-resolved-to-Class
// deferred type is a fatal invariant violation (see Resolve).
type ResolutionDeferred struct {
	actual   Type
	TypeArgs []Type // type arguments as written, e.g. Foo<int> -> [Int32]
}

func (d *ResolutionDeferred) String() string {
	if d.actual == nil {
		return "<deferred>"
	}
	return d.actual.String()
}

// Actual returns the resolved type, or Unresolved if resolution has not run
// yet.
func (d *ResolutionDeferred) Actual() Type {
	if d.actual == nil {
		return Unresolved
	}
	return d.actual.Actual()
}
func (*ResolutionDeferred) typ() {}

// Resolved reports whether this deferred type has been given an actual
// type yet.
func (d *ResolutionDeferred) Resolved() bool { return d.actual != nil }

// Resolve assigns the resolved type. It panics (a fatal invariant failure,
// spec.md §7) if called twice with a Class target, since a Class
// resolution must never be replaced once made; resolving a Generic to its
// Class expansion (the one legal rewrite, spec.md §4.5 pass 10) is allowed
// exactly once more.
func (d *ResolutionDeferred) Resolve(t Type) {
	if d.actual != nil {
		if _, wasGeneric := d.actual.(*Generic); wasGeneric {
			if _, nowClass := t.(*Class); nowClass {
				d.actual = t
				return
			}
		}
		panic("types: ResolutionDeferred resolved more than once")
	}
	d.actual = t
}
