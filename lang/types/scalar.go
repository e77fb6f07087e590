package types

// Scalar is a primitive type. Scalars are singletons: identity equals type
// equality, so two *Scalar pointers denote the same type iff they are the
// same pointer.
type Scalar struct {
	name     string
	priority int // operand priority orders implicit promotions, 0 for Void
}

func (s *Scalar) String() string { return s.name }
func (s *Scalar) Actual() Type   { return s }
func (*Scalar) typ()             {}

// Priority returns the scalar's position in the implicit-promotion lattice
// (spec.md §4.6): Bool(1) < Int32(2) < Float(3) < Double(4). Void has no
// priority and never participates in casts.
func (s *Scalar) Priority() int { return s.priority }

// The singleton primitive scalar types.
var (
	Void   = &Scalar{name: "void", priority: 0}
	Bool   = &Scalar{name: "bool", priority: 1}
	Int32  = &Scalar{name: "int", priority: 2}
	Float  = &Scalar{name: "float", priority: 3}
	Double = &Scalar{name: "double", priority: 4}
)

// ScalarByName returns the singleton Scalar for one of the primitive type
// keywords ("void", "bool", "int", "float", "double"), or nil if name does
// not name a scalar.
func ScalarByName(name string) *Scalar {
	switch name {
	case "void":
		return Void
	case "bool":
		return Bool
	case "int":
		return Int32
	case "float":
		return Float
	case "double":
		return Double
	default:
		return nil
	}
}

// IsScalar reports whether t's Actual() form is a *Scalar.
func IsScalar(t Type) bool {
	_, ok := t.Actual().(*Scalar)
	return ok
}
