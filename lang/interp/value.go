// Package interp is a tree-walking Emitter/Loader pair (lang/emitter) that
// runs a fully resolved module directly against its AST rather than
// generating LLVM IR, grounded on the teacher's lang/machine package
// (Thread, Frame, a boxed runtime Value) adapted from bytecode execution to
// direct evaluation over the already-type-checked tree. Unlike the
// teacher's Value hierarchy — built for a dynamically typed language and
// carrying Callable/Iterable/Indexable/HasMetamap/HasAttrs dispatch — every
// anode expression's type is already known by the time interp runs, so the
// value model here only needs to represent the five scalars plus class
// instances; no dynamic dispatch, attribute lookup or iteration protocol is
// needed at runtime.
package interp

import (
	"strconv"

	"github.com/anode-lang/anode/lang/types"
)

// Value is any runtime value interp produces or consumes.
type Value interface {
	String() string
	Type() types.Type
}

// Bool is a runtime bool value.
type Bool bool

func (b Bool) String() string     { return strconv.FormatBool(bool(b)) }
func (Bool) Type() types.Type     { return types.Bool }

// Int32 is a runtime int value.
type Int32 int32

func (i Int32) String() string    { return strconv.FormatInt(int64(i), 10) }
func (Int32) Type() types.Type    { return types.Int32 }

// Float32 is a runtime float value.
type Float32 float32

func (f Float32) String() string  { return strconv.FormatFloat(float64(f), 'g', -1, 32) }
func (Float32) Type() types.Type  { return types.Float }

// Float64 is a runtime double value.
type Float64 float64

func (f Float64) String() string  { return strconv.FormatFloat(float64(f), 'g', -1, 64) }
func (Float64) Type() types.Type  { return types.Double }

// Void is the sole value of type Void, returned by every
// VoidByConstruction expression.
type Void struct{}

func (Void) String() string    { return "void" }
func (Void) Type() types.Type  { return types.Void }

// Nil is the zero value of a scalar or class typed field or variable
// before it is ever assigned, carrying the static type it stands in for so
// Type() remains accurate. A class-typed field starts out Nil rather than
// a zero *Instance, since anode's classes are reference types only ever
// produced by NewExpr (new<T>()), never zero-constructed implicitly.
type Nil struct{ Of types.Type }

func (Nil) String() string    { return "nil" }
func (n Nil) Type() types.Type { return n.Of }

// cell is the indirection every declared variable and class field is
// stored behind, mirroring the teacher's lang/machine cell: assignments
// through a variable or field update the box in place. Each call frame
// starts with a fresh environment, so a nested function does not see its
// caller's local boxes.
type cell struct{ v Value }

// Instance is a heap-allocated class value, produced only by evaluating a
// NewExpr. Its Fields slice is indexed by types.Field.Ordinal.
type Instance struct {
	Class  *types.Class
	Fields []*cell
}

func (o *Instance) String() string { return o.Class.String() }
func (o *Instance) Type() types.Type {
	return o.Class
}

// zeroValue returns the value a variable or field of static type t starts
// out holding before any initializer runs.
func zeroValue(t types.Type) Value {
	if s, ok := t.Actual().(*types.Scalar); ok {
		switch s {
		case types.Bool:
			return Bool(false)
		case types.Int32:
			return Int32(0)
		case types.Float:
			return Float32(0)
		case types.Double:
			return Float64(0)
		}
	}
	return Nil{Of: t}
}
