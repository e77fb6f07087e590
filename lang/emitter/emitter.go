// Package emitter defines the contract boundary between the resolved
// front end (lang/ast + lang/sema + lang/world) and whatever back end
// turns a fully type-checked module into something runnable. spec.md
// treats code generation as an external concern (LLVM IR + a JIT); this
// package only fixes the shape of that boundary so a real LLVM emitter,
// and the tree-walking one in lang/interp, are interchangeable behind it.
package emitter

import (
	"context"

	"github.com/anode-lang/anode/lang/ast"
	"github.com/anode-lang/anode/lang/types"
)

// Artifact is whatever an Emitter produces and a matching Loader knows how
// to load: an in-memory LLVM module for a JIT backend, or (for lang/interp)
// the resolved *ast.Module itself, ready to be walked directly.
type Artifact interface {
	// ModuleName identifies the source module this artifact was emitted
	// from, for diagnostics and REPL history.
	ModuleName() string
}

// Emitter turns a fully resolved module (every sema pass has run
// successfully) into an Artifact, mapping anode's scalar types onto the
// target's own representation via typeMap.
type Emitter interface {
	Emit(ctx context.Context, mod *ast.Module, typeMap *TypeMapping) (Artifact, error)
}

// Loader makes an emitted Artifact runnable: it resolves the module's
// initializer address, answers symbol lookups (so a REPL's later module
// can call into an earlier one), and lets the host register the ABI
// callbacks (__receive_result__, __assert_passed__, __assert_failed__,
// __malloc__) the emitted code invokes.
type Loader interface {
	Load(ctx context.Context, art Artifact) (initAddr uintptr, err error)
	FindSymbol(name string) (uintptr, error)
	SetExport(name string, addr uintptr) error
}

// TypeMapping seeds the scalar correspondence every Emitter needs between
// anode's five Scalar singletons and the target's own primitive
// representation (spec.md §4.9): an LLVM emitter would fill Width/Signed
// with the target's integer/float layout; lang/interp's emitter ignores
// it, since it evaluates scalars as Go values directly.
type TypeMapping struct {
	entries map[*types.Scalar]ScalarLayout
}

// ScalarLayout describes one scalar type's target representation.
type ScalarLayout struct {
	Name   string
	Width  int // bits; 0 for void
	Signed bool
	Float  bool
}

// NewTypeMapping seeds the standard anode scalar lattice, giving every
// Emitter the same starting point regardless of target.
func NewTypeMapping() *TypeMapping {
	m := &TypeMapping{entries: make(map[*types.Scalar]ScalarLayout, 5)}
	m.Set(types.Void, ScalarLayout{Name: "void"})
	m.Set(types.Bool, ScalarLayout{Name: "bool", Width: 1})
	m.Set(types.Int32, ScalarLayout{Name: "int", Width: 32, Signed: true})
	m.Set(types.Float, ScalarLayout{Name: "float", Width: 32, Float: true})
	m.Set(types.Double, ScalarLayout{Name: "double", Width: 64, Float: true})
	return m
}

// Set installs or overrides the layout for scalar.
func (m *TypeMapping) Set(scalar *types.Scalar, layout ScalarLayout) {
	m.entries[scalar] = layout
}

// Layout returns the layout registered for scalar, and whether one exists.
func (m *TypeMapping) Layout(scalar *types.Scalar) (ScalarLayout, bool) {
	l, ok := m.entries[scalar]
	return l, ok
}
