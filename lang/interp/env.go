package interp

import (
	"fmt"

	"github.com/anode-lang/anode/lang/ast"
	"github.com/anode-lang/anode/lang/symbol"
	"github.com/anode-lang/anode/lang/token"
)

// env is a lexical scope of runtime variable bindings, keyed by the
// *symbol.Symbol the resolve-symbols sema pass already attached to every
// declaration and reference — no name lookup happens at run time. Modeled
// on the teacher's Frame locals array, but keyed by Symbol instead of a
// compiled slot index, since interp walks the resolved AST directly
// instead of a compiled instruction stream.
type env struct {
	vars   map[*symbol.Symbol]*cell
	parent *env
}

func newEnv(parent *env) *env {
	return &env{vars: make(map[*symbol.Symbol]*cell), parent: parent}
}

func (e *env) declare(sym *symbol.Symbol, v Value) {
	e.vars[sym] = &cell{v: v}
}

func (e *env) lookup(sym *symbol.Symbol) (*cell, bool) {
	for cur := e; cur != nil; cur = cur.parent {
		if c, ok := cur.vars[sym]; ok {
			return c, true
		}
	}
	return nil, false
}

// frame records one call to a FuncDefExpr (or nil for the module
// toplevel), mirroring the teacher's machine.Frame.
type frame struct {
	fn   *ast.FuncDefExpr
	span token.Span
}

// Thread is one sequential execution context: its own call stack and the
// currently active lexical env, sharing the Runtime's function/class
// indices and ABI host with every other Thread derived from the same
// Loader. Named and shaped after the teacher's machine.Thread.
type Thread struct {
	Name string

	rt        *Runtime
	env       *env
	callStack []*frame

	// MaxCallStackDepth limits nested calls; zero means the package default
	// (see defaultMaxCallStackDepth).
	MaxCallStackDepth int
}

const defaultMaxCallStackDepth = 4096

func newThread(rt *Runtime, name string) *Thread {
	return &Thread{Name: name, rt: rt, env: newEnv(nil)}
}

func (th *Thread) maxDepth() int {
	if th.MaxCallStackDepth > 0 {
		return th.MaxCallStackDepth
	}
	return defaultMaxCallStackDepth
}

// pushFrame installs a fresh env (parented to nil: anode functions do not
// close over their caller's locals) for the duration of a call to fn.
func (th *Thread) pushFrame(fn *ast.FuncDefExpr, span token.Span) (func(), error) {
	if len(th.callStack) >= th.maxDepth() {
		return nil, fmt.Errorf("interp: call stack depth exceeded calling %q at %s", fn.Name, span)
	}
	prevEnv := th.env
	th.env = newEnv(nil)
	th.callStack = append(th.callStack, &frame{fn: fn, span: span})
	return func() {
		th.env = prevEnv
		th.callStack = th.callStack[:len(th.callStack)-1]
	}, nil
}

// pushBlock installs a child env for the duration of a CompoundExpr.
func (th *Thread) pushBlock() func() {
	prevEnv := th.env
	th.env = newEnv(prevEnv)
	return func() { th.env = prevEnv }
}

// currentSpan returns the span of the innermost active call, or the zero
// Span at module toplevel.
func (th *Thread) currentSpan() token.Span {
	if len(th.callStack) == 0 {
		return token.Span{}
	}
	return th.callStack[len(th.callStack)-1].span
}
