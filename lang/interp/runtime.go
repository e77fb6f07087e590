package interp

import (
	"context"
	"fmt"

	"github.com/anode-lang/anode/lang/ast"
	"github.com/anode-lang/anode/lang/emitter"
	"github.com/anode-lang/anode/lang/symbol"
	"github.com/anode-lang/anode/lang/types"
	"github.com/anode-lang/anode/lang/world"
)

// Artifact is what interp's Emitter produces: the resolved module itself,
// ready to be walked directly by Eval. The function index Emit builds for
// it is kept in the Runtime, not here. It satisfies emitter.Artifact.
type Artifact struct {
	mod *ast.Module
}

// ModuleName implements emitter.Artifact.
func (a *Artifact) ModuleName() string { return a.mod.Name }

// Runtime is the shared state an Emitter/Loader pair built from the same
// call to NewRuntime cooperate through: the World every module was
// resolved against (for class-definition lookup), the function index built
// incrementally as modules are emitted, the ABI Host, and the opaque
// address table Load hands back in place of a real JIT entry point.
type Runtime struct {
	world *world.World
	host  *Host

	funcs map[*symbol.Symbol]*ast.FuncDefExpr

	addrs    map[uintptr]func() error
	nextAddr uintptr
	exports  map[string]uintptr
}

// NewRuntime creates a Runtime sharing w (the World every module passed to
// Emit was resolved against) and host (the ABI callbacks). Pass the same
// Runtime to NewEmitter and NewLoader so Load can find the functions Emit
// indexed.
func NewRuntime(w *world.World, host *Host) *Runtime {
	if host == nil {
		host = &Host{}
	}
	return &Runtime{
		world:   w,
		host:    host,
		funcs:   make(map[*symbol.Symbol]*ast.FuncDefExpr),
		addrs:   make(map[uintptr]func() error),
		exports: make(map[string]uintptr),
	}
}

// NewThread creates a fresh execution context sharing rt's function index,
// class index and ABI host. Each REPL statement or script run typically
// gets its own Thread, the way the teacher spins up a new machine.Thread
// per program run.
func (rt *Runtime) NewThread(name string) *Thread {
	return newThread(rt, name)
}

// indexModule registers every FuncDefExpr in mod (top-level, nested local
// function, or class method) by its own Symbol, so a later VariableRefExpr
// or DotExpr resolving to that Symbol finds its body without re-walking
// every module ever emitted.
func (rt *Runtime) indexModule(mod *ast.Module) {
	var v ast.VisitorFunc
	v = func(n ast.Node, dir ast.VisitDirection) ast.Visitor {
		if dir == ast.VisitExit {
			return nil
		}
		if fn, ok := n.(*ast.FuncDefExpr); ok && fn.Sym != nil {
			rt.funcs[fn.Sym] = fn
		}
		return v
	}
	ast.Walk(v, mod)
}

func (rt *Runtime) lookupFunc(sym *symbol.Symbol) (*ast.FuncDefExpr, bool) {
	if sym == nil {
		return nil, false
	}
	fn, ok := rt.funcs[sym]
	return fn, ok
}

func (rt *Runtime) lookupMethod(class *types.Class, name string) *ast.FuncDefExpr {
	def, ok := rt.world.LookupClassDef(class.NodeID)
	if !ok {
		return nil
	}
	for _, m := range def.Methods {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// runModule evaluates mod's top-level statements in order against th,
// invoking the ABI's __receive_result__ hook for every statement whose
// static type is not Void.
func (rt *Runtime) runModule(th *Thread, mod *ast.Module) error {
	for _, stmt := range mod.Body {
		v, err := Eval(th, stmt)
		if err != nil {
			return fmt.Errorf("interp: running %s: %w", mod.Name, err)
		}
		if !types.Same(stmt.Type(), types.Void) && rt.host.ReceiveResult != nil {
			rt.host.ReceiveResult(mod.Name, v)
		}
	}
	return nil
}

// register stores fn under a fresh opaque address and returns it, the way
// a real Loader would return a JIT-resolved function pointer.
func (rt *Runtime) register(fn func() error) uintptr {
	rt.nextAddr++
	rt.addrs[rt.nextAddr] = fn
	return rt.nextAddr
}

// Call invokes the initializer previously returned by Loader.Load for
// addr. cmd/anode and internal/repl use this to actually run a loaded
// module after Load resolves its address.
func (rt *Runtime) Call(addr uintptr) error {
	fn, ok := rt.addrs[addr]
	if !ok {
		return fmt.Errorf("interp: no function registered at address %d", addr)
	}
	return fn()
}

// Emitter implements emitter.Emitter by wrapping the resolved module in an
// Artifact and indexing its functions into rt for Load/Call to find later.
type Emitter struct{ rt *Runtime }

// NewEmitter creates an Emitter sharing rt with a matching Loader.
func NewEmitter(rt *Runtime) *Emitter { return &Emitter{rt: rt} }

// Emit implements emitter.Emitter. typeMap is accepted to satisfy the
// contract's shape but unused: interp evaluates every scalar as the Go
// kind value.go already fixes (int32/float32/float64/bool), so there is no
// target layout to choose between.
func (e *Emitter) Emit(_ context.Context, mod *ast.Module, _ *emitter.TypeMapping) (emitter.Artifact, error) {
	e.rt.indexModule(mod)
	return &Artifact{mod: mod}, nil
}

// Loader implements emitter.Loader by registering a closure that runs the
// artifact's module on a fresh Thread, returning its opaque address.
type Loader struct{ rt *Runtime }

// NewLoader creates a Loader sharing rt with a matching Emitter.
func NewLoader(rt *Runtime) *Loader { return &Loader{rt: rt} }

// Load implements emitter.Loader.
func (l *Loader) Load(_ context.Context, art emitter.Artifact) (uintptr, error) {
	a, ok := art.(*Artifact)
	if !ok {
		return 0, fmt.Errorf("interp: loader cannot load artifact of type %T", art)
	}
	addr := l.rt.register(func() error {
		th := l.rt.NewThread(a.mod.Name)
		return l.rt.runModule(th, a.mod)
	})
	return addr, nil
}

// FindSymbol implements emitter.Loader: it answers from addresses a prior
// SetExport installed, the way a REPL's later module calls into an
// earlier one's exported functions.
func (l *Loader) FindSymbol(name string) (uintptr, error) {
	addr, ok := l.rt.exports[name]
	if !ok {
		return 0, fmt.Errorf("interp: no exported symbol %q", name)
	}
	return addr, nil
}

// SetExport implements emitter.Loader.
func (l *Loader) SetExport(name string, addr uintptr) error {
	l.rt.exports[name] = addr
	return nil
}
