// Package sema implements the thirteen semantic passes of spec.md
// §4.5–§4.7: an in-place, single-purpose-visitor-per-file pipeline that
// walks a parsed ast.Module and, on success, leaves every symbol bound,
// every type resolved and every implicit cast inserted. A pass that adds
// any diagnostic aborts the remaining passes for that module (spec.md
// §4.8) — the pipeline never runs a later pass over a partially-resolved
// tree.
package sema

import (
	"github.com/anode-lang/anode/lang/ast"
	"github.com/anode-lang/anode/lang/diag"
	"github.com/anode-lang/anode/lang/symbol"
	"github.com/anode-lang/anode/lang/token"
	"github.com/anode-lang/anode/lang/world"
)

// Context is threaded through every pass: the shared World (global scope,
// template/generic indices, expansion guard), the module's own root scope
// once pass 2 has set it, and the diagnostic stream every pass reports
// into.
type Context struct {
	World *world.World
	Errs  *diag.Stream

	// declPos records, for a Local symbol, the source position of its
	// VariableDeclExpr, so resolve-symbols (pass 4) can enforce
	// "used after declared" for locals without adding a position field to
	// every Symbol in package symbol.
	declPos map[*symbol.Symbol]token.Pos

	// expansionScope, when non-nil, is the scope a freshly cloned template
	// or generic body should be parented to when the pre-expansion passes
	// are re-run over it (its root is a FuncDefExpr or a class def, not a
	// Module, so scopeParentsPass has no module scope of its own to start
	// from). Set only around a single DeepCopyExpand + re-run sequence.
	expansionScope *symbol.Table
}

func newContext(w *world.World, errs *diag.Stream) *Context {
	return &Context{World: w, Errs: errs, declPos: make(map[*symbol.Symbol]token.Pos)}
}

func (c *Context) recordDecl(sym *symbol.Symbol, pos token.Pos) {
	c.declPos[sym] = pos
}

// declaredBefore reports whether sym's recorded declaration position is
// strictly before use, the span-start of a VariableRefExpr encountered
// during pass 4. Symbols never recorded (globals bound by a prior REPL
// module, function/class/namespace/template names, which spec.md does not
// restrict to post-declaration use) are always considered available.
func (c *Context) declaredBefore(sym *symbol.Symbol, use token.Pos) bool {
	pos, ok := c.declPos[sym]
	if !ok {
		return true
	}
	return pos < use
}

// Pass is one semantic pass over a module. It reports problems via
// ctx.Errs; the Pipeline stops running further passes once Errs has grown.
type Pass interface {
	Name() string
	Run(ctx *Context, mod *ast.Module)
}

// Pipeline runs every pass in spec.md §4.5's fixed order.
type Pipeline struct {
	Passes []Pass
}

// NewPipeline builds the standard thirteen-pass pipeline.
func NewPipeline() *Pipeline {
	return &Pipeline{Passes: []Pass{
		parentLinksPass{},
		scopeParentsPass{},
		populateSymbolsPass{},
		resolveSymbolsPass{},
		resolveTypesPass{},
		expandNamedTemplatesPass{},
		expandGenericsPass{},
		populateClassFieldsPass{},
		populateGenericExpansionsPass{},
		completeDeferredRefsPass{},
		resolveDotMembersPass{},
		insertImplicitCastsPass{},
		lateChecksPass{},
	}}
}

// Run executes every pass over mod against w, short-circuiting on the
// first pass that adds a diagnostic. It returns the accumulated
// diagnostics (nil on full success).
func (p *Pipeline) Run(w *world.World, mod *ast.Module) error {
	errs := &diag.Stream{}
	ctx := newContext(w, errs)
	for _, pass := range p.Passes {
		before := errs.Len()
		pass.Run(ctx, mod)
		if errs.Len() > before {
			break
		}
	}
	errs.Sort()
	return errs.Err()
}
