package sema

import (
	"github.com/anode-lang/anode/lang/ast"
	"github.com/anode-lang/anode/lang/diag"
	"github.com/anode-lang/anode/lang/types"
)

// populateGenericExpansionsPass is pass 9 (spec.md §4.6): by the time pass 7
// finishes, every Class it produced already has its Fields and Methods
// populated — instantiateGeneric does this eagerly, registering the Class
// in its Generic's expansion cache before resolving its own body, so a
// self-referential field finds the same Class object instead of recursing
// forever. This pass is the safety net that catches a Generic whose
// expansion somehow never got populated — a symptom of a bug earlier in
// expansion, not a well-formed program — before it reaches the passes that
// expect every Class to carry complete field and method lists.
type populateGenericExpansionsPass struct{}

func (populateGenericExpansionsPass) Name() string { return "populate-generic-expansions" }

func (populateGenericExpansionsPass) Run(ctx *Context, mod *ast.Module) {
	var v ast.VisitorFunc
	v = func(n ast.Node, dir ast.VisitDirection) ast.Visitor {
		if dir == ast.VisitExit {
			return nil
		}
		t, ok := n.(*ast.GenericClassDefExpr)
		if !ok || t.Sym == nil {
			return v
		}
		generic, ok := t.Sym.Type.Actual().(*types.Generic)
		if !ok {
			return v
		}
		for _, c := range generic.Expansions() {
			if len(c.Fields) == 0 && len(t.Fields) > 0 {
				ctx.Errs.Add(diag.SymbolIsNotAType, t.Span(), "generic %q expansion %s never populated its fields", t.Name, c.String())
			}
		}
		return v
	}
	ast.Walk(v, mod)
}
