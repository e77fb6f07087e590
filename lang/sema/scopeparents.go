package sema

import (
	"github.com/anode-lang/anode/lang/ast"
	"github.com/anode-lang/anode/lang/symbol"
)

// scopeParentsPass is pass 2 (spec.md §4.5): create the symbol table owned
// by every scope-introducing node (Module, FuncDefExpr's argument scope,
// CompoundExpr, NamespaceExpr) and parent it to the nearest enclosing one.
// It relies only on the generic tree shape: a class's methods are ordinary
// FuncDefExpr nodes reached through CompleteClassDefExpr.Walk, so they get
// their own argument scope exactly like a free function's.
type scopeParentsPass struct{}

func (scopeParentsPass) Name() string { return "set-scope-parents" }

func (p scopeParentsPass) Run(ctx *Context, mod *ast.Module) { setScopeParents(ctx, mod) }

// setScopeParents is reused by the expansion passes over a cloned
// FuncDefExpr/class-def root. ctx.expansionScope, when set, seeds the stack
// so the clone's own scope is parented to the scope visible at the
// template's use site rather than floating detached.
func setScopeParents(ctx *Context, root ast.Node) {
	var stack []*symbol.Table
	if ctx.expansionScope != nil {
		stack = append(stack, ctx.expansionScope)
	}
	top := func() *symbol.Table {
		if len(stack) == 0 {
			return nil
		}
		return stack[len(stack)-1]
	}

	var v ast.VisitorFunc
	v = func(n ast.Node, dir ast.VisitDirection) ast.Visitor {
		switch t := n.(type) {
		case *ast.Module:
			if dir == ast.VisitExit {
				stack = stack[:len(stack)-1]
				return nil
			}
			sc := ctx.World.NewModuleScope()
			t.SetScope(sc)
			stack = append(stack, sc)
		case *ast.FuncDefExpr:
			if dir == ast.VisitExit {
				stack = stack[:len(stack)-1]
				return nil
			}
			sc := symbol.NewTable(top())
			t.SetScope(sc)
			stack = append(stack, sc)
		case *ast.CompoundExpr:
			if dir == ast.VisitExit {
				stack = stack[:len(stack)-1]
				return nil
			}
			sc := symbol.NewTable(top())
			t.SetScope(sc)
			stack = append(stack, sc)
		case *ast.NamespaceExpr:
			if dir == ast.VisitExit {
				stack = stack[:len(stack)-1]
				return nil
			}
			sc := symbol.NewTable(top())
			t.SetScope(sc)
			stack = append(stack, sc)
		}
		return v
	}
	ast.Walk(v, root)
}
