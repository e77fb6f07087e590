package sema

import (
	"strings"

	"github.com/anode-lang/anode/lang/ast"
	"github.com/anode-lang/anode/lang/diag"
	"github.com/anode-lang/anode/lang/types"
)

// completeDeferredRefsPass is pass 10 (spec.md §4.5): every TypeRef in the
// tree must by now resolve, through Actual(), to a concrete Scalar,
// Function or Class — never to Unresolved and never to a bare *types.Generic
// with outstanding TypeArgs (pass 7 already rewrote every such reference to
// its Class expansion). A ref still carrying either means an earlier pass
// failed to visit it and already pushed a diagnostic, or it is genuinely
// orphaned input the earlier passes had no hook for; either way it is
// reported once more here so no later pass crashes dereferencing it.
type completeDeferredRefsPass struct{}

func (completeDeferredRefsPass) Name() string { return "complete-deferred-refs" }

func (completeDeferredRefsPass) Run(ctx *Context, mod *ast.Module) {
	var v ast.VisitorFunc
	v = func(n ast.Node, dir ast.VisitDirection) ast.Visitor {
		if dir == ast.VisitEnter {
			return v
		}
		ref, ok := n.(ast.TypeRef)
		if !ok {
			return nil
		}
		actual := ref.ResolvedType().Actual()
		switch t := actual.(type) {
		case *types.Generic:
			if dr, ok := ref.(*ast.DeferredTypeRef); ok {
				ctx.Errs.Add(diag.IncorrectNumberOfTemplateArguments, ref.Span(), "%q used without its required type arguments", strings.Join(dr.Name, "::"))
			} else {
				ctx.Errs.Add(diag.SymbolIsNotAType, ref.Span(), "%q used without its required type arguments", t.Name)
			}
		default:
			if actual == types.Unresolved {
				ctx.Errs.Add(diag.SymbolIsNotAType, ref.Span(), "type could not be resolved")
			}
		}
		return nil
	}
	ast.Walk(v, mod)
}
