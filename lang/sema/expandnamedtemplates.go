package sema

import (
	"strings"

	"github.com/anode-lang/anode/lang/ast"
	"github.com/anode-lang/anode/lang/diag"
	"github.com/anode-lang/anode/lang/symbol"
	"github.com/anode-lang/anode/lang/types"
)

// expandNamedTemplatesPass is pass 6 (spec.md §4.5/§4.6): for each explicit
// `expand name<Args>` use site, clone the named template's body with its
// parameters substituted by the concrete argument types and re-run the
// parent-link, scope-parent, populate-symbol, resolve-symbol and
// resolve-types passes over the clone, so the expansion behaves exactly as
// if the programmer had written out a concrete, non-generic declaration by
// hand at that point.
type expandNamedTemplatesPass struct{}

func (expandNamedTemplatesPass) Name() string { return "expand-named-templates" }

func (expandNamedTemplatesPass) Run(ctx *Context, mod *ast.Module) {
	var v ast.VisitorFunc
	v = func(n ast.Node, dir ast.VisitDirection) ast.Visitor {
		if dir == ast.VisitExit {
			return nil
		}
		site, ok := n.(*ast.TemplateExpansionExpr)
		if !ok {
			return v
		}
		expandNamedTemplate(ctx, site)
		return v
	}
	ast.Walk(v, mod)
}

func expandNamedTemplate(ctx *Context, site *ast.TemplateExpansionExpr) {
	scope := ast.EnclosingScope(site)
	qualified := strings.Join(site.TemplateName, "::")
	sym, outcome := scope.Resolve(site.TemplateName)
	if outcome.Code != symbol.Found {
		ctx.Errs.Add(diag.SymbolNotDefined, site.Span(), "%q is not defined", qualified)
		return
	}
	if sym.Kind != symbol.Template {
		ctx.Errs.Add(diag.SymbolIsNotATemplate, site.Span(), "%q is not a template", qualified)
		return
	}
	tmpl, ok := ctx.World.LookupTemplate(sym.TemplateNode)
	if !ok {
		ctx.Errs.Add(diag.SymbolIsNotATemplate, site.Span(), "%q is not a template", qualified)
		return
	}
	if len(site.TypeArgs) != len(tmpl.ParamNames) {
		ctx.Errs.Add(diag.IncorrectNumberOfTemplateArguments, site.Span(), "template %q expects %d argument(s), got %d", qualified, len(tmpl.ParamNames), len(site.TypeArgs))
		return
	}
	if !ctx.World.BeginExpansion(tmpl.ID()) {
		ctx.Errs.Add(diag.CircularTemplateReference, site.Span(), "circular reference expanding template %q", qualified)
		return
	}
	defer ctx.World.EndExpansion(tmpl.ID())

	argTypes := make([]types.Type, len(site.TypeArgs))
	for i, a := range site.TypeArgs {
		argTypes[i] = a.ResolvedType()
	}
	clone := ast.DeepCopyExpand(tmpl.Body, tmpl.ParamNames, argTypes)

	prevScope := ctx.expansionScope
	ctx.expansionScope = scope
	setParentLinks(ctx, clone)
	setScopeParents(ctx, clone)
	populateSymbolsPass{}.runNode(ctx, clone)
	runResolveSymbols(ctx, clone)
	runResolveTypes(ctx, clone)
	ctx.expansionScope = prevScope

	site.Expanded = clone
	if fn, ok := clone.(*ast.FuncDefExpr); ok && fn.Sym != nil {
		fn.Sym.Type = functionTypeOf(fn)
		site.SetType(fn.Sym.Type)
	}
}

// functionTypeOf builds the *types.Function signature of f from its
// already-resolved return and parameter TypeRefs, defaulting a missing
// return type to Void.
func functionTypeOf(f *ast.FuncDefExpr) *types.Function {
	ret := types.Type(types.Void)
	if f.ReturnType != nil {
		ret = f.ReturnType.ResolvedType()
	}
	params := make([]types.Type, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.Type.ResolvedType()
	}
	return &types.Function{Return: ret, Params: params}
}
