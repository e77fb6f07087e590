package sema

import (
	"strings"

	"github.com/anode-lang/anode/lang/ast"
	"github.com/anode-lang/anode/lang/diag"
	"github.com/anode-lang/anode/lang/symbol"
)

// resolveSymbolsPass is pass 4 (spec.md §4.5): bind every VariableRefExpr
// to the symbol its name resolves to in its enclosing scope, climbing
// through the qualified-name rule of symbol.Table.Resolve for "::"
// references. A Local symbol referenced before its VariableDeclExpr's
// source position is rejected with VariableUsedBeforeDefinition even
// though it is already visible in the scope map (locals are declared into
// their block's table before the block's statements are walked by pass 3,
// so visibility alone cannot catch forward references).
type resolveSymbolsPass struct{}

func (resolveSymbolsPass) Name() string { return "resolve-symbols" }

func (resolveSymbolsPass) Run(ctx *Context, mod *ast.Module) { runResolveSymbols(ctx, mod) }

func runResolveSymbols(ctx *Context, root ast.Node) {
	var v ast.VisitorFunc
	v = func(n ast.Node, dir ast.VisitDirection) ast.Visitor {
		if dir == ast.VisitExit {
			return nil
		}
		ref, ok := n.(*ast.VariableRefExpr)
		if !ok {
			return v
		}
		scope := ast.EnclosingScope(ref)
		qualified := strings.Join(ref.Name, "::")
		sym, outcome := scope.Resolve(ref.Name)
		switch outcome.Code {
		case symbol.Found:
			if sym.Storage == symbol.Local && !ctx.declaredBefore(sym, ref.Span().Start) {
				ctx.Errs.Add(diag.VariableUsedBeforeDefinition, ref.Span(), "%q used before its declaration", qualified)
				return v
			}
			ref.Sym = sym
		case symbol.NotFound:
			ctx.Errs.Add(diag.VariableNotDefined, ref.Span(), "%q is not defined", qualified)
		case symbol.NamespaceMissing:
			ctx.Errs.Add(diag.NamespaceDoesNotExist, ref.Span(), "namespace %q does not exist", ref.Name[0])
		case symbol.NotANamespace:
			ctx.Errs.Add(diag.IdentifierIsNotNamespace, ref.Span(), "%q is not a namespace", ref.Name[0])
		case symbol.ChildNamespaceMissing:
			ctx.Errs.Add(diag.ChildNamespaceDoesNotExist, ref.Span(), "namespace %q does not exist", qualified)
		case symbol.MemberMissing:
			ctx.Errs.Add(diag.NamespaceMemberDoesNotExist, ref.Span(), "%q has no member %q", strings.Join(ref.Name[:len(ref.Name)-1], "::"), ref.Name[len(ref.Name)-1])
		case symbol.MemberNotANamespace:
			ctx.Errs.Add(diag.MemberOfNamespaceIsNotNamespace, ref.Span(), "%q is not a namespace", qualified)
		}
		return v
	}
	ast.Walk(v, root)
}
