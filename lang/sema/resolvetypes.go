package sema

import (
	"strings"

	"github.com/anode-lang/anode/lang/ast"
	"github.com/anode-lang/anode/lang/diag"
	"github.com/anode-lang/anode/lang/symbol"
	"github.com/anode-lang/anode/lang/types"
)

// resolveTypesPass is pass 5 (spec.md §4.5): give every DeferredTypeRef its
// Actual() type. A single-part name matching one of the five scalar
// keywords resolves directly to the matching types.Scalar singleton,
// short-circuiting scope lookup entirely. Everything else resolves through
// the enclosing scope to a Kind == Type symbol. A reference carrying
// generic type arguments (e.g. `Pair<int, bool>`) resolves its head name to
// the *types.Generic itself here — deferred.TypeArgs records the argument
// types for the expand-generics pass (pass 7) to look up or create the
// concrete *types.Class and perform the one legal Generic -> Class rewrite.
type resolveTypesPass struct{}

func (resolveTypesPass) Name() string { return "resolve-types" }

func (resolveTypesPass) Run(ctx *Context, mod *ast.Module) { runResolveTypes(ctx, mod) }

func runResolveTypes(ctx *Context, root ast.Node) {
	// Resolve on VisitExit, not VisitEnter: a reference's generic TypeArgs
	// are themselves TypeRef nodes that must already be resolved before
	// this ref's own TypeArgs (used to look up or expand a Generic) can be
	// read, so children must be processed before their parent.
	var v ast.VisitorFunc
	v = func(n ast.Node, dir ast.VisitDirection) ast.Visitor {
		if dir == ast.VisitEnter {
			return v
		}
		ref, ok := n.(*ast.DeferredTypeRef)
		if !ok {
			return nil
		}

		if len(ref.Name) == 1 {
			if sc := types.ScalarByName(ref.Name[0]); sc != nil {
				if len(ref.TypeArgs) > 0 {
					ctx.Errs.Add(diag.TypeIsNotGenericButIsReferencedWithGenericArgs, ref.Span(), "%q is not generic", ref.Name[0])
					return v
				}
				ref.Deferred().Resolve(sc)
				return v
			}
		}

		scope := ast.EnclosingScope(ref)
		sym, outcome := scope.Resolve(ref.Name)
		qualified := strings.Join(ref.Name, "::")
		switch outcome.Code {
		case symbol.Found:
			if sym.Kind != symbol.Type {
				ctx.Errs.Add(diag.SymbolIsNotAType, ref.Span(), "%q is not a type", qualified)
				return v
			}
			argTypes := make([]types.Type, len(ref.TypeArgs))
			for i, a := range ref.TypeArgs {
				argTypes[i] = a.ResolvedType()
			}
			if _, isGeneric := sym.Type.Actual().(*types.Generic); !isGeneric && len(ref.TypeArgs) > 0 {
				ctx.Errs.Add(diag.TypeIsNotGenericButIsReferencedWithGenericArgs, ref.Span(), "%q is not generic", qualified)
				return v
			}
			ref.Deferred().Resolve(sym.Type)
			ref.Deferred().TypeArgs = argTypes
		case symbol.NotFound:
			ctx.Errs.Add(diag.SymbolNotDefined, ref.Span(), "%q is not defined", qualified)
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
