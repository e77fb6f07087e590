package sema

import (
	"github.com/anode-lang/anode/lang/ast"
	"github.com/anode-lang/anode/lang/diag"
	"github.com/anode-lang/anode/lang/token"
	"github.com/anode-lang/anode/lang/types"
)

// expandGenericsPass is pass 7 (spec.md §4.6): for every DeferredTypeRef
// whose head name resolved (pass 5) to a *types.Generic with one or more
// TypeArgs, produce (or reuse, from the Generic's expansion cache) the
// concrete *types.Class those arguments instantiate, then perform the one
// legal Generic -> Class rewrite on the deferred type. Unlike named-template
// expansion (pass 6), a generic class reference carries no separate use-site
// AST node of its own to rewrite — the DeferredTypeRef itself is both the
// use site and, after this pass, a plain reference to a Class.
type expandGenericsPass struct{}

func (expandGenericsPass) Name() string { return "expand-generics" }

func (expandGenericsPass) Run(ctx *Context, mod *ast.Module) {
	var v ast.VisitorFunc
	v = func(n ast.Node, dir ast.VisitDirection) ast.Visitor {
		if dir == ast.VisitEnter {
			return v
		}
		ref, ok := n.(*ast.DeferredTypeRef)
		if !ok {
			return nil
		}
		expandGenericRef(ctx, ref)
		return nil
	}
	ast.Walk(v, mod)
}

func expandGenericRef(ctx *Context, ref *ast.DeferredTypeRef) {
	deferred := ref.Deferred()
	generic, isGeneric := deferred.Actual().(*types.Generic)
	if !isGeneric || len(deferred.TypeArgs) == 0 {
		return
	}
	class := instantiateGeneric(ctx, generic, deferred.TypeArgs, ref.Span())
	if class != nil {
		deferred.Resolve(class)
	}
}

// instantiateGeneric returns the Class args instantiates generic into,
// expanding it if this is the first time this exact argument list has been
// seen. The Class is registered in the Generic's expansion cache (and in
// ctx.World's node-id table) before its own fields and methods are
// resolved, so a self-referential field (e.g. a linked list node's `next`
// field typed as the same generic applied to the same arguments) finds the
// same Class object via the cache instead of recursing forever.
func instantiateGeneric(ctx *Context, generic *types.Generic, args []types.Type, span token.Span) *types.Class {
	if cached := generic.Lookup(args); cached != nil {
		return cached
	}

	def, ok := ctx.World.LookupGenericDef(generic.NodeID)
	if !ok {
		ctx.Errs.Add(diag.SymbolIsNotAType, span, "%q has no generic definition to expand", generic.Name)
		return nil
	}
	if len(args) != len(generic.ParamNames) {
		ctx.Errs.Add(diag.IncorrectNumberOfTemplateArguments, span, "%q expects %d type argument(s), got %d", generic.Name, len(generic.ParamNames), len(args))
		return nil
	}
	if !ctx.World.BeginExpansion(generic.NodeID) {
		ctx.Errs.Add(diag.CircularTemplateReference, span, "circular reference expanding %q", generic.Name)
		return nil
	}
	defer ctx.World.EndExpansion(generic.NodeID)

	clone := ast.DeepCopyExpandClass(def, args)

	prevScope := ctx.expansionScope
	ctx.expansionScope = ctx.World.Global
	setParentLinks(ctx, clone)
	setScopeParents(ctx, clone)
	populateSymbolsPass{}.runNode(ctx, clone)
	runResolveSymbols(ctx, clone)
	runResolveTypes(ctx, clone)
	ctx.expansionScope = prevScope

	// populateSymbolsPass above already minted the Class (keyed by clone's
	// own fresh node id) when it declared clone as a CompleteClassDefExpr;
	// reuse that object rather than minting a second one under the same id.
	class, ok := clone.Sym.Type.Actual().(*types.Class)
	if !ok {
		ctx.Errs.Add(diag.SymbolIsNotAType, span, "%q did not expand into a class", generic.Name)
		return nil
	}
	class.GenericOf = generic
	class.TypeArgs = args
	generic.Register(class)

	// Expand any nested generic reference within the clone's own fields and
	// methods (including a self-reference to this same Generic+args, which
	// the Lookup cache above now short-circuits) before reading their
	// resolved types into class.Fields/Methods.
	var v ast.VisitorFunc
	v = func(n ast.Node, dir ast.VisitDirection) ast.Visitor {
		if dir == ast.VisitEnter {
			return v
		}
		if r, ok := n.(*ast.DeferredTypeRef); ok {
			expandGenericRef(ctx, r)
		}
		return nil
	}
	ast.Walk(v, clone)

	populateClassFromDef(class, clone)
	ctx.World.RegisterClassDef(class.NodeID, clone)
	return class
}
