package sema

import (
	"github.com/anode-lang/anode/lang/ast"
	"github.com/anode-lang/anode/lang/diag"
	"github.com/anode-lang/anode/lang/symbol"
	"github.com/anode-lang/anode/lang/token"
	"github.com/anode-lang/anode/lang/types"
)

// populateSymbolsPass is pass 3 (spec.md §4.5): declare every
// VariableDeclExpr, FuncDefExpr, class, namespace and named template into
// the scope ast.EnclosingScope finds for it, reporting
// diag.SymbolAlreadyDefinedInScope on collision within the same scope.
// Named-template bodies are declared by name only here; their contents are
// populated afresh on each expansion (pass 6), against the clone.
type populateSymbolsPass struct{}

func (populateSymbolsPass) Name() string { return "populate-symbol-tables" }

func (p populateSymbolsPass) Run(ctx *Context, mod *ast.Module) { p.runNode(ctx, mod) }

func (p populateSymbolsPass) runNode(ctx *Context, root ast.Node) {
	var v ast.VisitorFunc
	v = func(n ast.Node, dir ast.VisitDirection) ast.Visitor {
		if dir == ast.VisitExit {
			return nil
		}
		switch t := n.(type) {
		case *ast.VariableDeclExpr:
			scope := ast.EnclosingScope(t)
			sym := &symbol.Symbol{Kind: symbol.Variable, Name: t.Name, Storage: storageFor(t)}
			if scope.Declare(t.Name, sym) {
				t.Sym = sym
				ctx.recordDecl(sym, t.Span().Start)
			} else {
				p.duplicate(ctx, t.Span(), t.Name)
			}

		case *ast.FuncDefExpr:
			if _, isMethod := t.Parent().(*ast.CompleteClassDefExpr); isMethod {
				return nil // declared by the owning class case instead
			}
			if _, isMethod := t.Parent().(*ast.GenericClassDefExpr); isMethod {
				return nil
			}
			outer := ast.EnclosingScope(t.Parent())
			declareFunction(ctx, outer, t, nil)
			declareParams(ctx, t)
			return v

		case *ast.CompleteClassDefExpr:
			outer := ast.EnclosingScope(t.Parent())
			classSym := p.declareClass(ctx, outer, t.Span(), t.Name)
			class, err := ctx.World.NewClass(t.ID(), t.Name, nil, nil)
			if err != nil {
				ctx.Errs.Add(diag.SymbolAlreadyDefinedInScope, t.Span(), "%s", err)
			}
			classSym.Type = class
			t.Sym = classSym
			for _, m := range t.Methods {
				declareFunction(ctx, classSym.NamespaceScope, m, classSym)
				declareParams(ctx, m)
				ast.Walk(v, m.Body)
			}
			return nil

		case *ast.GenericClassDefExpr:
			outer := ast.EnclosingScope(t.Parent())
			classSym := p.declareClass(ctx, outer, t.Span(), t.Name)
			generic := &types.Generic{NodeID: t.ID(), Name: t.Name, ParamNames: t.GenericParamNames}
			ctx.World.RegisterGeneric(t.ID(), generic)
			ctx.World.RegisterGenericDef(t)
			classSym.Type = generic
			t.Sym = classSym
			for _, m := range t.Methods {
				declareFunction(ctx, classSym.NamespaceScope, m, classSym)
				declareParams(ctx, m)
				ast.Walk(v, m.Body)
			}
			return nil

		case *ast.NamespaceExpr:
			outer := ast.EnclosingScope(t.Parent())
			sym := &symbol.Symbol{Kind: symbol.Namespace, Name: t.Name, NamespaceScope: t.Scope()}
			if outer.Declare(t.Name, sym) {
				t.Sym = sym
			} else {
				p.duplicate(ctx, t.Span(), t.Name)
			}
			return v

		case *ast.NamedTemplateExpr:
			outer := ast.EnclosingScope(t.Parent())
			sym := &symbol.Symbol{Kind: symbol.Template, Name: t.Name, TemplateNode: t.ID()}
			if outer.Declare(t.Name, sym) {
				t.Sym = sym
				ctx.World.RegisterTemplate(t)
			} else {
				p.duplicate(ctx, t.Span(), t.Name)
			}
			return nil
		}
		return v
	}
	ast.Walk(v, root)
}

func (populateSymbolsPass) duplicate(ctx *Context, span token.Span, name string) {
	ctx.Errs.Add(diag.SymbolAlreadyDefinedInScope, span, "%q is already declared in this scope", name)
}

// declareClass declares name as a Type symbol in scope and gives it a
// private NamespaceScope used only to hold its methods' function symbols,
// so DotExpr/MethodRefExpr resolution (pass 11) has somewhere to look a
// method name up without polluting the surrounding lexical scope.
func (p populateSymbolsPass) declareClass(ctx *Context, scope *symbol.Table, span token.Span, name string) *symbol.Symbol {
	sym := &symbol.Symbol{Kind: symbol.Type, Name: name, NamespaceScope: symbol.NewTable(nil)}
	if !scope.Declare(name, sym) {
		p.duplicate(ctx, span, name)
	}
	return sym
}

// storageFor classifies a declaration by the nearest FuncDefExpr ancestor:
// inside one, it is Local (subject to the before-use-in-program-order
// check); otherwise it is a module- or namespace-level Global.
func storageFor(n ast.Node) symbol.Storage {
	for cur := n.Parent(); cur != nil; cur = cur.Parent() {
		if _, ok := cur.(*ast.FuncDefExpr); ok {
			return symbol.Local
		}
	}
	return symbol.Global
}

// declareFunction declares f's own Function symbol into scope. When
// classSym is non-nil, f is a method: its symbol carries an implicit This
// receiver bound to the class's (not yet resolved) instance type.
func declareFunction(ctx *Context, scope *symbol.Table, f *ast.FuncDefExpr, classSym *symbol.Symbol) {
	sym := &symbol.Symbol{Kind: symbol.Function, Name: f.Name, Storage: symbol.Global}
	if classSym != nil {
		sym.Storage = symbol.Instance
		sym.This = &symbol.Symbol{Kind: symbol.Variable, Name: "this", Storage: symbol.Instance, Type: classSym.Type}
		f.Scope().Declare("this", sym.This)
	}
	if scope.Declare(f.Name, sym) {
		f.Sym = sym
	} else {
		ctx.Errs.Add(diag.SymbolAlreadyDefinedInScope, f.Span(), "%q is already declared in this scope", f.Name)
	}
}

func declareParams(ctx *Context, f *ast.FuncDefExpr) {
	for _, param := range f.Params {
		sym := &symbol.Symbol{Kind: symbol.Variable, Name: param.Name, Storage: symbol.Argument}
		if f.Scope().Declare(param.Name, sym) {
			param.Sym = sym
		} else {
			ctx.Errs.Add(diag.SymbolAlreadyDefinedInScope, f.Span(), "parameter %q is already declared", param.Name)
		}
	}
}
