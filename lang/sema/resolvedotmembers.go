package sema

import (
	"github.com/anode-lang/anode/lang/ast"
	"github.com/anode-lang/anode/lang/diag"
	"github.com/anode-lang/anode/lang/symbol"
	"github.com/anode-lang/anode/lang/types"
)

// resolveDotMembersPass is pass 11 (spec.md §4.7). It walks the tree in
// post-order, which lets it double as the bottom-up expression-type
// propagator the original pass outline left implicit: by the time a node is
// visited on VisitExit, every child already carries its resolved Type, so a
// DotExpr's Object type is known and its MemberName can be looked up against
// the Object's Class. Passes 12 (insert-implicit-casts) and 13 (late checks)
// both assume every ExprStmt's Type() is final by the time they run; this
// pass is what makes that true.
type resolveDotMembersPass struct{}

func (resolveDotMembersPass) Name() string { return "resolve-dot-members" }

func (resolveDotMembersPass) Run(ctx *Context, mod *ast.Module) {
	var v ast.VisitorFunc
	v = func(n ast.Node, dir ast.VisitDirection) ast.Visitor {
		if dir == ast.VisitEnter {
			return v
		}
		propagateType(ctx, n)
		return nil
	}
	ast.Walk(v, mod)
}

// propagateType assigns n's own Type() from its already-resolved children,
// and for a DotExpr resolves MemberName against the Object's Class.
func propagateType(ctx *Context, n ast.Node) {
	if _, ok := n.(ast.VoidByConstruction); ok {
		if e, ok := n.(ast.ExprStmt); ok {
			e.SetType(types.Void)
		}
	}

	switch t := n.(type) {
	case *ast.VariableRefExpr:
		if t.Sym != nil {
			t.SetType(t.Sym.Type)
		}

	case *ast.UnaryExpr:
		switch t.Op {
		case ast.UnaryNot:
			t.SetType(types.Bool)
		default:
			t.SetType(t.Operand.Type())
		}

	case *ast.BinaryExpr:
		if t.Op == ast.BinaryAssign {
			t.SetType(t.Left.Type())
			break
		}
		if t.Op.IsComparison() {
			t.SetType(types.Bool)
			break
		}
		t.SetType(widerScalar(t.Left.Type(), t.Right.Type()))

	case *ast.DotExpr:
		resolveDotMember(ctx, t)

	case *ast.MethodRefExpr:
		class, ok := t.This.Type().Actual().(*types.Class)
		if !ok {
			ctx.Errs.Add(diag.LeftOfDotNotClass, t.Span(), "%q is not a class value", t.MethodName)
			break
		}
		m := class.MethodByName(t.MethodName)
		if m == nil {
			ctx.Errs.Add(diag.MethodNotDefined, t.Span(), "%q has no method %q", class.Name, t.MethodName)
			break
		}
		t.SetType(m.Func)

	case *ast.FuncCallExpr:
		if fn, ok := t.Callee.Type().Actual().(*types.Function); ok {
			t.SetType(fn.Return)
		} else {
			ctx.Errs.Add(diag.ExpressionIsNotFunction, t.Span(), "cannot call a value of type %s", t.Callee.Type())
		}

	case *ast.CastExpr:
		t.SetType(t.Target.ResolvedType())

	case *ast.NewExpr:
		t.SetType(t.Target.ResolvedType())

	case *ast.CompoundExpr:
		if len(t.Stmts) == 0 {
			t.SetType(types.Void)
		} else {
			t.SetType(t.Stmts[len(t.Stmts)-1].Type())
		}

	case *ast.ExpressionListExpr:
		if len(t.Elements) == 0 {
			t.SetType(types.Void)
		} else {
			t.SetType(t.Elements[len(t.Elements)-1].Type())
		}

	case *ast.IfExpr:
		if t.Else == nil {
			t.SetType(types.Void)
			break
		}
		thenTy, elseTy := t.Then.Type(), t.Else.Type()
		if types.Same(thenTy, elseTy) {
			t.SetType(thenTy)
		} else if types.CanImplicitCast(elseTy, thenTy) || types.CanImplicitCast(thenTy, elseTy) {
			t.SetType(widerScalar(thenTy, elseTy))
		} else {
			t.SetType(types.Void)
		}

	case *ast.TemplateExpansionExpr:
		if t.Expanded != nil {
			t.SetType(t.Expanded.Type())
		}
	}
}

// widerScalar returns whichever of a, b has the higher promotion priority,
// defaulting to a when neither is a scalar or they are equal.
func widerScalar(a, b types.Type) types.Type {
	as, aok := a.Actual().(*types.Scalar)
	bs, bok := b.Actual().(*types.Scalar)
	if !aok || !bok {
		return a
	}
	if bs.Priority() > as.Priority() {
		return b
	}
	return a
}

func resolveDotMember(ctx *Context, t *ast.DotExpr) {
	class, ok := t.Object.Type().Actual().(*types.Class)
	if !ok {
		ctx.Errs.Add(diag.LeftOfDotNotClass, t.Span(), "%q is not a class value", t.MemberName)
		return
	}
	if fl := class.FieldByName(t.MemberName); fl != nil {
		t.Member = &symbol.Symbol{Kind: symbol.Variable, Name: fl.Name, Storage: symbol.Instance, Type: fl.Type}
		t.SetType(fl.Type)
		return
	}
	if m := class.MethodByName(t.MemberName); m != nil {
		t.Member = &symbol.Symbol{Kind: symbol.Function, Name: m.Name, Storage: symbol.Instance, Type: m.Func}
		t.SetType(m.Func)
		return
	}
	ctx.Errs.Add(diag.ClassMemberNotFound, t.Span(), "%s has no member %q", class.Name, t.MemberName)
}
