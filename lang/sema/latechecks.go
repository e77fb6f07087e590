package sema

import (
	"github.com/anode-lang/anode/lang/ast"
	"github.com/anode-lang/anode/lang/diag"
	"github.com/anode-lang/anode/lang/types"
)

// lateChecksPass is pass 13 (spec.md §4.7), the last pass: every ExprStmt's
// Type() is final by now (pass 11 propagated it, pass 12 reconciled
// mismatches with implicit casts), so this pass is pure validation —
// operator/operand compatibility, assignment target shape, explicit-cast
// legality and call-arity — with no further type computation of its own.
type lateChecksPass struct{}

func (lateChecksPass) Name() string { return "late-checks" }

func (lateChecksPass) Run(ctx *Context, mod *ast.Module) {
	var v ast.VisitorFunc
	v = func(n ast.Node, dir ast.VisitDirection) ast.Visitor {
		if dir == ast.VisitEnter {
			return v
		}
		switch t := n.(type) {
		case *ast.BinaryExpr:
			checkBinary(ctx, t)
		case *ast.UnaryExpr:
			checkUnary(ctx, t)
		case *ast.CastExpr:
			checkCast(ctx, t)
		case *ast.FuncCallExpr:
			checkCall(ctx, t)
		}
		return nil
	}
	ast.Walk(v, mod)
}

func isLValue(e ast.ExprStmt) bool {
	switch e.(type) {
	case *ast.VariableRefExpr, *ast.DotExpr:
		return true
	default:
		return false
	}
}

func checkBinary(ctx *Context, b *ast.BinaryExpr) {
	if b.Op == ast.BinaryAssign {
		if !isLValue(b.Left) {
			ctx.Errs.Add(diag.CannotAssignToLValue, b.Span(), "left-hand side of %s is not assignable", ast.BinaryAssign)
		}
		return
	}
	ls, lok := b.Left.Type().Actual().(*types.Scalar)
	rs, rok := b.Right.Type().Actual().(*types.Scalar)
	if !lok || !rok {
		ctx.Errs.Add(diag.OperatorCannotBeUsedWithType, b.Span(), "operator %s cannot be used with type %s", b.Op, b.Left.Type())
		return
	}
	switch b.Op {
	case ast.BinaryLogicalAnd, ast.BinaryLogicalOr:
		if ls != types.Bool || rs != types.Bool {
			ctx.Errs.Add(diag.OperatorCannotBeUsedWithType, b.Span(), "operator %s requires bool operands", b.Op)
		}
	case ast.BinaryAdd, ast.BinarySub, ast.BinaryMul, ast.BinaryDiv,
		ast.BinaryLessThan, ast.BinaryLessThanOrEqual, ast.BinaryGreaterThan, ast.BinaryGreaterThanOrEqual:
		if ls == types.Bool {
			ctx.Errs.Add(diag.OperatorCannotBeUsedWithType, b.Span(), "operator %s cannot be used with bool", b.Op)
		}
	}
}

func checkUnary(ctx *Context, u *ast.UnaryExpr) {
	s, ok := u.Operand.Type().Actual().(*types.Scalar)
	if !ok {
		ctx.Errs.Add(diag.OperatorCannotBeUsedWithType, u.Span(), "operator %s cannot be used with type %s", u.Op, u.Operand.Type())
		return
	}
	switch u.Op {
	case ast.UnaryNot:
		if s != types.Bool {
			ctx.Errs.Add(diag.OperatorCannotBeUsedWithType, u.Span(), "operator ! requires a bool operand")
		}
	case ast.UnaryNegate:
		if s == types.Bool {
			ctx.Errs.Add(diag.OperatorCannotBeUsedWithType, u.Span(), "operator - cannot be used with bool")
		}
	case ast.UnaryPreIncrement, ast.UnaryPreDecrement:
		if s == types.Bool {
			ctx.Errs.Add(diag.OperatorCannotBeUsedWithType, u.Span(), "operator %s cannot be used with bool", u.Op)
		}
		if !isLValue(u.Operand) {
			ctx.Errs.Add(diag.CannotAssignToLValue, u.Span(), "operand of %s is not assignable", u.Op)
		}
	}
}

func checkCast(ctx *Context, c *ast.CastExpr) {
	if c.Kind != ast.CastExplicit {
		return
	}
	if !types.CanExplicitCast(c.Operand.Type(), c.Target.ResolvedType()) {
		ctx.Errs.Add(diag.InvalidExplicitCast, c.Span(), "cannot cast %s to %s", c.Operand.Type(), c.Target.ResolvedType())
	}
}

func checkCall(ctx *Context, call *ast.FuncCallExpr) {
	fn, ok := call.Callee.Type().Actual().(*types.Function)
	if !ok {
		// propagateType (pass 11) already reported ExpressionIsNotFunction
		// for this callee; avoid a duplicate diagnostic for the same node.
		return
	}
	if len(call.Args) != len(fn.Params) {
		ctx.Errs.Add(diag.IncorrectNumberOfArguments, call.Span(), "expected %d argument(s), got %d", len(fn.Params), len(call.Args))
	}
}
