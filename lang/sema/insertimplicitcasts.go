package sema

import (
	"github.com/anode-lang/anode/lang/ast"
	"github.com/anode-lang/anode/lang/diag"
	"github.com/anode-lang/anode/lang/types"
)

// insertImplicitCastsPass is pass 12 (spec.md §4.6): wherever two scalar
// operand types differ but one widens to the other (types.CanImplicitCast),
// wrap the narrower operand in a CastExpr{Kind: CastImplicit} rather than
// rejecting the program outright. Checked here: arithmetic/comparison
// binary-expression operands (cast whichever side is lower-priority, in
// whichever direction is legal), logical && / || operands (each cast to
// Bool), if-condition/while-condition (which must end up Bool), the two
// branches of an if-expression used as a value, each call argument against
// its parameter type, and a function's implicit (fall-through) return value
// against its declared return type.
type insertImplicitCastsPass struct{}

func (insertImplicitCastsPass) Name() string { return "insert-implicit-casts" }

func (insertImplicitCastsPass) Run(ctx *Context, mod *ast.Module) {
	var v ast.VisitorFunc
	v = func(n ast.Node, dir ast.VisitDirection) ast.Visitor {
		if dir == ast.VisitEnter {
			return v
		}
		switch t := n.(type) {
		case *ast.BinaryExpr:
			switch t.Op {
			case ast.BinaryAssign:
			case ast.BinaryLogicalAnd, ast.BinaryLogicalOr:
				t.Left = castTo(ctx, t.Left, types.Bool, diag.InvalidImplicitCastInBinaryExpr)
				t.Right = castTo(ctx, t.Right, types.Bool, diag.InvalidImplicitCastInBinaryExpr)
			default:
				t.Left, t.Right = castBinaryOperandsOneDirection(ctx, t.Left, t.Right)
			}
		case *ast.IfExpr:
			t.Condition = castTo(ctx, t.Condition, types.Bool, diag.InvalidImplicitCastInIfCondition)
			if t.Else != nil {
				t.Then = castTo(ctx, t.Then, t.Type(), diag.InvalidImplicitCastInIfBodies)
				t.Else = castTo(ctx, t.Else, t.Type(), diag.InvalidImplicitCastInIfBodies)
			}
		case *ast.WhileExpr:
			t.Condition = castTo(ctx, t.Condition, types.Bool, diag.InvalidImplicitCastInInWhileCondition)
		case *ast.AssertExpr:
			t.Condition = castTo(ctx, t.Condition, types.Bool, diag.InvalidImplicitCastInAssertCondition)
		case *ast.FuncCallExpr:
			insertCallArgCasts(ctx, t)
		case *ast.FuncDefExpr:
			insertImplicitReturnCast(ctx, t)
		}
		return nil
	}
	ast.Walk(v, mod)
}

// castTo wraps expr in an implicit CastExpr to target if expr's type
// differs from target and the widening is legal; it returns expr unchanged
// if the types already match, and reports kind if the cast is illegal.
func castTo(ctx *Context, expr ast.ExprStmt, target types.Type, kind diag.Kind) ast.ExprStmt {
	if expr == nil || target == nil {
		return expr
	}
	if types.Same(expr.Type(), target) {
		return expr
	}
	if !types.CanImplicitCast(expr.Type(), target) {
		ctx.Errs.Add(kind, expr.Span(), "cannot implicitly convert %s to %s", expr.Type(), target)
		return expr
	}
	c := ast.NewCastExpr(expr.Span(), ast.CastImplicit, ast.NewKnownTypeRef(expr.Span(), target), expr)
	c.SetType(target)
	return c
}

// castBinaryOperandsOneDirection reconciles the two operands of an
// arithmetic or comparison BinaryExpr (spec.md §4.6,
// _examples/original_source/src/front/passes/AddImplicitCastsPass.h): cast
// the lower-priority side up to the other's type if that widening is legal;
// only if it isn't, try the reverse direction; only if neither direction is
// legal is InvalidImplicitCastInBinaryExpr reported. This is one-directional
// by construction, unlike castTo's single fixed target, so a higher-priority
// operand on the left (e.g. 2.0 + 1) is handled the same as on the right.
func castBinaryOperandsOneDirection(ctx *Context, left, right ast.ExprStmt) (ast.ExprStmt, ast.ExprStmt) {
	if types.Same(left.Type(), right.Type()) {
		return left, right
	}
	if types.CanImplicitCast(left.Type(), right.Type()) {
		return castTo(ctx, left, right.Type(), diag.InvalidImplicitCastInBinaryExpr), right
	}
	if types.CanImplicitCast(right.Type(), left.Type()) {
		return left, castTo(ctx, right, left.Type(), diag.InvalidImplicitCastInBinaryExpr)
	}
	ctx.Errs.Add(diag.InvalidImplicitCastInBinaryExpr, left.Span(), "cannot implicitly convert %s and %s to a common type", left.Type(), right.Type())
	return left, right
}

func insertCallArgCasts(ctx *Context, call *ast.FuncCallExpr) {
	fn, ok := call.Callee.Type().Actual().(*types.Function)
	if !ok {
		return
	}
	for i, arg := range call.Args {
		if i >= len(fn.Params) {
			break
		}
		call.Args[i] = castTo(ctx, arg, fn.Params[i], diag.InvalidImplicitCastInFunctionCallArgument)
	}
}

// insertImplicitReturnCast reconciles a function's body value (its implicit,
// fall-through return) against its declared return type. A single-expression
// body (`func add:int(x:int, y:int) x + y`) is cast as a whole; for a
// CompoundExpr body its last statement is cast, and an empty block is left
// alone.
func insertImplicitReturnCast(ctx *Context, f *ast.FuncDefExpr) {
	if f.ReturnType == nil {
		return
	}
	body, ok := f.Body.(*ast.CompoundExpr)
	if !ok {
		f.Body = castTo(ctx, f.Body, f.ReturnType.ResolvedType(), diag.InvalidImplicitCastInImplicitReturn)
		return
	}
	if len(body.Stmts) == 0 {
		return
	}
	last := len(body.Stmts) - 1
	body.Stmts[last] = castTo(ctx, body.Stmts[last], f.ReturnType.ResolvedType(), diag.InvalidImplicitCastInImplicitReturn)
}
