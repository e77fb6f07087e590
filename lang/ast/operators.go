package ast

import (
	"fmt"

	"github.com/anode-lang/anode/lang/symbol"
	"github.com/anode-lang/anode/lang/token"
)

// UnaryOp enumerates the unary operators of spec.md §4.3.
type UnaryOp int

//nolint:revive
const (
	UnaryNot UnaryOp = iota
	UnaryPreIncrement
	UnaryPreDecrement
	UnaryNegate
)

func (op UnaryOp) String() string {
	switch op {
	case UnaryNot:
		return "!"
	case UnaryPreIncrement:
		return "++"
	case UnaryPreDecrement:
		return "--"
	case UnaryNegate:
		return "-"
	default:
		return "?unaryop?"
	}
}

// BinaryOp enumerates the binary operators of spec.md §4.3, including
// assignment (anode treats `=` as a binary operator producing the assigned
// value).
type BinaryOp int

//nolint:revive
const (
	BinaryAssign BinaryOp = iota
	BinaryAdd
	BinarySub
	BinaryMul
	BinaryDiv
	BinaryEq
	BinaryNotEq
	BinaryLessThan
	BinaryLessThanOrEqual
	BinaryGreaterThan
	BinaryGreaterThanOrEqual
	BinaryLogicalAnd
	BinaryLogicalOr
)

func (op BinaryOp) String() string {
	switch op {
	case BinaryAssign:
		return "="
	case BinaryAdd:
		return "+"
	case BinarySub:
		return "-"
	case BinaryMul:
		return "*"
	case BinaryDiv:
		return "/"
	case BinaryEq:
		return "=="
	case BinaryNotEq:
		return "!="
	case BinaryLessThan:
		return "<"
	case BinaryLessThanOrEqual:
		return "<="
	case BinaryGreaterThan:
		return ">"
	case BinaryGreaterThanOrEqual:
		return ">="
	case BinaryLogicalAnd:
		return "&&"
	case BinaryLogicalOr:
		return "||"
	default:
		return "?binaryop?"
	}
}

// IsComparison reports whether op always yields a Bool.
func (op BinaryOp) IsComparison() bool {
	switch op {
	case BinaryEq, BinaryNotEq, BinaryLessThan, BinaryLessThanOrEqual, BinaryGreaterThan, BinaryGreaterThanOrEqual,
		BinaryLogicalAnd, BinaryLogicalOr:
		return true
	default:
		return false
	}
}

// CastKind distinguishes a cast the programmer wrote from one the
// insert-implicit-casts pass synthesized.
type CastKind int

//nolint:revive
const (
	CastExplicit CastKind = iota
	CastImplicit
)

// UnaryExpr is a prefix unary operator application.
type UnaryExpr struct {
	exprBase
	Op      UnaryOp
	Operand ExprStmt
}

func NewUnaryExpr(span token.Span, op UnaryOp, operand ExprStmt) *UnaryExpr {
	return &UnaryExpr{exprBase: newExprBase(span), Op: op, Operand: operand}
}

func (n *UnaryExpr) Format(f fmt.State, verb rune) { format(f, verb, "unary "+n.Op.String()) }
func (n *UnaryExpr) Walk(v Visitor)                { Walk(v, n.Operand) }

// BinaryExpr is an infix binary operator application, including assignment.
type BinaryExpr struct {
	exprBase
	Op    BinaryOp
	Left  ExprStmt
	Right ExprStmt
}

func NewBinaryExpr(span token.Span, op BinaryOp, left, right ExprStmt) *BinaryExpr {
	return &BinaryExpr{exprBase: newExprBase(span), Op: op, Left: left, Right: right}
}

func (n *BinaryExpr) Format(f fmt.State, verb rune) { format(f, verb, "binary "+n.Op.String()) }
func (n *BinaryExpr) Walk(v Visitor) {
	Walk(v, n.Left)
	Walk(v, n.Right)
}

// DotExpr accesses a class member (field or method) of Object
// by name. Member is populated by the resolve-dot-expression-members pass.
type DotExpr struct {
	exprBase
	Object     ExprStmt
	MemberName string
	Member     *symbol.Symbol
}

func NewDotExpr(span token.Span, object ExprStmt, memberName string) *DotExpr {
	return &DotExpr{exprBase: newExprBase(span), Object: object, MemberName: memberName}
}

func (n *DotExpr) Format(f fmt.State, verb rune) { format(f, verb, "dot ."+n.MemberName) }
func (n *DotExpr) Walk(v Visitor)                { Walk(v, n.Object) }

// MethodRefExpr is a bound method value. Neither the parser nor any sema
// pass constructs one: a method access stays a DotExpr whose Member the
// resolve-dot-expression-members pass sets to the method's symbol.
type MethodRefExpr struct {
	exprBase
	This       ExprStmt
	MethodName string
	Member     *symbol.Symbol
}

func NewMethodRefExpr(span token.Span, this ExprStmt, methodName string) *MethodRefExpr {
	return &MethodRefExpr{exprBase: newExprBase(span), This: this, MethodName: methodName}
}

func (n *MethodRefExpr) Format(f fmt.State, verb rune) { format(f, verb, "methodref "+n.MethodName) }
func (n *MethodRefExpr) Walk(v Visitor)                { Walk(v, n.This) }

// FuncCallExpr calls Callee (a function, method-ref or generic-template
// expansion) with Args.
type FuncCallExpr struct {
	exprBase
	Callee ExprStmt
	Args   []ExprStmt
}

func NewFuncCallExpr(span token.Span, callee ExprStmt, args []ExprStmt) *FuncCallExpr {
	return &FuncCallExpr{exprBase: newExprBase(span), Callee: callee, Args: args}
}

func (n *FuncCallExpr) Format(f fmt.State, verb rune) { format(f, verb, "call") }
func (n *FuncCallExpr) Walk(v Visitor) {
	Walk(v, n.Callee)
	for _, a := range n.Args {
		Walk(v, a)
	}
}

// CastExpr converts Operand's value to Target's type, either because the
// programmer wrote `cast<Target>(operand)` (CastExplicit) or because the
// insert-implicit-casts pass needed to reconcile types (CastImplicit).
type CastExpr struct {
	exprBase
	Kind    CastKind
	Target  TypeRef
	Operand ExprStmt
}

func NewCastExpr(span token.Span, kind CastKind, target TypeRef, operand ExprStmt) *CastExpr {
	n := &CastExpr{exprBase: newExprBase(span), Kind: kind, Target: target, Operand: operand}
	if kr, ok := target.(*KnownTypeRef); ok {
		n.ty = kr.Typ
	}
	return n
}

func (n *CastExpr) Format(f fmt.State, verb rune) {
	if n.Kind == CastImplicit {
		format(f, verb, "implicit cast")
	} else {
		format(f, verb, "cast")
	}
}
func (n *CastExpr) Walk(v Visitor) {
	Walk(v, n.Target)
	Walk(v, n.Operand)
}

// NewExpr instantiates Target, evaluating Args as constructor field
// initializers in declaration order.
type NewExpr struct {
	exprBase
	Target TypeRef
	Args   []ExprStmt
}

func NewNewExpr(span token.Span, target TypeRef, args []ExprStmt) *NewExpr {
	return &NewExpr{exprBase: newExprBase(span), Target: target, Args: args}
}

func (n *NewExpr) Format(f fmt.State, verb rune) { format(f, verb, "new") }
func (n *NewExpr) Walk(v Visitor) {
	Walk(v, n.Target)
	for _, a := range n.Args {
		Walk(v, a)
	}
}
