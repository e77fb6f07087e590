package ast

import (
	"fmt"
	"strconv"

	"github.com/anode-lang/anode/lang/token"
	"github.com/anode-lang/anode/lang/types"
)

// LiteralBoolExpr is a `true` or `false` literal.
type LiteralBoolExpr struct {
	exprBase
	Value bool
}

func NewLiteralBoolExpr(span token.Span, v bool) *LiteralBoolExpr {
	n := &LiteralBoolExpr{exprBase: newExprBase(span), Value: v}
	n.ty = types.Bool
	return n
}

func (n *LiteralBoolExpr) Format(f fmt.State, verb rune) {
	format(f, verb, "bool "+strconv.FormatBool(n.Value))
}
func (n *LiteralBoolExpr) Walk(v Visitor) {}

// LiteralInt32Expr is an integer literal.
type LiteralInt32Expr struct {
	exprBase
	Value int32
}

func NewLiteralInt32Expr(span token.Span, v int32) *LiteralInt32Expr {
	n := &LiteralInt32Expr{exprBase: newExprBase(span), Value: v}
	n.ty = types.Int32
	return n
}

func (n *LiteralInt32Expr) Format(f fmt.State, verb rune) {
	format(f, verb, "int "+strconv.FormatInt(int64(n.Value), 10))
}
func (n *LiteralInt32Expr) Walk(v Visitor) {}

// LiteralFloatExpr is a floating-point literal.
type LiteralFloatExpr struct {
	exprBase
	Value float64
}

func NewLiteralFloatExpr(span token.Span, v float64) *LiteralFloatExpr {
	n := &LiteralFloatExpr{exprBase: newExprBase(span), Value: v}
	n.ty = types.Float
	return n
}

func (n *LiteralFloatExpr) Format(f fmt.State, verb rune) {
	format(f, verb, "float "+strconv.FormatFloat(n.Value, 'g', -1, 64))
}
func (n *LiteralFloatExpr) Walk(v Visitor) {}
