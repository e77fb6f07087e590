package ast

import (
	"fmt"

	"github.com/anode-lang/anode/lang/symbol"
	"github.com/anode-lang/anode/lang/token"
)

// CompoundExpr is a `{ ... }` block: its own lexical scope containing a
// sequence of statements. Its value type is the type of its last statement,
// or Void if empty (spec.md §3.5/§4.7).
type CompoundExpr struct {
	exprBase
	Stmts []ExprStmt
	scope *symbol.Table
}

func NewCompoundExpr(span token.Span, stmts []ExprStmt) *CompoundExpr {
	return &CompoundExpr{exprBase: newExprBase(span), Stmts: stmts}
}

func (n *CompoundExpr) Format(f fmt.State, verb rune) { format(f, verb, "compound") }
func (n *CompoundExpr) Walk(v Visitor) {
	for _, s := range n.Stmts {
		Walk(v, s)
	}
}

// Scope returns the block's own symbol table, populated by the
// populate-symbol-table pass. Implements the informal Scope() interface
// that EnclosingScope looks for.
func (n *CompoundExpr) Scope() *symbol.Table { return n.scope }

// SetScope installs the block's symbol table.
func (n *CompoundExpr) SetScope(t *symbol.Table) { n.scope = t }

// ExpressionListExpr sequences expressions without introducing a new scope,
// used for example as the three clauses are not part of anode's grammar but
// for comma-joined expression sequences. Its value type is that of its last
// element.
type ExpressionListExpr struct {
	exprBase
	Elements []ExprStmt
}

func NewExpressionListExpr(span token.Span, elements []ExprStmt) *ExpressionListExpr {
	return &ExpressionListExpr{exprBase: newExprBase(span), Elements: elements}
}

func (n *ExpressionListExpr) Format(f fmt.State, verb rune) { format(f, verb, "exprlist") }
func (n *ExpressionListExpr) Walk(v Visitor) {
	for _, e := range n.Elements {
		Walk(v, e)
	}
}

// IfExpr is a conditional expression. When both branches are present and
// their types unify (possibly via an inserted implicit cast), the IfExpr's
// value is that unified type; otherwise it is Void.
type IfExpr struct {
	exprBase
	Condition ExprStmt
	Then      ExprStmt
	Else      ExprStmt // nil when there is no else clause
}

func NewIfExpr(span token.Span, cond, then, els ExprStmt) *IfExpr {
	return &IfExpr{exprBase: newExprBase(span), Condition: cond, Then: then, Else: els}
}

func (n *IfExpr) Format(f fmt.State, verb rune) { format(f, verb, "if") }
func (n *IfExpr) Walk(v Visitor) {
	Walk(v, n.Condition)
	Walk(v, n.Then)
	if n.Else != nil {
		Walk(v, n.Else)
	}
}

// WhileExpr is a pre-tested loop. Void by construction.
type WhileExpr struct {
	voidBase
	Condition ExprStmt
	Body      ExprStmt
}

func NewWhileExpr(span token.Span, cond, body ExprStmt) *WhileExpr {
	return &WhileExpr{voidBase: voidBase{newExprBase(span)}, Condition: cond, Body: body}
}

func (n *WhileExpr) Format(f fmt.State, verb rune) { format(f, verb, "while") }
func (n *WhileExpr) Walk(v Visitor) {
	Walk(v, n.Condition)
	Walk(v, n.Body)
}

// AssertExpr evaluates Condition at runtime and aborts execution on
// failure (via the emitter ABI's __assert_failed__ hook). Void by
// construction.
type AssertExpr struct {
	voidBase
	Condition ExprStmt
}

func NewAssertExpr(span token.Span, cond ExprStmt) *AssertExpr {
	return &AssertExpr{voidBase: voidBase{newExprBase(span)}, Condition: cond}
}

func (n *AssertExpr) Format(f fmt.State, verb rune) { format(f, verb, "assert") }
func (n *AssertExpr) Walk(v Visitor)                { Walk(v, n.Condition) }
