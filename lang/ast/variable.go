package ast

import (
	"fmt"

	"github.com/anode-lang/anode/lang/symbol"
	"github.com/anode-lang/anode/lang/token"
)

// VariableDeclExpr declares a new local, argument or field. Its value is
// Void by construction (spec.md §3.5): the declaration itself never
// produces a value, even though its Init expression does.
type VariableDeclExpr struct {
	voidBase
	Name         string
	DeclaredType TypeRef // nil when the type is to be inferred from Init
	Init         ExprStmt
	Sym          *symbol.Symbol
}

func NewVariableDeclExpr(span token.Span, name string, declaredType TypeRef, init ExprStmt) *VariableDeclExpr {
	return &VariableDeclExpr{
		voidBase:     voidBase{newExprBase(span)},
		Name:         name,
		DeclaredType: declaredType,
		Init:         init,
	}
}

func (n *VariableDeclExpr) Format(f fmt.State, verb rune) { format(f, verb, "var "+n.Name) }
func (n *VariableDeclExpr) Walk(v Visitor) {
	if n.DeclaredType != nil {
		Walk(v, n.DeclaredType)
	}
	if n.Init != nil {
		Walk(v, n.Init)
	}
}

// VariableRefExpr references a previously-declared symbol by (possibly
// multi-part, "::"-separated) name: a variable, function, type or
// namespace. Sym is populated by the resolve-symbols pass.
type VariableRefExpr struct {
	exprBase
	Name []string
	Sym  *symbol.Symbol
}

func NewVariableRefExpr(span token.Span, name []string) *VariableRefExpr {
	return &VariableRefExpr{exprBase: newExprBase(span), Name: name}
}

func (n *VariableRefExpr) Format(f fmt.State, verb rune) { format(f, verb, "ref "+joinName(n.Name)) }
func (n *VariableRefExpr) Walk(v Visitor)                {}
