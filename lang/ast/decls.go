package ast

import (
	"fmt"

	"github.com/anode-lang/anode/lang/symbol"
	"github.com/anode-lang/anode/lang/token"
)

// ParamDecl is one formal parameter of a FuncDefExpr.
type ParamDecl struct {
	Name string
	Type TypeRef
	Sym  *symbol.Symbol
}

// FieldDecl is one field of a class definition.
type FieldDecl struct {
	Name string
	Type TypeRef
	Sym  *symbol.Symbol
}

// FuncDefExpr declares a function or method. Void by construction; the
// function value itself is referenced elsewhere via VariableRefExpr or
// MethodRefExpr.
type FuncDefExpr struct {
	voidBase
	Name       string
	Params     []*ParamDecl
	ReturnType TypeRef // nil when the return type is to be inferred
	Body       ExprStmt
	Sym        *symbol.Symbol

	scope *symbol.Table // the argument scope, parent of Body's scope (when Body is a CompoundExpr)
}

func NewFuncDefExpr(span token.Span, name string, params []*ParamDecl, returnType TypeRef, body ExprStmt) *FuncDefExpr {
	return &FuncDefExpr{
		voidBase:   voidBase{newExprBase(span)},
		Name:       name,
		Params:     params,
		ReturnType: returnType,
		Body:       body,
	}
}

func (n *FuncDefExpr) Format(f fmt.State, verb rune) { format(f, verb, "func "+n.Name) }
func (n *FuncDefExpr) Walk(v Visitor) {
	for _, p := range n.Params {
		Walk(v, p.Type)
	}
	if n.ReturnType != nil {
		Walk(v, n.ReturnType)
	}
	Walk(v, n.Body)
}

// Scope returns the function's argument scope.
func (n *FuncDefExpr) Scope() *symbol.Table { return n.scope }

// SetScope installs the function's argument scope.
func (n *FuncDefExpr) SetScope(t *symbol.Table) { n.scope = t }

// CompleteClassDefExpr declares a non-generic class with concrete field and
// method types. Void by construction.
type CompleteClassDefExpr struct {
	voidBase
	Name    string
	Fields  []*FieldDecl
	Methods []*FuncDefExpr
	Sym     *symbol.Symbol
}

func NewCompleteClassDefExpr(span token.Span, name string, fields []*FieldDecl, methods []*FuncDefExpr) *CompleteClassDefExpr {
	return &CompleteClassDefExpr{voidBase: voidBase{newExprBase(span)}, Name: name, Fields: fields, Methods: methods}
}

func (n *CompleteClassDefExpr) Format(f fmt.State, verb rune) { format(f, verb, "class "+n.Name) }
func (n *CompleteClassDefExpr) Walk(v Visitor) {
	for _, fl := range n.Fields {
		Walk(v, fl.Type)
	}
	for _, m := range n.Methods {
		Walk(v, m)
	}
}

// GenericClassDefExpr declares a class template parameterized over
// GenericParamNames; it is expanded into a CompleteClassDefExpr-shaped
// types.Class for each distinct set of type arguments it is used with
// (spec.md §4.6 named-template / generic expansion passes). Void by
// construction.
type GenericClassDefExpr struct {
	voidBase
	Name              string
	GenericParamNames []string
	Fields            []*FieldDecl
	Methods           []*FuncDefExpr
	Sym               *symbol.Symbol
}

func NewGenericClassDefExpr(span token.Span, name string, genericParamNames []string, fields []*FieldDecl, methods []*FuncDefExpr) *GenericClassDefExpr {
	return &GenericClassDefExpr{
		voidBase:          voidBase{newExprBase(span)},
		Name:              name,
		GenericParamNames: genericParamNames,
		Fields:            fields,
		Methods:           methods,
	}
}

func (n *GenericClassDefExpr) Format(f fmt.State, verb rune) {
	format(f, verb, "genericclass "+n.Name)
}
func (n *GenericClassDefExpr) Walk(v Visitor) {
	for _, fl := range n.Fields {
		Walk(v, fl.Type)
	}
	for _, m := range n.Methods {
		Walk(v, m)
	}
}

// NamespaceExpr groups declarations under a qualified name. Void by
// construction.
type NamespaceExpr struct {
	voidBase
	Name string
	Body []ExprStmt
	Sym  *symbol.Symbol

	scope *symbol.Table
}

func NewNamespaceExpr(span token.Span, name string, body []ExprStmt) *NamespaceExpr {
	return &NamespaceExpr{voidBase: voidBase{newExprBase(span)}, Name: name, Body: body}
}

func (n *NamespaceExpr) Format(f fmt.State, verb rune) { format(f, verb, "namespace "+n.Name) }
func (n *NamespaceExpr) Walk(v Visitor) {
	for _, b := range n.Body {
		Walk(v, b)
	}
}

// Scope returns the namespace's own symbol table.
func (n *NamespaceExpr) Scope() *symbol.Table { return n.scope }

// SetScope installs the namespace's symbol table.
func (n *NamespaceExpr) SetScope(t *symbol.Table) { n.scope = t }

// NamedTemplateExpr declares a named function or class template: Body is
// expanded once per distinct set of type arguments the template is
// referenced with (spec.md §4.6). Void by construction.
type NamedTemplateExpr struct {
	voidBase
	Name       string
	ParamNames []string
	Body       ExprStmt // a FuncDefExpr or a CompleteClassDefExpr
	Sym        *symbol.Symbol
}

func NewNamedTemplateExpr(span token.Span, name string, paramNames []string, body ExprStmt) *NamedTemplateExpr {
	return &NamedTemplateExpr{voidBase: voidBase{newExprBase(span)}, Name: name, ParamNames: paramNames, Body: body}
}

func (n *NamedTemplateExpr) Format(f fmt.State, verb rune) { format(f, verb, "template "+n.Name) }
func (n *NamedTemplateExpr) Walk(v Visitor)                { Walk(v, n.Body) }

// TemplateExpansionExpr is the use site of a named template with explicit
// type arguments, e.g. `Pair<int, Foo>`. The expand-named-templates pass
// clones the template body, substitutes TypeArgs for the template's
// parameters, and rewrites this node's Expanded field to point at the
// resulting declaration.
type TemplateExpansionExpr struct {
	exprBase
	TemplateName []string
	TypeArgs     []TypeRef
	Expanded     ExprStmt
}

func NewTemplateExpansionExpr(span token.Span, templateName []string, typeArgs []TypeRef) *TemplateExpansionExpr {
	return &TemplateExpansionExpr{exprBase: newExprBase(span), TemplateName: templateName, TypeArgs: typeArgs}
}

func (n *TemplateExpansionExpr) Format(f fmt.State, verb rune) {
	format(f, verb, "expand "+joinName(n.TemplateName))
}
func (n *TemplateExpansionExpr) Walk(v Visitor) {
	for _, a := range n.TypeArgs {
		Walk(v, a)
	}
	if n.Expanded != nil {
		Walk(v, n.Expanded)
	}
}
