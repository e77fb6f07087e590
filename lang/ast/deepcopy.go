package ast

import "github.com/anode-lang/anode/lang/types"

// DeepCopyExpand clones body, substituting any single-part DeferredTypeRef
// whose name matches one of paramNames with a KnownTypeRef wrapping the
// corresponding entry of args. It is used by the expand-named-templates and
// expand-generics passes (spec.md §4.6): the clone is a fresh, unresolved
// subtree (no Parent, Scope or Sym carried over) that the pipeline's
// earlier passes run again from scratch.
func DeepCopyExpand(body ExprStmt, paramNames []string, args []types.Type) ExprStmt {
	subst := make(map[string]types.Type, len(paramNames))
	for i, n := range paramNames {
		if i < len(args) {
			subst[n] = args[i]
		}
	}
	return deepCopyExpr(body, subst)
}

// DeepCopyExpandClass clones def's fields and methods with GenericParamNames
// substituted by args, producing a CompleteClassDefExpr shaped node that
// mints its own fresh node id — the expand-generics pass (spec.md §4.6)
// uses that id to construct the types.Class a Generic instantiation
// resolves to.
func DeepCopyExpandClass(def *GenericClassDefExpr, args []types.Type) *CompleteClassDefExpr {
	subst := make(map[string]types.Type, len(def.GenericParamNames))
	for i, n := range def.GenericParamNames {
		if i < len(args) {
			subst[n] = args[i]
		}
	}
	return NewCompleteClassDefExpr(def.Span(), def.Name, deepCopyFields(def.Fields, subst), deepCopyMethods(def.Methods, subst))
}

func deepCopyType(t TypeRef, subst map[string]types.Type) TypeRef {
	if t == nil {
		return nil
	}
	switch n := t.(type) {
	case *KnownTypeRef:
		return NewKnownTypeRef(n.Span(), n.Typ)
	case *DeferredTypeRef:
		if len(n.Name) == 1 {
			if ty, ok := subst[n.Name[0]]; ok {
				return NewKnownTypeRef(n.Span(), ty)
			}
		}
		args := make([]TypeRef, len(n.TypeArgs))
		for i, a := range n.TypeArgs {
			args[i] = deepCopyType(a, subst)
		}
		return NewDeferredTypeRef(n.Span(), append([]string(nil), n.Name...), args)
	default:
		return t
	}
}

func deepCopyParams(params []*ParamDecl, subst map[string]types.Type) []*ParamDecl {
	out := make([]*ParamDecl, len(params))
	for i, p := range params {
		out[i] = &ParamDecl{Name: p.Name, Type: deepCopyType(p.Type, subst)}
	}
	return out
}

func deepCopyFields(fields []*FieldDecl, subst map[string]types.Type) []*FieldDecl {
	out := make([]*FieldDecl, len(fields))
	for i, fl := range fields {
		out[i] = &FieldDecl{Name: fl.Name, Type: deepCopyType(fl.Type, subst)}
	}
	return out
}

func deepCopyMethods(methods []*FuncDefExpr, subst map[string]types.Type) []*FuncDefExpr {
	out := make([]*FuncDefExpr, len(methods))
	for i, m := range methods {
		out[i] = deepCopyExpr(m, subst).(*FuncDefExpr)
	}
	return out
}

func deepCopyExprList(list []ExprStmt, subst map[string]types.Type) []ExprStmt {
	if list == nil {
		return nil
	}
	out := make([]ExprStmt, len(list))
	for i, e := range list {
		out[i] = deepCopyExpr(e, subst)
	}
	return out
}

func deepCopyExpr(n ExprStmt, subst map[string]types.Type) ExprStmt {
	if n == nil {
		return nil
	}
	switch t := n.(type) {
	case *LiteralBoolExpr:
		return NewLiteralBoolExpr(t.Span(), t.Value)
	case *LiteralInt32Expr:
		return NewLiteralInt32Expr(t.Span(), t.Value)
	case *LiteralFloatExpr:
		return NewLiteralFloatExpr(t.Span(), t.Value)
	case *VariableDeclExpr:
		return NewVariableDeclExpr(t.Span(), t.Name, deepCopyType(t.DeclaredType, subst), deepCopyExpr(t.Init, subst))
	case *VariableRefExpr:
		return NewVariableRefExpr(t.Span(), append([]string(nil), t.Name...))
	case *UnaryExpr:
		return NewUnaryExpr(t.Span(), t.Op, deepCopyExpr(t.Operand, subst))
	case *BinaryExpr:
		return NewBinaryExpr(t.Span(), t.Op, deepCopyExpr(t.Left, subst), deepCopyExpr(t.Right, subst))
	case *DotExpr:
		return NewDotExpr(t.Span(), deepCopyExpr(t.Object, subst), t.MemberName)
	case *MethodRefExpr:
		return NewMethodRefExpr(t.Span(), deepCopyExpr(t.This, subst), t.MethodName)
	case *FuncCallExpr:
		return NewFuncCallExpr(t.Span(), deepCopyExpr(t.Callee, subst), deepCopyExprList(t.Args, subst))
	case *CastExpr:
		return NewCastExpr(t.Span(), t.Kind, deepCopyType(t.Target, subst), deepCopyExpr(t.Operand, subst))
	case *NewExpr:
		return NewNewExpr(t.Span(), deepCopyType(t.Target, subst), deepCopyExprList(t.Args, subst))
	case *CompoundExpr:
		return NewCompoundExpr(t.Span(), deepCopyExprList(t.Stmts, subst))
	case *ExpressionListExpr:
		return NewExpressionListExpr(t.Span(), deepCopyExprList(t.Elements, subst))
	case *IfExpr:
		return NewIfExpr(t.Span(), deepCopyExpr(t.Condition, subst), deepCopyExpr(t.Then, subst), deepCopyExpr(t.Else, subst))
	case *WhileExpr:
		return NewWhileExpr(t.Span(), deepCopyExpr(t.Condition, subst), deepCopyExpr(t.Body, subst))
	case *AssertExpr:
		return NewAssertExpr(t.Span(), deepCopyExpr(t.Condition, subst))
	case *FuncDefExpr:
		return NewFuncDefExpr(t.Span(), t.Name, deepCopyParams(t.Params, subst), deepCopyType(t.ReturnType, subst), deepCopyExpr(t.Body, subst))
	case *CompleteClassDefExpr:
		return NewCompleteClassDefExpr(t.Span(), t.Name, deepCopyFields(t.Fields, subst), deepCopyMethods(t.Methods, subst))
	case *GenericClassDefExpr:
		return NewGenericClassDefExpr(t.Span(), t.Name, append([]string(nil), t.GenericParamNames...), deepCopyFields(t.Fields, subst), deepCopyMethods(t.Methods, subst))
	case *NamespaceExpr:
		return NewNamespaceExpr(t.Span(), t.Name, deepCopyExprList(t.Body, subst))
	case *NamedTemplateExpr:
		return NewNamedTemplateExpr(t.Span(), t.Name, append([]string(nil), t.ParamNames...), deepCopyExpr(t.Body, subst))
	case *TemplateExpansionExpr:
		args := make([]TypeRef, len(t.TypeArgs))
		for i, a := range t.TypeArgs {
			args[i] = deepCopyType(a, subst)
		}
		return NewTemplateExpansionExpr(t.Span(), append([]string(nil), t.TemplateName...), args)
	default:
		return n
	}
}
