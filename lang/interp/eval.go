package interp

import (
	"fmt"

	"github.com/anode-lang/anode/lang/ast"
	"github.com/anode-lang/anode/lang/types"
)

// assertionError is returned by Eval when an AssertExpr's condition is
// false, distinguishing an intentional program abort from every other
// runtime error.
type assertionError struct{ span fmt.Stringer }

func (e *assertionError) Error() string { return fmt.Sprintf("assertion failed at %s", e.span) }

// Eval evaluates n against th's current env, returning its value. Every
// ExprStmt variant spec.md §3.5 names is handled; declaration nodes
// (VoidByConstruction by definition) evaluate their Init/body as a side
// effect and yield Void.
func Eval(th *Thread, n ast.ExprStmt) (Value, error) {
	switch t := n.(type) {
	case *ast.LiteralBoolExpr:
		return Bool(t.Value), nil
	case *ast.LiteralInt32Expr:
		return Int32(t.Value), nil
	case *ast.LiteralFloatExpr:
		if types.Same(t.Type(), types.Double) {
			return Float64(t.Value), nil
		}
		return Float32(t.Value), nil

	case *ast.VariableDeclExpr:
		if t.Sym == nil {
			return nil, fmt.Errorf("interp: %q was never declared into a scope", t.Name)
		}
		var v Value = zeroValue(t.Sym.Type)
		if t.Init != nil {
			iv, err := Eval(th, t.Init)
			if err != nil {
				return nil, err
			}
			v = iv
		}
		th.env.declare(t.Sym, v)
		return Void{}, nil

	case *ast.VariableRefExpr:
		return evalVariableRef(th, t)

	case *ast.UnaryExpr:
		return evalUnary(th, t)

	case *ast.BinaryExpr:
		return evalBinary(th, t)

	case *ast.DotExpr:
		return evalDot(th, t)

	case *ast.MethodRefExpr:
		this, err := Eval(th, t.This)
		if err != nil {
			return nil, err
		}
		inst, ok := this.(*Instance)
		if !ok {
			return nil, fmt.Errorf("interp: %s is not a class instance", t.MethodName)
		}
		fn := th.rt.lookupMethod(inst.Class, t.MethodName)
		if fn == nil {
			return nil, fmt.Errorf("interp: %s has no method %q", inst.Class.Name, t.MethodName)
		}
		return &FuncRef{Def: fn, Receiver: inst}, nil

	case *ast.FuncCallExpr:
		return evalCall(th, t)

	case *ast.CastExpr:
		v, err := Eval(th, t.Operand)
		if err != nil {
			return nil, err
		}
		target, ok := t.Target.ResolvedType().Actual().(*types.Scalar)
		if !ok {
			return nil, fmt.Errorf("interp: cannot cast to non-scalar type %s", t.Target.ResolvedType())
		}
		return convertScalar(v, target)

	case *ast.NewExpr:
		return evalNew(th, t)

	case *ast.CompoundExpr:
		pop := th.pushBlock()
		defer pop()
		var last Value = Void{}
		for _, s := range t.Stmts {
			v, err := Eval(th, s)
			if err != nil {
				return nil, err
			}
			last = v
		}
		return last, nil

	case *ast.ExpressionListExpr:
		var last Value = Void{}
		for _, e := range t.Elements {
			v, err := Eval(th, e)
			if err != nil {
				return nil, err
			}
			last = v
		}
		return last, nil

	case *ast.IfExpr:
		cond, err := Eval(th, t.Condition)
		if err != nil {
			return nil, err
		}
		if bool(cond.(Bool)) {
			return Eval(th, t.Then)
		}
		if t.Else != nil {
			return Eval(th, t.Else)
		}
		return Void{}, nil

	case *ast.WhileExpr:
		for {
			cond, err := Eval(th, t.Condition)
			if err != nil {
				return nil, err
			}
			if !bool(cond.(Bool)) {
				break
			}
			if _, err := Eval(th, t.Body); err != nil {
				return nil, err
			}
		}
		return Void{}, nil

	case *ast.AssertExpr:
		cond, err := Eval(th, t.Condition)
		if err != nil {
			return nil, err
		}
		span := t.Span()
		if bool(cond.(Bool)) {
			if th.rt.host.AssertPassed != nil {
				th.rt.host.AssertPassed(span)
			}
			return Void{}, nil
		}
		if th.rt.host.AssertFailed != nil {
			th.rt.host.AssertFailed(span)
		}
		return Void{}, &assertionError{span: span}

	case *ast.TemplateExpansionExpr:
		if fn, ok := t.Expanded.(*ast.FuncDefExpr); ok {
			return &FuncRef{Def: fn}, nil
		}
		return Void{}, nil

	case *ast.FuncDefExpr, *ast.CompleteClassDefExpr, *ast.GenericClassDefExpr,
		*ast.NamespaceExpr, *ast.NamedTemplateExpr:
		// Declarations carry no run time effect of their own beyond what
		// sema already recorded; module execution just skips over them.
		return Void{}, nil

	default:
		return nil, fmt.Errorf("interp: unsupported node %T", n)
	}
}

func evalVariableRef(th *Thread, t *ast.VariableRefExpr) (Value, error) {
	if t.Sym == nil {
		return nil, fmt.Errorf("interp: unresolved reference %v", t)
	}
	if c, ok := th.env.lookup(t.Sym); ok {
		return c.v, nil
	}
	if fn, ok := th.rt.lookupFunc(t.Sym); ok {
		return &FuncRef{Def: fn}, nil
	}
	return nil, fmt.Errorf("interp: %q has no runtime binding", t.Sym.Name)
}

// FuncRef is a bound (or unbound, for a plain function) callable value,
// produced when a function or method is referenced as a value rather than
// called directly.
type FuncRef struct {
	Def      *ast.FuncDefExpr
	Receiver Value
}

func (f *FuncRef) String() string   { return "func " + f.Def.Name }
func (f *FuncRef) Type() types.Type { return functionTypeOf(f.Def) }

// functionTypeOf mirrors the sema-pass helper of the same name: it is
// reconstructed here rather than imported since lang/sema does not export
// it, and interp only ever needs it for FuncRef.Type's Stringer use.
func functionTypeOf(f *ast.FuncDefExpr) types.Type {
	params := make([]types.Type, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.Type.ResolvedType()
	}
	ret := types.Type(types.Void)
	if f.ReturnType != nil {
		ret = f.ReturnType.ResolvedType()
	}
	return &types.Function{Return: ret, Params: params}
}
