package interp

import (
	"fmt"
	"strings"

	"github.com/anode-lang/anode/lang/ast"
	"github.com/anode-lang/anode/lang/token"
	"github.com/anode-lang/anode/lang/types"
)

func evalUnary(th *Thread, t *ast.UnaryExpr) (Value, error) {
	switch t.Op {
	case ast.UnaryNot:
		v, err := Eval(th, t.Operand)
		if err != nil {
			return nil, err
		}
		return Bool(!bool(v.(Bool))), nil

	case ast.UnaryNegate:
		v, err := Eval(th, t.Operand)
		if err != nil {
			return nil, err
		}
		return negate(v)

	case ast.UnaryPreIncrement, ast.UnaryPreDecrement:
		c, err := lvalueCell(th, t.Operand)
		if err != nil {
			return nil, err
		}
		delta := oneLike(c.v)
		op := ast.BinaryAdd
		if t.Op == ast.UnaryPreDecrement {
			op = ast.BinarySub
		}
		nv, err := arith(op, c.v, delta)
		if err != nil {
			return nil, err
		}
		c.v = nv
		return nv, nil

	default:
		return nil, fmt.Errorf("interp: unsupported unary operator %s", t.Op)
	}
}

func negate(v Value) (Value, error) {
	switch vv := v.(type) {
	case Int32:
		return -vv, nil
	case Float32:
		return -vv, nil
	case Float64:
		return -vv, nil
	default:
		return nil, fmt.Errorf("interp: cannot negate %s", v.Type())
	}
}

func oneLike(v Value) Value {
	switch v.(type) {
	case Float32:
		return Float32(1)
	case Float64:
		return Float64(1)
	default:
		return Int32(1)
	}
}

func evalBinary(th *Thread, t *ast.BinaryExpr) (Value, error) {
	if t.Op == ast.BinaryAssign {
		rv, err := Eval(th, t.Right)
		if err != nil {
			return nil, err
		}
		c, err := lvalueCell(th, t.Left)
		if err != nil {
			return nil, err
		}
		c.v = rv
		return rv, nil
	}

	lv, err := Eval(th, t.Left)
	if err != nil {
		return nil, err
	}

	// Short-circuit && and || before evaluating the right operand.
	if t.Op == ast.BinaryLogicalAnd && !bool(lv.(Bool)) {
		return Bool(false), nil
	}
	if t.Op == ast.BinaryLogicalOr && bool(lv.(Bool)) {
		return Bool(true), nil
	}

	rv, err := Eval(th, t.Right)
	if err != nil {
		return nil, err
	}

	switch t.Op {
	case ast.BinaryLogicalAnd:
		return Bool(bool(lv.(Bool)) && bool(rv.(Bool))), nil
	case ast.BinaryLogicalOr:
		return Bool(bool(lv.(Bool)) || bool(rv.(Bool))), nil
	case ast.BinaryEq:
		return Bool(valuesEqual(lv, rv)), nil
	case ast.BinaryNotEq:
		return Bool(!valuesEqual(lv, rv)), nil
	case ast.BinaryLessThan, ast.BinaryLessThanOrEqual, ast.BinaryGreaterThan, ast.BinaryGreaterThanOrEqual:
		cmp, err := compareValues(lv, rv)
		if err != nil {
			return nil, err
		}
		switch t.Op {
		case ast.BinaryLessThan:
			return Bool(cmp < 0), nil
		case ast.BinaryLessThanOrEqual:
			return Bool(cmp <= 0), nil
		case ast.BinaryGreaterThan:
			return Bool(cmp > 0), nil
		default:
			return Bool(cmp >= 0), nil
		}
	default:
		return arith(t.Op, lv, rv)
	}
}

func arith(op ast.BinaryOp, l, r Value) (Value, error) {
	switch lv := l.(type) {
	case Int32:
		rv, ok := r.(Int32)
		if !ok {
			return nil, fmt.Errorf("interp: mismatched operand types %s and %s", l.Type(), r.Type())
		}
		switch op {
		case ast.BinaryAdd:
			return lv + rv, nil
		case ast.BinarySub:
			return lv - rv, nil
		case ast.BinaryMul:
			return lv * rv, nil
		case ast.BinaryDiv:
			if rv == 0 {
				return nil, fmt.Errorf("interp: integer division by zero")
			}
			return lv / rv, nil
		}
	case Float32:
		rv, ok := r.(Float32)
		if !ok {
			return nil, fmt.Errorf("interp: mismatched operand types %s and %s", l.Type(), r.Type())
		}
		switch op {
		case ast.BinaryAdd:
			return lv + rv, nil
		case ast.BinarySub:
			return lv - rv, nil
		case ast.BinaryMul:
			return lv * rv, nil
		case ast.BinaryDiv:
			return lv / rv, nil
		}
	case Float64:
		rv, ok := r.(Float64)
		if !ok {
			return nil, fmt.Errorf("interp: mismatched operand types %s and %s", l.Type(), r.Type())
		}
		switch op {
		case ast.BinaryAdd:
			return lv + rv, nil
		case ast.BinarySub:
			return lv - rv, nil
		case ast.BinaryMul:
			return lv * rv, nil
		case ast.BinaryDiv:
			return lv / rv, nil
		}
	}
	return nil, fmt.Errorf("interp: operator %s cannot be used with type %s", op, l.Type())
}

func compareValues(l, r Value) (int, error) {
	switch lv := l.(type) {
	case Int32:
		rv, ok := r.(Int32)
		if !ok {
			break
		}
		return cmpOrdered(lv, rv), nil
	case Float32:
		rv, ok := r.(Float32)
		if !ok {
			break
		}
		return cmpOrdered(lv, rv), nil
	case Float64:
		rv, ok := r.(Float64)
		if !ok {
			break
		}
		return cmpOrdered(lv, rv), nil
	}
	return 0, fmt.Errorf("interp: cannot order %s and %s", l.Type(), r.Type())
}

func cmpOrdered[T ~int32 | ~float32 | ~float64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func valuesEqual(l, r Value) bool {
	switch lv := l.(type) {
	case Bool:
		rv, ok := r.(Bool)
		return ok && lv == rv
	case Int32:
		rv, ok := r.(Int32)
		return ok && lv == rv
	case Float32:
		rv, ok := r.(Float32)
		return ok && lv == rv
	case Float64:
		rv, ok := r.(Float64)
		return ok && lv == rv
	case *Instance:
		rv, ok := r.(*Instance)
		return ok && lv == rv
	case Nil:
		_, ok := r.(Nil)
		return ok
	default:
		return false
	}
}

// lvalueCell resolves expr (a VariableRefExpr or DotExpr, the only two
// assignable forms spec.md §4.7's late-checks pass allows) to the cell
// backing its storage.
func lvalueCell(th *Thread, expr ast.ExprStmt) (*cell, error) {
	switch e := expr.(type) {
	case *ast.VariableRefExpr:
		c, ok := th.env.lookup(e.Sym)
		if !ok {
			return nil, fmt.Errorf("interp: %q has no runtime binding", e.Sym.Name)
		}
		return c, nil
	case *ast.DotExpr:
		objVal, err := Eval(th, e.Object)
		if err != nil {
			return nil, err
		}
		inst, ok := objVal.(*Instance)
		if !ok {
			return nil, fmt.Errorf("interp: %s is not a class instance", e.MemberName)
		}
		fl := inst.Class.FieldByName(e.MemberName)
		if fl == nil {
			return nil, fmt.Errorf("interp: %s has no field %q", inst.Class.Name, e.MemberName)
		}
		return inst.Fields[fl.Ordinal], nil
	default:
		return nil, fmt.Errorf("interp: %T is not assignable", expr)
	}
}

func evalDot(th *Thread, t *ast.DotExpr) (Value, error) {
	objVal, err := Eval(th, t.Object)
	if err != nil {
		return nil, err
	}
	inst, ok := objVal.(*Instance)
	if !ok {
		return nil, fmt.Errorf("interp: %s is not a class instance", t.MemberName)
	}
	if fl := inst.Class.FieldByName(t.MemberName); fl != nil {
		return inst.Fields[fl.Ordinal].v, nil
	}
	if fn := th.rt.lookupMethod(inst.Class, t.MemberName); fn != nil {
		return &FuncRef{Def: fn, Receiver: inst}, nil
	}
	return nil, fmt.Errorf("interp: %s has no member %q", inst.Class.Name, t.MemberName)
}

func convertScalar(v Value, target *types.Scalar) (Value, error) {
	switch target {
	case types.Bool:
		return Bool(truthy(v)), nil
	case types.Int32:
		return Int32(asFloat64(v)), nil
	case types.Float:
		return Float32(asFloat64(v)), nil
	case types.Double:
		return Float64(asFloat64(v)), nil
	default:
		return nil, fmt.Errorf("interp: cannot cast to %s", target)
	}
}

func truthy(v Value) bool {
	switch vv := v.(type) {
	case Bool:
		return bool(vv)
	default:
		return asFloat64(v) != 0
	}
}

func asFloat64(v Value) float64 {
	switch vv := v.(type) {
	case Bool:
		if vv {
			return 1
		}
		return 0
	case Int32:
		return float64(vv)
	case Float32:
		return float64(vv)
	case Float64:
		return float64(vv)
	default:
		return 0
	}
}

func evalNew(th *Thread, t *ast.NewExpr) (Value, error) {
	class, ok := t.Target.ResolvedType().Actual().(*types.Class)
	if !ok {
		return nil, fmt.Errorf("interp: cannot instantiate non-class type %s", t.Target.ResolvedType())
	}
	var inst *Instance
	if th.rt.host.Malloc != nil {
		inst = th.rt.host.Malloc(class)
	}
	if inst == nil {
		inst = &Instance{Class: class, Fields: make([]*cell, len(class.Fields))}
		for _, fl := range class.Fields {
			inst.Fields[fl.Ordinal] = &cell{v: zeroValue(fl.Type)}
		}
	}
	for i, arg := range t.Args {
		if i >= len(inst.Fields) {
			break
		}
		v, err := Eval(th, arg)
		if err != nil {
			return nil, err
		}
		inst.Fields[i].v = v
	}
	return inst, nil
}

func evalCall(th *Thread, t *ast.FuncCallExpr) (Value, error) {
	fn, receiver, err := resolveCallTarget(th, t.Callee)
	if err != nil {
		return nil, err
	}
	args := make([]Value, len(t.Args))
	for i, a := range t.Args {
		v, err := Eval(th, a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return callFunction(th, fn, receiver, args, t.Span())
}

func resolveCallTarget(th *Thread, callee ast.ExprStmt) (*ast.FuncDefExpr, Value, error) {
	switch c := callee.(type) {
	case *ast.VariableRefExpr:
		fn, ok := th.rt.lookupFunc(c.Sym)
		if !ok {
			return nil, nil, fmt.Errorf("interp: no definition found for %q", c.Sym.Name)
		}
		return fn, nil, nil

	case *ast.DotExpr:
		objVal, err := Eval(th, c.Object)
		if err != nil {
			return nil, nil, err
		}
		inst, ok := objVal.(*Instance)
		if !ok {
			return nil, nil, fmt.Errorf("interp: %s is not a class instance", c.MemberName)
		}
		fn := th.rt.lookupMethod(inst.Class, c.MemberName)
		if fn == nil {
			return nil, nil, fmt.Errorf("interp: %s has no method %q", inst.Class.Name, c.MemberName)
		}
		return fn, inst, nil

	case *ast.MethodRefExpr:
		thisVal, err := Eval(th, c.This)
		if err != nil {
			return nil, nil, err
		}
		inst, ok := thisVal.(*Instance)
		if !ok {
			return nil, nil, fmt.Errorf("interp: %s is not a class instance", c.MethodName)
		}
		fn := th.rt.lookupMethod(inst.Class, c.MethodName)
		if fn == nil {
			return nil, nil, fmt.Errorf("interp: %s has no method %q", inst.Class.Name, c.MethodName)
		}
		return fn, inst, nil

	case *ast.TemplateExpansionExpr:
		if fn, ok := c.Expanded.(*ast.FuncDefExpr); ok {
			return fn, nil, nil
		}
		return nil, nil, fmt.Errorf("interp: %s does not expand to a callable function", strings.Join(c.TemplateName, "::"))

	default:
		v, err := Eval(th, callee)
		if err != nil {
			return nil, nil, err
		}
		if ref, ok := v.(*FuncRef); ok {
			return ref.Def, ref.Receiver, nil
		}
		return nil, nil, fmt.Errorf("interp: %T is not callable", callee)
	}
}

func callFunction(th *Thread, fn *ast.FuncDefExpr, receiver Value, args []Value, span token.Span) (Value, error) {
	if len(args) != len(fn.Params) {
		return nil, fmt.Errorf("interp: %s expects %d argument(s), got %d", fn.Name, len(fn.Params), len(args))
	}
	pop, err := th.pushFrame(fn, span)
	if err != nil {
		return nil, err
	}
	defer pop()
	if receiver != nil && fn.Sym != nil && fn.Sym.This != nil {
		th.env.declare(fn.Sym.This, receiver)
	}
	for i, p := range fn.Params {
		if p.Sym != nil {
			th.env.declare(p.Sym, args[i])
		}
	}
	return Eval(th, fn.Body)
}
