package sema_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anode-lang/anode/lang/diag"
	"github.com/anode-lang/anode/lang/parser"
	"github.com/anode-lang/anode/lang/sema"
	"github.com/anode-lang/anode/lang/world"
)

func resolve(t *testing.T, src string) error {
	t.Helper()
	mod, err := parser.ParseModule("test", []byte(src))
	require.NoError(t, err)
	return sema.NewPipeline().Run(world.New(), mod)
}

func firstKind(t *testing.T, err error) diag.Kind {
	t.Helper()
	require.Error(t, err)
	var unwrapper interface{ Unwrap() []error }
	require.True(t, errors.As(err, &unwrapper))
	all := unwrapper.Unwrap()
	require.NotEmpty(t, all)
	var de *diag.Error
	require.True(t, errors.As(all[0], &de))
	return de.Kind
}

func TestResolveArithmeticOK(t *testing.T) {
	assert.NoError(t, resolve(t, "1 + 2 * 3;"))
}

func TestResolveDeclAndAssignOK(t *testing.T) {
	assert.NoError(t, resolve(t, "foo:int = 100; foo = bar:int = 102; foo;"))
}

func TestResolveIfElseOK(t *testing.T) {
	assert.NoError(t, resolve(t, "if (1 == 1) 2; else 3;"))
}

func TestResolveClassOK(t *testing.T) {
	assert.NoError(t, resolve(t, `
class Widget {
	a:int;
	b:int;
}
w:Widget = new Widget(234, 0);
w.a;
`))
}

func TestResolveFuncOK(t *testing.T) {
	assert.NoError(t, resolve(t, "func add:int(x:int, y:int) x + y; add(2, 3);"))
}

func TestResolveAssertOK(t *testing.T) {
	assert.NoError(t, resolve(t, "assert(1 == 1);"))
}

// TestResolveArithmeticWidensRegardlessOfOperandOrder checks that the
// higher-priority operand may appear on either side of an arithmetic or
// comparison operator: widening is one-directional (toward the
// higher-priority type), not tied to a fixed left/right slot.
func TestResolveArithmeticWidensRegardlessOfOperandOrder(t *testing.T) {
	assert.NoError(t, resolve(t, "1 + 2.0;"))
	assert.NoError(t, resolve(t, "2.0 + 1;"))
	assert.NoError(t, resolve(t, "2.0 == 1;"))
}

// TestResolveLogicalOperandsCastToBool checks that && and || operands are
// implicitly cast to bool rather than rejected outright when not already
// bool (spec.md §4.6).
func TestResolveLogicalOperandsCastToBool(t *testing.T) {
	assert.NoError(t, resolve(t, "true && 1;"))
	assert.NoError(t, resolve(t, "1 && 2;"))
	assert.NoError(t, resolve(t, "0 || false;"))
}

func TestResolveUndeclaredVariable(t *testing.T) {
	err := resolve(t, "a = 1;")
	assert.Equal(t, diag.VariableNotDefined, firstKind(t, err))
}

// TestResolveUndeclaredTargetBesideForwardGlobalRef checks that the
// never-declared a is reported as VariableNotDefined; the forward reference
// to the module-level b is not an error, since only locals are checked for
// use before declaration.
func TestResolveUndeclaredTargetBesideForwardGlobalRef(t *testing.T) {
	err := resolve(t, "a = b; b:int = 1;")
	assert.Equal(t, diag.VariableNotDefined, firstKind(t, err))
}

func TestResolveInvalidExplicitCast(t *testing.T) {
	err := resolve(t, "cast<bool>(true);")
	assert.Equal(t, diag.InvalidExplicitCast, firstKind(t, err))
}

func TestResolveExpandOnNonTemplate(t *testing.T) {
	err := resolve(t, "foo:int = 1; expand foo<int>;")
	assert.Equal(t, diag.SymbolIsNotATemplate, firstKind(t, err))
}

func TestResolveUnknownMember(t *testing.T) {
	err := resolve(t, `
class Widget {
	a:int;
}
w:Widget = new Widget(1);
w.nope;
`)
	assert.Equal(t, diag.ClassMemberNotFound, firstKind(t, err))
}

func TestResolveNamedTemplateExpansionOK(t *testing.T) {
	assert.NoError(t, resolve(t, `
template Identity<T> func identity:T(x:T) x;
expand Identity<int>;
`))
}

func TestResolveTemplateWrongArgCount(t *testing.T) {
	err := resolve(t, `
template Pair<A, B> func first:A(x:A, y:B) x;
expand Pair<int>;
`)
	assert.Equal(t, diag.IncorrectNumberOfTemplateArguments, firstKind(t, err))
}
