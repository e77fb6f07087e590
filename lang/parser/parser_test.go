package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anode-lang/anode/lang/ast"
	"github.com/anode-lang/anode/lang/parser"
)

// TestParsePrecedence exercises spec.md §8 scenario 1: "1 + 2 * 3;" must
// parse with * binding tighter than +, i.e. Add(1, Mul(2, 3)).
func TestParsePrecedence(t *testing.T) {
	mod, err := parser.ParseModule("test", []byte("1 + 2 * 3;"))
	require.NoError(t, err)
	require.Len(t, mod.Body, 1)

	add, ok := mod.Body[0].(*ast.BinaryExpr)
	require.True(t, ok, "expected top-level BinaryExpr, got %T", mod.Body[0])
	assert.Equal(t, ast.BinaryAdd, add.Op)

	_, ok = add.Left.(*ast.LiteralInt32Expr)
	assert.True(t, ok, "expected left operand to be a literal")

	mul, ok := add.Right.(*ast.BinaryExpr)
	require.True(t, ok, "expected right operand to be a nested BinaryExpr")
	assert.Equal(t, ast.BinaryMul, mul.Op)
}

// TestParseVariableDecl exercises spec.md §8 scenario 2's declaration form:
// "foo:int = 100;".
func TestParseVariableDecl(t *testing.T) {
	mod, err := parser.ParseModule("test", []byte("foo:int = 100;"))
	require.NoError(t, err)
	require.Len(t, mod.Body, 1)

	decl, ok := mod.Body[0].(*ast.VariableDeclExpr)
	require.True(t, ok, "expected VariableDeclExpr, got %T", mod.Body[0])
	assert.Equal(t, "foo", decl.Name)
	require.NotNil(t, decl.Init)

	lit, ok := decl.Init.(*ast.LiteralInt32Expr)
	require.True(t, ok)
	assert.EqualValues(t, 100, lit.Value)
}

// TestParseClassDef exercises spec.md §8 scenario 4's class form.
func TestParseClassDef(t *testing.T) {
	mod, err := parser.ParseModule("test", []byte("class Widget { a:int; b:float; }"))
	require.NoError(t, err)
	require.Len(t, mod.Body, 1)

	cls, ok := mod.Body[0].(*ast.CompleteClassDefExpr)
	require.True(t, ok, "expected CompleteClassDefExpr, got %T", mod.Body[0])
	assert.Equal(t, "Widget", cls.Name)
	require.Len(t, cls.Fields, 2)
	assert.Equal(t, "a", cls.Fields[0].Name)
	assert.Equal(t, "b", cls.Fields[1].Name)
}

// TestParseFuncDef exercises spec.md §8 scenario 5's function form.
func TestParseFuncDef(t *testing.T) {
	mod, err := parser.ParseModule("test", []byte("func add:int(x:int, y:int) x + y;"))
	require.NoError(t, err)
	require.Len(t, mod.Body, 1)

	fn, ok := mod.Body[0].(*ast.FuncDefExpr)
	require.True(t, ok, "expected FuncDefExpr, got %T", mod.Body[0])
	assert.Equal(t, "add", fn.Name)
	require.Len(t, fn.Params, 2)
	assert.Equal(t, "x", fn.Params[0].Name)
	assert.Equal(t, "y", fn.Params[1].Name)
}

// TestParseIfElse exercises spec.md §8 scenario 3's conditional form.
func TestParseIfElse(t *testing.T) {
	mod, err := parser.ParseModule("test", []byte("if (1) 2; else 3;"))
	require.NoError(t, err)
	require.Len(t, mod.Body, 1)

	ifExpr, ok := mod.Body[0].(*ast.IfExpr)
	require.True(t, ok, "expected IfExpr, got %T", mod.Body[0])
	assert.NotNil(t, ifExpr.Then)
	assert.NotNil(t, ifExpr.Else)
}

func TestParseErrorRecovery(t *testing.T) {
	_, err := parser.ParseModule("test", []byte("1 + ;"))
	assert.Error(t, err)
}
