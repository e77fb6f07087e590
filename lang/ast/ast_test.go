package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anode-lang/anode/lang/ast"
	"github.com/anode-lang/anode/lang/parser"
	"github.com/anode-lang/anode/lang/types"
)

func TestWalkVisitsEveryNodeOnce(t *testing.T) {
	mod, err := parser.ParseModule("test", []byte("1 + 2 * 3;"))
	require.NoError(t, err)

	var kinds []string
	var v ast.VisitorFunc
	v = func(n ast.Node, dir ast.VisitDirection) ast.Visitor {
		if dir == ast.VisitEnter {
			kinds = append(kinds, nodeKind(n))
		}
		return v
	}
	var visitor ast.Visitor = v
	ast.Walk(visitor, mod)

	// Module -> BinaryExpr(+) -> LiteralInt32Expr(1), BinaryExpr(*) -> LiteralInt32Expr(2), LiteralInt32Expr(3)
	assert.Equal(t, []string{"Module", "BinaryExpr", "LiteralInt32Expr", "BinaryExpr", "LiteralInt32Expr", "LiteralInt32Expr"}, kinds)
}

func TestWalkNilVisitorSkipsChildren(t *testing.T) {
	mod, err := parser.ParseModule("test", []byte("1 + 2;"))
	require.NoError(t, err)

	count := 0
	var v ast.VisitorFunc
	v = func(n ast.Node, dir ast.VisitDirection) ast.Visitor {
		if dir != ast.VisitEnter {
			return nil
		}
		count++
		if _, ok := n.(*ast.BinaryExpr); ok {
			return nil // skip descending into the binary expression's operands
		}
		return v
	}
	ast.Walk(v, mod)
	assert.Equal(t, 2, count) // Module, BinaryExpr - nothing below it
}

func TestDeepCopyExpandSubstitutesTemplateParam(t *testing.T) {
	mod, err := parser.ParseModule("test", []byte("x:T = y;"))
	require.NoError(t, err)
	require.Len(t, mod.Body, 1)

	body := mod.Body[0]
	clone := ast.DeepCopyExpand(body, []string{"T"}, []types.Type{types.Int32})

	decl, ok := clone.(*ast.VariableDeclExpr)
	require.True(t, ok)

	known, ok := decl.DeclaredType.(*ast.KnownTypeRef)
	require.True(t, ok, "expected DeferredTypeRef(T) to be substituted with a KnownTypeRef")
	assert.Same(t, types.Int32, known.Typ)

	// the clone must not alias the original node
	assert.NotEqual(t, decl.ID(), body.ID())
}

func TestDeepCopyExpandLeavesNonMatchingNamesAsDeferred(t *testing.T) {
	mod, err := parser.ParseModule("test", []byte("x:Other = y;"))
	require.NoError(t, err)

	clone := ast.DeepCopyExpand(mod.Body[0], []string{"T"}, []types.Type{types.Int32})
	decl, ok := clone.(*ast.VariableDeclExpr)
	require.True(t, ok)

	_, ok = decl.DeclaredType.(*ast.DeferredTypeRef)
	assert.True(t, ok, "Other does not match the template param name, should remain deferred")
}

func nodeKind(n ast.Node) string {
	switch n.(type) {
	case *ast.Module:
		return "Module"
	case *ast.BinaryExpr:
		return "BinaryExpr"
	case *ast.LiteralInt32Expr:
		return "LiteralInt32Expr"
	default:
		return "other"
	}
}
