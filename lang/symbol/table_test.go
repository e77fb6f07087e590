package symbol_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anode-lang/anode/lang/symbol"
	"github.com/anode-lang/anode/lang/types"
)

func TestDeclareRejectsDuplicateInSameScope(t *testing.T) {
	tbl := symbol.NewTable(nil)
	assert.True(t, tbl.Declare("x", &symbol.Symbol{Name: "x", Type: types.Int32}))
	assert.False(t, tbl.Declare("x", &symbol.Symbol{Name: "x", Type: types.Bool}))

	got := tbl.FindInCurrent("x")
	require.NotNil(t, got)
	assert.Same(t, types.Int32, got.Type)
}

func TestFindInCurrentOrParentsClimbsScopeChain(t *testing.T) {
	outer := symbol.NewTable(nil)
	outer.Declare("x", &symbol.Symbol{Name: "x", Type: types.Int32})

	inner := symbol.NewTable(outer)
	assert.Nil(t, inner.FindInCurrent("x"))
	assert.NotNil(t, inner.FindInCurrentOrParents("x"))
}

func TestFindInCurrentOrParentsInnerShadowsOuter(t *testing.T) {
	outer := symbol.NewTable(nil)
	outer.Declare("x", &symbol.Symbol{Name: "x", Type: types.Int32})

	inner := symbol.NewTable(outer)
	inner.Declare("x", &symbol.Symbol{Name: "x", Type: types.Bool})

	got := inner.FindInCurrentOrParents("x")
	require.NotNil(t, got)
	assert.Same(t, types.Bool, got.Type)
}

func TestOrderedPreservesDeclarationOrder(t *testing.T) {
	tbl := symbol.NewTable(nil)
	tbl.Declare("b", &symbol.Symbol{Name: "b"})
	tbl.Declare("a", &symbol.Symbol{Name: "a"})
	tbl.Declare("c", &symbol.Symbol{Name: "c"})

	ordered := tbl.Ordered()
	require.Len(t, ordered, 3)
	assert.Equal(t, []string{"b", "a", "c"}, []string{ordered[0].Name, ordered[1].Name, ordered[2].Name}) //nolint:lll
}

func TestResolveSinglePartName(t *testing.T) {
	tbl := symbol.NewTable(nil)
	tbl.Declare("x", &symbol.Symbol{Name: "x", Type: types.Int32})

	sym, outcome := tbl.Resolve([]string{"x"})
	require.NotNil(t, sym)
	assert.Equal(t, symbol.Found, outcome.Code)

	_, outcome = tbl.Resolve([]string{"nope"})
	assert.Equal(t, symbol.NotFound, outcome.Code)
}

func TestResolveQualifiedNameThroughNamespace(t *testing.T) {
	root := symbol.NewTable(nil)
	nsScope := symbol.NewTable(root)
	nsScope.Declare("f", &symbol.Symbol{Name: "f", Kind: symbol.Function})

	root.Declare("ns", &symbol.Symbol{Name: "ns", Kind: symbol.Namespace, NamespaceScope: nsScope})

	sym, outcome := root.Resolve([]string{"ns", "f"})
	require.NotNil(t, sym)
	assert.Equal(t, symbol.Found, outcome.Code)
	assert.Equal(t, symbol.Function, sym.Kind)
}

func TestResolveQualifiedNameHeadNotANamespace(t *testing.T) {
	root := symbol.NewTable(nil)
	root.Declare("x", &symbol.Symbol{Name: "x", Kind: symbol.Variable})

	_, outcome := root.Resolve([]string{"x", "y"})
	assert.Equal(t, symbol.NotANamespace, outcome.Code)
}

func TestResolveQualifiedNameMissingNamespace(t *testing.T) {
	root := symbol.NewTable(nil)
	_, outcome := root.Resolve([]string{"ns", "f"})
	assert.Equal(t, symbol.NamespaceMissing, outcome.Code)
}

func TestResolveQualifiedNameMemberMissing(t *testing.T) {
	root := symbol.NewTable(nil)
	nsScope := symbol.NewTable(root)
	root.Declare("ns", &symbol.Symbol{Name: "ns", Kind: symbol.Namespace, NamespaceScope: nsScope})

	_, outcome := root.Resolve([]string{"ns", "nope"})
	assert.Equal(t, symbol.MemberMissing, outcome.Code)
}

func TestQualifyNameJoinsWithDoubleColon(t *testing.T) {
	assert.Equal(t, "a::b::c", symbol.QualifyName("a", "b", "c"))
}

func TestCloneMarksExternal(t *testing.T) {
	sym := &symbol.Symbol{Name: "x", Type: types.Int32}
	clone := sym.Clone()
	assert.False(t, sym.External)
	assert.True(t, clone.External)
	assert.Equal(t, sym.Name, clone.Name)
}
