package emitter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anode-lang/anode/lang/emitter"
	"github.com/anode-lang/anode/lang/interp"
	"github.com/anode-lang/anode/lang/types"
)

// interp.Emitter/interp.Loader are the contract's only implementations in
// this repo; assert they satisfy it so the boundary never silently drifts.
var (
	_ emitter.Emitter = (*interp.Emitter)(nil)
	_ emitter.Loader  = (*interp.Loader)(nil)
)

func TestNewTypeMappingSeedsTheScalarLattice(t *testing.T) {
	m := emitter.NewTypeMapping()

	layout, ok := m.Layout(types.Int32)
	require.True(t, ok)
	assert.Equal(t, "int", layout.Name)
	assert.Equal(t, 32, layout.Width)
	assert.True(t, layout.Signed)
	assert.False(t, layout.Float)

	layout, ok = m.Layout(types.Double)
	require.True(t, ok)
	assert.Equal(t, 64, layout.Width)
	assert.True(t, layout.Float)

	layout, ok = m.Layout(types.Void)
	require.True(t, ok)
	assert.Equal(t, 0, layout.Width)
}

func TestTypeMappingSetOverridesLayout(t *testing.T) {
	m := emitter.NewTypeMapping()
	m.Set(types.Bool, emitter.ScalarLayout{Name: "i1", Width: 1})

	layout, ok := m.Layout(types.Bool)
	require.True(t, ok)
	assert.Equal(t, "i1", layout.Name)
}

func TestTypeMappingLayoutMissingScalar(t *testing.T) {
	m := &emitter.TypeMapping{}
	_, ok := m.Layout(types.Int32)
	assert.False(t, ok)
}
