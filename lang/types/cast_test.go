package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/anode-lang/anode/lang/types"
)

func TestCanImplicitCastWidensTowardHigherPriority(t *testing.T) {
	assert.True(t, types.CanImplicitCast(types.Int32, types.Float))
	assert.True(t, types.CanImplicitCast(types.Float, types.Double))
	assert.False(t, types.CanImplicitCast(types.Double, types.Int32))
}

func TestCanImplicitCastToBoolFromAnyNonBoolScalar(t *testing.T) {
	assert.True(t, types.CanImplicitCast(types.Int32, types.Bool))
	assert.True(t, types.CanImplicitCast(types.Double, types.Bool))
	assert.False(t, types.CanImplicitCast(types.Bool, types.Bool))
}

func TestCanImplicitCastBoolToAnythingIsRejected(t *testing.T) {
	assert.False(t, types.CanImplicitCast(types.Bool, types.Int32))
	assert.False(t, types.CanImplicitCast(types.Bool, types.Float))
}

func TestCanExplicitCastRejectsBoolEitherDirection(t *testing.T) {
	assert.False(t, types.CanExplicitCast(types.Bool, types.Int32))
	assert.False(t, types.CanExplicitCast(types.Int32, types.Bool))
	assert.False(t, types.CanExplicitCast(types.Bool, types.Bool))
}

func TestCanExplicitCastAllowsNarrowingAmongNonBoolScalars(t *testing.T) {
	assert.True(t, types.CanExplicitCast(types.Double, types.Int32))
	assert.True(t, types.CanExplicitCast(types.Int32, types.Double))
}

func TestSameComparesScalarsBySingletonIdentity(t *testing.T) {
	assert.True(t, types.Same(types.Int32, types.Int32))
	assert.False(t, types.Same(types.Int32, types.Float))
}

func TestSameArgsRequiresEqualLengthAndPairwiseSame(t *testing.T) {
	assert.True(t, types.SameArgs([]types.Type{types.Int32, types.Bool}, []types.Type{types.Int32, types.Bool}))
	assert.False(t, types.SameArgs([]types.Type{types.Int32}, []types.Type{types.Int32, types.Bool}))
	assert.False(t, types.SameArgs([]types.Type{types.Int32}, []types.Type{types.Float}))
}
