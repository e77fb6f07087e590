package world_test

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

func resolveAndExport(t *testing.T, w *world.World, src string) ([]string, error) {
	t.Helper()
	mod, err := parser.ParseModule("test", []byte(src))
	require.NoError(t, err)
	require.NoError(t, sema.NewPipeline().Run(w, mod))
	w.AddModule(mod)
	return w.ExportModule(mod)
}

// TestModuleChaining checks spec.md §3.6's REPL module-chaining rule: a
// name declared by one module, once exported into the shared World, is
// visible to a later module resolved against the same World.
func TestModuleChaining(t *testing.T) {
	w := world.New()
	_, err := resolveAndExport(t, w, "func add:int(x:int, y:int) x + y;")
	require.NoError(t, err)

	mod, err := parser.ParseModule("test2", []byte("add(2, 3);"))
	require.NoError(t, err)
	assert.NoError(t, sema.NewPipeline().Run(w, mod))
}

// TestModuleExportShadowing checks the first-come-first-served collision
// policy: a name already in the global scope is reported as shadowed
// (both via the returned name and a SymbolAlreadyDefinedInScope diagnostic)
// rather than silently replaced.
func TestModuleExportShadowing(t *testing.T) {
	w := world.New()
	shadowed, err := resolveAndExport(t, w, "func f:int() 1;")
	assert.Empty(t, shadowed)
	assert.NoError(t, err)

	shadowed, err = resolveAndExport(t, w, "func f:int() 2;")
	assert.Contains(t, shadowed, "f")
	require.Error(t, err)

	var unwrapper interface{ Unwrap() []error }
	require.True(t, errors.As(err, &unwrapper))
	all := unwrapper.Unwrap()
	require.NotEmpty(t, all)
	var de *diag.Error
	require.True(t, errors.As(all[0], &de))
	assert.Equal(t, diag.SymbolAlreadyDefinedInScope, de.Kind)
}

func TestModulesRecordsHistory(t *testing.T) {
	w := world.New()
	_, err := resolveAndExport(t, w, "1;")
	require.NoError(t, err)
	_, err = resolveAndExport(t, w, "2;")
	require.NoError(t, err)
	assert.Len(t, w.Modules(), 2)
}
