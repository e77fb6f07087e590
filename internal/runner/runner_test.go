package runner_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anode-lang/anode/internal/runner"
)

func TestRunSourceEvaluatesStatements(t *testing.T) {
	var out bytes.Buffer
	r := runner.New(&out)
	err := r.RunSource(context.Background(), "test", []byte("1 + 2 * 3;"))
	require.NoError(t, err)
	assert.Contains(t, out.String(), "7")
}

// TestRunFilesSharesWorldAcrossFiles checks that a function declared in one
// file is callable from a later file in the same RunFiles invocation,
// matching the REPL's module-chaining semantics (spec.md §3.6).
func TestRunFilesSharesWorldAcrossFiles(t *testing.T) {
	var out bytes.Buffer
	r := runner.New(&out)

	require.NoError(t, r.RunSource(context.Background(), "a.anode", []byte("func add:int(x:int, y:int) x + y;")))
	require.NoError(t, r.RunSource(context.Background(), "b.anode", []byte("add(2, 3);")))
	assert.Contains(t, out.String(), "5")
}

func TestRunSourceReportsParseError(t *testing.T) {
	var out bytes.Buffer
	r := runner.New(&out)
	err := r.RunSource(context.Background(), "test", []byte("1 + ;"))
	assert.Error(t, err)
}

func TestRunSourceReportsAssertFailure(t *testing.T) {
	var out bytes.Buffer
	r := runner.New(&out)
	err := r.RunSource(context.Background(), "test", []byte("assert(false);"))
	assert.Error(t, err)
}
