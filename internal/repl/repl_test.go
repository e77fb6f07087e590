package repl_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anode-lang/anode/internal/repl"
)

func TestReplEvaluatesEntries(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader("1 + 2 * 3;\nfoo:int = 100;\nfoo;\n/exit\n")

	r := repl.New(&out)
	require.NoError(t, r.Run(in))

	assert.Contains(t, out.String(), "7")
	assert.Contains(t, out.String(), "100")
}

// TestReplMultiLineEntry checks that an open '{' keeps accumulating lines
// (and switching to the continuation prompt) until the matching '}'
// closes the statement.
func TestReplMultiLineEntry(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader("if (1 == 1) {\n2;\n}\n/exit\n")

	r := repl.New(&out)
	require.NoError(t, r.Run(in))
	assert.Contains(t, out.String(), "....>")
}

func TestReplHistoryCommand(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader("1;\n2;\n/history\n/exit\n")

	r := repl.New(&out)
	require.NoError(t, r.Run(in))

	got := out.String()
	assert.Contains(t, got, "1: 1;")
	assert.Contains(t, got, "2: 2;")
}

func TestReplUnknownSlashCommand(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader("/bogus\n/exit\n")

	r := repl.New(&out)
	require.NoError(t, r.Run(in))
	assert.Contains(t, out.String(), "unknown command: /bogus")
}
