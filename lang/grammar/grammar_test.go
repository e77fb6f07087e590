package grammar

import (
	"os"
	"testing"

	"golang.org/x/exp/ebnf"
)

// TestEBNF checks that anode.ebnf is internally consistent (every
// production reachable from Module is defined, no unused productions left
// dangling) the same way the teacher checked its own Lua-derived grammar.
func TestEBNF(t *testing.T) {
	f, err := os.Open("anode.ebnf")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	g, err := ebnf.Parse("anode.ebnf", f)
	if err != nil {
		t.Fatal(err)
	}
	if err := ebnf.Verify(g, "Module"); err != nil {
		t.Fatal(err)
	}
}
