package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"

	"github.com/anode-lang/anode/lang/parser"
	"github.com/anode-lang/anode/lang/sema"
	"github.com/anode-lang/anode/lang/world"
)

func (c *Cmd) Resolve(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return ResolveFiles(ctx, stdio, args...)
}

// ResolveFiles parses every file into its own module and runs the full
// thirteen-pass semantic pipeline over each in turn, sharing one World so
// a name declared in an earlier file is visible to a later one — the same
// module-chaining a REPL session gets, just driven from files instead of
// stdin. Prints the resolved AST, or the diagnostics a pass collected.
func ResolveFiles(ctx context.Context, stdio mainer.Stdio, files ...string) error {
	w := world.New()
	pipeline := sema.NewPipeline()

	var failed bool
	for _, name := range files {
		src, err := readFile(name)
		if err != nil {
			printError(stdio, err)
			failed = true
			continue
		}
		mod, err := parser.ParseModule(name, src)
		if err != nil {
			printError(stdio, err)
			failed = true
			continue
		}
		if err := pipeline.Run(w, mod); err != nil {
			printError(stdio, err)
			failed = true
			continue
		}
		w.AddModule(mod)
		if _, err := w.ExportModule(mod); err != nil {
			printError(stdio, err)
			failed = true
			continue
		}
		dumpTree(stdio.Stdout, mod)
	}
	if failed {
		return fmt.Errorf("resolve: one or more files had errors")
	}
	return nil
}
