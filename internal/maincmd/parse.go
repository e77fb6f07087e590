package maincmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mna/mainer"

	"github.com/anode-lang/anode/lang/parser"
)

func (c *Cmd) Parse(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return ParseFiles(ctx, stdio, args...)
}

// ParseFiles runs the parser phase alone over every file and prints the
// resulting AST, or any diagnostics parsing produced.
func ParseFiles(ctx context.Context, stdio mainer.Stdio, files ...string) error {
	var failed bool
	for _, name := range files {
		if err := parseFile(stdio, name); err != nil {
			failed = true
		}
	}
	if failed {
		return fmt.Errorf("parse: one or more files had errors")
	}
	return nil
}

func parseFile(stdio mainer.Stdio, name string) error {
	src, err := readFile(name)
	if err != nil {
		return printError(stdio, err)
	}
	mod, err := parser.ParseModule(name, src)
	if err != nil {
		return printError(stdio, err)
	}
	dumpTree(stdio.Stdout, mod)
	return nil
}

func readFile(name string) ([]byte, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
