package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/anode-lang/anode/lang/diag"
	"github.com/anode-lang/anode/lang/lexer"
	"github.com/anode-lang/anode/lang/source"
	"github.com/anode-lang/anode/lang/token"
)

func (c *Cmd) Tokenize(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return TokenizeFiles(ctx, stdio, args...)
}

// TokenizeFiles runs the lexer phase alone over every file and prints each
// token's span, kind and literal text, one per line.
func TokenizeFiles(ctx context.Context, stdio mainer.Stdio, files ...string) error {
	var failed bool
	for _, name := range files {
		if err := tokenizeFile(stdio, name); err != nil {
			failed = true
		}
	}
	if failed {
		return fmt.Errorf("tokenize: one or more files had errors")
	}
	return nil
}

func tokenizeFile(stdio mainer.Stdio, name string) error {
	f, err := os.Open(name)
	if err != nil {
		return printError(stdio, err)
	}
	defer f.Close()

	errs := &diag.Stream{}
	lx := lexer.New(source.New(name, f), errs)
	for {
		tok := lx.NextToken()
		fmt.Fprintf(stdio.Stdout, "%s: %s", tok.Span, tok.Kind)
		if tok.Text != "" {
			fmt.Fprintf(stdio.Stdout, " %q", tok.Text)
		}
		fmt.Fprintln(stdio.Stdout)
		if tok.Kind == token.EOF {
			break
		}
	}
	errs.Sort()
	if err := errs.Err(); err != nil {
		return printError(stdio, err)
	}
	return nil
}
