package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"

	"github.com/anode-lang/anode/internal/repl"
	"github.com/anode-lang/anode/internal/runner"
)

func (c *Cmd) Run(ctx context.Context, stdio mainer.Stdio, args []string) error {
	r := runner.New(stdio.Stdout)
	if err := r.RunFiles(ctx, args...); err != nil {
		return printError(stdio, err)
	}
	return nil
}

func (c *Cmd) Repl(ctx context.Context, stdio mainer.Stdio, args []string) error {
	session := repl.New(stdio.Stdout)
	if err := session.Run(stdio.Stdin); err != nil {
		return printError(stdio, fmt.Errorf("repl: %w", err))
	}
	return nil
}
