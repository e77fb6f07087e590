// Package runner drives the non-interactive half of the CLI contract
// (spec.md §6.3): parse, resolve and run one or more anode source files in
// sequence, sharing a single world.World so a later file can see what an
// earlier one declared, the same module-chaining a REPL session gets.
package runner

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/anode-lang/anode/lang/interp"
	"github.com/anode-lang/anode/lang/parser"
	"github.com/anode-lang/anode/lang/sema"
	"github.com/anode-lang/anode/lang/world"
)

// Runner executes a sequence of files against one shared World and
// interp.Runtime.
type Runner struct {
	World    *world.World
	Runtime  *interp.Runtime
	emitter  *interp.Emitter
	loader   *interp.Loader
	pipeline *sema.Pipeline
}

// New creates a Runner whose results and assertion failures are reported to
// w (typically the process's stdout).
func New(w io.Writer) *Runner {
	wd := world.New()
	rt := interp.NewRuntime(wd, interp.NewHost(w))
	return &Runner{
		World:    wd,
		Runtime:  rt,
		emitter:  interp.NewEmitter(rt),
		loader:   interp.NewLoader(rt),
		pipeline: sema.NewPipeline(),
	}
}

// RunFiles parses, resolves and runs each file in turn, stopping at (and
// reporting) the first one that fails any phase.
func (r *Runner) RunFiles(ctx context.Context, files ...string) error {
	for _, name := range files {
		src, err := os.ReadFile(name)
		if err != nil {
			return err
		}
		if err := r.RunSource(ctx, name, src); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// RunSource parses src as a module named name, runs it through the
// semantic pipeline, and — on success — emits, loads and executes it,
// exporting its declarations into the shared World for any module run
// afterward.
func (r *Runner) RunSource(ctx context.Context, name string, src []byte) error {
	mod, err := parser.ParseModule(name, src)
	if err != nil {
		return err
	}
	if err := r.pipeline.Run(r.World, mod); err != nil {
		return err
	}

	art, err := r.emitter.Emit(ctx, mod, nil)
	if err != nil {
		return err
	}
	addr, err := r.loader.Load(ctx, art)
	if err != nil {
		return err
	}
	if err := r.Runtime.Call(addr); err != nil {
		return err
	}

	r.World.AddModule(mod)
	if _, err := r.World.ExportModule(mod); err != nil {
		return err
	}
	return nil
}
