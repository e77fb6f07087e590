// Package repl implements the interactive front end of the CLI contract
// (spec.md §6.3, §6.5): read one statement at a time, feed it through the
// semantic pipeline against a shared world.World, run it through
// lang/interp, and print its result. Grounded on
// internal/maincmd/{parse,resolve,tokenize}.go's per-phase command style —
// a REPL is just that same pipeline run interactively, one entry at a
// time, over a World that stays alive between entries instead of a fresh
// one per file.
package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/anode-lang/anode/lang/ast"
	"github.com/anode-lang/anode/lang/interp"
	"github.com/anode-lang/anode/lang/parser"
	"github.com/anode-lang/anode/lang/sema"
	"github.com/anode-lang/anode/lang/world"
)

const prompt = "anode> "

// REPL is one interactive session: a shared World and interp.Runtime that
// every entry is resolved and run against in turn, plus the bookkeeping
// (/history, /compile) needed to answer the slash commands.
type REPL struct {
	Out io.Writer

	world    *world.World
	rt       *interp.Runtime
	emitter  *interp.Emitter
	loader   *interp.Loader
	pipeline *sema.Pipeline

	entryCount int
	history    []string

	historyPath string
}

// New creates a REPL writing prompts, results and diagnostics to out.
func New(out io.Writer) *REPL {
	w := world.New()
	rt := interp.NewRuntime(w, interp.NewHost(out))
	r := &REPL{
		Out:      out,
		world:    w,
		rt:       rt,
		emitter:  interp.NewEmitter(rt),
		loader:   interp.NewLoader(rt),
		pipeline: sema.NewPipeline(),
	}
	if home, err := os.UserHomeDir(); err == nil {
		r.historyPath = filepath.Join(home, ".anode_history")
	}
	return r
}

// Run reads entries from in until EOF or /exit, writing the prompt and
// every result to r.Out.
func (r *REPL) Run(in io.Reader) error {
	r.loadHistory()
	fmt.Fprintln(r.Out, "anode repl — /help for help, /exit to quit")

	scanner := bufio.NewScanner(in)
	var buf strings.Builder
	depth := 0

	fmt.Fprint(r.Out, prompt)
	for scanner.Scan() {
		line := scanner.Text()

		if buf.Len() == 0 {
			if cmd, ok := parseSlashCommand(line); ok {
				if cmd == "exit" {
					return nil
				}
				r.runSlashCommand(cmd)
				fmt.Fprint(r.Out, prompt)
				continue
			}
		}

		buf.WriteString(line)
		buf.WriteByte('\n')
		depth += strings.Count(line, "{") - strings.Count(line, "}")

		if strings.TrimSpace(buf.String()) == "" {
			buf.Reset()
			fmt.Fprint(r.Out, prompt)
			continue
		}
		if depth > 0 {
			fmt.Fprint(r.Out, "....> ")
			continue
		}

		entry := buf.String()
		buf.Reset()
		depth = 0
		r.history = append(r.history, entry)
		r.eval(entry)
		fmt.Fprint(r.Out, prompt)
	}
	r.saveHistory()
	return scanner.Err()
}

func (r *REPL) eval(src string) {
	r.entryCount++
	name := fmt.Sprintf("<repl:%d>", r.entryCount)

	mod, err := parser.ParseModule(name, []byte(src))
	if err != nil {
		fmt.Fprintln(r.Out, err)
		return
	}
	if err := r.pipeline.Run(r.world, mod); err != nil {
		fmt.Fprintln(r.Out, err)
		return
	}

	art, err := r.emitter.Emit(context.Background(), mod, nil)
	if err != nil {
		fmt.Fprintln(r.Out, err)
		return
	}
	addr, err := r.loader.Load(context.Background(), art)
	if err != nil {
		fmt.Fprintln(r.Out, err)
		return
	}
	if err := r.rt.Call(addr); err != nil {
		fmt.Fprintln(r.Out, err)
		return
	}

	r.world.AddModule(mod)
	if shadowed, err := r.world.ExportModule(mod); err != nil {
		fmt.Fprintln(r.Out, err)
	} else if len(shadowed) > 0 {
		fmt.Fprintf(r.Out, "shadowed (already defined): %s\n", strings.Join(shadowed, ", "))
	}
}

func parseSlashCommand(line string) (string, bool) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "/") {
		return "", false
	}
	return strings.TrimPrefix(line, "/"), true
}

func (r *REPL) runSlashCommand(cmd string) {
	switch {
	case cmd == "help":
		fmt.Fprint(r.Out, `Commands:
  /help     show this message
  /exit     leave the REPL
  /history  list every entry evaluated so far
  /compile  re-run the semantic pipeline over the Nth history entry and
            print its resolved AST, without re-executing it
`)
	case cmd == "history":
		for i, h := range r.history {
			fmt.Fprintf(r.Out, "%d: %s", i+1, h)
		}
	case strings.HasPrefix(cmd, "compile"):
		r.compile(strings.TrimSpace(strings.TrimPrefix(cmd, "compile")))
	default:
		fmt.Fprintf(r.Out, "unknown command: /%s\n", cmd)
	}
}

func (r *REPL) compile(arg string) {
	idx := len(r.history)
	if arg != "" {
		n, err := strconv.Atoi(arg)
		if err != nil || n < 1 || n > len(r.history) {
			fmt.Fprintf(r.Out, "/compile: invalid history index %q\n", arg)
			return
		}
		idx = n
	}
	if idx == 0 {
		fmt.Fprintln(r.Out, "/compile: history is empty")
		return
	}
	src := r.history[idx-1]
	mod, err := parser.ParseModule(fmt.Sprintf("<repl:%d>", idx), []byte(src))
	if err != nil {
		fmt.Fprintln(r.Out, err)
		return
	}
	w := world.New()
	if err := sema.NewPipeline().Run(w, mod); err != nil {
		fmt.Fprintln(r.Out, err)
		return
	}
	depth := 0
	var v ast.VisitorFunc
	v = func(n ast.Node, dir ast.VisitDirection) ast.Visitor {
		if dir == ast.VisitExit {
			depth--
			return nil
		}
		fmt.Fprintf(r.Out, "%s%v\n", strings.Repeat("  ", depth), n)
		depth++
		return v
	}
	ast.Walk(v, mod)
}

func (r *REPL) loadHistory() {
	if r.historyPath == "" {
		return
	}
	f, err := os.Open(r.historyPath)
	if err != nil {
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return
	}
	for _, entry := range strings.Split(string(data), "\x00") {
		if strings.TrimSpace(entry) != "" {
			r.history = append(r.history, entry)
		}
	}
}

func (r *REPL) saveHistory() {
	if r.historyPath == "" {
		return
	}
	f, err := os.Create(r.historyPath)
	if err != nil {
		return
	}
	defer f.Close()
	fmt.Fprint(f, strings.Join(r.history, "\x00"))
}
