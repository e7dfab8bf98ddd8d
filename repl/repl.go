// Package repl drives an interactive dune session: line editing, prompt
// hooks, multi-line continuation, and Ctrl-C cancellation, grounded on
// the teacher's repl/repl.go chzyer/readline loop.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/chzyer/readline"
	"github.com/mattn/go-isatty"

	"github.com/adam-mcdaniel/dune/lang"
	"github.com/adam-mcdaniel/dune/parser"
)

const (
	defaultPrompt             = "dune> "
	defaultIncompletePrompt   = "....> "
	historyFileName           = ".dune_history"
)

// REPL reads statements from an input stream, evaluates each against a
// shared root environment, and reports results via the conventionally
// named `report` hook (spec.md §4.7).
type REPL struct {
	kernel *lang.Kernel
	env    *lang.Env
	out    io.Writer
}

// New returns a REPL bound to kernel's root environment.
func New(kernel *lang.Kernel) *REPL {
	out := kernel.Stdout
	if out == nil {
		out = os.Stdout
	}
	return &REPL{kernel: kernel, env: kernel.Root, out: out}
}

// Run drives the interactive loop on stdin/stdout. When stdin is not a
// terminal (go-isatty), it falls back to a plain line-buffered scanner so
// dune still works at the end of a pipe; readline's fancy editing is only
// engaged for a real TTY, matching nperez-losp's use of the same library
// for TTY detection.
func (r *REPL) Run() error {
	if isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return r.runInteractive()
	}
	return r.runPiped()
}

func (r *REPL) runInteractive() error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          r.hookString("prompt", defaultPrompt),
		HistoryFile:     historyPath(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	defer signal.Stop(sigCh)
	go func() {
		for range sigCh {
			r.env.SetInterrupt(true)
		}
	}()

	var buf strings.Builder
	for {
		rl.SetPrompt(r.currentPrompt(buf.Len() > 0))
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			buf.Reset()
			r.env.SetInterrupt(false)
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		buf.WriteString(line)
		buf.WriteByte('\n')

		stmts, perr := parser.ParseProgram("<repl>", buf.String())
		if parser.IsIncomplete(perr) {
			continue
		}
		src := buf.String()
		buf.Reset()
		if perr != nil {
			r.report(nil, perr, src)
			continue
		}
		r.env.SetInterrupt(false)
		val, err := lang.EvalProgram(stmts, r.env)
		if exitErr, ok := err.(*lang.ExitError); ok {
			return exitErr
		}
		r.report(&val, err, src)
	}
}

// runPiped evaluates one statement per line read from stdin, with no
// readline editing, for scripted/non-interactive use (`dune < script`).
func (r *REPL) runPiped() error {
	sc := bufio.NewScanner(os.Stdin)
	var buf strings.Builder
	for sc.Scan() {
		buf.WriteString(sc.Text())
		buf.WriteByte('\n')
		stmts, perr := parser.ParseProgram("<stdin>", buf.String())
		if parser.IsIncomplete(perr) {
			continue
		}
		src := buf.String()
		buf.Reset()
		if perr != nil {
			r.report(nil, perr, src)
			continue
		}
		val, err := lang.EvalProgram(stmts, r.env)
		if exitErr, ok := err.(*lang.ExitError); ok {
			return exitErr
		}
		r.report(&val, err, src)
	}
	return sc.Err()
}

// report renders a statement's outcome via the `report` hook if the user
// has bound one, falling back to a plain stdout/stderr print.
func (r *REPL) report(val *lang.Value, err error, src string) {
	if err != nil {
		if derr, ok := err.(*lang.Error); ok {
			_, _ = r.env.Host().StderrWrite([]byte(derr.Render(src, false)))
			return
		}
		fmt.Fprintln(r.out, "error:", err)
		return
	}
	if hook, ok := r.env.Lookup("report"); ok && hook.IsCallable() && !hook.IsSymbol() {
		if _, err := lang.Call(hook, []lang.Value{*val}, r.env); err == nil {
			return
		}
	}
	if val.IsNone() {
		return
	}
	fmt.Fprintln(r.out, val.Repr())
}

// currentPrompt picks between `prompt` and `incomplete_prompt` (spec.md
// §4.7), falling back to defaults when the user hasn't bound either.
func (r *REPL) currentPrompt(continuing bool) string {
	if continuing {
		return r.hookString("incomplete_prompt", defaultIncompletePrompt)
	}
	return r.hookString("prompt", defaultPrompt)
}

func (r *REPL) hookString(name, fallback string) string {
	v, ok := r.env.Lookup(name)
	if !ok {
		return fallback
	}
	if v.IsString() {
		return v.Str()
	}
	if v.IsCallable() && !v.IsSymbol() {
		out, err := lang.Call(v, nil, r.env)
		if err == nil && out.IsString() {
			return out.Str()
		}
	}
	return fallback
}

// LoadPrelude reads and evaluates path in the REPL's root environment
// (spec.md §6: "On REPL start the driver loads <home>/.dune-prelude...
// if present"). A missing file is silently skipped; a parse or
// evaluation error is reported through the normal error path but does
// not prevent the REPL from starting with whatever state the prelude
// managed to establish before failing.
func (r *REPL) LoadPrelude(path string) {
	if path == "" {
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	src := string(data)
	stmts, perr := parser.ParseProgram(path, src)
	if perr != nil {
		r.report(nil, perr, src)
		return
	}
	val, err := lang.EvalProgram(stmts, r.env)
	if err != nil {
		r.report(nil, err, src)
		return
	}
	_ = val
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return historyFileName
	}
	return home + string(os.PathSeparator) + historyFileName
}
