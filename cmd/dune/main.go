// Command dune is the interactive shell binary: a REPL by default, or a
// one-shot evaluator given `-c`/a script file, grounded on the teacher's
// cmd/run.go cobra subcommand.
package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/adam-mcdaniel/dune/host"
	"github.com/adam-mcdaniel/dune/lang"
	"github.com/adam-mcdaniel/dune/parser"
	"github.com/adam-mcdaniel/dune/repl"
	"github.com/adam-mcdaniel/dune/stdlib"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		command    string
		noPrelude  bool
		noColor    bool
		maxDepth   int
	)

	root := &cobra.Command{
		Use:          "dune [script]",
		Short:        "dune — a small scriptable shell",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
	}
	root.Flags().StringVarP(&command, "command", "c", "", "evaluate a single command string and exit")
	root.Flags().BoolVar(&noPrelude, "no-prelude", false, "skip loading ~/.dune-prelude")
	root.Flags().BoolVar(&noColor, "no-color", false, "disable ANSI color in diagnostics")
	root.Flags().IntVar(&maxDepth, "max-recursion-depth", lang.DefaultMaxRecursionDepth, "override the recursion depth limit")

	exitCode := 0
	root.RunE = func(cmd *cobra.Command, args []string) error {
		code, err := runDune(args, command, noPrelude, noColor, maxDepth)
		exitCode = code
		return err
	}

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "dune:", err)
		if exitCode == 0 {
			exitCode = 1
		}
	}
	return exitCode
}

// runDune builds a kernel, loads the prelude unless suppressed, and
// either evaluates -c/a script file once or drops into the REPL,
// returning the process exit code per spec.md §6: 0 on clean exit, 1 on
// fatal startup error, the last command's exit code for `-c`.
func runDune(args []string, command string, noPrelude, noColor bool, maxDepth int) (int, error) {
	h := host.New()
	kernel := lang.NewKernel(h,
		lang.WithMaxRecursionDepth(maxDepth),
		lang.WithStdout(os.Stdout),
		lang.WithStderr(os.Stderr),
		lang.WithPrelude(preludePath()),
	)
	stdlib.Install(kernel.Root)

	color := !noColor && isatty.IsTerminal(os.Stdout.Fd())

	switch {
	case command != "":
		return evalOnce("<command-line>", command, kernel, color)
	case len(args) == 1:
		data, err := os.ReadFile(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, "dune:", err)
			return 1, nil
		}
		return evalOnce(args[0], string(data), kernel, color)
	default:
		r := repl.New(kernel)
		if !noPrelude {
			r.LoadPrelude(kernel.Prelude)
		}
		if err := r.Run(); err != nil {
			if exitErr, ok := err.(*lang.ExitError); ok {
				return exitErr.Code, nil
			}
			fmt.Fprintln(os.Stderr, "dune:", err)
			return 1, nil
		}
		return 0, nil
	}
}

func evalOnce(file, src string, kernel *lang.Kernel, color bool) (int, error) {
	stmts, err := parser.ParseProgram(file, src)
	if err != nil {
		if derr, ok := err.(*lang.Error); ok {
			fmt.Fprint(os.Stderr, derr.Render(src, color))
			return 1, nil
		}
		fmt.Fprintln(os.Stderr, "dune:", err)
		return 1, nil
	}
	val, err := lang.EvalProgram(stmts, kernel.Root)
	if exitErr, ok := err.(*lang.ExitError); ok {
		return exitErr.Code, nil
	}
	if err != nil {
		if derr, ok := err.(*lang.Error); ok {
			fmt.Fprint(os.Stderr, derr.Render(src, color))
			return 1, nil
		}
		fmt.Fprintln(os.Stderr, "dune:", err)
		return 1, nil
	}
	if val.IsInt() {
		return int(val.Int()), nil
	}
	return 0, nil
}

func preludePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home + string(os.PathSeparator) + ".dune-prelude"
}
