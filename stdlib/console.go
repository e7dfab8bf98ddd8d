package stdlib

import (
	"strings"

	"github.com/adam-mcdaniel/dune/lang"
)

// consoleModule is the interactive counterpart to fmt's pure formatting
// helpers: print/println/error write through the Host's stdout/stderr
// seam (spec.md §6), so substituting a test Host captures console output
// without touching the real terminal.
func consoleModule() *lang.OrderedMap {
	return newModule().
		fn("print", -1, consolePrint).
		fn("println", -1, consolePrintln).
		fn("error", -1, consoleError).
		build()
}

func consolePrint(args []lang.Value, env *lang.Env) (lang.Value, error) {
	return lang.None(), writeJoined(env, args, "")
}

func consolePrintln(args []lang.Value, env *lang.Env) (lang.Value, error) {
	return lang.None(), writeJoined(env, args, "\n")
}

func consoleError(args []lang.Value, env *lang.Env) (lang.Value, error) {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	_, err := env.Host().StderrWrite([]byte(strings.Join(parts, " ") + "\n"))
	return lang.None(), err
}
