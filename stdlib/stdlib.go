// Package stdlib populates a root environment with dune's builtin
// library modules, each itself a Map value addressed via field access
// (`fmt@bold`, `os@shell`), per spec.md's "Builtin library modules... are
// populated into the root environment as opaque callable values."
package stdlib

import (
	"github.com/adam-mcdaniel/dune/lang"
	"github.com/adam-mcdaniel/dune/token"
)

var noSpan = token.Span{}

// Install binds every builtin module, plus the handful of free-standing
// top-level builtins (`eval`, `exec`, `try`), into root.
func Install(root *lang.Env) {
	root.Define("fmt", lang.MapVal(fmtModule()))
	root.Define("os", lang.MapVal(osModule()))
	root.Define("math", lang.MapVal(mathModule()))
	root.Define("parse", lang.MapVal(parseModule()))
	root.Define("console", lang.MapVal(consoleModule()))
	root.Define("fs", lang.MapVal(fsModule()))

	root.Define("eval", lang.Builtin("eval", 1, builtinEval))
	root.Define("exec", lang.Builtin("exec", 1, builtinExec))
	root.Define("try", lang.Builtin("try", 1, builtinTry))
	root.Define("exit", lang.Builtin("exit", -1, builtinExit))
}

// builtinExit implements spec.md §6's clean-exit path: `exit` with no
// arguments exits 0, `exit(n)` exits with code n. It signals the
// enclosing driver (repl.REPL, cmd/dune) via *lang.ExitError rather than
// calling os.Exit itself, so the kernel stays embeddable and testable.
func builtinExit(args []lang.Value, env *lang.Env) (lang.Value, error) {
	code := 0
	if len(args) > 0 {
		if !args[0].IsInt() {
			return lang.Value{}, lang.NewError(lang.ErrTypeMismatch, noSpan, "exit expects an integer code")
		}
		code = int(args[0].Int())
	}
	return lang.Value{}, &lang.ExitError{Code: code}
}

// module is a small builder so each *.go file in this package can list its
// builtins as a flat table, grounded on the teacher's lisp/builtins.go
// LBuiltinDef{Name, Fn} registration table idiom.
type module struct {
	m *lang.OrderedMap
}

func newModule() *module {
	return &module{m: lang.NewOrderedMap()}
}

// fn registers a fixed-arity builtin; arity -1 marks a variadic one that
// checks its own argument count.
func (mod *module) fn(name string, arity int, f lang.BuiltinFunc) *module {
	_ = mod.m.Set(lang.Sym(name), lang.Builtin(name, arity, f)) // Symbol keys are always hashable
	return mod
}

func (mod *module) val(name string, v lang.Value) *module {
	_ = mod.m.Set(lang.Sym(name), v)
	return mod
}

func (mod *module) build() *lang.OrderedMap { return mod.m }
