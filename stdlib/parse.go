package stdlib

import (
	"github.com/adam-mcdaniel/dune/lang"
	"github.com/adam-mcdaniel/dune/parser"
	"github.com/adam-mcdaniel/dune/token"
)

// parseModule exposes the parser as data (spec.md §2: "the parser is used
// independently via a builtin (`parse@expr`) so user code can manipulate
// code as data"). A successful parse returns an Expr value; a failure
// returns the error itself (callers typically wrap the call in `try`).
func parseModule() *lang.OrderedMap {
	return newModule().
		fn("expr", 1, parseExprBuiltin).
		build()
}

func parseExprBuiltin(args []lang.Value, env *lang.Env) (lang.Value, error) {
	src := args[0]
	if !src.IsString() {
		return lang.Value{}, lang.TypeMismatch(token.Span{}, "parse@expr", src.Kind())
	}
	e, err := parser.ParseExpression("<parse@expr>", src.Str())
	if err != nil {
		return lang.Value{}, err
	}
	return lang.ExprVal(e), nil
}

// builtinEval implements spec.md §4.5's "eval (pure: evaluates an AST
// value against a fresh child env)": no binding introduced by the
// evaluated code is visible to the caller.
func builtinEval(args []lang.Value, env *lang.Env) (lang.Value, error) {
	v := args[0]
	if !v.IsExpr() {
		return lang.Value{}, lang.TypeMismatch(token.Span{}, "eval", v.Kind())
	}
	return lang.Eval(v.Expr(), env.Root().NewChild())
}

// builtinExec implements spec.md §4.5's "exec (side-effecting: evaluates
// against the *current* env and may introduce bindings)": it runs against
// the environment active at the call site, so `let`/`=` performed by the
// executed AST are visible to the caller afterward.
func builtinExec(args []lang.Value, env *lang.Env) (lang.Value, error) {
	v := args[0]
	if !v.IsExpr() {
		return lang.Value{}, lang.TypeMismatch(token.Span{}, "exec", v.Kind())
	}
	return lang.Eval(v.Expr(), env)
}
