package lang

import "github.com/adam-mcdaniel/dune/ast"

// EvalTopLevel evaluates one top-level statement, applying spec.md §4.6's
// special case: a bare Symbol statement with no arguments is a command
// dispatch with zero extra args unless the symbol resolves to a bound
// value, in which case the binding wins (shadowing). Nested occurrences of
// a Symbol (anywhere other than directly as a top-level statement) use
// plain Eval's lookup-or-return-self behavior instead, which is how
// `'ls` (a Quote, not a bare statement) keeps referring to the symbol
// itself per spec.md's explicit quoting carve-out.
func EvalTopLevel(expr ast.Expr, env *Env) (Value, error) {
	if sym, ok := expr.(ast.Symbol); ok {
		if v, bound := env.Lookup(sym.Name); bound {
			return v, nil
		}
		return dispatchCommand(sym.Name, nil, env, sym.Span())
	}
	return Eval(expr, env)
}

// EvalProgram evaluates a sequence of top-level statements in order,
// returning the value of the last one (spec.md §2: "the REPL loop
// re-enters at the evaluator for each top-level input").
func EvalProgram(stmts []ast.Expr, env *Env) (Value, error) {
	result := None()
	for _, s := range stmts {
		v, err := EvalTopLevel(s, env)
		if err != nil {
			return Value{}, err
		}
		result = v
	}
	return result, nil
}
