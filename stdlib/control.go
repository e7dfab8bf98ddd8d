package stdlib

import (
	"github.com/adam-mcdaniel/dune/lang"
	"github.com/adam-mcdaniel/dune/token"
)

// builtinTry implements the SUPPLEMENTED FEATURES `try` builtin: it takes
// a quoted expression (the same Expr value `parse@expr` or `'(...)`
// produces), evaluates it against the caller's environment, and converts
// any resulting *lang.Error into a tagged Map rather than letting it
// propagate, grounded on original_source/src/error.rs's codes() table for
// the kind/code fields. `try(someExpr)` returns a Map with an "ok" key; on
// success it also carries "value", on failure "kind", "code", "message",
// and "span". An error that is not a *lang.Error (such as exit's
// *lang.ExitError) propagates unchanged, and a non-Expr argument is a
// TypeMismatch.
func builtinTry(args []lang.Value, env *lang.Env) (lang.Value, error) {
	v := args[0]
	if !v.IsExpr() {
		return lang.Value{}, lang.TypeMismatch(token.Span{}, "try", v.Kind())
	}
	result, err := lang.Eval(v.Expr(), env)
	m := lang.NewOrderedMap()
	if err == nil {
		_ = m.Set(lang.Sym("ok"), lang.Bool(true))
		_ = m.Set(lang.Sym("value"), result)
		return lang.MapVal(m), nil
	}
	derr, ok := err.(*lang.Error)
	if !ok {
		return lang.Value{}, err
	}
	_ = m.Set(lang.Sym("ok"), lang.Bool(false))
	_ = m.Set(lang.Sym("kind"), lang.Str(derr.Kind.String()))
	_ = m.Set(lang.Sym("code"), lang.Int(int64(derr.Kind.Code())))
	_ = m.Set(lang.Sym("message"), lang.Str(derr.Message))
	_ = m.Set(lang.Sym("span"), lang.Str(derr.Span.String()))
	return lang.MapVal(m), nil
}
