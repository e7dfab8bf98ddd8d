package lang

import (
	"github.com/adam-mcdaniel/dune/ast"
	"github.com/adam-mcdaniel/dune/token"
)

// dispatchCommand implements spec.md §4.6: when an Apply's callee resolves
// to a Symbol, each argument is evaluated and converted to its string
// form (Symbols render as their bare text, so `ls -la foo` works with
// `-la` and `foo` parsed as symbols), then the host process interface is
// invoked synchronously.
func dispatchCommand(name string, argExprs []ast.Expr, env *Env, span token.Span) (Value, error) {
	argv := make([]string, 0, len(argExprs)+1)
	argv = append(argv, name)
	for _, a := range argExprs {
		v, err := Eval(a, env)
		if err != nil {
			return Value{}, err
		}
		argv = append(argv, v.String())
	}

	if env.Interrupted() {
		return Value{}, Interrupted(span)
	}

	host := env.Host()
	cwd := host.CurrentDirectory()
	code, err := host.Spawn(argv, cwd, nil)
	if err != nil {
		return Value{}, CommandNotFound(span, name)
	}
	return Int(int64(code)), nil
}

// literalExprOf converts an evaluated Value back into the ast.Expr that
// would produce it, used only when a bare Symbol value is invoked as a
// callable with already-evaluated arguments (applyValue's KindSymbol
// case): those arguments must still be threaded through dispatchCommand's
// Expr-shaped parameter list.
func literalExprOf(v Value) ast.Expr {
	switch v.Kind() {
	case KindInt:
		return ast.Integer{Value: v.Int()}
	case KindFloat:
		return ast.Float{Value: v.Float()}
	case KindString:
		return ast.String{Value: v.Str()}
	case KindBool:
		return ast.Boolean{Value: v.Bool()}
	case KindSymbol:
		return ast.Symbol{Name: v.Symbol()}
	case KindNone:
		return ast.None{}
	default:
		return ast.String{Value: v.String()}
	}
}
