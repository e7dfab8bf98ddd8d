package stdlib

import (
	"testing"

	"github.com/adam-mcdaniel/dune/ast"
	"github.com/adam-mcdaniel/dune/lang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExprBuiltinReturnsExprValue(t *testing.T) {
	env, _ := newTestEnv()
	v, err := parseExprBuiltin([]lang.Value{lang.Str("1 + 2")}, env)
	require.NoError(t, err)
	require.True(t, v.IsExpr())
	assert.IsType(t, ast.BinOp{}, v.Expr())
}

func TestParseExprBuiltinPropagatesSyntaxError(t *testing.T) {
	env, _ := newTestEnv()
	_, err := parseExprBuiltin([]lang.Value{lang.Str("1 +")}, env)
	assert.Error(t, err)
}

func TestBuiltinEvalDoesNotLeakBindings(t *testing.T) {
	env, _ := newTestEnv()
	quoted := lang.ExprVal(ast.Let{Bindings: []ast.LetBinding{{Name: "x", Value: ast.Integer{Value: 5}}}})
	v, err := builtinEval([]lang.Value{quoted}, env)
	require.NoError(t, err)
	assert.Equal(t, int64(5), v.Int())

	_, bound := env.Lookup("x")
	assert.False(t, bound, "eval must run against a fresh child so let bindings don't escape")
}

func TestBuiltinExecLeaksBindingsToCaller(t *testing.T) {
	env, _ := newTestEnv()
	quoted := lang.ExprVal(ast.Let{Bindings: []ast.LetBinding{{Name: "y", Value: ast.Integer{Value: 9}}}})
	_, err := builtinExec([]lang.Value{quoted}, env)
	require.NoError(t, err)

	v, bound := env.Lookup("y")
	require.True(t, bound, "exec must run against the caller's env so let bindings persist")
	assert.Equal(t, int64(9), v.Int())
}
