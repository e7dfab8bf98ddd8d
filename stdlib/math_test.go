package stdlib

import (
	"testing"

	"github.com/adam-mcdaniel/dune/lang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMathUnaryAndPow(t *testing.T) {
	env, _ := newTestEnv()
	v, err := mathUnary(func(f float64) float64 { return f * f })([]lang.Value{lang.Float(3)}, env)
	require.NoError(t, err)
	assert.Equal(t, float64(9), v.Float())

	v, err = mathPow([]lang.Value{lang.Int(2), lang.Int(10)}, env)
	require.NoError(t, err)
	assert.Equal(t, float64(1024), v.Float())
}

func TestMathAbsPreservesIntKind(t *testing.T) {
	env, _ := newTestEnv()
	v, err := mathAbs([]lang.Value{lang.Int(-5)}, env)
	require.NoError(t, err)
	assert.True(t, v.IsInt())
	assert.Equal(t, int64(5), v.Int())

	v, err = mathAbs([]lang.Value{lang.Float(-2.5)}, env)
	require.NoError(t, err)
	assert.True(t, v.IsFloat())
	assert.Equal(t, 2.5, v.Float())
}

func TestMathMinMax(t *testing.T) {
	env, _ := newTestEnv()
	v, err := mathMin([]lang.Value{lang.Int(3), lang.Int(1)}, env)
	require.NoError(t, err)
	assert.Equal(t, int64(1), v.Int())

	v, err = mathMax([]lang.Value{lang.Int(3), lang.Int(1)}, env)
	require.NoError(t, err)
	assert.Equal(t, int64(3), v.Int())
}

func TestMathUnaryRejectsNonNumeric(t *testing.T) {
	env, _ := newTestEnv()
	_, err := mathUnary(func(f float64) float64 { return f })([]lang.Value{lang.Str("x")}, env)
	assert.Error(t, err)
}

func TestMathModuleConstants(t *testing.T) {
	mod := mathModule()
	v, ok := mod.Get(lang.Sym("pi"))
	require.True(t, ok)
	assert.InDelta(t, 3.14159, v.Float(), 0.001)
}
