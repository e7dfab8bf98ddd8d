package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruthy(t *testing.T) {
	assert.False(t, None().Truthy())
	assert.False(t, Bool(false).Truthy())
	assert.False(t, Int(0).Truthy())
	assert.False(t, Float(0).Truthy())
	assert.False(t, Str("").Truthy())
	assert.False(t, List(nil).Truthy())
	assert.False(t, MapVal(NewOrderedMap()).Truthy())

	assert.True(t, Bool(true).Truthy())
	assert.True(t, Int(1).Truthy())
	assert.True(t, Int(-1).Truthy())
	assert.True(t, Str("x").Truthy())
	assert.True(t, List([]Value{Int(0)}).Truthy())
	assert.True(t, Sym("anything").Truthy())
}

func TestEqualNumericCrossKind(t *testing.T) {
	assert.True(t, Equal(Int(2), Float(2.0)))
	assert.True(t, Equal(Float(2.0), Int(2)))
	assert.False(t, Equal(Int(2), Float(2.5)))
}

func TestEqualSymbolVsString(t *testing.T) {
	assert.True(t, Equal(Sym("x"), Sym("x")))
	assert.False(t, Equal(Sym("x"), Str("x")))
}

func TestEqualListOrdered(t *testing.T) {
	a := List([]Value{Int(1), Int(2)})
	b := List([]Value{Int(1), Int(2)})
	c := List([]Value{Int(2), Int(1)})
	assert.True(t, Equal(a, b))
	assert.False(t, Equal(a, c))
}

func TestEqualMapIgnoresOrder(t *testing.T) {
	m1 := NewOrderedMap()
	m1.Set(Str("a"), Int(1))
	m1.Set(Str("b"), Int(2))
	m2 := NewOrderedMap()
	m2.Set(Str("b"), Int(2))
	m2.Set(Str("a"), Int(1))
	assert.True(t, Equal(MapVal(m1), MapVal(m2)))
}

func TestCompareNumbers(t *testing.T) {
	c, ok := Compare(Int(1), Float(2.0))
	assert.True(t, ok)
	assert.Equal(t, -1, c)
}

func TestCompareStrings(t *testing.T) {
	c, ok := Compare(Str("a"), Str("b"))
	assert.True(t, ok)
	assert.Less(t, c, 0)
}

func TestCompareUnordered(t *testing.T) {
	_, ok := Compare(MapVal(NewOrderedMap()), MapVal(NewOrderedMap()))
	assert.False(t, ok)
}

func TestValueStringRendering(t *testing.T) {
	assert.Equal(t, "42", Int(42).String())
	assert.Equal(t, "3.5", Float(3.5).String())
	assert.Equal(t, "hello", Str("hello").String())
	assert.Equal(t, "hello", Sym("hello").String())
	assert.Equal(t, "[1, 2]", List([]Value{Int(1), Int(2)}).String())
}

func TestValueRepr(t *testing.T) {
	assert.Equal(t, `"hi"`, Str("hi").Repr())
	assert.Equal(t, "hi", Sym("hi").Repr())
}

func TestFormatFloatIntegral(t *testing.T) {
	assert.Equal(t, "1.0", Float(1).String())
	assert.Equal(t, "1.5", Float(1.5).String())
}
