package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderedMapPreservesInsertionOrder(t *testing.T) {
	m := NewOrderedMap()
	require.NoError(t, m.Set(Str("z"), Int(1)))
	require.NoError(t, m.Set(Str("a"), Int(2)))
	require.NoError(t, m.Set(Str("m"), Int(3)))

	keys := m.Keys()
	require.Len(t, keys, 3)
	assert.Equal(t, "z", keys[0].Str())
	assert.Equal(t, "a", keys[1].Str())
	assert.Equal(t, "m", keys[2].Str())
}

func TestOrderedMapSetUpdatesInPlace(t *testing.T) {
	m := NewOrderedMap()
	m.Set(Str("k"), Int(1))
	m.Set(Str("k"), Int(2))
	assert.Equal(t, 1, m.Len())
	v, ok := m.Get(Str("k"))
	require.True(t, ok)
	assert.Equal(t, int64(2), v.Int())
}

func TestOrderedMapDelete(t *testing.T) {
	m := NewOrderedMap()
	m.Set(Str("a"), Int(1))
	m.Set(Str("b"), Int(2))
	m.Delete(Str("a"))
	_, ok := m.Get(Str("a"))
	assert.False(t, ok)
	v, ok := m.Get(Str("b"))
	require.True(t, ok)
	assert.Equal(t, int64(2), v.Int())
}

func TestOrderedMapUnhashableKeyErrors(t *testing.T) {
	m := NewOrderedMap()
	err := m.Set(List([]Value{Int(1)}), Int(1))
	assert.Error(t, err)
}

func TestOrderedMapIntFloatKeyCollide(t *testing.T) {
	m := NewOrderedMap()
	m.Set(Int(1), Str("int-one"))
	v, ok := m.Get(Float(1.0))
	require.True(t, ok, "Int and Float keys that compare equal should collide, matching Equal")
	assert.Equal(t, "int-one", v.Str())
}

func TestOrderedMapCloneIsIndependent(t *testing.T) {
	m := NewOrderedMap()
	m.Set(Str("a"), Int(1))
	clone := m.Clone()
	clone.Set(Str("a"), Int(2))
	v, _ := m.Get(Str("a"))
	assert.Equal(t, int64(1), v.Int(), "mutating a clone must not affect the original")
}

func TestMergeRightWinsOnCollision(t *testing.T) {
	a := NewOrderedMap()
	a.Set(Str("x"), Int(1))
	b := NewOrderedMap()
	b.Set(Str("x"), Int(2))
	merged := Merge(a, b)
	v, _ := merged.Get(Str("x"))
	assert.Equal(t, int64(2), v.Int())
}

func TestOrderedMapEqualIgnoringOrder(t *testing.T) {
	a := NewOrderedMap()
	a.Set(Str("x"), Int(1))
	a.Set(Str("y"), Int(2))
	b := NewOrderedMap()
	b.Set(Str("y"), Int(2))
	b.Set(Str("x"), Int(1))
	assert.True(t, a.EqualIgnoringOrder(b))
}
