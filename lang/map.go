package lang

import "strings"

// mapKey is a hashable representation of a Value usable as a map key:
// integers, strings, symbols, and booleans are hashable per spec.md §3;
// Float keys are hashed by their numeric value so Int and Float keys that
// compare equal collide, matching Equal's cross-kind numeric comparison.
type mapKey struct {
	kind Kind
	num  float64
	str  string
	b    bool
}

func toMapKey(v Value) (mapKey, bool) {
	switch v.kind {
	case KindInt:
		return mapKey{kind: KindInt, num: float64(v.i)}, true
	case KindFloat:
		return mapKey{kind: KindInt, num: v.f}, true
	case KindString:
		return mapKey{kind: KindString, str: v.s}, true
	case KindSymbol:
		return mapKey{kind: KindSymbol, str: v.s}, true
	case KindBool:
		return mapKey{kind: KindBool, b: v.b}, true
	case KindNone:
		return mapKey{kind: KindNone}, true
	}
	return mapKey{}, false
}

// Pair is one key/value entry of an OrderedMap.
type Pair struct {
	Key   Value
	Value Value
}

// OrderedMap is dune's Map runtime representation: a slice of pairs
// preserving insertion order (spec.md §3 invariant), backed by an index
// for O(1) lookup. Grounded in shape on the teacher's lisp/maps.go
// key-hashing helper, dropping its sort step since dune requires
// insertion order rather than alphabetical order.
type OrderedMap struct {
	pairs []Pair
	index map[mapKey]int
}

// NewOrderedMap returns an empty map ready for use.
func NewOrderedMap() *OrderedMap {
	return &OrderedMap{index: make(map[mapKey]int)}
}

// Len returns the number of entries.
func (m *OrderedMap) Len() int { return len(m.pairs) }

// Get looks up key, reporting whether it was present.
func (m *OrderedMap) Get(key Value) (Value, bool) {
	k, ok := toMapKey(key)
	if !ok {
		return Value{}, false
	}
	i, ok := m.index[k]
	if !ok {
		return Value{}, false
	}
	return m.pairs[i].Value, true
}

// Set inserts or updates key, preserving the position of an existing key
// and appending new keys at the end (insertion order).
func (m *OrderedMap) Set(key, value Value) error {
	k, ok := toMapKey(key)
	if !ok {
		return &Error{Kind: ErrTypeMismatch, Message: "unhashable map key of kind " + key.Kind().String()}
	}
	if i, exists := m.index[k]; exists {
		m.pairs[i].Value = value
		return nil
	}
	m.index[k] = len(m.pairs)
	m.pairs = append(m.pairs, Pair{Key: key, Value: value})
	return nil
}

// Delete removes key if present.
func (m *OrderedMap) Delete(key Value) {
	k, ok := toMapKey(key)
	if !ok {
		return
	}
	i, exists := m.index[k]
	if !exists {
		return
	}
	m.pairs = append(m.pairs[:i], m.pairs[i+1:]...)
	delete(m.index, k)
	for kk, idx := range m.index {
		if idx > i {
			m.index[kk] = idx - 1
		}
	}
}

// Pairs returns the entries in insertion order. Callers must not mutate
// the returned slice.
func (m *OrderedMap) Pairs() []Pair { return m.pairs }

// Keys returns the keys in insertion order, used by `for k in someMap`.
func (m *OrderedMap) Keys() []Value {
	keys := make([]Value, len(m.pairs))
	for i, p := range m.pairs {
		keys[i] = p.Key
	}
	return keys
}

// Clone returns a shallow copy with its own backing slice/index, used by
// operator overloading's default map-merge ("+") so the operands are
// never mutated.
func (m *OrderedMap) Clone() *OrderedMap {
	out := NewOrderedMap()
	for _, p := range m.pairs {
		out.Set(p.Key, p.Value)
	}
	return out
}

// EqualIgnoringOrder implements spec.md §3: map equality ignores order.
func (a *OrderedMap) EqualIgnoringOrder(b *OrderedMap) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Len() != b.Len() {
		return false
	}
	for _, p := range a.pairs {
		v, ok := b.Get(p.Key)
		if !ok || !Equal(p.Value, v) {
			return false
		}
	}
	return true
}

func (m *OrderedMap) String() string {
	if m == nil || len(m.pairs) == 0 {
		return "{}"
	}
	var sb strings.Builder
	sb.WriteByte('{')
	for i, p := range m.pairs {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.Key.Repr())
		sb.WriteString(": ")
		sb.WriteString(p.Value.Repr())
	}
	sb.WriteByte('}')
	return sb.String()
}

// Merge returns a new map containing a's entries overlaid with b's,
// implementing the "right wins on collision" rule from spec.md §4.4's
// default `+` behavior on maps.
func Merge(a, b *OrderedMap) *OrderedMap {
	out := a.Clone()
	for _, p := range b.Pairs() {
		out.Set(p.Key, p.Value)
	}
	return out
}
