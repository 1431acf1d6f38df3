package value

// mapEntry is one key/value pair of a Map, kept in declaration order.
type mapEntry struct {
	Key, Val Value
}

// Map is an ordered mapping from value to value; keys compare by
// NormalForm, not by identity, so `Map(1, "a")` and a key built from any
// expression normalizing to 1 refer to the same entry.
type Map struct{ entries []mapEntry }

// NewMap builds a Map from parallel key/value slices. A repeated key (by
// NormalForm) keeps its original position but takes the later value.
func NewMap(keys, vals []Value) *Map {
	m := &Map{}
	for i, k := range keys {
		m = m.Put(k, vals[i])
	}
	return m
}

func (m *Map) Kind() Kind { return MapKind }

func (m *Map) indexOf(k Value) int {
	key := string(NormalForm(k))
	for i, e := range m.entries {
		if string(NormalForm(e.Key)) == key {
			return i
		}
	}
	return -1
}

// Get looks up k, failing if absent (the `get` opcode).
func (m *Map) Get(k Value) (Value, bool) {
	if i := m.indexOf(k); i >= 0 {
		return m.entries[i].Val, true
	}
	return nil, false
}

// Set replaces the value at an existing key k, failing if absent (the
// `set`/`setBy` opcodes).
func (m *Map) Set(k, v Value) (*Map, bool) {
	i := m.indexOf(k)
	if i < 0 {
		return nil, false
	}
	out := &Map{entries: append([]mapEntry(nil), m.entries...)}
	out.entries[i].Val = v
	return out, true
}

// Put adds or overwrites the entry for k (the `put` opcode).
func (m *Map) Put(k, v Value) *Map {
	out := &Map{entries: append([]mapEntry(nil), m.entries...)}
	if i := out.indexOf(k); i >= 0 {
		out.entries[i].Val = v
		return out
	}
	out.entries = append(out.entries, mapEntry{Key: k, Val: v})
	return out
}

// Keys returns the map's domain as a set, in the map's own entry order.
func (m *Map) Keys() *ExplicitSet {
	keys := make([]Value, len(m.entries))
	for i, e := range m.entries {
		keys[i] = e.Key
	}
	return NewExplicitSet(keys...)
}

// Len reports the number of entries.
func (m *Map) Len() int { return len(m.entries) }

// Range iterates entries in declaration order, stopping early if f returns
// false.
func (m *Map) Range(f func(k, v Value) bool) {
	for _, e := range m.entries {
		if !f(e.Key, e.Val) {
			return
		}
	}
}

func (m *Map) String() string {
	s := "Map("
	for i, e := range m.entries {
		if i > 0 {
			s += ", "
		}
		s += e.Key.String() + ": " + e.Val.String()
	}
	return s + ")"
}

func (m *Map) normalForm(buf []byte) []byte {
	encoded := make([][]byte, len(m.entries))
	for i, e := range m.entries {
		var eb []byte
		eb = e.Key.normalForm(eb)
		eb = e.Val.normalForm(eb)
		encoded[i] = eb
	}
	// Insertion sort: map arity is small in practice and this avoids
	// pulling in sort.Slice's reflection path for a hot equality path.
	for i := 1; i < len(encoded); i++ {
		for j := i; j > 0 && string(encoded[j-1]) > string(encoded[j]); j-- {
			encoded[j-1], encoded[j] = encoded[j], encoded[j-1]
		}
	}
	buf = append(buf, 'M')
	buf = appendVarint(buf, int64(len(encoded)))
	for _, e := range encoded {
		buf = appendVarint(buf, int64(len(e)))
		buf = append(buf, e...)
	}
	return buf
}
