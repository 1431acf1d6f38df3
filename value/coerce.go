package value

import "fmt"

// The To* family coerces a Value already known (by the external type
// checker) to have a given shape. A mismatch is a programmer error — the
// checker is assumed to have run — so these panic rather than return an
// error, the same way a failed type assertion would.

func ToBool(v Value) bool {
	b, ok := v.(*Bool)
	if !ok {
		panic(fmt.Sprintf("value: expected bool, got %s", v.Kind()))
	}
	return b.B
}

func ToInt(v Value) *Int {
	n, ok := v.(*Int)
	if !ok {
		panic(fmt.Sprintf("value: expected int, got %s", v.Kind()))
	}
	return n
}

func ToStr(v Value) string {
	s, ok := v.(*Str)
	if !ok {
		panic(fmt.Sprintf("value: expected str, got %s", v.Kind()))
	}
	return s.S
}

func ToList(v Value) *List {
	l, ok := v.(*List)
	if !ok {
		panic(fmt.Sprintf("value: expected list, got %s", v.Kind()))
	}
	return l
}

func ToTuple(v Value) *Tuple {
	t, ok := v.(*Tuple)
	if !ok {
		panic(fmt.Sprintf("value: expected tuple, got %s", v.Kind()))
	}
	return t
}

func ToRecord(v Value) *Record {
	r, ok := v.(*Record)
	if !ok {
		panic(fmt.Sprintf("value: expected record, got %s", v.Kind()))
	}
	return r
}

func ToSet(v Value) Set {
	s, ok := v.(Set)
	if !ok {
		panic(fmt.Sprintf("value: expected set, got %s", v.Kind()))
	}
	return s
}

func ToMap(v Value) *Map {
	m, ok := v.(*Map)
	if !ok {
		panic(fmt.Sprintf("value: expected map, got %s", v.Kind()))
	}
	return m
}

// OrderedEntry is one key/value pair returned by ToOrderedMap.
type OrderedEntry struct{ Key, Val Value }

// ToOrderedMap coerces v to a Map and returns its entries as a stable,
// ordered slice suitable for fold/foldr iteration.
func ToOrderedMap(v Value) []OrderedEntry {
	m := ToMap(v)
	out := make([]OrderedEntry, len(m.entries))
	for i, e := range m.entries {
		out[i] = OrderedEntry{Key: e.Key, Val: e.Val}
	}
	return out
}
