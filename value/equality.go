package value

import "bytes"

// NormalForm returns the canonical byte encoding of v. It is used as a map
// key and as the basis for structural Equals: two values compare equal iff
// their normal forms are byte-identical. Element order in sets and record
// field order are erased; integers are normalized through Int.Big so that
// "007" and "7" (however they arose) compare equal.
func NormalForm(v Value) []byte {
	return v.normalForm(nil)
}

// Equals reports whether a and b are structurally equal: same constructor,
// pairwise-equal components, with set/map order and record field order
// ignored.
func Equals(a, b Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	return bytes.Equal(NormalForm(a), NormalForm(b))
}
