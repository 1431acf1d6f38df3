// Package value implements the runtime value domain of the evaluator:
// booleans, arbitrary-precision integers, strings, tuples, records, lists,
// sets, and maps, together with their structural equality and the
// normal-form encoding used for map keys.
//
// Collections are persistent: every update (With, Append, ...) returns a
// new Value without mutating the receiver. This lets the simulator snapshot
// register state by copying an (immutable) Value reference instead of a
// deep clone.
package value

import (
	"fmt"
	"math/big"

	"github.com/cockroachdb/apd/v3"
)

// A Value is any runtime value produced by the evaluator.
type Value interface {
	Kind() Kind

	// normalForm appends this value's canonical encoding to buf and
	// returns the result. Two values are Equal iff their normal forms,
	// compared byte for byte, match.
	normalForm(buf []byte) []byte

	// String renders a debug representation. Not used for equality.
	String() string
}

// Bool is the boolean value.
type Bool struct{ B bool }

func NewBool(b bool) *Bool { return &Bool{B: b} }

func (b *Bool) Kind() Kind     { return BoolKind }
func (b *Bool) String() string { return fmt.Sprintf("%t", b.B) }
func (b *Bool) normalForm(buf []byte) []byte {
	if b.B {
		return append(buf, 'T')
	}
	return append(buf, 'F')
}

// Str is the string value.
type Str struct{ S string }

func NewStr(s string) *Str { return &Str{S: s} }

func (s *Str) Kind() Kind     { return StrKind }
func (s *Str) String() string { return fmt.Sprintf("%q", s.S) }
func (s *Str) normalForm(buf []byte) []byte {
	buf = append(buf, 's')
	buf = appendVarint(buf, int64(len(s.S)))
	return append(buf, s.S...)
}

// apdCtx is an exact (unrounded, precision 0) apd context for Int. Nothing
// in this module currently calls it: all integer opcodes work on the
// math/big value returned by Big (the Coeff backing the decimal), the way
// the teacher's own intOp helper bypasses decimal rounding for integer ops.
var apdCtx = apd.BaseContext.WithPrecision(0)

// Int is an arbitrary-precision integer, stored as an apd.Decimal with a
// zero exponent so that Coeff is always the exact integer magnitude.
type Int struct{ X apd.Decimal }

// NewInt wraps a machine int64 as an Int.
func NewInt(n int64) *Int {
	return &Int{X: *apd.New(n, 0)}
}

// NewIntFromBig wraps an arbitrary-precision big.Int as an Int.
func NewIntFromBig(n *big.Int) *Int {
	var d apd.Decimal
	d.Coeff.Set(n)
	if d.Coeff.Sign() < 0 {
		d.Coeff.Neg(&d.Coeff)
		d.Negative = true
	}
	return &Int{X: d}
}

// Big returns the exact value of n as a big.Int.
func (n *Int) Big() *big.Int {
	z := new(big.Int).Set(&n.X.Coeff)
	if n.X.Negative {
		z.Neg(z)
	}
	return z
}

func (n *Int) Kind() Kind     { return IntKind }
func (n *Int) String() string { return n.X.String() }
func (n *Int) normalForm(buf []byte) []byte {
	buf = append(buf, 'i')
	return append(buf, n.Big().String()...)
}

// Tuple is an ordered, fixed-arity sequence.
type Tuple struct{ Elems []Value }

func NewTuple(elems ...Value) *Tuple {
	return &Tuple{Elems: append([]Value(nil), elems...)}
}

func (t *Tuple) Kind() Kind     { return TupleKind }
func (t *Tuple) Len() int       { return len(t.Elems) }
func (t *Tuple) String() string { return joinValues("(", t.Elems, ")") }

// Item returns the 1-based i'th component.
func (t *Tuple) Item(i int) (Value, bool) {
	if i < 1 || i > len(t.Elems) {
		return nil, false
	}
	return t.Elems[i-1], true
}

func (t *Tuple) normalForm(buf []byte) []byte {
	buf = append(buf, 'T')
	buf = appendVarint(buf, int64(len(t.Elems)))
	for _, e := range t.Elems {
		buf = e.normalForm(buf)
	}
	return buf
}

// recordField is one field of a Record, kept in declaration order so
// iteration (fold, export) is stable while equality ignores order.
type recordField struct {
	Name  string
	Value Value
}

// Record is an ordered mapping from field name to value.
type Record struct{ fields []recordField }

func NewRecord(names []string, values []Value) *Record {
	r := &Record{fields: make([]recordField, len(names))}
	for i, n := range names {
		r.fields[i] = recordField{Name: n, Value: values[i]}
	}
	return r
}

func (r *Record) Kind() Kind { return RecordKind }

func (r *Record) Field(name string) (Value, bool) {
	for _, f := range r.fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// FieldNames returns the field names in declaration order.
func (r *Record) FieldNames() []string {
	names := make([]string, len(r.fields))
	for i, f := range r.fields {
		names[i] = f.Name
	}
	return names
}

// With returns a copy of r with field name set to v, replacing it if
// present or appending it otherwise.
func (r *Record) With(name string, v Value) *Record {
	out := &Record{fields: append([]recordField(nil), r.fields...)}
	for i, f := range out.fields {
		if f.Name == name {
			out.fields[i].Value = v
			return out
		}
	}
	out.fields = append(out.fields, recordField{Name: name, Value: v})
	return out
}

func (r *Record) String() string {
	s := "{"
	for i, f := range r.fields {
		if i > 0 {
			s += ", "
		}
		s += f.Name + ": " + f.Value.String()
	}
	return s + "}"
}

func (r *Record) normalForm(buf []byte) []byte {
	sorted := append([]recordField(nil), r.fields...)
	sortFields(sorted)
	buf = append(buf, 'R')
	buf = appendVarint(buf, int64(len(sorted)))
	for _, f := range sorted {
		buf = appendVarint(buf, int64(len(f.Name)))
		buf = append(buf, f.Name...)
		buf = f.Value.normalForm(buf)
	}
	return buf
}

func sortFields(fields []recordField) {
	// Small field counts dominate in practice; insertion sort keeps this
	// allocation-free and avoids pulling in sort.Slice's reflection path.
	for i := 1; i < len(fields); i++ {
		for j := i; j > 0 && fields[j-1].Name > fields[j].Name; j-- {
			fields[j-1], fields[j] = fields[j], fields[j-1]
		}
	}
}

// List is an ordered, mutable-length sequence.
type List struct{ Elems []Value }

func NewList(elems ...Value) *List {
	return &List{Elems: append([]Value(nil), elems...)}
}

func (l *List) Kind() Kind     { return ListKind }
func (l *List) Len() int       { return len(l.Elems) }
func (l *List) String() string { return joinValues("[", l.Elems, "]") }

func (l *List) normalForm(buf []byte) []byte {
	buf = append(buf, 'L')
	buf = appendVarint(buf, int64(len(l.Elems)))
	for _, e := range l.Elems {
		buf = e.normalForm(buf)
	}
	return buf
}

// Nth returns the 0-based i'th element.
func (l *List) Nth(i int) (Value, bool) {
	if i < 0 || i >= len(l.Elems) {
		return nil, false
	}
	return l.Elems[i], true
}

// ReplaceAt returns a copy of l with index i set to v.
func (l *List) ReplaceAt(i int, v Value) (*List, bool) {
	if i < 0 || i >= len(l.Elems) {
		return nil, false
	}
	out := append([]Value(nil), l.Elems...)
	out[i] = v
	return &List{Elems: out}, true
}

// Slice returns elements [start, end).
func (l *List) Slice(start, end int) (*List, bool) {
	if start < 0 || end < start || end > len(l.Elems) {
		return nil, false
	}
	out := append([]Value(nil), l.Elems[start:end]...)
	return &List{Elems: out}, true
}

// Append returns a copy of l with vs appended.
func (l *List) Append(vs ...Value) *List {
	out := append([]Value(nil), l.Elems...)
	out = append(out, vs...)
	return &List{Elems: out}
}

// Concat returns the concatenation of l and other.
func (l *List) Concat(other *List) *List {
	out := append([]Value(nil), l.Elems...)
	out = append(out, other.Elems...)
	return &List{Elems: out}
}

func joinValues(open string, vs []Value, close string) string {
	s := open
	for i, v := range vs {
		if i > 0 {
			s += ", "
		}
		s += v.String()
	}
	return s + close
}

func appendVarint(buf []byte, n int64) []byte {
	var tmp [10]byte
	m := uint64(n)
	i := 0
	for {
		b := byte(m & 0x7f)
		m >>= 7
		if m != 0 {
			tmp[i] = b | 0x80
		} else {
			tmp[i] = b
		}
		i++
		if m == 0 {
			break
		}
	}
	return append(buf, tmp[:i]...)
}
