package value

// Kind identifies the runtime shape of a Value. Unlike the type checker
// (out of scope for this package), Kind is used only for diagnostics and for
// distinguishing set shapes; no dynamic kind checking gates evaluation.
type Kind int

const (
	BoolKind Kind = iota
	IntKind
	StrKind
	TupleKind
	RecordKind
	ListKind
	SetKind
	MapKind
)

func (k Kind) String() string {
	switch k {
	case BoolKind:
		return "bool"
	case IntKind:
		return "int"
	case StrKind:
		return "str"
	case TupleKind:
		return "tuple"
	case RecordKind:
		return "record"
	case ListKind:
		return "list"
	case SetKind:
		return "set"
	case MapKind:
		return "map"
	default:
		return "unknown"
	}
}
