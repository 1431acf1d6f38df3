package compile

import (
	"fmt"

	"github.com/HosamIntel/quint/internal/ir"
	"github.com/HosamIntel/quint/value"
)

// RegKind distinguishes the four register roles named in the spec.
type RegKind int

const (
	// VarReg holds a state variable's current-state value.
	VarReg RegKind = iota
	// NextVarReg holds a state variable's speculative next-state value.
	NextVarReg
	// ArgReg holds a lambda or operator parameter.
	ArgReg
	// ShadowReg holds simulator bookkeeping, such as the last trace.
	ShadowReg
)

// A Register is a named mutable slot holding an optional value. Reading an
// unset register is a runtime error attributed to DeclID.
type Register struct {
	Kind   RegKind
	Name   string
	DeclID ir.ID

	val value.Value
	set bool
}

// NewRegister creates an unset register.
func NewRegister(kind RegKind, name string, declID ir.ID) *Register {
	return &Register{Kind: kind, Name: name, DeclID: declID}
}

// Get returns the register's current value, or an error attributed to
// DeclID if it has never been set.
func (r *Register) Get() (value.Value, error) {
	if !r.set {
		return nil, &RuntimeError{
			Ref:     r.DeclID,
			Message: fmt.Sprintf("%s %q read before it was ever set", regKindName(r.Kind), r.Name),
		}
	}
	return r.val, nil
}

// Set stores v, marking the register set.
func (r *Register) Set(v value.Value) {
	r.val = v
	r.set = true
}

// IsSet reports whether the register currently holds a value.
func (r *Register) IsSet() bool { return r.set }

// Unset clears the register, as the simulator does to next-state registers
// after each shift.
func (r *Register) Unset() {
	r.val = nil
	r.set = false
}

// Snapshot is an independent copy of a register's state: since Values are
// persistent, copying the (Value, bool) pair is enough — mutating the live
// register afterward cannot mutate a held snapshot.
type Snapshot struct {
	val value.Value
	set bool
}

// Snapshot captures r's current state.
func (r *Register) Snapshot() Snapshot { return Snapshot{val: r.val, set: r.set} }

// Restore writes a previously captured Snapshot back into r.
func (r *Register) Restore(s Snapshot) {
	r.val = s.val
	r.set = s.set
}

func regKindName(k RegKind) string {
	switch k {
	case VarReg:
		return "var"
	case NextVarReg:
		return "next-state var"
	case ArgReg:
		return "argument"
	case ShadowReg:
		return "shadow"
	default:
		return "register"
	}
}

// RuntimeError is a single evaluation-time failure, attributed to the IR
// node whose evaluation raised it.
type RuntimeError struct {
	Ref     ir.ID
	Message string
}

func (e *RuntimeError) Error() string { return e.Message }

// References implements errors.Error so RuntimeErrors can be aggregated by
// the shared errors package.
func (e *RuntimeError) References() []int { return []int{int(e.Ref)} }

func (e *RuntimeError) Msg() (string, []interface{}) { return e.Message, nil }
