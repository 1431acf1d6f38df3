package ir

// Type is the IR's type-expression sum. The type/effect checker that
// assigns and verifies these is out of scope here; the evaluator performs
// no dynamic type checking. Types are carried through so that the resolver
// can still validate named-type references (ConstType) against the
// module's type-definition table.
type Type interface {
	Node
	typeNode()
}

// BasicType is one of the primitive types: int, str, bool.
type BasicType struct {
	ID_  ID
	Name string // "int", "str", or "bool"
}

func (x *BasicType) NodeID() ID  { return x.ID_ }
func (x *BasicType) node()       {}
func (x *BasicType) typeNode()   {}

// ConstType is a reference to a named type definition.
type ConstType struct {
	ID_  ID
	Name string
}

func (x *ConstType) NodeID() ID { return x.ID_ }
func (x *ConstType) node()      {}
func (x *ConstType) typeNode()  {}

// VarType is a type variable, as introduced by a polymorphic operator
// signature.
type VarType struct {
	ID_  ID
	Name string
}

func (x *VarType) NodeID() ID { return x.ID_ }
func (x *VarType) node()      {}
func (x *VarType) typeNode()  {}

// FuncType is a function type (param types -> result type).
type FuncType struct {
	ID_     ID
	Params  []Type
	Result  Type
}

func (x *FuncType) NodeID() ID { return x.ID_ }
func (x *FuncType) node()      {}
func (x *FuncType) typeNode()  {}

// OperType is an operator type, distinguished from FuncType in that it may
// describe an action or run, not just a pure function.
type OperType struct {
	ID_    ID
	Params []Type
	Result Type
}

func (x *OperType) NodeID() ID { return x.ID_ }
func (x *OperType) node()      {}
func (x *OperType) typeNode()  {}

// SetType is the type of a set of Elem.
type SetType struct {
	ID_  ID
	Elem Type
}

func (x *SetType) NodeID() ID { return x.ID_ }
func (x *SetType) node()      {}
func (x *SetType) typeNode()  {}

// ListType is the type of a list of Elem.
type ListType struct {
	ID_  ID
	Elem Type
}

func (x *ListType) NodeID() ID { return x.ID_ }
func (x *ListType) node()      {}
func (x *ListType) typeNode()  {}

// TupleType is the type of a fixed-arity ordered tuple.
type TupleType struct {
	ID_    ID
	Elems  []Type
}

func (x *TupleType) NodeID() ID { return x.ID_ }
func (x *TupleType) node()      {}
func (x *TupleType) typeNode()  {}

// RecordType is the type of a record with named fields.
type RecordType struct {
	ID_    ID
	Fields []RecordTypeField
}

type RecordTypeField struct {
	Name string
	Type Type
}

func (x *RecordType) NodeID() ID { return x.ID_ }
func (x *RecordType) node()      {}
func (x *RecordType) typeNode()  {}

// UnionOfRecordsType is a tagged union of record shapes, distinguished by a
// discriminant field.
type UnionOfRecordsType struct {
	ID_       ID
	Variants  []RecordType
}

func (x *UnionOfRecordsType) NodeID() ID { return x.ID_ }
func (x *UnionOfRecordsType) node()      {}
func (x *UnionOfRecordsType) typeNode()  {}
