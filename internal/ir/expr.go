package ir

import "math/big"

// Lit is a literal boolean, integer, or string constant.
type Lit struct {
	ID_  ID
	Bool *bool
	Int  *big.Int
	Str  *string
}

func (x *Lit) NodeID() ID { return x.ID_ }
func (x *Lit) node()      {}
func (x *Lit) exprNode()  {}

func BoolLit(id ID, b bool) *Lit     { return &Lit{ID_: id, Bool: &b} }
func IntLit(id ID, n *big.Int) *Lit  { return &Lit{ID_: id, Int: n} }
func StrLit(id ID, s string) *Lit    { return &Lit{ID_: id, Str: &s} }

// Name is a reference to an identifier: either a user/operator name or a
// built-in opcode name, disambiguated only by how the resolver and
// compiler look it up, not by the IR shape.
type Name struct {
	ID_   ID
	Ident string
}

func (x *Name) NodeID() ID { return x.ID_ }
func (x *Name) node()      {}
func (x *Name) exprNode()  {}

// App is an operator application: a built-in opcode or a user-defined
// operator name, applied to an ordered argument list.
type App struct {
	ID_  ID
	Op   string
	Args []Expr
}

func (x *App) NodeID() ID { return x.ID_ }
func (x *App) node()      {}
func (x *App) exprNode()  {}

// Lambda introduces formal parameters scoped to Body.
type Lambda struct {
	ID_    ID
	Params []string
	Body   Expr
}

func (x *Lambda) NodeID() ID { return x.ID_ }
func (x *Lambda) node()      {}
func (x *Lambda) exprNode()  {}

// Let binds Def (itself an OpDef) for the duration of Body.
type Let struct {
	ID_  ID
	Def  *OpDef
	Body Expr
}

func (x *Let) NodeID() ID { return x.ID_ }
func (x *Let) node()      {}
func (x *Let) exprNode()  {}
