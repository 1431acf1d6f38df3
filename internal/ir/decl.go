package ir

// OpDef is an operator definition: val/def/pure val/pure def/action/
// run/temporal, a name, formal parameters, and a body.
type OpDef struct {
	ID_       ID
	Qualifier Qualifier
	Name      string
	Params    []string
	RetType   Type // optional; nil if omitted
	Body      Expr
}

func (x *OpDef) NodeID() ID { return x.ID_ }
func (x *OpDef) node()      {}
func (x *OpDef) declNode()  {}
func (x *OpDef) exprNode()  {} // a let-bound OpDef is also referenced as an Expr position holder

// VarDecl introduces a state variable.
type VarDecl struct {
	ID_  ID
	Name string
	Type Type
}

func (x *VarDecl) NodeID() ID { return x.ID_ }
func (x *VarDecl) node()      {}
func (x *VarDecl) declNode()  {}

// ConstDecl introduces a constant resolved against an externally supplied
// environment at compile time.
type ConstDecl struct {
	ID_  ID
	Name string
	Type Type
}

func (x *ConstDecl) NodeID() ID { return x.ID_ }
func (x *ConstDecl) node()      {}
func (x *ConstDecl) declNode()  {}

// Assumption is a module-level `assume` declaration: a named boolean
// predicate over constants. The compiler exposes it as a named value that
// fails when evaluated if the predicate does not hold; nothing evaluates
// it automatically.
type Assumption struct {
	ID_  ID
	Name string
	Pred Expr
}

func (x *Assumption) NodeID() ID { return x.ID_ }
func (x *Assumption) node()      {}
func (x *Assumption) declNode()  {}

// TypeDef introduces a named type alias.
type TypeDef struct {
	ID_  ID
	Name string
	Type Type
}

func (x *TypeDef) NodeID() ID { return x.ID_ }
func (x *TypeDef) node()      {}
func (x *TypeDef) declNode()  {}

// Import brings another module's exported definitions into scope, optionally
// under an alias.
type Import struct {
	ID_   ID
	Path  string
	Alias string
}

func (x *Import) NodeID() ID { return x.ID_ }
func (x *Import) node()      {}
func (x *Import) declNode()  {}

// Instance declares a named instantiation of another module, binding its
// constants to concrete argument expressions.
type Instance struct {
	ID_    ID
	Name   string
	Module string
	Args   map[string]Expr
}

func (x *Instance) NodeID() ID { return x.ID_ }
func (x *Instance) node()      {}
func (x *Instance) declNode()  {}
