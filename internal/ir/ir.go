// Package ir defines the intermediate representation consumed by the
// resolver and compiler: modules, definitions, expressions, and types.
// Every node carries an ID unique within a parse; the grammar/parser that
// produces this tree is out of scope here (we consume IR only).
package ir

// ID is a node's identity: a non-negative integer unique within a parse.
// Identities index the scope tree and attribute errors back to source.
type ID int

// Node is any IR tree element.
type Node interface {
	NodeID() ID
	node()
}

// Expr is a value-producing IR node.
type Expr interface {
	Node
	exprNode()
}

// Decl is a module- or scope-level declaration.
type Decl interface {
	Node
	declNode()
}

// Qualifier is the operator-definition qualifier (val, def, action, ...).
type Qualifier int

const (
	QualVal Qualifier = iota
	QualDef
	QualPureVal
	QualPureDef
	QualAction
	QualRun
	QualTemporal
)

func (q Qualifier) String() string {
	switch q {
	case QualVal:
		return "val"
	case QualDef:
		return "def"
	case QualPureVal:
		return "pure val"
	case QualPureDef:
		return "pure def"
	case QualAction:
		return "action"
	case QualRun:
		return "run"
	case QualTemporal:
		return "temporal"
	default:
		return "unknown"
	}
}

// Module is the top-level compilation unit: a name and a sequence of
// declarations. Modules may refer to others via Instance/Import but the
// body itself introduces a scope, so a Module is also a Decl (for nested
// module definitions) and carries its own ID.
type Module struct {
	ID_   ID
	Name  string
	Decls []Decl
}

func (m *Module) NodeID() ID  { return m.ID_ }
func (m *Module) node()       {}
func (m *Module) declNode()   {}
