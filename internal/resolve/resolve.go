// Package resolve implements the name resolver: a single visitor pass over
// IR that verifies every value and type name reference is visible from an
// enclosing scope, aggregating every violation it finds rather than
// stopping at the first.
package resolve

import (
	"fmt"

	"github.com/HosamIntel/quint/internal/ir"
)

// Kind distinguishes a value-name error from a type-name error.
type Kind int

const (
	ValueError Kind = iota
	TypeError
)

func (k Kind) String() string {
	if k == TypeError {
		return "type"
	}
	return "value"
}

// NameError reports an unresolved name reference.
type NameError struct {
	Kind Kind
	// Name is the identifier that failed to resolve.
	Name string
	// DefinitionName is the name of the enclosing operator/variable/
	// constant/assumption/type definition the reference occurs in, for
	// attribution; empty if the reference is not inside a named
	// definition (e.g. a bare module-level assumption without a name).
	DefinitionName string
	// ModuleName is the name of the innermost enclosing module.
	ModuleName string
	// ReferenceID is the IR identity of the offending reference.
	ReferenceID ir.ID
}

func (e *NameError) Error() string {
	return fmt.Sprintf("%s:%s: undefined %s name %q", e.ModuleName, e.DefinitionName, e.Kind, e.Name)
}

// builtinOps are opcode names recognized directly by the compiler (§4.4);
// they never need a definition-table entry and are always considered
// resolved regardless of scope.
var builtinOps = map[string]bool{
	"next": true, "assign": true, "eq": true, "neq": true, "ite": true,
	"not": true, "iff": true, "implies": true, "and": true, "or": true,
	"actionAll": true, "actionAny": true, "then": true, "repeated": true,
	"iuminus": true, "iadd": true, "isub": true, "imul": true, "idiv": true,
	"imod": true, "ipow": true, "igt": true, "ilt": true, "igte": true, "ilte": true,
	"Tup": true, "item": true, "tuples": true,
	"List": true, "range": true, "nth": true, "replaceAt": true,
	"head": true, "tail": true, "slice": true, "length": true, "append": true,
	"concat": true, "indices": true,
	"Rec": true, "field": true, "with": true, "fieldNames": true,
	"Set": true, "powerset": true, "contains": true, "in": true, "subseteq": true,
	"union": true, "intersect": true, "exclude": true, "size": true, "isFinite": true,
	"to": true,
	"Map": true, "setToMap": true, "setOfMaps": true,
	"get": true, "set": true, "setBy": true, "put": true, "keys": true,
	"fold": true, "foldl": true, "foldr": true,
	"exists": true, "forall": true, "map": true, "filter": true, "select": true, "mapBy": true,
	"oneOf": true, "assert": true, "fail": true, "_test": true,
}

// Resolve walks m once and returns every unresolved value- or type-name
// reference. A nil/empty result means resolution succeeded.
func Resolve(m *ir.Module, defs *ir.DefTable, scopes *ir.ScopeTree) []*NameError {
	r := &resolver{defs: defs, scopes: scopes}
	ir.Walk(m, r.before, r.after)
	return r.errs
}

type resolver struct {
	defs   *ir.DefTable
	scopes *ir.ScopeTree

	moduleNames []string
	defNames    []string

	errs []*NameError
}

func (r *resolver) currentModule() string {
	if len(r.moduleNames) == 0 {
		return ""
	}
	return r.moduleNames[len(r.moduleNames)-1]
}

func (r *resolver) currentDef() string {
	if len(r.defNames) == 0 {
		return ""
	}
	return r.defNames[len(r.defNames)-1]
}

func (r *resolver) before(n ir.Node) bool {
	switch v := n.(type) {
	case *ir.Module:
		r.moduleNames = append(r.moduleNames, v.Name)

	case *ir.OpDef:
		r.defNames = append(r.defNames, v.Name)

	case *ir.VarDecl:
		r.defNames = append(r.defNames, v.Name)

	case *ir.ConstDecl:
		r.defNames = append(r.defNames, v.Name)

	case *ir.Assumption:
		r.defNames = append(r.defNames, v.Name)

	case *ir.TypeDef:
		r.defNames = append(r.defNames, v.Name)

	case *ir.Name:
		r.checkValue(v.Ident, v.ID_)

	case *ir.App:
		if !builtinOps[v.Op] {
			r.checkValue(v.Op, v.ID_)
		}

	case *ir.ConstType:
		r.checkType(v.Name, v.ID_)
	}
	return true
}

func (r *resolver) after(n ir.Node) {
	switch n.(type) {
	case *ir.Module:
		r.moduleNames = r.moduleNames[:len(r.moduleNames)-1]
	case *ir.OpDef, *ir.VarDecl, *ir.ConstDecl, *ir.Assumption, *ir.TypeDef:
		r.defNames = r.defNames[:len(r.defNames)-1]
	}
}

func (r *resolver) checkValue(name string, id ir.ID) {
	scopes := r.scopes.ScopesFor(id)
	if _, ok := r.defs.ResolveValue(name, scopes); ok {
		return
	}
	r.errs = append(r.errs, &NameError{
		Kind:           ValueError,
		Name:           name,
		DefinitionName: r.currentDef(),
		ModuleName:     r.currentModule(),
		ReferenceID:    id,
	})
}

func (r *resolver) checkType(name string, id ir.ID) {
	if _, ok := r.defs.ResolveType(name); ok {
		return
	}
	r.errs = append(r.errs, &NameError{
		Kind:           TypeError,
		Name:           name,
		DefinitionName: r.currentDef(),
		ModuleName:     r.currentModule(),
		ReferenceID:    id,
	})
}
