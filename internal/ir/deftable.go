package ir

// ValueDefinition is one entry of a module's value-definition table: an
// operator, variable, constant, import, or instance name.
type ValueDefinition struct {
	Identifier string
	Scope      *ID // nil means module-global (unscoped)
	Source     ID
}

// TypeDefinition is one entry of a module's type-definition table. Type
// definitions are currently always module-global.
type TypeDefinition struct {
	Identifier string
	Source     ID
}

// DefTable holds the two per-module lookup tables: value definitions and
// type definitions.
type DefTable struct {
	Values []ValueDefinition
	Types  []TypeDefinition
}

func (t *DefTable) addValue(d ValueDefinition) { t.Values = append(t.Values, d) }
func (t *DefTable) addType(d TypeDefinition)    { t.Types = append(t.Types, d) }

// ResolveValue finds a value definition named name visible from a
// reference whose enclosing scopes are scopes. It implements the
// resolution rule verbatim: a definition matches iff its identifier
// equals name and either its scope is absent or it is a member of scopes.
func (t *DefTable) ResolveValue(name string, scopes []ID) (*ValueDefinition, bool) {
	for i := range t.Values {
		d := &t.Values[i]
		if d.Identifier != name {
			continue
		}
		if d.Scope == nil {
			return d, true
		}
		for _, s := range scopes {
			if s == *d.Scope {
				return d, true
			}
		}
	}
	return nil, false
}

// ResolveType finds a type definition named name. Type definitions are
// always module-global so the scope test always passes.
func (t *DefTable) ResolveType(name string) (*TypeDefinition, bool) {
	for i := range t.Types {
		if t.Types[i].Identifier == name {
			return &t.Types[i], true
		}
	}
	return nil, false
}
