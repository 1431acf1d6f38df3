package ir

// ScopeTree maps a node identity to the sequence of its enclosing scope
// identities (outermost first, innermost last). A scope is any node that introduces names:
// a Module body, an OpDef body (its formal parameters), a Lambda body, or
// a Let body.
type ScopeTree struct {
	enclosing map[ID][]ID
}

// ScopesFor returns the scopes enclosing id, outermost first. It is always
// safe to call, even for an id the tree never saw: the result is simply
// empty.
func (t *ScopeTree) ScopesFor(id ID) []ID {
	if t == nil {
		return nil
	}
	return t.enclosing[id]
}

// In reports whether scope is among id's enclosing scopes.
func (t *ScopeTree) In(id ID, scope ID) bool {
	for _, s := range t.ScopesFor(id) {
		if s == scope {
			return true
		}
	}
	return false
}

type scopeBuilder struct {
	tree  *ScopeTree
	defs  *DefTable
	stack []ID
}

// Build walks m once, producing the scope tree and the definition table in
// lockstep: entering a scope-introducing node pushes its ID, recording
// every descendant's enclosing-scope list; entering an OpDef, VarDecl,
// ConstDecl, or Lambda parameter records a ValueDefinition at the
// appropriate scope (absent/global for module-level declarations, the
// introducing node's ID for let-bindings and parameters); entering a
// TypeDef records a (module-global) TypeDefinition.
func Build(m *Module) (*ScopeTree, *DefTable) {
	b := &scopeBuilder{
		tree: &ScopeTree{enclosing: map[ID][]ID{}},
		defs: &DefTable{},
	}
	b.pushScope(m.ID_)
	b.walkDecls(m.Decls, nil)
	b.popScope()
	return b.tree, b.defs
}

func (b *scopeBuilder) pushScope(id ID) { b.stack = append(b.stack, id) }
func (b *scopeBuilder) popScope()       { b.stack = b.stack[:len(b.stack)-1] }

func (b *scopeBuilder) recordScopes(id ID) {
	b.tree.enclosing[id] = append([]ID(nil), b.stack...)
}

// walkDecls visits a sequence of module- or let-level declarations.
// globalScope, if non-nil, is the scope id under which names bound here
// become visible (nil means module-global, matching the "unscoped" case in
// the spec's resolution rule).
func (b *scopeBuilder) walkDecls(decls []Decl, globalScope *ID) {
	for _, d := range decls {
		b.walkDecl(d, globalScope)
	}
}

func (b *scopeBuilder) walkDecl(d Decl, scope *ID) {
	b.recordScopes(d.NodeID())
	switch n := d.(type) {
	case *Module:
		b.defs.addValue(ValueDefinition{Identifier: n.Name, Scope: scope, Source: n.ID_})
		b.pushScope(n.ID_)
		b.walkDecls(n.Decls, nil)
		b.popScope()

	case *OpDef:
		b.defs.addValue(ValueDefinition{Identifier: n.Name, Scope: scope, Source: n.ID_})
		b.pushScope(n.ID_)
		for _, p := range n.Params {
			b.defs.addValue(ValueDefinition{Identifier: p, Scope: idPtr(n.ID_), Source: n.ID_})
		}
		b.walkType(n.RetType)
		if n.Body != nil {
			b.walkExpr(n.Body)
		}
		b.popScope()

	case *VarDecl:
		b.defs.addValue(ValueDefinition{Identifier: n.Name, Scope: scope, Source: n.ID_})
		b.walkType(n.Type)

	case *ConstDecl:
		b.defs.addValue(ValueDefinition{Identifier: n.Name, Scope: scope, Source: n.ID_})
		b.walkType(n.Type)

	case *Assumption:
		b.walkExpr(n.Pred)

	case *TypeDef:
		b.defs.addType(TypeDefinition{Identifier: n.Name, Source: n.ID_})
		b.walkType(n.Type)

	case *Import:
		b.defs.addValue(ValueDefinition{Identifier: importedName(n), Scope: scope, Source: n.ID_})

	case *Instance:
		b.defs.addValue(ValueDefinition{Identifier: n.Name, Scope: scope, Source: n.ID_})
		for _, a := range n.Args {
			b.walkExpr(a)
		}
	}
}

func importedName(n *Import) string {
	if n.Alias != "" {
		return n.Alias
	}
	return n.Path
}

func (b *scopeBuilder) walkExpr(e Expr) {
	if e == nil {
		return
	}
	b.recordScopes(e.NodeID())
	switch n := e.(type) {
	case *Lit:
		// leaf

	case *Name:
		// leaf; resolved against b.defs by the resolver, not here

	case *App:
		for _, a := range n.Args {
			b.walkExpr(a)
		}

	case *Lambda:
		b.pushScope(n.ID_)
		for _, p := range n.Params {
			b.defs.addValue(ValueDefinition{Identifier: p, Scope: idPtr(n.ID_), Source: n.ID_})
		}
		b.walkExpr(n.Body)
		b.popScope()

	case *Let:
		b.pushScope(n.ID_)
		b.recordScopes(n.Def.NodeID())
		b.defs.addValue(ValueDefinition{Identifier: n.Def.Name, Scope: idPtr(n.ID_), Source: n.Def.ID_})
		b.pushScope(n.Def.ID_)
		for _, p := range n.Def.Params {
			b.defs.addValue(ValueDefinition{Identifier: p, Scope: idPtr(n.Def.ID_), Source: n.Def.ID_})
		}
		if n.Def.Body != nil {
			b.walkExpr(n.Def.Body)
		}
		b.popScope()
		b.walkExpr(n.Body)
		b.popScope()

	case *OpDef:
		// Reached only via Let.Def above, which already recursed manually.
	}
}

func (b *scopeBuilder) walkType(t Type) {
	if t == nil {
		return
	}
	b.recordScopes(t.NodeID())
	switch n := t.(type) {
	case *FuncType:
		for _, p := range n.Params {
			b.walkType(p)
		}
		b.walkType(n.Result)
	case *OperType:
		for _, p := range n.Params {
			b.walkType(p)
		}
		b.walkType(n.Result)
	case *SetType:
		b.walkType(n.Elem)
	case *ListType:
		b.walkType(n.Elem)
	case *TupleType:
		for _, e := range n.Elems {
			b.walkType(e)
		}
	case *RecordType:
		for _, f := range n.Fields {
			b.walkType(f.Type)
		}
	case *UnionOfRecordsType:
		for i := range n.Variants {
			b.walkType(&n.Variants[i])
		}
	}
}

func idPtr(id ID) *ID { return &id }
