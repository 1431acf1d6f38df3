package ir

// Walk traverses an IR tree in depth-first, source order. Walk calls
// before(node) first; if before returns false, node's children are
// skipped. Otherwise Walk recurses into each child, then calls after(node).
//
// This mirrors the AST walker a parser-generator frontend would already
// provide: callers (the resolver, the compiler) type-switch on the
// concrete node inside before/after to implement the per-kind hooks the
// spec calls out (def, moduleDef, name, app, lambda, let, var, opDef, and
// the type nodes), rather than this package exposing one callback per
// node kind.
func Walk(node Node, before func(Node) bool, after func(Node)) {
	if node == nil || !before(node) {
		return
	}
	switch n := node.(type) {
	case *Module:
		for _, d := range n.Decls {
			Walk(d, before, after)
		}

	case *OpDef:
		walkType(n.RetType, before, after)
		if n.Body != nil {
			Walk(n.Body, before, after)
		}

	case *VarDecl:
		walkType(n.Type, before, after)

	case *ConstDecl:
		walkType(n.Type, before, after)

	case *Assumption:
		Walk(n.Pred, before, after)

	case *TypeDef:
		walkType(n.Type, before, after)

	case *Import:
		// leaf

	case *Instance:
		for _, a := range n.Args {
			Walk(a, before, after)
		}

	case *Lit:
		// leaf

	case *Name:
		// leaf

	case *App:
		for _, a := range n.Args {
			Walk(a, before, after)
		}

	case *Lambda:
		if n.Body != nil {
			Walk(n.Body, before, after)
		}

	case *Let:
		Walk(n.Def, before, after)
		Walk(n.Body, before, after)

	default:
		walkType(asType(node), before, after)
	}
	after(node)
}

func asType(node Node) Type {
	t, _ := node.(Type)
	return t
}

func walkType(t Type, before func(Node) bool, after func(Node)) {
	if t == nil || !before(t) {
		return
	}
	switch n := t.(type) {
	case *BasicType, *ConstType, *VarType:
		// leaves

	case *FuncType:
		for _, p := range n.Params {
			walkType(p, before, after)
		}
		walkType(n.Result, before, after)

	case *OperType:
		for _, p := range n.Params {
			walkType(p, before, after)
		}
		walkType(n.Result, before, after)

	case *SetType:
		walkType(n.Elem, before, after)

	case *ListType:
		walkType(n.Elem, before, after)

	case *TupleType:
		for _, e := range n.Elems {
			walkType(e, before, after)
		}

	case *RecordType:
		for _, f := range n.Fields {
			walkType(f.Type, before, after)
		}

	case *UnionOfRecordsType:
		for _, v := range n.Variants {
			walkType(&v, before, after)
		}
	}
	after(t)
}
