package ir

import (
	"math/big"
	"testing"

	"github.com/go-quicktest/qt"
)

// module M { val x = 1 }
func moduleWithSingleVal() (*Module, ID) {
	lit := IntLit(2, big.NewInt(1))
	def := &OpDef{ID_: 1, Qualifier: QualVal, Name: "x", Body: lit}
	m := &Module{ID_: 0, Name: "M", Decls: []Decl{def}}
	return m, lit.ID_
}

func TestBuildModuleGlobalScope(t *testing.T) {
	m, _ := moduleWithSingleVal()
	_, defs := Build(m)
	d, ok := defs.ResolveValue("x", nil)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.IsTrue(d.Scope == nil))
}

func TestLambdaParamScopedToLambda(t *testing.T) {
	// val f = (n) => n
	param := &Name{ID_: 10, Ident: "n"}
	lam := &Lambda{ID_: 5, Params: []string{"n"}, Body: param}
	def := &OpDef{ID_: 1, Qualifier: QualVal, Name: "f", Body: lam}
	m := &Module{ID_: 0, Name: "M", Decls: []Decl{def}}

	tree, defs := Build(m)
	scopes := tree.ScopesFor(param.ID_)
	d, ok := defs.ResolveValue("n", scopes)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(*d.Scope, lam.ID_))
}

func TestLambdaParamNotVisibleOutsideLambda(t *testing.T) {
	param := &Name{ID_: 10, Ident: "n"}
	lam := &Lambda{ID_: 5, Params: []string{"n"}, Body: param}
	def := &OpDef{ID_: 1, Qualifier: QualVal, Name: "f", Body: lam}
	outsideRef := &Name{ID_: 20, Ident: "n"}
	other := &OpDef{ID_: 2, Qualifier: QualVal, Name: "g", Body: outsideRef}
	m := &Module{ID_: 0, Name: "M", Decls: []Decl{def, other}}

	tree, defs := Build(m)
	scopes := tree.ScopesFor(outsideRef.ID_)
	_, ok := defs.ResolveValue("n", scopes)
	qt.Assert(t, qt.IsFalse(ok))
}

func TestLetBindingVisibleInBody(t *testing.T) {
	ref := &Name{ID_: 30, Ident: "y"}
	inner := &OpDef{ID_: 7, Qualifier: QualVal, Name: "y", Body: IntLit(8, big.NewInt(1))}
	let := &Let{ID_: 6, Def: inner, Body: ref}
	def := &OpDef{ID_: 1, Qualifier: QualVal, Name: "x", Body: let}
	m := &Module{ID_: 0, Name: "M", Decls: []Decl{def}}

	tree, defs := Build(m)
	scopes := tree.ScopesFor(ref.ID_)
	d, ok := defs.ResolveValue("y", scopes)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(*d.Scope, let.ID_))
}

func TestWalkVisitsEveryApp(t *testing.T) {
	a1 := &App{ID_: 1, Op: "not", Args: []Expr{BoolLit(2, true)}}
	a2 := &App{ID_: 3, Op: "and", Args: []Expr{a1, BoolLit(4, false)}}
	def := &OpDef{ID_: 5, Qualifier: QualVal, Name: "p", Body: a2}
	m := &Module{ID_: 0, Name: "M", Decls: []Decl{def}}

	var apps []ID
	Walk(m, func(n Node) bool {
		if app, ok := n.(*App); ok {
			apps = append(apps, app.ID_)
		}
		return true
	}, func(Node) {})

	qt.Assert(t, qt.DeepEquals(apps, []ID{3, 1}))
}
