package resolve

import (
	"math/big"
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/HosamIntel/quint/internal/ir"
)

// module M { val x = y + 1 }, y undeclared.
func TestUndefinedNameProducesSingleValueError(t *testing.T) {
	yRef := &ir.Name{ID_: 3, Ident: "y"}
	one := ir.IntLit(4, big.NewInt(1))
	add := &ir.App{ID_: 2, Op: "iadd", Args: []ir.Expr{yRef, one}}
	x := &ir.OpDef{ID_: 1, Qualifier: ir.QualVal, Name: "x", Body: add}
	m := &ir.Module{ID_: 0, Name: "M", Decls: []ir.Decl{x}}

	scopes, defs := ir.Build(m)
	errs := Resolve(m, defs, scopes)

	qt.Assert(t, qt.HasLen(errs, 1))
	qt.Assert(t, qt.Equals(errs[0].Kind, ValueError))
	qt.Assert(t, qt.Equals(errs[0].Name, "y"))
	qt.Assert(t, qt.Equals(errs[0].DefinitionName, "x"))
	qt.Assert(t, qt.Equals(errs[0].ModuleName, "M"))
}

func TestResolvedReferenceProducesNoError(t *testing.T) {
	n := &ir.VarDecl{ID_: 1, Name: "n", Type: &ir.BasicType{ID_: 2, Name: "int"}}
	ref := &ir.Name{ID_: 4, Ident: "n"}
	x := &ir.OpDef{ID_: 3, Qualifier: ir.QualVal, Name: "x", Body: ref}
	m := &ir.Module{ID_: 0, Name: "M", Decls: []ir.Decl{n, x}}

	scopes, defs := ir.Build(m)
	errs := Resolve(m, defs, scopes)
	qt.Assert(t, qt.HasLen(errs, 0))
}

func TestAggregatesMultipleErrors(t *testing.T) {
	y := &ir.Name{ID_: 2, Ident: "y"}
	z := &ir.Name{ID_: 3, Ident: "z"}
	add := &ir.App{ID_: 4, Op: "iadd", Args: []ir.Expr{y, z}}
	x := &ir.OpDef{ID_: 1, Qualifier: ir.QualVal, Name: "x", Body: add}
	m := &ir.Module{ID_: 0, Name: "M", Decls: []ir.Decl{x}}

	scopes, defs := ir.Build(m)
	errs := Resolve(m, defs, scopes)
	qt.Assert(t, qt.HasLen(errs, 2))
}

func TestUnresolvedUserOperatorApplication(t *testing.T) {
	call := &ir.App{ID_: 2, Op: "undefinedOp", Args: nil}
	x := &ir.OpDef{ID_: 1, Qualifier: ir.QualVal, Name: "x", Body: call}
	m := &ir.Module{ID_: 0, Name: "M", Decls: []ir.Decl{x}}

	scopes, defs := ir.Build(m)
	errs := Resolve(m, defs, scopes)
	qt.Assert(t, qt.HasLen(errs, 1))
	qt.Assert(t, qt.Equals(errs[0].Name, "undefinedOp"))
}

func TestUnresolvedTypeReference(t *testing.T) {
	ct := &ir.ConstType{ID_: 2, Name: "Missing"}
	x := &ir.ConstDecl{ID_: 1, Name: "c", Type: ct}
	m := &ir.Module{ID_: 0, Name: "M", Decls: []ir.Decl{x}}

	scopes, defs := ir.Build(m)
	errs := Resolve(m, defs, scopes)
	qt.Assert(t, qt.HasLen(errs, 1))
	qt.Assert(t, qt.Equals(errs[0].Kind, TypeError))
}
