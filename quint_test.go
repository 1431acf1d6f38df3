package quint_test

import (
	"math/big"
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/HosamIntel/quint"
	"github.com/HosamIntel/quint/internal/ir"
	"github.com/HosamIntel/quint/value"
)

func intLit(id ir.ID, n int64) *ir.Lit { return ir.IntLit(id, big.NewInt(n)) }

// module M { val x = y + 1 }, y undeclared — Compile must surface a
// ResolveError rather than reaching the compiler at all.
func TestCompileRejectsUnresolvedNames(t *testing.T) {
	yRef := &ir.Name{ID_: 3, Ident: "y"}
	add := &ir.App{ID_: 2, Op: "iadd", Args: []ir.Expr{yRef, intLit(4, 1)}}
	x := &ir.OpDef{ID_: 1, Qualifier: ir.QualVal, Name: "x", Body: add}
	m := &ir.Module{ID_: 0, Name: "M", Decls: []ir.Decl{x}}

	ctx := quint.New()
	_, err := ctx.Compile(m)
	qt.Assert(t, qt.IsNotNil(err))

	var resolveErr *quint.ResolveError
	qt.Assert(t, qt.ErrorAs(err, &resolveErr))
	qt.Assert(t, qt.HasLen(resolveErr.Errs, 1))
}

// module M { const c: int; val Doubled = iadd(c, c) }
func TestConstantsComeFromTheSuppliedEnvironment(t *testing.T) {
	cConst := &ir.ConstDecl{ID_: 1, Name: "c", Type: &ir.BasicType{ID_: 2, Name: "int"}}
	doubled := &ir.OpDef{ID_: 3, Qualifier: ir.QualVal, Name: "Doubled", Body: &ir.App{
		ID_: 4, Op: "iadd", Args: []ir.Expr{&ir.Name{ID_: 5, Ident: "c"}, &ir.Name{ID_: 6, Ident: "c"}},
	}}
	m := &ir.Module{ID_: 0, Name: "M", Decls: []ir.Decl{cConst, doubled}}

	ctx := quint.New()
	ctx.Constants["c"] = value.NewInt(21)

	mod, err := ctx.Compile(m)
	qt.Assert(t, qt.IsNil(err))

	v, runtimeErrs, ok := mod.Eval("Doubled", 1)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.HasLen(runtimeErrs, 0))
	qt.Assert(t, qt.Equals(value.ToInt(v).Big().Int64(), int64(42)))
}

// A counter module run end to end through the public API, including a
// `_test` run that should find the invariant violation.
func TestEndToEndSimulatorRun(t *testing.T) {
	n := &ir.VarDecl{ID_: 1, Name: "n"}
	initDef := &ir.OpDef{ID_: 2, Qualifier: ir.QualAction, Name: "Init", Body: &ir.App{
		ID_: 3, Op: "assign", Args: []ir.Expr{&ir.Name{ID_: 4, Ident: "n"}, intLit(5, 0)},
	}}
	stepDef := &ir.OpDef{ID_: 6, Qualifier: ir.QualAction, Name: "Step", Body: &ir.App{
		ID_: 7, Op: "assign", Args: []ir.Expr{
			&ir.Name{ID_: 8, Ident: "n"},
			&ir.App{ID_: 9, Op: "iadd", Args: []ir.Expr{&ir.Name{ID_: 10, Ident: "n"}, intLit(11, 1)}},
		},
	}}
	invDef := &ir.OpDef{ID_: 12, Qualifier: ir.QualVal, Name: "Inv", Body: &ir.App{
		ID_: 13, Op: "ilt", Args: []ir.Expr{&ir.Name{ID_: 14, Ident: "n"}, intLit(15, 3)},
	}}
	runDef := &ir.OpDef{ID_: 16, Qualifier: ir.QualRun, Name: "RunIt", Body: &ir.App{
		ID_: 17, Op: "_test", Args: []ir.Expr{
			intLit(18, 1), intLit(19, 10),
			ir.StrLit(20, "Init"), ir.StrLit(21, "Step"), ir.StrLit(22, "Inv"),
		},
	}}
	m := &ir.Module{ID_: 0, Name: "Counter", Decls: []ir.Decl{n, initDef, stepDef, invDef, runDef}}

	mod, err := quint.New().Compile(m)
	qt.Assert(t, qt.IsNil(err))

	v, _, ok := mod.Eval("RunIt", 42)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.IsFalse(value.ToBool(v)))

	trace, ok := mod.LastTrace()
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(trace.Kind(), value.RecordKind))
}
