package compile_test

import (
	"math/big"
	"testing"

	"github.com/go-quicktest/qt"
	"github.com/google/go-cmp/cmp"
	"github.com/kr/pretty"

	"github.com/HosamIntel/quint/internal/compile"
	"github.com/HosamIntel/quint/internal/ir"
	"github.com/HosamIntel/quint/internal/sim"
	"github.com/HosamIntel/quint/value"
)

func intLit(id ir.ID, n int64) *ir.Lit { return ir.IntLit(id, big.NewInt(n)) }

// counterModule builds:
//
//	var n
//	action Init = assign(n, 0)
//	action Step = assign(n, iadd(n, 1))
//	val Inv = ilte(n, 1000)
func counterModule() *ir.Module {
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
		ID_: 13, Op: "ilte", Args: []ir.Expr{&ir.Name{ID_: 14, Ident: "n"}, intLit(15, 1000)},
	}}
	return &ir.Module{ID_: 0, Name: "Counter", Decls: []ir.Decl{n, initDef, stepDef, invDef}}
}

func compileModule(t *testing.T, m *ir.Module, cfg compile.Config) *compile.Result {
	t.Helper()
	res := compile.Compile(m, cfg)
	qt.Assert(t, qt.Equals(res.CompileErrors.Len(), 0))
	return res
}

func TestAssignmentShiftsOnlyAfterExplicitShift(t *testing.T) {
	m := counterModule()
	res := compileModule(t, m, compile.Config{})

	ctx := compile.NewEvalContext(1)
	v, ok := res.Vals["Init"].Eval(ctx)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.IsTrue(value.ToBool(v)))

	// The current-state register is still unset: assign only wrote the
	// next-state register, it did not shift.
	_, err := res.Vars[0].Get()
	qt.Assert(t, qt.IsNotNil(err))

	nextVal, err := res.NextVars[0].Get()
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(value.ToInt(nextVal).Big().Int64(), int64(0)))
}

func TestCounterStepIncrementsAfterShift(t *testing.T) {
	m := counterModule()
	res := compileModule(t, m, compile.Config{})
	ctx := compile.NewEvalContext(1)

	mustRun(t, ctx, res.Vals["Init"])
	shiftVars(res)
	mustRun(t, ctx, res.Vals["Step"])
	shiftVars(res)

	n, err := res.Vars[0].Get()
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(value.ToInt(n).Big().Int64(), int64(1)))
}

func mustRun(t *testing.T, ctx *compile.EvalContext, c compile.Computable) {
	t.Helper()
	v, ok := c.Eval(ctx)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.IsTrue(value.ToBool(v)))
}

func shiftVars(res *compile.Result) {
	for i, nv := range res.NextVars {
		v, _ := nv.Get()
		res.Vars[i].Set(v)
		nv.Unset()
	}
}

// actionAllRestoreModule exercises actionAll's snapshot/restore: the first
// conjunct succeeds (writes n's next value), the second always fails, so
// the whole actionAll must restore n's next register to unset.
func actionAllRestoreModule() *ir.Module {
	n := &ir.VarDecl{ID_: 1, Name: "n"}
	bad := &ir.OpDef{ID_: 2, Qualifier: ir.QualAction, Name: "BadStep", Body: &ir.App{
		ID_: 3, Op: "actionAll", Args: []ir.Expr{
			&ir.App{ID_: 4, Op: "assign", Args: []ir.Expr{&ir.Name{ID_: 5, Ident: "n"}, intLit(6, 7)}},
			&ir.App{ID_: 7, Op: "fail", Args: []ir.Expr{ir.StrLit(8, "deliberate")}},
		},
	}}
	return &ir.Module{ID_: 0, Name: "M", Decls: []ir.Decl{n, bad}}
}

func TestActionAllRestoresOnFailure(t *testing.T) {
	m := actionAllRestoreModule()
	res := compileModule(t, m, compile.Config{})
	ctx := compile.NewEvalContext(1)

	v, ok := res.Vals["BadStep"].Eval(ctx)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.IsFalse(value.ToBool(v)))

	_, err := res.NextVars[0].Get()
	if err == nil {
		t.Fatalf("expected n's next register to be restored to unset, got a value (diff via cmp: %s)",
			cmp.Diff("unset", "set"))
	}
}

// foldModule sums a set via `fold`, exercising the callable-argument path
// and determinism of evaluation.
func foldModule() *ir.Module {
	add := &ir.OpDef{ID_: 1, Qualifier: ir.QualPureDef, Name: "add", Params: []string{"a", "b"}, Body: &ir.App{
		ID_: 2, Op: "iadd", Args: []ir.Expr{&ir.Name{ID_: 3, Ident: "a"}, &ir.Name{ID_: 4, Ident: "b"}},
	}}
	sumDef := &ir.OpDef{ID_: 5, Qualifier: ir.QualVal, Name: "Sum", Body: &ir.App{
		ID_: 6, Op: "fold", Args: []ir.Expr{
			&ir.App{ID_: 7, Op: "Set", Args: []ir.Expr{intLit(8, 1), intLit(9, 2), intLit(10, 3)}},
			intLit(11, 0),
			&ir.Name{ID_: 12, Ident: "add"},
		},
	}}
	return &ir.Module{ID_: 0, Name: "M", Decls: []ir.Decl{add, sumDef}}
}

func TestFoldOverNamedOperatorIsDeterministic(t *testing.T) {
	m := foldModule()
	res := compileModule(t, m, compile.Config{})
	ctx := compile.NewEvalContext(1)

	v, ok := res.Vals["Sum"].Eval(ctx)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(value.ToInt(v).Big().Int64(), int64(6)))
	if diff := pretty.Diff(6, int(value.ToInt(v).Big().Int64())); len(diff) != 0 {
		t.Fatalf("unexpected fold result: %s", diff)
	}
}

// TestSimulatorFindsCounterOverflow wires the simulator in through
// compile.Config.TestRunner and checks that _test catches a violated
// invariant within the configured step budget.
func TestSimulatorFindsCounterOverflow(t *testing.T) {
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

	res := compileModule(t, m, compile.Config{TestRunner: sim.Run})
	ctx := compile.NewEvalContext(42)

	v, ok := res.Vals["RunIt"].Eval(ctx)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.IsFalse(value.ToBool(v)))

	trace, err := res.ShadowVars["_lastTrace"].Get()
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(trace.Kind(), value.RecordKind))
}

// powModule builds val P = ipow(base, exp) for a given base/exponent pair.
func powModule(base, exp int64) *ir.Module {
	p := &ir.OpDef{ID_: 1, Qualifier: ir.QualVal, Name: "P", Body: &ir.App{
		ID_: 2, Op: "ipow", Args: []ir.Expr{intLit(3, base), intLit(4, exp)},
	}}
	return &ir.Module{ID_: 0, Name: "M", Decls: []ir.Decl{p}}
}

func TestIpowComputesPositiveExponents(t *testing.T) {
	res := compileModule(t, powModule(2, 10), compile.Config{})
	ctx := compile.NewEvalContext(1)

	v, ok := res.Vals["P"].Eval(ctx)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(value.ToInt(v).Big().Int64(), int64(1024)))
}

func TestIpowFailsOnZeroToTheZero(t *testing.T) {
	res := compileModule(t, powModule(0, 0), compile.Config{})
	ctx := compile.NewEvalContext(1)

	_, ok := res.Vals["P"].Eval(ctx)
	qt.Assert(t, qt.IsFalse(ok))
	qt.Assert(t, qt.HasLen(ctx.RuntimeErrors, 1))
}

func TestIpowFailsOnNegativeExponent(t *testing.T) {
	res := compileModule(t, powModule(2, -3), compile.Config{})
	ctx := compile.NewEvalContext(1)

	_, ok := res.Vals["P"].Eval(ctx)
	qt.Assert(t, qt.IsFalse(ok))
	qt.Assert(t, qt.HasLen(ctx.RuntimeErrors, 1))
}
