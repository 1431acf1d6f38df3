package sim_test

import (
	"math/big"
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/HosamIntel/quint/internal/compile"
	"github.com/HosamIntel/quint/internal/ir"
	"github.com/HosamIntel/quint/internal/sim"
	"github.com/HosamIntel/quint/value"
)

func intLit(id ir.ID, n int64) *ir.Lit { return ir.IntLit(id, big.NewInt(n)) }

func buildCounter(invBound int64) *ir.Module {
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
		ID_: 13, Op: "ilt", Args: []ir.Expr{&ir.Name{ID_: 14, Ident: "n"}, intLit(15, invBound)},
	}}
	runDef := &ir.OpDef{ID_: 16, Qualifier: ir.QualRun, Name: "RunIt", Body: &ir.App{
		ID_: 17, Op: "_test", Args: []ir.Expr{
			intLit(18, 1), intLit(19, 20),
			ir.StrLit(20, "Init"), ir.StrLit(21, "Step"), ir.StrLit(22, "Inv"),
		},
	}}
	return &ir.Module{ID_: 0, Name: "Counter", Decls: []ir.Decl{n, initDef, stepDef, invDef, runDef}}
}

func TestRunPassesWhenInvariantAlwaysHolds(t *testing.T) {
	m := buildCounter(1000)
	res := compile.Compile(m, compile.Config{TestRunner: sim.Run})
	qt.Assert(t, qt.Equals(res.CompileErrors.Len(), 0))

	ctx := compile.NewEvalContext(7)
	v, ok := res.Vals["RunIt"].Eval(ctx)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.IsTrue(value.ToBool(v)))
}

func TestRunFailsAndRecordsTraceWhenInvariantBreaks(t *testing.T) {
	m := buildCounter(3)
	res := compile.Compile(m, compile.Config{TestRunner: sim.Run})
	qt.Assert(t, qt.Equals(res.CompileErrors.Len(), 0))

	ctx := compile.NewEvalContext(7)
	v, ok := res.Vals["RunIt"].Eval(ctx)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.IsFalse(value.ToBool(v)))

	trace, err := res.ShadowVars["_lastTrace"].Get()
	qt.Assert(t, qt.IsNil(err))
	rec := value.ToRecord(trace)
	states, ok := rec.Field("states")
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.IsTrue(value.ToList(states).Len() > 0))

	runID, ok := rec.Field("runId")
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.IsTrue(len(value.ToStr(runID)) > 0))
}

// TestRunIsDeterministicForAFixedSeed replays the same seed twice and
// checks both runs reach the same verdict, matching the spec's
// replayability requirement for a seeded simulator.
func TestRunIsDeterministicForAFixedSeed(t *testing.T) {
	m := buildCounter(3)

	run := func() bool {
		res := compile.Compile(m, compile.Config{TestRunner: sim.Run})
		ctx := compile.NewEvalContext(99)
		v, _ := res.Vals["RunIt"].Eval(ctx)
		return value.ToBool(v)
	}

	first := run()
	second := run()
	qt.Assert(t, qt.Equals(first, second))
}

// buildAlwaysDroppedCounter builds a module whose Init always fails, so
// every one of nruns attempts is dropped and Inv is never even evaluated.
func buildAlwaysDroppedCounter() *ir.Module {
	n := &ir.VarDecl{ID_: 1, Name: "n"}
	initDef := &ir.OpDef{ID_: 2, Qualifier: ir.QualAction, Name: "Init", Body: &ir.App{
		ID_: 3, Op: "fail", Args: []ir.Expr{ir.StrLit(4, "Init never succeeds")},
	}}
	stepDef := &ir.OpDef{ID_: 5, Qualifier: ir.QualAction, Name: "Step", Body: &ir.App{
		ID_: 6, Op: "assign", Args: []ir.Expr{&ir.Name{ID_: 7, Ident: "n"}, intLit(8, 0)},
	}}
	invDef := &ir.OpDef{ID_: 9, Qualifier: ir.QualVal, Name: "Inv", Body: &ir.App{
		ID_: 10, Op: "ilt", Args: []ir.Expr{intLit(11, 0), intLit(12, 0)},
	}}
	runDef := &ir.OpDef{ID_: 13, Qualifier: ir.QualRun, Name: "RunIt", Body: &ir.App{
		ID_: 14, Op: "_test", Args: []ir.Expr{
			intLit(15, 5), intLit(16, 10),
			ir.StrLit(17, "Init"), ir.StrLit(18, "Step"), ir.StrLit(19, "Inv"),
		},
	}}
	return &ir.Module{ID_: 0, Name: "Counter", Decls: []ir.Decl{n, initDef, stepDef, invDef, runDef}}
}

// TestRunDoesNotReportAViolationWhenEveryRunIsDropped pins down the fix for
// the dropped-run/violated-invariant conflation: Inv here is always false,
// but it is never reached because Init always fails, so every run is
// dropped rather than counted as a violation and the overall verdict must
// still be "no error found".
func TestRunDoesNotReportAViolationWhenEveryRunIsDropped(t *testing.T) {
	m := buildAlwaysDroppedCounter()
	res := compile.Compile(m, compile.Config{TestRunner: sim.Run})
	qt.Assert(t, qt.Equals(res.CompileErrors.Len(), 0))

	ctx := compile.NewEvalContext(3)
	v, ok := res.Vals["RunIt"].Eval(ctx)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.IsTrue(value.ToBool(v)))
}
