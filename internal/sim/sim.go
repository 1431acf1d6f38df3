// Package sim implements the randomized simulator that drives the `_test`
// opcode (§4.5): repeatedly initialize state, apply a step action some
// number of times, and check an invariant after every state. A run whose
// init/step fails is simply dropped and the next run attempted; only a
// violated invariant stops the search early. The trace of the last run
// attempted, whatever its outcome, is recorded in the _lastTrace shadow
// register.
package sim

import (
	"github.com/google/uuid"

	"github.com/HosamIntel/quint/internal/compile"
	"github.com/HosamIntel/quint/internal/ir"
	"github.com/HosamIntel/quint/value"
)

// Run implements compile.TestRunnerFunc: it is wired into
// compile.Config.TestRunner by the top-level package so compile never
// imports sim directly (see that package's TestRunnerFunc doc).
func Run(ctx *compile.EvalContext, prog *compile.Result, nruns, nsteps int, initName, stepName, invName string, id ir.ID) (value.Value, bool) {
	init, ok := prog.Vals[initName]
	if !ok {
		return ctx.Fail(id, "_test: %q is not a 0-argument operator", initName)
	}
	step, ok := prog.Vals[stepName]
	if !ok {
		return ctx.Fail(id, "_test: %q is not a 0-argument operator", stepName)
	}
	inv, ok := prog.Vals[invName]
	if !ok {
		return ctx.Fail(id, "_test: %q is not a 0-argument operator", invName)
	}

	all := append(append([]*compile.Register{}, prog.Vars...), prog.NextVars...)
	outer := snapshot(all)
	defer restore(all, outer)

	var lastTrace *value.List
	var lastRunID string
	found := false

	for run := 0; run < nruns && !found; run++ {
		for _, r := range all {
			r.Unset()
		}

		trace, outcome := runOnce(ctx, prog, init, step, inv, nsteps)
		lastTrace = trace
		lastRunID = uuid.NewString()
		// A dropped run (init/step failed) is not an invariant violation;
		// only runViolated stops the search before nruns is exhausted.
		if outcome == runViolated {
			found = true
		}
	}

	if lastTrace != nil {
		if tr, ok := prog.ShadowVars["_lastTrace"]; ok {
			// The trace is tagged with a fresh run identifier so a
			// counterexample can be cited unambiguously in a bug report
			// even across repeated simulations with the same seed.
			tr.Set(value.NewRecord([]string{"runId", "states"}, []value.Value{
				value.NewStr(lastRunID),
				lastTrace,
			}))
		}
	}

	return value.NewBool(!found), true
}

// runOutcome distinguishes why a run stopped: spec §4.5 step 2 treats an
// init/step failure as simply abandoning the run (not an error), while an
// invariant failure is the one outcome that should halt the whole `_test`.
type runOutcome int

const (
	runOK runOutcome = iota
	runDropped
	runViolated
)

// runOnce executes a single run: Init, then nsteps applications of Step,
// checking Inv after every state. It returns the recorded trace and why
// the run ended.
func runOnce(ctx *compile.EvalContext, prog *compile.Result, init, step, inv compile.Computable, nsteps int) (*value.List, runOutcome) {
	var states []value.Value

	if v, ok := init.Eval(ctx); !ok || !value.ToBool(v) {
		return value.NewList(states...), runDropped
	}
	if !shiftState(ctx, prog) {
		return value.NewList(states...), runDropped
	}
	states = append(states, snapshotState(prog))
	if !checkInv(ctx, inv) {
		return value.NewList(states...), runViolated
	}

	for i := 0; i < nsteps; i++ {
		v, ok := step.Eval(ctx)
		if !ok || !value.ToBool(v) {
			return value.NewList(states...), runDropped
		}
		if !shiftState(ctx, prog) {
			return value.NewList(states...), runDropped
		}
		states = append(states, snapshotState(prog))
		if !checkInv(ctx, inv) {
			return value.NewList(states...), runViolated
		}
	}
	return value.NewList(states...), runOK
}

func checkInv(ctx *compile.EvalContext, inv compile.Computable) bool {
	v, ok := inv.Eval(ctx)
	return ok && value.ToBool(v)
}

// shiftState moves every next-state register into its current-state
// register and clears it, failing if Init/Step left a variable
// unassigned.
func shiftState(ctx *compile.EvalContext, prog *compile.Result) bool {
	for i, nv := range prog.NextVars {
		if !nv.IsSet() {
			ctx.RuntimeErrors = append(ctx.RuntimeErrors, &compile.RuntimeError{
				Ref:     prog.Vars[i].DeclID,
				Message: "variable " + prog.Vars[i].Name + " was not assigned before the state shift",
			})
			return false
		}
	}
	for i, nv := range prog.NextVars {
		v, _ := nv.Get()
		prog.Vars[i].Set(v)
		nv.Unset()
	}
	return true
}

// snapshotState captures the current state vector as a Record, field-named
// by variable, so the recorded trace is independently readable later
// without depending on register declaration order alone.
func snapshotState(prog *compile.Result) value.Value {
	names := make([]string, len(prog.Vars))
	vals := make([]value.Value, len(prog.Vars))
	for i, v := range prog.Vars {
		names[i] = v.Name
		val, err := v.Get()
		if err != nil {
			val = value.NewStr("<unset>")
		}
		vals[i] = val
	}
	return value.NewRecord(names, vals)
}

func snapshot(regs []*compile.Register) []compile.Snapshot {
	out := make([]compile.Snapshot, len(regs))
	for i, r := range regs {
		out[i] = r.Snapshot()
	}
	return out
}

func restore(regs []*compile.Register, snaps []compile.Snapshot) {
	for i, r := range regs {
		r.Restore(snaps[i])
	}
}
