package compile

import "github.com/HosamIntel/quint/internal/ir"

// snapshotAll captures every register's current state, in the same order
// as regs, so it can be restored independently of anything else happening
// to those registers in between (§5: snapshots must be independent, which
// holds here because Values are persistent).
func snapshotAll(regs []*Register) []Snapshot {
	out := make([]Snapshot, len(regs))
	for i, r := range regs {
		out[i] = r.Snapshot()
	}
	return out
}

func restoreAll(regs []*Register, snaps []Snapshot) {
	for i, r := range regs {
		r.Restore(snaps[i])
	}
}

// shift moves every next-state register into its matching current-state
// register, then clears the next-state register, as the last step of an
// action or simulator round. Shift fails if any next-state register was
// never assigned during the round: Quint requires every action that can
// run at a given state to account for every variable.
func shift(ctx *EvalContext, id ir.ID, vars, nextVars []*Register) bool {
	for i, nv := range nextVars {
		if !nv.IsSet() {
			ctx.Fail(id, "variable %q was not assigned before the state shift", vars[i].Name)
			return false
		}
	}
	for i, nv := range nextVars {
		v, _ := nv.Get()
		vars[i].Set(v)
		nv.Unset()
	}
	return true
}
