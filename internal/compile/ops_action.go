package compile

import (
	"github.com/HosamIntel/quint/internal/ir"
	"github.com/HosamIntel/quint/value"
)

func init() {
	registerOp("actionAll", opActionAll)
	registerOp("actionAny", opActionAny)
	registerOp("then", opThen)
	registerOp("repeated", opRepeated)
	registerOp("assert", opAssert)
	registerOp("fail", opFail)
	registerOp("_test", opTest)
}

// opActionAll runs every operand action against a single shared snapshot:
// if any fails, every var/next-var register is restored to its state
// before actionAll started and the whole conjunction fails, matching a
// TLA+ conjunction of actions where a failing conjunct aborts the step
// entirely rather than leaving partial writes behind.
func opActionAll(c *compiler, id ir.ID, args []ir.Expr) Computable {
	ops := compileArgs(c, args)
	vars, nextVars := c.varRegsInOrder()
	all := append(append([]*Register{}, vars...), nextVars...)
	return Func(func(ctx *EvalContext) (value.Value, bool) {
		snap := snapshotAll(all)
		for _, op := range ops {
			v, ok := op.Eval(ctx)
			if !ok || !value.ToBool(v) {
				restoreAll(all, snap)
				return value.NewBool(false), true
			}
		}
		return value.NewBool(true), true
	})
}

// opActionAny tries its operand actions in a random order (drawn from
// ctx.Rand, so a fixed seed replays the same choice), restoring the shared
// snapshot after each failure, and commits to the first one that succeeds.
// This realizes "pick uniformly among successes" without needing to run
// every action to find out which would have succeeded: trying in a random
// permutation and stopping at the first success is equivalent in
// distribution. If every action fails, actionAny itself fails.
func opActionAny(c *compiler, id ir.ID, args []ir.Expr) Computable {
	ops := compileArgs(c, args)
	vars, nextVars := c.varRegsInOrder()
	all := append(append([]*Register{}, vars...), nextVars...)
	return Func(func(ctx *EvalContext) (value.Value, bool) {
		order := ctx.Rand.Perm(len(ops))
		snap := snapshotAll(all)
		for _, i := range order {
			v, ok := ops[i].Eval(ctx)
			if ok && value.ToBool(v) {
				return value.NewBool(true), true
			}
			restoreAll(all, snap)
		}
		return value.NewBool(false), true
	})
}

// opThen runs a, shifts state, then runs b — the chaining combinator that
// turns two single-step actions into a two-step run.
func opThen(c *compiler, id ir.ID, args []ir.Expr) Computable {
	a, b := c.compileExpr(args[0]), c.compileExpr(args[1])
	vars, nextVars := c.varRegsInOrder()
	return Func(func(ctx *EvalContext) (value.Value, bool) {
		av, ok := a.Eval(ctx)
		if !ok || !value.ToBool(av) {
			return value.NewBool(false), true
		}
		if !shift(ctx, id, vars, nextVars) {
			return nil, false
		}
		return b.Eval(ctx)
	})
}

// opRepeated chains action n times via the same shift-between-steps
// semantics as then.
func opRepeated(c *compiler, id ir.ID, args []ir.Expr) Computable {
	action, nExpr := c.compileExpr(args[0]), c.compileExpr(args[1])
	vars, nextVars := c.varRegsInOrder()
	return Func(func(ctx *EvalContext) (value.Value, bool) {
		nv, ok := nExpr.Eval(ctx)
		if !ok {
			return nil, false
		}
		n := value.ToInt(nv).Big().Int64()
		for i := int64(0); i < n; i++ {
			v, ok := action.Eval(ctx)
			if !ok || !value.ToBool(v) {
				return value.NewBool(false), true
			}
			if i < n-1 {
				if !shift(ctx, id, vars, nextVars) {
					return nil, false
				}
			}
		}
		return value.NewBool(true), true
	})
}

func opAssert(c *compiler, id ir.ID, args []ir.Expr) Computable {
	cond := c.compileExpr(args[0])
	return Func(func(ctx *EvalContext) (value.Value, bool) {
		cv, ok := cond.Eval(ctx)
		if !ok {
			return nil, false
		}
		if !value.ToBool(cv) {
			return ctx.Fail(id, "assertion failed")
		}
		return value.NewBool(true), true
	})
}

func opFail(c *compiler, id ir.ID, args []ir.Expr) Computable {
	msg := "fail"
	if len(args) > 0 {
		if lit, ok := args[0].(*ir.Lit); ok && lit.Str != nil {
			msg = *lit.Str
		}
	}
	return Func(func(ctx *EvalContext) (value.Value, bool) {
		return ctx.Fail(id, "%s", msg)
	})
}

// opTest compiles the `_test` opcode. Its arguments are the operator names
// (string literals) of init/step/inv and the run-count literals; the
// actual simulation loop is delegated to cfg.TestRunner so this package
// never depends on the simulator package that implements §4.5.
func opTest(c *compiler, id ir.ID, args []ir.Expr) Computable {
	if len(args) != 5 {
		c.errf(id, "_test: expected 5 arguments (nruns, nsteps, init, step, inv)")
		return c.unresolved(id, "_test")
	}
	nrunsExpr, nstepsExpr := c.compileExpr(args[0]), c.compileExpr(args[1])
	initName, ok1 := literalName(args[2])
	stepName, ok2 := literalName(args[3])
	invName, ok3 := literalName(args[4])
	if !ok1 || !ok2 || !ok3 {
		c.errf(id, "_test: init/step/inv must be operator names")
		return c.unresolved(id, "_test")
	}
	runner := c.cfg.TestRunner
	return Func(func(ctx *EvalContext) (value.Value, bool) {
		nrv, ok := nrunsExpr.Eval(ctx)
		if !ok {
			return nil, false
		}
		nsv, ok := nstepsExpr.Eval(ctx)
		if !ok {
			return nil, false
		}
		if runner == nil {
			return ctx.Fail(id, "_test: no simulator is configured")
		}
		nruns := int(value.ToInt(nrv).Big().Int64())
		nsteps := int(value.ToInt(nsv).Big().Int64())
		return runner(ctx, c.finish(), nruns, nsteps, initName, stepName, invName, id)
	})
}

func literalName(e ir.Expr) (string, bool) {
	switch v := e.(type) {
	case *ir.Lit:
		if v.Str != nil {
			return *v.Str, true
		}
	case *ir.Name:
		return v.Ident, true
	}
	return "", false
}
