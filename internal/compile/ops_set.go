package compile

import (
	"github.com/HosamIntel/quint/internal/ir"
	"github.com/HosamIntel/quint/value"
)

func init() {
	registerOp("Set", opSet)
	registerOp("powerset", opPowerset)
	registerOp("contains", opContains)
	registerOp("in", opContains) // `in` is `contains` with operands swapped at the call site by the frontend
	registerOp("subseteq", opSubseteq)
	registerOp("union", opUnion)
	registerOp("intersect", opIntersect)
	registerOp("exclude", opExclude)
	registerOp("size", opSize)
	registerOp("isFinite", opIsFinite)
	registerOp("to", opTo)
}

func opSet(c *compiler, id ir.ID, args []ir.Expr) Computable {
	ops := compileArgs(c, args)
	return Func(func(ctx *EvalContext) (value.Value, bool) {
		vs, ok := evalArgs(ctx, ops)
		if !ok {
			return nil, false
		}
		return value.NewExplicitSet(vs...), true
	})
}

func opPowerset(c *compiler, id ir.ID, args []ir.Expr) Computable {
	s := c.compileExpr(args[0])
	return Func(func(ctx *EvalContext) (value.Value, bool) {
		sv, ok := s.Eval(ctx)
		if !ok {
			return nil, false
		}
		return value.NewPowerSet(value.ToSet(sv)), true
	})
}

func opContains(c *compiler, id ir.ID, args []ir.Expr) Computable {
	s, v := c.compileExpr(args[0]), c.compileExpr(args[1])
	return Func(func(ctx *EvalContext) (value.Value, bool) {
		sv, ok := s.Eval(ctx)
		if !ok {
			return nil, false
		}
		vv, ok := v.Eval(ctx)
		if !ok {
			return nil, false
		}
		has, err := value.ToSet(sv).Contains(vv)
		if err != nil {
			return ctx.Fail(id, "contains: %v", err)
		}
		return value.NewBool(has), true
	})
}

func opSubseteq(c *compiler, id ir.ID, args []ir.Expr) Computable {
	a, b := c.compileExpr(args[0]), c.compileExpr(args[1])
	return Func(func(ctx *EvalContext) (value.Value, bool) {
		av, ok := a.Eval(ctx)
		if !ok {
			return nil, false
		}
		bv, ok := b.Eval(ctx)
		if !ok {
			return nil, false
		}
		sub, err := value.IsSubset(value.ToSet(av), value.ToSet(bv))
		if err != nil {
			return ctx.Fail(id, "subseteq: %v", err)
		}
		return value.NewBool(sub), true
	})
}

func opUnion(c *compiler, id ir.ID, args []ir.Expr) Computable {
	a, b := c.compileExpr(args[0]), c.compileExpr(args[1])
	return Func(func(ctx *EvalContext) (value.Value, bool) {
		av, ok := a.Eval(ctx)
		if !ok {
			return nil, false
		}
		bv, ok := b.Eval(ctx)
		if !ok {
			return nil, false
		}
		out, err := value.Union(value.ToSet(av), value.ToSet(bv))
		if err != nil {
			return ctx.Fail(id, "union: %v", err)
		}
		return out, true
	})
}

func opIntersect(c *compiler, id ir.ID, args []ir.Expr) Computable {
	a, b := c.compileExpr(args[0]), c.compileExpr(args[1])
	return Func(func(ctx *EvalContext) (value.Value, bool) {
		av, ok := a.Eval(ctx)
		if !ok {
			return nil, false
		}
		bv, ok := b.Eval(ctx)
		if !ok {
			return nil, false
		}
		out, err := value.Intersect(value.ToSet(av), value.ToSet(bv))
		if err != nil {
			return ctx.Fail(id, "intersect: %v", err)
		}
		return out, true
	})
}

func opExclude(c *compiler, id ir.ID, args []ir.Expr) Computable {
	a, b := c.compileExpr(args[0]), c.compileExpr(args[1])
	return Func(func(ctx *EvalContext) (value.Value, bool) {
		av, ok := a.Eval(ctx)
		if !ok {
			return nil, false
		}
		bv, ok := b.Eval(ctx)
		if !ok {
			return nil, false
		}
		out, err := value.Subtract(value.ToSet(av), value.ToSet(bv))
		if err != nil {
			return ctx.Fail(id, "exclude: %v", err)
		}
		return out, true
	})
}

func opSize(c *compiler, id ir.ID, args []ir.Expr) Computable {
	s := c.compileExpr(args[0])
	return Func(func(ctx *EvalContext) (value.Value, bool) {
		sv, ok := s.Eval(ctx)
		if !ok {
			return nil, false
		}
		n, err := value.Cardinality(value.ToSet(sv))
		if err != nil {
			return ctx.Fail(id, "size: %v", err)
		}
		return value.NewInt(int64(n)), true
	})
}

// opIsFinite always returns true: the language's static type system is
// assumed to already have rejected any term whose finiteness cannot be
// established, so the evaluator never needs to decide it dynamically.
func opIsFinite(c *compiler, id ir.ID, args []ir.Expr) Computable {
	s := c.compileExpr(args[0])
	return Func(func(ctx *EvalContext) (value.Value, bool) {
		if _, ok := s.Eval(ctx); !ok {
			return nil, false
		}
		return value.NewBool(true), true
	})
}

func opTo(c *compiler, id ir.ID, args []ir.Expr) Computable {
	lo, hi := c.compileExpr(args[0]), c.compileExpr(args[1])
	return Func(func(ctx *EvalContext) (value.Value, bool) {
		lv, ok := lo.Eval(ctx)
		if !ok {
			return nil, false
		}
		hv, ok := hi.Eval(ctx)
		if !ok {
			return nil, false
		}
		return value.NewIntervalSet(value.ToInt(lv), value.ToInt(hv)), true
	})
}
