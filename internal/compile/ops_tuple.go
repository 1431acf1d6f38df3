package compile

import (
	"github.com/HosamIntel/quint/internal/ir"
	"github.com/HosamIntel/quint/value"
)

func init() {
	registerOp("Tup", opTup)
	registerOp("item", opItem)
	registerOp("tuples", opTuples)
}

func opTup(c *compiler, id ir.ID, args []ir.Expr) Computable {
	ops := compileArgs(c, args)
	return Func(func(ctx *EvalContext) (value.Value, bool) {
		vs, ok := evalArgs(ctx, ops)
		if !ok {
			return nil, false
		}
		return value.NewTuple(vs...), true
	})
}

func opItem(c *compiler, id ir.ID, args []ir.Expr) Computable {
	t, idxExpr := c.compileExpr(args[0]), c.compileExpr(args[1])
	return Func(func(ctx *EvalContext) (value.Value, bool) {
		tv, ok := t.Eval(ctx)
		if !ok {
			return nil, false
		}
		iv, ok := idxExpr.Eval(ctx)
		if !ok {
			return nil, false
		}
		idx := int(value.ToInt(iv).Big().Int64())
		v, ok := value.ToTuple(tv).Item(idx)
		if !ok {
			return ctx.Fail(id, "item: index %d out of range", idx)
		}
		return v, true
	})
}

// opTuples builds the cross-product set of its set-valued operands — the
// set-level counterpart to Tup.
func opTuples(c *compiler, id ir.ID, args []ir.Expr) Computable {
	ops := compileArgs(c, args)
	return Func(func(ctx *EvalContext) (value.Value, bool) {
		vs, ok := evalArgs(ctx, ops)
		if !ok {
			return nil, false
		}
		factors := make([]value.Set, len(vs))
		for i, v := range vs {
			factors[i] = value.ToSet(v)
		}
		return value.NewProductSet(factors...), true
	})
}
