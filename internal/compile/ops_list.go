package compile

import (
	"github.com/HosamIntel/quint/internal/ir"
	"github.com/HosamIntel/quint/value"
)

func init() {
	registerOp("List", opList)
	registerOp("range", opRange)
	registerOp("nth", opNth)
	registerOp("replaceAt", opReplaceAt)
	registerOp("head", opHead)
	registerOp("tail", opTail)
	registerOp("slice", opSlice)
	registerOp("length", opLength)
	registerOp("append", opAppend)
	registerOp("concat", opConcat)
	registerOp("indices", opIndices)
}

func opList(c *compiler, id ir.ID, args []ir.Expr) Computable {
	ops := compileArgs(c, args)
	return Func(func(ctx *EvalContext) (value.Value, bool) {
		vs, ok := evalArgs(ctx, ops)
		if !ok {
			return nil, false
		}
		return value.NewList(vs...), true
	})
}

// opRange builds the list [a, a+1, ..., b]; unlike the set op `to`, an
// empty range (a > b) is a runtime error rather than the empty list.
func opRange(c *compiler, id ir.ID, args []ir.Expr) Computable {
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
		loB, hiB := value.ToInt(lv).Big(), value.ToInt(hv).Big()
		if loB.Cmp(hiB) > 0 {
			return ctx.Fail(id, "range: lower bound %s is greater than upper bound %s", loB, hiB)
		}
		set := value.NewIntervalSet(value.ToInt(lv), value.ToInt(hv))
		elems, err := set.Enumerate()
		if err != nil {
			return ctx.Fail(id, "range: %v", err)
		}
		return value.NewList(elems...), true
	})
}

func opNth(c *compiler, id ir.ID, args []ir.Expr) Computable {
	l, idxExpr := c.compileExpr(args[0]), c.compileExpr(args[1])
	return Func(func(ctx *EvalContext) (value.Value, bool) {
		lv, ok := l.Eval(ctx)
		if !ok {
			return nil, false
		}
		iv, ok := idxExpr.Eval(ctx)
		if !ok {
			return nil, false
		}
		idx := int(value.ToInt(iv).Big().Int64())
		v, ok := value.ToList(lv).Nth(idx)
		if !ok {
			return ctx.Fail(id, "nth: index %d out of range", idx)
		}
		return v, true
	})
}

func opReplaceAt(c *compiler, id ir.ID, args []ir.Expr) Computable {
	l, idxExpr, v := c.compileExpr(args[0]), c.compileExpr(args[1]), c.compileExpr(args[2])
	return Func(func(ctx *EvalContext) (value.Value, bool) {
		lv, ok := l.Eval(ctx)
		if !ok {
			return nil, false
		}
		iv, ok := idxExpr.Eval(ctx)
		if !ok {
			return nil, false
		}
		vv, ok := v.Eval(ctx)
		if !ok {
			return nil, false
		}
		idx := int(value.ToInt(iv).Big().Int64())
		out, ok := value.ToList(lv).ReplaceAt(idx, vv)
		if !ok {
			return ctx.Fail(id, "replaceAt: index %d out of range", idx)
		}
		return out, true
	})
}

func opHead(c *compiler, id ir.ID, args []ir.Expr) Computable {
	l := c.compileExpr(args[0])
	return Func(func(ctx *EvalContext) (value.Value, bool) {
		lv, ok := l.Eval(ctx)
		if !ok {
			return nil, false
		}
		v, ok := value.ToList(lv).Nth(0)
		if !ok {
			return ctx.Fail(id, "head: list is empty")
		}
		return v, true
	})
}

func opTail(c *compiler, id ir.ID, args []ir.Expr) Computable {
	l := c.compileExpr(args[0])
	return Func(func(ctx *EvalContext) (value.Value, bool) {
		lv, ok := l.Eval(ctx)
		if !ok {
			return nil, false
		}
		list := value.ToList(lv)
		out, ok := list.Slice(1, list.Len())
		if !ok {
			return ctx.Fail(id, "tail: list is empty")
		}
		return out, true
	})
}

func opSlice(c *compiler, id ir.ID, args []ir.Expr) Computable {
	l, startExpr, endExpr := c.compileExpr(args[0]), c.compileExpr(args[1]), c.compileExpr(args[2])
	return Func(func(ctx *EvalContext) (value.Value, bool) {
		lv, ok := l.Eval(ctx)
		if !ok {
			return nil, false
		}
		sv, ok := startExpr.Eval(ctx)
		if !ok {
			return nil, false
		}
		ev, ok := endExpr.Eval(ctx)
		if !ok {
			return nil, false
		}
		start := int(value.ToInt(sv).Big().Int64())
		end := int(value.ToInt(ev).Big().Int64())
		out, ok := value.ToList(lv).Slice(start, end)
		if !ok {
			return ctx.Fail(id, "slice: [%d, %d) out of range", start, end)
		}
		return out, true
	})
}

func opLength(c *compiler, id ir.ID, args []ir.Expr) Computable {
	l := c.compileExpr(args[0])
	return Func(func(ctx *EvalContext) (value.Value, bool) {
		lv, ok := l.Eval(ctx)
		if !ok {
			return nil, false
		}
		return value.NewInt(int64(value.ToList(lv).Len())), true
	})
}

func opAppend(c *compiler, id ir.ID, args []ir.Expr) Computable {
	l, v := c.compileExpr(args[0]), c.compileExpr(args[1])
	return Func(func(ctx *EvalContext) (value.Value, bool) {
		lv, ok := l.Eval(ctx)
		if !ok {
			return nil, false
		}
		vv, ok := v.Eval(ctx)
		if !ok {
			return nil, false
		}
		return value.ToList(lv).Append(vv), true
	})
}

func opConcat(c *compiler, id ir.ID, args []ir.Expr) Computable {
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
		return value.ToList(av).Concat(value.ToList(bv)), true
	})
}

func opIndices(c *compiler, id ir.ID, args []ir.Expr) Computable {
	l := c.compileExpr(args[0])
	return Func(func(ctx *EvalContext) (value.Value, bool) {
		lv, ok := l.Eval(ctx)
		if !ok {
			return nil, false
		}
		n := value.ToList(lv).Len()
		if n == 0 {
			return value.NewIntervalSet(value.NewInt(0), value.NewInt(-1)), true
		}
		return value.NewIntervalSet(value.NewInt(0), value.NewInt(int64(n-1))), true
	})
}
