package compile

import (
	"github.com/HosamIntel/quint/internal/ir"
	"github.com/HosamIntel/quint/value"
)

func init() {
	registerOp("fold", opFold)
	registerOp("foldl", opFold)
	registerOp("foldr", opFoldr)
	registerOp("exists", opExists)
	registerOp("forall", opForall)
	registerOp("map", opMapOver)
	registerOp("filter", opFilter)
	registerOp("select", opFilter) // `select` is the record/list-predicate spelling of `filter`
	registerOp("mapBy", opMapBy)
	registerOp("oneOf", opOneOf)
}

// collectionElems enumerates s's elements regardless of whether it is a
// Set or a List, since fold/exists/forall/map/filter all operate uniformly
// over either collection shape.
func collectionElems(v value.Value) ([]value.Value, error) {
	if l, ok := v.(*value.List); ok {
		return l.Elems, nil
	}
	return value.ToSet(v).Enumerate()
}

func opFold(c *compiler, id ir.ID, args []ir.Expr) Computable {
	coll, init := c.compileExpr(args[0]), c.compileExpr(args[1])
	cl, ok := c.compileCallableArg(args[2])
	if !ok {
		return c.unresolved(id, "fold(?)")
	}
	return Func(func(ctx *EvalContext) (value.Value, bool) {
		cv, ok := coll.Eval(ctx)
		if !ok {
			return nil, false
		}
		acc, ok := init.Eval(ctx)
		if !ok {
			return nil, false
		}
		elems, err := collectionElems(cv)
		if err != nil {
			return ctx.Fail(id, "fold: %v", err)
		}
		for _, e := range elems {
			acc, ok = cl.Invoke(ctx, []value.Value{acc, e})
			if !ok {
				return nil, false
			}
		}
		return acc, true
	})
}

func opFoldr(c *compiler, id ir.ID, args []ir.Expr) Computable {
	coll, init := c.compileExpr(args[0]), c.compileExpr(args[1])
	cl, ok := c.compileCallableArg(args[2])
	if !ok {
		return c.unresolved(id, "foldr(?)")
	}
	return Func(func(ctx *EvalContext) (value.Value, bool) {
		cv, ok := coll.Eval(ctx)
		if !ok {
			return nil, false
		}
		acc, ok := init.Eval(ctx)
		if !ok {
			return nil, false
		}
		elems, err := collectionElems(cv)
		if err != nil {
			return ctx.Fail(id, "foldr: %v", err)
		}
		for i := len(elems) - 1; i >= 0; i-- {
			acc, ok = cl.Invoke(ctx, []value.Value{elems[i], acc})
			if !ok {
				return nil, false
			}
		}
		return acc, true
	})
}

func opExists(c *compiler, id ir.ID, args []ir.Expr) Computable {
	coll := c.compileExpr(args[0])
	cl, ok := c.compileCallableArg(args[1])
	if !ok {
		return c.unresolved(id, "exists(?)")
	}
	return Func(func(ctx *EvalContext) (value.Value, bool) {
		cv, ok := coll.Eval(ctx)
		if !ok {
			return nil, false
		}
		elems, err := collectionElems(cv)
		if err != nil {
			return ctx.Fail(id, "exists: %v", err)
		}
		for _, e := range elems {
			r, ok := cl.Invoke(ctx, []value.Value{e})
			if ok && value.ToBool(r) {
				return value.NewBool(true), true
			}
		}
		return value.NewBool(false), true
	})
}

func opForall(c *compiler, id ir.ID, args []ir.Expr) Computable {
	coll := c.compileExpr(args[0])
	cl, ok := c.compileCallableArg(args[1])
	if !ok {
		return c.unresolved(id, "forall(?)")
	}
	return Func(func(ctx *EvalContext) (value.Value, bool) {
		cv, ok := coll.Eval(ctx)
		if !ok {
			return nil, false
		}
		elems, err := collectionElems(cv)
		if err != nil {
			return ctx.Fail(id, "forall: %v", err)
		}
		for _, e := range elems {
			r, ok := cl.Invoke(ctx, []value.Value{e})
			if !ok || !value.ToBool(r) {
				return value.NewBool(false), true
			}
		}
		return value.NewBool(true), true
	})
}

func opMapOver(c *compiler, id ir.ID, args []ir.Expr) Computable {
	coll := c.compileExpr(args[0])
	cl, ok := c.compileCallableArg(args[1])
	if !ok {
		return c.unresolved(id, "map(?)")
	}
	return Func(func(ctx *EvalContext) (value.Value, bool) {
		cv, ok := coll.Eval(ctx)
		if !ok {
			return nil, false
		}
		if l, ok := cv.(*value.List); ok {
			out := make([]value.Value, len(l.Elems))
			for i, e := range l.Elems {
				v, ok := cl.Invoke(ctx, []value.Value{e})
				if !ok {
					return nil, false
				}
				out[i] = v
			}
			return value.NewList(out...), true
		}
		elems, err := value.ToSet(cv).Enumerate()
		if err != nil {
			return ctx.Fail(id, "map: %v", err)
		}
		out := make([]value.Value, len(elems))
		for i, e := range elems {
			v, ok := cl.Invoke(ctx, []value.Value{e})
			if !ok {
				return nil, false
			}
			out[i] = v
		}
		return value.NewExplicitSet(out...), true
	})
}

func opFilter(c *compiler, id ir.ID, args []ir.Expr) Computable {
	coll := c.compileExpr(args[0])
	cl, ok := c.compileCallableArg(args[1])
	if !ok {
		return c.unresolved(id, "filter(?)")
	}
	return Func(func(ctx *EvalContext) (value.Value, bool) {
		cv, ok := coll.Eval(ctx)
		if !ok {
			return nil, false
		}
		if l, ok := cv.(*value.List); ok {
			var out []value.Value
			for _, e := range l.Elems {
				r, ok := cl.Invoke(ctx, []value.Value{e})
				if !ok {
					return nil, false
				}
				if value.ToBool(r) {
					out = append(out, e)
				}
			}
			return value.NewList(out...), true
		}
		elems, err := value.ToSet(cv).Enumerate()
		if err != nil {
			return ctx.Fail(id, "filter: %v", err)
		}
		var out []value.Value
		for _, e := range elems {
			r, ok := cl.Invoke(ctx, []value.Value{e})
			if !ok {
				return nil, false
			}
			if value.ToBool(r) {
				out = append(out, e)
			}
		}
		return value.NewExplicitSet(out...), true
	})
}

// opMapBy builds a Map keyed by the elements of a set, each bound via cl.
func opMapBy(c *compiler, id ir.ID, args []ir.Expr) Computable {
	coll := c.compileExpr(args[0])
	cl, ok := c.compileCallableArg(args[1])
	if !ok {
		return c.unresolved(id, "mapBy(?)")
	}
	return Func(func(ctx *EvalContext) (value.Value, bool) {
		cv, ok := coll.Eval(ctx)
		if !ok {
			return nil, false
		}
		elems, err := value.ToSet(cv).Enumerate()
		if err != nil {
			return ctx.Fail(id, "mapBy: %v", err)
		}
		keys := make([]value.Value, len(elems))
		vals := make([]value.Value, len(elems))
		for i, e := range elems {
			v, ok := cl.Invoke(ctx, []value.Value{e})
			if !ok {
				return nil, false
			}
			keys[i], vals[i] = e, v
		}
		return value.NewMap(keys, vals), true
	})
}

// opOneOf deterministically (given the seeded Rand) picks one element of a
// finite set. Picking from an infinite set or an empty set is a runtime
// error.
func opOneOf(c *compiler, id ir.ID, args []ir.Expr) Computable {
	s := c.compileExpr(args[0])
	return Func(func(ctx *EvalContext) (value.Value, bool) {
		sv, ok := s.Eval(ctx)
		if !ok {
			return nil, false
		}
		set := value.ToSet(sv)
		v, err := value.Pick(set, ctx.Rand.Float64())
		if err != nil {
			return ctx.Fail(id, "oneOf: %v", err)
		}
		return v, true
	})
}
