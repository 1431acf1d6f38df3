package compile

import (
	"github.com/HosamIntel/quint/internal/ir"
	"github.com/HosamIntel/quint/value"
)

func init() {
	registerOp("Map", opMap)
	registerOp("setToMap", opSetToMap)
	registerOp("setOfMaps", opSetOfMaps)
	registerOp("get", opGet)
	registerOp("set", opMapSet)
	registerOp("setBy", opSetBy)
	registerOp("put", opPut)
	registerOp("keys", opKeys)
}

// opMap expects args as (key, value) pairs, i.e. Map(k1, v1, k2, v2, ...).
func opMap(c *compiler, id ir.ID, args []ir.Expr) Computable {
	ops := compileArgs(c, args)
	return Func(func(ctx *EvalContext) (value.Value, bool) {
		vs, ok := evalArgs(ctx, ops)
		if !ok {
			return nil, false
		}
		keys := make([]value.Value, 0, len(vs)/2)
		vals := make([]value.Value, 0, len(vs)/2)
		for i := 0; i+1 < len(vs); i += 2 {
			keys = append(keys, vs[i])
			vals = append(vals, vs[i+1])
		}
		return value.NewMap(keys, vals), true
	})
}

func opSetToMap(c *compiler, id ir.ID, args []ir.Expr) Computable {
	s := c.compileExpr(args[0])
	return Func(func(ctx *EvalContext) (value.Value, bool) {
		sv, ok := s.Eval(ctx)
		if !ok {
			return nil, false
		}
		elems, err := value.ToSet(sv).Enumerate()
		if err != nil {
			return ctx.Fail(id, "setToMap: %v", err)
		}
		keys := make([]value.Value, len(elems))
		vals := make([]value.Value, len(elems))
		for i, e := range elems {
			t := value.ToTuple(e)
			k, _ := t.Item(1)
			v, _ := t.Item(2)
			keys[i], vals[i] = k, v
		}
		return value.NewMap(keys, vals), true
	})
}

func opSetOfMaps(c *compiler, id ir.ID, args []ir.Expr) Computable {
	domain, rng := c.compileExpr(args[0]), c.compileExpr(args[1])
	return Func(func(ctx *EvalContext) (value.Value, bool) {
		dv, ok := domain.Eval(ctx)
		if !ok {
			return nil, false
		}
		rv, ok := rng.Eval(ctx)
		if !ok {
			return nil, false
		}
		return value.NewFuncSpaceSet(value.ToSet(dv), value.ToSet(rv)), true
	})
}

func opGet(c *compiler, id ir.ID, args []ir.Expr) Computable {
	m, k := c.compileExpr(args[0]), c.compileExpr(args[1])
	return Func(func(ctx *EvalContext) (value.Value, bool) {
		mv, ok := m.Eval(ctx)
		if !ok {
			return nil, false
		}
		kv, ok := k.Eval(ctx)
		if !ok {
			return nil, false
		}
		v, ok := value.ToMap(mv).Get(kv)
		if !ok {
			return ctx.Fail(id, "get: no entry for key %s", kv.String())
		}
		return v, true
	})
}

func opMapSet(c *compiler, id ir.ID, args []ir.Expr) Computable {
	m, k, v := c.compileExpr(args[0]), c.compileExpr(args[1]), c.compileExpr(args[2])
	return Func(func(ctx *EvalContext) (value.Value, bool) {
		mv, ok := m.Eval(ctx)
		if !ok {
			return nil, false
		}
		kv, ok := k.Eval(ctx)
		if !ok {
			return nil, false
		}
		vv, ok := v.Eval(ctx)
		if !ok {
			return nil, false
		}
		out, ok := value.ToMap(mv).Set(kv, vv)
		if !ok {
			return ctx.Fail(id, "set: no entry for key %s", kv.String())
		}
		return out, true
	})
}

// opSetBy applies a callable to the old value at k to compute the new one,
// failing like `set` if k is absent.
func opSetBy(c *compiler, id ir.ID, args []ir.Expr) Computable {
	m, k := c.compileExpr(args[0]), c.compileExpr(args[1])
	cl, ok := c.compileCallableArg(args[2])
	if !ok {
		return c.unresolved(id, "setBy(?)")
	}
	return Func(func(ctx *EvalContext) (value.Value, bool) {
		mv, ok := m.Eval(ctx)
		if !ok {
			return nil, false
		}
		kv, ok := k.Eval(ctx)
		if !ok {
			return nil, false
		}
		mm := value.ToMap(mv)
		old, ok := mm.Get(kv)
		if !ok {
			return ctx.Fail(id, "setBy: no entry for key %s", kv.String())
		}
		nv, ok := cl.Invoke(ctx, []value.Value{old})
		if !ok {
			return nil, false
		}
		out, _ := mm.Set(kv, nv)
		return out, true
	})
}

func opPut(c *compiler, id ir.ID, args []ir.Expr) Computable {
	m, k, v := c.compileExpr(args[0]), c.compileExpr(args[1]), c.compileExpr(args[2])
	return Func(func(ctx *EvalContext) (value.Value, bool) {
		mv, ok := m.Eval(ctx)
		if !ok {
			return nil, false
		}
		kv, ok := k.Eval(ctx)
		if !ok {
			return nil, false
		}
		vv, ok := v.Eval(ctx)
		if !ok {
			return nil, false
		}
		return value.ToMap(mv).Put(kv, vv), true
	})
}

func opKeys(c *compiler, id ir.ID, args []ir.Expr) Computable {
	m := c.compileExpr(args[0])
	return Func(func(ctx *EvalContext) (value.Value, bool) {
		mv, ok := m.Eval(ctx)
		if !ok {
			return nil, false
		}
		return value.ToMap(mv).Keys(), true
	})
}
