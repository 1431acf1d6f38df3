package compile

import (
	"github.com/HosamIntel/quint/internal/ir"
	"github.com/HosamIntel/quint/value"
)

func init() {
	registerOp("next", opNext)
	registerOp("assign", opAssign)
	registerOp("eq", binOp(func(a, b value.Value) value.Value { return value.NewBool(value.Equals(a, b)) }))
	registerOp("neq", binOp(func(a, b value.Value) value.Value { return value.NewBool(!value.Equals(a, b)) }))
	registerOp("ite", opIte)
	registerOp("not", opNot)
	registerOp("iff", opIff)
	registerOp("implies", opImplies)
	registerOp("and", opAnd)
	registerOp("or", opOr)
}

// varName extracts the identifier out of the single Name argument opcodes
// like next/assign take in reference to a declared variable.
func varName(c *compiler, id ir.ID, e ir.Expr) (string, bool) {
	n, ok := e.(*ir.Name)
	if !ok {
		c.errf(id, "expected a variable name")
		return "", false
	}
	return n.Ident, true
}

func opNext(c *compiler, id ir.ID, args []ir.Expr) Computable {
	name, ok := varName(c, id, args[0])
	if !ok {
		return c.unresolved(id, "next(?)")
	}
	r, ok := c.nextVars[name]
	if !ok {
		c.errf(id, "next: %q is not a declared variable", name)
		return c.unresolved(id, name)
	}
	return RegisterRead(r)
}

func opAssign(c *compiler, id ir.ID, args []ir.Expr) Computable {
	name, ok := varName(c, id, args[0])
	if !ok {
		return c.unresolved(id, "assign(?)")
	}
	r, ok := c.nextVars[name]
	if !ok {
		c.errf(id, "assign: %q is not a declared variable", name)
		return c.unresolved(id, name)
	}
	rhs := c.compileExpr(args[1])
	return Func(func(ctx *EvalContext) (value.Value, bool) {
		v, ok := rhs.Eval(ctx)
		if !ok {
			return nil, false
		}
		r.Set(v)
		return value.NewBool(true), true
	})
}

func binOp(f func(a, b value.Value) value.Value) opcodeHandler {
	return func(c *compiler, id ir.ID, args []ir.Expr) Computable {
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
			return f(av, bv), true
		})
	}
}

func opIte(c *compiler, id ir.ID, args []ir.Expr) Computable {
	cond := c.compileExpr(args[0])
	then := c.compileExpr(args[1])
	els := c.compileExpr(args[2])
	return Func(func(ctx *EvalContext) (value.Value, bool) {
		cv, ok := cond.Eval(ctx)
		if !ok {
			return nil, false
		}
		if value.ToBool(cv) {
			return then.Eval(ctx)
		}
		return els.Eval(ctx)
	})
}

func opNot(c *compiler, id ir.ID, args []ir.Expr) Computable {
	a := c.compileExpr(args[0])
	return Func(func(ctx *EvalContext) (value.Value, bool) {
		av, ok := a.Eval(ctx)
		if !ok {
			return nil, false
		}
		return value.NewBool(!value.ToBool(av)), true
	})
}

func opIff(c *compiler, id ir.ID, args []ir.Expr) Computable {
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
		return value.NewBool(value.ToBool(av) == value.ToBool(bv)), true
	})
}

func opImplies(c *compiler, id ir.ID, args []ir.Expr) Computable {
	a, b := c.compileExpr(args[0]), c.compileExpr(args[1])
	return Func(func(ctx *EvalContext) (value.Value, bool) {
		av, ok := a.Eval(ctx)
		if !ok {
			return nil, false
		}
		if !value.ToBool(av) {
			return value.NewBool(true), true
		}
		return b.Eval(ctx)
	})
}

// opAnd short-circuits: it stops at the first operand that evaluates to
// false, and treats an operand that fails to evaluate at all as false too
// rather than failing the whole conjunction (§4.4: and/or coerce failure
// to false).
func opAnd(c *compiler, id ir.ID, args []ir.Expr) Computable {
	ops := compileArgs(c, args)
	return Func(func(ctx *EvalContext) (value.Value, bool) {
		for _, op := range ops {
			v, ok := op.Eval(ctx)
			if !ok || !value.ToBool(v) {
				return value.NewBool(false), true
			}
		}
		return value.NewBool(true), true
	})
}

func opOr(c *compiler, id ir.ID, args []ir.Expr) Computable {
	ops := compileArgs(c, args)
	return Func(func(ctx *EvalContext) (value.Value, bool) {
		for _, op := range ops {
			v, ok := op.Eval(ctx)
			if ok && value.ToBool(v) {
				return value.NewBool(true), true
			}
		}
		return value.NewBool(false), true
	})
}
