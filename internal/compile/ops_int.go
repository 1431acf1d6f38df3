package compile

import (
	"math/big"

	"github.com/HosamIntel/quint/internal/ir"
	"github.com/HosamIntel/quint/value"
)

func init() {
	registerOp("iuminus", unaryIntOp(func(a *big.Int) *big.Int { return new(big.Int).Neg(a) }))
	registerOp("iadd", intBinOp(func(a, b *big.Int) *big.Int { return new(big.Int).Add(a, b) }))
	registerOp("isub", intBinOp(func(a, b *big.Int) *big.Int { return new(big.Int).Sub(a, b) }))
	registerOp("imul", intBinOp(func(a, b *big.Int) *big.Int { return new(big.Int).Mul(a, b) }))
	registerOp("ipow", intPow)
	registerOp("idiv", intDivOp("idiv", func(a, b *big.Int) (*big.Int, bool) {
		if b.Sign() == 0 {
			return nil, false
		}
		q, m := new(big.Int).QuoRem(a, b, new(big.Int))
		// Euclidean-style floor division like real Quint integers: adjust
		// when the remainder disagrees in sign with the divisor.
		if m.Sign() != 0 && (m.Sign() < 0) != (b.Sign() < 0) {
			q.Sub(q, big.NewInt(1))
		}
		return q, true
	}))
	registerOp("imod", intDivOp("imod", func(a, b *big.Int) (*big.Int, bool) {
		if b.Sign() == 0 {
			return nil, false
		}
		m := new(big.Int).Mod(a, b)
		if m.Sign() < 0 {
			m.Add(m, new(big.Int).Abs(b))
		}
		return m, true
	}))
	registerOp("igt", intCmpOp(func(c int) bool { return c > 0 }))
	registerOp("ilt", intCmpOp(func(c int) bool { return c < 0 }))
	registerOp("igte", intCmpOp(func(c int) bool { return c >= 0 }))
	registerOp("ilte", intCmpOp(func(c int) bool { return c <= 0 }))
}

func unaryIntOp(f func(a *big.Int) *big.Int) opcodeHandler {
	return func(c *compiler, id ir.ID, args []ir.Expr) Computable {
		a := c.compileExpr(args[0])
		return Func(func(ctx *EvalContext) (value.Value, bool) {
			av, ok := a.Eval(ctx)
			if !ok {
				return nil, false
			}
			return value.NewIntFromBig(f(value.ToInt(av).Big())), true
		})
	}
}

func intBinOp(f func(a, b *big.Int) *big.Int) opcodeHandler {
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
			return value.NewIntFromBig(f(value.ToInt(av).Big(), value.ToInt(bv).Big())), true
		})
	}
}

func intPow(c *compiler, id ir.ID, args []ir.Expr) Computable {
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
		base := value.ToInt(av).Big()
		exp := value.ToInt(bv).Big()
		if exp.Sign() < 0 {
			return ctx.Fail(id, "ipow: negative exponent %s is not supported for integers", exp.String())
		}
		if base.Sign() == 0 && exp.Sign() == 0 {
			return ctx.Fail(id, "ipow: 0^0 is not defined")
		}
		return value.NewIntFromBig(new(big.Int).Exp(base, exp, nil)), true
	})
}

func intDivOp(name string, f func(a, b *big.Int) (*big.Int, bool)) opcodeHandler {
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
			r, ok := f(value.ToInt(av).Big(), value.ToInt(bv).Big())
			if !ok {
				return ctx.Fail(id, "%s: division by zero", name)
			}
			return value.NewIntFromBig(r), true
		})
	}
}

func intCmpOp(f func(cmp int) bool) opcodeHandler {
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
			return value.NewBool(f(value.ToInt(av).Big().Cmp(value.ToInt(bv).Big()))), true
		})
	}
}
