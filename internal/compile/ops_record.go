package compile

import (
	"github.com/HosamIntel/quint/internal/ir"
	"github.com/HosamIntel/quint/value"
)

func init() {
	registerOp("Rec", opRec)
	registerOp("field", opField)
	registerOp("with", opWith)
	registerOp("fieldNames", opFieldNames)
}

// opRec expects args to alternate (name-literal, value-expr) pairs: the
// field names are compile-time string literals, compiled directly rather
// than through the generic expression path.
func opRec(c *compiler, id ir.ID, args []ir.Expr) Computable {
	n := len(args) / 2
	names := make([]string, n)
	vals := make([]Computable, n)
	for i := 0; i < n; i++ {
		lit, ok := args[2*i].(*ir.Lit)
		if !ok || lit.Str == nil {
			c.errf(id, "Rec: field name must be a string literal")
			continue
		}
		names[i] = *lit.Str
		vals[i] = c.compileExpr(args[2*i+1])
	}
	return Func(func(ctx *EvalContext) (value.Value, bool) {
		vs, ok := evalArgs(ctx, vals)
		if !ok {
			return nil, false
		}
		return value.NewRecord(names, vs), true
	})
}

func opField(c *compiler, id ir.ID, args []ir.Expr) Computable {
	r := c.compileExpr(args[0])
	name, ok := fieldNameArg(c, id, args[1])
	if !ok {
		return c.unresolved(id, "field(?)")
	}
	return Func(func(ctx *EvalContext) (value.Value, bool) {
		rv, ok := r.Eval(ctx)
		if !ok {
			return nil, false
		}
		v, ok := value.ToRecord(rv).Field(name)
		if !ok {
			return ctx.Fail(id, "field: no field %q", name)
		}
		return v, true
	})
}

func opWith(c *compiler, id ir.ID, args []ir.Expr) Computable {
	r := c.compileExpr(args[0])
	name, ok := fieldNameArg(c, id, args[1])
	if !ok {
		return c.unresolved(id, "with(?)")
	}
	v := c.compileExpr(args[2])
	return Func(func(ctx *EvalContext) (value.Value, bool) {
		rv, ok := r.Eval(ctx)
		if !ok {
			return nil, false
		}
		vv, ok := v.Eval(ctx)
		if !ok {
			return nil, false
		}
		return value.ToRecord(rv).With(name, vv), true
	})
}

func opFieldNames(c *compiler, id ir.ID, args []ir.Expr) Computable {
	r := c.compileExpr(args[0])
	return Func(func(ctx *EvalContext) (value.Value, bool) {
		rv, ok := r.Eval(ctx)
		if !ok {
			return nil, false
		}
		names := value.ToRecord(rv).FieldNames()
		elems := make([]value.Value, len(names))
		for i, n := range names {
			elems[i] = value.NewStr(n)
		}
		return value.NewExplicitSet(elems...), true
	})
}

func fieldNameArg(c *compiler, id ir.ID, e ir.Expr) (string, bool) {
	lit, ok := e.(*ir.Lit)
	if !ok || lit.Str == nil {
		c.errf(id, "expected a string literal field name")
		return "", false
	}
	return *lit.Str, true
}
