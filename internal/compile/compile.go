// Package compile lowers resolved IR into a graph of lazy Computables: no
// evaluation happens while compiling, only while later invoking the graph
// the compiler produces (§4.4).
package compile

import (
	"github.com/HosamIntel/quint/internal/ir"
	"github.com/HosamIntel/quint/value"
)

// opcodeHandler compiles one builtin application. Handlers are registered
// by the ops_*.go files via registerOp, keeping this file free of the ~70
// opcode bodies while still dispatching through a single switch-like table.
type opcodeHandler func(c *compiler, id ir.ID, args []ir.Expr) Computable

var opcodes = map[string]opcodeHandler{}

func registerOp(name string, h opcodeHandler) {
	if _, dup := opcodes[name]; dup {
		panic("compile: duplicate opcode registration for " + name)
	}
	opcodes[name] = h
}

// Compile lowers m into a Result. Resolution (internal/resolve) must have
// already run and found no errors; Compile does not re-check name
// visibility, only type-shape mismatches surface here (and those mostly as
// runtime panics deferred to evaluation, per value's To* contract, since
// full static typechecking is out of scope).
func Compile(m *ir.Module, cfg Config) *Result {
	c := newCompiler(cfg)
	seedBuiltins(c)
	c.compileDecls(m.Decls)
	return c.finish()
}

// seedBuiltins registers the handful of names every module gets for free:
// the Bool set, the Int/Nat infinite markers, and the _lastTrace shadow
// register the simulator writes its most recent run's trace into.
func seedBuiltins(c *compiler) {
	c.vals["Bool"] = Const(value.NewExplicitSet(value.NewBool(false), value.NewBool(true)))
	c.vals["Int"] = Const(value.NewInfiniteSet(value.IntMarker))
	c.vals["Nat"] = Const(value.NewInfiniteSet(value.NatMarker))
	c.shadows["_lastTrace"] = NewRegister(ShadowReg, "_lastTrace", 0)
}

func (c *compiler) compileDecls(decls []ir.Decl) {
	// Two passes: first register every var/const/callable name so forward
	// references between declarations resolve (Quint declarations are
	// unordered within a module), then compile bodies.
	for _, d := range decls {
		c.predeclare(d)
	}
	for _, d := range decls {
		c.compileDecl(d)
	}
}

func (c *compiler) predeclare(d ir.Decl) {
	switch v := d.(type) {
	case *ir.VarDecl:
		c.vars[v.Name] = NewRegister(VarReg, v.Name, v.ID_)
		c.nextVars[v.Name] = NewRegister(NextVarReg, v.Name, v.ID_)
		c.varOrder = append(c.varOrder, v.Name)
	case *ir.OpDef:
		params := make([]*Register, len(v.Params))
		for i, p := range v.Params {
			params[i] = NewRegister(ArgReg, p, v.ID_)
		}
		cl := &Callable{Params: params, DeclID: v.ID_}
		c.callables[v.Name] = cl
		if len(v.Params) == 0 {
			c.vals[v.Name] = Func(func(ctx *EvalContext) (value.Value, bool) {
				return cl.Body.Eval(ctx)
			})
		}
	case *ir.ConstDecl:
		if val, ok := c.cfg.Constants[v.Name]; ok {
			c.vals[v.Name] = Const(val)
		}
	}
}

func (c *compiler) compileDecl(d ir.Decl) {
	switch v := d.(type) {
	case *ir.VarDecl:
		// Registers were allocated in predeclare; nothing to compile.

	case *ir.ConstDecl:
		val, ok := c.cfg.Constants[v.Name]
		if !ok {
			c.errf(v.ID_, "no value supplied for constant %q", v.Name)
			return
		}
		c.vals[v.Name] = Const(val)

	case *ir.Assumption:
		pred := c.compileExpr(v.Pred)
		c.vals[v.Name] = Func(func(ctx *EvalContext) (value.Value, bool) {
			ok, succeeded := pred.Eval(ctx)
			if !succeeded {
				return nil, false
			}
			if !value.ToBool(ok) {
				return ctx.Fail(v.ID_, "assumption %q does not hold", v.Name)
			}
			return ok, true
		})

	case *ir.TypeDef:
		// Types are erased after resolution; nothing runtime-relevant to
		// compile (type-driven opcodes like setOfMaps carry their own
		// shape explicitly).

	case *ir.Import, *ir.Instance:
		c.errf(d.NodeID(), "module composition is not supported by this compiler")

	case *ir.OpDef:
		c.compileOpDef(v)

	case *ir.Module:
		c.compileDecls(v.Decls)
	}
}

// compileOpDef fills in the body of a Callable allocated during
// predeclare. val/pure val (zero params) are additionally exposed through
// c.vals so a bare Name reference can read them directly without an
// Invoke.
func (c *compiler) compileOpDef(v *ir.OpDef) {
	cl := c.callables[v.Name]
	c.pushArgs(paramMap(cl.Params))
	cl.Body = c.compileExpr(v.Body)
	c.popArgs()

	if len(v.Params) == 0 {
		c.vals[v.Name] = Func(func(ctx *EvalContext) (value.Value, bool) {
			return cl.Body.Eval(ctx)
		})
	}
}

func paramMap(regs []*Register) map[string]*Register {
	m := make(map[string]*Register, len(regs))
	for _, r := range regs {
		m[r.Name] = r
	}
	return m
}

// compileExpr lowers e into a Computable. This is the recursive-descent
// heart of the compiler: the Go call stack IS the compilation stack the
// spec describes. No branch here evaluates anything; every branch either
// returns a leaf Computable or closes over already-compiled operand
// Computables in a funcComputable built by an opcode handler.
func (c *compiler) compileExpr(e ir.Expr) Computable {
	switch v := e.(type) {
	case *ir.Lit:
		return Const(compileLit(v))

	case *ir.Name:
		if cp, ok := c.lookupName(v.Ident); ok {
			return cp
		}
		return c.unresolved(v.ID_, v.Ident)

	case *ir.App:
		return c.compileApp(v)

	case *ir.Lambda:
		return c.compileLambdaValue(v)

	case *ir.Let:
		return c.compileLet(v)

	case *ir.OpDef:
		// A let-bound OpDef reached directly as an expression (should not
		// normally occur; Let handles its Def specially).
		return c.unresolved(v.ID_, v.Name)

	default:
		return Func(func(ctx *EvalContext) (value.Value, bool) {
			return ctx.Fail(e.NodeID(), "compile: unhandled expression node %T", e)
		})
	}
}

func (c *compiler) unresolved(id ir.ID, name string) Computable {
	c.errf(id, "unresolved name %q reached the compiler", name)
	return Func(func(ctx *EvalContext) (value.Value, bool) {
		return ctx.Fail(id, "unresolved name %q", name)
	})
}

func compileLit(l *ir.Lit) value.Value {
	switch {
	case l.Bool != nil:
		return value.NewBool(*l.Bool)
	case l.Int != nil:
		return value.NewIntFromBig(l.Int)
	case l.Str != nil:
		return value.NewStr(*l.Str)
	default:
		panic("compile: empty Lit node")
	}
}

// compileLambdaValue handles a Lambda reached in plain expression position.
// Quint never treats a lambda as a first-class value outside the specific
// higher-order argument slots (fold, map, exists, ...), which instead call
// compileCallableArg directly on the App's argument expression without
// going through compileExpr. Reaching here means a lambda was used
// somewhere a value was expected.
func (c *compiler) compileLambdaValue(l *ir.Lambda) Computable {
	return Func(func(ctx *EvalContext) (value.Value, bool) {
		return ctx.Fail(l.ID_, "a lambda cannot be used directly as a value")
	})
}

// compileLambda compiles a Lambda into a Callable, for use wherever a
// callable argument is expected.
func (c *compiler) compileLambda(l *ir.Lambda) *Callable {
	params := make([]*Register, len(l.Params))
	for i, p := range l.Params {
		params[i] = NewRegister(ArgReg, p, l.ID_)
	}
	cl := &Callable{Params: params, DeclID: l.ID_}
	c.pushArgs(paramMap(params))
	cl.Body = c.compileExpr(l.Body)
	c.popArgs()
	return cl
}

// compileCallableArg compiles e, which must denote a callable: either a
// Lambda literal or a bare Name referring to a previously defined
// operator. This is how fold/map/filter/exists/forall/mapBy accept their
// combinator argument.
func (c *compiler) compileCallableArg(e ir.Expr) (*Callable, bool) {
	switch v := e.(type) {
	case *ir.Lambda:
		return c.compileLambda(v), true
	case *ir.Name:
		return c.lookupCallable(v.Ident)
	default:
		return nil, false
	}
}

func (c *compiler) compileLet(l *ir.Let) Computable {
	params := make([]*Register, len(l.Def.Params))
	for i, p := range l.Def.Params {
		params[i] = NewRegister(ArgReg, p, l.Def.ID_)
	}
	cl := &Callable{Params: params, DeclID: l.Def.ID_}

	// Register the let-bound callable before compiling its body so a
	// recursive reference to itself resolves.
	prevCallable, hadCallable := c.callables[l.Def.Name]
	c.callables[l.Def.Name] = cl

	c.pushArgs(paramMap(params))
	cl.Body = c.compileExpr(l.Def.Body)
	c.popArgs()

	var bodyComputable Computable
	if len(l.Def.Params) == 0 {
		nullary := Func(func(ctx *EvalContext) (value.Value, bool) { return cl.Body.Eval(ctx) })
		prevVal, hadVal := c.vals[l.Def.Name]
		c.vals[l.Def.Name] = nullary
		bodyComputable = c.compileExpr(l.Body)
		if hadVal {
			c.vals[l.Def.Name] = prevVal
		} else {
			delete(c.vals, l.Def.Name)
		}
	} else {
		bodyComputable = c.compileExpr(l.Body)
	}

	if hadCallable {
		c.callables[l.Def.Name] = prevCallable
	} else {
		delete(c.callables, l.Def.Name)
	}

	return bodyComputable
}

func (c *compiler) compileApp(a *ir.App) Computable {
	h, ok := opcodes[a.Op]
	if ok {
		return h(c, a.ID_, a.Args)
	}
	cl, ok := c.lookupCallable(a.Op)
	if !ok {
		return c.unresolved(a.ID_, a.Op)
	}
	argComputables := make([]Computable, len(a.Args))
	for i, arg := range a.Args {
		argComputables[i] = c.compileExpr(arg)
	}
	id := a.ID_
	return Func(func(ctx *EvalContext) (value.Value, bool) {
		args := make([]value.Value, len(argComputables))
		for i, ac := range argComputables {
			v, ok := ac.Eval(ctx)
			if !ok {
				return nil, false
			}
			args[i] = v
		}
		if cl.Arity() != len(args) {
			return ctx.Fail(id, "operator expects %d argument(s), got %d", cl.Arity(), len(args))
		}
		return cl.Invoke(ctx, args)
	})
}

// evalArgs compiles and evaluates a fixed operand list eagerly (most
// opcodes are strict); short-circuiting opcodes (and, or, ite, actionAll,
// actionAny, then) compile their operands but control evaluation order
// themselves instead of calling this helper.
func evalArgs(ctx *EvalContext, args []Computable) ([]value.Value, bool) {
	out := make([]value.Value, len(args))
	for i, a := range args {
		v, ok := a.Eval(ctx)
		if !ok {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

func compileArgs(c *compiler, args []ir.Expr) []Computable {
	out := make([]Computable, len(args))
	for i, a := range args {
		out[i] = c.compileExpr(a)
	}
	return out
}
