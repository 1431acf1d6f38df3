// Package quint is the embedding API: it wires the name resolver, the
// computable-graph compiler, and the randomized simulator together behind
// a single entry point, the way cuecontext.New does for the CUE
// evaluator this package's internals are modeled on.
package quint

import (
	"github.com/HosamIntel/quint/errors"
	"github.com/HosamIntel/quint/internal/compile"
	"github.com/HosamIntel/quint/internal/ir"
	"github.com/HosamIntel/quint/internal/resolve"
	"github.com/HosamIntel/quint/internal/sim"
	"github.com/HosamIntel/quint/value"
)

// Context configures how modules are compiled: the externally supplied
// constants environment every `const` declaration is resolved against.
type Context struct {
	Constants map[string]value.Value
}

// New creates a Context with an empty constants environment.
func New() *Context { return &Context{Constants: map[string]value.Value{}} }

// ResolveError reports the name-resolution failures found while compiling
// a module; compilation never proceeds past this stage when it is
// non-empty.
type ResolveError struct {
	Errs []*resolve.NameError
}

func (e *ResolveError) Error() string {
	msg := ""
	for i, ne := range e.Errs {
		if i > 0 {
			msg += "\n"
		}
		msg += ne.Error()
	}
	return msg
}

// Compile resolves and compiles m, returning a Module ready to evaluate.
func (c *Context) Compile(m *ir.Module) (*Module, error) {
	scopes, defs := ir.Build(m)
	if errs := resolve.Resolve(m, defs, scopes); len(errs) > 0 {
		return nil, &ResolveError{Errs: errs}
	}

	cfg := compile.Config{Constants: c.Constants, TestRunner: sim.Run}
	result := compile.Compile(m, cfg)
	if result.CompileErrors.Len() > 0 {
		return nil, errors.Sanitize(result.CompileErrors)
	}
	return &Module{result: result}, nil
}

// Module is a compiled, ready-to-evaluate Quint module.
type Module struct {
	result *compile.Result
}

// Eval evaluates the 0-argument val/def/action/run named name against a
// fresh, seeded evaluation context, returning its value and the runtime
// errors (if any) accumulated along the way.
func (m *Module) Eval(name string, seed uint64) (value.Value, []*compile.RuntimeError, bool) {
	c, ok := m.result.Vals[name]
	if !ok {
		return nil, nil, false
	}
	ctx := compile.NewEvalContext(seed)
	v, ok := c.Eval(ctx)
	return v, ctx.RuntimeErrors, ok
}

// Invoke calls a parameterized def/action by name with the given
// arguments.
func (m *Module) Invoke(name string, seed uint64, args []value.Value) (value.Value, []*compile.RuntimeError, bool) {
	cl, ok := m.result.Callables[name]
	if !ok {
		return nil, nil, false
	}
	ctx := compile.NewEvalContext(seed)
	v, ok := cl.Invoke(ctx, args)
	return v, ctx.RuntimeErrors, ok
}

// LastTrace returns the trace recorded by the most recently run `_test`
// simulation, if any.
func (m *Module) LastTrace() (value.Value, bool) {
	r, ok := m.result.ShadowVars["_lastTrace"]
	if !ok {
		return nil, false
	}
	v, err := r.Get()
	if err != nil {
		return nil, false
	}
	return v, true
}
