package compile

import (
	"fmt"
	"math/rand/v2"

	"github.com/HosamIntel/quint/internal/ir"
	"github.com/HosamIntel/quint/value"
)

// A Computable is a lazy thunk producing an optional value: Eval returns
// (v, true) on success or (nil, false) if evaluation failed. A failure has
// already been appended to ctx's runtime-error log by the computable that
// raised it; computables further up the graph simply propagate "no value"
// unless their opcode explicitly coerces failure to a Boolean (and/or,
// actionAny).
type Computable interface {
	Eval(ctx *EvalContext) (value.Value, bool)
}

// EvalContext threads the one thing evaluation needs beyond the register
// bank: a seeded random source (for oneOf and actionAny) and the
// accumulated runtime-error log. The evaluator is strictly single-threaded
// and cooperative (§5): there is exactly one EvalContext alive at a time
// and nothing here needs synchronization.
type EvalContext struct {
	Rand *rand.Rand

	RuntimeErrors []*RuntimeError
}

// NewEvalContext creates a context seeded deterministically: the same seed
// always drives the same sequence of oneOf/actionAny choices, which is
// what makes a failing simulator run replayable.
func NewEvalContext(seed uint64) *EvalContext {
	return &EvalContext{Rand: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Fail records a runtime error attributed to id and returns the (nil,
// false) pair every failing Computable.Eval should return.
func (c *EvalContext) Fail(id ir.ID, format string, args ...interface{}) (value.Value, bool) {
	c.RuntimeErrors = append(c.RuntimeErrors, &RuntimeError{Ref: id, Message: fmt.Sprintf(format, args...)})
	return nil, false
}

// constComputable always returns the same value.
type constComputable struct{ v value.Value }

func Const(v value.Value) Computable { return &constComputable{v: v} }

func (c *constComputable) Eval(*EvalContext) (value.Value, bool) { return c.v, true }

// regComputable reads a register, failing if it is unset.
type regComputable struct{ r *Register }

func RegisterRead(r *Register) Computable { return &regComputable{r: r} }

func (c *regComputable) Eval(ctx *EvalContext) (value.Value, bool) {
	v, err := c.r.Get()
	if err != nil {
		re := err.(*RuntimeError)
		ctx.RuntimeErrors = append(ctx.RuntimeErrors, re)
		return nil, false
	}
	return v, true
}

// funcComputable wraps an arbitrary evaluation closure built by the
// compiler while lowering an App, Lambda body, or Let.
type funcComputable struct {
	fn func(ctx *EvalContext) (value.Value, bool)
}

// Func builds a Computable from a closure. Every opcode handler in this
// package ends by calling Func, closing over its already-compiled operand
// Computables — no evaluation happens while building the closure itself,
// only once the graph is later invoked.
func Func(fn func(ctx *EvalContext) (value.Value, bool)) Computable {
	return &funcComputable{fn: fn}
}

func (c *funcComputable) Eval(ctx *EvalContext) (value.Value, bool) { return c.fn(ctx) }

// Callable pairs a compiled body with the parameter registers it closes
// over. Invoking it stores arguments into those registers, then evaluates
// the body; the registers are shared with whatever scope introduced them,
// so repeated invocation (from a simulator loop, from fold/map/exists)
// re-binds them each time rather than re-compiling anything.
type Callable struct {
	Params []*Register
	Body   Computable
	// DeclID attributes an arity mismatch at a dynamic call site (e.g. a
	// callable value taken from context and invoked by map/exists) to the
	// callable's own definition.
	DeclID ir.ID
}

func (c *Callable) Arity() int { return len(c.Params) }

// Invoke binds args into Params and evaluates Body.
func (c *Callable) Invoke(ctx *EvalContext, args []value.Value) (value.Value, bool) {
	if len(args) != len(c.Params) {
		return ctx.Fail(c.DeclID, "arity mismatch: expected %d argument(s), got %d", len(c.Params), len(args))
	}
	for i, p := range c.Params {
		p.Set(args[i])
	}
	return c.Body.Eval(ctx)
}
