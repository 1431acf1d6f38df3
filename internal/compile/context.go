package compile

import (
	"github.com/HosamIntel/quint/errors"
	"github.com/HosamIntel/quint/internal/ir"
	"github.com/HosamIntel/quint/value"
)

// TestRunnerFunc drives the `_test` opcode (§4.5). It lives behind an
// interface so that this package never imports the simulator package that
// implements it — the simulator depends on compile, not the reverse. The
// embedding layer (quint.go) wires Config.TestRunner to the simulator's
// Run function.
type TestRunnerFunc func(ctx *EvalContext, prog *Result, nruns, nsteps int, initName, stepName, invName string, id ir.ID) (value.Value, bool)

// Config configures a compilation.
type Config struct {
	// Constants resolves `const` declarations against an externally
	// supplied environment; out of scope of the core evaluator proper.
	Constants map[string]value.Value

	// TestRunner implements the `_test` opcode. If nil, `_test` compiles
	// to a Computable that always fails with a clear diagnostic (useful
	// for compiling modules without linking in a simulator at all).
	TestRunner TestRunnerFunc
}

// Result is what compiling a module produces: the name -> computable
// context, the state-variable registers in declaration order (so the
// simulator can snapshot/shift/restore them as a fixed-size vector), the
// shadow registers, and any errors collected along the way.
type Result struct {
	Vals       map[string]Computable
	Callables  map[string]*Callable
	Vars       []*Register // declaration order
	NextVars   []*Register // Vars[i] and NextVars[i] are the same variable
	ShadowVars map[string]*Register

	CompileErrors *errors.List
}

// compiler is the visitor that lowers IR into a Result. Leaves push a
// Computable by returning it; inner nodes pop their already-compiled
// operands (as Go call arguments) and return a combined Computable. No
// evaluation happens here — building a funcComputable's closure is not
// invoking it. The "compilation stack" the spec describes is realized
// directly as Go's own call stack through this recursive-descent
// compileExpr, the same shape the teacher's compile.compileExpr takes
// over its AST.
type compiler struct {
	cfg Config

	vals      map[string]Computable
	vars      map[string]*Register
	nextVars  map[string]*Register
	callables map[string]*Callable
	shadows   map[string]*Register
	varOrder  []string

	// argScopes is the lexical stack of parameter bindings: innermost
	// lambda/def last. Unlike the module-level maps above, these are
	// pushed on entry to a Lambda/operator body and popped on exit, so
	// that a nested lambda's parameter correctly shadows an outer one of
	// the same name.
	argScopes []map[string]*Register

	errs *errors.List
}

func newCompiler(cfg Config) *compiler {
	return &compiler{
		cfg:       cfg,
		vals:      map[string]Computable{},
		vars:      map[string]*Register{},
		nextVars:  map[string]*Register{},
		callables: map[string]*Callable{},
		shadows:   map[string]*Register{},
	}
}

func (c *compiler) errf(id ir.ID, format string, args ...interface{}) {
	c.errs = errors.Append(c.errs, errors.New([]int{int(id)}, format, args...))
}

func (c *compiler) pushArgs(m map[string]*Register) { c.argScopes = append(c.argScopes, m) }
func (c *compiler) popArgs()                        { c.argScopes = c.argScopes[:len(c.argScopes)-1] }

// lookupArg searches the lexical argument stack innermost-first.
func (c *compiler) lookupArg(name string) (*Register, bool) {
	for i := len(c.argScopes) - 1; i >= 0; i-- {
		if r, ok := c.argScopes[i][name]; ok {
			return r, true
		}
	}
	return nil, false
}

// lookupName resolves a bare identifier in value position, trying kinds in
// the priority order the spec specifies: shadow > val > var > arg.
// Callable is deliberately not a candidate here: a Name can only denote a
// value, and an operator with parameters is not one (see lookupCallable
// for how a bare name used where a callable is expected, e.g. as fold's
// combinator argument, is resolved instead).
func (c *compiler) lookupName(name string) (Computable, bool) {
	if r, ok := c.shadows[name]; ok {
		return RegisterRead(r), true
	}
	if v, ok := c.vals[name]; ok {
		return v, true
	}
	if r, ok := c.vars[name]; ok {
		return RegisterRead(r), true
	}
	if r, ok := c.lookupArg(name); ok {
		return RegisterRead(r), true
	}
	return nil, false
}

// lookupCallable resolves an App's opcode name, or an explicit callable
// argument given as a bare name, against user-defined operators.
func (c *compiler) lookupCallable(name string) (*Callable, bool) {
	cl, ok := c.callables[name]
	return cl, ok
}

// varRegsInOrder returns the current- and next-state register slices in
// declaration order. Safe to call only after predeclare has run over every
// declaration (compileDecls guarantees this before any body is compiled),
// since that is what populates varOrder.
func (c *compiler) varRegsInOrder() (vars, nextVars []*Register) {
	vars = make([]*Register, len(c.varOrder))
	nextVars = make([]*Register, len(c.varOrder))
	for i, name := range c.varOrder {
		vars[i] = c.vars[name]
		nextVars[i] = c.nextVars[name]
	}
	return vars, nextVars
}

func (c *compiler) finish() *Result {
	r := &Result{
		Vals:          c.vals,
		Callables:     c.callables,
		ShadowVars:    c.shadows,
		CompileErrors: c.errs,
	}
	for _, name := range c.varOrder {
		r.Vars = append(r.Vars, c.vars[name])
		r.NextVars = append(r.NextVars, c.nextVars[name])
	}
	return r
}
