package interpreter

import (
	"xslang/interpreter-go/pkg/ast"
	"xslang/interpreter-go/pkg/runtime"
)

// Options tunes evaluation.
type Options struct {
	// Lazy passes closure arguments as memoized thunks over the caller's
	// environment instead of forcing them before the call.
	Lazy bool
}

// Interpreter drives evaluation of program nodes over one Context.
type Interpreter struct {
	ctx     *runtime.Context
	opts    Options
	hook    Hook
	stopped bool
}

// New returns an interpreter over ctx. The caller prepares the context: its
// global frame and protected boundary are used as given.
func New(ctx *runtime.Context, opts Options) *Interpreter {
	return &Interpreter{ctx: ctx, opts: opts}
}

// NewContext builds a context around a fresh global environment.
func NewContext() *runtime.Context {
	return runtime.NewContext(runtime.NewEnvironment("global", nil))
}

// Context returns the interpreter's context.
func (i *Interpreter) Context() *runtime.Context {
	return i.ctx
}

// Run evaluates program, delivering every checkpoint to hook (which may be
// nil), and returns the program's forced result.
func (i *Interpreter) Run(program *ast.Program, hook Hook) (runtime.Value, error) {
	prev := i.hook
	i.hook = hook
	i.stopped = false
	defer func() { i.hook = prev }()
	return i.evaluate(program)
}

// Evaluate evaluates a single node in the current context. It is re-entrant
// and shares the hook of an enclosing Run.
func (i *Interpreter) Evaluate(node ast.Node) (runtime.Value, error) {
	return i.evaluate(node)
}

// Force realizes v if it is a thunk.
func (i *Interpreter) Force(v runtime.Value) (runtime.Value, error) {
	return i.forceIt(v)
}

// Invoke applies callee to already evaluated arguments. Natives use it to
// call back into source functions.
func (i *Interpreter) Invoke(callee runtime.Value, args []runtime.Value) (runtime.Value, error) {
	node := i.ctx.CurrentNode()
	site, _ := node.(*ast.CallExpression)
	val, err := i.apply(node, callee, args, site, runtime.Undefined)
	if err != nil {
		return nil, err
	}
	return i.forceIt(val)
}
