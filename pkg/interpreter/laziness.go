package interpreter

import (
	"errors"

	"xslang/interpreter-go/pkg/ast"
	"xslang/interpreter-go/pkg/diag"
	"xslang/interpreter-go/pkg/runtime"
)

var errThunkCycle = errors.New("thunk depends on its own value")

// forceIt realizes a thunk in the environment it captured and caches the
// result. Any other value is returned unchanged.
func (i *Interpreter) forceIt(v runtime.Value) (runtime.Value, error) {
	t, ok := v.(*runtime.Thunk)
	if !ok {
		return v, nil
	}
	if t.Memoized() {
		return t.Value(), nil
	}
	if !t.BeginForce() {
		return nil, i.fail(diag.NewExceptionError(t.Expr, errThunkCycle))
	}
	i.ctx.PushEnvironment(t.Env)
	val, err := i.actualValue(t.Expr)
	if err != nil {
		t.AbortForce()
		return nil, err
	}
	i.ctx.PopEnvironment()
	t.Resolve(val)
	return val, nil
}

// actualValue evaluates expr and forces the result. Every consumer of a
// sub-expression's value goes through it.
func (i *Interpreter) actualValue(expr ast.Expression) (runtime.Value, error) {
	val, err := i.evaluate(expr)
	if err != nil {
		return nil, err
	}
	return i.forceIt(val)
}

// argument evaluates a call argument: forced in eager mode, delayed over the
// current environment in lazy mode.
func (i *Interpreter) argument(expr ast.Expression) (runtime.Value, error) {
	if !i.opts.Lazy {
		return i.actualValue(expr)
	}
	switch e := expr.(type) {
	case *ast.Literal:
		return literalValue(e), nil
	case *ast.FunctionExpression, *ast.ArrowFunctionExpression:
		return i.evaluate(e)
	}
	return runtime.NewThunk(expr, i.ctx.CurrentEnvironment()), nil
}
