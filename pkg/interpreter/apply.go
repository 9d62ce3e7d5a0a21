package interpreter

import (
	"errors"
	"fmt"
	"strconv"

	"xslang/interpreter-go/pkg/ast"
	"xslang/interpreter-go/pkg/diag"
	"xslang/interpreter-go/pkg/runtime"
)

// apply calls callee with args. Calls in return position come back from the
// body as tail-call signals and are run by this loop in place of the current
// frame, so tail recursion never deepens the Go stack or the environment
// stack.
func (i *Interpreter) apply(node ast.Node, callee runtime.Value, args []runtime.Value, site *ast.CallExpression, this runtime.Value) (runtime.Value, error) {
	pushed := 0
	for {
		switch fn := callee.(type) {
		case *runtime.NativeFunctionValue:
			val, err := i.callNative(node, fn, args, this)
			if err != nil {
				return nil, err
			}
			i.popFrames(pushed)
			return val, nil
		case *runtime.Closure:
			if err := checkArity(fn, len(args)); err != nil {
				return nil, i.fail(diag.NewInvalidNumberOfArguments(node, err.Error(), len(args)))
			}
			frame := fn.Env.Extend(fn.Name)
			frame.CallSite = &runtime.CallSite{Node: site, Args: args}
			if pushed == 0 {
				i.ctx.PushEnvironment(frame)
				pushed = 1
			} else {
				i.ctx.ReplaceEnvironment(frame)
			}
			if err := i.bindParameters(fn, frame, args); err != nil {
				return nil, err
			}
			result, err := i.evaluateFunctionBody(fn, this)
			if err != nil {
				return nil, err
			}
			switch r := result.(type) {
			case tailCallValue:
				callee, args, site, this = r.callee, r.args, r.site, r.this
				if site != nil {
					node = site
				}
				continue
			case returnValue:
				result = r.value
			default:
				result = runtime.Undefined
			}
			i.popFrames(pushed)
			return result, nil
		default:
			return nil, i.fail(diag.NewCallingNonFunctionValue(node, callee))
		}
	}
}

func (i *Interpreter) popFrames(n int) {
	for ; n > 0; n-- {
		i.ctx.PopEnvironment()
	}
}

// checkArity returns the expected-count description when n does not fit.
func checkArity(fn *runtime.Closure, n int) error {
	required, total := fn.Arity()
	if n >= required && n <= total {
		return nil
	}
	if required == total {
		return errors.New(strconv.Itoa(total))
	}
	return fmt.Errorf("%d to %d", required, total)
}

// bindParameters binds args positionally in frame, which must be current.
// Missing trailing parameters take their defaults, evaluated left to right
// so that earlier parameters are visible.
func (i *Interpreter) bindParameters(fn *runtime.Closure, frame *runtime.Environment, args []runtime.Value) error {
	for idx, param := range fn.Params {
		name := ast.ParamName(param)
		if idx < len(args) {
			frame.Bind(name, args[idx], true)
			continue
		}
		pattern, ok := param.(*ast.AssignmentPattern)
		if !ok || pattern.Right == nil {
			frame.Bind(name, runtime.Undefined, true)
			continue
		}
		val, err := i.actualValue(pattern.Right)
		if err != nil {
			return err
		}
		frame.Bind(name, val, true)
	}
	return nil
}

// evaluateFunctionBody runs the body in a nested frame carrying this. Arrow
// functions take this from their defining scope instead.
func (i *Interpreter) evaluateFunctionBody(fn *runtime.Closure, this runtime.Value) (runtime.Value, error) {
	body := i.pushScope("functionBody")
	if !fn.IsArrow {
		if this == nil {
			this = runtime.Undefined
		}
		body.This, body.HasThis = this, true
	}
	var (
		result runtime.Value
		err    error
	)
	switch b := fn.Body.(type) {
	case *ast.BlockStatement:
		result, err = i.evaluateWith(b, func(i *Interpreter, _ ast.Node) (runtime.Value, error) {
			return i.evaluateStatements(b.Body, body)
		})
	case ast.Expression:
		result, err = i.evaluateTail(b)
	default:
		err = i.fail(diag.NewUnsupportedNode(fn.Node))
	}
	if err != nil {
		return nil, err
	}
	i.ctx.PopEnvironment()
	return result, nil
}

// callNative forces the arguments and runs a native. A panic or a foreign
// error becomes an ExceptionError; errors already in the taxonomy pass
// through. Either way the environment stack is first unwound.
func (i *Interpreter) callNative(node ast.Node, fn *runtime.NativeFunctionValue, args []runtime.Value, this runtime.Value) (val runtime.Value, err error) {
	if !fn.VarArgs && len(args) != fn.Arity {
		return nil, i.fail(diag.NewInvalidNumberOfArguments(node, strconv.Itoa(fn.Arity), len(args)))
	}
	forced := make([]runtime.Value, len(args))
	for idx, arg := range args {
		v, err := i.forceIt(arg)
		if err != nil {
			return nil, err
		}
		forced[idx] = v
	}
	defer func() {
		if r := recover(); r != nil {
			val, err = nil, i.fail(diag.NewExceptionError(node, fmt.Errorf("%v", r)))
		}
	}()
	call := &runtime.NativeCall{Context: i.ctx, This: this, Node: node, Invoker: i}
	val, err = fn.Impl(call, forced)
	if err == nil {
		if val == nil {
			val = runtime.Undefined
		}
		return val, nil
	}
	if errors.Is(err, ErrStopped) {
		return nil, err
	}
	i.ctx.TruncateEnvironments()
	var rt *diag.RuntimeError
	if errors.As(err, &rt) {
		if i.recorded(rt) {
			return nil, rt
		}
		return nil, i.fail(rt)
	}
	return nil, i.fail(diag.NewExceptionError(node, err))
}
