package interpreter

import (
	"xslang/interpreter-go/pkg/ast"
	"xslang/interpreter-go/pkg/runtime"
)

// Statement completions. They travel as ordinary return values and are
// consumed by the nearest loop, function application or program.

type breakValue struct{}

func (breakValue) Kind() runtime.Kind { return runtime.KindControl }

type continueValue struct{}

func (continueValue) Kind() runtime.Kind { return runtime.KindControl }

type returnValue struct {
	value runtime.Value
}

func (returnValue) Kind() runtime.Kind { return runtime.KindControl }

// tailCallValue is a call in return position, to be applied by the
// enclosing trampoline in place of the current frame.
type tailCallValue struct {
	callee runtime.Value
	args   []runtime.Value
	site   *ast.CallExpression
	this   runtime.Value
}

func (tailCallValue) Kind() runtime.Kind { return runtime.KindControl }

func isSignal(v runtime.Value) bool {
	switch v.(type) {
	case breakValue, continueValue, returnValue, tailCallValue:
		return true
	default:
		return false
	}
}
