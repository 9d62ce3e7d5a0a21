// Package diag holds the runtime error taxonomy raised while evaluating a
// program. Every error carries the node it was raised at.
package diag

import (
	"errors"
	"fmt"

	"xslang/interpreter-go/pkg/ast"
	"xslang/interpreter-go/pkg/runtime"
	"xslang/interpreter-go/pkg/stringify"
)

// ErrorKind names one member of the taxonomy.
type ErrorKind string

const (
	VariableRedeclaration     ErrorKind = "VariableRedeclaration"
	UndefinedVariable         ErrorKind = "UndefinedVariable"
	ConstAssignment           ErrorKind = "ConstAssignment"
	ConstNotInitialize        ErrorKind = "ConstNotInitialize"
	InvalidNumberOfArguments  ErrorKind = "InvalidNumberOfArguments"
	CallingNonFunctionValue   ErrorKind = "CallingNonFunctionValue"
	GetPropertyError          ErrorKind = "GetPropertyError"
	GetInheritedPropertyError ErrorKind = "GetInheritedPropertyError"
	SetPropertyError          ErrorKind = "SetPropertyError"
	ExceptionError            ErrorKind = "ExceptionError"
	TypeError                 ErrorKind = "TypeError"
)

// RuntimeError is a user-visible evaluation failure.
type RuntimeError struct {
	Kind    ErrorKind
	Node    ast.Node
	Span    ast.Span
	Message string
	// Cause is set for ExceptionError and holds the wrapped host error.
	Cause error
}

func (e *RuntimeError) Error() string {
	if e.Span.IsZero() {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("Line %d: %s", e.Span.Start.Line, e.Message)
}

func (e *RuntimeError) Unwrap() error {
	return e.Cause
}

func newError(kind ErrorKind, node ast.Node, format string, args ...any) *RuntimeError {
	err := &RuntimeError{Kind: kind, Node: node, Message: fmt.Sprintf(format, args...)}
	if node != nil {
		err.Span = node.Span()
	}
	return err
}

// IsKind reports whether err is a RuntimeError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var rt *RuntimeError
	return errors.As(err, &rt) && rt.Kind == kind
}

// KindOf returns the taxonomy kind of err, or "" for foreign errors.
func KindOf(err error) ErrorKind {
	var rt *RuntimeError
	if errors.As(err, &rt) {
		return rt.Kind
	}
	return ""
}

func NewVariableRedeclaration(node ast.Node, name string, writable bool) *RuntimeError {
	if writable {
		return newError(VariableRedeclaration, node, "Redeclaring name %s.", name)
	}
	return newError(VariableRedeclaration, node, "Redeclaring constant name %s.", name)
}

func NewUndefinedVariable(node ast.Node, name string) *RuntimeError {
	return newError(UndefinedVariable, node, "Name %s not declared.", name)
}

func NewConstAssignment(node ast.Node, name string) *RuntimeError {
	return newError(ConstAssignment, node, "Cannot assign new value to constant %s.", name)
}

func NewConstNotInitialize(node ast.Node, name string) *RuntimeError {
	return newError(ConstNotInitialize, node, "Missing initializer in const declaration of %s.", name)
}

func NewInvalidNumberOfArguments(node ast.Node, expected string, got int) *RuntimeError {
	return newError(InvalidNumberOfArguments, node, "Expected %s arguments, but got %d.", expected, got)
}

func NewCallingNonFunctionValue(node ast.Node, callee runtime.Value) *RuntimeError {
	return newError(CallingNonFunctionValue, node, "Calling non-function value %s.", stringify.Value(callee))
}

func NewGetPropertyError(node ast.Node, obj runtime.Value, prop string) *RuntimeError {
	return newError(GetPropertyError, node, "Cannot read property %s of %s.", prop, stringify.Value(obj))
}

func NewGetInheritedPropertyError(node ast.Node, obj runtime.Value, prop string) *RuntimeError {
	return newError(GetInheritedPropertyError, node, "Cannot read inherited property %s of %s.", prop, stringify.Value(obj))
}

func NewSetPropertyError(node ast.Node, obj runtime.Value, prop string) *RuntimeError {
	return newError(SetPropertyError, node, "Cannot assign property %s of %s.", prop, stringify.Value(obj))
}

// NewExceptionError wraps a host failure raised inside a native function.
func NewExceptionError(node ast.Node, cause error) *RuntimeError {
	msg := "unknown error"
	if cause != nil {
		msg = cause.Error()
	}
	err := newError(ExceptionError, node, "Error: %s", msg)
	err.Cause = cause
	return err
}

// NewTypeError reports an operand of the wrong type. side names the operand
// position, e.g. "left hand side of operation".
func NewTypeError(node ast.Node, expected, side string, got runtime.Value) *RuntimeError {
	if side == "" {
		return newError(TypeError, node, "Expected %s, got %s.", expected, typeName(got))
	}
	return newError(TypeError, node, "Expected %s in %s, got %s.", expected, side, typeName(got))
}

// NewUnsupportedOperator reports an operator the language does not define.
func NewUnsupportedOperator(node ast.Node, op string) *RuntimeError {
	return newError(TypeError, node, "Unsupported operator %s.", op)
}

// NewUnsupportedNode reports syntax the evaluator has no rule for.
func NewUnsupportedNode(node ast.Node) *RuntimeError {
	return newError(TypeError, node, "Unsupported syntax %s.", node.NodeType())
}

func typeName(v runtime.Value) string {
	if v == nil {
		return "undefined"
	}
	switch v.(type) {
	case *runtime.Closure, *runtime.NativeFunctionValue:
		return "function"
	}
	return v.Kind().String()
}
