// Package operators implements the unary, binary and conditional operators on
// operands already validated by rttc.
package operators

import (
	"math"

	"xslang/interpreter-go/pkg/runtime"
)

// EvaluateUnary applies op to v.
func EvaluateUnary(op string, v runtime.Value) runtime.Value {
	switch op {
	case "!":
		return runtime.Bool(!v.(runtime.BoolValue).Val)
	case "-":
		return runtime.Number(-v.(runtime.NumberValue).Val)
	case "+":
		return v
	case "typeof":
		return runtime.String(TypeOf(v))
	case "void":
		return runtime.Undefined
	}
	return runtime.Undefined
}

// EvaluateBinary applies op to left and right.
func EvaluateBinary(op string, left, right runtime.Value) runtime.Value {
	switch op {
	case "===", "==":
		return runtime.Bool(StrictEqual(left, right))
	case "!==", "!=":
		return runtime.Bool(!StrictEqual(left, right))
	}
	if ls, ok := left.(runtime.StringValue); ok {
		rs := right.(runtime.StringValue)
		switch op {
		case "+":
			return runtime.String(ls.Val + rs.Val)
		case "<":
			return runtime.Bool(ls.Val < rs.Val)
		case "<=":
			return runtime.Bool(ls.Val <= rs.Val)
		case ">":
			return runtime.Bool(ls.Val > rs.Val)
		case ">=":
			return runtime.Bool(ls.Val >= rs.Val)
		}
		return runtime.Undefined
	}
	l := left.(runtime.NumberValue).Val
	r := right.(runtime.NumberValue).Val
	switch op {
	case "+":
		return runtime.Number(l + r)
	case "-":
		return runtime.Number(l - r)
	case "*":
		return runtime.Number(l * r)
	case "/":
		return runtime.Number(l / r)
	case "%":
		return runtime.Number(math.Mod(l, r))
	case "<":
		return runtime.Bool(l < r)
	case "<=":
		return runtime.Bool(l <= r)
	case ">":
		return runtime.Bool(l > r)
	case ">=":
		return runtime.Bool(l >= r)
	}
	return runtime.Undefined
}

// ShortCircuits reports whether a logical operator is decided by its left
// operand alone.
func ShortCircuits(op string, left runtime.Value) bool {
	b := left.(runtime.BoolValue).Val
	if op == "&&" {
		return !b
	}
	return b
}

// CompoundOperator maps an assignment operator such as "+=" to its binary
// operator. It reports false for plain "=".
func CompoundOperator(op string) (string, bool) {
	if len(op) < 2 || op == "=" {
		return "", false
	}
	return op[:len(op)-1], true
}

// StrictEqual compares scalars by value and everything else by identity.
func StrictEqual(a, b runtime.Value) bool {
	switch av := a.(type) {
	case runtime.NumberValue:
		bv, ok := b.(runtime.NumberValue)
		return ok && av.Val == bv.Val
	case runtime.StringValue:
		bv, ok := b.(runtime.StringValue)
		return ok && av.Val == bv.Val
	case runtime.BoolValue:
		bv, ok := b.(runtime.BoolValue)
		return ok && av.Val == bv.Val
	case runtime.UndefinedValue:
		_, ok := b.(runtime.UndefinedValue)
		return ok
	case runtime.NullValue:
		_, ok := b.(runtime.NullValue)
		return ok
	}
	return a == b
}

// TypeOf returns the typeof name of v.
func TypeOf(v runtime.Value) string {
	switch v.(type) {
	case runtime.NumberValue:
		return "number"
	case runtime.StringValue:
		return "string"
	case runtime.BoolValue:
		return "boolean"
	case runtime.UndefinedValue, nil:
		return "undefined"
	case *runtime.Closure, *runtime.NativeFunctionValue:
		return "function"
	}
	return "object"
}
