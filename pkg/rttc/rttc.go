// Package rttc holds the runtime type checks run before every unary, binary,
// conditional and member operation. A non-nil result aborts the operation
// before it has any side effect.
package rttc

import (
	"math"

	"xslang/interpreter-go/pkg/ast"
	"xslang/interpreter-go/pkg/diag"
	"xslang/interpreter-go/pkg/runtime"
)

const (
	sideLeft    = "left hand side of operation"
	sideRight   = "right hand side of operation"
	sideTest    = "condition of if statement or loop"
	sideTernary = "condition of conditional expression"
)

func isNumber(v runtime.Value) bool {
	_, ok := v.(runtime.NumberValue)
	return ok
}

func isString(v runtime.Value) bool {
	_, ok := v.(runtime.StringValue)
	return ok
}

func isBool(v runtime.Value) bool {
	_, ok := v.(runtime.BoolValue)
	return ok
}

// CheckUnary validates the operand of a unary operator.
func CheckUnary(node ast.Node, op string, v runtime.Value) error {
	switch op {
	case "!":
		if !isBool(v) {
			return diag.NewTypeError(node, "boolean", "", v)
		}
	case "-", "+":
		if !isNumber(v) {
			return diag.NewTypeError(node, "number", "", v)
		}
	case "typeof", "void":
	default:
		return diag.NewUnsupportedOperator(node, op)
	}
	return nil
}

// CheckBinary validates both operands of a binary operator.
func CheckBinary(node ast.Node, op string, left, right runtime.Value) error {
	switch op {
	case "+", "<", "<=", ">", ">=":
		switch {
		case isNumber(left):
			if !isNumber(right) {
				return diag.NewTypeError(node, "number", sideRight, right)
			}
		case isString(left):
			if !isString(right) {
				return diag.NewTypeError(node, "string", sideRight, right)
			}
		default:
			return diag.NewTypeError(node, "string or number", sideLeft, left)
		}
	case "-", "*", "/", "%":
		if !isNumber(left) {
			return diag.NewTypeError(node, "number", sideLeft, left)
		}
		if !isNumber(right) {
			return diag.NewTypeError(node, "number", sideRight, right)
		}
	case "===", "!==", "==", "!=":
	default:
		return diag.NewUnsupportedOperator(node, op)
	}
	return nil
}

// CheckIfStatement validates a branch or loop condition.
func CheckIfStatement(node ast.Node, test runtime.Value) error {
	if isBool(test) {
		return nil
	}
	if _, ok := node.(*ast.ConditionalExpression); ok {
		return diag.NewTypeError(node, "boolean", sideTernary, test)
	}
	return diag.NewTypeError(node, "boolean", sideTest, test)
}

// CheckLogical validates the left operand of && and ||.
func CheckLogical(node ast.Node, left runtime.Value) error {
	if !isBool(left) {
		return diag.NewTypeError(node, "boolean", sideLeft, left)
	}
	return nil
}

// CheckMemberAccess validates the target and key of a member read or write.
func CheckMemberAccess(node ast.Node, obj, prop runtime.Value) error {
	switch obj.(type) {
	case *runtime.ObjectValue, *runtime.Closure, *runtime.NativeFunctionValue:
		if !isString(prop) && !isNumber(prop) {
			return diag.NewTypeError(node, "string", "object access", prop)
		}
	case *runtime.ArrayValue, runtime.StringValue:
		if isString(prop) {
			return nil
		}
		n, ok := prop.(runtime.NumberValue)
		if !ok || n.Val < 0 || n.Val != math.Trunc(n.Val) {
			return diag.NewTypeError(node, "non-negative integer", "index access", prop)
		}
	default:
		return diag.NewTypeError(node, "object or array", "member access", obj)
	}
	return nil
}
