package interpreter

import (
	"strings"

	"xslang/interpreter-go/pkg/ast"
	"xslang/interpreter-go/pkg/diag"
	"xslang/interpreter-go/pkg/operators"
	"xslang/interpreter-go/pkg/rttc"
	"xslang/interpreter-go/pkg/runtime"
)

func evaluateIdentifier(i *Interpreter, node ast.Node) (runtime.Value, error) {
	n := node.(*ast.Identifier)
	return i.read(n, n.Name)
}

func literalValue(n *ast.Literal) runtime.Value {
	switch v := n.Value.(type) {
	case nil:
		return runtime.NullValue{}
	case float64:
		return runtime.Number(v)
	case int:
		return runtime.Number(float64(v))
	case int64:
		return runtime.Number(float64(v))
	case string:
		return runtime.String(v)
	case bool:
		return runtime.Bool(v)
	default:
		return runtime.Undefined
	}
}

func evaluateLiteral(_ *Interpreter, node ast.Node) (runtime.Value, error) {
	return literalValue(node.(*ast.Literal)), nil
}

func evaluateTemplateLiteral(_ *Interpreter, node ast.Node) (runtime.Value, error) {
	n := node.(*ast.TemplateLiteral)
	return runtime.String(strings.Join(n.Quasis, "")), nil
}

func evaluateThisExpression(i *Interpreter, _ ast.Node) (runtime.Value, error) {
	if this, ok := i.ctx.CurrentEnvironment().ThisValue(); ok && this != nil {
		return this, nil
	}
	return runtime.Undefined, nil
}

func evaluateArrayExpression(i *Interpreter, node ast.Node) (runtime.Value, error) {
	n := node.(*ast.ArrayExpression)
	elements := make([]runtime.Value, 0, len(n.Elements))
	for _, el := range n.Elements {
		if el == nil {
			elements = append(elements, runtime.Undefined)
			continue
		}
		v, err := i.actualValue(el)
		if err != nil {
			return nil, err
		}
		elements = append(elements, v)
	}
	return runtime.NewArray(elements), nil
}

func evaluateObjectExpression(i *Interpreter, node ast.Node) (runtime.Value, error) {
	n := node.(*ast.ObjectExpression)
	obj := runtime.NewObject(nil)
	for _, prop := range n.Properties {
		key, err := i.propertyKey(prop.Key, prop.Computed)
		if err != nil {
			return nil, err
		}
		val, err := i.actualValue(prop.Value)
		if err != nil {
			return nil, err
		}
		name := propertyName(key)
		if name == protoKey && !prop.Computed {
			if err := i.setParent(prop, obj, val); err != nil {
				return nil, err
			}
			continue
		}
		obj.Set(name, val)
	}
	return obj, nil
}

func evaluateFunctionExpression(i *Interpreter, node ast.Node) (runtime.Value, error) {
	n := node.(*ast.FunctionExpression)
	env := i.ctx.CurrentEnvironment()
	if n.ID == nil {
		return runtime.NewClosure(n, env, i.ctx), nil
	}
	// A named function expression sees its own name.
	scope := env.Extend("namedFunctionExpression")
	closure := runtime.NewClosure(n, scope, i.ctx)
	scope.Bind(n.ID.Name, closure, false)
	return closure, nil
}

func evaluateArrowFunctionExpression(i *Interpreter, node ast.Node) (runtime.Value, error) {
	return runtime.NewClosure(node, i.ctx.CurrentEnvironment(), i.ctx), nil
}

func evaluateUnaryExpression(i *Interpreter, node ast.Node) (runtime.Value, error) {
	n := node.(*ast.UnaryExpression)
	v, err := i.actualValue(n.Argument)
	if err != nil {
		return nil, err
	}
	if err := rttc.CheckUnary(n, n.Operator, v); err != nil {
		return nil, i.fail(err)
	}
	return operators.EvaluateUnary(n.Operator, v), nil
}

func evaluateBinaryExpression(i *Interpreter, node ast.Node) (runtime.Value, error) {
	n := node.(*ast.BinaryExpression)
	left, err := i.actualValue(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.actualValue(n.Right)
	if err != nil {
		return nil, err
	}
	return i.binary(n, n.Operator, left, right)
}

func (i *Interpreter) binary(node ast.Node, op string, left, right runtime.Value) (runtime.Value, error) {
	if err := rttc.CheckBinary(node, op, left, right); err != nil {
		return nil, i.fail(err)
	}
	return operators.EvaluateBinary(op, left, right), nil
}

// logicalLeft evaluates the left operand of && or || and reports whether it
// alone decides the result.
func (i *Interpreter) logicalLeft(n *ast.LogicalExpression) (runtime.Value, bool, error) {
	left, err := i.actualValue(n.Left)
	if err != nil {
		return nil, false, err
	}
	if err := rttc.CheckLogical(n, left); err != nil {
		return nil, false, i.fail(err)
	}
	return left, operators.ShortCircuits(n.Operator, left), nil
}

func evaluateLogicalExpression(i *Interpreter, node ast.Node) (runtime.Value, error) {
	n := node.(*ast.LogicalExpression)
	left, decided, err := i.logicalLeft(n)
	if err != nil {
		return nil, err
	}
	if decided {
		return left, nil
	}
	return i.actualValue(n.Right)
}

// selectBranch evaluates and checks test, returning the branch it selects.
func (i *Interpreter) selectBranch(node ast.Node, test, consequent, alternate ast.Expression) (ast.Expression, error) {
	val, err := i.actualValue(test)
	if err != nil {
		return nil, err
	}
	if err := rttc.CheckIfStatement(node, val); err != nil {
		return nil, i.fail(err)
	}
	if val.(runtime.BoolValue).Val {
		return consequent, nil
	}
	return alternate, nil
}

func evaluateConditionalExpression(i *Interpreter, node ast.Node) (runtime.Value, error) {
	n := node.(*ast.ConditionalExpression)
	branch, err := i.selectBranch(n, n.Test, n.Consequent, n.Alternate)
	if err != nil {
		return nil, err
	}
	return i.actualValue(branch)
}

func evaluateAssignmentExpression(i *Interpreter, node ast.Node) (runtime.Value, error) {
	n := node.(*ast.AssignmentExpression)
	binOp, compound := operators.CompoundOperator(n.Operator)
	switch target := n.Left.(type) {
	case *ast.Identifier:
		var current runtime.Value
		if compound {
			v, err := i.read(target, target.Name)
			if err != nil {
				return nil, err
			}
			if current, err = i.forceIt(v); err != nil {
				return nil, err
			}
		}
		value, err := i.actualValue(n.Right)
		if err != nil {
			return nil, err
		}
		if compound {
			if value, err = i.binary(n, binOp, current, value); err != nil {
				return nil, err
			}
		}
		if err := i.write(n, target.Name, value); err != nil {
			return nil, err
		}
		return value, nil
	case *ast.MemberExpression:
		obj, key, err := i.memberTarget(target)
		if err != nil {
			return nil, err
		}
		var current runtime.Value
		if compound {
			if current, err = i.getMember(target, obj, key); err != nil {
				return nil, err
			}
		}
		value, err := i.actualValue(n.Right)
		if err != nil {
			return nil, err
		}
		if compound {
			if value, err = i.binary(n, binOp, current, value); err != nil {
				return nil, err
			}
		}
		if err := i.setMember(n, obj, key, value); err != nil {
			return nil, err
		}
		return value, nil
	default:
		return nil, i.fail(diag.NewUnsupportedNode(n.Left))
	}
}

func evaluateUpdateExpression(i *Interpreter, node ast.Node) (runtime.Value, error) {
	n := node.(*ast.UpdateExpression)
	op := "+"
	if n.Operator == "--" {
		op = "-"
	}
	one := runtime.Number(1)
	switch target := n.Argument.(type) {
	case *ast.Identifier:
		old, err := i.read(target, target.Name)
		if err != nil {
			return nil, err
		}
		if old, err = i.forceIt(old); err != nil {
			return nil, err
		}
		updated, err := i.binary(n, op, old, one)
		if err != nil {
			return nil, err
		}
		if err := i.write(n, target.Name, updated); err != nil {
			return nil, err
		}
		return updateResult(n, old, updated), nil
	case *ast.MemberExpression:
		obj, key, err := i.memberTarget(target)
		if err != nil {
			return nil, err
		}
		old, err := i.getMember(target, obj, key)
		if err != nil {
			return nil, err
		}
		updated, err := i.binary(n, op, old, one)
		if err != nil {
			return nil, err
		}
		if err := i.setMember(n, obj, key, updated); err != nil {
			return nil, err
		}
		return updateResult(n, old, updated), nil
	default:
		return nil, i.fail(diag.NewUnsupportedNode(n.Argument))
	}
}

func updateResult(n *ast.UpdateExpression, old, updated runtime.Value) runtime.Value {
	if n.Prefix {
		return updated
	}
	return old
}

func evaluateMemberExpression(i *Interpreter, node ast.Node) (runtime.Value, error) {
	n := node.(*ast.MemberExpression)
	obj, key, err := i.memberTarget(n)
	if err != nil {
		return nil, err
	}
	return i.getMember(n, obj, key)
}

func evaluateCallExpression(i *Interpreter, node ast.Node) (runtime.Value, error) {
	n := node.(*ast.CallExpression)
	callee, args, this, err := i.prepareCall(n)
	if err != nil {
		return nil, err
	}
	return i.apply(n, callee, args, n, this)
}

// prepareCall resolves the callee, the implicit this (the object when the
// callee is a member access) and the arguments.
func (i *Interpreter) prepareCall(n *ast.CallExpression) (runtime.Value, []runtime.Value, runtime.Value, error) {
	var (
		callee runtime.Value
		this   runtime.Value = runtime.Undefined
		err    error
	)
	if member, ok := n.Callee.(*ast.MemberExpression); ok {
		callee, err = i.evaluateWith(member, func(i *Interpreter, _ ast.Node) (runtime.Value, error) {
			obj, key, err := i.memberTarget(member)
			if err != nil {
				return nil, err
			}
			this = obj
			return i.getMember(member, obj, key)
		})
	} else {
		callee, err = i.evaluate(n.Callee)
	}
	if err != nil {
		return nil, nil, nil, err
	}
	if callee, err = i.forceIt(callee); err != nil {
		return nil, nil, nil, err
	}
	args, err := i.arguments(n.Arguments)
	if err != nil {
		return nil, nil, nil, err
	}
	return callee, args, this, nil
}

func (i *Interpreter) arguments(exprs []ast.Expression) ([]runtime.Value, error) {
	args := make([]runtime.Value, 0, len(exprs))
	for _, expr := range exprs {
		v, err := i.argument(expr)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
	return args, nil
}

// evaluateNewExpression builds an object whose parent is the constructor's
// prototype and runs the constructor with it as this. A constructor that
// returns an object replaces the new one.
func evaluateNewExpression(i *Interpreter, node ast.Node) (runtime.Value, error) {
	n := node.(*ast.NewExpression)
	callee, err := i.actualValue(n.Callee)
	if err != nil {
		return nil, err
	}
	closure, ok := callee.(*runtime.Closure)
	if !ok || closure.IsArrow {
		return nil, i.fail(diag.NewCallingNonFunctionValue(n, callee))
	}
	args, err := i.arguments(n.Arguments)
	if err != nil {
		return nil, err
	}
	obj := runtime.NewObject(closure.Prototype())
	result, err := i.apply(n, closure, args, nil, obj)
	if err != nil {
		return nil, err
	}
	if result, err = i.forceIt(result); err != nil {
		return nil, err
	}
	if made, ok := result.(*runtime.ObjectValue); ok {
		return made, nil
	}
	return obj, nil
}
