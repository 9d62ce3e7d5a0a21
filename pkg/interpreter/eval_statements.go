package interpreter

import (
	"xslang/interpreter-go/pkg/ast"
	"xslang/interpreter-go/pkg/diag"
	"xslang/interpreter-go/pkg/rttc"
	"xslang/interpreter-go/pkg/runtime"
)

var evaluators map[ast.NodeType]evaluator

func init() {
	evaluators = map[ast.NodeType]evaluator{
		ast.NodeProgram:                 evaluateProgram,
		ast.NodeBlockStatement:          evaluateBlockStatement,
		ast.NodeExpressionStatement:     evaluateExpressionStatement,
		ast.NodeVariableDeclaration:     evaluateVariableDeclaration,
		ast.NodeFunctionDeclaration:     evaluateFunctionDeclaration,
		ast.NodeReturnStatement:         evaluateReturnStatement,
		ast.NodeIfStatement:             evaluateIfStatement,
		ast.NodeWhileStatement:          evaluateWhileStatement,
		ast.NodeForStatement:            evaluateForStatement,
		ast.NodeBreakStatement:          evaluateBreakStatement,
		ast.NodeContinueStatement:       evaluateContinueStatement,
		ast.NodeDebuggerStatement:       evaluateDebuggerStatement,
		ast.NodeEmptyStatement:          evaluateEmptyStatement,
		ast.NodeImportDeclaration:       evaluateEmptyStatement,
		ast.NodeIdentifier:              evaluateIdentifier,
		ast.NodeLiteral:                 evaluateLiteral,
		ast.NodeTemplateLiteral:         evaluateTemplateLiteral,
		ast.NodeThisExpression:          evaluateThisExpression,
		ast.NodeArrayExpression:         evaluateArrayExpression,
		ast.NodeObjectExpression:        evaluateObjectExpression,
		ast.NodeFunctionExpression:      evaluateFunctionExpression,
		ast.NodeArrowFunctionExpression: evaluateArrowFunctionExpression,
		ast.NodeUnaryExpression:         evaluateUnaryExpression,
		ast.NodeBinaryExpression:        evaluateBinaryExpression,
		ast.NodeLogicalExpression:       evaluateLogicalExpression,
		ast.NodeConditionalExpression:   evaluateConditionalExpression,
		ast.NodeAssignmentExpression:    evaluateAssignmentExpression,
		ast.NodeUpdateExpression:        evaluateUpdateExpression,
		ast.NodeMemberExpression:        evaluateMemberExpression,
		ast.NodeCallExpression:          evaluateCallExpression,
		ast.NodeNewExpression:           evaluateNewExpression,
	}
}

// evaluateProgram layers a new protected program frame over the current
// environment, so a REPL keeps earlier declarations visible.
func evaluateProgram(i *Interpreter, node ast.Node) (runtime.Value, error) {
	n := node.(*ast.Program)
	i.ctx.NumberOfOuterEnvironments++
	env := i.pushScope("programEnvironment")
	result, err := i.evaluateStatements(n.Body, env)
	if err != nil {
		return nil, err
	}
	switch r := result.(type) {
	case returnValue:
		result = r.value
	case tailCallValue:
		result, err = i.apply(r.site, r.callee, r.args, r.site, r.this)
		if err != nil {
			return nil, err
		}
	case breakValue, continueValue:
		result = runtime.Undefined
	}
	return i.forceIt(result)
}

func evaluateBlockStatement(i *Interpreter, node ast.Node) (runtime.Value, error) {
	n := node.(*ast.BlockStatement)
	env := i.pushScope("blockEnvironment")
	result, err := i.evaluateStatements(n.Body, env)
	if err != nil {
		return nil, err
	}
	i.ctx.PopEnvironment()
	return result, nil
}

// evaluateStatements hoists body into env, then runs it until the first
// control signal. The result is the value of the last statement run.
func (i *Interpreter) evaluateStatements(body []ast.Statement, env *runtime.Environment) (runtime.Value, error) {
	if err := i.hoist(body, env); err != nil {
		return nil, err
	}
	var result runtime.Value = runtime.Undefined
	for _, stmt := range body {
		val, err := i.evaluate(stmt)
		if err != nil {
			return nil, err
		}
		result = val
		if isSignal(val) {
			break
		}
	}
	return result, nil
}

func evaluateExpressionStatement(i *Interpreter, node ast.Node) (runtime.Value, error) {
	n := node.(*ast.ExpressionStatement)
	return i.evaluate(n.Expression)
}

func evaluateVariableDeclaration(i *Interpreter, node ast.Node) (runtime.Value, error) {
	n := node.(*ast.VariableDeclaration)
	writable := n.Kind != ast.DeclarationConst
	for _, d := range n.Declarations {
		var value runtime.Value = runtime.Undefined
		if d.Init == nil {
			if !writable {
				return nil, i.fail(diag.NewConstNotInitialize(d, d.ID.Name))
			}
		} else {
			v, err := i.actualValue(d.Init)
			if err != nil {
				return nil, err
			}
			value = v
		}
		if err := i.define(d, d.ID.Name, value, writable); err != nil {
			return nil, err
		}
	}
	return runtime.Undefined, nil
}

func evaluateFunctionDeclaration(i *Interpreter, node ast.Node) (runtime.Value, error) {
	n := node.(*ast.FunctionDeclaration)
	closure := runtime.NewClosure(n, i.ctx.CurrentEnvironment(), i.ctx)
	if n.ID == nil {
		return closure, nil
	}
	if err := i.define(n, n.ID.Name, closure, false); err != nil {
		return nil, err
	}
	return runtime.Undefined, nil
}

func evaluateReturnStatement(i *Interpreter, node ast.Node) (runtime.Value, error) {
	n := node.(*ast.ReturnStatement)
	if n.Argument == nil {
		return returnValue{value: runtime.Undefined}, nil
	}
	return i.evaluateTail(n.Argument)
}

// evaluateTail evaluates an expression in return position. Calls become
// tail-call signals; conditional and logical expressions pass the position
// on to the branch they select.
func (i *Interpreter) evaluateTail(expr ast.Expression) (runtime.Value, error) {
	switch e := expr.(type) {
	case *ast.CallExpression:
		return i.evaluateWith(e, func(i *Interpreter, _ ast.Node) (runtime.Value, error) {
			callee, args, this, err := i.prepareCall(e)
			if err != nil {
				return nil, err
			}
			return tailCallValue{callee: callee, args: args, site: e, this: this}, nil
		})
	case *ast.ConditionalExpression:
		return i.evaluateWith(e, func(i *Interpreter, _ ast.Node) (runtime.Value, error) {
			branch, err := i.selectBranch(e, e.Test, e.Consequent, e.Alternate)
			if err != nil {
				return nil, err
			}
			return i.evaluateTail(branch)
		})
	case *ast.LogicalExpression:
		return i.evaluateWith(e, func(i *Interpreter, _ ast.Node) (runtime.Value, error) {
			left, decided, err := i.logicalLeft(e)
			if err != nil {
				return nil, err
			}
			if decided {
				return returnValue{value: left}, nil
			}
			return i.evaluateTail(e.Right)
		})
	}
	val, err := i.evaluate(expr)
	if err != nil {
		return nil, err
	}
	return returnValue{value: val}, nil
}

func evaluateIfStatement(i *Interpreter, node ast.Node) (runtime.Value, error) {
	n := node.(*ast.IfStatement)
	test, err := i.actualValue(n.Test)
	if err != nil {
		return nil, err
	}
	if err := rttc.CheckIfStatement(n, test); err != nil {
		return nil, i.fail(err)
	}
	if test.(runtime.BoolValue).Val {
		return i.evaluate(n.Consequent)
	}
	if n.Alternate != nil {
		return i.evaluate(n.Alternate)
	}
	return runtime.Undefined, nil
}

// loopTest evaluates a loop condition; a missing test is true.
func (i *Interpreter) loopTest(node ast.Node, test ast.Expression) (bool, error) {
	if test == nil {
		return true, nil
	}
	val, err := i.actualValue(test)
	if err != nil {
		return false, err
	}
	if err := rttc.CheckIfStatement(node, val); err != nil {
		return false, i.fail(err)
	}
	return val.(runtime.BoolValue).Val, nil
}

func evaluateWhileStatement(i *Interpreter, node ast.Node) (runtime.Value, error) {
	n := node.(*ast.WhileStatement)
	var result runtime.Value = runtime.Undefined
	for {
		ok, err := i.loopTest(n, n.Test)
		if err != nil {
			return nil, err
		}
		if !ok {
			return result, nil
		}
		val, err := i.evaluate(n.Body)
		if err != nil {
			return nil, err
		}
		switch val.(type) {
		case breakValue:
			return runtime.Undefined, nil
		case continueValue:
			continue
		case returnValue, tailCallValue:
			return val, nil
		}
		result = val
	}
}

// evaluateForStatement runs each iteration in a copy of the loop-header
// scope, so closures created in the body keep that iteration's bindings.
// Writes made by the body are copied back before the update runs.
func evaluateForStatement(i *Interpreter, node ast.Node) (runtime.Value, error) {
	n := node.(*ast.ForStatement)
	header := i.pushScope("forLoop")
	if n.Init != nil {
		if decl, ok := n.Init.(*ast.VariableDeclaration); ok {
			if err := i.hoistDeclaration(decl, header); err != nil {
				return nil, err
			}
		}
		if _, err := i.evaluate(n.Init); err != nil {
			return nil, err
		}
	}
	var result runtime.Value = runtime.Undefined
loop:
	for {
		ok, err := i.loopTest(n, n.Test)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		iteration := header.Extend("forIteration")
		iteration.CopyBindingsFrom(header)
		i.ctx.PushEnvironment(iteration)
		val, err := i.evaluate(n.Body)
		if err != nil {
			return nil, err
		}
		i.ctx.PopEnvironment()
		iteration.WriteBackTo(header)
		switch val.(type) {
		case breakValue:
			result = runtime.Undefined
			break loop
		case returnValue, tailCallValue:
			i.ctx.PopEnvironment()
			return val, nil
		case continueValue:
		default:
			result = val
		}
		if n.Update != nil {
			if _, err := i.actualValue(n.Update); err != nil {
				return nil, err
			}
		}
	}
	i.ctx.PopEnvironment()
	return result, nil
}

func evaluateBreakStatement(*Interpreter, ast.Node) (runtime.Value, error) {
	return breakValue{}, nil
}

func evaluateContinueStatement(*Interpreter, ast.Node) (runtime.Value, error) {
	return continueValue{}, nil
}

func evaluateDebuggerStatement(i *Interpreter, node ast.Node) (runtime.Value, error) {
	if err := i.checkpoint(PhaseDebugger, node); err != nil {
		return nil, err
	}
	return runtime.Undefined, nil
}

func evaluateEmptyStatement(*Interpreter, ast.Node) (runtime.Value, error) {
	return runtime.Undefined, nil
}
