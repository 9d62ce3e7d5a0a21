package frontend

import (
	"fmt"

	"xslang/interpreter-go/pkg/ast"
)

func decodeExpressionNodes(node map[string]any, typ string) (ast.Node, bool, error) {
	switch typ {
	case "Identifier":
		name, _ := node["name"].(string)
		return ast.NewIdentifier(name), true, nil
	case "Literal":
		if _, ok := node["regex"]; ok {
			return nil, true, fmt.Errorf("regular expression literals are not supported")
		}
		if _, ok := node["bigint"]; ok {
			return nil, true, fmt.Errorf("bigint literals are not supported")
		}
		raw, _ := node["raw"].(string)
		switch v := node["value"].(type) {
		case nil, float64, string, bool:
			return ast.NewLiteral(v, raw), true, nil
		default:
			return nil, true, fmt.Errorf("unsupported literal value %T", v)
		}
	case "TemplateLiteral":
		if exprs, _ := node["expressions"].([]any); len(exprs) > 0 {
			return nil, true, fmt.Errorf("template literal substitutions are not supported")
		}
		quasisVal, _ := node["quasis"].([]any)
		quasis := make([]string, 0, len(quasisVal))
		for _, raw := range quasisVal {
			quasi, _ := raw.(map[string]any)
			value, _ := quasi["value"].(map[string]any)
			cooked, _ := value["cooked"].(string)
			quasis = append(quasis, cooked)
		}
		return ast.NewTemplateLiteral(quasis), true, nil
	case "ThisExpression":
		return ast.NewThisExpression(), true, nil
	case "ArrayExpression":
		elementsVal, _ := node["elements"].([]any)
		elements := make([]ast.Expression, 0, len(elementsVal))
		for _, raw := range elementsVal {
			if raw == nil {
				return nil, true, fmt.Errorf("array holes are not supported")
			}
			expr, err := expressionOf(raw)
			if err != nil {
				return nil, true, err
			}
			elements = append(elements, expr)
		}
		return ast.NewArrayExpression(elements), true, nil
	case "ObjectExpression":
		propsVal, _ := node["properties"].([]any)
		props := make([]*ast.Property, 0, len(propsVal))
		for _, raw := range propsVal {
			child, ok := raw.(map[string]any)
			if !ok {
				return nil, true, fmt.Errorf("invalid property %T", raw)
			}
			prop, err := decodeProperty(child)
			if err != nil {
				return nil, true, err
			}
			props = append(props, prop)
		}
		return ast.NewObjectExpression(props), true, nil
	case "FunctionExpression":
		var id *ast.Identifier
		if node["id"] != nil {
			decoded, err := decodeIdentifier(node, "id")
			if err != nil {
				return nil, true, err
			}
			id = decoded
		}
		params, body, err := decodeFunctionParts(node)
		if err != nil {
			return nil, true, err
		}
		return ast.NewFunctionExpression(id, params, body), true, nil
	case "ArrowFunctionExpression":
		if async, _ := node["async"].(bool); async {
			return nil, true, fmt.Errorf("async functions are not supported")
		}
		params, err := decodeParams(node["params"])
		if err != nil {
			return nil, true, err
		}
		isExpression, _ := node["expression"].(bool)
		bodyNode, ok := node["body"].(map[string]any)
		if !ok {
			return nil, true, fmt.Errorf("arrow function missing body")
		}
		var body ast.Node
		if isExpression {
			body, err = expressionOf(bodyNode)
		} else {
			body, err = decodeBlock(bodyNode)
		}
		if err != nil {
			return nil, true, err
		}
		return ast.NewArrowFunctionExpression(params, body, isExpression), true, nil
	case "AssignmentPattern":
		left, err := decodeIdentifier(node, "left")
		if err != nil {
			return nil, true, err
		}
		right, err := decodeExpression(node, "right")
		if err != nil {
			return nil, true, err
		}
		return ast.NewAssignmentPattern(left, right), true, nil
	case "UnaryExpression":
		op, _ := node["operator"].(string)
		arg, err := decodeExpression(node, "argument")
		if err != nil {
			return nil, true, err
		}
		return ast.NewUnaryExpression(op, arg), true, nil
	case "BinaryExpression", "LogicalExpression":
		op, _ := node["operator"].(string)
		left, err := decodeExpression(node, "left")
		if err != nil {
			return nil, true, err
		}
		right, err := decodeExpression(node, "right")
		if err != nil {
			return nil, true, err
		}
		if typ == "LogicalExpression" {
			return ast.NewLogicalExpression(op, left, right), true, nil
		}
		return ast.NewBinaryExpression(op, left, right), true, nil
	case "ConditionalExpression":
		test, err := decodeExpression(node, "test")
		if err != nil {
			return nil, true, err
		}
		consequent, err := decodeExpression(node, "consequent")
		if err != nil {
			return nil, true, err
		}
		alternate, err := decodeExpression(node, "alternate")
		if err != nil {
			return nil, true, err
		}
		return ast.NewConditionalExpression(test, consequent, alternate), true, nil
	case "AssignmentExpression":
		op, _ := node["operator"].(string)
		left, err := decodeExpression(node, "left")
		if err != nil {
			return nil, true, err
		}
		if err := checkAssignable(left); err != nil {
			return nil, true, err
		}
		right, err := decodeExpression(node, "right")
		if err != nil {
			return nil, true, err
		}
		return ast.NewAssignmentExpression(op, left, right), true, nil
	case "UpdateExpression":
		op, _ := node["operator"].(string)
		prefix, _ := node["prefix"].(bool)
		arg, err := decodeExpression(node, "argument")
		if err != nil {
			return nil, true, err
		}
		if err := checkAssignable(arg); err != nil {
			return nil, true, err
		}
		return ast.NewUpdateExpression(op, prefix, arg), true, nil
	case "MemberExpression":
		if optional, _ := node["optional"].(bool); optional {
			return nil, true, fmt.Errorf("optional chaining is not supported")
		}
		object, err := decodeExpression(node, "object")
		if err != nil {
			return nil, true, err
		}
		property, err := decodeExpression(node, "property")
		if err != nil {
			return nil, true, err
		}
		computed, _ := node["computed"].(bool)
		return ast.NewMemberExpression(object, property, computed), true, nil
	case "CallExpression", "NewExpression":
		callee, err := decodeExpression(node, "callee")
		if err != nil {
			return nil, true, err
		}
		argsVal, _ := node["arguments"].([]any)
		args := make([]ast.Expression, 0, len(argsVal))
		for _, raw := range argsVal {
			arg, err := expressionOf(raw)
			if err != nil {
				return nil, true, err
			}
			args = append(args, arg)
		}
		if typ == "NewExpression" {
			return ast.NewNewExpression(callee, args), true, nil
		}
		return ast.NewCallExpression(callee, args), true, nil
	}
	return nil, false, nil
}

func decodeProperty(node map[string]any) (*ast.Property, error) {
	if kind, _ := node["kind"].(string); kind != "" && kind != "init" {
		return nil, fmt.Errorf("%s accessors are not supported", kind)
	}
	key, err := decodeExpression(node, "key")
	if err != nil {
		return nil, err
	}
	value, err := decodeExpression(node, "value")
	if err != nil {
		return nil, err
	}
	computed, _ := node["computed"].(bool)
	prop := ast.NewProperty(key, value, computed)
	ast.SetSpan(prop, decodeSpan(node))
	return prop, nil
}

func checkAssignable(expr ast.Expression) error {
	switch expr.(type) {
	case *ast.Identifier, *ast.MemberExpression:
		return nil
	default:
		return fmt.Errorf("invalid assignment target %s", expr.NodeType())
	}
}

func expressionOf(raw any) (ast.Expression, error) {
	child, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected expression, got %T", raw)
	}
	decoded, err := decodeNode(child)
	if err != nil {
		return nil, err
	}
	expr, ok := decoded.(ast.Expression)
	if !ok {
		return nil, fmt.Errorf("invalid expression %s", decoded.NodeType())
	}
	return expr, nil
}

func decodeExpression(node map[string]any, key string) (ast.Expression, error) {
	raw, ok := node[key]
	if !ok || raw == nil {
		return nil, fmt.Errorf("%v missing %s", node["type"], key)
	}
	return expressionOf(raw)
}

func decodeOptionalExpression(node map[string]any, key string) (ast.Expression, error) {
	if node[key] == nil {
		return nil, nil
	}
	return expressionOf(node[key])
}

func decodeIdentifier(node map[string]any, key string) (*ast.Identifier, error) {
	expr, err := decodeExpression(node, key)
	if err != nil {
		return nil, err
	}
	id, ok := expr.(*ast.Identifier)
	if !ok {
		return nil, fmt.Errorf("expected identifier for %s, got %s", key, expr.NodeType())
	}
	return id, nil
}
