// Package frontend turns program text into pkg/ast trees. Two front ends are
// provided: a decoder for ESTree JSON and an ES5 source parser.
package frontend

import (
	"encoding/json"
	"fmt"
	"io"

	"xslang/interpreter-go/pkg/ast"
)

// DecodeESTree reads an ESTree Program (as emitted by acorn or esprima with
// locations enabled) and converts it.
func DecodeESTree(r io.Reader) (*ast.Program, error) {
	var raw map[string]any
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode estree: %w", err)
	}
	node, err := decodeNode(raw)
	if err != nil {
		return nil, err
	}
	program, ok := node.(*ast.Program)
	if !ok {
		return nil, fmt.Errorf("estree root must be a Program, got %s", node.NodeType())
	}
	return program, nil
}

func decodeNode(node map[string]any) (ast.Node, error) {
	typ, _ := node["type"].(string)
	decoded, err := decodeStatementNodes(node, typ)
	if err != nil {
		return nil, err
	}
	if decoded == nil {
		var handled bool
		decoded, handled, err = decodeExpressionNodes(node, typ)
		if err != nil {
			return nil, err
		}
		if !handled {
			return nil, fmt.Errorf("unsupported estree node %q", typ)
		}
	}
	ast.SetSpan(decoded, decodeSpan(node))
	return decoded, nil
}

func decodeStatementNodes(node map[string]any, typ string) (ast.Node, error) {
	switch typ {
	case "Program":
		body, err := decodeStatements(node["body"])
		if err != nil {
			return nil, err
		}
		return ast.NewProgram(body), nil
	case "BlockStatement":
		return decodeBlock(node)
	case "ExpressionStatement":
		expr, err := decodeExpression(node, "expression")
		if err != nil {
			return nil, err
		}
		return ast.NewExpressionStatement(expr), nil
	case "VariableDeclaration":
		kind, _ := node["kind"].(string)
		switch ast.DeclarationKind(kind) {
		case ast.DeclarationVar, ast.DeclarationLet, ast.DeclarationConst:
		default:
			return nil, fmt.Errorf("unsupported declaration kind %q", kind)
		}
		declsVal, _ := node["declarations"].([]any)
		decls := make([]*ast.VariableDeclarator, 0, len(declsVal))
		for _, raw := range declsVal {
			child, ok := raw.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("invalid declarator %T", raw)
			}
			id, err := decodeIdentifier(child, "id")
			if err != nil {
				return nil, err
			}
			init, err := decodeOptionalExpression(child, "init")
			if err != nil {
				return nil, err
			}
			decl := ast.NewVariableDeclarator(id, init)
			ast.SetSpan(decl, decodeSpan(child))
			decls = append(decls, decl)
		}
		return ast.NewVariableDeclaration(ast.DeclarationKind(kind), decls), nil
	case "FunctionDeclaration":
		id, err := decodeIdentifier(node, "id")
		if err != nil {
			return nil, err
		}
		params, body, err := decodeFunctionParts(node)
		if err != nil {
			return nil, err
		}
		return ast.NewFunctionDeclaration(id, params, body), nil
	case "ReturnStatement":
		arg, err := decodeOptionalExpression(node, "argument")
		if err != nil {
			return nil, err
		}
		return ast.NewReturnStatement(arg), nil
	case "IfStatement":
		test, err := decodeExpression(node, "test")
		if err != nil {
			return nil, err
		}
		consequent, err := decodeStatement(node["consequent"])
		if err != nil {
			return nil, err
		}
		var alternate ast.Statement
		if node["alternate"] != nil {
			if alternate, err = decodeStatement(node["alternate"]); err != nil {
				return nil, err
			}
		}
		return ast.NewIfStatement(test, consequent, alternate), nil
	case "WhileStatement":
		test, err := decodeExpression(node, "test")
		if err != nil {
			return nil, err
		}
		body, err := decodeStatement(node["body"])
		if err != nil {
			return nil, err
		}
		return ast.NewWhileStatement(test, body), nil
	case "ForStatement":
		var init ast.Node
		if raw, ok := node["init"].(map[string]any); ok {
			decoded, err := decodeNode(raw)
			if err != nil {
				return nil, err
			}
			switch decoded.(type) {
			case *ast.VariableDeclaration, ast.Expression:
				init = decoded
			default:
				return nil, fmt.Errorf("invalid for initializer %s", decoded.NodeType())
			}
		}
		test, err := decodeOptionalExpression(node, "test")
		if err != nil {
			return nil, err
		}
		update, err := decodeOptionalExpression(node, "update")
		if err != nil {
			return nil, err
		}
		body, err := decodeStatement(node["body"])
		if err != nil {
			return nil, err
		}
		return ast.NewForStatement(init, test, update, body), nil
	case "BreakStatement":
		if node["label"] != nil {
			return nil, fmt.Errorf("labelled break is not supported")
		}
		return ast.NewBreakStatement(), nil
	case "ContinueStatement":
		if node["label"] != nil {
			return nil, fmt.Errorf("labelled continue is not supported")
		}
		return ast.NewContinueStatement(), nil
	case "DebuggerStatement":
		return ast.NewDebuggerStatement(), nil
	case "EmptyStatement":
		return ast.NewEmptyStatement(), nil
	case "ImportDeclaration":
		src, _ := node["source"].(map[string]any)
		value, _ := src["value"].(string)
		return ast.NewImportDeclaration(value), nil
	}
	return nil, nil
}

func decodeBlock(node map[string]any) (*ast.BlockStatement, error) {
	body, err := decodeStatements(node["body"])
	if err != nil {
		return nil, err
	}
	block := ast.NewBlockStatement(body)
	ast.SetSpan(block, decodeSpan(node))
	return block, nil
}

func decodeStatements(raw any) ([]ast.Statement, error) {
	list, _ := raw.([]any)
	stmts := make([]ast.Statement, 0, len(list))
	for _, item := range list {
		stmt, err := decodeStatement(item)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

func decodeStatement(raw any) (ast.Statement, error) {
	child, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected statement, got %T", raw)
	}
	decoded, err := decodeNode(child)
	if err != nil {
		return nil, err
	}
	stmt, ok := decoded.(ast.Statement)
	if !ok {
		return nil, fmt.Errorf("invalid statement %s", decoded.NodeType())
	}
	return stmt, nil
}

func decodeFunctionParts(node map[string]any) ([]ast.Pattern, *ast.BlockStatement, error) {
	if generator, _ := node["generator"].(bool); generator {
		return nil, nil, fmt.Errorf("generator functions are not supported")
	}
	if async, _ := node["async"].(bool); async {
		return nil, nil, fmt.Errorf("async functions are not supported")
	}
	params, err := decodeParams(node["params"])
	if err != nil {
		return nil, nil, err
	}
	bodyNode, ok := node["body"].(map[string]any)
	if !ok {
		return nil, nil, fmt.Errorf("function missing body")
	}
	body, err := decodeBlock(bodyNode)
	if err != nil {
		return nil, nil, err
	}
	return params, body, nil
}

func decodeParams(raw any) ([]ast.Pattern, error) {
	list, _ := raw.([]any)
	params := make([]ast.Pattern, 0, len(list))
	for _, item := range list {
		child, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("invalid parameter %T", item)
		}
		decoded, err := decodeNode(child)
		if err != nil {
			return nil, err
		}
		pattern, ok := decoded.(ast.Pattern)
		if !ok {
			return nil, fmt.Errorf("unsupported parameter %s", decoded.NodeType())
		}
		params = append(params, pattern)
	}
	return params, nil
}

func decodeSpan(node map[string]any) ast.Span {
	loc, ok := node["loc"].(map[string]any)
	if !ok {
		return ast.Span{}
	}
	return ast.Span{Start: decodePosition(loc["start"]), End: decodePosition(loc["end"])}
}

func decodePosition(raw any) ast.Position {
	pos, _ := raw.(map[string]any)
	line, _ := pos["line"].(float64)
	column, _ := pos["column"].(float64)
	return ast.Position{Line: int(line), Column: int(column)}
}
