package frontend

import (
	"fmt"

	"github.com/robertkrimen/otto/ast"
	"github.com/robertkrimen/otto/file"
	"github.com/robertkrimen/otto/parser"
	"github.com/robertkrimen/otto/token"

	xast "xslang/interpreter-go/pkg/ast"
)

// ParseSource parses ES5 source text. The ES5 grammar has no let, const,
// arrow functions or default parameters; programs using them are loaded from
// ESTree JSON instead.
func ParseSource(name, src string) (*xast.Program, error) {
	program, err := parser.ParseFile(nil, name, src, 0)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	c := &converter{file: program.File}
	body, err := c.statements(program.Body)
	if err != nil {
		return nil, fmt.Errorf("convert %s: %w", name, err)
	}
	out := xast.NewProgram(body)
	if len(program.Body) > 0 {
		xast.SetSpan(out, c.span(program.Body[0].Idx0(), program.Body[len(program.Body)-1].Idx1()))
	}
	return out, nil
}

type converter struct {
	file *file.File
}

func (c *converter) span(from, to file.Idx) xast.Span {
	if c.file == nil {
		return xast.Span{}
	}
	var span xast.Span
	if p := c.file.Position(from); p != nil {
		span.Start = xast.Position{Line: p.Line, Column: p.Column}
	}
	if p := c.file.Position(to); p != nil {
		span.End = xast.Position{Line: p.Line, Column: p.Column}
	}
	return span
}

func (c *converter) locate(node xast.Node, src ast.Node) {
	xast.SetSpan(node, c.span(src.Idx0(), src.Idx1()))
}

func (c *converter) statements(list []ast.Statement) ([]xast.Statement, error) {
	out := make([]xast.Statement, 0, len(list))
	for _, stmt := range list {
		converted, err := c.statement(stmt)
		if err != nil {
			return nil, err
		}
		out = append(out, converted)
	}
	return out, nil
}

func (c *converter) statement(stmt ast.Statement) (xast.Statement, error) {
	var out xast.Statement
	switch s := stmt.(type) {
	case *ast.BlockStatement:
		block, err := c.block(s)
		if err != nil {
			return nil, err
		}
		return block, nil
	case *ast.ExpressionStatement:
		expr, err := c.expression(s.Expression)
		if err != nil {
			return nil, err
		}
		out = xast.NewExpressionStatement(expr)
	case *ast.VariableStatement:
		decl, err := c.variables(s.List)
		if err != nil {
			return nil, err
		}
		out = decl
	case *ast.FunctionStatement:
		fn := s.Function
		params, body, err := c.function(fn)
		if err != nil {
			return nil, err
		}
		id := xast.NewIdentifier(fn.Name.Name)
		c.locate(id, fn.Name)
		out = xast.NewFunctionDeclaration(id, params, body)
	case *ast.ReturnStatement:
		var arg xast.Expression
		if s.Argument != nil {
			converted, err := c.expression(s.Argument)
			if err != nil {
				return nil, err
			}
			arg = converted
		}
		out = xast.NewReturnStatement(arg)
	case *ast.IfStatement:
		test, err := c.expression(s.Test)
		if err != nil {
			return nil, err
		}
		consequent, err := c.statement(s.Consequent)
		if err != nil {
			return nil, err
		}
		var alternate xast.Statement
		if s.Alternate != nil {
			if alternate, err = c.statement(s.Alternate); err != nil {
				return nil, err
			}
		}
		out = xast.NewIfStatement(test, consequent, alternate)
	case *ast.WhileStatement:
		test, err := c.expression(s.Test)
		if err != nil {
			return nil, err
		}
		body, err := c.statement(s.Body)
		if err != nil {
			return nil, err
		}
		out = xast.NewWhileStatement(test, body)
	case *ast.ForStatement:
		loop, err := c.forStatement(s)
		if err != nil {
			return nil, err
		}
		out = loop
	case *ast.BranchStatement:
		if s.Label != nil {
			return nil, fmt.Errorf("labelled %s is not supported", s.Token)
		}
		switch s.Token {
		case token.BREAK:
			out = xast.NewBreakStatement()
		case token.CONTINUE:
			out = xast.NewContinueStatement()
		default:
			return nil, fmt.Errorf("unsupported branch %s", s.Token)
		}
	case *ast.DebuggerStatement:
		out = xast.NewDebuggerStatement()
	case *ast.EmptyStatement:
		out = xast.NewEmptyStatement()
	default:
		return nil, fmt.Errorf("unsupported statement %T", stmt)
	}
	c.locate(out, stmt)
	return out, nil
}

func (c *converter) block(s *ast.BlockStatement) (*xast.BlockStatement, error) {
	body, err := c.statements(s.List)
	if err != nil {
		return nil, err
	}
	block := xast.NewBlockStatement(body)
	c.locate(block, s)
	return block, nil
}

func (c *converter) variables(list []ast.Expression) (*xast.VariableDeclaration, error) {
	decls := make([]*xast.VariableDeclarator, 0, len(list))
	for _, item := range list {
		v, ok := item.(*ast.VariableExpression)
		if !ok {
			return nil, fmt.Errorf("invalid declarator %T", item)
		}
		var init xast.Expression
		if v.Initializer != nil {
			converted, err := c.expression(v.Initializer)
			if err != nil {
				return nil, err
			}
			init = converted
		}
		id := xast.NewIdentifier(v.Name)
		xast.SetSpan(id, c.span(v.Idx, v.Idx+file.Idx(len(v.Name))))
		decl := xast.NewVariableDeclarator(id, init)
		c.locate(decl, v)
		decls = append(decls, decl)
	}
	return xast.NewVariableDeclaration(xast.DeclarationVar, decls), nil
}

func (c *converter) forStatement(s *ast.ForStatement) (*xast.ForStatement, error) {
	var init xast.Node
	if seq, ok := s.Initializer.(*ast.SequenceExpression); ok && len(seq.Sequence) > 0 {
		if _, isVar := seq.Sequence[0].(*ast.VariableExpression); isVar {
			decl, err := c.variables(seq.Sequence)
			if err != nil {
				return nil, err
			}
			init = decl
		} else if len(seq.Sequence) == 1 {
			expr, err := c.expression(seq.Sequence[0])
			if err != nil {
				return nil, err
			}
			init = expr
		} else {
			return nil, fmt.Errorf("sequence expressions are not supported")
		}
	}
	var test, update xast.Expression
	var err error
	if s.Test != nil {
		if test, err = c.expression(s.Test); err != nil {
			return nil, err
		}
	}
	if s.Update != nil {
		if update, err = c.expression(s.Update); err != nil {
			return nil, err
		}
	}
	body, err := c.statement(s.Body)
	if err != nil {
		return nil, err
	}
	return xast.NewForStatement(init, test, update, body), nil
}

func (c *converter) function(fn *ast.FunctionLiteral) ([]xast.Pattern, *xast.BlockStatement, error) {
	var params []xast.Pattern
	if fn.ParameterList != nil {
		for _, p := range fn.ParameterList.List {
			id := xast.NewIdentifier(p.Name)
			c.locate(id, p)
			params = append(params, id)
		}
	}
	body, ok := fn.Body.(*ast.BlockStatement)
	if !ok {
		return nil, nil, fmt.Errorf("function body must be a block, got %T", fn.Body)
	}
	block, err := c.block(body)
	if err != nil {
		return nil, nil, err
	}
	return params, block, nil
}

func (c *converter) expressions(list []ast.Expression) ([]xast.Expression, error) {
	out := make([]xast.Expression, 0, len(list))
	for _, item := range list {
		expr, err := c.expression(item)
		if err != nil {
			return nil, err
		}
		out = append(out, expr)
	}
	return out, nil
}

func (c *converter) expression(expr ast.Expression) (xast.Expression, error) {
	var out xast.Expression
	switch e := expr.(type) {
	case *ast.Identifier:
		out = xast.NewIdentifier(e.Name)
	case *ast.NumberLiteral:
		switch v := e.Value.(type) {
		case int64:
			out = xast.NewLiteral(float64(v), e.Literal)
		case float64:
			out = xast.NewLiteral(v, e.Literal)
		default:
			return nil, fmt.Errorf("unsupported number literal %s", e.Literal)
		}
	case *ast.StringLiteral:
		out = xast.NewLiteral(e.Value, e.Literal)
	case *ast.BooleanLiteral:
		out = xast.NewLiteral(e.Value, e.Literal)
	case *ast.NullLiteral:
		out = xast.NewLiteral(nil, e.Literal)
	case *ast.ThisExpression:
		out = xast.NewThisExpression()
	case *ast.ArrayLiteral:
		elements, err := c.expressions(e.Value)
		if err != nil {
			return nil, err
		}
		out = xast.NewArrayExpression(elements)
	case *ast.ObjectLiteral:
		props := make([]*xast.Property, 0, len(e.Value))
		for _, p := range e.Value {
			if p.Kind != "value" {
				return nil, fmt.Errorf("%s accessors are not supported", p.Kind)
			}
			value, err := c.expression(p.Value)
			if err != nil {
				return nil, err
			}
			props = append(props, xast.NewProperty(xast.NewLiteral(p.Key, ""), value, false))
		}
		out = xast.NewObjectExpression(props)
	case *ast.FunctionLiteral:
		params, body, err := c.function(e)
		if err != nil {
			return nil, err
		}
		var id *xast.Identifier
		if e.Name != nil {
			id = xast.NewIdentifier(e.Name.Name)
			c.locate(id, e.Name)
		}
		out = xast.NewFunctionExpression(id, params, body)
	case *ast.UnaryExpression:
		arg, err := c.expression(e.Operand)
		if err != nil {
			return nil, err
		}
		switch e.Operator {
		case token.INCREMENT, token.DECREMENT:
			out = xast.NewUpdateExpression(e.Operator.String(), !e.Postfix, arg)
		default:
			out = xast.NewUnaryExpression(e.Operator.String(), arg)
		}
	case *ast.BinaryExpression:
		left, err := c.expression(e.Left)
		if err != nil {
			return nil, err
		}
		right, err := c.expression(e.Right)
		if err != nil {
			return nil, err
		}
		switch e.Operator {
		case token.LOGICAL_AND, token.LOGICAL_OR:
			out = xast.NewLogicalExpression(e.Operator.String(), left, right)
		default:
			out = xast.NewBinaryExpression(e.Operator.String(), left, right)
		}
	case *ast.ConditionalExpression:
		test, err := c.expression(e.Test)
		if err != nil {
			return nil, err
		}
		consequent, err := c.expression(e.Consequent)
		if err != nil {
			return nil, err
		}
		alternate, err := c.expression(e.Alternate)
		if err != nil {
			return nil, err
		}
		out = xast.NewConditionalExpression(test, consequent, alternate)
	case *ast.AssignExpression:
		left, err := c.expression(e.Left)
		if err != nil {
			return nil, err
		}
		right, err := c.expression(e.Right)
		if err != nil {
			return nil, err
		}
		op := "="
		if e.Operator != token.ASSIGN {
			op = e.Operator.String() + "="
		}
		out = xast.NewAssignmentExpression(op, left, right)
	case *ast.DotExpression:
		object, err := c.expression(e.Left)
		if err != nil {
			return nil, err
		}
		property := xast.NewIdentifier(e.Identifier.Name)
		c.locate(property, e.Identifier)
		out = xast.NewMemberExpression(object, property, false)
	case *ast.BracketExpression:
		object, err := c.expression(e.Left)
		if err != nil {
			return nil, err
		}
		property, err := c.expression(e.Member)
		if err != nil {
			return nil, err
		}
		out = xast.NewMemberExpression(object, property, true)
	case *ast.CallExpression:
		callee, err := c.expression(e.Callee)
		if err != nil {
			return nil, err
		}
		args, err := c.expressions(e.ArgumentList)
		if err != nil {
			return nil, err
		}
		out = xast.NewCallExpression(callee, args)
	case *ast.NewExpression:
		callee, err := c.expression(e.Callee)
		if err != nil {
			return nil, err
		}
		args, err := c.expressions(e.ArgumentList)
		if err != nil {
			return nil, err
		}
		out = xast.NewNewExpression(callee, args)
	default:
		return nil, fmt.Errorf("unsupported expression %T", expr)
	}
	c.locate(out, expr)
	return out, nil
}
