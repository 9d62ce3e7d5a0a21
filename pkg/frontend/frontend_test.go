package frontend

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"xslang/interpreter-go/pkg/ast"
)

const counterESTree = `{
  "type": "Program",
  "loc": {"start": {"line": 1, "column": 0}, "end": {"line": 3, "column": 10}},
  "body": [
    {
      "type": "VariableDeclaration",
      "kind": "let",
      "loc": {"start": {"line": 1, "column": 0}, "end": {"line": 1, "column": 10}},
      "declarations": [
        {"type": "VariableDeclarator",
         "id": {"type": "Identifier", "name": "n"},
         "init": {"type": "Literal", "value": 1, "raw": "1"}}
      ]
    },
    {
      "type": "FunctionDeclaration",
      "id": {"type": "Identifier", "name": "add"},
      "params": [
        {"type": "Identifier", "name": "a"},
        {"type": "AssignmentPattern",
         "left": {"type": "Identifier", "name": "b"},
         "right": {"type": "Literal", "value": 2, "raw": "2"}}
      ],
      "body": {"type": "BlockStatement", "body": [
        {"type": "ReturnStatement", "argument": {
          "type": "BinaryExpression", "operator": "+",
          "left": {"type": "Identifier", "name": "a"},
          "right": {"type": "Identifier", "name": "b"}}}
      ]}
    },
    {
      "type": "ExpressionStatement",
      "loc": {"start": {"line": 3, "column": 0}, "end": {"line": 3, "column": 10}},
      "expression": {
        "type": "CallExpression",
        "callee": {"type": "Identifier", "name": "add"},
        "arguments": [{"type": "ArrowFunctionExpression", "expression": true,
          "params": [], "body": {"type": "Identifier", "name": "n"}}]
      }
    }
  ]
}`

func TestDecodeESTree(t *testing.T) {
	program, err := DecodeESTree(strings.NewReader(counterESTree))
	require.NoError(t, err)
	require.Len(t, program.Body, 3)

	decl, ok := program.Body[0].(*ast.VariableDeclaration)
	require.True(t, ok)
	require.Equal(t, ast.DeclarationLet, decl.Kind)
	require.Equal(t, "n", decl.Declarations[0].ID.Name)
	require.Equal(t, 1, decl.Span().Start.Line)

	fn, ok := program.Body[1].(*ast.FunctionDeclaration)
	require.True(t, ok)
	require.Len(t, fn.Params, 2)
	def, ok := fn.Params[1].(*ast.AssignmentPattern)
	require.True(t, ok)
	require.Equal(t, "b", def.Left.Name)

	stmt := program.Body[2].(*ast.ExpressionStatement)
	require.Equal(t, 3, stmt.Span().Start.Line)
	call := stmt.Expression.(*ast.CallExpression)
	arrow, ok := call.Arguments[0].(*ast.ArrowFunctionExpression)
	require.True(t, ok)
	require.True(t, arrow.IsExpression)
}

func TestDecodeESTreeRejectsUnsupportedNodes(t *testing.T) {
	cases := map[string]string{
		"unknown node":  `{"type": "Program", "body": [{"type": "ThrowStatement", "argument": null}]}`,
		"regex literal": `{"type": "Program", "body": [{"type": "ExpressionStatement", "expression": {"type": "Literal", "value": {}, "regex": {"pattern": "a", "flags": ""}}}]}`,
		"not a program": `{"type": "Identifier", "name": "x"}`,
		"template subs": `{"type": "Program", "body": [{"type": "ExpressionStatement", "expression": {"type": "TemplateLiteral", "quasis": [], "expressions": [{"type": "Identifier", "name": "x"}]}}]}`,
		"getter":        `{"type": "Program", "body": [{"type": "ExpressionStatement", "expression": {"type": "ObjectExpression", "properties": [{"type": "Property", "kind": "get", "key": {"type": "Identifier", "name": "x"}, "value": {"type": "Identifier", "name": "y"}}]}}]}`,
		"bad json":      `{"type": `,
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeESTree(strings.NewReader(src))
			require.Error(t, err)
		})
	}
}

func TestDecodeESTreeUnknownNodeNamed(t *testing.T) {
	_, err := DecodeESTree(strings.NewReader(`{"type": "Program", "body": [{"type": "ThrowStatement"}]}`))
	require.ErrorContains(t, err, `"ThrowStatement"`)
}

func TestParseSource(t *testing.T) {
	src := `var total = 0;
function add(a, b) { return a + b; }
for (var i = 0; i < 3; i++) {
  total += add(i, 1);
}
var obj = {name: "x", "quoted": [1, 2.5]};
obj.name === "x" && !false ? total : obj["quoted"];
`
	program, err := ParseSource("sample.js", src)
	require.NoError(t, err)
	require.Len(t, program.Body, 5)

	decl := program.Body[0].(*ast.VariableDeclaration)
	require.Equal(t, ast.DeclarationVar, decl.Kind)
	lit := decl.Declarations[0].Init.(*ast.Literal)
	require.Equal(t, float64(0), lit.Value)

	fn := program.Body[1].(*ast.FunctionDeclaration)
	require.Equal(t, "add", fn.ID.Name)
	require.Equal(t, 2, fn.Span().Start.Line)

	loop := program.Body[2].(*ast.ForStatement)
	init, ok := loop.Init.(*ast.VariableDeclaration)
	require.True(t, ok)
	require.Equal(t, "i", init.Declarations[0].ID.Name)
	update := loop.Update.(*ast.UpdateExpression)
	require.Equal(t, "++", update.Operator)
	require.False(t, update.Prefix)
	body := loop.Body.(*ast.BlockStatement)
	assign := body.Body[0].(*ast.ExpressionStatement).Expression.(*ast.AssignmentExpression)
	require.Equal(t, "+=", assign.Operator)

	cond := program.Body[4].(*ast.ExpressionStatement).Expression.(*ast.ConditionalExpression)
	logical, ok := cond.Test.(*ast.LogicalExpression)
	require.True(t, ok)
	require.Equal(t, "&&", logical.Operator)
	member := cond.Alternate.(*ast.MemberExpression)
	require.True(t, member.Computed)
}

func TestParseSourceErrors(t *testing.T) {
	_, err := ParseSource("broken.js", "function (")
	require.ErrorContains(t, err, "parse broken.js")

	_, err = ParseSource("throw.js", "throw 1;")
	require.ErrorContains(t, err, "unsupported statement")

	_, err = ParseSource("label.js", "outer: while (true) { break outer; }")
	require.Error(t, err)
}
