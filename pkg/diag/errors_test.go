package diag

import (
	"errors"
	"fmt"
	"testing"

	"xslang/interpreter-go/pkg/ast"
	"xslang/interpreter-go/pkg/runtime"
)

func TestErrorMessages(t *testing.T) {
	node := ast.ID("x")
	cases := []struct {
		err  *RuntimeError
		kind ErrorKind
		want string
	}{
		{NewVariableRedeclaration(node, "x", true), VariableRedeclaration, "VariableRedeclaration: Redeclaring name x."},
		{NewVariableRedeclaration(node, "x", false), VariableRedeclaration, "VariableRedeclaration: Redeclaring constant name x."},
		{NewUndefinedVariable(node, "x"), UndefinedVariable, "UndefinedVariable: Name x not declared."},
		{NewConstAssignment(node, "x"), ConstAssignment, "ConstAssignment: Cannot assign new value to constant x."},
		{NewInvalidNumberOfArguments(node, "2", 3), InvalidNumberOfArguments, "InvalidNumberOfArguments: Expected 2 arguments, but got 3."},
		{NewCallingNonFunctionValue(node, runtime.Number(1)), CallingNonFunctionValue, "CallingNonFunctionValue: Calling non-function value 1."},
		{NewGetPropertyError(node, runtime.String("s"), "foo"), GetPropertyError, `GetPropertyError: Cannot read property foo of "s".`},
		{NewTypeError(node, "number", "left hand side of operation", runtime.Bool(true)), TypeError, "TypeError: Expected number in left hand side of operation, got boolean."},
	}
	for _, tc := range cases {
		if tc.err.Kind != tc.kind {
			t.Fatalf("kind = %s, want %s", tc.err.Kind, tc.kind)
		}
		if got := tc.err.Error(); got != tc.want {
			t.Fatalf("Error() = %q, want %q", got, tc.want)
		}
	}
}

func TestErrorUsesLineWhenLocated(t *testing.T) {
	node := ast.ID("y")
	ast.SetSpan(node, ast.Span{Start: ast.Position{Line: 4, Column: 2}, End: ast.Position{Line: 4, Column: 3}})
	err := NewUndefinedVariable(node, "y")
	if got := err.Error(); got != "Line 4: Name y not declared." {
		t.Fatalf("Error() = %q", got)
	}
}

func TestExceptionErrorUnwraps(t *testing.T) {
	cause := errors.New("boom")
	err := fmt.Errorf("call: %w", NewExceptionError(nil, cause))
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause to be reachable")
	}
	if !IsKind(err, ExceptionError) {
		t.Fatalf("expected ExceptionError, got %q", KindOf(err))
	}
	if KindOf(cause) != "" {
		t.Fatalf("foreign error should have no kind")
	}
}
