package interpreter

import (
	"io"
	"testing"

	"xslang/interpreter-go/pkg/ast"
	"xslang/interpreter-go/pkg/diag"
	"xslang/interpreter-go/pkg/runtime"
	"xslang/interpreter-go/pkg/stdlib"
)

// newTestInterpreter returns an interpreter with every native group
// installed and display output discarded.
func newTestInterpreter(t testing.TB, opts Options) *Interpreter {
	t.Helper()
	ctx := NewContext()
	if err := stdlib.Install(ctx.GlobalEnvironment(), io.Discard, nil); err != nil {
		t.Fatalf("installing natives: %v", err)
	}
	return New(ctx, opts)
}

// counterNative binds a zero-argument native that counts its calls.
func counterNative(interp *Interpreter, name string) *int {
	count := new(int)
	interp.Context().GlobalEnvironment().Bind(name, &runtime.NativeFunctionValue{
		Name: name,
		Impl: func(*runtime.NativeCall, []runtime.Value) (runtime.Value, error) {
			*count++
			return runtime.Number(float64(*count)), nil
		},
	}, false)
	return count
}

func mustRun(t testing.TB, interp *Interpreter, program *ast.Program) runtime.Value {
	t.Helper()
	val, err := interp.Run(program, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return val
}

func expectKind(t testing.TB, interp *Interpreter, program *ast.Program, kind diag.ErrorKind) error {
	t.Helper()
	_, err := interp.Run(program, nil)
	if err == nil {
		t.Fatalf("expected %s, got no error", kind)
	}
	if !diag.IsKind(err, kind) {
		t.Fatalf("expected %s, got %v", kind, err)
	}
	return err
}

func num(v float64) runtime.Value {
	return runtime.Number(v)
}
