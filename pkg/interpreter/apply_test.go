package interpreter

import (
	"testing"

	"xslang/interpreter-go/pkg/ast"
	"xslang/interpreter-go/pkg/runtime"
)

// sumTo builds `function loop(n, acc) { ... }` with the recursive call in
// return position, then calls loop(n, 0).
func sumTo(n float64, viaIf bool) *ast.Program {
	done := ast.Bin("===", ast.ID("n"), ast.Num(0))
	recur := ast.CallName("loop", ast.Bin("-", ast.ID("n"), ast.Num(1)), ast.Bin("+", ast.ID("acc"), ast.ID("n")))
	var body []ast.Statement
	if viaIf {
		body = []ast.Statement{
			ast.If(done, ast.Block(ast.Ret(ast.ID("acc"))), nil),
			ast.Ret(recur),
		}
	} else {
		body = []ast.Statement{ast.Ret(ast.Cond(done, ast.ID("acc"), recur))}
	}
	return ast.Prog(
		ast.Fn("loop", ast.Params("n", "acc"), body...),
		ast.Expr(ast.CallName("loop", ast.Num(n), ast.Num(0))),
	)
}

func TestTailCallsRunInBoundedFrames(t *testing.T) {
	if testing.Short() {
		t.Skip("long-running tail recursion")
	}
	const n = 1_000_000
	interp := newTestInterpreter(t, Options{})
	maxDepth := 0
	val, err := interp.Run(sumTo(n, false), func(cp Checkpoint) bool {
		if cp.Environments > maxDepth {
			maxDepth = cp.Environments
		}
		return true
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if val != num(n*(n+1)/2) {
		t.Fatalf("expected %d, got %#v", n*(n+1)/2, val)
	}
	if maxDepth > 8 {
		t.Fatalf("environment stack grew to %d frames", maxDepth)
	}
}

func TestTailCallAfterIfStatement(t *testing.T) {
	interp := newTestInterpreter(t, Options{})
	val := mustRun(t, interp, sumTo(100_000, true))
	if val != num(5000050000) {
		t.Fatalf("expected 5000050000, got %#v", val)
	}
	if depth := interp.Context().Depth(); depth != 2 {
		t.Fatalf("expected only global and program frames, got %d", depth)
	}
}

func TestMutualTailRecursion(t *testing.T) {
	interp := newTestInterpreter(t, Options{})
	isEven := ast.Fn("isEven", ast.Params("n"),
		ast.Ret(ast.Logical("||", ast.Bin("===", ast.ID("n"), ast.Num(0)), ast.CallName("isOdd", ast.Bin("-", ast.ID("n"), ast.Num(1))))),
	)
	isOdd := ast.Fn("isOdd", ast.Params("n"),
		ast.Ret(ast.Logical("&&", ast.Bin("!==", ast.ID("n"), ast.Num(0)), ast.CallName("isEven", ast.Bin("-", ast.ID("n"), ast.Num(1))))),
	)
	program := ast.Prog(isEven, isOdd, ast.Expr(ast.CallName("isEven", ast.Num(50_001))))
	if got := mustRun(t, interp, program); got != runtime.Bool(false) {
		t.Fatalf("expected false, got %#v", got)
	}
}

func TestLazyTailRecursion(t *testing.T) {
	interp := newTestInterpreter(t, Options{Lazy: true})
	if got := mustRun(t, interp, sumTo(1000, false)); got != num(500500) {
		t.Fatalf("expected 500500, got %#v", got)
	}
}

func TestArrowExpressionBodyIsTailPosition(t *testing.T) {
	interp := newTestInterpreter(t, Options{})
	count := ast.ArrowExpr(ast.Params("n"),
		ast.Cond(ast.Bin("===", ast.ID("n"), ast.Num(0)), ast.Str("done"), ast.CallName("count", ast.Bin("-", ast.ID("n"), ast.Num(1)))),
	)
	program := ast.Prog(
		ast.Const("count", count),
		ast.Expr(ast.CallName("count", ast.Num(200_000))),
	)
	maxDepth := 0
	val, err := interp.Run(program, func(cp Checkpoint) bool {
		maxDepth = max(maxDepth, cp.Environments)
		return true
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if val != runtime.String("done") {
		t.Fatalf("expected done, got %#v", val)
	}
	if maxDepth > 8 {
		t.Fatalf("environment stack grew to %d frames", maxDepth)
	}
}

func TestFunctionFrameRecordsCallSite(t *testing.T) {
	interp := newTestInterpreter(t, Options{})
	var site *runtime.CallSite
	interp.Context().GlobalEnvironment().Bind("where", &runtime.NativeFunctionValue{
		Name: "where",
		Impl: func(*runtime.NativeCall, []runtime.Value) (runtime.Value, error) {
			for env := interp.Context().CurrentEnvironment(); env != nil; env = env.Parent() {
				if env.CallSite != nil {
					site = env.CallSite
					break
				}
			}
			return runtime.Undefined, nil
		},
	}, false)

	call := ast.CallName("f", ast.Num(2), ast.Num(3))
	mustRun(t, interp, ast.Prog(
		ast.Fn("f", ast.Params("a", "b"),
			ast.Expr(ast.CallName("where")),
			ast.Ret(ast.ID("a")),
		),
		ast.Expr(call),
	))
	if site == nil {
		t.Fatalf("expected the function frame to carry a call site")
	}
	if site.Node != call {
		t.Fatalf("call site node = %v, want the f(2, 3) expression", site.Node)
	}
	if len(site.Args) != 2 || site.Args[0] != num(2) || site.Args[1] != num(3) {
		t.Fatalf("call site args = %v", site.Args)
	}
}
