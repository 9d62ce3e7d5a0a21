package runtime

import "xslang/interpreter-go/pkg/ast"

// Thunk defers evaluation of an expression in the environment that was
// current when the thunk was created. Once forced, the result is cached and
// every later force is a cache read.
type Thunk struct {
	Expr ast.Expression
	Env  *Environment

	value    Value
	memoized bool
	forcing  bool
}

func (t *Thunk) Kind() Kind { return KindThunk }

func NewThunk(expr ast.Expression, env *Environment) *Thunk {
	return &Thunk{Expr: expr, Env: env}
}

// Memoized reports whether the thunk has been forced.
func (t *Thunk) Memoized() bool {
	return t.memoized
}

// Value returns the cached result; it is nil until the thunk is memoized.
func (t *Thunk) Value() Value {
	return t.value
}

// Resolve stores the forced result. The first result wins.
func (t *Thunk) Resolve(v Value) {
	if t.memoized {
		return
	}
	t.value = v
	t.memoized = true
	t.forcing = false
}

// BeginForce marks the thunk as being evaluated. It reports false when the
// thunk is already being forced further up the stack.
func (t *Thunk) BeginForce() bool {
	if t.forcing {
		return false
	}
	t.forcing = true
	return true
}

// AbortForce clears the in-progress mark after a failed evaluation.
func (t *Thunk) AbortForce() {
	t.forcing = false
}
