package runtime

import (
	"fmt"

	"xslang/interpreter-go/pkg/ast"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindUndefined Kind = iota
	KindNull
	KindNumber
	KindString
	KindBool
	KindArray
	KindObject
	KindFunction
	KindNativeFunction
	KindThunk
	// KindControl marks statement completions (break, continue, return,
	// tail call). They never end up in a binding.
	KindControl
)

func (k Kind) String() string {
	switch k {
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBool:
		return "boolean"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	case KindFunction:
		return "function"
	case KindNativeFunction:
		return "native_function"
	case KindThunk:
		return "thunk"
	case KindControl:
		return "control"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
}

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

type UndefinedValue struct{}

func (UndefinedValue) Kind() Kind { return KindUndefined }

type NullValue struct{}

func (NullValue) Kind() Kind { return KindNull }

type NumberValue struct {
	Val float64
}

func (v NumberValue) Kind() Kind { return KindNumber }

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

// Undefined is the shared undefined value.
var Undefined Value = UndefinedValue{}

func Number(v float64) NumberValue { return NumberValue{Val: v} }
func String(v string) StringValue  { return StringValue{Val: v} }
func Bool(v bool) BoolValue        { return BoolValue{Val: v} }

//-----------------------------------------------------------------------------
// Arrays and objects
//-----------------------------------------------------------------------------

type ArrayValue struct {
	Elements []Value
}

func (v *ArrayValue) Kind() Kind { return KindArray }

func NewArray(elements []Value) *ArrayValue {
	return &ArrayValue{Elements: elements}
}

// ObjectValue is a string-keyed property bag with one optional parent link
// consulted by inherited lookups.
type ObjectValue struct {
	props  map[string]Value
	order  []string
	Parent *ObjectValue
}

func (v *ObjectValue) Kind() Kind { return KindObject }

func NewObject(parent *ObjectValue) *ObjectValue {
	return &ObjectValue{props: make(map[string]Value), Parent: parent}
}

// Own returns a property defined directly on the object.
func (v *ObjectValue) Own(key string) (Value, bool) {
	val, ok := v.props[key]
	return val, ok
}

// Set defines or overwrites an own property.
func (v *ObjectValue) Set(key string, val Value) {
	if _, ok := v.props[key]; !ok {
		v.order = append(v.order, key)
	}
	v.props[key] = val
}

// Lookup walks the object and its parent chain. A cyclic chain stops the walk
// at the first repeated object.
func (v *ObjectValue) Lookup(key string) (Value, bool) {
	seen := make(map[*ObjectValue]struct{})
	for obj := v; obj != nil; obj = obj.Parent {
		if _, ok := seen[obj]; ok {
			return nil, false
		}
		seen[obj] = struct{}{}
		if val, ok := obj.props[key]; ok {
			return val, true
		}
	}
	return nil, false
}

// Keys returns own property names in insertion order.
func (v *ObjectValue) Keys() []string {
	out := make([]string, len(v.order))
	copy(out, v.order)
	return out
}

//-----------------------------------------------------------------------------
// Functions & closures
//-----------------------------------------------------------------------------

// Closure is a function value: the function node plus the environment it was
// created in. The environment is shared, never copied.
type Closure struct {
	Node    ast.Node // FunctionDeclaration, FunctionExpression or ArrowFunctionExpression
	Name    string
	Params  []ast.Pattern
	Body    ast.Node // *ast.BlockStatement, or an Expression for arrow expression bodies
	IsArrow bool
	Env     *Environment
	Context *Context

	prototype *ObjectValue
}

func (v *Closure) Kind() Kind { return KindFunction }

// NewClosure captures node in env. It panics on non-function nodes, which the
// dispatch table never hands it.
func NewClosure(node ast.Node, env *Environment, ctx *Context) *Closure {
	c := &Closure{Node: node, Env: env, Context: ctx, Name: "anonymous"}
	switch fn := node.(type) {
	case *ast.FunctionDeclaration:
		c.Params, c.Body = fn.Params, fn.Body
		if fn.ID != nil {
			c.Name = fn.ID.Name
		}
	case *ast.FunctionExpression:
		c.Params, c.Body = fn.Params, fn.Body
		if fn.ID != nil {
			c.Name = fn.ID.Name
		}
	case *ast.ArrowFunctionExpression:
		c.Params, c.Body, c.IsArrow = fn.Params, fn.Body, true
	default:
		panic(fmt.Sprintf("runtime: cannot build closure from %s", node.NodeType()))
	}
	return c
}

// Arity reports how many arguments a call must supply: required counts the
// parameters before the first default, total counts all of them.
func (v *Closure) Arity() (required, total int) {
	total = len(v.Params)
	required = total
	for idx, p := range v.Params {
		if _, ok := p.(*ast.AssignmentPattern); ok {
			required = idx
			break
		}
	}
	return required, total
}

// Prototype returns the object used as parent for values built with `new`.
func (v *Closure) Prototype() *ObjectValue {
	if v.prototype == nil {
		v.prototype = NewObject(nil)
	}
	return v.prototype
}

// NativeCall carries what a native function may need from its call site.
type NativeCall struct {
	Context *Context
	This    Value
	Node    ast.Node
	Invoker Invoker
}

// Invoker lets natives call back into source functions.
type Invoker interface {
	Invoke(callee Value, args []Value) (Value, error)
}

type NativeFunc func(*NativeCall, []Value) (Value, error)

type NativeFunctionValue struct {
	Name    string
	Arity   int
	VarArgs bool
	Impl    NativeFunc
}

func (v *NativeFunctionValue) Kind() Kind { return KindNativeFunction }

//-----------------------------------------------------------------------------
// Utility helpers
//-----------------------------------------------------------------------------

// IsCallable reports whether v can be applied.
func IsCallable(v Value) bool {
	switch v.(type) {
	case *Closure, *NativeFunctionValue:
		return true
	default:
		return false
	}
}
