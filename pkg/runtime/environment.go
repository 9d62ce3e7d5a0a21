package runtime

import (
	"sort"

	"xslang/interpreter-go/pkg/ast"
)

// Binding is one variable slot. A binding starts declared but unassigned
// during hoisting and is assigned exactly once by its declaration.
type Binding struct {
	Value    Value
	Writable bool
	Assigned bool
}

// AssignResult reports the outcome of writing through the scope chain.
type AssignResult int

const (
	AssignOK AssignResult = iota
	AssignNotWritable
	AssignUndefined
)

// CallSite snapshots the call expression that created a function frame,
// with the arguments it was applied to.
type CallSite struct {
	Node *ast.CallExpression
	Args []Value
}

// Environment provides lexical scoping for runtime values.
type Environment struct {
	Name     string
	CallSite *CallSite
	This     Value
	HasThis  bool

	bindings map[string]*Binding
	parent   *Environment
}

// NewEnvironment creates a new environment, optionally nested under a parent.
func NewEnvironment(name string, parent *Environment) *Environment {
	return &Environment{
		Name:     name,
		bindings: make(map[string]*Binding),
		parent:   parent,
	}
}

// Parent exposes the lexical parent (nil for the root).
func (e *Environment) Parent() *Environment {
	return e.parent
}

// Own returns the binding declared directly in this frame.
func (e *Environment) Own(name string) (*Binding, bool) {
	b, ok := e.bindings[name]
	return b, ok
}

// Declare inserts a declared-but-unassigned binding. When the name already
// exists in this frame nothing changes and the existing binding is returned.
func (e *Environment) Declare(name string, writable bool) (*Binding, bool) {
	if existing, ok := e.bindings[name]; ok {
		return existing, false
	}
	e.bindings[name] = &Binding{Writable: writable}
	return nil, true
}

// Define gives a declared-but-unassigned binding its first value. It reports
// false when the name is absent from this frame or already assigned.
func (e *Environment) Define(name string, value Value, writable bool) bool {
	b, ok := e.bindings[name]
	if !ok || b.Assigned {
		return false
	}
	b.Value = value
	b.Writable = writable
	b.Assigned = true
	return true
}

// Bind declares and assigns in one step, shadowing any existing binding.
// Used for parameters and natives, which are never hoisted.
func (e *Environment) Bind(name string, value Value, writable bool) {
	e.bindings[name] = &Binding{Value: value, Writable: writable, Assigned: true}
}

// Lookup walks the scope chain innermost first.
func (e *Environment) Lookup(name string) (*Binding, bool) {
	for env := e; env != nil; env = env.parent {
		if b, ok := env.bindings[name]; ok {
			return b, true
		}
	}
	return nil, false
}

// Assign updates an existing binding in the first scope where it appears.
// Assignment never creates a binding, and a binding that is still unassigned
// counts as undefined.
func (e *Environment) Assign(name string, value Value) AssignResult {
	b, ok := e.Lookup(name)
	if !ok || !b.Assigned {
		return AssignUndefined
	}
	if !b.Writable {
		return AssignNotWritable
	}
	b.Value = value
	return AssignOK
}

// ThisValue returns the nearest `this` binding along the chain.
func (e *Environment) ThisValue() (Value, bool) {
	for env := e; env != nil; env = env.parent {
		if env.HasThis {
			return env.This, true
		}
	}
	return nil, false
}

// CopyBindingsFrom declares every binding of src in e, preserving state and
// writability. Loops use it to give each iteration its own slots.
func (e *Environment) CopyBindingsFrom(src *Environment) {
	for name, b := range src.bindings {
		copied := *b
		e.bindings[name] = &copied
	}
}

// WriteBackTo copies the values of bindings shared with dst back into dst.
func (e *Environment) WriteBackTo(dst *Environment) {
	for name, b := range e.bindings {
		if target, ok := dst.bindings[name]; ok && b.Assigned {
			target.Value = b.Value
			target.Assigned = true
		}
	}
}

// Keys returns the bindings in sorted order (useful for determinism in tests).
func (e *Environment) Keys() []string {
	keys := make([]string, 0, len(e.bindings))
	for k := range e.bindings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Extend creates a new child scope.
func (e *Environment) Extend(name string) *Environment {
	return NewEnvironment(name, e)
}
