// Package stdlib provides the native functions installed into the global
// environment before a program runs.
package stdlib

import (
	"fmt"
	"io"
	"os"
	"sort"

	"xslang/interpreter-go/pkg/runtime"
)

// Groups lists the native groups in installation order.
var Groups = []string{"core", "math", "string", "array"}

// Entry is a named global: a native function or a constant.
type Entry struct {
	Name  string
	Value runtime.Value
}

type groupFunc func(out io.Writer) []Entry

var registry = map[string]groupFunc{
	"core":   coreEntries,
	"math":   func(io.Writer) []Entry { return mathEntries() },
	"string": func(io.Writer) []Entry { return stringEntries() },
	"array":  func(io.Writer) []Entry { return arrayEntries() },
}

// Install binds the natives of groups into env as non-writable bindings.
// Output from display goes to out (stdout when nil). An empty group list
// installs every group.
func Install(env *runtime.Environment, out io.Writer, groups []string) error {
	if out == nil {
		out = os.Stdout
	}
	if len(groups) == 0 {
		groups = Groups
	}
	for _, name := range groups {
		build, ok := registry[name]
		if !ok {
			return fmt.Errorf("stdlib: unknown group %q (known: %v)", name, known())
		}
		for _, entry := range build(out) {
			env.Bind(entry.Name, entry.Value, false)
		}
	}
	return nil
}

func known() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func native(name string, arity int, impl runtime.NativeFunc) Entry {
	return Entry{Name: name, Value: &runtime.NativeFunctionValue{Name: name, Arity: arity, Impl: impl}}
}

func varArgs(name string, impl runtime.NativeFunc) Entry {
	return Entry{Name: name, Value: &runtime.NativeFunctionValue{Name: name, VarArgs: true, Impl: impl}}
}

func number(fn string, v runtime.Value) (float64, error) {
	n, ok := v.(runtime.NumberValue)
	if !ok {
		return 0, fmt.Errorf("%s expects a number, got %s", fn, v.Kind())
	}
	return n.Val, nil
}

func str(fn string, v runtime.Value) (string, error) {
	s, ok := v.(runtime.StringValue)
	if !ok {
		return "", fmt.Errorf("%s expects a string, got %s", fn, v.Kind())
	}
	return s.Val, nil
}

func array(fn string, v runtime.Value) (*runtime.ArrayValue, error) {
	a, ok := v.(*runtime.ArrayValue)
	if !ok {
		return nil, fmt.Errorf("%s expects an array, got %s", fn, v.Kind())
	}
	return a, nil
}
