package stdlib

import (
	"errors"
	"fmt"
	"io"
	"math"

	"xslang/interpreter-go/pkg/runtime"
	"xslang/interpreter-go/pkg/stringify"
)

func coreEntries(out io.Writer) []Entry {
	return []Entry{
		{Name: "undefined", Value: runtime.Undefined},
		{Name: "NaN", Value: runtime.Number(math.NaN())},
		{Name: "Infinity", Value: runtime.Number(math.Inf(1))},
		native("display", 1, func(_ *runtime.NativeCall, args []runtime.Value) (runtime.Value, error) {
			if _, err := fmt.Fprintln(out, stringify.Display(args[0])); err != nil {
				return nil, err
			}
			return args[0], nil
		}),
		native("error", 1, func(_ *runtime.NativeCall, args []runtime.Value) (runtime.Value, error) {
			return nil, errors.New(stringify.Display(args[0]))
		}),
		native("stringify", 1, func(_ *runtime.NativeCall, args []runtime.Value) (runtime.Value, error) {
			return runtime.String(stringify.Value(args[0])), nil
		}),
		predicate("is_number", func(v runtime.Value) bool { return v.Kind() == runtime.KindNumber }),
		predicate("is_string", func(v runtime.Value) bool { return v.Kind() == runtime.KindString }),
		predicate("is_boolean", func(v runtime.Value) bool { return v.Kind() == runtime.KindBool }),
		predicate("is_function", runtime.IsCallable),
		predicate("is_object", func(v runtime.Value) bool { return v.Kind() == runtime.KindObject }),
		predicate("is_array", func(v runtime.Value) bool { return v.Kind() == runtime.KindArray }),
		predicate("is_undefined", func(v runtime.Value) bool { return v.Kind() == runtime.KindUndefined }),
		predicate("is_null", func(v runtime.Value) bool { return v.Kind() == runtime.KindNull }),
		native("arity", 1, func(_ *runtime.NativeCall, args []runtime.Value) (runtime.Value, error) {
			switch fn := args[0].(type) {
			case *runtime.Closure:
				required, _ := fn.Arity()
				return runtime.Number(float64(required)), nil
			case *runtime.NativeFunctionValue:
				if fn.VarArgs {
					return runtime.Number(-1), nil
				}
				return runtime.Number(float64(fn.Arity)), nil
			}
			return nil, fmt.Errorf("arity expects a function, got %s", args[0].Kind())
		}),
	}
}

func predicate(name string, test func(runtime.Value) bool) Entry {
	return native(name, 1, func(_ *runtime.NativeCall, args []runtime.Value) (runtime.Value, error) {
		return runtime.Bool(test(args[0])), nil
	})
}
