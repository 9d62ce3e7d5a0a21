package stdlib

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"xslang/interpreter-go/pkg/runtime"
	"xslang/interpreter-go/pkg/stringify"
)

func stringEntries() []Entry {
	return []Entry{
		native("string_length", 1, func(_ *runtime.NativeCall, args []runtime.Value) (runtime.Value, error) {
			s, err := str("string_length", args[0])
			if err != nil {
				return nil, err
			}
			return runtime.Number(float64(utf8.RuneCountInString(s))), nil
		}),
		native("string_upper", 1, func(_ *runtime.NativeCall, args []runtime.Value) (runtime.Value, error) {
			s, err := str("string_upper", args[0])
			if err != nil {
				return nil, err
			}
			return runtime.String(strings.ToUpper(s)), nil
		}),
		varArgs("string_concat", func(_ *runtime.NativeCall, args []runtime.Value) (runtime.Value, error) {
			var b strings.Builder
			for _, arg := range args {
				b.WriteString(stringify.Display(arg))
			}
			return runtime.String(b.String()), nil
		}),
	}
}

func arrayEntries() []Entry {
	return []Entry{
		native("array_length", 1, func(_ *runtime.NativeCall, args []runtime.Value) (runtime.Value, error) {
			arr, err := array("array_length", args[0])
			if err != nil {
				return nil, err
			}
			return runtime.Number(float64(len(arr.Elements))), nil
		}),
		native("array_push", 2, func(_ *runtime.NativeCall, args []runtime.Value) (runtime.Value, error) {
			arr, err := array("array_push", args[0])
			if err != nil {
				return nil, err
			}
			arr.Elements = append(arr.Elements, args[1])
			return runtime.Number(float64(len(arr.Elements))), nil
		}),
		native("array_get", 2, func(_ *runtime.NativeCall, args []runtime.Value) (runtime.Value, error) {
			arr, err := array("array_get", args[0])
			if err != nil {
				return nil, err
			}
			idx, err := number("array_get", args[1])
			if err != nil {
				return nil, err
			}
			if idx < 0 || int(idx) >= len(arr.Elements) || idx != float64(int(idx)) {
				return nil, fmt.Errorf("array_get: index %s out of range", stringify.Number(idx))
			}
			return arr.Elements[int(idx)], nil
		}),
		native("array_map", 2, func(call *runtime.NativeCall, args []runtime.Value) (runtime.Value, error) {
			fn := args[0]
			arr, err := array("array_map", args[1])
			if err != nil {
				return nil, err
			}
			out := make([]runtime.Value, 0, len(arr.Elements))
			for _, el := range arr.Elements {
				v, err := call.Invoker.Invoke(fn, []runtime.Value{el})
				if err != nil {
					return nil, err
				}
				out = append(out, v)
			}
			return runtime.NewArray(out), nil
		}),
	}
}
