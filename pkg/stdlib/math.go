package stdlib

import (
	"fmt"
	"math"

	"xslang/interpreter-go/pkg/runtime"
)

func mathEntries() []Entry {
	return []Entry{
		{Name: "math_PI", Value: runtime.Number(math.Pi)},
		{Name: "math_E", Value: runtime.Number(math.E)},
		unaryMath("math_abs", math.Abs),
		unaryMath("math_floor", math.Floor),
		unaryMath("math_ceil", math.Ceil),
		unaryMath("math_sqrt", math.Sqrt),
		unaryMath("math_round", func(x float64) float64 { return math.Floor(x + 0.5) }),
		native("math_pow", 2, func(_ *runtime.NativeCall, args []runtime.Value) (runtime.Value, error) {
			base, err := number("math_pow", args[0])
			if err != nil {
				return nil, err
			}
			exp, err := number("math_pow", args[1])
			if err != nil {
				return nil, err
			}
			return runtime.Number(math.Pow(base, exp)), nil
		}),
		fold("math_max", math.Inf(-1), math.Max),
		fold("math_min", math.Inf(1), math.Min),
	}
}

func unaryMath(name string, fn func(float64) float64) Entry {
	return native(name, 1, func(_ *runtime.NativeCall, args []runtime.Value) (runtime.Value, error) {
		x, err := number(name, args[0])
		if err != nil {
			return nil, err
		}
		return runtime.Number(fn(x)), nil
	})
}

func fold(name string, start float64, fn func(a, b float64) float64) Entry {
	return varArgs(name, func(_ *runtime.NativeCall, args []runtime.Value) (runtime.Value, error) {
		acc := start
		for idx, arg := range args {
			x, err := number(name, arg)
			if err != nil {
				return nil, fmt.Errorf("argument %d: %w", idx+1, err)
			}
			acc = fn(acc, x)
		}
		return runtime.Number(acc), nil
	})
}
