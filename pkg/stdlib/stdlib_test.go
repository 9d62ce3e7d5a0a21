package stdlib

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"xslang/interpreter-go/pkg/runtime"
)

func installed(t *testing.T, groups ...string) (*runtime.Environment, *bytes.Buffer) {
	t.Helper()
	env := runtime.NewEnvironment("global", nil)
	var out bytes.Buffer
	require.NoError(t, Install(env, &out, groups))
	return env, &out
}

func call(t *testing.T, env *runtime.Environment, name string, args ...runtime.Value) (runtime.Value, error) {
	t.Helper()
	b, ok := env.Lookup(name)
	require.True(t, ok, "native %s not installed", name)
	fn, ok := b.Value.(*runtime.NativeFunctionValue)
	require.True(t, ok, "%s is not a native function", name)
	return fn.Impl(&runtime.NativeCall{}, args)
}

func TestInstallGroups(t *testing.T) {
	env, _ := installed(t, "math")
	_, ok := env.Lookup("math_abs")
	require.True(t, ok)
	_, ok = env.Lookup("display")
	require.False(t, ok, "core group should not be installed")

	b, _ := env.Lookup("math_PI")
	require.False(t, b.Writable, "natives are bound as constants")
	require.Equal(t, runtime.Number(math.Pi), b.Value)

	err := Install(env, nil, []string{"graphics"})
	require.ErrorContains(t, err, `unknown group "graphics"`)
}

func TestInstallAllByDefault(t *testing.T) {
	env, _ := installed(t)
	for _, name := range []string{"display", "math_max", "string_concat", "array_map"} {
		_, ok := env.Lookup(name)
		require.True(t, ok, "missing %s", name)
	}
}

func TestDisplayWritesAndReturnsArgument(t *testing.T) {
	env, out := installed(t, "core")
	val, err := call(t, env, "display", runtime.String("hi"))
	require.NoError(t, err)
	require.Equal(t, runtime.String("hi"), val)
	_, err = call(t, env, "display", runtime.NewArray([]runtime.Value{runtime.String("a"), runtime.Number(1)}))
	require.NoError(t, err)
	require.Equal(t, "hi\n[\"a\", 1]\n", out.String())
}

func TestErrorNativeFails(t *testing.T) {
	env, _ := installed(t, "core")
	_, err := call(t, env, "error", runtime.String("boom"))
	require.EqualError(t, err, "boom")
}

func TestPredicatesAndArity(t *testing.T) {
	env, _ := installed(t)
	cases := []struct {
		name string
		arg  runtime.Value
		want bool
	}{
		{"is_number", runtime.Number(1), true},
		{"is_number", runtime.String("1"), false},
		{"is_string", runtime.String(""), true},
		{"is_boolean", runtime.Bool(false), true},
		{"is_array", runtime.NewArray(nil), true},
		{"is_object", runtime.NewObject(nil), true},
		{"is_undefined", runtime.Undefined, true},
		{"is_null", runtime.NullValue{}, true},
		{"is_null", runtime.Undefined, false},
	}
	for _, tc := range cases {
		got, err := call(t, env, tc.name, tc.arg)
		require.NoError(t, err)
		require.Equal(t, runtime.Bool(tc.want), got, "%s(%v)", tc.name, tc.arg)
	}

	b, _ := env.Lookup("math_pow")
	got, err := call(t, env, "is_function", b.Value)
	require.NoError(t, err)
	require.Equal(t, runtime.Bool(true), got)
	got, err = call(t, env, "arity", b.Value)
	require.NoError(t, err)
	require.Equal(t, runtime.Number(2), got)
	b, _ = env.Lookup("math_max")
	got, err = call(t, env, "arity", b.Value)
	require.NoError(t, err)
	require.Equal(t, runtime.Number(-1), got)
}

func TestMathNatives(t *testing.T) {
	env, _ := installed(t, "math")
	cases := []struct {
		name string
		args []runtime.Value
		want float64
	}{
		{"math_abs", []runtime.Value{runtime.Number(-3)}, 3},
		{"math_floor", []runtime.Value{runtime.Number(2.7)}, 2},
		{"math_ceil", []runtime.Value{runtime.Number(2.1)}, 3},
		{"math_sqrt", []runtime.Value{runtime.Number(16)}, 4},
		{"math_round", []runtime.Value{runtime.Number(2.5)}, 3},
		{"math_pow", []runtime.Value{runtime.Number(2), runtime.Number(10)}, 1024},
		{"math_max", []runtime.Value{runtime.Number(1), runtime.Number(9), runtime.Number(4)}, 9},
		{"math_min", []runtime.Value{runtime.Number(1), runtime.Number(9), runtime.Number(-4)}, -4},
	}
	for _, tc := range cases {
		got, err := call(t, env, tc.name, tc.args...)
		require.NoError(t, err, tc.name)
		require.Equal(t, runtime.Number(tc.want), got, tc.name)
	}
	_, err := call(t, env, "math_abs", runtime.String("x"))
	require.ErrorContains(t, err, "math_abs expects a number")
}

func TestStringNatives(t *testing.T) {
	env, _ := installed(t, "string")
	got, err := call(t, env, "string_length", runtime.String("héllo"))
	require.NoError(t, err)
	require.Equal(t, runtime.Number(5), got)
	got, err = call(t, env, "string_upper", runtime.String("abc"))
	require.NoError(t, err)
	require.Equal(t, runtime.String("ABC"), got)
	got, err = call(t, env, "string_concat", runtime.String("n="), runtime.Number(3), runtime.Bool(true))
	require.NoError(t, err)
	require.Equal(t, runtime.String("n=3true"), got)
}

type doubler struct{ calls int }

func (d *doubler) Invoke(_ runtime.Value, args []runtime.Value) (runtime.Value, error) {
	d.calls++
	return runtime.Number(args[0].(runtime.NumberValue).Val * 2), nil
}

func TestArrayNatives(t *testing.T) {
	env, _ := installed(t, "array")
	arr := runtime.NewArray([]runtime.Value{runtime.Number(1), runtime.Number(2)})

	got, err := call(t, env, "array_push", arr, runtime.Number(3))
	require.NoError(t, err)
	require.Equal(t, runtime.Number(3), got)
	require.Len(t, arr.Elements, 3)

	got, err = call(t, env, "array_get", arr, runtime.Number(2))
	require.NoError(t, err)
	require.Equal(t, runtime.Number(3), got)
	_, err = call(t, env, "array_get", arr, runtime.Number(1.5))
	require.ErrorContains(t, err, "out of range")

	b, _ := env.Lookup("array_map")
	inv := &doubler{}
	mapped, err := b.Value.(*runtime.NativeFunctionValue).Impl(&runtime.NativeCall{Invoker: inv}, []runtime.Value{runtime.Undefined, arr})
	require.NoError(t, err)
	require.Equal(t, 3, inv.calls)
	require.Equal(t, []runtime.Value{runtime.Number(2), runtime.Number(4), runtime.Number(6)}, mapped.(*runtime.ArrayValue).Elements)
}
