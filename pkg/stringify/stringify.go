// Package stringify renders runtime values for display and error messages.
package stringify

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"xslang/interpreter-go/pkg/ast"
	"xslang/interpreter-go/pkg/runtime"
)

// Value renders v the way it appears inside messages: strings are quoted.
func Value(v runtime.Value) string {
	p := printer{seen: make(map[runtime.Value]struct{})}
	return p.value(v)
}

// Display renders v for program output. Top-level strings are not quoted.
func Display(v runtime.Value) string {
	if s, ok := v.(runtime.StringValue); ok {
		return s.Val
	}
	return Value(v)
}

// Number formats a float the way the source language prints numbers.
func Number(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	// Exponents print without leading zeros: 1e-7, not 1e-07.
	if mant, exp, ok := strings.Cut(s, "e"); ok {
		sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
		s = mant + "e" + sign + digits
	}
	return s
}

type printer struct {
	seen map[runtime.Value]struct{}
}

func (p *printer) value(val runtime.Value) string {
	switch v := val.(type) {
	case nil:
		return "undefined"
	case runtime.UndefinedValue:
		return "undefined"
	case runtime.NullValue:
		return "null"
	case runtime.NumberValue:
		return Number(v.Val)
	case runtime.StringValue:
		return strconv.Quote(v.Val)
	case runtime.BoolValue:
		if v.Val {
			return "true"
		}
		return "false"
	case *runtime.ArrayValue:
		if p.enter(v) {
			return "[...<circular>]"
		}
		defer p.leave(v)
		parts := make([]string, 0, len(v.Elements))
		for _, el := range v.Elements {
			parts = append(parts, p.value(el))
		}
		return fmt.Sprintf("[%s]", strings.Join(parts, ", "))
	case *runtime.ObjectValue:
		if p.enter(v) {
			return "{...<circular>}"
		}
		defer p.leave(v)
		keys := v.Keys()
		if len(keys) == 0 {
			return "{}"
		}
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			prop, _ := v.Own(k)
			parts = append(parts, fmt.Sprintf("%s: %s", strconv.Quote(k), p.value(prop)))
		}
		return fmt.Sprintf("{%s}", strings.Join(parts, ", "))
	case *runtime.Closure:
		return closureHeader(v)
	case *runtime.NativeFunctionValue:
		return fmt.Sprintf("function %s() {\n\t[implementation hidden]\n}", v.Name)
	case *runtime.Thunk:
		if v.Memoized() {
			return p.value(v.Value())
		}
		return "<thunk>"
	default:
		return fmt.Sprintf("[%s]", val.Kind())
	}
}

func (p *printer) enter(v runtime.Value) bool {
	if _, ok := p.seen[v]; ok {
		return true
	}
	p.seen[v] = struct{}{}
	return false
}

func (p *printer) leave(v runtime.Value) {
	delete(p.seen, v)
}

func closureHeader(c *runtime.Closure) string {
	names := make([]string, 0, len(c.Params))
	for _, param := range c.Params {
		names = append(names, ast.ParamName(param))
	}
	params := strings.Join(names, ", ")
	if c.IsArrow {
		if len(names) == 1 {
			return fmt.Sprintf("%s => ...", params)
		}
		return fmt.Sprintf("(%s) => ...", params)
	}
	return fmt.Sprintf("function %s(%s) { ... }", c.Name, params)
}
