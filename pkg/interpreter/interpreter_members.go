package interpreter

import (
	"unicode/utf8"

	"xslang/interpreter-go/pkg/ast"
	"xslang/interpreter-go/pkg/diag"
	"xslang/interpreter-go/pkg/rttc"
	"xslang/interpreter-go/pkg/runtime"
	"xslang/interpreter-go/pkg/stringify"
)

const protoKey = "__proto__"

// maxArrayGap bounds how many undefined holes one element write may create.
const maxArrayGap = 1 << 16

// memberTarget evaluates the object and key of a member expression.
func (i *Interpreter) memberTarget(n *ast.MemberExpression) (runtime.Value, runtime.Value, error) {
	obj, err := i.actualValue(n.Object)
	if err != nil {
		return nil, nil, err
	}
	key, err := i.propertyKey(n.Property, n.Computed)
	if err != nil {
		return nil, nil, err
	}
	return obj, key, nil
}

// propertyKey returns the key named by a property node: the identifier name
// when not computed, the forced value otherwise.
func (i *Interpreter) propertyKey(prop ast.Expression, computed bool) (runtime.Value, error) {
	if !computed {
		switch p := prop.(type) {
		case *ast.Identifier:
			return runtime.String(p.Name), nil
		case *ast.Literal:
			return literalValue(p), nil
		}
	}
	return i.actualValue(prop)
}

func propertyName(key runtime.Value) string {
	switch k := key.(type) {
	case runtime.StringValue:
		return k.Val
	case runtime.NumberValue:
		return stringify.Number(k.Val)
	default:
		return stringify.Value(key)
	}
}

// getMember reads a property. Objects consult their parent chain; every other
// value only has own properties.
func (i *Interpreter) getMember(node ast.Node, obj, key runtime.Value) (runtime.Value, error) {
	if err := rttc.CheckMemberAccess(node, obj, key); err != nil {
		return nil, i.fail(err)
	}
	name := propertyName(key)
	if o, ok := obj.(*runtime.ObjectValue); ok {
		if name == protoKey {
			if o.Parent == nil {
				return runtime.NullValue{}, nil
			}
			return o.Parent, nil
		}
		val, found := o.Lookup(name)
		if !found {
			return nil, i.fail(diag.NewGetInheritedPropertyError(node, obj, name))
		}
		return val, nil
	}
	val, found := ownProperty(obj, key)
	if !found {
		return nil, i.fail(diag.NewGetPropertyError(node, obj, name))
	}
	return val, nil
}

func ownProperty(obj, key runtime.Value) (runtime.Value, bool) {
	name := propertyName(key)
	switch o := obj.(type) {
	case *runtime.ArrayValue:
		if name == "length" {
			return runtime.Number(float64(len(o.Elements))), true
		}
		if idx, ok := index(key); ok && idx < len(o.Elements) {
			return o.Elements[idx], true
		}
	case runtime.StringValue:
		if name == "length" {
			return runtime.Number(float64(utf8.RuneCountInString(o.Val))), true
		}
		if idx, ok := index(key); ok {
			runes := []rune(o.Val)
			if idx < len(runes) {
				return runtime.String(string(runes[idx])), true
			}
		}
	case *runtime.Closure:
		required, _ := o.Arity()
		switch name {
		case "prototype":
			return o.Prototype(), true
		case "name":
			return runtime.String(o.Name), true
		case "length":
			return runtime.Number(float64(required)), true
		}
	case *runtime.NativeFunctionValue:
		switch name {
		case "name":
			return runtime.String(o.Name), true
		case "length":
			return runtime.Number(float64(o.Arity)), true
		}
	}
	return nil, false
}

func index(key runtime.Value) (int, bool) {
	n, ok := key.(runtime.NumberValue)
	if !ok || n.Val < 0 || n.Val != float64(int(n.Val)) {
		return 0, false
	}
	return int(n.Val), true
}

// setMember writes a property. Objects and array elements accept writes;
// strings, functions, array length and indexes far past the end do not.
func (i *Interpreter) setMember(node ast.Node, obj, key, value runtime.Value) error {
	name := propertyName(key)
	if err := rttc.CheckMemberAccess(node, obj, key); err != nil {
		return i.fail(diag.NewSetPropertyError(node, obj, name))
	}
	switch o := obj.(type) {
	case *runtime.ObjectValue:
		if name == protoKey {
			return i.setParent(node, o, value)
		}
		o.Set(name, value)
		return nil
	case *runtime.ArrayValue:
		if idx, ok := index(key); ok && idx-len(o.Elements) <= maxArrayGap {
			for len(o.Elements) <= idx {
				o.Elements = append(o.Elements, runtime.Undefined)
			}
			o.Elements[idx] = value
			return nil
		}
	}
	return i.fail(diag.NewSetPropertyError(node, obj, name))
}

func (i *Interpreter) setParent(node ast.Node, obj *runtime.ObjectValue, parent runtime.Value) error {
	switch p := parent.(type) {
	case *runtime.ObjectValue:
		obj.Parent = p
	case runtime.NullValue:
		obj.Parent = nil
	default:
		return i.fail(diag.NewSetPropertyError(node, obj, protoKey))
	}
	return nil
}
