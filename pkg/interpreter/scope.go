package interpreter

import (
	"xslang/interpreter-go/pkg/ast"
	"xslang/interpreter-go/pkg/diag"
	"xslang/interpreter-go/pkg/runtime"
)

// hoist declares every variable and function name at the top level of body
// in env, unassigned, before any statement runs.
func (i *Interpreter) hoist(body []ast.Statement, env *runtime.Environment) error {
	for _, stmt := range body {
		switch s := stmt.(type) {
		case *ast.VariableDeclaration:
			if err := i.hoistDeclaration(s, env); err != nil {
				return err
			}
		case *ast.FunctionDeclaration:
			if s.ID == nil {
				continue
			}
			if err := i.declare(s, s.ID.Name, false, env); err != nil {
				return err
			}
		}
	}
	return nil
}

func (i *Interpreter) hoistDeclaration(decl *ast.VariableDeclaration, env *runtime.Environment) error {
	writable := decl.Kind != ast.DeclarationConst
	for _, d := range decl.Declarations {
		if d == nil || d.ID == nil {
			continue
		}
		if err := i.declare(d, d.ID.Name, writable, env); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) declare(node ast.Node, name string, writable bool, env *runtime.Environment) error {
	if existing, ok := env.Declare(name, writable); !ok {
		return i.fail(diag.NewVariableRedeclaration(node, name, existing.Writable))
	}
	return nil
}

// define gives a hoisted name in the current environment its first value.
func (i *Interpreter) define(node ast.Node, name string, value runtime.Value, writable bool) error {
	if !i.ctx.CurrentEnvironment().Define(name, value, writable) {
		return i.fail(diag.NewUndefinedVariable(node, name))
	}
	return nil
}

// read resolves name from the current environment outward. A binding that is
// declared but not yet assigned fails like a missing one.
func (i *Interpreter) read(node ast.Node, name string) (runtime.Value, error) {
	b, ok := i.ctx.CurrentEnvironment().Lookup(name)
	if !ok || !b.Assigned {
		return nil, i.fail(diag.NewUndefinedVariable(node, name))
	}
	return b.Value, nil
}

func (i *Interpreter) write(node ast.Node, name string, value runtime.Value) error {
	switch i.ctx.CurrentEnvironment().Assign(name, value) {
	case runtime.AssignNotWritable:
		return i.fail(diag.NewConstAssignment(node, name))
	case runtime.AssignUndefined:
		return i.fail(diag.NewUndefinedVariable(node, name))
	}
	return nil
}

// pushScope creates a child of the current environment and makes it current.
func (i *Interpreter) pushScope(name string) *runtime.Environment {
	env := i.ctx.CurrentEnvironment().Extend(name)
	i.ctx.PushEnvironment(env)
	return env
}
