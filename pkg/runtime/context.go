package runtime

import "xslang/interpreter-go/pkg/ast"

// Context is the interpreter state for one program run: the live environment
// stack, the stack of nodes being visited and the errors raised so far.
//
// The environment stack is stored outermost first; CurrentEnvironment is the
// last element. NumberOfOuterEnvironments counts the outermost frames that
// survive error recovery.
type Context struct {
	Errors                    []error
	NumberOfOuterEnvironments int

	environments []*Environment
	nodes        []ast.Node
}

// NewContext returns a context whose only, protected, frame is global.
func NewContext(global *Environment) *Context {
	return &Context{
		environments:              []*Environment{global},
		NumberOfOuterEnvironments: 1,
	}
}

// CurrentEnvironment returns the innermost live environment.
func (c *Context) CurrentEnvironment() *Environment {
	if len(c.environments) == 0 {
		return nil
	}
	return c.environments[len(c.environments)-1]
}

// GlobalEnvironment returns the outermost environment.
func (c *Context) GlobalEnvironment() *Environment {
	if len(c.environments) == 0 {
		return nil
	}
	return c.environments[0]
}

func (c *Context) PushEnvironment(env *Environment) {
	c.environments = append(c.environments, env)
}

func (c *Context) PopEnvironment() *Environment {
	if len(c.environments) == 0 {
		return nil
	}
	last := len(c.environments) - 1
	env := c.environments[last]
	c.environments[last] = nil
	c.environments = c.environments[:last]
	return env
}

// ReplaceEnvironment swaps the innermost environment for env.
func (c *Context) ReplaceEnvironment(env *Environment) {
	if len(c.environments) == 0 {
		c.environments = append(c.environments, env)
		return
	}
	c.environments[len(c.environments)-1] = env
}

// Depth returns the number of live environments.
func (c *Context) Depth() int {
	return len(c.environments)
}

// Environments returns the live environments innermost first.
func (c *Context) Environments() []*Environment {
	out := make([]*Environment, len(c.environments))
	for i, env := range c.environments {
		out[len(out)-1-i] = env
	}
	return out
}

// TruncateEnvironments drops every frame above the protected boundary.
func (c *Context) TruncateEnvironments() {
	keep := c.NumberOfOuterEnvironments
	if keep > len(c.environments) {
		keep = len(c.environments)
	}
	for i := keep; i < len(c.environments); i++ {
		c.environments[i] = nil
	}
	c.environments = c.environments[:keep]
}

func (c *Context) PushNode(node ast.Node) {
	c.nodes = append(c.nodes, node)
}

func (c *Context) PopNode() {
	if len(c.nodes) > 0 {
		c.nodes[len(c.nodes)-1] = nil
		c.nodes = c.nodes[:len(c.nodes)-1]
	}
}

// CurrentNode returns the node being visited, if any.
func (c *Context) CurrentNode() ast.Node {
	if len(c.nodes) == 0 {
		return nil
	}
	return c.nodes[len(c.nodes)-1]
}

// NodeDepth returns the size of the active-node stack.
func (c *Context) NodeDepth() int {
	return len(c.nodes)
}

// ResetNodes clears the active-node stack.
func (c *Context) ResetNodes() {
	for i := range c.nodes {
		c.nodes[i] = nil
	}
	c.nodes = c.nodes[:0]
}

// AddError records an error raised during evaluation.
func (c *Context) AddError(err error) {
	c.Errors = append(c.Errors, err)
}
