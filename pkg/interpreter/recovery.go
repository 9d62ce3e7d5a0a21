package interpreter

import "errors"

// fail is the single exit for runtime errors: it records err, unwinds the
// environment stack to the protected boundary and clears the node stack.
func (i *Interpreter) fail(err error) error {
	i.ctx.AddError(err)
	i.ctx.TruncateEnvironments()
	i.ctx.ResetNodes()
	return err
}

// recorded reports whether err already went through fail.
func (i *Interpreter) recorded(err error) bool {
	for _, seen := range i.ctx.Errors {
		if errors.Is(seen, err) {
			return true
		}
	}
	return false
}
