package interpreter

import (
	"errors"
	"iter"

	"xslang/interpreter-go/pkg/ast"
	"xslang/interpreter-go/pkg/diag"
	"xslang/interpreter-go/pkg/runtime"
)

// ErrStopped is returned when the hook or the step consumer stops driving
// evaluation.
var ErrStopped = errors.New("interpreter: evaluation stopped")

// Phase tags a checkpoint.
type Phase int

const (
	PhaseVisit Phase = iota
	PhaseLeave
	// PhaseDebugger is emitted by a debugger statement.
	PhaseDebugger
)

func (p Phase) String() string {
	switch p {
	case PhaseVisit:
		return "visit"
	case PhaseLeave:
		return "leave"
	case PhaseDebugger:
		return "debugger"
	default:
		return "unknown"
	}
}

// Checkpoint is one observable step boundary.
type Checkpoint struct {
	Phase Phase
	Node  ast.Node
	// Depth is the size of the active-node stack.
	Depth int
	// Environments is the number of live environments.
	Environments int
}

// Hook observes checkpoints. Returning false cancels evaluation.
type Hook func(Checkpoint) bool

// Result holds the outcome of a stepped run.
type Result struct {
	Value runtime.Value
	Err   error
}

// Steps returns the checkpoints of running program as a sequence. Evaluation
// advances only as the sequence is consumed; stopping early cancels it with
// ErrStopped. The outcome is stored in res once the sequence ends.
func (i *Interpreter) Steps(program *ast.Program, res *Result) iter.Seq[Checkpoint] {
	return func(yield func(Checkpoint) bool) {
		val, err := i.Run(program, Hook(yield))
		if res != nil {
			res.Value, res.Err = val, err
		}
	}
}

type evaluator func(*Interpreter, ast.Node) (runtime.Value, error)

// evaluate runs the rule for node between a visit and a leave checkpoint.
func (i *Interpreter) evaluate(node ast.Node) (runtime.Value, error) {
	rule, ok := evaluators[node.NodeType()]
	if !ok {
		return nil, i.fail(diag.NewUnsupportedNode(node))
	}
	return i.evaluateWith(node, rule)
}

func (i *Interpreter) evaluateWith(node ast.Node, rule evaluator) (runtime.Value, error) {
	i.ctx.PushNode(node)
	if err := i.checkpoint(PhaseVisit, node); err != nil {
		return nil, err
	}
	val, err := rule(i, node)
	if err != nil {
		return nil, err
	}
	i.ctx.PopNode()
	if err := i.checkpoint(PhaseLeave, node); err != nil {
		return nil, err
	}
	return val, nil
}

func (i *Interpreter) checkpoint(phase Phase, node ast.Node) error {
	if i.stopped {
		return ErrStopped
	}
	if i.hook == nil {
		return nil
	}
	cp := Checkpoint{
		Phase:        phase,
		Node:         node,
		Depth:        i.ctx.NodeDepth(),
		Environments: i.ctx.Depth(),
	}
	if !i.hook(cp) {
		i.stopped = true
		i.ctx.TruncateEnvironments()
		i.ctx.ResetNodes()
		return ErrStopped
	}
	return nil
}
