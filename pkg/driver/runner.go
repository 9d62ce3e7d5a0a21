package driver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"xslang/interpreter-go/pkg/ast"
	"xslang/interpreter-go/pkg/interpreter"
	"xslang/interpreter-go/pkg/runtime"
	"xslang/interpreter-go/pkg/stdlib"
)

// ErrStepLimit is returned when a run exceeds the configured max_steps.
var ErrStepLimit = errors.New("driver: step limit exceeded")

// Runner evaluates programs against one long-lived interpreter. Successive
// runs share the global frame and every earlier program frame, which is what
// the REPL relies on.
type Runner struct {
	cfg    *Config
	logger *slog.Logger
	interp *interpreter.Interpreter

	// OnCheckpoint, when set, observes every checkpoint of a run.
	OnCheckpoint func(interpreter.Checkpoint)
}

// NewRunner installs the configured native groups and builds the
// interpreter. Program output goes to out.
func NewRunner(cfg *Config, out io.Writer, logger *slog.Logger) (*Runner, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	ctx := interpreter.NewContext()
	if err := stdlib.Install(ctx.GlobalEnvironment(), out, cfg.Stdlib); err != nil {
		return nil, err
	}
	interp := interpreter.New(ctx, interpreter.Options{Lazy: cfg.Mode == ModeLazy})
	return &Runner{cfg: cfg, logger: logger, interp: interp}, nil
}

// Interpreter exposes the underlying interpreter.
func (r *Runner) Interpreter() *interpreter.Interpreter {
	return r.interp
}

// Run evaluates program. It stops early with ErrStepLimit once max_steps
// checkpoints have passed, or with the context's error on cancellation.
func (r *Runner) Run(ctx context.Context, program *ast.Program) (runtime.Value, error) {
	var (
		res   interpreter.Result
		steps int
		abort error
	)
	r.logger.Debug("run start", "mode", r.cfg.Mode, "max_steps", r.cfg.MaxSteps)
	for cp := range r.interp.Steps(program, &res) {
		steps++
		if r.cfg.MaxSteps > 0 && steps > r.cfg.MaxSteps {
			abort = fmt.Errorf("%w: %d checkpoints", ErrStepLimit, r.cfg.MaxSteps)
			break
		}
		if err := ctx.Err(); err != nil {
			abort = err
			break
		}
		if r.cfg.Trace {
			r.logCheckpoint(cp)
		}
		if r.OnCheckpoint != nil {
			r.OnCheckpoint(cp)
		}
	}
	if abort != nil {
		r.logger.Warn("run aborted", "steps", steps, "err", abort)
		return nil, abort
	}
	if res.Err != nil {
		r.logger.Debug("run failed", "steps", steps, "err", res.Err)
		return nil, res.Err
	}
	r.logger.Debug("run done", "steps", steps)
	return res.Value, nil
}

func (r *Runner) logCheckpoint(cp interpreter.Checkpoint) {
	r.logger.Debug("checkpoint",
		"phase", cp.Phase.String(),
		"node", string(cp.Node.NodeType()),
		"line", cp.Node.Span().Start.Line,
		"depth", cp.Depth,
		"environments", cp.Environments,
	)
}
