package script

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/heaviest/pkg/core/graph"
	errs "github.com/matzehuels/heaviest/pkg/errors"
	"github.com/matzehuels/heaviest/pkg/observability"
)

// Runner applies scripts to graphs. A Runner holds no per-run state, so one
// value can serve several goroutines as long as each uses its own graph.
type Runner struct {
	Logger *log.Logger

	// Verify recomputes the graph's invariants after every operation.
	Verify bool

	// FailFast stops at the first failed expectation.
	FailFast bool
}

// NewRunner creates a runner. A nil logger discards output.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{Logger: logger}
}

// Result is the record of one run.
type Result struct {
	RunID    string
	Outcomes []Outcome
	Applied  int
	Failed   int
	Duration time.Duration
}

// Failures returns the outcomes whose expectation did not hold.
func (r *Result) Failures() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if !o.OK {
			out = append(out, o)
		}
	}
	return out
}

// Run applies ops to g in order. It always returns the partial result; the
// error is non-nil when ctx is cancelled, when verification fails
// (INVARIANT_VIOLATION), or when any expectation failed (EXPECTATION_FAILED).
func (r *Runner) Run(ctx context.Context, g *graph.Graph, ops []Op) (*Result, error) {
	logger := r.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	hooks := observability.Script()

	res := &Result{RunID: uuid.NewString(), Outcomes: make([]Outcome, 0, len(ops))}
	start := time.Now()
	hooks.OnScriptStart(ctx, res.RunID, len(ops))

	err := r.run(ctx, g, ops, res, logger)

	res.Duration = time.Since(start)
	hooks.OnScriptComplete(ctx, res.RunID, res.Applied, res.Failed, res.Duration, err)
	logger.Info("applied script",
		"run", res.RunID,
		"ops", res.Applied,
		"failed", res.Failed,
		"duration", res.Duration)
	return res, err
}

func (r *Runner) run(ctx context.Context, g *graph.Graph, ops []Op, res *Result, logger *log.Logger) error {
	hooks := observability.Script()
	first := -1

	for i, op := range ops {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := op.Validate(); err != nil {
			return errs.Wrap(errs.ErrCodeInvalidOperation, err, "op %d", i)
		}

		opStart := time.Now()
		o := apply(g, i, op)
		hooks.OnOp(ctx, res.RunID, string(op.Kind), o.OK, time.Since(opStart))
		res.Outcomes = append(res.Outcomes, o)
		res.Applied++

		if !o.OK {
			res.Failed++
			logger.Warn("expectation failed", "op", i, "call", op.String(), "got", o.Got())
			if first < 0 {
				first = len(res.Outcomes) - 1
			}
			if r.FailFast {
				break
			}
		} else {
			logger.Debug("applied", "op", i, "call", op.String(), "got", o.Got())
		}

		if r.Verify {
			if err := g.Verify(); err != nil {
				return errs.Wrap(errs.ErrCodeInvariantViolation, err, "after op %d (%s)", i, op)
			}
		}
	}

	if first >= 0 {
		return errs.New(errs.ErrCodeExpectationFailed, "%d of %d expectations failed; first: %s", res.Failed, res.Applied, res.Outcomes[first].mismatch())
	}
	return nil
}
