package services

import (
	"context"
	"errors"
	"fmt"
	"time"
	"transfer-task-service/internal/milp"
	"transfer-task-service/internal/platform/obs"
	"transfer-task-service/internal/ports"

	"github.com/charmbracelet/log"
)

// Slack allowed when checking an incumbent against the model.
const incumbentTolerance = 1e-6

// How a category is solved.
type Mode int

const (
	// Solve to proven optimality or infeasibility with no deadline.
	ModeExact Mode = iota
	// Solve under a wall-clock budget; the best incumbent may be returned.
	ModeTimed
)

func (m Mode) String() string {
	if m == ModeTimed {
		return "timed"
	}
	return "exact"
}

// The raw solver outcome together with the timing the classifier needs.
type Invocation struct {
	Outcome   milp.Outcome
	Elapsed   time.Duration
	TimeLimit time.Duration
}

// InvokeSolver runs the solver once and measures wall-clock time around the call.
// In ModeExact the time limit is ignored. The budget is advisory: the
// solver may overrun it, which is why elapsed time is measured here.
func InvokeSolver(
	ctx context.Context,
	solver ports.Solver,
	model *milp.Model,
	mode Mode,
	timeLimit time.Duration,
) (_ Invocation, err error) {
	defer obs.Time(ctx, "solver.Solve", "model", model.Name, "mode", mode)(&err)

	if solver == nil {
		return Invocation{}, errors.New("invoke solver: solver is nil")
	}

	limit := time.Duration(0)
	if mode == ModeTimed {
		if timeLimit <= 0 {
			return Invocation{}, fmt.Errorf("invoke solver: timed mode needs a positive time limit, got %s", timeLimit)
		}
		limit = timeLimit
	}

	start := time.Now()
	outcome, err := solver.Solve(ctx, model, limit)
	elapsed := time.Since(start)
	if err != nil {
		return Invocation{}, fmt.Errorf("invoke solver: %s: %w", model.Name, err)
	}

	if outcome.HasIncumbent() && len(outcome.Values) != len(model.Vars) {
		return Invocation{}, fmt.Errorf(
			"invoke solver: %s: got %d values for %d variables",
			model.Name, len(outcome.Values), len(model.Vars),
		)
	}

	if outcome.HasIncumbent() {
		if v := model.Violations(outcome.Values, incumbentTolerance); len(v) > 0 {
			log.Warn("incumbent violates model constraints",
				"req_id", obs.RequestID(ctx),
				"model", model.Name,
				"violations", v,
			)
		}
	}

	return Invocation{Outcome: outcome, Elapsed: elapsed, TimeLimit: limit}, nil
}
