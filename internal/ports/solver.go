package ports

import (
	"context"
	"time"
	"transfer-task-service/internal/milp"
)

// Contract for an external MILP solving capability.
type Solver interface {
	// Solve the model. A zero timeLimit means no deadline; otherwise the solver
	// may stop at the deadline and return its best incumbent.
	// Infeasibility is reported through the outcome, never as an error.
	Solve(ctx context.Context, model *milp.Model, timeLimit time.Duration) (milp.Outcome, error)
}
