package solver

import (
	"context"
	"fmt"
	"sync"
	"time"
	"transfer-task-service/internal/milp"
)

// Scripted reply of a MockSolver: solution values by variable name.
type MockReply struct {
	Status milp.RawStatus
	Values map[string]float64
	// Objective overrides the value computed from Values.
	Objective *float64
	// Delay is slept before returning, to exercise timing rules.
	Delay time.Duration
	Err   error
}

// One recorded Solve call.
type MockCall struct {
	Model     *milp.Model
	TimeLimit time.Duration
}

// MockSolver replays scripted replies in order; the last reply is repeated
// once the script runs out.
type MockSolver struct {
	mu      sync.Mutex
	replies []MockReply
	calls   []MockCall
}

func NewMockSolver(replies ...MockReply) *MockSolver {
	return &MockSolver{replies: replies}
}

func (s *MockSolver) Solve(ctx context.Context, model *milp.Model, timeLimit time.Duration) (milp.Outcome, error) {
	s.mu.Lock()
	n := len(s.calls)
	s.calls = append(s.calls, MockCall{Model: model, TimeLimit: timeLimit})
	if len(s.replies) == 0 {
		s.mu.Unlock()
		return milp.Outcome{}, fmt.Errorf("mock solver: no reply scripted for call %d", n+1)
	}
	r := s.replies[min(n, len(s.replies)-1)]
	s.mu.Unlock()

	if r.Delay > 0 {
		time.Sleep(r.Delay)
	}
	if r.Err != nil {
		return milp.Outcome{}, r.Err
	}

	out := milp.Outcome{Status: r.Status}
	if r.Values == nil && r.Objective == nil {
		return out, nil
	}

	idx := model.VarIndex()
	values := make([]float64, len(model.Vars))
	for name, v := range r.Values {
		id, ok := idx[name]
		if !ok {
			return milp.Outcome{}, fmt.Errorf("mock solver: unknown variable %q in %s", name, model.Name)
		}
		values[id] = v
	}

	obj := 0.0
	if r.Objective != nil {
		obj = *r.Objective
	} else {
		var err error
		if obj, err = model.ObjectiveValue(values); err != nil {
			return milp.Outcome{}, fmt.Errorf("mock solver: %w", err)
		}
	}

	out.Objective = &obj
	out.Values = values
	return out, nil
}

// Calls returns a copy of the recorded calls.
func (s *MockSolver) Calls() []MockCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]MockCall(nil), s.calls...)
}
