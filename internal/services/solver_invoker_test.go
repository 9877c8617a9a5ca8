package services

import (
	"context"
	"errors"
	"testing"
	"time"
	"transfer-task-service/internal/adapters/solver"
	"transfer-task-service/internal/milp"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioAModel() *TransportModel {
	p := scenarioA()
	return BuildTransportModel(ExtractSupplyDemand(p.Points, "chair"), BuildCostTable(p.Routes), p.TaskPenalty)
}

func TestInvokeSolverExactIgnoresLimit(t *testing.T) {
	mock := solver.NewMockSolver(solver.MockReply{
		Status: milp.RawOptimal,
		Values: map[string]float64{"flow_0_0": 5, "active_0_0": 1},
	})
	tm := scenarioAModel()

	inv, err := InvokeSolver(context.Background(), mock, tm.Model, ModeExact, time.Minute)

	require.NoError(t, err)
	require.Len(t, mock.Calls(), 1)
	assert.Zero(t, mock.Calls()[0].TimeLimit)
	assert.Zero(t, inv.TimeLimit)
	assert.Equal(t, milp.RawOptimal, inv.Outcome.Status)
	require.True(t, inv.Outcome.HasIncumbent())
	assert.Equal(t, 25.0, *inv.Outcome.Objective)
}

func TestInvokeSolverTimedPassesLimitAndMeasuresElapsed(t *testing.T) {
	mock := solver.NewMockSolver(solver.MockReply{Status: milp.RawInfeasible, Delay: 20 * time.Millisecond})
	tm := scenarioAModel()

	inv, err := InvokeSolver(context.Background(), mock, tm.Model, ModeTimed, 3*time.Second)

	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, mock.Calls()[0].TimeLimit)
	assert.Equal(t, 3*time.Second, inv.TimeLimit)
	assert.GreaterOrEqual(t, inv.Elapsed, 20*time.Millisecond)
}

func TestInvokeSolverErrors(t *testing.T) {
	tm := scenarioAModel()
	ctx := context.Background()

	_, err := InvokeSolver(ctx, nil, tm.Model, ModeExact, 0)
	assert.Error(t, err)

	_, err = InvokeSolver(ctx, solver.NewMockSolver(solver.MockReply{}), tm.Model, ModeTimed, 0)
	assert.ErrorContains(t, err, "positive time limit")

	crash := errors.New("solver crashed")
	_, err = InvokeSolver(ctx, solver.NewMockSolver(solver.MockReply{Err: crash}), tm.Model, ModeExact, 0)
	assert.ErrorIs(t, err, crash)
}

// shortSolver reports an incumbent missing variable values.
type shortSolver struct{}

func (shortSolver) Solve(context.Context, *milp.Model, time.Duration) (milp.Outcome, error) {
	obj := 1.0
	return milp.Outcome{Status: milp.RawOptimal, Objective: &obj, Values: []float64{1}}, nil
}

func TestInvokeSolverRejectsShortValues(t *testing.T) {
	_, err := InvokeSolver(context.Background(), shortSolver{}, scenarioAModel().Model, ModeExact, 0)
	assert.ErrorContains(t, err, "got 1 values for 2 variables")
}

func TestInvokeSolverWarnsOnViolatingIncumbent(t *testing.T) {
	logs := captureLogs(t)
	// Flow without activation breaks the link row.
	mock := solver.NewMockSolver(solver.MockReply{
		Status: milp.RawOptimal,
		Values: map[string]float64{"flow_0_0": 5, "active_0_0": 0},
	})

	_, err := InvokeSolver(context.Background(), mock, scenarioAModel().Model, ModeExact, 0)

	require.NoError(t, err)
	assert.Contains(t, logs.String(), "incumbent violates model constraints")
	assert.Contains(t, logs.String(), "link_0")
}
