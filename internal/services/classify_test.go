package services

import (
	"testing"
	"time"
	"transfer-task-service/internal/domain"
	"transfer-task-service/internal/milp"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func outcome(status milp.RawStatus, obj float64, values ...float64) milp.Outcome {
	return milp.Outcome{Status: status, Objective: &obj, Values: values}
}

func TestClassifyOutcome(t *testing.T) {
	limit := 10 * time.Second

	tests := []struct {
		name string
		inv  Invocation
		mode Mode
		want domain.Status
	}{
		{
			name: "no incumbent",
			inv:  Invocation{Outcome: milp.Outcome{Status: milp.RawInfeasible}},
			mode: ModeExact,
			want: domain.StatusInfeasible,
		},
		{
			name: "timed out without incumbent",
			inv:  Invocation{Outcome: milp.Outcome{Status: milp.RawTimedOut}, Elapsed: limit, TimeLimit: limit},
			mode: ModeTimed,
			want: domain.StatusInfeasible,
		},
		{
			name: "exact optimal ignores elapsed",
			inv:  Invocation{Outcome: outcome(milp.RawOptimal, 1), Elapsed: time.Hour},
			mode: ModeExact,
			want: domain.StatusOptimal,
		},
		{
			name: "exact incumbent without proof",
			inv:  Invocation{Outcome: outcome(milp.RawNotSolved, 1)},
			mode: ModeExact,
			want: domain.StatusFeasible,
		},
		{
			name: "timed optimal well within budget",
			inv:  Invocation{Outcome: outcome(milp.RawOptimal, 1), Elapsed: time.Second, TimeLimit: limit},
			mode: ModeTimed,
			want: domain.StatusOptimal,
		},
		{
			name: "timed optimal just under threshold",
			inv:  Invocation{Outcome: outcome(milp.RawOptimal, 1), Elapsed: 9799 * time.Millisecond, TimeLimit: limit},
			mode: ModeTimed,
			want: domain.StatusOptimal,
		},
		{
			name: "timed optimal at threshold",
			inv:  Invocation{Outcome: outcome(milp.RawOptimal, 1), Elapsed: 9800 * time.Millisecond, TimeLimit: limit},
			mode: ModeTimed,
			want: domain.StatusFeasible,
		},
		{
			name: "timed out with incumbent",
			inv:  Invocation{Outcome: outcome(milp.RawTimedOut, 1), Elapsed: limit, TimeLimit: limit},
			mode: ModeTimed,
			want: domain.StatusFeasible,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyOutcome(tt.inv, tt.mode))
		})
	}
}

func TestExtractAllocationsRoundsAndSkipsZeroFlow(t *testing.T) {
	p := scenarioC()
	tm := BuildTransportModel(ExtractSupplyDemand(p.Points, "desk"), BuildCostTable(p.Routes), 0)

	values := make([]float64, len(tm.Model.Vars))
	for _, pair := range tm.Pairs {
		switch pair.Supply + pair.Demand {
		case "AX":
			values[pair.Flow] = 7.9999999
		case "AY":
			values[pair.Flow] = 2.0000001
		case "BX":
			// Activated but idle.
			values[pair.Active] = 1
		case "BY":
			values[pair.Flow] = 5
		}
	}

	allocs := ExtractAllocations(tm, outcome(milp.RawOptimal, 31, values...))

	assert.Equal(t, []domain.RouteAllocation{
		{SupplyNode: "A", DemandNode: "X", Amount: 8, ObjectKey: "desk"},
		{SupplyNode: "A", DemandNode: "Y", Amount: 2, ObjectKey: "desk"},
		{SupplyNode: "B", DemandNode: "Y", Amount: 5, ObjectKey: "desk"},
	}, allocs)
}

func TestBuildCategoryResult(t *testing.T) {
	p := scenarioA()
	tm := BuildTransportModel(ExtractSupplyDemand(p.Points, "chair"), BuildCostTable(p.Routes), p.TaskPenalty)

	res := BuildCategoryResult(tm, Invocation{Outcome: outcome(milp.RawOptimal, 25.0000000004, 5, 1)}, ModeExact)

	assert.Equal(t, "chair", res.ObjectKey)
	assert.Equal(t, domain.StatusOptimal, res.Status)
	require.NotNil(t, res.TotalCost)
	assert.Equal(t, 25.0, *res.TotalCost)
	assert.Equal(t, 1, res.TaskCount)
	assert.Len(t, res.Routes, 1)

	infeasible := BuildCategoryResult(tm, Invocation{Outcome: milp.Outcome{Status: milp.RawInfeasible}}, ModeExact)
	assert.Equal(t, domain.InfeasibleResult("chair"), infeasible)
}

func TestEmptyResult(t *testing.T) {
	res := EmptyResult("chair")

	assert.Equal(t, domain.StatusOptimal, res.Status)
	require.NotNil(t, res.TotalCost)
	assert.Zero(t, *res.TotalCost)
	assert.Zero(t, res.TaskCount)
	assert.NotNil(t, res.Routes)
	assert.Empty(t, res.Routes)
}

func TestRoundCost(t *testing.T) {
	assert.Equal(t, 0.3, roundCost(0.1+0.2))
	assert.Equal(t, 1.234568, roundCost(1.2345678))
}
