package services

import (
	"testing"
	"transfer-task-service/internal/milp"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTransportModelSinglePair(t *testing.T) {
	p := scenarioA()
	sd := ExtractSupplyDemand(p.Points, "chair")

	tm := BuildTransportModel(sd, BuildCostTable(p.Routes), p.TaskPenalty)

	m := tm.Model
	assert.Equal(t, "transport_chair", m.Name)
	assert.Equal(t, 5, tm.BigM)
	require.Len(t, tm.Pairs, 1)
	require.Len(t, m.Vars, 2)
	require.Len(t, m.Constraints, 3)

	pair := tm.Pairs[0]
	assert.Equal(t, "S", pair.Supply)
	assert.Equal(t, "D", pair.Demand)
	assert.True(t, pair.Declared)

	flow := m.Vars[pair.Flow]
	assert.Equal(t, milp.Integer, flow.Kind)
	assert.True(t, flow.Unbounded())
	assert.Equal(t, 3.0, flow.Objective)

	active := m.Vars[pair.Active]
	assert.Equal(t, milp.Binary, active.Kind)
	assert.Equal(t, 10.0, active.Objective)

	supply, demand, link := m.Constraints[0], m.Constraints[1], m.Constraints[2]
	assert.Equal(t, milp.LessOrEqual, supply.Sense)
	assert.Equal(t, 5.0, supply.RHS)
	assert.Equal(t, milp.Equal, demand.Sense)
	assert.Equal(t, 5.0, demand.RHS)
	assert.Equal(t, milp.LessOrEqual, link.Sense)
	assert.Zero(t, link.RHS)
	assert.Equal(t, []milp.Term{{Var: pair.Flow, Coef: 1}, {Var: pair.Active, Coef: -5}}, link.Terms)

	// Sending everything along the single route costs 5*3 + 10.
	obj, err := m.ObjectiveValue([]float64{5, 1})
	require.NoError(t, err)
	assert.Equal(t, 25.0, obj)
	assert.Empty(t, m.Violations([]float64{5, 1}, 1e-9))
	assert.NotEmpty(t, m.Violations([]float64{5, 0}, 1e-9), "flow without activation must violate the link")
}

func TestBuildTransportModelFullBipartite(t *testing.T) {
	p := scenarioC()
	sd := ExtractSupplyDemand(p.Points, "desk")

	tm := BuildTransportModel(sd, BuildCostTable(p.Routes), p.TaskPenalty)

	// 2 supplies x 2 demands: 4 flows, 4 activations, 2+2 balance rows, 4 links.
	assert.Len(t, tm.Model.Vars, 8)
	assert.Len(t, tm.Model.Constraints, 8)
	assert.Equal(t, 15, tm.BigM)

	var got [][2]string
	costs := map[[2]string]float64{}
	for _, pair := range tm.Pairs {
		k := [2]string{pair.Supply, pair.Demand}
		got = append(got, k)
		costs[k] = tm.Model.Vars[pair.Flow].Objective
	}
	assert.Equal(t, [][2]string{{"A", "X"}, {"A", "Y"}, {"B", "X"}, {"B", "Y"}}, got)
	assert.Equal(t, 2.0, costs[[2]string{"A", "X"}])
	assert.Equal(t, 1.0, costs[[2]string{"B", "Y"}])
}

func TestBuildTransportModelUndeclaredPairUsesFallback(t *testing.T) {
	p := scenarioA()
	p.Routes = nil
	sd := ExtractSupplyDemand(p.Points, "chair")

	tm := BuildTransportModel(sd, BuildCostTable(p.Routes), p.TaskPenalty)

	require.Len(t, tm.Pairs, 1)
	assert.False(t, tm.Pairs[0].Declared)
	assert.Equal(t, FallbackCost, tm.Model.Vars[tm.Pairs[0].Flow].Objective)
}

func TestBuildTransportModelTrivial(t *testing.T) {
	p := scenarioA()
	delete(p.Points, "D")
	sd := ExtractSupplyDemand(p.Points, "chair")

	tm := BuildTransportModel(sd, BuildCostTable(p.Routes), p.TaskPenalty)

	assert.True(t, tm.Model.Empty())
	assert.Empty(t, tm.Model.Constraints)
	assert.Empty(t, tm.Pairs)
}
