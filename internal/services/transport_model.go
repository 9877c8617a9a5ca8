package services

import (
	"fmt"
	"transfer-task-service/internal/milp"
)

// One supply/demand pair of a transport model together with its variables.
type FlowPair struct {
	Supply   string
	Demand   string
	Cost     float64
	Declared bool
	Flow     milp.VarID
	Active   milp.VarID
}

// The MILP for one category plus the bookkeeping needed to read a solution back.
type TransportModel struct {
	CategoryKey string
	Model       *milp.Model
	Pairs       []FlowPair
	BigM        int
}

// BuildTransportModel formulates the fixed-charge transportation problem for one category.
//
// Every supply/demand pair gets an integer flow and a binary activation
// variable. Supplies may be partially used, demands must be met exactly, and
// flow on a pair forces its activation through flow <= M*active, where M is
// the total supply (no single flow can exceed it). Each activation costs
// taskPenalty once, independent of volume.
//
// When there is no supply or no demand the model has no variables and no
// constraints.
func BuildTransportModel(sd SupplyDemand, costs CostTable, taskPenalty int) *TransportModel {
	tm := &TransportModel{
		CategoryKey: sd.CategoryKey,
		Model:       milp.NewModel("transport_" + sd.CategoryKey),
		BigM:        sd.TotalSupply(),
	}

	if sd.Trivial() {
		return tm
	}

	m := tm.Model
	bySupply := make([][]milp.Term, len(sd.SupplyKeys))
	byDemand := make([][]milp.Term, len(sd.DemandKeys))

	for i, s := range sd.SupplyKeys {
		for j, d := range sd.DemandKeys {
			cost := costs.Cost(s, d)
			_, declared := costs.Lookup(s, d)

			flow := m.AddVar(milp.Var{
				Name:      fmt.Sprintf("flow_%d_%d", i, j),
				Kind:      milp.Integer,
				Lower:     0,
				Upper:     -1,
				Objective: cost,
			})
			active := m.AddVar(milp.Var{
				Name:      fmt.Sprintf("active_%d_%d", i, j),
				Kind:      milp.Binary,
				Objective: float64(taskPenalty),
			})

			tm.Pairs = append(tm.Pairs, FlowPair{
				Supply:   s,
				Demand:   d,
				Cost:     cost,
				Declared: declared,
				Flow:     flow,
				Active:   active,
			})

			bySupply[i] = append(bySupply[i], milp.Term{Var: flow, Coef: 1})
			byDemand[j] = append(byDemand[j], milp.Term{Var: flow, Coef: 1})
		}
	}

	for i, s := range sd.SupplyKeys {
		m.AddConstraint(fmt.Sprintf("supply_%d", i), bySupply[i], milp.LessOrEqual, float64(sd.Supply[s]))
	}

	for j, d := range sd.DemandKeys {
		m.AddConstraint(fmt.Sprintf("demand_%d", j), byDemand[j], milp.Equal, float64(sd.Demand[d]))
	}

	bigM := float64(tm.BigM)
	for k, p := range tm.Pairs {
		m.AddConstraint(
			fmt.Sprintf("link_%d", k),
			[]milp.Term{{Var: p.Flow, Coef: 1}, {Var: p.Active, Coef: -bigM}},
			milp.LessOrEqual,
			0,
		)
	}

	return tm
}
