package services

import (
	"math"
	"time"
	"transfer-task-service/internal/domain"
	"transfer-task-service/internal/milp"

	"github.com/shopspring/decimal"
)

// A raw Optimal reported at or after this share of the budget is not trusted:
// the solver may have hit the deadline while closing the gap.
const optimalBudgetFraction = 0.98

// Decimal places kept in reported costs.
const costPlaces = 6

// ClassifyOutcome maps a raw solver outcome to the user-facing status.
// In both modes an incumbent without proven optimality is Feasible, so exact
// mode can report Feasible as well as Optimal and Infeasible.
func ClassifyOutcome(inv Invocation, mode Mode) domain.Status {
	out := inv.Outcome
	if !out.HasIncumbent() {
		return domain.StatusInfeasible
	}

	if out.Status != milp.RawOptimal {
		return domain.StatusFeasible
	}

	if mode == ModeExact {
		return domain.StatusOptimal
	}

	threshold := time.Duration(float64(inv.TimeLimit) * optimalBudgetFraction)
	if inv.Elapsed < threshold {
		return domain.StatusOptimal
	}

	return domain.StatusFeasible
}

// ExtractAllocations lists the pairs carrying a positive flow in the outcome.
// Activated pairs with zero flow are left out.
func ExtractAllocations(tm *TransportModel, out milp.Outcome) []domain.RouteAllocation {
	allocs := make([]domain.RouteAllocation, 0)
	for _, p := range tm.Pairs {
		amount := math.Round(out.Value(p.Flow))
		if amount <= 0 {
			continue
		}
		allocs = append(allocs, domain.RouteAllocation{
			SupplyNode: p.Supply,
			DemandNode: p.Demand,
			Amount:     amount,
			ObjectKey:  tm.CategoryKey,
		})
	}
	return allocs
}

// BuildCategoryResult classifies an invocation and assembles the category's result.
func BuildCategoryResult(tm *TransportModel, inv Invocation, mode Mode) domain.CategoryResult {
	status := ClassifyOutcome(inv, mode)
	if status == domain.StatusInfeasible {
		return domain.InfeasibleResult(tm.CategoryKey)
	}

	routes := ExtractAllocations(tm, inv.Outcome)
	cost := roundCost(*inv.Outcome.Objective)

	return domain.CategoryResult{
		ObjectKey: tm.CategoryKey,
		Status:    status,
		TotalCost: &cost,
		TaskCount: len(routes),
		Routes:    routes,
	}
}

// EmptyResult is the trivially optimal plan of a category with nothing to move.
func EmptyResult(categoryKey string) domain.CategoryResult {
	zero := 0.0
	return domain.CategoryResult{
		ObjectKey: categoryKey,
		Status:    domain.StatusOptimal,
		TotalCost: &zero,
		TaskCount: 0,
		Routes:    []domain.RouteAllocation{},
	}
}

func roundCost(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(costPlaces).InexactFloat64()
}
