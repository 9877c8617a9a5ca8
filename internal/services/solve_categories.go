package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"
	"transfer-task-service/internal/domain"
	"transfer-task-service/internal/platform/obs"
	"transfer-task-service/internal/ports"

	"github.com/charmbracelet/log"
)

// SolveCategories plans every target category of the problem, in request order.
//
// Categories are solved one after another and share nothing but the
// read-only cost table; infeasibility in one category never affects another.
// A solver fault aborts the whole request.
func SolveCategories(
	ctx context.Context,
	problem *domain.ProblemDescription,
	solver ports.Solver,
	mode Mode,
) (_ []domain.CategoryResult, err error) {
	defer obs.Time(ctx, "services.SolveCategories", "mode", mode)(&err)

	if problem == nil {
		return nil, errors.New("solve categories: problem is nil")
	}

	categoryKeys, err := ResolveTargetCategories(problem)
	if err != nil {
		return nil, fmt.Errorf("solve categories: %w", err)
	}

	timeLimit := time.Duration(0)
	if mode == ModeTimed {
		secs := problem.TimeLimitSeconds
		if secs <= 0 {
			secs = domain.DefaultTimeLimitSeconds
		}
		timeLimit = time.Duration(secs) * time.Second
	}

	costs := BuildCostTable(problem.Routes)
	log.Debug("cost table built", "req_id", obs.RequestID(ctx), "pairs", costs.Len())

	results := make([]domain.CategoryResult, 0, len(categoryKeys))
	for _, key := range categoryKeys {
		res, err := solveCategory(ctx, problem, key, costs, solver, mode, timeLimit)
		if err != nil {
			return nil, fmt.Errorf("solve categories: category %q: %w", key, err)
		}
		results = append(results, res)
	}

	return results, nil
}

func solveCategory(
	ctx context.Context,
	problem *domain.ProblemDescription,
	categoryKey string,
	costs CostTable,
	solver ports.Solver,
	mode Mode,
	timeLimit time.Duration,
) (domain.CategoryResult, error) {
	sd := ExtractSupplyDemand(problem.Points, categoryKey)

	log.Debug("extracted supply and demand",
		"req_id", obs.RequestID(ctx),
		"category", categoryKey,
		"supply", sd.Supply,
		"demand", sd.Demand,
	)

	if sd.Trivial() {
		return EmptyResult(categoryKey), nil
	}

	// Demand must be met exactly, so a shortfall can never be feasible.
	if sd.TotalSupply() < sd.TotalDemand() {
		log.Info("category infeasible: demand exceeds supply",
			"req_id", obs.RequestID(ctx),
			"category", categoryKey,
			"supply", sd.TotalSupply(),
			"demand", sd.TotalDemand(),
		)
		return domain.InfeasibleResult(categoryKey), nil
	}

	tm := BuildTransportModel(sd, costs, problem.TaskPenalty)

	inv, err := InvokeSolver(ctx, solver, tm.Model, mode, timeLimit)
	if err != nil {
		return domain.CategoryResult{}, err
	}

	res := BuildCategoryResult(tm, inv, mode)
	warnUndeclaredAllocations(ctx, tm, inv)

	log.Info("category solved",
		"req_id", obs.RequestID(ctx),
		"category", categoryKey,
		"raw_status", inv.Outcome.Status,
		"status", res.Status,
		"tasks", res.TaskCount,
		"elapsed_ms", inv.Elapsed.Milliseconds(),
	)

	return res, nil
}

// warnUndeclaredAllocations flags flow the solver sent over pairs with no
// declared route. It only happens when no declared route could serve.
func warnUndeclaredAllocations(ctx context.Context, tm *TransportModel, inv Invocation) {
	if !inv.Outcome.HasIncumbent() {
		return
	}
	for _, p := range tm.Pairs {
		if p.Declared || math.Round(inv.Outcome.Value(p.Flow)) <= 0 {
			continue
		}
		log.Warn("allocation uses undeclared route",
			"req_id", obs.RequestID(ctx),
			"category", tm.CategoryKey,
			"from", p.Supply,
			"to", p.Demand,
			"cost", p.Cost,
		)
	}
}
