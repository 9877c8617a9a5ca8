package services

import (
	"errors"
	"transfer-task-service/internal/domain"
)

var ErrNoSolvableCategories = errors.New("no solvable object categories")

// ResolveTargetCategories returns the categories a request should solve.
//
// Explicit target keys are used as given. With none, every category whose
// positive total supply exactly matches its total demand is selected, in key
// order.
func ResolveTargetCategories(problem *domain.ProblemDescription) ([]string, error) {
	if len(problem.TargetObjectCategoryKeys) > 0 {
		return problem.TargetObjectCategoryKeys, nil
	}

	keys := make([]string, 0)
	for _, key := range problem.SortedCategoryKeys() {
		supply, demand := problem.CategoryTotals(key)
		if supply > 0 && supply == demand {
			keys = append(keys, key)
		}
	}

	if len(keys) == 0 {
		return nil, ErrNoSolvableCategories
	}

	return keys, nil
}
