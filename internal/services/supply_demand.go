package services

import (
	"sort"
	"transfer-task-service/internal/domain"
)

// Supply and demand of one object category, keyed by point.
// Keys are kept sorted so the model built from them is deterministic.
type SupplyDemand struct {
	CategoryKey string
	Supply      map[string]int
	Demand      map[string]int
	SupplyKeys  []string
	DemandKeys  []string
}

// ExtractSupplyDemand classifies every point for one category.
//
// An inventory increase (toAmount > fromAmount) is surplus that can be moved
// out, so the point is a supply node. A decrease is a shortfall, so the point
// is a demand node. Points with a zero delta or no entry do not participate.
func ExtractSupplyDemand(points map[string]domain.Point, categoryKey string) SupplyDemand {
	sd := SupplyDemand{
		CategoryKey: categoryKey,
		Supply:      make(map[string]int),
		Demand:      make(map[string]int),
	}

	for key, p := range points {
		qc, ok := p.Objects[categoryKey]
		if !ok {
			continue
		}

		delta := qc.Delta()
		switch {
		case delta > 0:
			sd.Supply[key] = delta
		case delta < 0:
			sd.Demand[key] = -delta
		}
	}

	sd.SupplyKeys = sortedKeys(sd.Supply)
	sd.DemandKeys = sortedKeys(sd.Demand)

	return sd
}

func (sd SupplyDemand) TotalSupply() int { return sum(sd.Supply) }

func (sd SupplyDemand) TotalDemand() int { return sum(sd.Demand) }

// Trivial reports whether there is nothing to move: no supply or no demand.
func (sd SupplyDemand) Trivial() bool {
	return len(sd.Supply) == 0 || len(sd.Demand) == 0
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sum(m map[string]int) int {
	total := 0
	for _, v := range m {
		total += v
	}
	return total
}
