package services

import "transfer-task-service/internal/domain"

// Cost charged for a pair with no declared route. Large enough that the
// solver avoids it whenever a declared route can serve, but finite so the
// model stays well-posed on a disconnected route graph.
const FallbackCost = 1e9

type routeKey struct {
	from string
	to   string
}

// Per-unit transport cost between ordered point pairs.
type CostTable struct {
	costs map[routeKey]float64
}

// BuildCostTable indexes routes by their ordered endpoints.
// Reverse directions are not synthesized. When several routes declare the
// same ordered pair, the cheapest one is kept.
func BuildCostTable(routes map[string]domain.Route) CostTable {
	costs := make(map[routeKey]float64, len(routes))
	for _, r := range routes {
		k := routeKey{from: r.FromNode, to: r.ToNode}
		if existing, ok := costs[k]; ok && existing <= r.Distance {
			continue
		}
		costs[k] = r.Distance
	}

	return CostTable{costs: costs}
}

// Lookup returns the declared distance and whether the pair was declared.
func (t CostTable) Lookup(from, to string) (float64, bool) {
	c, ok := t.costs[routeKey{from: from, to: to}]
	return c, ok
}

// Cost returns the declared distance, or FallbackCost for an undeclared pair.
func (t CostTable) Cost(from, to string) float64 {
	if c, ok := t.Lookup(from, to); ok {
		return c
	}
	return FallbackCost
}

func (t CostTable) Len() int { return len(t.costs) }
