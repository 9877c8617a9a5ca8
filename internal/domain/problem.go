package domain

import "sort"

// Default solver budget when a request does not specify one.
const DefaultTimeLimitSeconds = 60

// A kind of physical object whose quantity is tracked per point.
type ObjectCategory struct {
	Key  string
	Name string
}

// Observed inventory change of one category at one point.
// Amounts are non-negative; the delta may be any integer.
type QuantityChange struct {
	FromAmount int
	ToAmount   int
}

// Delta returns the net change. Positive means the point gained inventory.
func (q QuantityChange) Delta() int { return q.ToAmount - q.FromAmount }

// Represents a location taking part in the redistribution.
// Objects need not cover every category; an absent entry means no participation.
type Point struct {
	Key      string
	Name     string
	GroupKey string
	X        float64
	Y        float64
	Objects  map[string]QuantityChange
}

// Represents a declared, directed candidate route between two points.
// Distance is the per-unit transport cost. NodeKeys only describes the
// drawn path shape and carries no optimization weight.
type Route struct {
	Key      string
	FromNode string
	ToNode   string
	Distance float64
	NodeKeys []string
}

// The validated input for one planning request.
type ProblemDescription struct {
	ObjectCategories         map[string]ObjectCategory
	Points                   map[string]Point
	Routes                   map[string]Route
	TaskPenalty              int
	TargetObjectCategoryKeys []string
	TimeLimitSeconds         int
}

// CategoryTotals sums positive and negative deltas of one category across all points.
func (p *ProblemDescription) CategoryTotals(categoryKey string) (supply, demand int) {
	for _, pt := range p.Points {
		qc, ok := pt.Objects[categoryKey]
		if !ok {
			continue
		}
		switch d := qc.Delta(); {
		case d > 0:
			supply += d
		case d < 0:
			demand += -d
		}
	}
	return supply, demand
}

// SortedCategoryKeys returns the keys of ObjectCategories in ascending order.
func (p *ProblemDescription) SortedCategoryKeys() []string {
	keys := make([]string, 0, len(p.ObjectCategories))
	for k := range p.ObjectCategories {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
