package services

import (
	"bytes"
	"testing"
	"transfer-task-service/internal/domain"

	"github.com/charmbracelet/log"
)

// change builds a point entry for one category.
func change(from, to int) domain.QuantityChange {
	return domain.QuantityChange{FromAmount: from, ToAmount: to}
}

// deltaPoint builds a point whose only category entry has the given delta.
func deltaPoint(key, category string, delta int) domain.Point {
	qc := change(0, delta)
	if delta < 0 {
		qc = change(-delta, 0)
	}
	return domain.Point{
		Key:     key,
		Name:    key,
		Objects: map[string]domain.QuantityChange{category: qc},
	}
}

func route(key, from, to string, distance float64) domain.Route {
	return domain.Route{Key: key, FromNode: from, ToNode: to, Distance: distance}
}

// scenarioA: one supply S (5), one demand D (5), S->D costs 3, penalty 10.
func scenarioA() *domain.ProblemDescription {
	return &domain.ProblemDescription{
		ObjectCategories: map[string]domain.ObjectCategory{"chair": {Key: "chair", Name: "Chair"}},
		Points: map[string]domain.Point{
			"S": deltaPoint("S", "chair", 5),
			"D": deltaPoint("D", "chair", -5),
		},
		Routes:                   map[string]domain.Route{"r1": route("r1", "S", "D", 3)},
		TaskPenalty:              10,
		TargetObjectCategoryKeys: []string{"chair"},
		TimeLimitSeconds:         domain.DefaultTimeLimitSeconds,
	}
}

// scenarioB: total supply 3 against total demand 5.
func scenarioB() *domain.ProblemDescription {
	return &domain.ProblemDescription{
		ObjectCategories: map[string]domain.ObjectCategory{"chair": {Key: "chair", Name: "Chair"}},
		Points: map[string]domain.Point{
			"S": deltaPoint("S", "chair", 3),
			"D": deltaPoint("D", "chair", -5),
		},
		Routes:                   map[string]domain.Route{"r1": route("r1", "S", "D", 1)},
		TaskPenalty:              4,
		TargetObjectCategoryKeys: []string{"chair"},
	}
}

// scenarioC: supplies A=10, B=5 and demands X=8, Y=7 with no task penalty.
func scenarioC() *domain.ProblemDescription {
	return &domain.ProblemDescription{
		ObjectCategories: map[string]domain.ObjectCategory{"desk": {Key: "desk", Name: "Desk"}},
		Points: map[string]domain.Point{
			"A": deltaPoint("A", "desk", 10),
			"B": deltaPoint("B", "desk", 5),
			"X": deltaPoint("X", "desk", -8),
			"Y": deltaPoint("Y", "desk", -7),
		},
		Routes: map[string]domain.Route{
			"ax": route("ax", "A", "X", 2),
			"ay": route("ay", "A", "Y", 5),
			"bx": route("bx", "B", "X", 4),
			"by": route("by", "B", "Y", 1),
		},
		TaskPenalty:              0,
		TargetObjectCategoryKeys: []string{"desk"},
	}
}

// captureLogs routes the default logger into a buffer for the test's duration.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Default()
	log.SetDefault(log.New(&buf))
	t.Cleanup(func() { log.SetDefault(prev) })
	return &buf
}
