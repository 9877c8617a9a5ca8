package dto

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"transfer-task-service/internal/domain"
)

var (
	ErrInvalidBody     = errors.New("invalid json body")
	ErrMultipleObjects = errors.New("body must contain only one JSON object")
)

// Amounts are capped so category totals stay far from int overflow.
type QuantityChangeRequest struct {
	FromAmount int `json:"fromAmount" validate:"min=0,max=1000000000" jsonschema:"minimum=0,maximum=1000000000"`
	ToAmount   int `json:"toAmount" validate:"min=0,max=1000000000" jsonschema:"minimum=0,maximum=1000000000"`
}

type ObjectCategoryRequest struct {
	Key  string `json:"key" validate:"required"`
	Name string `json:"name"`
}

type PointRequest struct {
	Key      string                           `json:"key" validate:"required"`
	Name     string                           `json:"name"`
	GroupKey string                           `json:"groupKey"`
	X        float64                          `json:"x"`
	Y        float64                          `json:"y"`
	Objects  map[string]QuantityChangeRequest `json:"objects" validate:"dive"`
}

type RouteRequest struct {
	Key      string   `json:"key" validate:"required"`
	From     string   `json:"from" validate:"required"`
	To       string   `json:"to" validate:"required"`
	Distance float64  `json:"distance" validate:"min=0" jsonschema:"minimum=0"`
	NodeKeys []string `json:"nodeKeys"`
}

// Body of both solve endpoints.
type SolveRequest struct {
	ObjectCategories map[string]ObjectCategoryRequest `json:"objectCategories" validate:"dive"`
	Points           map[string]PointRequest          `json:"points" validate:"dive"`
	Routes           map[string]RouteRequest          `json:"routes" validate:"dive"`
	TaskPenalty      int                              `json:"taskPenalty" validate:"min=0" jsonschema:"minimum=0"`
	// Empty selects every category whose supply matches its demand.
	TargetObjectCategoryKeys []string `json:"targetObjectCategoryKeys,omitempty"`
	// Only read by the timed endpoint.
	TimeLimitSeconds int `json:"timeLimitSeconds,omitempty" validate:"omitempty,min=1,max=3600" jsonschema:"minimum=1,maximum=3600,default=60"`
}

// DecodeSolveRequest reads exactly one JSON object from r.
// Unknown fields are tolerated so front-ends may send richer documents.
func DecodeSolveRequest(r io.Reader) (SolveRequest, error) {
	var req SolveRequest

	dec := json.NewDecoder(r)
	if err := dec.Decode(&req); err != nil {
		return SolveRequest{}, fmt.Errorf("%w: %w", ErrInvalidBody, err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return SolveRequest{}, ErrMultipleObjects
	}

	return req, nil
}

// Check validates the cross references between the request's collections.
func (r *SolveRequest) Check() error {
	for k, c := range r.ObjectCategories {
		if c.Key != k {
			return fmt.Errorf("objectCategories[%q]: key %q does not match its map key", k, c.Key)
		}
	}

	for k, p := range r.Points {
		if p.Key != k {
			return fmt.Errorf("points[%q]: key %q does not match its map key", k, p.Key)
		}
	}

	for k, rt := range r.Routes {
		if _, ok := r.Points[rt.From]; !ok {
			return fmt.Errorf("routes[%q]: unknown from point %q", k, rt.From)
		}
		if _, ok := r.Points[rt.To]; !ok {
			return fmt.Errorf("routes[%q]: unknown to point %q", k, rt.To)
		}
	}

	seen := make(map[string]bool, len(r.TargetObjectCategoryKeys))
	for _, key := range r.TargetObjectCategoryKeys {
		if seen[key] {
			return fmt.Errorf("targetObjectCategoryKeys: duplicate key %q", key)
		}
		seen[key] = true

		if _, ok := r.ObjectCategories[key]; !ok {
			return fmt.Errorf("targetObjectCategoryKeys: unknown category %q", key)
		}
	}

	return nil
}

// ToProblem converts a checked request into the domain problem.
// A missing time limit takes defaultTimeLimit.
func (r *SolveRequest) ToProblem(defaultTimeLimit int) *domain.ProblemDescription {
	p := &domain.ProblemDescription{
		ObjectCategories:         make(map[string]domain.ObjectCategory, len(r.ObjectCategories)),
		Points:                   make(map[string]domain.Point, len(r.Points)),
		Routes:                   make(map[string]domain.Route, len(r.Routes)),
		TaskPenalty:              r.TaskPenalty,
		TargetObjectCategoryKeys: append([]string(nil), r.TargetObjectCategoryKeys...),
		TimeLimitSeconds:         r.TimeLimitSeconds,
	}
	if p.TimeLimitSeconds == 0 {
		p.TimeLimitSeconds = defaultTimeLimit
	}

	for k, c := range r.ObjectCategories {
		p.ObjectCategories[k] = domain.ObjectCategory{Key: c.Key, Name: c.Name}
	}

	for k, pt := range r.Points {
		objects := make(map[string]domain.QuantityChange, len(pt.Objects))
		for cat, qc := range pt.Objects {
			objects[cat] = domain.QuantityChange{FromAmount: qc.FromAmount, ToAmount: qc.ToAmount}
		}
		p.Points[k] = domain.Point{
			Key:      pt.Key,
			Name:     pt.Name,
			GroupKey: pt.GroupKey,
			X:        pt.X,
			Y:        pt.Y,
			Objects:  objects,
		}
	}

	for k, rt := range r.Routes {
		p.Routes[k] = domain.Route{
			Key:      rt.Key,
			FromNode: rt.From,
			ToNode:   rt.To,
			Distance: rt.Distance,
			NodeKeys: append([]string(nil), rt.NodeKeys...),
		}
	}

	return p
}
