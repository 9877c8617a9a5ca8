package domain

// Simplified, user-facing outcome of solving one category.
type Status string

const (
	StatusOptimal    Status = "Optimal"
	StatusFeasible   Status = "Feasible"
	StatusInfeasible Status = "Infeasible"
)

// A single transport task: move Amount units of ObjectKey from SupplyNode to DemandNode.
type RouteAllocation struct {
	SupplyNode string
	DemandNode string
	Amount     float64
	ObjectKey  string
}

// Represents the plan computed for one object category.
// TotalCost is nil when Status is Infeasible.
type CategoryResult struct {
	ObjectKey string
	Status    Status
	TotalCost *float64
	TaskCount int
	Routes    []RouteAllocation
}

// InfeasibleResult builds the result reported when no feasible plan exists.
func InfeasibleResult(objectKey string) CategoryResult {
	return CategoryResult{
		ObjectKey: objectKey,
		Status:    StatusInfeasible,
		TotalCost: nil,
		TaskCount: 0,
		Routes:    []RouteAllocation{},
	}
}
