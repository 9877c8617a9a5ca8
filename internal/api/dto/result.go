package dto

import "transfer-task-service/internal/domain"

type RouteAllocationResponse struct {
	SupplyNode string  `json:"supplyNode"`
	DemandNode string  `json:"demandNode"`
	Amount     float64 `json:"amount"`
	ObjectKey  string  `json:"objectKey"`
}

// TotalCost is null for infeasible categories.
type CategoryResultResponse struct {
	ObjectKey string                    `json:"objectKey"`
	Status    string                    `json:"status"`
	TotalCost *float64                  `json:"totalCost"`
	TaskCount int                       `json:"taskCount"`
	Routes    []RouteAllocationResponse `json:"routes"`
}

func NewCategoryResults(results []domain.CategoryResult) []CategoryResultResponse {
	res := make([]CategoryResultResponse, 0, len(results))
	for _, r := range results {
		routes := make([]RouteAllocationResponse, 0, len(r.Routes))
		for _, a := range r.Routes {
			routes = append(routes, RouteAllocationResponse{
				SupplyNode: a.SupplyNode,
				DemandNode: a.DemandNode,
				Amount:     a.Amount,
				ObjectKey:  a.ObjectKey,
			})
		}

		res = append(res, CategoryResultResponse{
			ObjectKey: r.ObjectKey,
			Status:    string(r.Status),
			TotalCost: r.TotalCost,
			TaskCount: r.TaskCount,
			Routes:    routes,
		})
	}
	return res
}
