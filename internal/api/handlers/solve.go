package handlers

import (
	"errors"
	"net/http"
	"transfer-task-service/internal/api/dto"
	"transfer-task-service/internal/domain"
	"transfer-task-service/internal/platform/obs"
	"transfer-task-service/internal/ports"
	"transfer-task-service/internal/services"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"
)

type SolveHandler struct {
	Solver ports.Solver
	// Budget of timed solves that do not name one.
	DefaultTimeLimitSeconds int
}

// SolveExact plans every requested category to proven optimality.
func (h *SolveHandler) SolveExact(c echo.Context) error {
	return h.solve(c, services.ModeExact)
}

// SolveTimed plans every requested category under the request's time budget.
func (h *SolveHandler) SolveTimed(c echo.Context) error {
	return h.solve(c, services.ModeTimed)
}

func (h *SolveHandler) solve(c echo.Context, mode services.Mode) error {
	req, err := dto.DecodeSolveRequest(c.Request().Body)
	if err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) {
			// Body limit exceeded while reading.
			return he
		}
		if errors.Is(err, dto.ErrMultipleObjects) {
			return writeError(c, http.StatusBadRequest, err.Error())
		}
		return writeError(c, http.StatusBadRequest, dto.ErrInvalidBody.Error())
	}

	if err := c.Validate(&req); err != nil {
		return writeError(c, http.StatusBadRequest, validationMessage(err))
	}
	if err := req.Check(); err != nil {
		return writeError(c, http.StatusBadRequest, err.Error())
	}

	defaultLimit := h.DefaultTimeLimitSeconds
	if defaultLimit <= 0 {
		defaultLimit = domain.DefaultTimeLimitSeconds
	}

	ctx := c.Request().Context()
	results, err := services.SolveCategories(ctx, req.ToProblem(defaultLimit), h.Solver, mode)
	if err != nil {
		if errors.Is(err, services.ErrNoSolvableCategories) {
			return writeError(c, http.StatusBadRequest, services.ErrNoSolvableCategories.Error())
		}
		log.Error("solve categories failed", "req_id", obs.RequestID(ctx), "mode", mode, "err", err)
		return writeError(c, http.StatusInternalServerError, "internal server error")
	}

	return writeJSON(c, http.StatusOK, dto.NewCategoryResults(results))
}
