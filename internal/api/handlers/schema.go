package handlers

import (
	"net/http"
	"transfer-task-service/internal/api/dto"

	"github.com/labstack/echo/v4"
)

// Schema serves the JSON Schema of the solve request body.
func Schema(c echo.Context) error {
	return writeJSON(c, http.StatusOK, dto.SolveRequestSchema())
}
