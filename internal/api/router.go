package api

import (
	"net/http"
	"transfer-task-service/internal/api/handlers"
	"transfer-task-service/internal/ports"

	"github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Largest accepted request body.
const bodyLimit = "8M"

type Options struct {
	AllowedOrigins          []string
	DefaultTimeLimitSeconds int
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(solver ports.Solver, opts Options) http.Handler {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = &requestValidator{validator: validator.New()}
	e.HTTPErrorHandler = errorHandler

	e.Use(middleware.Recover())
	e.Use(requestIDMiddleware)
	e.Use(loggingMiddleware)
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: opts.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAccept},
	}))
	e.Use(middleware.BodyLimit(bodyLimit))

	solveHandler := &handlers.SolveHandler{
		Solver:                  solver,
		DefaultTimeLimitSeconds: opts.DefaultTimeLimitSeconds,
	}

	e.GET("/", handlers.Health)
	e.GET("/health", handlers.Health)
	e.GET("/schema", handlers.Schema)
	e.POST("/solve-dynamic-problem", solveHandler.SolveExact)
	e.POST("/solve-dynamic-problem-timed", solveHandler.SolveTimed)

	return e
}
