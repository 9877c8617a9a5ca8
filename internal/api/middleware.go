package api

import (
	"errors"
	"net/http"
	"time"
	"transfer-task-service/internal/platform/obs"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// requestIDMiddleware tags each request with a fresh id, exposed to the
// client in X-Request-ID and to the rest of the stack through the context.
func requestIDMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := gonanoid.New()
		if err != nil {
			return err
		}

		req := c.Request()
		c.SetRequest(req.WithContext(obs.WithRequestID(req.Context(), id)))
		c.Response().Header().Set(echo.HeaderXRequestID, id)

		return next(c)
	}
}

// loggingMiddleware logs end-to-end request duration and response size for basic observability.
func loggingMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		err := next(c)
		// Render the error now so the logged status is the one the client receives.
		if err != nil {
			c.Error(err)
		}

		req := c.Request()
		res := c.Response()
		log.Info("request",
			"req_id", obs.RequestID(req.Context()),
			"method", req.Method,
			"path", req.URL.RequestURI(),
			"status", res.Status,
			"bytes", res.Size,
			"dur_ms", time.Since(start).Milliseconds(),
		)

		return nil
	}
}

// errorHandler renders every error as {"error": msg}. Errors that are not
// HTTP errors are logged and hidden behind a generic 500.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := "internal server error"

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		} else {
			msg = http.StatusText(code)
		}
	} else {
		log.Error("unhandled error",
			"req_id", obs.RequestID(c.Request().Context()),
			"path", c.Request().URL.Path,
			"err", err,
		)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, map[string]string{"error": msg})
	}
	if err != nil {
		log.Error("write error response failed", "err", err)
	}
}
