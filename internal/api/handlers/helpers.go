package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
)

func writeJSON(c echo.Context, status int, v any) error {
	return c.JSON(status, v)
}

func writeError(c echo.Context, status int, msg string) error {
	return writeJSON(c, status, map[string]string{"error": msg})
}

// validationMessage turns struct validation failures into a client-facing message.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "invalid request body"
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s must satisfy %s=%s", fe.Namespace(), fe.Tag(), fe.Param()))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s is %s", fe.Namespace(), fe.Tag()))
	}
	return "invalid request body: " + strings.Join(parts, "; ")
}
