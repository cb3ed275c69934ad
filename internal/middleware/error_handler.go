package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mnajjaa/banking-agent-simulation-platform/domain"
	"github.com/mnajjaa/banking-agent-simulation-platform/pkg/logger"
	jsonres "github.com/mnajjaa/banking-agent-simulation-platform/pkg/response"
)

// ErrorHandler maps domain errors to the HTTP taxonomy: validation
// failures are 422 naming the field, catalog misses 400, everything
// else a terminal 500 with no retry guidance.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var fieldErr *domain.FieldError
	var httpErr *echo.HTTPError

	switch {
	case errors.As(err, &fieldErr):
		_ = c.JSON(http.StatusUnprocessableEntity, jsonres.Error(
			"VALIDATION_ERROR", fieldErr.Message, map[string]string{"field": fieldErr.Field},
		))

	case errors.Is(err, domain.ErrInvalidClusterCount):
		_ = c.JSON(http.StatusUnprocessableEntity, jsonres.Error(
			"VALIDATION_ERROR", err.Error(), map[string]string{"field": "n_clusters"},
		))

	case errors.Is(err, domain.ErrUnknownScenario), errors.Is(err, domain.ErrUnknownIntensity):
		_ = c.JSON(http.StatusBadRequest, jsonres.Error(
			"CATALOG_MISS", err.Error(), nil,
		))

	case errors.As(err, &httpErr):
		msg, ok := httpErr.Message.(string)
		if !ok {
			msg = http.StatusText(httpErr.Code)
		}
		_ = c.JSON(httpErr.Code, jsonres.Error("HTTP_ERROR", msg, nil))

	default:
		logger.Error("unhandled request error", "path", c.Path(), "error", err)
		_ = c.JSON(http.StatusInternalServerError, jsonres.Error(
			"INTERNAL_ERROR", "internal server error", nil,
		))
	}
}
