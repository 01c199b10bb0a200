package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"saasnotes/internal/common"
	"saasnotes/internal/models"
)

// HTTPErrorHandler is the single place domain errors become status codes.
// Handlers and middleware return typed errors; nothing below this layer
// catches them, and nothing here inspects error message strings. Every body
// is the uniform {"error": message} envelope.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, message := translateError(err)
	if status == http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Request().URL.Path),
			zap.Error(err))
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}
	_ = c.JSON(status, common.ErrorResponse{Error: message})
}

func translateError(err error) (int, string) {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		if msg, ok := httpErr.Message.(string); ok {
			return httpErr.Code, msg
		}
		return httpErr.Code, http.StatusText(httpErr.Code)
	}

	switch {
	case errors.Is(err, models.ErrValidation):
		return http.StatusBadRequest, "Title and content are required"
	case errors.Is(err, models.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, models.ErrNoteNotFound):
		return http.StatusNotFound, "Note not found"
	case errors.Is(err, models.ErrTenantNotFound):
		return http.StatusNotFound, "Tenant not found"
	case errors.Is(err, models.ErrNotOwnTenant):
		return http.StatusForbidden, "Forbidden: You can only upgrade your own tenant"
	case errors.Is(err, models.ErrAlreadyPro):
		return http.StatusBadRequest, "Tenant is already on Pro plan"
	case errors.Is(err, models.ErrNoteLimitReached):
		return http.StatusForbidden, "Note limit reached. Upgrade to Pro for unlimited notes."
	default:
		// No internal detail ever reaches the caller.
		return http.StatusInternalServerError, "Internal server error"
	}
}
