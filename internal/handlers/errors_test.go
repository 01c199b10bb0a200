package handlers

import (
	"errors"
	"net/http"
	"testing"

	"saasnotes/internal/models"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"validation", models.ErrValidation, http.StatusBadRequest, "Title and content are required"},
		{"invalid credentials", models.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
		{"note not found", models.ErrNoteNotFound, http.StatusNotFound, "Note not found"},
		{"tenant not found", models.ErrTenantNotFound, http.StatusNotFound, "Tenant not found"},
		{"not own tenant", models.ErrNotOwnTenant, http.StatusForbidden, "Forbidden: You can only upgrade your own tenant"},
		{"already pro", models.ErrAlreadyPro, http.StatusBadRequest, "Tenant is already on Pro plan"},
		{"note limit", models.ErrNoteLimitReached, http.StatusForbidden, "Note limit reached. Upgrade to Pro for unlimited notes."},
		{"wrapped sentinel", errors.New("ctx: " + models.ErrNoteLimitReached.Error()), http.StatusInternalServerError, "Internal server error"},
		{"unknown error", errors.New("pq: connection reset"), http.StatusInternalServerError, "Internal server error"},
		{"echo http error", echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized"), http.StatusUnauthorized, "Unauthorized"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := translateError(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestTranslateError_WrappedSentinelKeepsMapping(t *testing.T) {
	wrapped := errors.Join(errors.New("create note"), models.ErrNoteLimitReached)
	status, msg := translateError(wrapped)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "Note limit reached. Upgrade to Pro for unlimited notes.", msg)
}
