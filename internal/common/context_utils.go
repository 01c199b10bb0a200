package common

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"saasnotes/internal/models"
)

type contextKey string

const IdentityKey contextKey = "identity"

// Identity is the authenticated caller derived from a verified token. The
// tenant id used to scope every data access comes from here and never from
// request parameters or body.
type Identity struct {
	UserID     uuid.UUID
	Email      string
	Role       models.Role
	TenantID   uuid.UUID
	TenantSlug string
}

func (i *Identity) IsAdmin() bool {
	return i.Role == models.RoleAdmin
}

// WithIdentity returns a context carrying the authenticated identity.
func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, IdentityKey, identity)
}

// GetIdentityFromContext extracts the authenticated identity from the
// request context.
func GetIdentityFromContext(ctx context.Context) (*Identity, bool) {
	identity, ok := ctx.Value(IdentityKey).(*Identity)
	return identity, ok
}

// ErrorResponse is the uniform error envelope for every failure mode.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse wraps confirmation-style success payloads.
type MessageResponse struct {
	Message string `json:"message"`
}

// ValidateRequiredString validates required string fields.
func ValidateRequiredString(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	return nil
}

// ValidateUUID parses and validates a UUID path or query parameter.
func ValidateUUID(idStr string, fieldName string) (uuid.UUID, error) {
	idStr = strings.TrimSpace(idStr)
	if idStr == "" {
		return uuid.Nil, fmt.Errorf("%s is required", fieldName)
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s is not a valid UUID", fieldName)
	}

	return id, nil
}

// ValidateSlug checks the URL-safe tenant handle.
func ValidateSlug(slug string) error {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return fmt.Errorf("slug is required")
	}
	if strings.ContainsAny(slug, " /\\?#") {
		return fmt.Errorf("slug contains invalid characters")
	}
	return nil
}
