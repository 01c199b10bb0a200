package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"saasnotes/internal/common"
	"saasnotes/internal/services"
)

// AuthMiddleware is the authentication gate every protected route passes
// through before any data access.
type AuthMiddleware struct {
	authService services.AuthService
}

func NewAuthMiddleware(authService services.AuthService) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

// RequireAuth extracts and validates the bearer token and stores the
// resulting identity in the request context. Missing header, any scheme
// other than "Bearer", and every decode failure all yield the same 401.
func (m *AuthMiddleware) RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
			}

			tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || tokenString == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
			}

			identity, valid := m.authService.ValidateToken(tokenString)
			if !valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
			}

			ctx := common.WithIdentity(c.Request().Context(), identity)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// RequireAdmin runs after RequireAuth and rejects non-admin callers. An
// unauthenticated request never reaches this check, so it reports 401 at
// the gate above rather than 403 here.
func (m *AuthMiddleware) RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := common.GetIdentityFromContext(c.Request().Context())
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
			}

			if !identity.IsAdmin() {
				return echo.NewHTTPError(http.StatusForbidden, "Forbidden: Admin access required")
			}

			return next(c)
		}
	}
}
