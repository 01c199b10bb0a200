package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"saasnotes/internal/caching"
	"saasnotes/internal/common"
	"saasnotes/internal/models"
	"saasnotes/internal/services"
)

const (
	loginRateLimit  = 10
	loginRateWindow = time.Minute
)

// AuthHandlers handles login and the current-user endpoint.
type AuthHandlers struct {
	authService   services.AuthService
	tenantService services.TenantService
	cacheSvc      caching.CacheService
}

func NewAuthHandlers(authService services.AuthService, tenantService services.TenantService, cacheSvc caching.CacheService) *AuthHandlers {
	return &AuthHandlers{
		authService:   authService,
		tenantService: tenantService,
		cacheSvc:      cacheSvc,
	}
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginUser is the reduced user shape returned from login.
type LoginUser struct {
	ID         uuid.UUID   `json:"id"`
	Email      string      `json:"email"`
	Role       models.Role `json:"role"`
	TenantSlug string      `json:"tenant_slug"`
}

// LoginResponse represents the login response
type LoginResponse struct {
	Token string    `json:"token"`
	User  LoginUser `json:"user"`
}

// Login handles user login with email and password
func (h *AuthHandlers) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if req.Email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Email and password are required")
	}

	rateKey := fmt.Sprintf("login:%s:%s", req.Email, c.RealIP())
	if limited, err := h.cacheSvc.IsRateLimited(ctx, rateKey, loginRateLimit, loginRateWindow); err == nil && limited {
		return echo.NewHTTPError(http.StatusTooManyRequests, "Too many login attempts, try again later")
	}

	result, err := h.authService.Login(ctx, req.Email, req.Password)
	if err != nil {
		if rlErr := h.cacheSvc.IncrementRateLimit(ctx, rateKey, loginRateWindow); rlErr != nil {
			zap.L().Warn("failed to record login attempt", zap.Error(rlErr))
		}
		return err
	}

	return c.JSON(http.StatusOK, LoginResponse{
		Token: result.Token,
		User: LoginUser{
			ID:         result.User.ID,
			Email:      result.User.Email,
			Role:       result.User.Role,
			TenantSlug: result.TenantSlug,
		},
	})
}

// MeResponse represents the current-user response
type MeResponse struct {
	ID     uuid.UUID             `json:"id"`
	Email  string                `json:"email"`
	Role   models.Role           `json:"role"`
	Tenant *models.TenantSummary `json:"tenant"`
}

// Me returns the authenticated caller with their tenant summary.
func (h *AuthHandlers) Me(c echo.Context) error {
	ctx := c.Request().Context()

	identity, ok := common.GetIdentityFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}

	tenant, err := h.tenantService.GetForIdentity(ctx, identity)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, MeResponse{
		ID:     identity.UserID,
		Email:  identity.Email,
		Role:   identity.Role,
		Tenant: tenant.Summary(),
	})
}
