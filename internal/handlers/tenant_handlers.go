package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"saasnotes/internal/common"
	"saasnotes/internal/models"
	"saasnotes/internal/services"
)

// TenantHandlers handles tenant plan mutation.
type TenantHandlers struct {
	tenantService services.TenantService
}

func NewTenantHandlers(tenantService services.TenantService) *TenantHandlers {
	return &TenantHandlers{tenantService: tenantService}
}

// UpgradeResponse represents the upgrade response
type UpgradeResponse struct {
	Message string                `json:"message"`
	Tenant  *models.TenantSummary `json:"tenant"`
}

// UpgradeTenant handles POST /tenants/:slug/upgrade. The route is behind
// RequireAuth and RequireAdmin; ownership of the slug is checked in the
// service.
func (h *TenantHandlers) UpgradeTenant(c echo.Context) error {
	ctx := c.Request().Context()

	identity, ok := common.GetIdentityFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}

	slug := c.Param("slug")
	if err := common.ValidateSlug(slug); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Tenant not found")
	}

	tenant, err := h.tenantService.Upgrade(ctx, identity, slug)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, UpgradeResponse{
		Message: "Tenant upgraded to Pro successfully",
		Tenant:  tenant,
	})
}
