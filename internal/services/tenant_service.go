package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"saasnotes/internal/caching"
	"saasnotes/internal/common"
	"saasnotes/internal/models"
	"saasnotes/internal/repositories"
)

const tenantCacheTTL = 5 * time.Minute

// TenantService handles plan upgrades and tenant lookups for the caller's
// own tenant.
type TenantService interface {
	// Upgrade flips the tenant named by slug to PRO. The caller must be an
	// admin of that same tenant; the role itself was already checked at the
	// gate. Ordering: unknown slug is 404 before the ownership check.
	Upgrade(ctx context.Context, identity *common.Identity, slug string) (*models.TenantSummary, error)

	// GetForIdentity returns the caller's own tenant, cache-aside.
	GetForIdentity(ctx context.Context, identity *common.Identity) (*models.Tenant, error)
}

type tenantService struct {
	tenantRepo repositories.TenantRepository
	cacheSvc   caching.CacheService
}

func NewTenantService(tenantRepo repositories.TenantRepository, cacheSvc caching.CacheService) TenantService {
	return &tenantService{
		tenantRepo: tenantRepo,
		cacheSvc:   cacheSvc,
	}
}

func (s *tenantService) Upgrade(ctx context.Context, identity *common.Identity, slug string) (*models.TenantSummary, error) {
	tenant, err := s.tenantRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if tenant.ID != identity.TenantID {
		return nil, models.ErrNotOwnTenant
	}

	if tenant.Plan == models.PlanPro {
		return nil, models.ErrAlreadyPro
	}

	if err := s.tenantRepo.SetPlan(ctx, tenant.ID, models.PlanPro); err != nil {
		return nil, err
	}

	if err := s.cacheSvc.DeleteTenant(ctx, tenant.ID); err != nil {
		// The cache entry expires on its own; the store is authoritative.
		zap.L().Warn("failed to invalidate tenant cache after upgrade",
			zap.String("tenant_id", tenant.ID.String()), zap.Error(err))
	}

	zap.L().Info("tenant upgraded to pro",
		zap.String("tenant_id", tenant.ID.String()),
		zap.String("slug", tenant.Slug),
		zap.String("upgraded_by", identity.UserID.String()))

	tenant.Plan = models.PlanPro
	return tenant.Summary(), nil
}

func (s *tenantService) GetForIdentity(ctx context.Context, identity *common.Identity) (*models.Tenant, error) {
	if cached, err := s.cacheSvc.GetTenant(ctx, identity.TenantID); err == nil && cached != nil {
		return cached, nil
	}

	tenant, err := s.tenantRepo.GetByID(ctx, identity.TenantID)
	if err != nil {
		return nil, err
	}

	if err := s.cacheSvc.SetTenant(ctx, tenant, tenantCacheTTL); err != nil {
		zap.L().Warn("failed to cache tenant", zap.String("tenant_id", tenant.ID.String()), zap.Error(err))
	}

	return tenant, nil
}
