package caching

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"saasnotes/internal/models"
)

type CacheService interface {
	// Tenant caching (cache-aside; invalidated on plan upgrade)
	GetTenant(ctx context.Context, tenantID uuid.UUID) (*models.Tenant, error)
	SetTenant(ctx context.Context, tenant *models.Tenant, ttl time.Duration) error
	DeleteTenant(ctx context.Context, tenantID uuid.UUID) error

	// Per-tenant usage snapshots written by the background job
	SetTenantUsage(ctx context.Context, tenantID uuid.UUID, noteCount int, ttl time.Duration) error
	GetTenantUsage(ctx context.Context, tenantID uuid.UUID) (int, bool, error)

	// Rate limiting
	IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
	IncrementRateLimit(ctx context.Context, key string, window time.Duration) error

	// Generic string operations
	SetString(ctx context.Context, key string, value string, ttl time.Duration) error
	GetString(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error

	Ping(ctx context.Context) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	// Accept both host:port and redis://host:port forms.
	parsedAddr := addr
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		parsedAddr = strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})
	return &redisCacheService{client: client}
}

func tenantKey(tenantID uuid.UUID) string {
	return fmt.Sprintf("tenant:%s", tenantID)
}

func tenantUsageKey(tenantID uuid.UUID) string {
	return fmt.Sprintf("tenant_usage:%s", tenantID)
}

func (s *redisCacheService) GetTenant(ctx context.Context, tenantID uuid.UUID) (*models.Tenant, error) {
	data, err := s.client.Get(ctx, tenantKey(tenantID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	tenant := &models.Tenant{}
	if err := json.Unmarshal([]byte(data), tenant); err != nil {
		// Stale or corrupt entry; treat as a miss.
		zap.L().Warn("dropping unreadable tenant cache entry", zap.String("tenant_id", tenantID.String()), zap.Error(err))
		s.client.Del(ctx, tenantKey(tenantID))
		return nil, nil
	}
	return tenant, nil
}

func (s *redisCacheService) SetTenant(ctx context.Context, tenant *models.Tenant, ttl time.Duration) error {
	data, err := json.Marshal(tenant)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, tenantKey(tenant.ID), data, ttl).Err()
}

func (s *redisCacheService) DeleteTenant(ctx context.Context, tenantID uuid.UUID) error {
	return s.client.Del(ctx, tenantKey(tenantID)).Err()
}

func (s *redisCacheService) SetTenantUsage(ctx context.Context, tenantID uuid.UUID, noteCount int, ttl time.Duration) error {
	return s.client.Set(ctx, tenantUsageKey(tenantID), noteCount, ttl).Err()
}

func (s *redisCacheService) GetTenantUsage(ctx context.Context, tenantID uuid.UUID) (int, bool, error) {
	count, err := s.client.Get(ctx, tenantUsageKey(tenantID)).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return count, true, nil
}

func (s *redisCacheService) IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	count, err := s.client.Get(ctx, fmt.Sprintf("rate:%s", key)).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	return count >= limit, nil
}

func (s *redisCacheService) IncrementRateLimit(ctx context.Context, key string, window time.Duration) error {
	rateKey := fmt.Sprintf("rate:%s", key)
	count, err := s.client.Incr(ctx, rateKey).Result()
	if err != nil {
		return err
	}
	if count == 1 {
		return s.client.Expire(ctx, rateKey, window).Err()
	}
	return nil
}

func (s *redisCacheService) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

func (s *redisCacheService) GetString(ctx context.Context, key string) (string, error) {
	return s.client.Get(ctx, key).Result()
}

func (s *redisCacheService) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

func (s *redisCacheService) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
