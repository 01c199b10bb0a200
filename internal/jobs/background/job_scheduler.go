package background

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"

	"saasnotes/internal/caching"
	"saasnotes/internal/repositories"
)

const (
	usageSnapshotInterval = time.Hour
	usageSnapshotTTL      = 2 * time.Hour
	tenantPageSize        = 100
)

// JobScheduler runs periodic maintenance jobs.
type JobScheduler struct {
	scheduler  gocron.Scheduler
	tenantRepo repositories.TenantRepository
	noteRepo   repositories.NoteRepository
	cacheSvc   caching.CacheService
}

func NewJobScheduler(tenantRepo repositories.TenantRepository, noteRepo repositories.NoteRepository, cacheSvc caching.CacheService) (*JobScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	js := &JobScheduler{
		scheduler:  scheduler,
		tenantRepo: tenantRepo,
		noteRepo:   noteRepo,
		cacheSvc:   cacheSvc,
	}

	if err := js.registerJobs(); err != nil {
		return nil, err
	}

	return js, nil
}

func (js *JobScheduler) Start() {
	zap.L().Info("starting background job scheduler")
	js.scheduler.Start()
}

func (js *JobScheduler) Stop() error {
	zap.L().Info("stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs() error {
	_, err := js.scheduler.NewJob(
		gocron.DurationJob(usageSnapshotInterval),
		gocron.NewTask(js.snapshotTenantUsage, context.Background()),
		gocron.WithName("tenant-usage-snapshot"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	return err
}

// snapshotTenantUsage records the current note count for every tenant into
// the cache. The counts back usage reporting only; quota enforcement always
// reads fresh counts inside the creation transaction.
func (js *JobScheduler) snapshotTenantUsage(ctx context.Context) {
	offset := 0
	for {
		tenants, err := js.tenantRepo.List(ctx, tenantPageSize, offset)
		if err != nil {
			zap.L().Error("usage snapshot: failed to list tenants", zap.Error(err))
			return
		}
		if len(tenants) == 0 {
			return
		}

		for _, tenant := range tenants {
			count, err := js.noteRepo.CountByTenant(ctx, tenant.ID)
			if err != nil {
				zap.L().Error("usage snapshot: failed to count notes",
					zap.String("tenant_id", tenant.ID.String()), zap.Error(err))
				continue
			}

			if err := js.cacheSvc.SetTenantUsage(ctx, tenant.ID, count, usageSnapshotTTL); err != nil {
				zap.L().Warn("usage snapshot: failed to cache count",
					zap.String("tenant_id", tenant.ID.String()), zap.Error(err))
			}

			zap.L().Debug("tenant usage snapshot",
				zap.String("tenant_id", tenant.ID.String()),
				zap.String("slug", tenant.Slug),
				zap.String("plan", string(tenant.Plan)),
				zap.Int("note_count", count))
		}

		offset += tenantPageSize
	}
}
