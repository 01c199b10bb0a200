package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"saasnotes/internal/config"
	"saasnotes/internal/models"
	"saasnotes/pkg/database"
	"saasnotes/pkg/logger"
)

const schema = `
CREATE TABLE IF NOT EXISTS tenants (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL,
	slug TEXT NOT NULL UNIQUE,
	plan TEXT NOT NULL DEFAULT 'FREE',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS users (
	id UUID PRIMARY KEY,
	tenant_id UUID NOT NULL REFERENCES tenants(id),
	email TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	role TEXT NOT NULL DEFAULT 'MEMBER',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS notes (
	id UUID PRIMARY KEY,
	tenant_id UUID NOT NULL REFERENCES tenants(id),
	author_id UUID NOT NULL REFERENCES users(id),
	title TEXT NOT NULL,
	content TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_notes_tenant_created ON notes (tenant_id, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_users_tenant ON users (tenant_id);
`

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	log, err := logger.Init(&logger.Config{
		Level:       cfg.Log.Level,
		Environment: cfg.Server.Env,
		ServiceName: "saasnotes-seed",
	})
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer log.Sync()

	ctx := context.Background()
	pool, err := database.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx, schema); err != nil {
		log.Fatal("failed to create schema", zap.Error(err))
	}

	acmeID := seedTenant(ctx, pool, log, "Acme Corporation", "acme")
	globexID := seedTenant(ctx, pool, log, "Globex Corporation", "globex")

	passwordHash, err := bcrypt.GenerateFromPassword([]byte("password"), 10)
	if err != nil {
		log.Fatal("failed to hash seed password", zap.Error(err))
	}

	seedUser(ctx, pool, log, acmeID, "admin@acme.test", string(passwordHash), models.RoleAdmin)
	seedUser(ctx, pool, log, acmeID, "user@acme.test", string(passwordHash), models.RoleMember)
	seedUser(ctx, pool, log, globexID, "admin@globex.test", string(passwordHash), models.RoleAdmin)
	seedUser(ctx, pool, log, globexID, "user@globex.test", string(passwordHash), models.RoleMember)

	log.Info("database seeded successfully")
}

// seedTenant upserts a tenant by slug and returns its id, whether it was
// just created or already present.
func seedTenant(ctx context.Context, pool *pgxpool.Pool, log *zap.Logger, name, slug string) uuid.UUID {
	var id uuid.UUID
	query := `
		INSERT INTO tenants (id, name, slug, plan)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (slug) DO UPDATE SET updated_at = NOW()
		RETURNING id
	`
	err := pool.QueryRow(ctx, query, uuid.New(), name, slug, models.PlanFree).Scan(&id)
	if err != nil {
		log.Fatal("failed to seed tenant", zap.String("slug", slug), zap.Error(err))
	}
	return id
}

func seedUser(ctx context.Context, pool *pgxpool.Pool, log *zap.Logger, tenantID uuid.UUID, email, passwordHash string, role models.Role) {
	query := `
		INSERT INTO users (id, tenant_id, email, password_hash, role)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO NOTHING
	`
	if _, err := pool.Exec(ctx, query, uuid.New(), tenantID, email, passwordHash, role); err != nil {
		log.Fatal("failed to seed user", zap.String("email", email), zap.Error(err))
	}
}
