package testhelpers

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"saasnotes/internal/models"
)

// TestDB holds the database connection for integration tests. Tests using
// it are skipped when TEST_DATABASE_URL is not set.
type TestDB struct {
	Pool    *pgxpool.Pool
	Cleanup func()
}

// SetupTestDB creates a pooled connection for testing.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	connString := os.Getenv("TEST_DATABASE_URL")
	if connString == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	pool, err := pgxpool.New(context.Background(), connString)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	return &TestDB{
		Pool:    pool,
		Cleanup: pool.Close,
	}
}

// SetupTestTenant creates a tenant row and returns its id.
func SetupTestTenant(t *testing.T, db *TestDB, slug string, plan models.Plan) uuid.UUID {
	t.Helper()

	tenantID := uuid.New()
	query := `
		INSERT INTO tenants (id, name, slug, plan, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
	`
	_, err := db.Pool.Exec(context.Background(), query, tenantID, "Test Tenant "+slug, slug, plan)
	if err != nil {
		t.Fatalf("Failed to create test tenant: %v", err)
	}

	return tenantID
}

// SetupTestUser creates a user row in the given tenant and returns its id.
func SetupTestUser(t *testing.T, db *TestDB, tenantID uuid.UUID, email string, role models.Role) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	query := `
		INSERT INTO users (id, tenant_id, email, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	`
	_, err := db.Pool.Exec(context.Background(), query, userID, tenantID, email, "x", role)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return userID
}

// SetupTestNote creates a note row and returns its id.
func SetupTestNote(t *testing.T, db *TestDB, tenantID, authorID uuid.UUID, title string) uuid.UUID {
	t.Helper()

	noteID := uuid.New()
	query := `
		INSERT INTO notes (id, tenant_id, author_id, title, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	`
	_, err := db.Pool.Exec(context.Background(), query, noteID, tenantID, authorID, title, "test content")
	if err != nil {
		t.Fatalf("Failed to create test note: %v", err)
	}

	return noteID
}
