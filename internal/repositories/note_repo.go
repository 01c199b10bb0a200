package repositories

import (
	"context"
	"errors"

	"saasnotes/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type NoteRepository interface {
	// CreateEnforcingQuota inserts a note inside a transaction that holds a
	// row lock on the owning tenant while the plan quota is checked, so two
	// concurrent creates against the same FREE tenant cannot both pass the
	// count check.
	CreateEnforcingQuota(ctx context.Context, note *models.Note) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Note, error)
	List(ctx context.Context, tenantID uuid.UUID) ([]*models.Note, error)
	Update(ctx context.Context, note *models.Note) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	CountByTenant(ctx context.Context, tenantID uuid.UUID) (int, error)
}

type noteRepo struct {
	db Database
}

func NewNoteRepo(db Database) NoteRepository {
	return &noteRepo{db: db}
}

func (r *noteRepo) CreateEnforcingQuota(ctx context.Context, note *models.Note) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tenant := &models.Tenant{}
	lockQuery := `SELECT id, plan FROM tenants WHERE id = $1 FOR UPDATE`
	err = tx.QueryRow(ctx, lockQuery, note.TenantID).Scan(&tenant.ID, &tenant.Plan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.ErrTenantNotFound
		}
		return err
	}

	if tenant.Plan != models.PlanPro {
		var count int
		countQuery := `SELECT COUNT(*) FROM notes WHERE tenant_id = $1`
		if err := tx.QueryRow(ctx, countQuery, note.TenantID).Scan(&count); err != nil {
			return err
		}
		if !tenant.CanCreateNote(count) {
			return models.ErrNoteLimitReached
		}
	}

	insertQuery := `
		INSERT INTO notes (id, tenant_id, author_id, title, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	err = tx.QueryRow(ctx, insertQuery, note.ID, note.TenantID, note.AuthorID, note.Title, note.Content).
		Scan(&note.CreatedAt, &note.UpdatedAt)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *noteRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Note, error) {
	note := &models.Note{}
	query := `
		SELECT n.id, n.tenant_id, n.author_id, n.title, n.content, u.email, n.created_at, n.updated_at
		FROM notes n
		JOIN users u ON u.id = n.author_id
		WHERE n.tenant_id = $1 AND n.id = $2
	`
	err := r.db.QueryRow(ctx, query, tenantID, id).Scan(&note.ID, &note.TenantID, &note.AuthorID,
		&note.Title, &note.Content, &note.AuthorEmail, &note.CreatedAt, &note.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// A note in another tenant must look exactly like a missing one.
			return nil, models.ErrNoteNotFound
		}
		return nil, err
	}
	return note, nil
}

func (r *noteRepo) List(ctx context.Context, tenantID uuid.UUID) ([]*models.Note, error) {
	query := `
		SELECT n.id, n.tenant_id, n.author_id, n.title, n.content, u.email, n.created_at, n.updated_at
		FROM notes n
		JOIN users u ON u.id = n.author_id
		WHERE n.tenant_id = $1
		ORDER BY n.created_at DESC
	`
	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := []*models.Note{}
	for rows.Next() {
		note := &models.Note{}
		if err := rows.Scan(&note.ID, &note.TenantID, &note.AuthorID, &note.Title, &note.Content,
			&note.AuthorEmail, &note.CreatedAt, &note.UpdatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	return notes, rows.Err()
}

func (r *noteRepo) Update(ctx context.Context, note *models.Note) error {
	query := `
		UPDATE notes
		SET title = $1, content = $2, updated_at = NOW()
		WHERE tenant_id = $3 AND id = $4
		RETURNING updated_at
	`
	err := r.db.QueryRow(ctx, query, note.Title, note.Content, note.TenantID, note.ID).Scan(&note.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.ErrNoteNotFound
		}
		return err
	}
	return nil
}

func (r *noteRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	query := `DELETE FROM notes WHERE tenant_id = $1 AND id = $2`
	tag, err := r.db.Exec(ctx, query, tenantID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNoteNotFound
	}
	return nil
}

func (r *noteRepo) CountByTenant(ctx context.Context, tenantID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM notes WHERE tenant_id = $1`
	err := r.db.QueryRow(ctx, query, tenantID).Scan(&count)
	return count, err
}
