package services

import (
	"context"
	"fmt"
	"strings"

	"saasnotes/internal/common"
	"saasnotes/internal/models"
	"saasnotes/internal/repositories"

	"github.com/google/uuid"
)

// NoteService is the tenant-scoped note CRUD layer. Tenant and author ids
// come exclusively from the verified identity, never from request input.
type NoteService interface {
	Create(ctx context.Context, identity *common.Identity, title, content string) (*models.Note, error)
	List(ctx context.Context, identity *common.Identity) ([]*models.Note, error)
	Get(ctx context.Context, identity *common.Identity, id uuid.UUID) (*models.Note, error)
	Update(ctx context.Context, identity *common.Identity, id uuid.UUID, title, content string) (*models.Note, error)
	Delete(ctx context.Context, identity *common.Identity, id uuid.UUID) error
}

type noteService struct {
	noteRepo repositories.NoteRepository
}

func NewNoteService(noteRepo repositories.NoteRepository) NoteService {
	return &noteService{noteRepo: noteRepo}
}

func validateNoteFields(title, content string) error {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(content) == "" {
		return fmt.Errorf("%w: title and content are required", models.ErrValidation)
	}
	return nil
}

func (s *noteService) Create(ctx context.Context, identity *common.Identity, title, content string) (*models.Note, error) {
	if err := validateNoteFields(title, content); err != nil {
		return nil, err
	}

	note := &models.Note{
		ID:          uuid.New(),
		TenantID:    identity.TenantID,
		AuthorID:    identity.UserID,
		Title:       title,
		Content:     content,
		AuthorEmail: identity.Email,
	}

	// The repository serializes the quota check and the insert per tenant.
	if err := s.noteRepo.CreateEnforcingQuota(ctx, note); err != nil {
		return nil, err
	}

	return note, nil
}

func (s *noteService) List(ctx context.Context, identity *common.Identity) ([]*models.Note, error) {
	return s.noteRepo.List(ctx, identity.TenantID)
}

func (s *noteService) Get(ctx context.Context, identity *common.Identity, id uuid.UUID) (*models.Note, error) {
	return s.noteRepo.GetByID(ctx, identity.TenantID, id)
}

func (s *noteService) Update(ctx context.Context, identity *common.Identity, id uuid.UUID, title, content string) (*models.Note, error) {
	if err := validateNoteFields(title, content); err != nil {
		return nil, err
	}

	note, err := s.noteRepo.GetByID(ctx, identity.TenantID, id)
	if err != nil {
		return nil, err
	}

	note.Title = title
	note.Content = content
	if err := s.noteRepo.Update(ctx, note); err != nil {
		return nil, err
	}

	return note, nil
}

func (s *noteService) Delete(ctx context.Context, identity *common.Identity, id uuid.UUID) error {
	return s.noteRepo.Delete(ctx, identity.TenantID, id)
}
