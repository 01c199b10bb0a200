package models

import (
	"time"

	"github.com/google/uuid"
)

// Plan is a tenant subscription tier.
type Plan string

const (
	PlanFree Plan = "FREE"
	PlanPro  Plan = "PRO"
)

// FreeNoteLimit is the maximum number of notes a FREE tenant may hold.
const FreeNoteLimit = 3

type Tenant struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Slug      string    `json:"slug" db:"slug"`
	Plan      Plan      `json:"plan" db:"plan"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CanCreateNote reports whether a tenant currently holding count notes may
// create another one. PRO tenants have no limit.
func (t *Tenant) CanCreateNote(count int) bool {
	if t.Plan == PlanPro {
		return true
	}
	return count < FreeNoteLimit
}

// TenantSummary is the reduced shape returned by the upgrade and /me endpoints.
type TenantSummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
	Plan Plan      `json:"plan"`
}

func (t *Tenant) Summary() *TenantSummary {
	return &TenantSummary{
		ID:   t.ID,
		Name: t.Name,
		Slug: t.Slug,
		Plan: t.Plan,
	}
}
