package models

import (
	"time"

	"github.com/google/uuid"
)

// Note belongs to exactly one tenant. Tenant id is the partition key for
// every query and count; authorship is informational only and does not
// restrict access among same-tenant members.
type Note struct {
	ID          uuid.UUID `json:"id" db:"id"`
	TenantID    uuid.UUID `json:"tenant_id" db:"tenant_id"`
	AuthorID    uuid.UUID `json:"author_id" db:"author_id"`
	Title       string    `json:"title" db:"title"`
	Content     string    `json:"content" db:"content"`
	AuthorEmail string    `json:"author_email,omitempty" db:"author_email"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
