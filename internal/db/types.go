package db

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// User represents a case-worker account
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-" db:"password_hash"` // Never serialize to JSON
	PasswordSet  bool      `json:"password_set" db:"password_set"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Org represents a community organization whose workers run screenings
type Org struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// OrgMember ties a user to an org with a role (admin, caseworker, volunteer)
type OrgMember struct {
	OrgID     uuid.UUID `json:"org_id"`
	UserID    uuid.UUID `json:"user_id"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Run represents a stored screening run. Facts, Result, and Decision hold
// the jsonb payloads produced by the extraction and eligibility stages.
type Run struct {
	ID        uuid.UUID       `json:"id"`
	OrgID     uuid.UUID       `json:"org_id"`
	CreatedBy uuid.UUID       `json:"created_by"`
	InputMode string          `json:"input_mode"` // narrative or structured
	InputRaw  string          `json:"input_raw,omitempty"`
	Facts     json.RawMessage `json:"facts,omitempty"`
	Result    json.RawMessage `json:"result,omitempty"`
	Decision  json.RawMessage `json:"decision,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// RunSummary is a lightweight view of a run for listing
type RunSummary struct {
	ID        uuid.UUID `json:"id"`
	CreatedBy uuid.UUID `json:"created_by"`
	InputMode string    `json:"input_mode"`
	CreatedAt time.Time `json:"created_at"`
}
