package server

import (
	"context"

	"github.com/google/uuid"
	"github.com/jonathan/benefits-navigator/internal/db"
)

// DBClient is the persistence surface the server depends on. *db.DB
// satisfies it; tests substitute an in-memory fake.
type DBClient interface {
	CreateUser(ctx context.Context, name, email string) (uuid.UUID, error)
	GetUser(ctx context.Context, userID uuid.UUID) (*db.User, error)
	GetUserByEmail(ctx context.Context, email string) (*db.User, error)
	CheckEmailExists(ctx context.Context, email string) (bool, error)
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error

	CreateRun(ctx context.Context, input db.RunCreateInput) (uuid.UUID, error)
	GetRun(ctx context.Context, runID uuid.UUID) (*db.Run, error)
	ListOrgRuns(ctx context.Context, orgID uuid.UUID, filters db.RunFilters) ([]db.RunSummary, error)
	GetOrgRole(ctx context.Context, orgID, userID uuid.UUID) (string, error)
}
