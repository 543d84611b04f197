package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateOrg creates a new organization and returns its ID
func (db *DB) CreateOrg(ctx context.Context, name string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO orgs (name) VALUES ($1) RETURNING id`,
		name,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create org: %w", err)
	}
	return id, nil
}

// GetOrg retrieves an organization by ID
func (db *DB) GetOrg(ctx context.Context, orgID uuid.UUID) (*Org, error) {
	var org Org
	err := db.pool.QueryRow(ctx,
		`SELECT id, name, created_at FROM orgs WHERE id = $1`,
		orgID,
	).Scan(&org.ID, &org.Name, &org.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get org: %w", err)
	}
	return &org, nil
}

// AddOrgMember adds a user to an org with the given role, replacing any prior role
func (db *DB) AddOrgMember(ctx context.Context, orgID, userID uuid.UUID, role string) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO org_members (org_id, user_id, role)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (org_id, user_id) DO UPDATE SET role = $3`,
		orgID, userID, role,
	)
	if err != nil {
		return fmt.Errorf("failed to add org member: %w", err)
	}
	return nil
}

// GetOrgRole returns the user's role in the org, or "" if not a member
func (db *DB) GetOrgRole(ctx context.Context, orgID, userID uuid.UUID) (string, error) {
	var role string
	err := db.pool.QueryRow(ctx,
		`SELECT role FROM org_members WHERE org_id = $1 AND user_id = $2`,
		orgID, userID,
	).Scan(&role)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", nil
		}
		return "", fmt.Errorf("failed to get org role: %w", err)
	}
	return role, nil
}

// RemoveOrgMember removes a user from an org
func (db *DB) RemoveOrgMember(ctx context.Context, orgID, userID uuid.UUID) error {
	_, err := db.pool.Exec(ctx,
		`DELETE FROM org_members WHERE org_id = $1 AND user_id = $2`,
		orgID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove org member: %w", err)
	}
	return nil
}

// DeleteOrg deletes an organization and its memberships (via cascade)
func (db *DB) DeleteOrg(ctx context.Context, orgID uuid.UUID) error {
	_, err := db.pool.Exec(ctx, `DELETE FROM orgs WHERE id = $1`, orgID)
	if err != nil {
		return fmt.Errorf("failed to delete org: %w", err)
	}
	return nil
}
