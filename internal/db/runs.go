package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// RunCreateInput holds the fields for persisting a completed screening run.
// Facts, Result, and Decision are marshaled to jsonb columns.
type RunCreateInput struct {
	OrgID     uuid.UUID
	CreatedBy uuid.UUID
	InputMode string
	InputRaw  string
	Facts     any
	Result    any
	Decision  any
}

// CreateRun stores a screening run and returns its ID
func (db *DB) CreateRun(ctx context.Context, input RunCreateInput) (uuid.UUID, error) {
	factsJSON, err := json.Marshal(input.Facts)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal facts: %w", err)
	}
	resultJSON, err := json.Marshal(input.Result)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	decisionJSON, err := json.Marshal(input.Decision)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal decision: %w", err)
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO screening_runs (org_id, created_by, input_mode, input_raw, facts, result, decision)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		input.OrgID, input.CreatedBy, input.InputMode, input.InputRaw, factsJSON, resultJSON, decisionJSON,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create run: %w", err)
	}
	return id, nil
}

// GetRun retrieves a screening run by ID
func (db *DB) GetRun(ctx context.Context, runID uuid.UUID) (*Run, error) {
	var run Run
	err := db.pool.QueryRow(ctx,
		`SELECT id, org_id, created_by, input_mode, COALESCE(input_raw, ''), facts, result, decision, created_at
		 FROM screening_runs WHERE id = $1`,
		runID,
	).Scan(&run.ID, &run.OrgID, &run.CreatedBy, &run.InputMode, &run.InputRaw,
		&run.Facts, &run.Result, &run.Decision, &run.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return &run, nil
}

// RunFilters holds optional filters for listing an org's runs
type RunFilters struct {
	CreatedBy uuid.UUID // uuid.Nil means all workers
	Limit     int
}

// ListOrgRuns retrieves recent runs for an org, newest first
func (db *DB) ListOrgRuns(ctx context.Context, orgID uuid.UUID, filters RunFilters) ([]RunSummary, error) {
	if filters.Limit == 0 {
		filters.Limit = 50
	}

	query := `SELECT id, created_by, input_mode, created_at
		FROM screening_runs WHERE org_id = $1`
	args := []any{orgID}
	argNum := 2

	if filters.CreatedBy != uuid.Nil {
		query += fmt.Sprintf(" AND created_by = $%d", argNum)
		args = append(args, filters.CreatedBy)
		argNum++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", argNum)
	args = append(args, filters.Limit)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var run RunSummary
		if err := rows.Scan(&run.ID, &run.CreatedBy, &run.InputMode, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, nil
}

// DeleteRun deletes a screening run
func (db *DB) DeleteRun(ctx context.Context, runID uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM screening_runs WHERE id = $1`, runID)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("run not found: %s", runID)
	}
	return nil
}
