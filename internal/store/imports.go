package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/harborline/crewimport/internal/importer"
)

// ImportRun is the read model for one import-mode request.
type ImportRun struct {
	ID        uuid.UUID `json:"id"`
	ActorID   uuid.UUID `json:"actorId"`
	TotalRows int       `json:"totalRows"`
	Created   int       `json:"created"`
	Skipped   int       `json:"skipped"`
	StartedAt time.Time `json:"startedAt"`
	CreatedAt time.Time `json:"createdAt"`
}

// RecordRun stores the summary of one import request.
func (s *Store) RecordRun(ctx context.Context, r importer.RunRecord) error {
	const q = `
		INSERT INTO import_runs (org_id, actor_id, total_rows, created, skipped, started_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := s.db.Exec(ctx, q, r.OrgID, r.ActorID, r.TotalRows, r.Created, r.Skipped, r.StartedAt)
	if err != nil {
		return fmt.Errorf("insert import run: %w", err)
	}
	return nil
}

// ListRuns returns the organization's newest import runs.
func (s *Store) ListRuns(ctx context.Context, orgID uuid.UUID, limit int) ([]ImportRun, error) {
	const q = `
		SELECT id, actor_id, total_rows, created, skipped, started_at, created_at
		FROM import_runs
		WHERE org_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := s.db.Query(ctx, q, orgID, limit)
	if err != nil {
		return nil, fmt.Errorf("list import runs: %w", err)
	}
	defer rows.Close()

	var runs []ImportRun
	for rows.Next() {
		var run ImportRun
		if err := rows.Scan(&run.ID, &run.ActorID, &run.TotalRows, &run.Created,
			&run.Skipped, &run.StartedAt, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan import run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list import runs: %w", err)
	}

	return runs, nil
}
