package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/harborline/crewimport/internal/importer"
)

// AuditRecord is the read model for one audit log entry.
type AuditRecord struct {
	ID         uuid.UUID      `json:"id"`
	Action     string         `json:"action"`
	ActorID    uuid.UUID      `json:"actorId,omitempty"`
	ActorEmail string         `json:"actorEmail,omitempty"`
	SubjectID  uuid.UUID      `json:"subjectId,omitempty"`
	RowData    map[string]any `json:"rowData,omitempty"`
	Source     string         `json:"source,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
}

// RecordAudit inserts one audit log entry. The row snapshot is stored as
// JSONB; a snapshot that cannot be marshaled is stored as NULL rather than
// failing the entry.
func (s *Store) RecordAudit(ctx context.Context, e importer.AuditEntry) error {
	var rowData []byte
	if e.RowData != nil {
		if b, err := json.Marshal(e.RowData); err == nil {
			rowData = b
		}
	}

	const q = `
		INSERT INTO audit_logs (org_id, action, actor_id, actor_email, subject_id, row_data, source)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := s.db.Exec(ctx, q,
		e.OrgID, e.Action, e.ActorID, toNullable(e.ActorEmail), e.SubjectID, rowData, toNullable(e.Source))
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

// ListAudit returns the organization's newest audit entries.
func (s *Store) ListAudit(ctx context.Context, orgID uuid.UUID, limit, offset int) ([]AuditRecord, error) {
	const q = `
		SELECT id, action, COALESCE(actor_id, '00000000-0000-0000-0000-000000000000'),
		       actor_email, COALESCE(subject_id, '00000000-0000-0000-0000-000000000000'),
		       row_data, source, created_at
		FROM audit_logs
		WHERE org_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := s.db.Query(ctx, q, orgID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()

	var records []AuditRecord
	for rows.Next() {
		var rec AuditRecord
		var actorEmail, source pgtype.Text
		var rowData []byte
		if err := rows.Scan(&rec.ID, &rec.Action, &rec.ActorID, &actorEmail,
			&rec.SubjectID, &rowData, &source, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		rec.ActorEmail = actorEmail.String
		rec.Source = source.String
		if len(rowData) > 0 {
			_ = json.Unmarshal(rowData, &rec.RowData)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}

	return records, nil
}
