package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/harborline/crewimport/internal/importer"
)

// Vessels returns the organization's vessel registry, ordered by name.
func (s *Store) Vessels(ctx context.Context, orgID uuid.UUID) ([]importer.Vessel, error) {
	const q = `
		SELECT id, name, imo_number
		FROM vessels
		WHERE org_id = $1
		ORDER BY name`

	rows, err := s.db.Query(ctx, q, orgID)
	if err != nil {
		return nil, fmt.Errorf("list vessels: %w", err)
	}
	defer rows.Close()

	var vessels []importer.Vessel
	for rows.Next() {
		var v importer.Vessel
		var imo pgtype.Text
		if err := rows.Scan(&v.ID, &v.Name, &imo); err != nil {
			return nil, fmt.Errorf("scan vessel: %w", err)
		}
		v.IMONumber = imo.String
		vessels = append(vessels, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list vessels: %w", err)
	}

	return vessels, nil
}
