package store

import (
	"context"
	"fmt"

	"github.com/harborline/crewimport/internal/importer"
)

// CreateAssignment links a profile to a vessel as its current assignment.
func (s *Store) CreateAssignment(ctx context.Context, a importer.Assignment) error {
	const q = `
		INSERT INTO crew_assignments (profile_id, vessel_id, position, join_date, is_current)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := s.db.Exec(ctx, q, a.ProfileID, a.VesselID, a.Position, a.JoinDate, a.IsCurrent)
	if err != nil {
		return fmt.Errorf("insert assignment: %w", err)
	}
	return nil
}
