package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/harborline/crewimport/internal/importer"
)

// EmailsInUse returns, from the candidate set, the lowercased emails already
// registered to a profile in the organization. One batched query regardless
// of batch size.
func (s *Store) EmailsInUse(ctx context.Context, orgID uuid.UUID, emails []string) (map[string]struct{}, error) {
	out := make(map[string]struct{})
	if len(emails) == 0 {
		return out, nil
	}

	lowered := make([]string, len(emails))
	for i, e := range emails {
		lowered[i] = strings.ToLower(e)
	}

	const q = `
		SELECT lower(email)
		FROM profiles
		WHERE org_id = $1 AND lower(email) = ANY($2)`

	rows, err := s.db.Query(ctx, q, orgID, lowered)
	if err != nil {
		return nil, fmt.Errorf("check emails: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, fmt.Errorf("scan email: %w", err)
		}
		out[email] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("check emails: %w", err)
	}

	return out, nil
}

// CreateProfile inserts the crew profile linked to a provisioned account.
func (s *Store) CreateProfile(ctx context.Context, p importer.Profile) error {
	const q = `
		INSERT INTO profiles
			(id, org_id, first_name, last_name, email, phone_number,
			 rank, position, nationality, status, role)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := s.db.Exec(ctx, q,
		p.ID, p.OrgID, p.FirstName, p.LastName, p.Email, toNullable(p.PhoneNumber),
		toNullable(p.Rank), toNullable(p.Position), toNullable(p.Nationality),
		string(p.Status), p.Role)
	if err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

// toNullable maps empty strings to NULL.
func toNullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
