package importer

// resolver.go runs the batch-wide cross-reference checks that depend on more
// than one row's own fields: duplicate emails against registered accounts,
// and vessel-name/IMO resolution against the organization's registry.

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// resolution is what cross-referencing a batch produces: the point-in-time
// set of emails already registered (import mode extends it per created row),
// and the vessel assignment -> vessel id mapping.
type resolution struct {
	existingEmails map[string]struct{}
	vesselIDs      map[string]uuid.UUID // lowercased assignment -> id
}

// crossReference annotates the batch in place. Duplicate emails warn in both
// modes and additionally block in import mode. An unresolvable vessel
// reference blocks in both modes.
func crossReference(ctx context.Context, reg Registry, orgID uuid.UUID, results []*RowResult, mode Mode) (*resolution, error) {
	var emails []string
	for _, r := range results {
		if r.Data.Email != "" {
			emails = append(emails, r.Data.Email)
		}
	}

	existing, err := reg.EmailsInUse(ctx, orgID, emails)
	if err != nil {
		return nil, fmt.Errorf("check existing emails: %w", err)
	}

	for _, r := range results {
		if r.Data.Email == "" {
			continue
		}
		if _, ok := existing[r.Data.Email]; ok {
			r.addWarning("Email already exists in system")
			if mode == ModeImport {
				r.addError("Duplicate email - will be skipped")
			}
		}
	}

	vessels, err := reg.Vessels(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("load vessel registry: %w", err)
	}

	byName := make(map[string]uuid.UUID, len(vessels))
	byIMO := make(map[string]uuid.UUID, len(vessels))
	for _, v := range vessels {
		byName[strings.ToLower(v.Name)] = v.ID
		if v.IMONumber != "" {
			byIMO[strings.ToLower(v.IMONumber)] = v.ID
		}
	}

	vesselIDs := make(map[string]uuid.UUID)
	for _, r := range results {
		assignment := r.Data.VesselAssignment
		if assignment == "" {
			continue
		}
		key := strings.ToLower(assignment)
		if _, ok := vesselIDs[key]; ok {
			continue
		}
		if id, ok := byName[key]; ok {
			vesselIDs[key] = id
		} else if id, ok := byIMO[key]; ok {
			vesselIDs[key] = id
		}
	}

	for _, r := range results {
		assignment := r.Data.VesselAssignment
		if assignment == "" {
			continue
		}
		if _, ok := vesselIDs[strings.ToLower(assignment)]; !ok {
			r.addError(fmt.Sprintf("Vessel not found: %s", assignment))
		}
	}

	return &resolution{existingEmails: existing, vesselIDs: vesselIDs}, nil
}
