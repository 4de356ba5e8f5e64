package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/harborline/crewimport/internal/csv"
	"github.com/harborline/crewimport/internal/identity"
)

// ErrNoRows is returned when the CSV contains a header but no data rows.
var ErrNoRows = errors.New("No valid rows found in CSV")

// AuditSource tags audit entries created by this pipeline.
const AuditSource = "csv_import"

// Service runs the crew import pipeline against a registry, roster and
// account provisioner.
type Service struct {
	registry Registry
	roster   Roster
	accounts identity.Provisioner

	now func() time.Time
}

// New creates an import Service.
func New(registry Registry, roster Roster, accounts identity.Provisioner) *Service {
	return &Service{
		registry: registry,
		roster:   roster,
		accounts: accounts,
		now:      time.Now,
	}
}

// annotate runs the pure part of the pipeline: parse, per-row validation,
// batch cross-referencing. Both modes share it; only the terminal step
// differs ("annotate once, branch at the end").
func (s *Service) annotate(ctx context.Context, caller identity.Caller, csvContent string, mode Mode) (*BatchOutcome, *resolution, error) {
	rows := csv.Parse(csvContent)
	if len(rows) == 0 {
		return nil, nil, ErrNoRows
	}

	now := s.now()
	results := make([]*RowResult, len(rows))
	for i, row := range rows {
		// Header is line 1, so the first data row reports as row 2.
		results[i] = ValidateRow(row, i+2, now)
	}

	res, err := crossReference(ctx, s.registry, caller.OrgID, results, mode)
	if err != nil {
		return nil, nil, err
	}

	out := &BatchOutcome{
		Results:       results,
		TotalRows:     len(results),
		VesselMapping: make(map[string]string, len(res.vesselIDs)),
	}
	for _, r := range results {
		if r.Valid {
			out.ValidRows++
		}
		if len(r.Errors) > 0 {
			out.ErrorRows++
		}
		if len(r.Warnings) > 0 {
			out.WarningRows++
		}
	}
	for name, id := range res.vesselIDs {
		out.VesselMapping[name] = id.String()
	}

	return out, res, nil
}

// Validate annotates the batch and reports, with no side effects.
func (s *Service) Validate(ctx context.Context, caller identity.Caller, csvContent string) (*BatchOutcome, error) {
	out, _, err := s.annotate(ctx, caller, csvContent, ModeValidate)
	return out, err
}

// Import annotates the batch, then provisions every row that passed
// validation, in file order. Rows are attempted independently; a failure
// never aborts the batch.
func (s *Service) Import(ctx context.Context, caller identity.Caller, csvContent string) (*ImportOutcome, error) {
	started := s.now()

	batch, res, err := s.annotate(ctx, caller, csvContent, ModeImport)
	if err != nil {
		return nil, err
	}

	outcome := &ImportOutcome{Errors: []RowError{}}
	for _, row := range batch.Results {
		if !row.Valid {
			outcome.Skipped++
			for _, msg := range row.Errors {
				outcome.Errors = append(outcome.Errors, RowError{Row: row.Data.RowNumber, Error: msg})
			}
			continue
		}

		// A valid earlier row in this batch may have claimed the email
		// after the point-in-time existence check ran.
		if _, dup := res.existingEmails[row.Data.Email]; dup {
			outcome.Skipped++
			outcome.Errors = append(outcome.Errors, RowError{Row: row.Data.RowNumber, Error: "Duplicate email - will be skipped"})
			continue
		}

		if err := s.provision(ctx, caller, row, res); err != nil {
			outcome.Skipped++
			outcome.Errors = append(outcome.Errors, RowError{Row: row.Data.RowNumber, Error: err.Error()})
			continue
		}

		res.existingEmails[row.Data.Email] = struct{}{}
		outcome.Created++
	}

	run := RunRecord{
		OrgID:     caller.OrgID,
		ActorID:   caller.ID,
		TotalRows: batch.TotalRows,
		Created:   outcome.Created,
		Skipped:   outcome.Skipped,
		StartedAt: started,
	}
	if err := s.roster.RecordRun(ctx, run); err != nil {
		slog.Warn("failed to record import run", "actor", caller.ID, "error", err)
	}

	return outcome, nil
}

// provision creates the account, profile, assignment and audit entry for one
// valid row. Profile failure triggers the compensating account deletion.
// Assignment and audit failures are logged and do not fail the row: an
// account without a vessel assignment is still a usable account.
func (s *Service) provision(ctx context.Context, caller identity.Caller, row *RowResult, res *resolution) error {
	c := row.Data

	password, err := generatePassword()
	if err != nil {
		return fmt.Errorf("failed to generate password: %v", err)
	}

	accountID, err := s.accounts.CreateAccount(ctx, c.Email, password)
	if err != nil {
		return fmt.Errorf("failed to create account: %v", err)
	}

	profile := Profile{
		ID:          accountID,
		OrgID:       caller.OrgID,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		Email:       c.Email,
		PhoneNumber: c.PhoneNumber,
		Rank:        c.Rank,
		Position:    c.Position,
		Nationality: c.Nationality,
		Status:      c.Status,
		Role:        string(identity.RoleCrew),
	}
	if err := s.roster.CreateProfile(ctx, profile); err != nil {
		if delErr := s.accounts.DeleteAccount(ctx, accountID); delErr != nil {
			slog.Error("compensating account deletion failed",
				"account", accountID, "email", c.Email, "error", delErr)
		}
		return fmt.Errorf("failed to create profile: %v", err)
	}

	position := c.Position
	if position == "" {
		position = c.Rank
	}
	if position == "" {
		position = "Crew"
	}
	assignment := Assignment{
		ProfileID: accountID,
		VesselID:  res.vesselIDs[strings.ToLower(c.VesselAssignment)],
		Position:  position,
		JoinDate:  c.JoinDate,
		IsCurrent: true,
	}
	if err := s.roster.CreateAssignment(ctx, assignment); err != nil {
		slog.Warn("vessel assignment insert failed, crew member created without assignment",
			"account", accountID, "vessel", c.VesselAssignment, "error", err)
	}

	audit := AuditEntry{
		OrgID:      caller.OrgID,
		Action:     "crew_member_created",
		ActorID:    caller.ID,
		ActorEmail: caller.Email,
		SubjectID:  accountID,
		Source:     AuditSource,
		RowData: map[string]any{
			"firstName":        c.FirstName,
			"lastName":         c.LastName,
			"email":            c.Email,
			"rank":             c.Rank,
			"position":         c.Position,
			"vesselAssignment": c.VesselAssignment,
			"joinDate":         c.JoinDate,
			"status":           string(c.Status),
			"rowNumber":        c.RowNumber,
		},
	}
	if err := s.roster.RecordAudit(ctx, audit); err != nil {
		slog.Warn("audit log insert failed", "account", accountID, "error", err)
	}

	return nil
}
