// Package importer implements the bulk crew import pipeline: parse CSV rows,
// validate each row, cross-reference against registered accounts and the
// organization's vessel registry, then either report (validate mode) or
// provision accounts (import mode).
//
// The pipeline is request-scoped and runs rows strictly in file order, so
// results and row numbers are deterministic for a given input and datastore
// state.
package importer

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Mode selects the terminal behavior of the pipeline.
type Mode string

const (
	// ModeValidate annotates rows and reports, with no side effects.
	ModeValidate Mode = "validate"
	// ModeImport provisions an account, profile and vessel assignment for
	// every row that passed validation.
	ModeImport Mode = "import"
)

// Status is a crew member's roster status.
type Status string

const (
	StatusActive   Status = "Active"
	StatusPending  Status = "Pending"
	StatusOnLeave  Status = "On Leave"
	StatusInvited  Status = "Invited"
	StatusInactive Status = "Inactive"
)

// Statuses lists every recognized status, in display order.
var Statuses = []Status{StatusActive, StatusPending, StatusOnLeave, StatusInvited, StatusInactive}

// matchStatus resolves a raw status value case-insensitively against the
// recognized set. Returns false when the value is unrecognized.
func matchStatus(raw string) (Status, bool) {
	for _, s := range Statuses {
		if strings.EqualFold(string(s), raw) {
			return s, true
		}
	}
	return StatusPending, false
}

// Candidate is the normalized, typed record for one crew member derived from
// one CSV data row.
type Candidate struct {
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	Email            string `json:"email"`
	PhoneNumber      string `json:"phoneNumber,omitempty"`
	Rank             string `json:"rank,omitempty"`
	Position         string `json:"position,omitempty"`
	Nationality      string `json:"nationality,omitempty"`
	VesselAssignment string `json:"vesselAssignment"`
	JoinDate         string `json:"joinDate"` // ISO yyyy-mm-dd
	Status           Status `json:"status"`
	RowNumber        int    `json:"rowNumber"` // file line, header = 1
}

// RowResult wraps one Candidate with its accumulated errors and warnings.
// Valid is true iff Errors is empty; cross-reference checks may flip it to
// false after field-level validation passed.
type RowResult struct {
	Data     Candidate `json:"data"`
	Valid    bool      `json:"valid"`
	Errors   []string  `json:"errors"`
	Warnings []string  `json:"warnings"`
}

func (r *RowResult) addError(msg string) {
	r.Errors = append(r.Errors, msg)
	r.Valid = false
}

func (r *RowResult) addWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// BatchOutcome is the validate-mode result: every annotated row plus
// aggregate counts and the vessel mapping discovered during resolution.
type BatchOutcome struct {
	Results       []*RowResult      `json:"results"`
	TotalRows     int               `json:"totalRows"`
	ValidRows     int               `json:"validRows"`
	ErrorRows     int               `json:"errorRows"`
	WarningRows   int               `json:"warningRows"`
	VesselMapping map[string]string `json:"vesselMapping"` // lowercased name -> vessel id
}

// RowError ties a provisioning or validation failure back to its source line.
type RowError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

// ImportOutcome is the import-mode result. Every row that did not produce a
// created account appears in Errors, keyed by its original row number.
type ImportOutcome struct {
	Created int        `json:"created"`
	Skipped int        `json:"skipped"`
	Errors  []RowError `json:"errors"`
}

// Vessel is one entry in an organization's vessel registry.
type Vessel struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	IMONumber string    `json:"imoNumber,omitempty"`
}

// Profile is the crew record linked to a provisioned account.
type Profile struct {
	ID          uuid.UUID
	OrgID       uuid.UUID
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string
	Rank        string
	Position    string
	Nationality string
	Status      Status
	Role        string
}

// Assignment links a profile to a vessel.
type Assignment struct {
	ProfileID uuid.UUID
	VesselID  uuid.UUID
	Position  string
	JoinDate  string // ISO yyyy-mm-dd
	IsCurrent bool
}

// AuditEntry records one provisioning action for the audit trail.
type AuditEntry struct {
	OrgID      uuid.UUID
	Action     string
	ActorID    uuid.UUID
	ActorEmail string
	SubjectID  uuid.UUID
	RowData    map[string]any
	Source     string
}

// RunRecord summarizes one import-mode request.
type RunRecord struct {
	OrgID     uuid.UUID
	ActorID   uuid.UUID
	TotalRows int
	Created   int
	Skipped   int
	StartedAt time.Time
}

// Registry provides the batch-wide lookups cross-reference resolution needs.
type Registry interface {
	// EmailsInUse returns, from the given candidate set, the lowercased
	// emails already registered to the organization.
	EmailsInUse(ctx context.Context, orgID uuid.UUID, emails []string) (map[string]struct{}, error)

	// Vessels returns the organization's vessel registry.
	Vessels(ctx context.Context, orgID uuid.UUID) ([]Vessel, error)
}

// Roster persists the records produced by import mode.
type Roster interface {
	CreateProfile(ctx context.Context, p Profile) error
	CreateAssignment(ctx context.Context, a Assignment) error
	RecordAudit(ctx context.Context, e AuditEntry) error
	RecordRun(ctx context.Context, r RunRecord) error
}
