package importer

import (
	"strings"
	"testing"
	"time"

	"github.com/harborline/crewimport/internal/csv"
)

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func baseRow() csv.Row {
	return csv.Row{
		"first_name":        "Anna",
		"last_name":         "Berg",
		"email":             "anna@example.com",
		"vessel_assignment": "MV Nordkapp",
		"rank":              "Chief Officer",
	}
}

func hasError(r *RowResult, substr string) bool {
	for _, e := range r.Errors {
		if strings.Contains(e, substr) {
			return true
		}
	}
	return false
}

func hasWarning(r *RowResult, substr string) bool {
	for _, w := range r.Warnings {
		if strings.Contains(w, substr) {
			return true
		}
	}
	return false
}

func TestValidateRow_ValidRow(t *testing.T) {
	res := ValidateRow(baseRow(), 2, testNow)

	if !res.Valid {
		t.Fatalf("Valid = false, errors = %v", res.Errors)
	}
	if len(res.Errors) != 0 || len(res.Warnings) != 0 {
		t.Errorf("errors = %v, warnings = %v, want none", res.Errors, res.Warnings)
	}
	if res.Data.RowNumber != 2 {
		t.Errorf("RowNumber = %d, want 2", res.Data.RowNumber)
	}
	if res.Data.Status != StatusPending {
		t.Errorf("Status = %q, want %q", res.Data.Status, StatusPending)
	}
	if res.Data.JoinDate != "2026-03-15" {
		t.Errorf("JoinDate = %q, want default today", res.Data.JoinDate)
	}
	// Position defaults to rank when only rank is given.
	if res.Data.Position != "Chief Officer" {
		t.Errorf("Position = %q, want %q", res.Data.Position, "Chief Officer")
	}
}

func TestValidateRow_FullNameSplit(t *testing.T) {
	tests := []struct {
		name      string
		fullName  string
		wantFirst string
		wantLast  string
	}{
		{"two tokens", "Maria Garcia", "Maria", "Garcia"},
		{"first token then remainder", "Maria Garcia Lopez", "Maria", "Garcia Lopez"},
		{"single token used for both", "Cher", "Cher", "Cher"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := baseRow()
			delete(row, "first_name")
			delete(row, "last_name")
			row["full_name"] = tt.fullName

			res := ValidateRow(row, 2, testNow)
			if res.Data.FirstName != tt.wantFirst {
				t.Errorf("FirstName = %q, want %q", res.Data.FirstName, tt.wantFirst)
			}
			if res.Data.LastName != tt.wantLast {
				t.Errorf("LastName = %q, want %q", res.Data.LastName, tt.wantLast)
			}
			if !res.Valid {
				t.Errorf("Valid = false, errors = %v", res.Errors)
			}
		})
	}
}

func TestValidateRow_ExplicitNamesWinOverFullName(t *testing.T) {
	row := baseRow()
	row["full_name"] = "Someone Else"

	res := ValidateRow(row, 2, testNow)
	if res.Data.FirstName != "Anna" || res.Data.LastName != "Berg" {
		t.Errorf("names = %q %q, want Anna Berg", res.Data.FirstName, res.Data.LastName)
	}
}

func TestValidateRow_MissingNames(t *testing.T) {
	row := baseRow()
	delete(row, "first_name")
	delete(row, "last_name")

	res := ValidateRow(row, 2, testNow)
	if res.Valid {
		t.Error("Valid = true, want false")
	}
	if !hasError(res, "First name is required") || !hasError(res, "Last name is required") {
		t.Errorf("errors = %v, want both name errors", res.Errors)
	}
}

func TestValidateRow_Email(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr string
	}{
		{"missing", "", "Email is required"},
		{"not an email", "not-an-email", "Invalid email format"},
		{"missing tld", "a@b", "Invalid email format"},
		{"contains space", "a b@c.d", "Invalid email format"},
		{"minimal valid", "a@b.c", ""},
		{"normal valid", "crew.member+tag@fleet.example.org", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := baseRow()
			row["email"] = tt.email

			res := ValidateRow(row, 2, testNow)
			if tt.wantErr == "" {
				if len(res.Errors) != 0 {
					t.Errorf("errors = %v, want none", res.Errors)
				}
			} else if !hasError(res, tt.wantErr) {
				t.Errorf("errors = %v, want %q", res.Errors, tt.wantErr)
			}
		})
	}
}

func TestValidateRow_EmailLowercased(t *testing.T) {
	row := baseRow()
	row["email"] = "  Anna.Berg@Example.COM "

	res := ValidateRow(row, 2, testNow)
	if res.Data.Email != "anna.berg@example.com" {
		t.Errorf("Email = %q, want lowercased trimmed", res.Data.Email)
	}
}

func TestValidateRow_VesselColumnFallbacks(t *testing.T) {
	tests := []struct {
		name string
		row  csv.Row
		want string
	}{
		{"vessel_assignment wins", csv.Row{"vessel_assignment": "A", "vessel": "B", "vessel_name": "C"}, "A"},
		{"vessel second", csv.Row{"vessel": "B", "vessel_name": "C"}, "B"},
		{"vessel_name last", csv.Row{"vessel_name": "C"}, "C"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := baseRow()
			delete(row, "vessel_assignment")
			for k, v := range tt.row {
				row[k] = v
			}

			res := ValidateRow(row, 2, testNow)
			if res.Data.VesselAssignment != tt.want {
				t.Errorf("VesselAssignment = %q, want %q", res.Data.VesselAssignment, tt.want)
			}
		})
	}
}

func TestValidateRow_MissingVessel(t *testing.T) {
	row := baseRow()
	delete(row, "vessel_assignment")

	res := ValidateRow(row, 2, testNow)
	if !hasError(res, "Vessel assignment is required") {
		t.Errorf("errors = %v, want vessel error", res.Errors)
	}
}

func TestValidateRow_RankPosition(t *testing.T) {
	row := baseRow()
	delete(row, "rank")

	res := ValidateRow(row, 2, testNow)
	if !hasError(res, "Rank or position is required") {
		t.Errorf("errors = %v, want rank/position error", res.Errors)
	}

	row = baseRow()
	row["position"] = "Watchkeeper"
	res = ValidateRow(row, 2, testNow)
	if res.Data.Rank != "Chief Officer" || res.Data.Position != "Watchkeeper" {
		t.Errorf("rank/position = %q/%q", res.Data.Rank, res.Data.Position)
	}
}

func TestValidateRow_PhoneWarning(t *testing.T) {
	row := baseRow()
	row["phone_number"] = "+47 (22) 33-44-55"
	res := ValidateRow(row, 2, testNow)
	if len(res.Warnings) != 0 {
		t.Errorf("warnings = %v, want none for well-formed phone", res.Warnings)
	}

	row["phone_number"] = "call me maybe"
	res = ValidateRow(row, 2, testNow)
	if !hasWarning(res, "Phone number") {
		t.Errorf("warnings = %v, want phone warning", res.Warnings)
	}
	if !res.Valid {
		t.Error("phone warning must not invalidate the row")
	}
}

func TestValidateRow_PhoneColumnFallback(t *testing.T) {
	row := baseRow()
	row["phone"] = "+47 900 00 000"

	res := ValidateRow(row, 2, testNow)
	if res.Data.PhoneNumber != "+47 900 00 000" {
		t.Errorf("PhoneNumber = %q", res.Data.PhoneNumber)
	}
}

func TestValidateRow_JoinDate(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		wantDate string
		wantErr  bool
		wantWarn bool
	}{
		{"iso date", "2026-01-10", "2026-01-10", false, false},
		{"slash date", "1/10/2026", "2026-01-10", false, false},
		{"unparseable", "next tuesday", "", true, false},
		{"future date warns", "2027-03-15", "2027-03-15", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := baseRow()
			row["join_date"] = tt.value

			res := ValidateRow(row, 2, testNow)
			if tt.wantErr {
				if !hasError(res, "Invalid join date format") {
					t.Errorf("errors = %v, want join date error", res.Errors)
				}
				return
			}
			if res.Data.JoinDate != tt.wantDate {
				t.Errorf("JoinDate = %q, want %q", res.Data.JoinDate, tt.wantDate)
			}
			if tt.wantWarn != hasWarning(res, "Join date is in the future") {
				t.Errorf("warnings = %v, wantWarn = %v", res.Warnings, tt.wantWarn)
			}
			if tt.wantWarn && !res.Valid {
				t.Error("future join date must not invalidate the row")
			}
		})
	}
}

func TestValidateRow_Status(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		want     Status
		wantWarn bool
	}{
		{"blank defaults pending", "", StatusPending, false},
		{"exact match", "Active", StatusActive, false},
		{"case insensitive", "on leave", StatusOnLeave, false},
		{"unrecognized downgrades", "Bogus", StatusPending, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := baseRow()
			if tt.value != "" {
				row["status"] = tt.value
			}

			res := ValidateRow(row, 2, testNow)
			if res.Data.Status != tt.want {
				t.Errorf("Status = %q, want %q", res.Data.Status, tt.want)
			}
			if tt.wantWarn != hasWarning(res, "Unrecognized status") {
				t.Errorf("warnings = %v, wantWarn = %v", res.Warnings, tt.wantWarn)
			}
			if !res.Valid {
				t.Errorf("status handling must never invalidate the row, errors = %v", res.Errors)
			}
		})
	}
}
