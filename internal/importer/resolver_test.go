package importer

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestCrossReference_DuplicateEmailModeSensitivity(t *testing.T) {
	reg := &fakeRegistry{
		registered: []string{"anna@example.com"},
		vessels:    []Vessel{{ID: uuid.New(), Name: "MV Nordkapp"}},
	}

	for _, tt := range []struct {
		mode      Mode
		wantValid bool
	}{
		{ModeValidate, true},
		{ModeImport, false},
	} {
		t.Run(string(tt.mode), func(t *testing.T) {
			row := ValidateRow(baseRow(), 2, testNow)
			_, err := crossReference(context.Background(), reg, uuid.New(), []*RowResult{row}, tt.mode)
			if err != nil {
				t.Fatalf("crossReference() error = %v", err)
			}

			if !hasWarning(row, "Email already exists in system") {
				t.Errorf("warnings = %v, want duplicate warning in both modes", row.Warnings)
			}
			if row.Valid != tt.wantValid {
				t.Errorf("Valid = %v, want %v (errors = %v)", row.Valid, tt.wantValid, row.Errors)
			}
			if tt.mode == ModeImport && !hasError(row, "Duplicate email - will be skipped") {
				t.Errorf("errors = %v, want duplicate error in import mode", row.Errors)
			}
		})
	}
}

func TestCrossReference_VesselResolution(t *testing.T) {
	id := uuid.New()
	reg := &fakeRegistry{
		vessels: []Vessel{{ID: id, Name: "MV Nordkapp", IMONumber: "9876543"}},
	}

	tests := []struct {
		name       string
		assignment string
		wantFound  bool
	}{
		{"exact name", "MV Nordkapp", true},
		{"case-insensitive name", "mv nordkapp", true},
		{"imo number", "9876543", true},
		{"unknown vessel", "MV Ghost Ship", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := baseRow()
			row["vessel_assignment"] = tt.assignment
			result := ValidateRow(row, 2, testNow)

			for _, mode := range []Mode{ModeValidate, ModeImport} {
				res, err := crossReference(context.Background(), reg, uuid.New(), []*RowResult{result}, mode)
				if err != nil {
					t.Fatalf("crossReference() error = %v", err)
				}

				if tt.wantFound {
					if !result.Valid {
						t.Errorf("mode %s: Valid = false, errors = %v", mode, result.Errors)
					}
					if got := res.vesselIDs[lowercase(tt.assignment)]; got != id {
						t.Errorf("mode %s: vesselIDs[%q] = %v, want %v", mode, tt.assignment, got, id)
					}
				} else {
					if result.Valid {
						t.Errorf("mode %s: unknown vessel must block in both modes", mode)
					}
					if !hasError(result, "Vessel not found: MV Ghost Ship") {
						t.Errorf("mode %s: errors = %v, want vessel-not-found", mode, result.Errors)
					}
				}
			}
		})
	}
}

func TestCrossReference_BlankEmailSkipsExistenceCheck(t *testing.T) {
	reg := &fakeRegistry{
		registered: []string{"anna@example.com"},
		vessels:    []Vessel{{ID: uuid.New(), Name: "MV Nordkapp"}},
	}

	row := baseRow()
	row["email"] = ""
	result := ValidateRow(row, 2, testNow)

	if _, err := crossReference(context.Background(), reg, uuid.New(), []*RowResult{result}, ModeImport); err != nil {
		t.Fatalf("crossReference() error = %v", err)
	}
	if len(reg.emailQueries) != 1 || len(reg.emailQueries[0]) != 0 {
		t.Errorf("emailQueries = %v, want one empty batch", reg.emailQueries)
	}
	if hasWarning(result, "Email already exists") {
		t.Errorf("blank-email row must not be cross-checked, warnings = %v", result.Warnings)
	}
}
