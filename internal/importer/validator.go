package importer

// validator.go performs field-level validation of a single CSV row,
// producing a Candidate plus ordered error and warning lists. Cross-reference
// checks (duplicate emails, vessel lookup) happen later in resolver.go.

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/harborline/crewimport/internal/csv"
)

var (
	emailPattern     = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s]+$`)
	phoneBadChar     = regexp.MustCompile(`[^0-9\s+()\-]`)
	candidateLayouts = []string{
		"2006-01-02", "2006/01/02",
		"1/2/2006", "01/02/2006", "1-2-2006",
		"Jan 2, 2006", "2 Jan 2006",
	}
)

// parseJoinDate attempts calendar-date parsing against the accepted layouts.
func parseJoinDate(s string) (time.Time, bool) {
	for _, layout := range candidateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ValidateRow maps one raw row to a Candidate and collects hard errors and
// soft warnings. rowNum is the 1-based file line number (header = 1, first
// data row = 2). now anchors the join-date default and the future-date check.
func ValidateRow(row csv.Row, rowNum int, now time.Time) *RowResult {
	res := &RowResult{
		Valid:    true,
		Errors:   []string{},
		Warnings: []string{},
	}
	c := &res.Data
	c.RowNumber = rowNum

	// Names: explicit columns win; otherwise split full_name on the first
	// space. A full_name without a space is used as both first and last.
	c.FirstName = strings.TrimSpace(row["first_name"])
	c.LastName = strings.TrimSpace(row["last_name"])
	if c.FirstName == "" && c.LastName == "" {
		if full := strings.TrimSpace(row["full_name"]); full != "" {
			if i := strings.Index(full, " "); i >= 0 {
				c.FirstName = full[:i]
				c.LastName = strings.TrimSpace(full[i+1:])
			} else {
				c.FirstName = full
				c.LastName = full
			}
		}
	}
	if c.FirstName == "" {
		res.addError("First name is required")
	}
	if c.LastName == "" {
		res.addError("Last name is required")
	}

	c.Email = strings.ToLower(strings.TrimSpace(row["email"]))
	if c.Email == "" {
		res.addError("Email is required")
	} else if !emailPattern.MatchString(c.Email) {
		res.addError("Invalid email format")
	}

	// First non-blank vessel column wins.
	for _, col := range []string{"vessel_assignment", "vessel", "vessel_name"} {
		if v := strings.TrimSpace(row[col]); v != "" {
			c.VesselAssignment = v
			break
		}
	}
	if c.VesselAssignment == "" {
		res.addError("Vessel assignment is required")
	}

	c.Rank = strings.TrimSpace(row["rank"])
	c.Position = strings.TrimSpace(row["position"])
	if c.Rank == "" && c.Position == "" {
		res.addError("Rank or position is required")
	} else if c.Rank == "" {
		c.Rank = c.Position
	} else if c.Position == "" {
		c.Position = c.Rank
	}

	c.PhoneNumber = strings.TrimSpace(row["phone_number"])
	if c.PhoneNumber == "" {
		c.PhoneNumber = strings.TrimSpace(row["phone"])
	}
	if c.PhoneNumber != "" && phoneBadChar.MatchString(c.PhoneNumber) {
		res.addWarning("Phone number contains unexpected characters")
	}

	c.Nationality = strings.TrimSpace(row["nationality"])

	if raw := strings.TrimSpace(row["join_date"]); raw != "" {
		if t, ok := parseJoinDate(raw); !ok {
			res.addError("Invalid join date format")
		} else {
			c.JoinDate = t.Format("2006-01-02")
			if t.After(now) {
				res.addWarning("Join date is in the future")
			}
		}
	} else {
		c.JoinDate = now.Format("2006-01-02")
	}

	if raw := strings.TrimSpace(row["status"]); raw != "" {
		status, ok := matchStatus(raw)
		if !ok {
			res.addWarning(fmt.Sprintf("Unrecognized status %q, defaulting to %q. Valid statuses: %s",
				raw, StatusPending, statusList()))
		}
		c.Status = status
	} else {
		c.Status = StatusPending
	}

	return res
}

func statusList() string {
	names := make([]string, len(Statuses))
	for i, s := range Statuses {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
