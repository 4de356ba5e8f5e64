package csv

import (
	"reflect"
	"testing"
)

func TestParse_RowCountAndOrder(t *testing.T) {
	text := "First Name,Last Name,Email\n" +
		"Anna,Berg,anna@example.com\n" +
		"Carl,Dahl,carl@example.com\n" +
		"Eva,Falk,eva@example.com\n"

	rows := Parse(text)
	if len(rows) != 3 {
		t.Fatalf("Parse() returned %d rows, want 3", len(rows))
	}

	wantFirst := []string{"Anna", "Carl", "Eva"}
	for i, want := range wantFirst {
		if got := rows[i]["first_name"]; got != want {
			t.Errorf("row %d first_name = %q, want %q", i, got, want)
		}
	}
}

func TestParse_HeaderNormalization(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"lowercase", "Email", "email"},
		{"spaces to underscore", "First Name", "first_name"},
		{"whitespace run collapsed", "Join   Date", "join_date"},
		{"surrounding quotes stripped", `"Vessel Assignment"`, "vessel_assignment"},
		{"padding trimmed", "  Rank  ", "rank"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanHeader(tt.header); got != tt.want {
				t.Errorf("CleanHeader(%q) = %q, want %q", tt.header, got, tt.want)
			}
		})
	}
}

func TestParse_QuotedCommaIsLiteral(t *testing.T) {
	text := "name,email\n" +
		`"Smith, John",john@example.com` + "\n"

	rows := Parse(text)
	if len(rows) != 1 {
		t.Fatalf("Parse() returned %d rows, want 1", len(rows))
	}
	if got := rows[0]["name"]; got != "Smith, John" {
		t.Errorf("name = %q, want %q", got, "Smith, John")
	}
	if got := rows[0]["email"]; got != "john@example.com" {
		t.Errorf("email = %q, want %q", got, "john@example.com")
	}
}

func TestParse_HeaderOnlyYieldsNoRows(t *testing.T) {
	if rows := Parse("first_name,last_name,email\n"); len(rows) != 0 {
		t.Errorf("Parse(header only) returned %d rows, want 0", len(rows))
	}
	if rows := Parse(""); len(rows) != 0 {
		t.Errorf("Parse(empty) returned %d rows, want 0", len(rows))
	}
}

func TestParse_BlankLinesSkipped(t *testing.T) {
	text := "name,email\n" +
		"\n" +
		"Anna,anna@example.com\n" +
		"   \n" +
		"Carl,carl@example.com\n\n"

	rows := Parse(text)
	if len(rows) != 2 {
		t.Fatalf("Parse() returned %d rows, want 2", len(rows))
	}
}

func TestParse_ShortRowFillsBlanks(t *testing.T) {
	text := "name,email,rank\nAnna,anna@example.com\n"

	rows := Parse(text)
	if len(rows) != 1 {
		t.Fatalf("Parse() returned %d rows, want 1", len(rows))
	}
	if got, ok := rows[0]["rank"]; !ok || got != "" {
		t.Errorf("rank = %q (present=%v), want empty string present", got, ok)
	}
}

func TestParse_CRLFLineEndings(t *testing.T) {
	text := "name,email\r\nAnna,anna@example.com\r\n"

	rows := Parse(text)
	if len(rows) != 1 {
		t.Fatalf("Parse() returned %d rows, want 1", len(rows))
	}
	if got := rows[0]["email"]; got != "anna@example.com" {
		t.Errorf("email = %q, want %q", got, "anna@example.com")
	}
}

func TestSplitLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{"plain fields", "a,b,c", []string{"a", "b", "c"}},
		{"quoted comma", `"a,b",c`, []string{`"a,b"`, "c"}},
		{"trailing empty field", "a,b,", []string{"a", "b", ""}},
		{"single field", "abc", []string{"abc"}},
		{"empty line", "", []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SplitLine(tt.line); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitLine(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}
