// Package csv parses crew roster CSV content into header-keyed rows.
//
// The parser is deliberately forgiving: it tolerates quoted fields that
// contain literal commas, strips a single layer of surrounding quotes from
// every header and cell, and skips blank lines. It does not support escaped
// quotes ("" inside a quoted field) or quoted fields spanning multiple lines;
// rosters exported from spreadsheet tools do not produce either in practice.
package csv

import (
	"regexp"
	"strings"
)

// Row maps a normalized header name to the raw cell value for one data line.
type Row map[string]string

var whitespaceRun = regexp.MustCompile(`\s+`)

// Parse splits raw CSV text into header-keyed rows, in file order.
//
// The first non-blank line is the header and is never emitted as data.
// Header names are normalized via CleanHeader; cells via CleanCell.
// Returns an empty slice when no data rows exist; callers decide whether
// that is an error.
func Parse(text string) []Row {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}

	if len(lines) < 2 {
		return nil
	}

	var headers []string
	for _, h := range SplitLine(lines[0]) {
		headers = append(headers, CleanHeader(h))
	}

	rows := make([]Row, 0, len(lines)-1)
	for _, line := range lines[1:] {
		fields := SplitLine(line)
		row := make(Row, len(headers))
		for i, h := range headers {
			if h == "" {
				continue
			}
			if i < len(fields) {
				row[h] = CleanCell(fields[i])
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}

	return rows
}

// SplitLine splits one CSV line on commas, honoring double-quoted fields.
// A comma inside quotes is literal text; quote state toggles on each '"'.
func SplitLine(line string) []string {
	var fields []string
	var current strings.Builder
	inQuotes := false

	for _, ch := range line {
		switch {
		case ch == '"':
			inQuotes = !inQuotes
			current.WriteRune(ch)
		case ch == ',' && !inQuotes:
			fields = append(fields, current.String())
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}
	fields = append(fields, current.String())

	return fields
}

// CleanCell trims whitespace and strips one layer of surrounding quotes.
func CleanCell(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		s = s[1 : len(s)-1]
	}
	return strings.TrimSpace(s)
}

// CleanHeader normalizes a header name: cleaned like a cell, lowercased,
// with internal whitespace runs collapsed to a single underscore.
// "First Name" and `"first  name"` both become "first_name".
func CleanHeader(s string) string {
	s = strings.ToLower(CleanCell(s))
	return whitespaceRun.ReplaceAllString(s, "_")
}
