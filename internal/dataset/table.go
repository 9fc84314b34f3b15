// Package dataset loads tabular contact lists into a generic table of
// string-typed columns.
//
// Every loader produces the same shape: an ordered header and rows keyed by
// header name, with blanks and null tokens already collapsed to "". The
// package knows nothing about prospects or canonical fields; that mapping is
// done by package core.
package dataset

import (
	"errors"
	"strconv"
	"strings"
)

var (
	// ErrEmptyFile is returned when the input has no header row.
	ErrEmptyFile = errors.New("empty file")

	// ErrUnsupportedFormat is returned for file extensions other than .csv and .xlsx.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrSheetNotFound is returned when a requested spreadsheet sheet does not exist.
	ErrSheetNotFound = errors.New("sheet not found")
)

// nullTokens are cell values treated as missing, compared case-insensitively.
var nullTokens = map[string]bool{
	"":     true,
	"na":   true,
	"n/a":  true,
	"-":    true,
	"--":   true,
	"none": true,
}

// RawRow maps a column name to its cell value.
type RawRow map[string]string

// Table is a loaded tabular source.
type Table struct {
	Columns []string // Header names in source order
	Rows    []RawRow // Data rows in source order
	Source  string   // File name, "sample" or "query"
	Sheet   string   // Sheet name for spreadsheet sources
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// HasColumn reports whether the table has a column with exactly this name.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// IsNullToken reports whether s (after trimming) is one of the null tokens.
func IsNullToken(s string) bool {
	return nullTokens[strings.ToLower(strings.TrimSpace(s))]
}

// NormalizeCell trims whitespace and collapses null tokens to "".
func NormalizeCell(s string) string {
	s = strings.TrimSpace(s)
	if nullTokens[strings.ToLower(s)] {
		return ""
	}
	return s
}

// newTable builds a Table from a header and raw records.
// Short records are padded with "", long records are truncated to the header width.
func newTable(header []string, records [][]string, source string) *Table {
	columns := uniqueHeaders(header)

	t := &Table{
		Columns: columns,
		Rows:    make([]RawRow, 0, len(records)),
		Source:  source,
	}

	for _, rec := range records {
		row := make(RawRow, len(columns))
		for i, col := range columns {
			if i < len(rec) {
				row[col] = NormalizeCell(rec[i])
			} else {
				row[col] = ""
			}
		}
		t.Rows = append(t.Rows, row)
	}

	return t
}

// uniqueHeaders trims header names and disambiguates repeats as "name.1",
// "name.2", skipping any suffix already taken by another header.
// Blank headers become "Unnamed: <index>".
func uniqueHeaders(header []string) []string {
	used := make(map[string]bool, len(header))
	suffix := make(map[string]int, len(header))
	out := make([]string, len(header))

	for i, h := range header {
		name := strings.TrimSpace(h)
		if name == "" {
			name = "Unnamed: " + strconv.Itoa(i)
		}
		base := name
		for used[name] {
			suffix[base]++
			name = base + "." + strconv.Itoa(suffix[base])
		}
		used[name] = true
		out[i] = name
	}

	return out
}
