package core

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrRequiredUnmapped is returned when Name or Company has no column.
	ErrRequiredUnmapped = errors.New("required field unmapped")

	// ErrUnknownColumn is returned when a mapping points at a column the table does not have.
	ErrUnknownColumn = errors.New("column not found")

	// ErrUnknownField is returned when a mapping names a field that is not canonical.
	ErrUnknownField = errors.New("unknown field")
)

// MappingError lists the required fields that are not mapped.
type MappingError struct {
	Missing []Field
}

func (e *MappingError) Error() string {
	names := make([]string, len(e.Missing))
	for i, f := range e.Missing {
		names[i] = string(f)
	}
	return fmt.Sprintf("required field unmapped: please map required columns: %s", strings.Join(names, ", "))
}

func (e *MappingError) Unwrap() error {
	return ErrRequiredUnmapped
}

// ColumnMapping binds canonical fields to raw column names.
// A field that is absent or bound to "" is unmapped.
type ColumnMapping map[Field]string

// Column returns the raw column bound to f, or "" when unmapped.
func (m ColumnMapping) Column(f Field) string {
	if m == nil {
		return ""
	}
	return m[f]
}

// Clone returns an independent copy of the mapping.
func (m ColumnMapping) Clone() ColumnMapping {
	out := make(ColumnMapping, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// CheckRequired fails with a *MappingError when a required field is unmapped.
func (m ColumnMapping) CheckRequired() error {
	var missing []Field
	for _, f := range Fields {
		if f.Required() && m.Column(f) == "" {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return &MappingError{Missing: missing}
	}
	return nil
}

// Validate checks required fields and that every mapped column exists in columns.
func (m ColumnMapping) Validate(columns []string) error {
	if err := m.CheckRequired(); err != nil {
		return err
	}
	return m.CheckColumns(columns)
}

// CheckColumns fails with ErrUnknownColumn when a mapped column is not in columns.
func (m ColumnMapping) CheckColumns(columns []string) error {
	for f := range m {
		if !f.Valid() {
			return fmt.Errorf("%w: %q", ErrUnknownField, f)
		}
	}

	known := make(map[string]bool, len(columns))
	for _, c := range columns {
		known[c] = true
	}

	var unknown []string
	for _, f := range Fields {
		if col := m.Column(f); col != "" && !known[col] {
			unknown = append(unknown, fmt.Sprintf("%s=%q", f, col))
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("%w: %s", ErrUnknownColumn, strings.Join(unknown, ", "))
	}
	return nil
}

// guessCandidates lists, per field, common header names in priority order.
var guessCandidates = map[Field][]string{
	FieldName:    {"name", "full name", "contact", "person"},
	FieldCompany: {"company", "organisation", "organization", "employer"},
	FieldRole:    {"role", "title", "job title", "position"},
	FieldSector:  {"sector", "sector focus", "focus", "industry"},
	FieldEmail:   {"email", "e-mail", "mail", "contact email"},
	FieldPhone:   {"phone", "mobile", "telephone", "tel", "number", "phone number", "cell"},
	FieldCountry: {"country", "nation", "location", "country name"},
	FieldCRM:     {"present in crm", "crm", "in crm", "crm present"},
}

// GuessCandidates returns the candidate header names for f.
func GuessCandidates(f Field) []string {
	return append([]string(nil), guessCandidates[f]...)
}

// GuessMapping proposes a mapping from header names. For each field the
// first candidate that equals a column name (case-insensitively) wins; the
// column's original spelling is kept. Fields without a match are unmapped.
func GuessMapping(columns []string) ColumnMapping {
	lower := make([]string, len(columns))
	for i, c := range columns {
		lower[i] = strings.ToLower(c)
	}

	m := make(ColumnMapping, len(Fields))
	for _, f := range Fields {
		for _, cand := range guessCandidates[f] {
			if idx := indexOf(lower, cand); idx >= 0 {
				m[f] = columns[idx]
				break
			}
		}
	}
	return m
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}
