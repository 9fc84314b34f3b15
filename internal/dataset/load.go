package dataset

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies a supported upload format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// DetectFormat returns the format implied by a file name's extension.
func DetectFormat(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(name))
	}
}

// Load parses an uploaded file. sheet is only used for spreadsheets; an
// empty sheet selects the first one.
func Load(name string, data []byte, sheet string) (*Table, error) {
	format, err := DetectFormat(name)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}

	var t *Table
	switch format {
	case FormatCSV:
		t, err = ParseCSV(data)
	case FormatXLSX:
		t, err = ReadXLSX(data, sheet)
	}
	if err != nil {
		return nil, err
	}

	t.Source = filepath.Base(name)
	return t, nil
}
