package dataset

// csv.go reads delimited text exports.
//
// Spreadsheet tools produce CSVs in a handful of encodings. The reader
// accepts UTF-8 (with or without BOM) and UTF-16 with a BOM, and falls back
// to Windows-1252 for anything that is not valid UTF-8, which covers the
// "Save as CSV" output of older Excel builds.

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// ReadCSV parses a CSV stream into a Table.
func ReadCSV(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return ParseCSV(data)
}

// ParseCSV parses CSV bytes into a Table.
func ParseCSV(data []byte) (*Table, error) {
	decoded, _, err := DetectAndDecode(data)
	if err != nil {
		return nil, fmt.Errorf("encoding error: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(decoded))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyFile
		}
		return nil, fmt.Errorf("invalid csv header: %w", err)
	}

	var records [][]string
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("invalid csv: %w", err)
		}
		if isBlankRecord(rec) {
			continue
		}
		records = append(records, rec)
	}

	return newTable(header, records, ""), nil
}

// DetectAndDecode strips any BOM and converts the input to UTF-8.
// It returns the decoded bytes and the name of the detected encoding.
func DetectAndDecode(data []byte) ([]byte, string, error) {
	if len(data) == 0 {
		return data, "utf-8", nil
	}

	name := "utf-8"
	var fallback transform.Transformer = unicode.UTF8.NewDecoder()

	switch {
	case bytes.HasPrefix(data, bomUTF16LE), bytes.HasPrefix(data, bomUTF16BE):
		name = "utf-16"
	case !utf8.Valid(data):
		name = "windows-1252"
		fallback = charmap.Windows1252.NewDecoder()
	}

	// BOMOverride consumes a UTF-8 or UTF-16 BOM and picks the matching
	// decoder, otherwise it defers to the fallback.
	out, _, err := transform.Bytes(unicode.BOMOverride(fallback), data)
	if err != nil {
		return nil, "", err
	}
	return out, name, nil
}

// isBlankRecord reports whether every field of a record is empty.
func isBlankRecord(rec []string) bool {
	for _, f := range rec {
		if NormalizeCell(f) != "" {
			return false
		}
	}
	return true
}
