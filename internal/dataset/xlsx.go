package dataset

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// SheetNames lists the sheets of an XLSX workbook in workbook order.
func SheetNames(data []byte) ([]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("invalid xlsx: %w", err)
	}
	defer f.Close()

	return f.GetSheetList(), nil
}

// ReadXLSX parses one sheet of an XLSX workbook into a Table.
// An empty sheet name selects the first sheet.
func ReadXLSX(data []byte, sheet string) (*Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("invalid xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyFile
	}

	if sheet == "" {
		sheet = sheets[0]
	} else if !contains(sheets, sheet) {
		return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, sheet)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyFile
	}

	var records [][]string
	for _, rec := range rows[1:] {
		if isBlankRecord(rec) {
			continue
		}
		records = append(records, rec)
	}

	t := newTable(rows[0], records, "")
	t.Sheet = sheet
	return t, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
