package core

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ExportFormat is a download format of the filtered view.
type ExportFormat string

const (
	ExportCSV  ExportFormat = "csv"
	ExportXLSX ExportFormat = "xlsx"
)

// ErrUnsupportedExport is returned for an unknown export format.
var ErrUnsupportedExport = errors.New("unsupported file format for export")

// ExportSheet is the single worksheet of the XLSX export.
const ExportSheet = "Prospects"

// ParseExportFormat accepts "csv" or "xlsx" in any case.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch ExportFormat(strings.ToLower(s)) {
	case ExportCSV:
		return ExportCSV, nil
	case ExportXLSX:
		return ExportXLSX, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedExport, s)
}

// Filename is the download name of an export.
func (f ExportFormat) Filename() string {
	return "prospects_filtered." + string(f)
}

// ContentType is the MIME type of an export.
func (f ExportFormat) ContentType() string {
	if f == ExportXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv"
}

// ExportColumns is the header of both exports: the standardized columns
// without EmailClean and PhoneClean.
var ExportColumns = []string{
	"Name", "Company", "Role", "Sector", "Email", "Phone", "Country", "CRM",
	"EmailDomain", "HasEmail", "HasPhone", "ContactType", "Region",
}

// exportRow renders a record in ExportColumns order.
func exportRow(r ProspectRecord) []string {
	return []string{
		r.Name, r.Company, r.Role, r.Sector, r.Email, r.Phone, r.Country, r.CRM,
		r.EmailDomain, formatBool(r.HasEmail), formatBool(r.HasPhone),
		string(r.ContactType), string(r.Region),
	}
}

func formatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

// Export writes records in the given format.
func Export(w io.Writer, records []ProspectRecord, format ExportFormat) error {
	switch format {
	case ExportCSV:
		return WriteCSV(w, records)
	case ExportXLSX:
		return WriteXLSX(w, records)
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedExport, format)
}

// WriteCSV writes a header row followed by one row per record.
func WriteCSV(w io.Writer, records []ProspectRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ExportColumns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range records {
		if err := cw.Write(exportRow(r)); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes a single-sheet workbook named ExportSheet.
func WriteXLSX(w io.Writer, records []ProspectRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), ExportSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(ExportSheet)
	if err != nil {
		return fmt.Errorf("stream writer: %w", err)
	}

	if err := sw.SetRow("A1", toCells(ExportColumns)); err != nil {
		return fmt.Errorf("write xlsx header: %w", err)
	}
	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, toCells(exportRow(r))); err != nil {
			return fmt.Errorf("write xlsx row %d: %w", i+1, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flush xlsx: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}

// EmailList returns the distinct clean emails of records with an email, in
// first-seen order.
func EmailList(records []ProspectRecord) []string {
	var out []string
	seen := map[string]bool{}
	for _, r := range records {
		if r.HasEmail && !seen[r.EmailClean] {
			seen[r.EmailClean] = true
			out = append(out, r.EmailClean)
		}
	}
	return out
}

// PhoneList returns the distinct raw phones of records with a phone, in
// first-seen order.
func PhoneList(records []ProspectRecord) []string {
	var out []string
	seen := map[string]bool{}
	for _, r := range records {
		if r.HasPhone && !seen[r.Phone] {
			seen[r.Phone] = true
			out = append(out, r.Phone)
		}
	}
	return out
}

// JoinList renders a contact list for copy and paste.
func JoinList(values []string) string {
	return strings.Join(values, ", ")
}
