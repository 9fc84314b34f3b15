package core

import (
	"fmt"
	"testing"

	"github.com/JonMunkholm/prospect-explorer/internal/dataset"
)

// ============================================================================
// Cleaning Function Benchmarks
// ============================================================================

// BenchmarkCleanEmail benchmarks email validation.
// This runs once per row during standardization.
func BenchmarkCleanEmail(b *testing.B) {
	testCases := []string{
		"info@jera.co.jp",
		"jane@acme",                     // No TLD
		"https://masdar.ae/contact",     // Pasted URL
		"a b@example.com",               // Whitespace
		"first.last+tag@sub.example.io", // Long local part
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, tc := range testCases {
			CleanEmail(tc)
		}
	}
}

// BenchmarkCleanPhone benchmarks digit extraction.
func BenchmarkCleanPhone(b *testing.B) {
	testCases := []string{
		"+81 3-1234-5678",
		"(020) 7946 0000",
		"not a number",
		"",
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, tc := range testCases {
			CleanPhone(tc)
		}
	}
}

// BenchmarkInferCountry benchmarks calling-code lookup.
func BenchmarkInferCountry(b *testing.B) {
	testCases := []string{"81312345678", "442079460000", "97125551234", "11234", ""}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, tc := range testCases {
			InferCountry(tc)
		}
	}
}

// ============================================================================
// Pipeline Benchmarks
// ============================================================================

var benchMapping = ColumnMapping{
	FieldName:    "Name",
	FieldCompany: "Company",
	FieldRole:    "Role",
	FieldSector:  "Sector",
	FieldEmail:   "Email",
	FieldPhone:   "Phone",
	FieldCountry: "Country",
	FieldCRM:     "CRM",
}

// BenchmarkStandardize benchmarks a full standardization pass.
func BenchmarkStandardize(b *testing.B) {
	rows := generateRows(1000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Standardize(rows, benchMapping); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkStandardize_Large benchmarks standardization at 50k rows.
func BenchmarkStandardize_Large(b *testing.B) {
	rows := generateRows(50000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Standardize(rows, benchMapping); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkFilter benchmarks a typical dashboard selection.
func BenchmarkFilter(b *testing.B) {
	records := generateRecords(b, 10000)
	c := Criteria{
		Regions:      []Region{RegionAPAC, RegionEMEA},
		ContactTypes: DefaultContactTypes,
		RoleContains: "sales",
		CRM:          CRMFilterNo,
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Filter(records, c)
	}
}

// BenchmarkViews benchmarks the views derived from one filtered table.
func BenchmarkViews(b *testing.B) {
	records := generateRecords(b, 10000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Summarize(records)
		Breakdown(records)
		Overview(records, PreferAuto)
		CheckQuality(records)
	}
}

// ============================================================================
// Parallel Benchmarks (simulates concurrent sessions)
// ============================================================================

// BenchmarkStandardizeParallel benchmarks sessions standardizing at once.
func BenchmarkStandardizeParallel(b *testing.B) {
	rows := generateRows(1000)

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_, _ = Standardize(rows, benchMapping)
		}
	})
}

// BenchmarkStandardizeAllocs reports allocations per standardized table.
func BenchmarkStandardizeAllocs(b *testing.B) {
	rows := generateRows(100)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Standardize(rows, benchMapping)
	}
}

// ============================================================================
// Helpers
// ============================================================================

// generateRows creates raw rows that cycle through every contact type.
func generateRows(n int) []dataset.RawRow {
	emails := []string{"user%d@example.com", "https://example.com/contact/%d", "", "broken%d@example"}
	phones := []string{"+81 3 1234 %04d", "", "+44 20 7946 %04d", ""}
	countries := []string{"", "Japan", "Germany", ""}
	crm := []string{"yes", "no", "", "n/a"}

	rows := make([]dataset.RawRow, n)
	for i := range rows {
		k := i % 4
		row := dataset.RawRow{
			"Name":    fmt.Sprintf("Person %d", i),
			"Company": fmt.Sprintf("Company %d", i%50),
			"Role":    "Head of Sales",
			"Sector":  "Wind",
			"Country": countries[k],
			"CRM":     crm[k],
		}
		if emails[k] != "" {
			row["Email"] = fmt.Sprintf(emails[k], i)
		}
		if phones[k] != "" {
			row["Phone"] = fmt.Sprintf(phones[k], i%10000)
		}
		rows[i] = row
	}
	return rows
}

func generateRecords(b *testing.B, n int) []ProspectRecord {
	b.Helper()
	records, err := Standardize(generateRows(n), benchMapping)
	if err != nil {
		b.Fatal(err)
	}
	return records
}
