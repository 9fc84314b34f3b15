// Package core provides the business logic of the prospect explorer.
//
// This package holds all domain logic independent of any UI or transport
// layer. The web server and the prospects CLI both drive it through
// [Service], and tests can use it without either.
//
// # Architecture
//
// The package is organized around a single derivation that is rerun in full
// on every request:
//
//   - Mapping: [GuessMapping] proposes a [ColumnMapping] from header names;
//     the user may override it. Name and Company must be mapped.
//   - Standardize: [Standardize] turns raw rows into [ProspectRecord] values
//     with cleaned emails and phones, an inferred country, a [Region] and a
//     [ContactType].
//   - Quality: [CheckQuality] flags issues in the unfiltered table.
//   - Filter: [Filter] applies [Criteria] to the standardized table.
//   - Views: [Summarize], [Overview], [SearchContacts], [Breakdown] and the
//     email and phone lists are computed from the filtered table.
//   - Export: [Export] writes the filtered table as CSV or XLSX.
//
// # Sessions
//
// Each user owns a [Session] holding its raw table and mapping. Sessions live
// in a [SessionStore], expire after a period of inactivity and are evicted by
// [SessionStore.StartSessionSweeper]. A new session starts on the built-in
// sample table.
//
// # Loading
//
// [Service.Upload] parses CSV or XLSX files, [Service.SelectSheet] switches
// worksheets and [Service.LoadQuery] reads the configured SQL query when a
// database is set. File parsing is bounded by an [UploadLimiter].
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using [MapError].
// Each error category has a unique code for support reference:
//
//   - FILE001-FILE006, SHEET001: File errors (size, encoding, format, sheet)
//   - MAP001-MAP003: Mapping errors (required, unknown column, unknown field)
//   - SES001, UPL002-UPL005: Session and load errors
//   - QRY001-QRY002: Query source errors
//   - VAL001-VAL002, RATE001: Request errors
package core
