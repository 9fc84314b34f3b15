package core

// standardize.go turns mapped raw rows into ProspectRecords.
//
// Each derived field is a pure function of the record's own raw fields, so
// every step below is exposed as a small function and Standardize only wires
// them together. Nothing here returns a per-row error: malformed values
// degrade to "", ContactNone or RegionOther.

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/JonMunkholm/prospect-explorer/internal/dataset"
)

// Standardize maps and enriches rows. It fails only when Name or Company is
// unmapped, and checks that before touching any row.
func Standardize(rows []dataset.RawRow, mapping ColumnMapping) ([]ProspectRecord, error) {
	if err := mapping.CheckRequired(); err != nil {
		return nil, err
	}

	out := make([]ProspectRecord, len(rows))
	for i, row := range rows {
		out[i] = standardizeRow(row, mapping)
	}
	return out, nil
}

func standardizeRow(row dataset.RawRow, mapping ColumnMapping) ProspectRecord {
	rec := extractFields(row, mapping)

	rec.CRM = NormalizeCRM(rec.CRM)

	rec.EmailClean = CleanEmail(rec.Email)
	rec.EmailDomain = EmailDomain(rec.EmailClean)
	rec.HasEmail = rec.EmailClean != ""

	rec.PhoneClean = CleanPhone(rec.Phone)
	rec.HasPhone = rec.PhoneClean != ""

	if rec.Country == "" && rec.PhoneClean != "" {
		rec.Country = InferCountry(rec.PhoneClean)
	}

	rec.ContactType = ClassifyContact(rec.HasEmail, rec.HasPhone, rec.Email)
	rec.Region = RegionFor(rec.Country)

	return rec
}

// extractFields copies the mapped raw values into a record. Unmapped fields
// default to "", and every value is trimmed and null-token normalized.
func extractFields(row dataset.RawRow, mapping ColumnMapping) ProspectRecord {
	get := func(f Field) string {
		col := mapping.Column(f)
		if col == "" {
			return ""
		}
		return dataset.NormalizeCell(row[col])
	}

	return ProspectRecord{
		Name:    get(FieldName),
		Company: get(FieldCompany),
		Role:    get(FieldRole),
		Sector:  get(FieldSector),
		Email:   get(FieldEmail),
		Phone:   get(FieldPhone),
		Country: get(FieldCountry),
		CRM:     get(FieldCRM),
	}
}

// ----------------------------------------------------------------------------
// CRM
// ----------------------------------------------------------------------------

var crmYes = map[string]bool{
	"yes": true, "y": true, "true": true, "1": true, "present": true,
	"in crm": true, "crm": true, "✓": true, "check": true, "checked": true, "x": true,
}

var crmNo = map[string]bool{
	"no": true, "n": true, "false": true, "0": true, "absent": true,
	"not in crm": true, "-": true,
}

// BlankCRMIsNo makes an empty CRM value (including an unmapped CRM column)
// normalize to "No" rather than staying blank. Known-absent and unknown are
// therefore indistinguishable after standardization.
const BlankCRMIsNo = true

// NormalizeCRM maps CRM encodings to "Yes" or "No" case-insensitively.
// Unrecognized literals are returned unchanged.
func NormalizeCRM(raw string) string {
	v := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case crmYes[v]:
		return CRMYes
	case crmNo[v]:
		return CRMNo
	case v == "":
		if BlankCRMIsNo {
			return CRMNo
		}
		return ""
	default:
		return raw
	}
}

// ----------------------------------------------------------------------------
// Email
// ----------------------------------------------------------------------------

// emailRegex accepts a local@domain.tld shape with no '@' or whitespace in
// any part. Pasted contact-page URLs fail it.
var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// CleanEmail returns raw when it looks like an email address, otherwise "".
func CleanEmail(raw string) string {
	if strings.IndexFunc(raw, unicode.IsSpace) >= 0 {
		return ""
	}
	if !emailRegex.MatchString(raw) {
		return ""
	}
	return raw
}

// EmailDomain returns the lower-cased part of a clean email after '@', cut
// at the first '>', ',', ';' or whitespace. Empty input gives "".
func EmailDomain(emailClean string) string {
	at := strings.IndexByte(emailClean, '@')
	if at < 0 {
		return ""
	}
	domain := emailClean[at+1:]
	if end := strings.IndexFunc(domain, isDomainStop); end >= 0 {
		domain = domain[:end]
	}
	return strings.ToLower(domain)
}

func isDomainStop(r rune) bool {
	return r == '>' || r == ',' || r == ';' || unicode.IsSpace(r)
}

// ----------------------------------------------------------------------------
// Phone & country
// ----------------------------------------------------------------------------

// CleanPhone keeps only ASCII digits and '+'.
func CleanPhone(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c == '+' || (c >= '0' && c <= '9') {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// CallingCode pairs an international dialing prefix with a country label.
type CallingCode struct {
	Prefix  string
	Country string
}

// CallingCodes is matched in this order and the first hit wins, so a code
// that is a prefix of a longer one must not shadow it.
var CallingCodes = []CallingCode{
	{"1", "United States/Canada"},
	{"44", "United Kingdom"},
	{"49", "Germany"},
	{"33", "France"},
	{"39", "Italy"},
	{"34", "Spain"},
	{"81", "Japan"},
	{"82", "South Korea"},
	{"86", "China"},
	{"65", "Singapore"},
	{"61", "Australia"},
	{"971", "United Arab Emirates"},
	{"974", "Qatar"},
}

// InferCountry returns the country of the first calling code phoneClean
// starts with, ignoring leading '+'. No match gives "".
func InferCountry(phoneClean string) string {
	digits := strings.TrimLeft(phoneClean, "+")
	if digits == "" {
		return ""
	}
	for _, cc := range CallingCodes {
		if strings.HasPrefix(digits, cc.Prefix) {
			return cc.Country
		}
	}
	return ""
}

// ----------------------------------------------------------------------------
// Contact type & region
// ----------------------------------------------------------------------------

// ClassifyContact applies, in order: both, email only, phone only, a URL in
// the email field (case-sensitive "http" prefix), none.
func ClassifyContact(hasEmail, hasPhone bool, rawEmail string) ContactType {
	switch {
	case hasEmail && hasPhone:
		return ContactBoth
	case hasEmail:
		return ContactEmail
	case hasPhone:
		return ContactPhone
	case strings.HasPrefix(rawEmail, "http"):
		return ContactWebForm
	default:
		return ContactNone
	}
}

var regions = map[string]Region{
	"Japan":                RegionAPAC,
	"China":                RegionAPAC,
	"South Korea":          RegionAPAC,
	"Singapore":            RegionAPAC,
	"Australia":            RegionAPAC,
	"United Arab Emirates": RegionMENA,
	"Qatar":                RegionMENA,
	"Germany":              RegionEMEA,
	"United Kingdom":       RegionEMEA,
	"France":               RegionEMEA,
	"Italy":                RegionEMEA,
	"Spain":                RegionEMEA,
	"United States/Canada": RegionAMER,
}

// RegionFor buckets a country label. Unknown or empty countries are RegionOther.
func RegionFor(country string) Region {
	if r, ok := regions[country]; ok {
		return r
	}
	return RegionOther
}
