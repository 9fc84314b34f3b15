package core

import "strings"

// QualityRow is the slice of a record shown next to a data-quality issue.
type QualityRow struct {
	Name    string `json:"name"`
	Company string `json:"company"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Country string `json:"country"`
}

func qualityRow(r ProspectRecord) QualityRow {
	return QualityRow{Name: r.Name, Company: r.Company, Email: r.Email, Phone: r.Phone, Country: r.Country}
}

// QualityReport flags issues in the source data. Issues are data, not errors;
// nothing is corrected.
type QualityReport struct {
	URLInEmail        []QualityRow `json:"urlInEmail"`
	InvalidEmail      []QualityRow `json:"invalidEmail"`
	NoContact         []QualityRow `json:"noContact"`
	DuplicateNameComp []QualityRow `json:"duplicateNameCompany"`
}

// QualityCounts is the per-check number of flagged rows.
type QualityCounts struct {
	URLInEmail        int `json:"urlInEmail"`
	InvalidEmail      int `json:"invalidEmail"`
	NoContact         int `json:"noContact"`
	DuplicateNameComp int `json:"duplicateNameCompany"`
}

// Counts returns the size of each issue list.
func (q QualityReport) Counts() QualityCounts {
	return QualityCounts{
		URLInEmail:        len(q.URLInEmail),
		InvalidEmail:      len(q.InvalidEmail),
		NoContact:         len(q.NoContact),
		DuplicateNameComp: len(q.DuplicateNameComp),
	}
}

// CheckQuality runs every check over the unfiltered standardized table.
// Each list keeps input order.
func CheckQuality(records []ProspectRecord) QualityReport {
	keyCount := make(map[string]int, len(records))
	for _, r := range records {
		keyCount[duplicateKey(r)]++
	}

	var q QualityReport
	for _, r := range records {
		if IsURLInEmail(r) {
			q.URLInEmail = append(q.URLInEmail, qualityRow(r))
		}
		if IsInvalidEmail(r) {
			q.InvalidEmail = append(q.InvalidEmail, qualityRow(r))
		}
		if r.ContactType == ContactNone {
			q.NoContact = append(q.NoContact, qualityRow(r))
		}
		if keyCount[duplicateKey(r)] > 1 {
			q.DuplicateNameComp = append(q.DuplicateNameComp, qualityRow(r))
		}
	}
	return q
}

// IsURLInEmail reports whether the raw email field holds a link.
func IsURLInEmail(r ProspectRecord) bool {
	return strings.HasPrefix(r.Email, "http")
}

// IsInvalidEmail reports an '@' in the raw email that failed classification.
func IsInvalidEmail(r ProspectRecord) bool {
	return strings.Contains(r.Email, "@") && r.EmailClean == ""
}

func duplicateKey(r ProspectRecord) string {
	return strings.ToLower(r.Name) + "|" + strings.ToLower(r.Company)
}
