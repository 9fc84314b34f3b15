package core

import (
	"sort"
	"strings"
)

// OverviewRow is one line of the prospect list.
type OverviewRow struct {
	Name        string      `json:"name"`
	Company     string      `json:"company"`
	Role        string      `json:"role"`
	Sector      string      `json:"sector"`
	Country     string      `json:"country"`
	Region      Region      `json:"region"`
	CRM         string      `json:"crm"`
	ContactType ContactType `json:"contactType"`
	Email       string      `json:"email"` // EmailClean, or the raw value when that is empty
	Phone       string      `json:"phone"`
	Contact     ContactRef  `json:"contact"`
}

// EmailHref links Email when it is an address.
func (r OverviewRow) EmailHref() string {
	if strings.Contains(r.Email, "@") {
		return "mailto:" + r.Email
	}
	return ""
}

// PhoneHref links Phone when it is non-blank.
func (r OverviewRow) PhoneHref() string {
	if strings.TrimSpace(r.Phone) != "" {
		return "tel:" + r.Phone
	}
	return ""
}

// Overview sorts records by Region, Country, Company, Name and attaches the
// preferred contact. The input slice is not reordered.
func Overview(records []ProspectRecord, pref Preference) []OverviewRow {
	sorted := make([]ProspectRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Region != b.Region {
			return a.Region < b.Region
		}
		if a.Country != b.Country {
			return a.Country < b.Country
		}
		if a.Company != b.Company {
			return a.Company < b.Company
		}
		return a.Name < b.Name
	})

	rows := make([]OverviewRow, len(sorted))
	for i, r := range sorted {
		email := r.EmailClean
		if email == "" {
			email = r.Email
		}
		rows[i] = OverviewRow{
			Name:        r.Name,
			Company:     r.Company,
			Role:        r.Role,
			Sector:      r.Sector,
			Country:     r.Country,
			Region:      r.Region,
			CRM:         r.CRM,
			ContactType: r.ContactType,
			Email:       email,
			Phone:       r.Phone,
			Contact:     PreferredContact(r.EmailClean, r.Phone, pref),
		}
	}
	return rows
}

// ContactCard is a search result in the contact finder.
type ContactCard struct {
	Name        string       `json:"name"`
	Role        string       `json:"role"`
	Company     string       `json:"company"`
	Country     string       `json:"country"`
	CRM         string       `json:"crm"` // dash when blank
	ContactType ContactType  `json:"contactType"`
	Region      Region       `json:"region"`
	Links       []ContactRef `json:"links"`
}

// SearchContacts keeps records whose Name or Company contains q
// case-insensitively, in input order. An empty q keeps everything.
func SearchContacts(records []ProspectRecord, q string) []ContactCard {
	needle := strings.ToLower(strings.TrimSpace(q))

	cards := make([]ContactCard, 0, len(records))
	for _, r := range records {
		if !containsFold(r.Name, needle) && !containsFold(r.Company, needle) {
			continue
		}
		cards = append(cards, contactCard(r))
	}
	return cards
}

func contactCard(r ProspectRecord) ContactCard {
	crm := r.CRM
	if crm == "" {
		crm = "—"
	}

	var links []ContactRef
	switch {
	case r.EmailClean != "":
		links = append(links, emailRef(r.EmailClean))
	case strings.HasPrefix(r.Email, "http"):
		links = append(links, ContactRef{Kind: KindWebForm, Value: "Contact form", Href: r.Email})
	}
	if strings.TrimSpace(r.Phone) != "" {
		links = append(links, phoneRef(r.Phone))
	}

	return ContactCard{
		Name:        r.Name,
		Role:        r.Role,
		Company:     r.Company,
		Country:     r.Country,
		CRM:         crm,
		ContactType: r.ContactType,
		Region:      r.Region,
		Links:       links,
	}
}
