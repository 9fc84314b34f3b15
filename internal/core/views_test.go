package core

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/prospect-explorer/internal/dataset"
)

func standardizedSample(t *testing.T) []ProspectRecord {
	t.Helper()
	sample := dataset.Sample()
	records, err := Standardize(sample.Rows, GuessMapping(sample.Columns))
	require.NoError(t, err)
	return records
}

// ----------------------------------------------------------------------------
// Summary
// ----------------------------------------------------------------------------

func TestSummarize(t *testing.T) {
	records := []ProspectRecord{
		{Company: "A", HasEmail: true, HasPhone: true, CRM: "Yes"},
		{Company: "A", HasEmail: true},
		{Company: "B", HasPhone: true, CRM: "No"},
		{Company: "", CRM: "Maybe"},
	}

	want := Summary{Prospects: 4, Companies: 3, WithEmail: 2, WithPhone: 2, OnlyEmail: 1, OnlyPhone: 1, InCRM: 1}
	assert.Equal(t, want, Summarize(records))
	assert.Equal(t, Summary{}, Summarize(nil))
}

func TestSummarize_Sample(t *testing.T) {
	s := Summarize(standardizedSample(t))
	assert.Equal(t, Summary{Prospects: 3, Companies: 3, WithEmail: 2, WithPhone: 3, OnlyEmail: 0, OnlyPhone: 1, InCRM: 1}, s)
}

// ----------------------------------------------------------------------------
// Preferred contact
// ----------------------------------------------------------------------------

func TestPreferredContact(t *testing.T) {
	email := ContactRef{Kind: KindEmail, Value: "a@b.com", Href: "mailto:a@b.com"}
	phone := ContactRef{Kind: KindPhone, Value: "+1 555", Href: "tel:+1 555"}

	tests := []struct {
		name  string
		email string
		phone string
		pref  Preference
		want  ContactRef
	}{
		{"auto prefers email", "a@b.com", "+1 555", PreferAuto, email},
		{"auto falls back to phone", "", "+1 555", PreferAuto, phone},
		{"email preference", "a@b.com", "+1 555", PreferEmail, email},
		{"email preference falls back", "", "+1 555", PreferEmail, phone},
		{"phone preference", "a@b.com", "+1 555", PreferPhone, phone},
		{"phone preference falls back", "a@b.com", "  ", PreferPhone, email},
		{"nothing usable", "", " ", PreferAuto, ContactRef{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PreferredContact(tt.email, tt.phone, tt.pref))
		})
	}
}

func TestContactRef_Markdown(t *testing.T) {
	assert.Equal(t, "[a@b.com](mailto:a@b.com)", PreferredContact("a@b.com", "", PreferAuto).Markdown())
	assert.Equal(t, "[81-3](tel:81-3)", PreferredContact("", "81-3", PreferAuto).Markdown())
	assert.Equal(t, "", ContactRef{}.Markdown())
}

func TestParsePreference(t *testing.T) {
	assert.Equal(t, PreferEmail, ParsePreference("email"))
	assert.Equal(t, PreferPhone, ParsePreference("Phone"))
	assert.Equal(t, PreferAuto, ParsePreference(""))
	assert.Equal(t, PreferAuto, ParsePreference("fax"))
}

// ----------------------------------------------------------------------------
// Quality
// ----------------------------------------------------------------------------

func TestCheckQuality(t *testing.T) {
	records := []ProspectRecord{
		{Name: "Jane Doe", Company: "Acme", Email: "jane@acme.com", EmailClean: "jane@acme.com", ContactType: ContactEmail},
		{Name: "jane doe", Company: "ACME", Email: "jane@acme", ContactType: ContactNone},
		{Name: "Solo", Company: "Acme", Email: "https://acme.com/contact", ContactType: ContactWebForm},
		{Name: "Ghost", Company: "Nowhere", ContactType: ContactNone},
	}

	q := CheckQuality(records)

	assert.Equal(t, QualityCounts{URLInEmail: 1, InvalidEmail: 1, NoContact: 2, DuplicateNameComp: 2}, q.Counts())
	assert.Equal(t, "Solo", q.URLInEmail[0].Name)
	assert.Equal(t, "jane@acme", q.InvalidEmail[0].Email)
	assert.Equal(t, []QualityRow{
		{Name: "Jane Doe", Company: "Acme", Email: "jane@acme.com"},
		{Name: "jane doe", Company: "ACME", Email: "jane@acme"},
	}, q.DuplicateNameComp)
}

func TestCheckQuality_UniqueNeverFlagged(t *testing.T) {
	q := CheckQuality([]ProspectRecord{{Name: "One", Company: "Only", ContactType: ContactEmail, EmailClean: "x@y.z", Email: "x@y.z"}})
	assert.Equal(t, QualityCounts{}, q.Counts())
}

// ----------------------------------------------------------------------------
// Overview & contact finder
// ----------------------------------------------------------------------------

func TestOverview_SortAndDisplay(t *testing.T) {
	records := []ProspectRecord{
		{Name: "Zed", Company: "B", Country: "Japan", Region: RegionAPAC, Email: "https://b.jp", Phone: "81-1"},
		{Name: "Amy", Company: "B", Country: "Japan", Region: RegionAPAC, Email: "amy@b.jp", EmailClean: "amy@b.jp"},
		{Name: "Bob", Company: "A", Country: "Germany", Region: RegionEMEA},
		{Name: "Cat", Company: "A", Country: "China", Region: RegionAPAC},
	}

	rows := Overview(records, PreferAuto)
	got := make([]string, len(rows))
	for i, r := range rows {
		got[i] = r.Name
	}
	assert.Equal(t, []string{"Cat", "Amy", "Zed", "Bob"}, got)

	assert.Equal(t, "amy@b.jp", rows[1].Email)
	assert.Equal(t, "mailto:amy@b.jp", rows[1].EmailHref())
	assert.Equal(t, "https://b.jp", rows[2].Email)
	assert.Equal(t, "", rows[2].EmailHref())
	assert.Equal(t, "tel:81-1", rows[2].PhoneHref())
	assert.Equal(t, KindPhone, rows[2].Contact.Kind)
	assert.True(t, rows[3].Contact.IsZero())

	// input order untouched
	assert.Equal(t, "Zed", records[0].Name)
}

func TestSearchContacts(t *testing.T) {
	records := standardizedSample(t)

	all := SearchContacts(records, "")
	assert.Len(t, all, 3)

	byCompany := SearchContacts(records, "eurus")
	require.Len(t, byCompany, 1)
	assert.Equal(t, "Tetsuya Suwabe", byCompany[0].Name)

	byName := SearchContacts(records, "MINAMI")
	require.Len(t, byName, 1)
	card := byName[0]
	assert.Equal(t, []ContactRef{
		{Kind: KindWebForm, Value: "Contact form", Href: "https://invenia.jp/contact"},
		{Kind: KindPhone, Value: "81-3-3516-5820", Href: "tel:81-3-3516-5820"},
	}, card.Links)

	assert.Empty(t, SearchContacts(records, "nobody"))
}

func TestSearchContacts_BlankCRMShowsDash(t *testing.T) {
	cards := SearchContacts([]ProspectRecord{{Name: "X", CRM: ""}}, "x")
	require.Len(t, cards, 1)
	assert.Equal(t, "—", cards[0].CRM)
	assert.Empty(t, cards[0].Links)
}

// ----------------------------------------------------------------------------
// Breakdowns
// ----------------------------------------------------------------------------

func TestBreakdown(t *testing.T) {
	records := []ProspectRecord{
		{Company: "A", Sector: "Wind", Country: "Japan", Role: "CEO", CRM: "Yes", ContactType: ContactBoth},
		{Company: "A", Sector: "", Country: "Japan", Role: "", CRM: "", ContactType: ContactEmail},
		{Company: "B", Sector: "Wind", Country: "Germany", Role: "CEO", CRM: "No", ContactType: ContactBoth},
	}

	b := Breakdown(records)

	want := Breakdowns{
		ContactTypes: []Count{{"Both", 2}, {"Email", 1}},
		CRM:          []Count{{"No", 1}, {"Unknown", 1}, {"Yes", 1}},
		Sectors:      []Count{{"Wind", 2}, {"(blank)", 1}},
		Companies:    []Count{{"A", 2}, {"B", 1}},
		Countries:    []Count{{"Japan", 2}, {"Germany", 1}},
		Roles:        []Count{{"CEO", 2}, {"(blank)", 1}},
	}
	if diff := cmp.Diff(want, b); diff != "" {
		t.Errorf("Breakdown mismatch (-want +got):\n%s", diff)
	}
}

func TestBreakdown_SingleValueChartsOmitted(t *testing.T) {
	b := Breakdown(standardizedSample(t))
	assert.Nil(t, b.Countries, "all sample rows are in Japan")
	assert.NotNil(t, b.Sectors)
}

func TestBreakdown_TopRoles(t *testing.T) {
	var records []ProspectRecord
	for i := 0; i < 30; i++ {
		records = append(records, ProspectRecord{Role: fmt.Sprintf("Role %02d", i)})
	}
	records = append(records, ProspectRecord{Role: "Role 29"})

	b := Breakdown(records)
	require.Len(t, b.Roles, TopRoles)
	assert.Equal(t, Count{"Role 29", 2}, b.Roles[0])
	assert.Equal(t, "Role 00", b.Roles[1].Label)
}
