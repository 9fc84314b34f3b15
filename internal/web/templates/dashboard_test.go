package templates

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/prospect-explorer/internal/core"
)

func render(t *testing.T, params DashboardParams) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Dashboard(params).Render(context.Background(), &buf))
	return buf.String()
}

func exploration(records []core.ProspectRecord, search string) *core.Exploration {
	return &core.Exploration{
		Options:    core.FilterOptions(records),
		Quality:    core.CheckQuality(records),
		Records:    records,
		Summary:    core.Summarize(records),
		Overview:   core.Overview(records, core.PreferAuto),
		Contacts:   core.SearchContacts(records, search),
		Breakdowns: core.Breakdown(records),
		Emails:     core.EmailList(records),
		Phones:     core.PhoneList(records),
	}
}

func TestDashboard_EscapesValues(t *testing.T) {
	records := []core.ProspectRecord{{
		Name:        `<script>alert(1)</script>`,
		Company:     `Acme "Holdings"`,
		Email:       "javascript:alert(1)",
		ContactType: core.ContactWebForm,
		Region:      core.RegionOther,
	}, {
		Name:        "Web Only",
		Company:     "Acme",
		Email:       "http://acme.example/contact",
		ContactType: core.ContactWebForm,
		Region:      core.RegionOther,
	}}

	html := render(t, DashboardParams{
		State:       core.SessionState{Source: "leads.csv", Columns: []string{"Name"}},
		Exploration: exploration(records, "acme"),
		Search:      "acme",
	})

	assert.NotContains(t, html, "<script>alert(1)</script>")
	assert.Contains(t, html, "&lt;script&gt;")
	assert.Contains(t, html, "Acme &#34;Holdings&#34;")
	assert.NotContains(t, html, `href="javascript:`)
	assert.Contains(t, html, `href="http://acme.example/contact"`)
}

func TestDashboard_Sections(t *testing.T) {
	records := []core.ProspectRecord{{
		Name: "Yuko Kani", Company: "JERA", Country: "Japan", CRM: "Yes",
		EmailClean: "info@jera.co.jp", Email: "info@jera.co.jp", HasEmail: true,
		Phone: "81-3", HasPhone: true, ContactType: core.ContactBoth, Region: core.RegionAPAC,
	}}
	html := render(t, DashboardParams{
		State: core.SessionState{
			Source:  "book.xlsx",
			Sheet:   "Leads",
			Sheets:  []string{"Notes", "Leads"},
			Columns: []string{"Name", "Company"},
			Rows:    1,
			Mapping: core.ColumnMapping{core.FieldName: "Name", core.FieldCompany: "Company"},
		},
		QueryEnabled: true,
		Exploration:  exploration(records, ""),
		Criteria:     core.Criteria{ContactTypes: core.DefaultContactTypes, CRM: core.CRMFilterYes},
		ExportQuery:  "crm=Yes",
	})

	for _, want := range []string{
		`<option value="Leads" selected>Leads</option>`,
		`action="/query"`,
		`<option value="Company" selected>Company</option>`,
		`value="Both" checked`,
		`<option value="Yes" selected>Yes</option>`,
		`href="mailto:info@jera.co.jp"`,
		`href="tel:81-3"`,
		`href="/export/xlsx?crm=Yes"`,
		"info@jera.co.jp</textarea>",
	} {
		assert.Contains(t, html, want)
	}
	assert.NotContains(t, html, "Contacts matching", "no finder without a search")
}

func TestDashboard_NoticeStopsViews(t *testing.T) {
	html := render(t, DashboardParams{
		State:  core.SessionState{Source: "sample", Columns: []string{"Name"}},
		Notice: &core.UserMessage{Message: "Please map required columns: Name and Company", Action: "Choose a column"},
	})

	assert.Contains(t, html, "Please map required columns")
	assert.Contains(t, html, `name="Company"`)
	assert.NotContains(t, html, "<h2>Filters</h2>")
	assert.NotContains(t, html, "action=\"/query\"", "database form only when enabled")
}

func TestErrorPage(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ErrorPage("Your workspace has expired", "Reload", "SES001").Render(context.Background(), &buf))

	assert.Contains(t, buf.String(), `role="alert"`)
	assert.Contains(t, buf.String(), "Code: SES001")
	assert.Contains(t, buf.String(), `href="/"`)
}
