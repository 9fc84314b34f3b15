package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/prospect-explorer/internal/core"
)

// DashboardParams is everything the dashboard renders for one request.
type DashboardParams struct {
	State        core.SessionState
	QueryEnabled bool

	// Exploration is nil when the mapping is incomplete.
	Exploration *core.Exploration
	Notice      *core.UserMessage

	Criteria   core.Criteria
	Preference core.Preference
	Search     string

	// ExportQuery is the encoded query string carried by the export links.
	ExportQuery string
}

// Dashboard renders the full explorer page.
func Dashboard(params DashboardParams) templ.Component {
	return Layout("Prospect Explorer", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &page{w: w}
		p.render(ctx, SourceForm(params.State, params.QueryEnabled))
		p.render(ctx, MappingForm(params.State))

		if params.Notice != nil {
			p.render(ctx, WarningAlert(params.Notice.Message, params.Notice.Action))
			return p.err
		}
		if params.Exploration == nil {
			return p.err
		}

		exp := params.Exploration
		p.render(ctx, FilterForm(exp.Options, params.Criteria, params.Preference, params.Search))
		p.render(ctx, KPIs(exp.Summary))
		p.render(ctx, OverviewTable(exp.Overview))
		if params.Search != "" {
			p.render(ctx, ContactFinder(params.Search, exp.Contacts))
		}
		p.render(ctx, BreakdownTables(exp.Breakdowns))
		p.render(ctx, QualitySection(exp.Quality))
		p.render(ctx, ContactLists(exp.Emails, exp.Phones))
		p.render(ctx, ExportLinks(params.ExportQuery))
		return p.err
	}))
}

// SourceForm renders the upload, sample, worksheet and database controls.
func SourceForm(state core.SessionState, queryEnabled bool) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		p := &page{w: w}
		p.raw("<section><h2>Data source</h2>")
		p.raw(`<p class="muted">Current: `)
		p.text(state.Source)
		if state.Sheet != "" {
			p.raw(" / ")
			p.text(state.Sheet)
		}
		p.raw(" · ")
		p.num(state.Rows)
		p.raw(" rows</p>")

		p.raw(`<form method="post" action="/upload" enctype="multipart/form-data">`)
		p.raw(`<input type="file" name="file" accept=".csv,.xlsx" required> `)
		p.raw(`<button type="submit">Upload</button></form>`)

		p.raw(`<form method="post" action="/sample"><button type="submit">Use sample data</button></form>`)

		if len(state.Sheets) > 0 {
			p.raw(`<form method="post" action="/sheet"><label>Worksheet <select name="sheet">`)
			for _, sh := range state.Sheets {
				p.raw("<option")
				p.attr("value", sh)
				p.flag("selected", sh == state.Sheet)
				p.raw(">")
				p.text(sh)
				p.raw("</option>")
			}
			p.raw(`</select></label> <button type="submit">Load sheet</button></form>`)
		}

		if queryEnabled {
			p.raw(`<form method="post" action="/query"><button type="submit">Load from database</button></form>`)
		}
		p.raw("</section>")
		return p.err
	})
}

// MappingForm renders one select per canonical field.
func MappingForm(state core.SessionState) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		p := &page{w: w}
		p.raw(`<section><h2>Column mapping</h2><form method="post" action="/mapping"><div class="grid">`)
		for _, f := range core.Fields {
			current := state.Mapping.Column(f)
			p.raw("<label>")
			p.text(f.Label())
			p.raw("<br><select")
			p.attr("name", string(f))
			p.raw(`><option value="">(none)</option>`)
			for _, col := range state.Columns {
				p.raw("<option")
				p.attr("value", col)
				p.flag("selected", col == current)
				p.raw(">")
				p.text(col)
				p.raw("</option>")
			}
			p.raw("</select></label>")
		}
		p.raw(`</div><p><button type="submit">Apply mapping</button></p></form></section>`)
		return p.err
	})
}

// FilterForm renders the sidebar filters as a GET form.
func FilterForm(opts core.FilterChoices, c core.Criteria, pref core.Preference, search string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		p := &page{w: w}
		p.raw(`<section><h2>Filters</h2><form method="get" action="/">`)
		p.raw(`<input type="hidden" name="filtered" value="1"><div class="grid">`)

		multiSelect(p, "Region", "region", toStrings(opts.Regions), toStrings(c.Regions))
		multiSelect(p, "Country", "country", opts.Countries, c.Countries)
		multiSelect(p, "Company", "company", opts.Companies, c.Companies)
		multiSelect(p, "Sector", "sector", opts.Sectors, c.Sectors)

		p.raw("<fieldset><legend>Contact type</legend>")
		selected := toStrings(c.ContactTypes)
		for _, ct := range core.ContactTypes {
			p.raw(`<label><input type="checkbox" name="contact_type"`)
			p.attr("value", string(ct))
			p.flag("checked", contains(selected, string(ct)))
			p.raw("> ")
			p.text(string(ct))
			p.raw("</label><br>")
		}
		p.raw("</fieldset>")

		textInput(p, "Role contains", "role", c.RoleContains)
		textInput(p, "Email contains", "email", c.EmailContains)
		textInput(p, "Phone contains", "phone", c.PhoneContains)

		crm := string(c.CRM)
		if crm == "" {
			crm = string(core.CRMAll)
		}
		singleSelect(p, "Present in CRM", "crm", []string{
			string(core.CRMAll), string(core.CRMFilterYes), string(core.CRMFilterNo),
		}, crm)
		singleSelect(p, "Preferred contact", "prefer", []string{
			string(core.PreferAuto), string(core.PreferEmail), string(core.PreferPhone),
		}, string(pref))
		textInput(p, "Find a contact", "q", search)

		p.raw(`</div><p><button type="submit">Apply filters</button> `)
		p.link("/?filtered=1", "Clear")
		p.raw("</p></form></section>")
		return p.err
	})
}

// KPIs renders the summary counters.
func KPIs(s core.Summary) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		p := &page{w: w}
		p.raw(`<section class="kpis">`)
		kpi(p, "Prospects", s.Prospects)
		kpi(p, "Companies", s.Companies)
		kpi(p, "With email", s.WithEmail)
		kpi(p, "With phone", s.WithPhone)
		kpi(p, "Only email", s.OnlyEmail)
		kpi(p, "Only phone", s.OnlyPhone)
		kpi(p, "In CRM", s.InCRM)
		p.raw("</section>")
		return p.err
	})
}

func kpi(p *page, label string, value int) {
	p.raw(`<div class="kpi"><strong>`)
	p.num(value)
	p.raw("</strong>")
	p.text(label)
	p.raw("</div>")
}

// OverviewTable renders the sorted prospect list.
func OverviewTable(rows []core.OverviewRow) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		p := &page{w: w}
		p.raw("<section><h2>Overview</h2>")
		if len(rows) == 0 {
			p.raw(`<p class="muted">No prospects match the current filters.</p></section>`)
			return p.err
		}
		p.raw("<table><thead><tr>")
		for _, h := range []string{"Region", "Country", "Company", "Name", "Role", "Sector", "CRM", "Contact type", "Email", "Phone", "Contact"} {
			p.raw("<th>")
			p.text(h)
			p.raw("</th>")
		}
		p.raw("</tr></thead><tbody>")
		for _, r := range rows {
			p.raw("<tr>")
			cell(p, string(r.Region))
			cell(p, r.Country)
			cell(p, r.Company)
			cell(p, r.Name)
			cell(p, r.Role)
			cell(p, r.Sector)
			cell(p, r.CRM)
			cell(p, string(r.ContactType))
			linkCell(p, r.EmailHref(), r.Email)
			linkCell(p, r.PhoneHref(), r.Phone)
			p.raw("<td>")
			contactLink(p, r.Contact)
			p.raw("</td></tr>")
		}
		p.raw("</tbody></table></section>")
		return p.err
	})
}

// ContactFinder renders the search results as cards.
func ContactFinder(query string, cards []core.ContactCard) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		p := &page{w: w}
		p.raw("<section><h2>Contacts matching “")
		p.text(query)
		p.raw("”</h2>")
		if len(cards) == 0 {
			p.raw(`<p class="muted">No contacts found.</p></section>`)
			return p.err
		}
		p.raw(`<div class="grid">`)
		for _, c := range cards {
			p.raw("<div><strong>")
			p.text(c.Name)
			p.raw("</strong><br>")
			p.text(c.Role)
			p.raw(" · ")
			p.text(c.Company)
			p.raw(`<br><span class="muted">`)
			p.text(c.Country + " · " + string(c.Region) + " · CRM: " + c.CRM + " · " + string(c.ContactType))
			p.raw("</span><br>")
			for i, ref := range c.Links {
				if i > 0 {
					p.raw(" | ")
				}
				contactLink(p, ref)
			}
			p.raw("</div>")
		}
		p.raw("</div></section>")
		return p.err
	})
}

// BreakdownTables renders the count tables behind the charts.
func BreakdownTables(b core.Breakdowns) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		p := &page{w: w}
		p.raw(`<section><h2>Breakdowns</h2><div class="grid">`)
		countTable(p, "Contact type", b.ContactTypes)
		countTable(p, "Present in CRM", b.CRM)
		if b.Sectors != nil {
			countTable(p, "Sector", b.Sectors)
		}
		countTable(p, "Company", b.Companies)
		if b.Countries != nil {
			countTable(p, "Country", b.Countries)
		}
		countTable(p, "Top roles", b.Roles)
		p.raw("</div></section>")
		return p.err
	})
}

func countTable(p *page, title string, counts []core.Count) {
	p.raw("<table><thead><tr><th>")
	p.text(title)
	p.raw("</th><th>Count</th></tr></thead><tbody>")
	for _, c := range counts {
		p.raw("<tr>")
		cell(p, c.Label)
		p.raw("<td>")
		p.num(c.Value)
		p.raw("</td></tr>")
	}
	p.raw("</tbody></table>")
}

// QualitySection renders the data quality counts and offending rows.
func QualitySection(q core.QualityReport) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		p := &page{w: w}
		counts := q.Counts()
		p.raw(`<section><h2>Data quality</h2><div class="kpis">`)
		kpi(p, "URL in email", counts.URLInEmail)
		kpi(p, "Invalid email", counts.InvalidEmail)
		kpi(p, "No contact", counts.NoContact)
		kpi(p, "Duplicate name + company", counts.DuplicateNameComp)
		p.raw("</div>")
		qualityTable(p, "URL in email", q.URLInEmail)
		qualityTable(p, "Invalid email", q.InvalidEmail)
		qualityTable(p, "No contact", q.NoContact)
		qualityTable(p, "Duplicate name + company", q.DuplicateNameComp)
		p.raw("</section>")
		return p.err
	})
}

func qualityTable(p *page, title string, rows []core.QualityRow) {
	if len(rows) == 0 {
		return
	}
	p.raw("<details><summary>")
	p.text(title)
	p.raw(" (")
	p.num(len(rows))
	p.raw(")</summary><table><thead><tr><th>Name</th><th>Company</th><th>Email</th><th>Phone</th><th>Country</th></tr></thead><tbody>")
	for _, r := range rows {
		p.raw("<tr>")
		cell(p, r.Name)
		cell(p, r.Company)
		cell(p, r.Email)
		cell(p, r.Phone)
		cell(p, r.Country)
		p.raw("</tr>")
	}
	p.raw("</tbody></table></details>")
}

// ContactLists renders the copyable email and phone lists.
func ContactLists(emails, phones []string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		p := &page{w: w}
		p.raw(`<section><h2>Lists</h2><div class="grid"><label>Emails (`)
		p.num(len(emails))
		p.raw(`)<textarea readonly>`)
		p.text(core.JoinList(emails))
		p.raw(`</textarea></label><label>Phones (`)
		p.num(len(phones))
		p.raw(`)<textarea readonly>`)
		p.text(core.JoinList(phones))
		p.raw("</textarea></label></div></section>")
		return p.err
	})
}

// ExportLinks renders the download links for the filtered view.
func ExportLinks(query string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		p := &page{w: w}
		suffix := ""
		if query != "" {
			suffix = "?" + query
		}
		p.raw("<section><h2>Export</h2>")
		p.link("/export/csv"+suffix, "Download CSV")
		p.raw(" · ")
		p.link("/export/xlsx"+suffix, "Download XLSX")
		p.raw("</section>")
		return p.err
	})
}

func cell(p *page, s string) {
	p.raw("<td>")
	p.text(s)
	p.raw("</td>")
}

func linkCell(p *page, href, label string) {
	p.raw("<td>")
	if href == "" {
		p.text(label)
	} else {
		p.link(string(templ.URL(href)), label)
	}
	p.raw("</td>")
}

// contactLink writes a ContactRef. Hrefs that fail URL sanitization are
// replaced by templ.
func contactLink(p *page, ref core.ContactRef) {
	if ref.IsZero() {
		return
	}
	p.link(string(templ.URL(ref.Href)), ref.Value)
}

func multiSelect(p *page, label, name string, options, selected []string) {
	p.raw("<label>")
	p.text(label)
	p.raw("<br><select multiple size=\"5\"")
	p.attr("name", name)
	p.raw(">")
	for _, o := range options {
		p.raw("<option")
		p.attr("value", o)
		p.flag("selected", contains(selected, o))
		p.raw(">")
		if o == "" {
			p.text("(blank)")
		} else {
			p.text(o)
		}
		p.raw("</option>")
	}
	p.raw("</select></label>")
}

func singleSelect(p *page, label, name string, options []string, current string) {
	p.raw("<label>")
	p.text(label)
	p.raw("<br><select")
	p.attr("name", name)
	p.raw(">")
	for _, o := range options {
		p.raw("<option")
		p.attr("value", o)
		p.flag("selected", o == current)
		p.raw(">")
		p.text(o)
		p.raw("</option>")
	}
	p.raw("</select></label>")
}

func textInput(p *page, label, name, value string) {
	p.raw("<label>")
	p.text(label)
	p.raw(`<br><input type="text"`)
	p.attr("name", name)
	p.attr("value", value)
	p.raw("></label>")
}

func toStrings[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
