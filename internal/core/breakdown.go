package core

import "sort"

// TopRoles caps the role breakdown.
const TopRoles = 25

const (
	blankLabel   = "(blank)"
	unknownLabel = "Unknown"
)

// Count is one bar of a breakdown.
type Count struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// Breakdowns holds the chart data of a filtered view. Sectors and Countries
// are nil when they would show a single bar.
type Breakdowns struct {
	ContactTypes []Count `json:"contactTypes"`
	CRM          []Count `json:"crm"`
	Sectors      []Count `json:"sectors,omitempty"`
	Companies    []Count `json:"companies"`
	Countries    []Count `json:"countries,omitempty"`
	Roles        []Count `json:"roles"`
}

// Breakdown counts records per category. Each list is sorted by count
// descending with ties broken by label.
func Breakdown(records []ProspectRecord) Breakdowns {
	contactTypes := map[string]int{}
	crm := map[string]int{}
	sectors := map[string]int{}
	companies := map[string]int{}
	countries := map[string]int{}
	roles := map[string]int{}

	for _, r := range records {
		contactTypes[string(r.ContactType)]++
		crm[orLabel(r.CRM, unknownLabel)]++
		sectors[orLabel(r.Sector, blankLabel)]++
		companies[r.Company]++
		countries[orLabel(r.Country, blankLabel)]++
		roles[orLabel(r.Role, blankLabel)]++
	}

	b := Breakdowns{
		ContactTypes: sortedCounts(contactTypes),
		CRM:          sortedCounts(crm),
		Companies:    sortedCounts(companies),
		Roles:        sortedCounts(roles),
	}
	if len(sectors) > 1 {
		b.Sectors = sortedCounts(sectors)
	}
	if len(countries) > 1 {
		b.Countries = sortedCounts(countries)
	}
	if len(b.Roles) > TopRoles {
		b.Roles = b.Roles[:TopRoles]
	}
	return b
}

func orLabel(v, blank string) string {
	if v == "" {
		return blank
	}
	return v
}

func sortedCounts(m map[string]int) []Count {
	out := make([]Count, 0, len(m))
	for label, n := range m {
		out = append(out, Count{Label: label, Value: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Label < out[j].Label
	})
	return out
}
