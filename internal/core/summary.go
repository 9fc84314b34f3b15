package core

// Summary holds the headline counts of a filtered view.
type Summary struct {
	Prospects int `json:"prospects"`
	Companies int `json:"companies"`
	WithEmail int `json:"withEmail"`
	WithPhone int `json:"withPhone"`
	OnlyEmail int `json:"onlyEmail"`
	OnlyPhone int `json:"onlyPhone"`
	InCRM     int `json:"inCrm"`
}

// Summarize aggregates records. Companies counts distinct Company values,
// the empty company included.
func Summarize(records []ProspectRecord) Summary {
	s := Summary{Prospects: len(records)}
	companies := make(map[string]struct{})

	for _, r := range records {
		companies[r.Company] = struct{}{}
		if r.HasEmail {
			s.WithEmail++
		}
		if r.HasPhone {
			s.WithPhone++
		}
		if r.HasEmail && !r.HasPhone {
			s.OnlyEmail++
		}
		if r.HasPhone && !r.HasEmail {
			s.OnlyPhone++
		}
		if r.CRM == CRMYes {
			s.InCRM++
		}
	}

	s.Companies = len(companies)
	return s
}
