package core

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidFilter is returned when Criteria fails validation.
var ErrInvalidFilter = errors.New("invalid filter")

// CRMFilter is the tri-state CRM selector.
type CRMFilter string

const (
	CRMAll       CRMFilter = "All"
	CRMFilterYes CRMFilter = "Yes"
	CRMFilterNo  CRMFilter = "No"
)

// Criteria is the full set of filter selections. The zero value keeps every
// record. Set-valued criteria keep a record when its field is in the set;
// an empty set keeps everything. Substring criteria are case-insensitive.
type Criteria struct {
	Regions   []Region `json:"regions,omitempty" validate:"dive,oneof=APAC MENA EMEA AMER Other"`
	Countries []string `json:"countries,omitempty"`
	Companies []string `json:"companies,omitempty"`
	Sectors   []string `json:"sectors,omitempty"`

	RoleContains  string `json:"role,omitempty" validate:"max=200"`
	EmailContains string `json:"email,omitempty" validate:"max=200"`
	PhoneContains string `json:"phone,omitempty" validate:"max=200"`

	ContactTypes []ContactType `json:"contactTypes,omitempty" validate:"dive,contacttype"`
	CRM          CRMFilter     `json:"crm,omitempty" validate:"omitempty,oneof=All Yes No"`
}

// DefaultContactTypes is the contact-type selection shown before the user
// submits a filter.
var DefaultContactTypes = []ContactType{ContactEmail, ContactPhone, ContactBoth}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func criteriaValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		// oneof splits on spaces, so "Web form" needs its own rule.
		err := validate.RegisterValidation("contacttype", func(fl validator.FieldLevel) bool {
			return ContactType(fl.Field().String()).Valid()
		})
		if err != nil {
			panic(fmt.Sprintf("register contacttype validation: %v", err))
		}
	})
	return validate
}

// Validate checks enumerated criteria values.
func (c Criteria) Validate() error {
	if err := criteriaValidator().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s=%v", fe.Field(), fe.Value()))
			}
			return fmt.Errorf("%w: %s", ErrInvalidFilter, strings.Join(fields, ", "))
		}
		return fmt.Errorf("%w: %v", ErrInvalidFilter, err)
	}
	return nil
}

// IsEmpty reports whether the criteria keep every record.
func (c Criteria) IsEmpty() bool {
	return len(c.Regions) == 0 && len(c.Countries) == 0 &&
		len(c.Companies) == 0 && len(c.Sectors) == 0 &&
		c.RoleContains == "" && c.EmailContains == "" && c.PhoneContains == "" &&
		len(c.ContactTypes) == 0 && (c.CRM == "" || c.CRM == CRMAll)
}

// Filter returns the records matching every criterion, in input order.
// The input slice is not modified.
func Filter(records []ProspectRecord, c Criteria) []ProspectRecord {
	m := newMatcher(c)

	out := make([]ProspectRecord, 0, len(records))
	for _, r := range records {
		if m.match(r) {
			out = append(out, r)
		}
	}
	return out
}

type matcher struct {
	regions      map[Region]bool
	countries    map[string]bool
	companies    map[string]bool
	sectors      map[string]bool
	contactTypes map[ContactType]bool

	role, email, phone string
	crm                CRMFilter
}

func newMatcher(c Criteria) matcher {
	return matcher{
		regions:      setOf(c.Regions),
		countries:    setOf(c.Countries),
		companies:    setOf(c.Companies),
		sectors:      setOf(c.Sectors),
		contactTypes: setOf(c.ContactTypes),
		role:         strings.ToLower(c.RoleContains),
		email:        strings.ToLower(c.EmailContains),
		phone:        strings.ToLower(c.PhoneContains),
		crm:          c.CRM,
	}
}

func (m matcher) match(r ProspectRecord) bool {
	if m.regions != nil && !m.regions[r.Region] {
		return false
	}
	if m.countries != nil && !m.countries[r.Country] {
		return false
	}
	if m.companies != nil && !m.companies[r.Company] {
		return false
	}
	if m.sectors != nil && !m.sectors[r.Sector] {
		return false
	}
	if !containsFold(r.Role, m.role) || !containsFold(r.Email, m.email) || !containsFold(r.Phone, m.phone) {
		return false
	}
	if m.contactTypes != nil && !m.contactTypes[r.ContactType] {
		return false
	}
	switch m.crm {
	case CRMFilterYes:
		return r.CRM == CRMYes
	case CRMFilterNo:
		return r.CRM == CRMNo
	}
	return true
}

// setOf returns nil for an empty selection so that it keeps everything.
func setOf[T comparable](values []T) map[T]bool {
	if len(values) == 0 {
		return nil
	}
	set := make(map[T]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

// containsFold reports whether s contains the already lower-cased needle.
func containsFold(s, lowerNeedle string) bool {
	if lowerNeedle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), lowerNeedle)
}

// FilterChoices holds the distinct values offered by the filter surface.
type FilterChoices struct {
	Regions   []Region `json:"regions"`
	Countries []string `json:"countries"`
	Companies []string `json:"companies"`
	Sectors   []string `json:"sectors"`
}

// FilterOptions collects sorted distinct regions and non-empty countries,
// companies and sectors from the standardized table.
func FilterOptions(records []ProspectRecord) FilterChoices {
	regions := map[Region]bool{}
	countries := map[string]bool{}
	companies := map[string]bool{}
	sectors := map[string]bool{}

	for _, r := range records {
		regions[r.Region] = true
		if r.Country != "" {
			countries[r.Country] = true
		}
		if r.Company != "" {
			companies[r.Company] = true
		}
		if r.Sector != "" {
			sectors[r.Sector] = true
		}
	}

	return FilterChoices{
		Regions:   sortedKeys(regions),
		Countries: sortedKeys(countries),
		Companies: sortedKeys(companies),
		Sectors:   sortedKeys(sectors),
	}
}

func sortedKeys[T ~string](set map[T]bool) []T {
	out := make([]T, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
