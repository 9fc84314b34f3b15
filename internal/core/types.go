package core

// Field is one of the eight canonical prospect fields a raw column can be mapped to.
type Field string

const (
	FieldName    Field = "Name"
	FieldCompany Field = "Company"
	FieldRole    Field = "Role"
	FieldSector  Field = "Sector"
	FieldEmail   Field = "Email"
	FieldPhone   Field = "Phone"
	FieldCountry Field = "Country"
	FieldCRM     Field = "CRM"
)

// Fields lists the canonical fields in display order.
var Fields = []Field{
	FieldName, FieldCompany, FieldRole, FieldSector,
	FieldEmail, FieldPhone, FieldCountry, FieldCRM,
}

// Label returns the field's label on the mapping surface.
func (f Field) Label() string {
	switch f {
	case FieldName:
		return "Name*"
	case FieldCompany:
		return "Company*"
	case FieldSector:
		return "Sector Focus"
	case FieldPhone:
		return "Phone/Number"
	case FieldCRM:
		return "Present in CRM"
	default:
		return string(f)
	}
}

// Required reports whether the field must be mapped before standardization runs.
func (f Field) Required() bool {
	return f == FieldName || f == FieldCompany
}

// Valid reports whether f is one of the canonical fields.
func (f Field) Valid() bool {
	for _, known := range Fields {
		if f == known {
			return true
		}
	}
	return false
}

// ContactType classifies how a prospect can be reached.
type ContactType string

const (
	ContactNone    ContactType = "None"
	ContactEmail   ContactType = "Email"
	ContactPhone   ContactType = "Phone"
	ContactBoth    ContactType = "Both"
	ContactWebForm ContactType = "Web form"
)

// ContactTypes lists every contact type in filter-surface order.
var ContactTypes = []ContactType{ContactEmail, ContactPhone, ContactBoth, ContactWebForm, ContactNone}

// Valid reports whether c is one of the known contact types.
func (c ContactType) Valid() bool {
	for _, ct := range ContactTypes {
		if c == ct {
			return true
		}
	}
	return false
}

// Region is a coarse geographic bucket derived from Country.
type Region string

const (
	RegionAPAC  Region = "APAC"
	RegionMENA  Region = "MENA"
	RegionEMEA  Region = "EMEA"
	RegionAMER  Region = "AMER"
	RegionOther Region = "Other"
)

// CRM presence values after normalization. Any other non-empty literal is
// an unrecognized CRM encoding passed through verbatim.
const (
	CRMYes = "Yes"
	CRMNo  = "No"
)

// ProspectRecord is one standardized row. Derived fields are computed once by
// Standardize and never edited afterwards.
type ProspectRecord struct {
	Name    string `json:"name"`
	Company string `json:"company"`
	Role    string `json:"role"`
	Sector  string `json:"sector"`
	Email   string `json:"email"` // As supplied: an address, a URL or empty
	Phone   string `json:"phone"` // As supplied
	Country string `json:"country"`
	CRM     string `json:"crm"`

	EmailClean  string      `json:"emailClean"`
	EmailDomain string      `json:"emailDomain"`
	HasEmail    bool        `json:"hasEmail"`
	PhoneClean  string      `json:"phoneClean"`
	HasPhone    bool        `json:"hasPhone"`
	ContactType ContactType `json:"contactType"`
	Region      Region      `json:"region"`
}
