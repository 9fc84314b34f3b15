package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/prospect-explorer/internal/dataset"
)

func TestGuessMapping_Sample(t *testing.T) {
	got := GuessMapping(dataset.Sample().Columns)

	want := ColumnMapping{
		FieldName:    "Name",
		FieldCompany: "Company",
		FieldRole:    "Role",
		FieldSector:  "Sector Focus",
		FieldEmail:   "Email",
		FieldPhone:   "Number",
		FieldCountry: "Country",
		FieldCRM:     "Present in CRM",
	}
	assert.Equal(t, want, got)
}

func TestGuessMapping_CaseInsensitiveKeepsSpelling(t *testing.T) {
	got := GuessMapping([]string{"FULL NAME", "Employer", "E-Mail", "Mobile"})

	assert.Equal(t, "FULL NAME", got.Column(FieldName))
	assert.Equal(t, "Employer", got.Column(FieldCompany))
	assert.Equal(t, "E-Mail", got.Column(FieldEmail))
	assert.Equal(t, "Mobile", got.Column(FieldPhone))
	assert.Equal(t, "", got.Column(FieldCountry))
	assert.Equal(t, "", got.Column(FieldCRM))
}

func TestGuessMapping_CandidateOrderWins(t *testing.T) {
	// "phone" precedes "mobile" in the candidate list regardless of column order.
	got := GuessMapping([]string{"Mobile", "Phone", "Contact", "Name"})

	assert.Equal(t, "Phone", got.Column(FieldPhone))
	assert.Equal(t, "Name", got.Column(FieldName))
}

func TestGuessMapping_NoMatches(t *testing.T) {
	got := GuessMapping([]string{"foo", "bar"})
	for _, f := range Fields {
		assert.Equal(t, "", got.Column(f), f)
	}
	assert.ErrorIs(t, got.CheckRequired(), ErrRequiredUnmapped)
}

func TestColumnMapping_Validate(t *testing.T) {
	columns := []string{"Name", "Company", "Mail"}

	t.Run("valid", func(t *testing.T) {
		m := ColumnMapping{FieldName: "Name", FieldCompany: "Company", FieldEmail: "Mail"}
		assert.NoError(t, m.Validate(columns))
	})

	t.Run("missing required", func(t *testing.T) {
		m := ColumnMapping{FieldName: "Name"}
		err := m.Validate(columns)

		var me *MappingError
		require.ErrorAs(t, err, &me)
		assert.Equal(t, []Field{FieldCompany}, me.Missing)
		assert.Contains(t, err.Error(), "Company")
	})

	t.Run("unknown column", func(t *testing.T) {
		m := ColumnMapping{FieldName: "Name", FieldCompany: "Company", FieldPhone: "Tel"}
		err := m.Validate(columns)
		require.ErrorIs(t, err, ErrUnknownColumn)
		assert.Contains(t, err.Error(), `Phone="Tel"`)
	})

	t.Run("unknown field", func(t *testing.T) {
		m := ColumnMapping{FieldName: "Name", FieldCompany: "Company", Field("Fax"): "Mail"}
		assert.ErrorIs(t, m.Validate(columns), ErrUnknownField)
	})

	t.Run("nil mapping", func(t *testing.T) {
		var m ColumnMapping
		assert.ErrorIs(t, m.Validate(columns), ErrRequiredUnmapped)
	})
}

func TestColumnMapping_Clone(t *testing.T) {
	m := ColumnMapping{FieldName: "Name"}
	c := m.Clone()
	c[FieldName] = "Other"
	assert.Equal(t, "Name", m[FieldName])
}

func TestFieldLabels(t *testing.T) {
	assert.Equal(t, "Name*", FieldName.Label())
	assert.Equal(t, "Phone/Number", FieldPhone.Label())
	assert.Equal(t, "Present in CRM", FieldCRM.Label())
	assert.Equal(t, "Role", FieldRole.Label())
	assert.True(t, FieldCompany.Required())
	assert.False(t, FieldEmail.Required())
	assert.True(t, FieldCRM.Valid())
	assert.False(t, Field("Fax").Valid())
}
