package core

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/JonMunkholm/prospect-explorer/internal/dataset"
)

const leadsCSV = "Full Name,Employer,Title,Industry,E-mail,Mobile,Nation,CRM\n" +
	"Jane Doe,Acme,VP Sales,Wind,jane@acme.com,+44 20 7946 0000,,yes\n" +
	"jane doe,ACME,VP Sales,Wind,jane@acme,,,\n" +
	"Omar Aziz,Masdar,CFO,Solar,https://masdar.ae/contact,,United Arab Emirates,no\n" +
	"Li Wei,CTG,Engineer,Hydro,,+86 10 1234 5678,,n/a\n"

func newTestService(opts Options) (*Service, context.Context) {
	return NewService(opts), context.Background()
}

func TestService_NewSessionUsesSample(t *testing.T) {
	svc, ctx := newTestService(Options{})
	state := svc.NewSession(ctx)

	exp, err := svc.Explore(ctx, state.ID, Query{})
	require.NoError(t, err)

	assert.Equal(t, 3, exp.Summary.Prospects)
	assert.Equal(t, ContactBoth, exp.Records[0].ContactType)
	assert.Equal(t, RegionAPAC, exp.Records[0].Region)
	assert.Equal(t, []string{"info@jera.co.jp", "contact@eurus-energy.com"}, exp.Emails)
}

func TestService_UploadCSVAndExplore(t *testing.T) {
	svc, ctx := newTestService(Options{})
	id := svc.NewSession(ctx).ID

	state, err := svc.Upload(ctx, id, "leads.csv", []byte(leadsCSV), "")
	require.NoError(t, err)
	assert.Equal(t, "leads.csv", state.Source)
	assert.Equal(t, 4, state.Rows)
	assert.Equal(t, "Full Name", state.Mapping.Column(FieldName))
	assert.Equal(t, "Nation", state.Mapping.Column(FieldCountry))

	exp, err := svc.Explore(ctx, id, Query{
		Criteria:   Criteria{ContactTypes: DefaultContactTypes},
		Preference: PreferPhone,
		Search:     "acme",
	})
	require.NoError(t, err)

	// quality runs on the unfiltered table
	assert.Equal(t, QualityCounts{URLInEmail: 1, InvalidEmail: 1, NoContact: 1, DuplicateNameComp: 2}, exp.Quality.Counts())

	assert.Equal(t, 2, exp.Summary.Prospects, "Jane Doe and Li Wei")
	assert.Equal(t, "United Kingdom", exp.Records[0].Country)
	assert.Equal(t, "China", exp.Records[1].Country)
	assert.Equal(t, KindPhone, exp.Overview[0].Contact.Kind)
	require.Len(t, exp.Contacts, 1)
	assert.Equal(t, "Jane Doe", exp.Contacts[0].Name)
	assert.Contains(t, exp.Options.Regions, RegionMENA)
}

func TestService_MappingErrors(t *testing.T) {
	svc, ctx := newTestService(Options{})
	id := svc.NewSession(ctx).ID

	_, err := svc.SetMapping(ctx, id, ColumnMapping{FieldName: "Name", FieldCompany: "Nope"})
	require.ErrorIs(t, err, ErrUnknownColumn)

	_, err = svc.SetMapping(ctx, id, ColumnMapping{FieldName: "Name"})
	require.NoError(t, err, "unmapping a required field is stored")

	exp, err := svc.Explore(ctx, id, Query{})
	require.ErrorIs(t, err, ErrRequiredUnmapped)
	require.NotNil(t, exp)
	assert.Equal(t, 3, exp.State.Rows, "state is still returned for the mapping form")
	assert.Empty(t, exp.Records)

	err = svc.Export(ctx, id, Criteria{}, ExportCSV, &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrRequiredUnmapped)
}

func TestService_UploadErrors(t *testing.T) {
	svc, ctx := newTestService(Options{MaxFileSize: 64})
	id := svc.NewSession(ctx).ID

	_, err := svc.Upload(ctx, id, "", nil, "")
	assert.ErrorIs(t, err, ErrNoFile)

	_, err = svc.Upload(ctx, id, "big.csv", bytes.Repeat([]byte("x"), 65), "")
	assert.ErrorIs(t, err, ErrFileTooLarge)

	_, err = svc.Upload(ctx, id, "notes.txt", []byte("x"), "")
	assert.ErrorIs(t, err, dataset.ErrUnsupportedFormat)

	_, err = svc.Upload(ctx, id, "empty.csv", nil, "")
	assert.ErrorIs(t, err, dataset.ErrEmptyFile)

	_, err = svc.Upload(ctx, "missing", "a.csv", []byte("Name\n"), "")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	// failed loads leave the previous table in place
	state, err := svc.Session(id)
	require.NoError(t, err)
	assert.Equal(t, dataset.SampleSource, state.Source)
}

func TestService_SheetSelection(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"Notes"}))
	_, err := f.NewSheet("Leads")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Leads", "A1", &[]interface{}{"Name", "Company", "Phone"}))
	require.NoError(t, f.SetSheetRow("Leads", "A2", &[]interface{}{"Ken", "JERA", "+81 3 0000"}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())

	svc, ctx := newTestService(Options{})
	id := svc.NewSession(ctx).ID

	state, err := svc.Upload(ctx, id, "book.xlsx", buf.Bytes(), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Sheet1", "Leads"}, state.Sheets)
	assert.Equal(t, "Sheet1", state.Sheet)

	state, err = svc.SelectSheet(ctx, id, "Leads")
	require.NoError(t, err)
	assert.Equal(t, "Leads", state.Sheet)
	assert.Equal(t, "Phone", state.Mapping.Column(FieldPhone))

	exp, err := svc.Explore(ctx, id, Query{})
	require.NoError(t, err)
	assert.Equal(t, "Japan", exp.Records[0].Country)

	_, err = svc.SelectSheet(ctx, id, "Missing")
	assert.ErrorIs(t, err, dataset.ErrSheetNotFound)

	_, err = svc.UseSample(ctx, id)
	require.NoError(t, err)
	_, err = svc.SelectSheet(ctx, id, "Leads")
	assert.ErrorIs(t, err, dataset.ErrSheetNotFound, "sample has no worksheets")
}

func TestService_ExportFiltered(t *testing.T) {
	svc, ctx := newTestService(Options{})
	id := svc.NewSession(ctx).ID

	var buf bytes.Buffer
	err := svc.Export(ctx, id, Criteria{ContactTypes: []ContactType{ContactPhone}}, ExportCSV, &buf)
	require.NoError(t, err)

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Yosuke Minami", rows[1][0])

	err = svc.Export(ctx, id, Criteria{CRM: "Maybe"}, ExportCSV, &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrInvalidFilter)
}

func TestService_Busy(t *testing.T) {
	svc, ctx := newTestService(Options{MaxConcurrent: 1, MaxWaitTime: 20 * time.Millisecond})
	id := svc.NewSession(ctx).ID

	require.NoError(t, svc.Limiter().Acquire(ctx))
	defer svc.Limiter().Release()

	_, err := svc.Upload(ctx, id, "leads.csv", []byte(leadsCSV), "")
	assert.ErrorIs(t, err, ErrTooManyUploads)
}

// ----------------------------------------------------------------------------
// Query source
// ----------------------------------------------------------------------------

type stubRows struct {
	fields []pgconn.FieldDescription
	data   [][]any
	pos    int
}

func (r *stubRows) Close()                                       {}
func (r *stubRows) Err() error                                   { return nil }
func (r *stubRows) CommandTag() pgconn.CommandTag                { return pgconn.NewCommandTag("SELECT") }
func (r *stubRows) FieldDescriptions() []pgconn.FieldDescription { return r.fields }
func (r *stubRows) Scan(...any) error                            { return errors.New("unused") }
func (r *stubRows) Values() ([]any, error)                       { return r.data[r.pos-1], nil }
func (r *stubRows) RawValues() [][]byte                          { return nil }
func (r *stubRows) Conn() *pgx.Conn                              { return nil }
func (r *stubRows) Next() bool {
	if r.pos < len(r.data) {
		r.pos++
		return true
	}
	return false
}

type stubDB struct {
	rows pgx.Rows
	err  error
}

func (db stubDB) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return db.rows, db.err
}

func TestService_LoadQuery(t *testing.T) {
	t.Run("disabled without database", func(t *testing.T) {
		svc, ctx := newTestService(Options{})
		id := svc.NewSession(ctx).ID
		_, err := svc.LoadQuery(ctx, id)
		assert.ErrorIs(t, err, ErrQueryDisabled)
		assert.False(t, svc.QueryEnabled())
	})

	t.Run("loads rows", func(t *testing.T) {
		rows := &stubRows{
			fields: []pgconn.FieldDescription{{Name: "name"}, {Name: "company"}, {Name: "crm"}},
			data:   [][]any{{"Jane", "Acme", true}},
		}
		svc, ctx := newTestService(Options{DB: stubDB{rows: rows}, Query: "select * from prospects"})
		id := svc.NewSession(ctx).ID

		state, err := svc.LoadQuery(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, dataset.QuerySource, state.Source)

		exp, err := svc.Explore(ctx, id, Query{})
		require.NoError(t, err)
		assert.Equal(t, "Yes", exp.Records[0].CRM)
	})

	t.Run("database error", func(t *testing.T) {
		svc, ctx := newTestService(Options{DB: stubDB{err: errors.New("connection refused")}, Query: "select 1"})
		id := svc.NewSession(ctx).ID
		_, err := svc.LoadQuery(ctx, id)
		require.Error(t, err)
		assert.Equal(t, "QRY002", MapError(err).Code)
	})
}
