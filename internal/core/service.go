package core

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/JonMunkholm/prospect-explorer/internal/dataset"
	"github.com/JonMunkholm/prospect-explorer/internal/logging"
)

// Options tunes a Service. Zero values select the package defaults.
type Options struct {
	SessionTTL    time.Duration
	MaxSessions   int
	MaxConcurrent int
	MaxWaitTime   time.Duration
	MaxFileSize   int64

	// DB and Query enable LoadQuery. Both must be set.
	DB           dataset.Querier
	Query        string
	QueryTimeout time.Duration
}

// Service is the entry point for every prospect operation. Each call is a
// full recomputation from the session's raw table and mapping.
type Service struct {
	sessions *SessionStore
	limiter  *UploadLimiter

	maxFileSize  int64
	db           dataset.Querier
	query        string
	queryTimeout time.Duration
}

// NewService creates a Service with its own session store and load limiter.
func NewService(opts Options) *Service {
	queryTimeout := opts.QueryTimeout
	if queryTimeout <= 0 {
		queryTimeout = 30 * time.Second
	}
	return &Service{
		sessions:     NewSessionStore(opts.SessionTTL, opts.MaxSessions),
		limiter:      NewUploadLimiter(opts.MaxConcurrent, opts.MaxWaitTime),
		maxFileSize:  opts.MaxFileSize,
		db:           opts.DB,
		query:        opts.Query,
		queryTimeout: queryTimeout,
	}
}

// Sessions exposes the store for the sweeper.
func (s *Service) Sessions() *SessionStore {
	return s.sessions
}

// Limiter exposes the load limiter for health reporting and shutdown.
func (s *Service) Limiter() *UploadLimiter {
	return s.limiter
}

// QueryEnabled reports whether LoadQuery can run.
func (s *Service) QueryEnabled() bool {
	return s.db != nil && s.query != ""
}

// NewSession starts a workspace on the sample table.
func (s *Service) NewSession(ctx context.Context) SessionState {
	sess := s.sessions.Create()
	logging.WithFields(ctx, "session_id", sess.ID).Info("session created")
	return sess.State()
}

// Session returns the state of a live session.
func (s *Service) Session(id string) (SessionState, error) {
	sess, err := s.sessions.Get(id)
	if err != nil {
		return SessionState{}, err
	}
	return sess.State(), nil
}

// Upload parses a CSV or XLSX file into the session and guesses a mapping.
// An empty sheet selects the workbook's first sheet.
func (s *Service) Upload(ctx context.Context, id, name string, data []byte, sheet string) (SessionState, error) {
	sess, err := s.sessions.Get(id)
	if err != nil {
		return SessionState{}, err
	}
	if name == "" && len(data) == 0 {
		return SessionState{}, ErrNoFile
	}
	if s.maxFileSize > 0 && int64(len(data)) > s.maxFileSize {
		return SessionState{}, fmt.Errorf("%w: %d bytes exceeds %d", ErrFileTooLarge, len(data), s.maxFileSize)
	}

	var (
		table  *dataset.Table
		sheets []string
		keep   []byte
	)
	err = s.limiter.Do(ctx, func() error {
		format, err := dataset.DetectFormat(name)
		if err != nil {
			return err
		}
		if format == dataset.FormatXLSX && len(data) > 0 {
			if sheets, err = dataset.SheetNames(data); err != nil {
				return err
			}
			keep = bytes.Clone(data)
		}
		table, err = dataset.Load(name, data, sheet)
		return err
	})
	if err != nil {
		return SessionState{}, fmt.Errorf("load %s: %w", name, err)
	}

	sess.mu.Lock()
	sess.setTable(table, name, keep, sheets)
	state := sess.stateLocked()
	sess.mu.Unlock()

	logging.WithFields(ctx, "file", table.Source, "sheet", table.Sheet).Info("file loaded",
		"rows", table.Len(),
		"columns", len(table.Columns),
	)
	return state, nil
}

// SelectSheet reloads the session's workbook from another worksheet.
func (s *Service) SelectSheet(ctx context.Context, id, sheet string) (SessionState, error) {
	sess, err := s.sessions.Get(id)
	if err != nil {
		return SessionState{}, err
	}

	sess.mu.Lock()
	name, data := sess.fileName, sess.data
	sess.mu.Unlock()
	if len(data) == 0 {
		return SessionState{}, fmt.Errorf("%w: %q (current source has no worksheets)", dataset.ErrSheetNotFound, sheet)
	}
	return s.Upload(ctx, id, name, data, sheet)
}

// UseSample switches the session back to the built-in sample.
func (s *Service) UseSample(ctx context.Context, id string) (SessionState, error) {
	sess, err := s.sessions.Get(id)
	if err != nil {
		return SessionState{}, err
	}

	sess.mu.Lock()
	sess.setTable(dataset.Sample(), "", nil, nil)
	state := sess.stateLocked()
	sess.mu.Unlock()

	logging.FromContext(ctx).Info("sample loaded", "rows", state.Rows)
	return state, nil
}

// LoadQuery replaces the session's table with the configured database query.
func (s *Service) LoadQuery(ctx context.Context, id string) (SessionState, error) {
	if !s.QueryEnabled() {
		return SessionState{}, ErrQueryDisabled
	}
	sess, err := s.sessions.Get(id)
	if err != nil {
		return SessionState{}, err
	}

	var table *dataset.Table
	err = s.limiter.Do(ctx, func() error {
		qctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
		defer cancel()
		var qerr error
		table, qerr = dataset.QueryTable(qctx, s.db, s.query)
		return qerr
	})
	if err != nil {
		return SessionState{}, err
	}

	sess.mu.Lock()
	sess.setTable(table, "", nil, nil)
	state := sess.stateLocked()
	sess.mu.Unlock()

	logging.FromContext(ctx).Info("query loaded", "rows", table.Len(), "columns", len(table.Columns))
	return state, nil
}

// SetMapping stores a mapping after checking that its columns exist. Leaving
// a required field unmapped is allowed here; Explore reports it.
func (s *Service) SetMapping(ctx context.Context, id string, m ColumnMapping) (SessionState, error) {
	sess, err := s.sessions.Get(id)
	if err != nil {
		return SessionState{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := m.CheckColumns(sess.table.Columns); err != nil {
		return SessionState{}, err
	}
	sess.mapping = m.Clone()

	logging.FromContext(ctx).Info("mapping saved", "mapped", mappedCount(m))
	return sess.stateLocked(), nil
}

func mappedCount(m ColumnMapping) int {
	n := 0
	for _, f := range Fields {
		if m.Column(f) != "" {
			n++
		}
	}
	return n
}

// Exploration is everything derived from one session for one set of
// selections. Quality runs on the unfiltered table; every other view runs on
// the filtered records.
type Exploration struct {
	State      SessionState     `json:"session"`
	Options    FilterChoices    `json:"options"`
	Quality    QualityReport    `json:"quality"`
	Records    []ProspectRecord `json:"records"`
	Summary    Summary          `json:"summary"`
	Overview   []OverviewRow    `json:"overview"`
	Contacts   []ContactCard    `json:"contacts"`
	Breakdowns Breakdowns       `json:"breakdowns"`
	Emails     []string         `json:"emails"`
	Phones     []string         `json:"phones"`
}

// Query holds the per-request selections of Explore.
type Query struct {
	Criteria   Criteria
	Preference Preference
	Search     string
}

// Explore runs the full derivation: mapping check, Standardize, quality on
// the unfiltered table, Filter, then the views.
func (s *Service) Explore(ctx context.Context, id string, q Query) (*Exploration, error) {
	if err := q.Criteria.Validate(); err != nil {
		return nil, err
	}
	sess, err := s.sessions.Get(id)
	if err != nil {
		return nil, err
	}

	state := sess.State()
	records, err := s.standardized(sess)
	if err != nil {
		return &Exploration{State: state}, err
	}

	filtered := Filter(records, q.Criteria)

	exp := &Exploration{
		State:      state,
		Options:    FilterOptions(records),
		Quality:    CheckQuality(records),
		Records:    filtered,
		Summary:    Summarize(filtered),
		Overview:   Overview(filtered, q.Preference),
		Contacts:   SearchContacts(filtered, q.Search),
		Breakdowns: Breakdown(filtered),
		Emails:     EmailList(filtered),
		Phones:     PhoneList(filtered),
	}

	logging.FromContext(ctx).Debug("explored",
		"rows", len(records),
		"filtered", len(filtered),
	)
	return exp, nil
}

// Standardized returns the unfiltered standardized table of a session.
func (s *Service) Standardized(id string) ([]ProspectRecord, error) {
	sess, err := s.sessions.Get(id)
	if err != nil {
		return nil, err
	}
	return s.standardized(sess)
}

func (s *Service) standardized(sess *Session) ([]ProspectRecord, error) {
	table, mapping := sess.snapshot()
	if err := mapping.Validate(table.Columns); err != nil {
		return nil, err
	}
	return Standardize(table.Rows, mapping)
}

// Export writes the filtered standardized table to w.
func (s *Service) Export(ctx context.Context, id string, c Criteria, format ExportFormat, w io.Writer) error {
	if err := c.Validate(); err != nil {
		return err
	}
	records, err := s.Standardized(id)
	if err != nil {
		return err
	}

	filtered := Filter(records, c)
	if err := Export(w, filtered, format); err != nil {
		return fmt.Errorf("export %s: %w", format, err)
	}

	logging.FromContext(ctx).Info("export written", "format", string(format), "rows", len(filtered))
	return nil
}
