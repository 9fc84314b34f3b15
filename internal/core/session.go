package core

// session.go keeps each user's working state in memory.
//
// A session owns its raw table, the uploaded bytes (so another worksheet can
// be picked without re-uploading) and the current column mapping. Nothing is
// shared between sessions and nothing survives a restart.

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/JonMunkholm/prospect-explorer/internal/dataset"
)

// DefaultSessionTTL is how long an idle session is kept.
const DefaultSessionTTL = 2 * time.Hour

// DefaultMaxSessions caps the number of live sessions.
const DefaultMaxSessions = 1000

// Session is one user's workspace. All access goes through its methods.
type Session struct {
	ID      string
	Created time.Time

	mu       sync.Mutex
	lastSeen time.Time
	table    *dataset.Table
	fileName string
	data     []byte // raw workbook bytes, kept only for XLSX sources
	sheets   []string
	mapping  ColumnMapping
}

// SessionState is a read-only snapshot of a session.
type SessionState struct {
	ID      string        `json:"id"`
	Source  string        `json:"source"`
	Sheet   string        `json:"sheet,omitempty"`
	Sheets  []string      `json:"sheets,omitempty"`
	Columns []string      `json:"columns"`
	Rows    int           `json:"rows"`
	Mapping ColumnMapping `json:"mapping"`
}

func newSession(id string, now time.Time) *Session {
	s := &Session{ID: id, Created: now, lastSeen: now}
	s.setTable(dataset.Sample(), "", nil, nil)
	return s
}

// setTable replaces the source and resets the mapping to a fresh guess.
// Callers hold s.mu or own s exclusively.
func (s *Session) setTable(t *dataset.Table, fileName string, data []byte, sheets []string) {
	s.table = t
	s.fileName = fileName
	s.data = data
	s.sheets = sheets
	s.mapping = GuessMapping(t.Columns)
}

// State returns a snapshot of the session.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *Session) stateLocked() SessionState {
	return SessionState{
		ID:      s.ID,
		Source:  s.table.Source,
		Sheet:   s.table.Sheet,
		Sheets:  append([]string(nil), s.sheets...),
		Columns: append([]string(nil), s.table.Columns...),
		Rows:    s.table.Len(),
		Mapping: s.mapping.Clone(),
	}
}

// snapshot returns the current table and mapping. The table is never
// mutated after it is stored, so it can be read without the lock.
func (s *Session) snapshot() (*dataset.Table, ColumnMapping) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.table, s.mapping.Clone()
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// SessionStore holds live sessions keyed by ID.
type SessionStore struct {
	ttl time.Duration
	max int
	now func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewSessionStore creates an empty store. Zero arguments select the defaults.
func NewSessionStore(ttl time.Duration, max int) *SessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	if max <= 0 {
		max = DefaultMaxSessions
	}
	return &SessionStore{
		ttl:      ttl,
		max:      max,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// Create starts a session on the sample table. When the store is full the
// longest-idle session is evicted first.
func (st *SessionStore) Create() *Session {
	s := newSession(uuid.New().String(), st.now())

	st.mu.Lock()
	defer st.mu.Unlock()

	for len(st.sessions) >= st.max {
		st.evictOldestLocked()
	}
	st.sessions[s.ID] = s
	return s
}

// Get returns a live session and marks it used.
func (st *SessionStore) Get(id string) (*Session, error) {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}

	now := st.now()
	if now.Sub(s.idleSince()) > st.ttl {
		st.Delete(id)
		return nil, ErrSessionNotFound
	}
	s.touch(now)
	return s, nil
}

// Delete removes a session. Unknown IDs are ignored.
func (st *SessionStore) Delete(id string) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}

// Len returns the number of stored sessions, expired ones included.
func (st *SessionStore) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Sweep removes every session idle for longer than the TTL and returns how
// many were removed.
func (st *SessionStore) Sweep() int {
	cutoff := st.now().Add(-st.ttl)

	st.mu.Lock()
	defer st.mu.Unlock()

	removed := 0
	for id, s := range st.sessions {
		if s.idleSince().Before(cutoff) {
			delete(st.sessions, id)
			removed++
		}
	}
	return removed
}

func (st *SessionStore) evictOldestLocked() {
	type idle struct {
		id   string
		seen time.Time
	}
	all := make([]idle, 0, len(st.sessions))
	for id, s := range st.sessions {
		all = append(all, idle{id, s.idleSince()})
	}
	if len(all) == 0 {
		return
	}
	sort.Slice(all, func(i, j int) bool { return all[i].seen.Before(all[j].seen) })
	delete(st.sessions, all[0].id)
}
