package web

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/JonMunkholm/prospect-explorer/internal/core"
)

// maxJSONBody bounds mapping and sheet request bodies.
const maxJSONBody = 64 << 10

// fieldInfo describes one canonical field for API clients.
type fieldInfo struct {
	Field      core.Field `json:"field"`
	Label      string     `json:"label"`
	Required   bool       `json:"required"`
	Column     string     `json:"column"`
	Candidates []string   `json:"candidates"`
}

// mappingResponse is the body of GET /api/mapping.
type mappingResponse struct {
	Mapping core.ColumnMapping `json:"mapping"`
	Columns []string           `json:"columns"`
	Fields  []fieldInfo        `json:"fields"`
}

// qualityResponse is the body of GET /api/quality.
type qualityResponse struct {
	Counts core.QualityCounts `json:"counts"`
	Rows   core.QualityReport `json:"rows"`
}

// handleColumns returns the session's current table metadata.
func (s *Server) handleColumns(w http.ResponseWriter, r *http.Request) {
	state, err := s.service.Session(sessionID(r))
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// handleGetMapping returns the mapping with per-field guessing hints.
func (s *Server) handleGetMapping(w http.ResponseWriter, r *http.Request) {
	state, err := s.service.Session(sessionID(r))
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	fields := make([]fieldInfo, len(core.Fields))
	for i, f := range core.Fields {
		fields[i] = fieldInfo{
			Field:      f,
			Label:      f.Label(),
			Required:   f.Required(),
			Column:     state.Mapping.Column(f),
			Candidates: core.GuessCandidates(f),
		}
	}
	writeJSON(w, http.StatusOK, mappingResponse{
		Mapping: state.Mapping,
		Columns: state.Columns,
		Fields:  fields,
	})
}

// handlePutMapping replaces the mapping with the JSON body.
func (s *Server) handlePutMapping(w http.ResponseWriter, r *http.Request) {
	var m core.ColumnMapping
	if err := decodeJSON(w, r, &m); err != nil {
		respondError(w, r, err, http.StatusBadRequest)
		return
	}
	state, err := s.service.SetMapping(r.Context(), sessionID(r), m)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// handleAPIUpload loads a multipart file upload.
func (s *Server) handleAPIUpload(w http.ResponseWriter, r *http.Request) {
	name, data, err := s.readUpload(w, r)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	ctx, cancel := s.loadContext(r)
	defer cancel()
	state, err := s.service.Upload(ctx, sessionID(r), name, data, r.FormValue("sheet"))
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, http.StatusCreated, state)
}

// handleAPISample switches to the built-in sample.
func (s *Server) handleAPISample(w http.ResponseWriter, r *http.Request) {
	state, err := s.service.UseSample(r.Context(), sessionID(r))
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// handleAPISheet selects another worksheet of the uploaded workbook.
func (s *Server) handleAPISheet(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Sheet string `json:"sheet"`
	}
	if err := decodeJSON(w, r, &body); err != nil {
		respondError(w, r, err, http.StatusBadRequest)
		return
	}
	ctx, cancel := s.loadContext(r)
	defer cancel()
	state, err := s.service.SelectSheet(ctx, sessionID(r), body.Sheet)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// handleAPIQuery loads the configured database query.
func (s *Server) handleAPIQuery(w http.ResponseWriter, r *http.Request) {
	state, err := s.service.LoadQuery(r.Context(), sessionID(r))
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// handleUploadQueueStatus returns the current state of the upload limiter.
func (s *Server) handleUploadQueueStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.Limiter().Status())
}

// handleProspects returns the full exploration for the query parameters.
func (s *Server) handleProspects(w http.ResponseWriter, r *http.Request) {
	exp, err := s.service.Explore(r.Context(), sessionID(r), parseQuery(r.URL.Query()))
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, http.StatusOK, exp)
}

// handleQuality returns the data quality report of the unfiltered table.
func (s *Server) handleQuality(w http.ResponseWriter, r *http.Request) {
	records, err := s.service.Standardized(sessionID(r))
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	report := core.CheckQuality(records)
	writeJSON(w, http.StatusOK, qualityResponse{Counts: report.Counts(), Rows: report})
}

// decodeJSON reads a bounded JSON body into v, rejecting unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}
