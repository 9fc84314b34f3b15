package web

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/prospect-explorer/internal/core"
	"github.com/JonMunkholm/prospect-explorer/internal/logging"
	"github.com/JonMunkholm/prospect-explorer/internal/web/templates"
)

// handleDashboard renders the explorer page for the current session.
// An incomplete mapping shows a warning in place of the views.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := parsePageQuery(r.URL.Query())

	exp, err := s.service.Explore(ctx, sessionID(r), q)
	params := templates.DashboardParams{
		QueryEnabled: s.service.QueryEnabled(),
		Criteria:     q.Criteria,
		Preference:   q.Preference,
		Search:       q.Search,
		ExportQuery:  r.URL.RawQuery,
	}

	switch {
	case err == nil:
		params.State = exp.State
		params.Exploration = exp
	case isMappingError(err) && exp != nil:
		msg := core.MapError(err)
		params.State = exp.State
		params.Notice = &msg
	default:
		respondError(w, r, err, statusFor(err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.Dashboard(params).Render(ctx, w); err != nil {
		logging.FromContext(ctx).Error("render dashboard", "error", err)
	}
}

// handleUploadForm loads an uploaded file and returns to the dashboard.
func (s *Server) handleUploadForm(w http.ResponseWriter, r *http.Request) {
	name, data, err := s.readUpload(w, r)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	ctx, cancel := s.loadContext(r)
	defer cancel()
	if _, err := s.service.Upload(ctx, sessionID(r), name, data, r.FormValue("sheet")); err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	redirectHome(w, r)
}

// handleSampleForm switches the session to the built-in sample.
func (s *Server) handleSampleForm(w http.ResponseWriter, r *http.Request) {
	if _, err := s.service.UseSample(r.Context(), sessionID(r)); err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	redirectHome(w, r)
}

// handleSheetForm re-reads the uploaded workbook from another worksheet.
func (s *Server) handleSheetForm(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.loadContext(r)
	defer cancel()
	if _, err := s.service.SelectSheet(ctx, sessionID(r), r.FormValue("sheet")); err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	redirectHome(w, r)
}

// handleQueryForm loads the configured database query.
func (s *Server) handleQueryForm(w http.ResponseWriter, r *http.Request) {
	if _, err := s.service.LoadQuery(r.Context(), sessionID(r)); err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	redirectHome(w, r)
}

// handleMappingForm stores the submitted column mapping.
func (s *Server) handleMappingForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondError(w, r, err, http.StatusBadRequest)
		return
	}
	if _, err := s.service.SetMapping(r.Context(), sessionID(r), mappingFromForm(r.PostForm)); err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	redirectHome(w, r)
}

// handleExport downloads the filtered standardized table. The dashboard
// route applies the dashboard's contact-type default so the file matches
// what the page shows; the API route takes the parameters as given.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format, err := core.ParseExportFormat(chi.URLParam(r, "format"))
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	q := parseQuery(r.URL.Query())
	if !wantsJSON(r) {
		q = parsePageQuery(r.URL.Query())
	}

	// Buffer so a failure can still produce a proper error response.
	var buf bytes.Buffer
	if err := s.service.Export(r.Context(), sessionID(r), q.Criteria, format, &buf); err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", "attachment; filename="+strconv.Quote(format.Filename()))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Write(buf.Bytes())
}

// handleHealth reports liveness with session and load counters.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": s.service.Sessions().Len(),
		"uploads":  s.service.Limiter().Status(),
		"database": s.service.QueryEnabled(),
	})
}

func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func isMappingError(err error) bool {
	return errors.Is(err, core.ErrRequiredUnmapped) ||
		errors.Is(err, core.ErrUnknownColumn) ||
		errors.Is(err, core.ErrUnknownField)
}
