package web

// params.go turns URL query parameters into explorer selections.

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/JonMunkholm/prospect-explorer/internal/core"
)

// parseQuery reads the filter, preference and search parameters.
// Repeated parameters (region, country, company, sector, contact_type)
// form sets; an explicitly selected empty value matches blank fields.
func parseQuery(values url.Values) core.Query {
	c := core.Criteria{
		Regions:       toRegions(values["region"]),
		Countries:     values["country"],
		Companies:     values["company"],
		Sectors:       values["sector"],
		RoleContains:  strings.TrimSpace(values.Get("role")),
		EmailContains: strings.TrimSpace(values.Get("email")),
		PhoneContains: strings.TrimSpace(values.Get("phone")),
		ContactTypes:  toContactTypes(values["contact_type"]),
		CRM:           parseCRM(values.Get("crm")),
	}
	return core.Query{
		Criteria:   c,
		Preference: core.ParsePreference(values.Get("prefer")),
		Search:     strings.TrimSpace(values.Get("q")),
	}
}

// parsePageQuery is parseQuery with the dashboard default: until a filter
// form has been submitted, only reachable contact types are shown.
func parsePageQuery(values url.Values) core.Query {
	q := parseQuery(values)
	if !values.Has("filtered") && len(q.Criteria.ContactTypes) == 0 {
		q.Criteria.ContactTypes = append([]core.ContactType(nil), core.DefaultContactTypes...)
	}
	return q
}

// parseCRM accepts the tri-state in any case; unknown values pass through
// so validation can reject them.
func parseCRM(s string) core.CRMFilter {
	s = strings.TrimSpace(s)
	for _, v := range []core.CRMFilter{core.CRMAll, core.CRMFilterYes, core.CRMFilterNo} {
		if strings.EqualFold(s, string(v)) {
			return v
		}
	}
	return core.CRMFilter(s)
}

func toRegions(values []string) []core.Region {
	if len(values) == 0 {
		return nil
	}
	out := make([]core.Region, 0, len(values))
	for _, v := range values {
		out = append(out, core.Region(strings.TrimSpace(v)))
	}
	return out
}

// toContactTypes matches contact types case-insensitively.
func toContactTypes(values []string) []core.ContactType {
	if len(values) == 0 {
		return nil
	}
	out := make([]core.ContactType, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		ct := core.ContactType(v)
		for _, known := range core.ContactTypes {
			if strings.EqualFold(v, string(known)) {
				ct = known
				break
			}
		}
		out = append(out, ct)
	}
	return out
}

// mappingFromForm reads one value per canonical field.
func mappingFromForm(form url.Values) core.ColumnMapping {
	m := make(core.ColumnMapping, len(core.Fields))
	for _, f := range core.Fields {
		if col := form.Get(string(f)); col != "" {
			m[f] = col
		}
	}
	return m
}

// readUpload reads the "file" part of a multipart form, bounded by the
// configured maximum file size.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (name string, data []byte, err error) {
	maxSize := s.cfg.Upload.MaxFileSize
	// Leave room for the multipart envelope so the size check below reports
	// oversize files rather than a truncated form.
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+64<<10)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return "", nil, core.ErrFileTooLarge
		}
		if errors.Is(err, http.ErrNotMultipart) || errors.Is(err, http.ErrMissingBoundary) {
			return "", nil, core.ErrNoFile
		}
		return "", nil, err
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return "", nil, core.ErrNoFile
	}
	defer file.Close()

	data, err = io.ReadAll(io.LimitReader(file, maxSize+1))
	if err != nil {
		return "", nil, err
	}
	return header.Filename, data, nil
}

// loadContext bounds a file parse by the configured upload timeout.
func (s *Server) loadContext(r *http.Request) (context.Context, context.CancelFunc) {
	if s.cfg.Upload.Timeout <= 0 {
		return context.WithCancel(r.Context())
	}
	return context.WithTimeout(r.Context(), s.cfg.Upload.Timeout)
}
