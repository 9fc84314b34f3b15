package web

// errors.go provides unified error response handling for the web layer.
//
// It ensures all errors are:
//   - Logged with full technical details for debugging (server-side)
//   - Returned to clients as user-friendly messages with action suggestions
//   - Formatted as JSON for API clients and as an HTML alert otherwise
//
// The error flow:
//  1. Handler encounters an error
//  2. Calls respondError(w, r, err, statusCode), usually via statusFor(err)
//  3. Error is mapped via core.MapError to get user-friendly message
//  4. Technical error is logged with request and session IDs
//  5. User message is rendered in the format the client asked for

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/JonMunkholm/prospect-explorer/internal/core"
	"github.com/JonMunkholm/prospect-explorer/internal/dataset"
	"github.com/JonMunkholm/prospect-explorer/internal/logging"
	"github.com/JonMunkholm/prospect-explorer/internal/web/templates"
)

// ErrorResponse represents the JSON structure for API error responses.
// Includes both machine-readable (Code) and human-readable (Message, Action) fields.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// statusFor picks the HTTP status for a service error.
func statusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, core.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, core.ErrTooManyUploads):
		return http.StatusServiceUnavailable
	case errors.Is(err, core.ErrQueryDisabled):
		return http.StatusNotImplemented
	case errors.Is(err, core.ErrRequiredUnmapped),
		errors.Is(err, core.ErrUnknownColumn),
		errors.Is(err, core.ErrUnknownField):
		return http.StatusUnprocessableEntity
	case errors.Is(err, core.ErrNoFile),
		errors.Is(err, core.ErrInvalidFilter),
		errors.Is(err, core.ErrUnsupportedExport),
		errors.Is(err, dataset.ErrEmptyFile),
		errors.Is(err, dataset.ErrUnsupportedFormat),
		errors.Is(err, dataset.ErrSheetNotFound):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}

	// Parse failures carry no sentinel; their text is matched by MapError.
	switch core.MapError(err).Code {
	case "FILE002", "FILE003":
		return http.StatusBadRequest
	case "QRY002":
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// respondError handles error responses with user-friendly messages.
// It logs the technical error server-side and returns an appropriate response
// based on the request type (JSON or HTML).
func respondError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	userMsg := core.MapError(err)

	logger := logging.FromContext(r.Context())
	if statusCode >= http.StatusInternalServerError {
		logger.Error("request error",
			"path", r.URL.Path,
			"method", r.Method,
			"status", statusCode,
			"error", err.Error(),
			"code", userMsg.Code,
		)
	} else {
		logger.Warn("request rejected",
			"path", r.URL.Path,
			"method", r.Method,
			"status", statusCode,
			"error", err.Error(),
			"code", userMsg.Code,
		)
	}

	if errors.Is(err, core.ErrTooManyUploads) {
		w.Header().Set("Retry-After", "5")
	}

	if wantsJSON(r) {
		respondErrorJSON(w, userMsg, statusCode)
	} else {
		respondErrorHTML(w, r, userMsg, statusCode)
	}
}

// respondErrorJSON writes a JSON error response.
func respondErrorJSON(w http.ResponseWriter, msg core.UserMessage, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   msg.Message,
		Message: msg.Message,
		Action:  msg.Action,
		Code:    msg.Code,
	})
}

// respondErrorHTML renders the error page.
func respondErrorHTML(w http.ResponseWriter, r *http.Request, msg core.UserMessage, statusCode int) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	templates.ErrorPage(msg.Message, msg.Action, msg.Code).Render(r.Context(), w)
}

// wantsJSON checks if the client prefers JSON response.
func wantsJSON(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		return true
	}
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		return true
	}
	// API routes default to JSON
	return strings.HasPrefix(r.URL.Path, "/api/")
}
