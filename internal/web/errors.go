package web

// errors.go turns handler errors into responses.
//
// Every error is logged with its technical text and the request id, then
// mapped with lead.MapError to a message, suggested action and support
// code. HTMX requests get an alert fragment; everything else gets JSON.

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/JonMunkholm/leadlist/internal/importer"
	"github.com/JonMunkholm/leadlist/internal/lead"
	"github.com/JonMunkholm/leadlist/internal/leadcsv"
	"github.com/JonMunkholm/leadlist/internal/logging"
	"github.com/JonMunkholm/leadlist/internal/places"
	"github.com/JonMunkholm/leadlist/internal/web/templates"
)

// ErrorResponse is the JSON body of an error response.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Action  string   `json:"action,omitempty"`
	Code    string   `json:"code"`
	Fields  []string `json:"fields,omitempty"`
	Missing []string `json:"missingColumns,omitempty"`

	// Report is set when an import failed after some rows were handled.
	Report *importer.Report `json:"report,omitempty"`
}

// statusFor picks the HTTP status for err.
func statusFor(err error) int {
	var (
		ve *lead.ValidationError
		se *lead.SchemaError
		pe *lead.PersistenceError
		mb *http.MaxBytesError
	)
	switch {
	case errors.As(err, &ve), errors.As(err, &se):
		return http.StatusUnprocessableEntity
	case errors.As(err, &mb):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, leadcsv.ErrNoData), errors.Is(err, errBadRequest), errors.Is(err, errNoFile):
		return http.StatusBadRequest
	case errors.Is(err, lead.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, importer.ErrTooManyImports), errors.Is(err, places.ErrSearchUnavailable):
		return http.StatusServiceUnavailable
	case errors.As(err, &pe):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

var (
	// errBadRequest marks client mistakes that have no richer type.
	errBadRequest = errors.New("invalid request")
	errNoFile     = errors.New("no file provided: send multipart field \"file\" or a text/csv body")
)

// respondError logs err and writes the user-facing response.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	s.respondImportError(w, r, err, nil)
}

// respondImportError is respondError that also returns the partial report
// of an import that stopped midway. A nil rep omits it.
func (s *Server) respondImportError(w http.ResponseWriter, r *http.Request, err error, rep *importer.Report) {
	status := statusFor(err)
	msg := lead.MapError(err)

	logger := logging.FromContext(r.Context())
	attrs := []any{
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"error", err.Error(),
		"code", msg.Code,
	}
	logger.Log(r.Context(), logLevelFor(err, status), "request error", attrs...)

	if isHTMX(r) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		if err := templates.ErrorAlert(msg.Message, msg.Action, msg.Code).Render(r.Context(), w); err != nil {
			logger.Error("render error alert", "error", err)
		}
		if rep != nil {
			summary := templates.ImportSummary(rep.Summary(s.cfg.Import.SummaryLimit), rep.DryRun)
			if err := summary.Render(r.Context(), w); err != nil {
				logger.Error("render import summary", "error", err)
			}
		}
		return
	}

	body := ErrorResponse{Error: msg.Message, Action: msg.Action, Code: msg.Code, Report: rep}
	var ve *lead.ValidationError
	if errors.As(err, &ve) {
		body.Fields = ve.Fields
	}
	var se *lead.SchemaError
	if errors.As(err, &se) {
		body.Missing = se.Missing
	}
	writeJSON(w, status, body)
}

// logLevelFor logs server failures and errors without a catalogued user
// message at error level; expected client mistakes at warn.
func logLevelFor(err error, status int) slog.Level {
	if status >= http.StatusInternalServerError || !lead.IsUserFacing(err) {
		return slog.LevelError
	}
	return slog.LevelWarn
}

// isHTMX reports whether the request was issued by htmx.
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
