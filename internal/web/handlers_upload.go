package web

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/JonMunkholm/leadlist/internal/importer"
	"github.com/JonMunkholm/leadlist/internal/lead"
	"github.com/JonMunkholm/leadlist/internal/leadcsv"
	"github.com/JonMunkholm/leadlist/internal/logging"
	"github.com/JonMunkholm/leadlist/internal/schema"
	"github.com/JonMunkholm/leadlist/internal/web/templates"
)

// ImportResponse is the JSON body of an import or preview.
type ImportResponse struct {
	importer.Report
	Message string `json:"message"`
}

type importFunc func(ctx context.Context, r io.Reader) (importer.Report, error)

// handleImport admits a CSV file into the store.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	s.runImport(w, r, s.Importer.ImportReader)
}

// handlePreview reports what importing a CSV file would do.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	s.runImport(w, r, s.Importer.PreviewReader)
}

// runImport takes an import slot, reads the upload and runs fn on it.
// The body is either a multipart form with a "file" part or raw CSV.
func (s *Server) runImport(w http.ResponseWriter, r *http.Request, fn importFunc) {
	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.Import.Timeout)
	defer cancel()

	if err := s.Imports.Acquire(ctx); err != nil {
		s.respondError(w, r, err)
		return
	}
	defer s.Imports.Release()

	body, closeBody, err := s.openUpload(w, r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	defer closeBody()

	counter := leadcsv.NewCountingReader(body)
	rep, err := fn(ctx, counter)
	logging.FromContext(ctx).Debug("upload read", "bytes", counter.BytesRead, "dry_run", rep.DryRun)
	if err != nil {
		var mb *http.MaxBytesError
		if errors.As(err, &mb) {
			err = fmt.Errorf("file too large (limit %d bytes): %w", mb.Limit, err)
		}
		if rep.Admitted+rep.DuplicateSkipped+rep.Invalid > 0 {
			logging.FromContext(ctx).Warn("import failed partway", "admitted", rep.Admitted)
			s.respondImportError(w, r, err, &rep)
			return
		}
		s.respondError(w, r, err)
		return
	}

	if isHTMX(r) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		component := templates.ImportSummary(rep.Summary(s.cfg.Import.SummaryLimit), rep.DryRun)
		if err := component.Render(ctx, w); err != nil {
			logging.FromContext(ctx).Error("render import summary", "error", err)
		}
		return
	}
	writeJSON(w, http.StatusOK, ImportResponse{Report: rep, Message: rep.Text()})
}

// openUpload returns the uploaded CSV stream, capped at the configured
// maximum file size.
func (s *Server) openUpload(w http.ResponseWriter, r *http.Request) (io.Reader, func(), error) {
	maxSize := s.cfg.Import.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch {
	case mediaType == "multipart/form-data":
		if err := r.ParseMultipartForm(maxSize); err != nil {
			var mb *http.MaxBytesError
			if errors.As(err, &mb) {
				return nil, nil, fmt.Errorf("file too large (limit %d bytes): %w", maxSize, err)
			}
			return nil, nil, fmt.Errorf("%w: multipart form: %v", errBadRequest, err)
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			return nil, nil, errNoFile
		}
		return file, func() { file.Close() }, nil

	case mediaType == "text/csv", mediaType == "text/plain", mediaType == "application/octet-stream":
		return r.Body, func() {}, nil

	default:
		return nil, nil, errNoFile
	}
}

// handleExport streams the filtered list as a CSV attachment.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	records := lead.Apply(s.Store.List(), q)

	name := leadcsv.ExportFileName(s.now())
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", contentDisposition(name))
	if err := leadcsv.Encode(w, records, schema.Columns); err != nil {
		logging.FromContext(r.Context()).Error("export write failed", "error", err)
		return
	}
	logging.FromContext(r.Context()).Info("leads exported", "rows", len(records), "file", name)
}

// contentDisposition builds an attachment header whose filename survives
// non-ASCII characters (RFC 6266 / RFC 5987).
func contentDisposition(name string) string {
	fallback := strings.Map(func(r rune) rune {
		if r > 0x7e || r < 0x20 || r == '"' || r == '\\' {
			return '_'
		}
		return r
	}, name)
	return fmt.Sprintf(`attachment; filename="%s"; filename*=UTF-8''%s`, fallback, url.PathEscape(name))
}
