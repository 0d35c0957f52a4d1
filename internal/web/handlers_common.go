package web

// Shared request parsing for the lead handlers.

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/JonMunkholm/leadlist/internal/lead"
)

// maxJSONBody bounds JSON request bodies.
const maxJSONBody = 1 << 20

// parseQuery reads list filters and sort from URL parameters:
//
//	q, status, industry, prospect, excludeBranches, sort, dir
//
// Enum parameters accept the Japanese label or the English key. An
// unknown enum value or sort field is a bad request.
func parseQuery(r *http.Request) (lead.Query, error) {
	v := r.URL.Query()
	var q lead.Query

	q.Filter.Text = strings.TrimSpace(v.Get("q"))
	q.Filter.Industry = strings.TrimSpace(v.Get("industry"))

	if raw := v.Get("status"); raw != "" {
		st, ok := lead.LookupStatus(raw)
		if !ok {
			return q, fmt.Errorf("%w: unknown status %q", errBadRequest, raw)
		}
		q.Filter.Status = st
	}
	if raw := v.Get("prospect"); raw != "" {
		p, ok := lead.LookupProspectLevel(raw)
		if !ok {
			return q, fmt.Errorf("%w: unknown prospect level %q", errBadRequest, raw)
		}
		q.Filter.ProspectLevel = p
	}
	if raw := v.Get("excludeBranches"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return q, fmt.Errorf("%w: excludeBranches must be true or false", errBadRequest)
		}
		q.Filter.ExcludeBranches = b
	}

	field, ok := lead.ParseSortField(v.Get("sort"))
	if !ok {
		return q, fmt.Errorf("%w: unknown sort field %q", errBadRequest, v.Get("sort"))
	}
	q.Sort = lead.Sort{Field: field, Desc: strings.EqualFold(v.Get("dir"), "desc")}
	return q, nil
}

// decodeJSON reads a JSON body into dst, rejecting unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: body: %v", errBadRequest, err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return fmt.Errorf("%w: body must contain a single JSON value", errBadRequest)
	}
	return nil
}
