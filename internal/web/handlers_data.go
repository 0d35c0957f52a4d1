package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/leadlist/internal/lead"
)

// ListResponse is the body of GET /api/leads.
type ListResponse struct {
	Leads []lead.Record `json:"leads"`
	Total int           `json:"total"`
	Shown int           `json:"shown"`
}

// handleListLeads returns the filtered and sorted list.
func (s *Server) handleListLeads(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	all := s.Store.List()
	leads := lead.Apply(all, q)
	writeJSON(w, http.StatusOK, ListResponse{Leads: leads, Total: len(all), Shown: len(leads)})
}

// handleGetLead returns one lead.
func (s *Server) handleGetLead(w http.ResponseWriter, r *http.Request) {
	rec, err := s.Store.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// handleGroupByRecency returns the filtered list bucketed by last contact.
func (s *Server) handleGroupByRecency(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, lead.GroupByRecency(lead.Apply(s.Store.List(), q), s.now()))
}

// handleGroupByIndustry returns the filtered list bucketed by industry.
func (s *Server) handleGroupByIndustry(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, lead.GroupByCategory(lead.Apply(s.Store.List(), q)))
}

// handleStats returns dashboard counters over the whole list.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, lead.ComputeStats(s.Store.List()))
}

// handleIndustries returns the distinct industries for filter dropdowns.
func (s *Server) handleIndustries(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, lead.Industries(s.Store.List()))
}
