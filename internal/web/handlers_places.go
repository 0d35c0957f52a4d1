package web

import (
	"net/http"

	"github.com/JonMunkholm/leadlist/internal/places"
)

// SearchRequest is the body of POST /api/places/search.
type SearchRequest struct {
	Area    string `json:"area"`
	Keyword string `json:"keyword"`
}

// AdmitRequest is the body of POST /api/places/admit.
type AdmitRequest struct {
	Candidates []places.Candidate `json:"candidates"`
}

// AdmitResponse is the body returned after admitting candidates.
type AdmitResponse struct {
	places.AdmitResult
	Message string `json:"message"`
}

// handlePlacesSearch runs a metered search and returns the candidates.
func (s *Server) handlePlacesSearch(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}

	found, err := s.Search.Search(r.Context(), req.Area, req.Keyword)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if found == nil {
		found = []places.Candidate{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": found, "count": len(found)})
}

// handlePlacesAdmit adds selected candidates to the lead list, skipping
// duplicates.
func (s *Server) handlePlacesAdmit(w http.ResponseWriter, r *http.Request) {
	var req AdmitRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}

	res, err := s.Admitter.Admit(r.Context(), req.Candidates)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, AdmitResponse{AdmitResult: res, Message: res.Text()})
}

// handlePlacesUsage reports this month's search count and cost estimate.
func (s *Server) handlePlacesUsage(w http.ResponseWriter, r *http.Request) {
	report, err := s.Usage.Report(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
