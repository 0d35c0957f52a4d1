package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/leadlist/internal/lead"
)

// handleCreateLead creates a lead from a JSON body of lead.Fields.
// Duplicates are not rejected here; the form flow creates what it is given.
func (s *Server) handleCreateLead(w http.ResponseWriter, r *http.Request) {
	var f lead.Fields
	if err := decodeJSON(w, r, &f); err != nil {
		s.respondError(w, r, err)
		return
	}

	rec, err := s.Store.Create(r.Context(), f)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	w.Header().Set("Location", "/api/leads/"+rec.ID)
	writeJSON(w, http.StatusCreated, rec)
}

// handleUpdateLead applies a JSON lead.Patch. Omitted fields are kept.
func (s *Server) handleUpdateLead(w http.ResponseWriter, r *http.Request) {
	var p lead.Patch
	if err := decodeJSON(w, r, &p); err != nil {
		s.respondError(w, r, err)
		return
	}

	rec, err := s.Store.Update(r.Context(), chi.URLParam(r, "id"), p)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// handleDeleteLead removes a lead. Deleting an unknown id succeeds.
func (s *Server) handleDeleteLead(w http.ResponseWriter, r *http.Request) {
	if err := s.Store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
