package api

import (
	"net/http"

	"github.com/tallyhq/tally/internal/models"
)

type groupRequest struct {
	Name     string   `json:"name"`
	Currency string   `json:"currency"`
	Members  []string `json:"members"`
}

func (s *Server) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	var req groupRequest
	if !decode(w, r, &req) {
		return
	}

	group, err := s.groups.Create(r.Context(), req.Name, req.Currency, req.Members)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, group)
}

func (s *Server) handleListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := s.groups.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if groups == nil {
		groups = []*models.Group{}
	}
	writeJSON(w, http.StatusOK, groups)
}

func (s *Server) handleGetGroup(w http.ResponseWriter, r *http.Request) {
	group, err := s.groups.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, group)
}

func (s *Server) handleUpdateGroup(w http.ResponseWriter, r *http.Request) {
	var req groupRequest
	if !decode(w, r, &req) {
		return
	}

	existing, err := s.groups.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if req.Name != "" {
		existing.Name = req.Name
	}
	if req.Currency != "" {
		existing.Currency = req.Currency
	}
	if req.Members != nil {
		existing.Members = req.Members
	}

	group, err := s.groups.Update(r.Context(), existing)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, group)
}

func (s *Server) handleDeleteGroup(w http.ResponseWriter, r *http.Request) {
	if err := s.groups.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddMembers(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Members []string `json:"members"`
	}
	if !decode(w, r, &req) {
		return
	}

	group, err := s.groups.AddMembers(r.Context(), r.PathValue("id"), req.Members)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, group)
}

// handleRemoveMember removes a member and rewrites the group's history. The
// optional fallback_payer query parameter names who inherits expenses the
// removed member paid.
func (s *Server) handleRemoveMember(w http.ResponseWriter, r *http.Request) {
	group, err := s.groups.RemoveMember(
		r.Context(),
		r.PathValue("id"),
		r.PathValue("member"),
		r.URL.Query().Get("fallback_payer"),
	)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, group)
}

func (s *Server) handleGroupBalances(w http.ResponseWriter, r *http.Request) {
	summary, err := s.balances.GroupBalances(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
