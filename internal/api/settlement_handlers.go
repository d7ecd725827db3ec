package api

import (
	"net/http"

	"github.com/tallyhq/tally/internal/middleware"
	"github.com/tallyhq/tally/internal/models"
	"github.com/tallyhq/tally/internal/service"
)

type settlementRequest struct {
	FromMember string  `json:"from_member"`
	ToMember   string  `json:"to_member"`
	Amount     float64 `json:"amount"`
	Note       string  `json:"note,omitempty"`
}

func (s *Server) handleCreateSettlement(w http.ResponseWriter, r *http.Request) {
	var req settlementRequest
	if !decode(w, r, &req) {
		return
	}

	settlement, err := s.settlements.Create(r.Context(), service.SettlementInput{
		GroupID:    r.PathValue("id"),
		FromMember: req.FromMember,
		ToMember:   req.ToMember,
		Amount:     req.Amount,
		Note:       req.Note,
		CreatedBy:  middleware.GetUserID(r.Context()),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, settlement)
}

func (s *Server) handleListSettlements(w http.ResponseWriter, r *http.Request) {
	settlements, err := s.settlements.ListByGroup(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if settlements == nil {
		settlements = []*models.Settlement{}
	}
	writeJSON(w, http.StatusOK, settlements)
}

func (s *Server) handleDeleteSettlement(w http.ResponseWriter, r *http.Request) {
	if err := s.settlements.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
