package api

import (
	"net/http"

	"github.com/tallyhq/tally/internal/middleware"
	"github.com/tallyhq/tally/internal/models"
	"github.com/tallyhq/tally/internal/service"
)

type expenseRequest struct {
	Description  string             `json:"description"`
	Amount       float64            `json:"amount"`
	PaidBy       string             `json:"paid_by"`
	SplitType    models.SplitType   `json:"split_type"`
	Participants []string           `json:"participants,omitempty"`
	CustomValues map[string]float64 `json:"custom_values,omitempty"`
}

func (r expenseRequest) toInput(groupID, createdBy string) service.ExpenseInput {
	return service.ExpenseInput{
		GroupID:      groupID,
		Description:  r.Description,
		Amount:       r.Amount,
		PaidBy:       r.PaidBy,
		SplitType:    r.SplitType,
		Participants: r.Participants,
		CustomValues: r.CustomValues,
		CreatedBy:    createdBy,
	}
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if !decode(w, r, &req) {
		return
	}

	in := req.toInput(r.PathValue("id"), middleware.GetUserID(r.Context()))
	expense, err := s.expenses.Create(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, expense)
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.expenses.ListByGroup(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if expenses == nil {
		expenses = []*models.Expense{}
	}
	writeJSON(w, http.StatusOK, expenses)
}

func (s *Server) handleGetExpense(w http.ResponseWriter, r *http.Request) {
	expense, err := s.expenses.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, expense)
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if !decode(w, r, &req) {
		return
	}

	in := req.toInput("", middleware.GetUserID(r.Context()))
	expense, err := s.expenses.Update(r.Context(), r.PathValue("id"), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, expense)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := s.expenses.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
