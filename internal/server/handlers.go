package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/googol23/ExpenseTracker/internal/models"
	"github.com/googol23/ExpenseTracker/internal/settle"
)

type addMemberRequest struct {
	Name string `json:"name" validate:"required"`
}

type createExpenseRequest struct {
	Description string           `json:"description" validate:"required"`
	Amount      float64          `json:"amount" validate:"required,gt=0"`
	PaidBy      string           `json:"paid_by" validate:"required"`
	Shares      models.ShareSpec `json:"shares"`
}

// handleListMembers returns all member names, sorted alphabetically.
func (s *Server) handleListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := s.ledger.ListMembers(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	names := make([]string, len(members))
	for i, m := range members {
		names[i] = m.Name
	}
	writeJSON(w, http.StatusOK, names)
}

// handleAddMember adds a participant. Adding an existing name is not an
// error: the response is the same, only the metric is skipped.
func (s *Server) handleAddMember(w http.ResponseWriter, r *http.Request) {
	var req addMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, `missing "name" field`)
		return
	}

	member, created, err := s.ledger.AddMember(r.Context(), req.Name)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if created {
		s.metrics.MembersCreated.Inc()
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"status": "ok",
		"name":   member.Name,
	})
}

// handleListExpenses returns all expenses, newest first, with their splits.
func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.ledger.ListExpenses(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if expenses == nil {
		expenses = []models.Expense{}
	}
	writeJSON(w, http.StatusOK, expenses)
}

// handleCreateExpense records a new expense. The "shares" field accepts
// null (split across all members), a list of names (equal split across
// those), or a name-to-amount object (manual split).
func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "missing required fields (description, amount, paid_by)")
		return
	}

	expenseID, err := s.ledger.AddExpense(r.Context(), req.Description, req.Amount, req.PaidBy, req.Shares)
	if err != nil {
		if isDomainError(err) {
			writeError(w, http.StatusBadRequest, err)
		} else {
			slog.Error("CreateExpense failed", "error", err)
			writeError(w, http.StatusInternalServerError, err)
		}
		return
	}
	s.metrics.ExpensesCreated.Inc()

	writeJSON(w, http.StatusCreated, map[string]any{
		"status":     "ok",
		"expense_id": expenseID,
	})
}

// handleBalances returns the paid/owed totals and net balance per member.
func (s *Server) handleBalances(w http.ResponseWriter, r *http.Request) {
	balances, err := s.ledger.NetBalances(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if balances == nil {
		balances = []models.Balance{}
	}
	writeJSON(w, http.StatusOK, balances)
}

// handleSettlements returns the suggested transfers to clear all balances.
func (s *Server) handleSettlements(w http.ResponseWriter, r *http.Request) {
	balances, err := s.ledger.NetBalances(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, settle.Settle(balances))
}
