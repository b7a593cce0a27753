package http

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"finboard/internal/core"
	applog "finboard/internal/log"
)

type createTransactionRequest struct {
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Date        string `json:"date"`
	Category    string `json:"category"`
	Type        string `json:"type"`
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleListTransactions(w, r)
	case http.MethodPost:
		s.handleCreateTransaction(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		errorJSON(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handleListTransactions returns the recent-activity feed, newest first.
func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	userID := userParam(r)
	limit := limitParam(r, 10, 100)

	rows, err := s.backend.RecentTransactions(r.Context(), userID, limit)
	if err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Recent transactions error",
			applog.FieldError, err, applog.FieldUserID, userID)
		errorJSON(w, http.StatusBadGateway, "failed to load transactions")
		return
	}

	writeJSON(w, http.StatusOK, buildTransactionList(rows))
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	userID := userParam(r)

	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cents, err := core.ParseDecimalToCents(strings.TrimSpace(req.Amount))
	if err != nil {
		errorJSON(w, http.StatusUnprocessableEntity, "invalid amount")
		return
	}

	txType, err := core.ParseTxType(strings.TrimSpace(req.Type))
	if err != nil {
		errorJSON(w, http.StatusUnprocessableEntity, "invalid transaction type")
		return
	}

	date, err := time.Parse("2006-01-02", strings.TrimSpace(req.Date))
	if err != nil {
		errorJSON(w, http.StatusUnprocessableEntity, "invalid date, expected YYYY-MM-DD")
		return
	}

	tx := core.Transaction{
		Description: sanitizeInput(req.Description),
		Date:        date,
		Category:    sanitizeInput(req.Category),
		Amount:      core.Money{Cents: cents},
		Type:        txType,
	}
	if err := tx.Validate(); err != nil {
		errorJSON(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	logger := applog.FromContext(r.Context())
	id, err := s.backend.CreateTransaction(r.Context(), userID, tx)
	if err != nil {
		logger.ErrorContext(r.Context(), "Create transaction error",
			applog.FieldError, err,
			applog.FieldUserID, userID,
			applog.FieldAmountCents, tx.Amount.Cents)
		errorJSON(w, http.StatusInternalServerError, "failed to save transaction")
		return
	}

	s.invalidateSnapshot(userID)
	logger.InfoContext(r.Context(), "Transaction created",
		applog.FieldUserID, userID,
		applog.FieldTransactionID, id,
		applog.FieldTxType, string(tx.Type))
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// handleTransactionByID handles DELETE /api/transactions/{id}.
func (s *Server) handleTransactionByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		w.Header().Set("Allow", "DELETE")
		errorJSON(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/transactions/")
	if id == "" || strings.Contains(id, "/") {
		errorJSON(w, http.StatusNotFound, "transaction not found")
		return
	}

	userID := userParam(r)
	if err := s.backend.DeleteTransaction(r.Context(), userID, id); err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Delete transaction error",
			applog.FieldError, err, applog.FieldUserID, userID, applog.FieldTransactionID, id)
		errorJSON(w, http.StatusNotFound, "transaction not found")
		return
	}

	s.invalidateSnapshot(userID)
	writeJSON(w, http.StatusOK, map[string]string{"id": id})
}
