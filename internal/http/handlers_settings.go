package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"finboard/internal/core"
	applog "finboard/internal/log"
)

type spendingGoalRequest struct {
	SpendingGoal string `json:"spending_goal"`
}

// handleSpendingGoal sets the monthly spending goal. Zero is allowed and
// clears the goal.
func (s *Server) handleSpendingGoal(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		w.Header().Set("Allow", "PUT")
		errorJSON(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req spendingGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cents, err := core.ParseAmountCents(strings.TrimSpace(req.SpendingGoal))
	if err != nil {
		errorJSON(w, http.StatusUnprocessableEntity, "invalid spending goal")
		return
	}

	userID := userParam(r)
	if err := s.backend.WriteSpendingGoal(r.Context(), userID, core.Money{Cents: cents}); err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Write spending goal error",
			applog.FieldError, err, applog.FieldUserID, userID, applog.FieldGoalCents, cents)
		errorJSON(w, http.StatusInternalServerError, "failed to save spending goal")
		return
	}

	s.invalidateSnapshot(userID)
	writeJSON(w, http.StatusOK, map[string]string{"spending_goal": core.FormatCents(cents)})
}
