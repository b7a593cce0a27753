package http

import (
	"net/http"

	applog "finboard/internal/log"
)

// handleDashboard builds or reuses the assembled dashboard snapshot for one
// user. A remote fetch failure surfaces as 502 with no partial data; a user
// with zero rows gets a normal 200 with empty series.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		errorJSON(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	logger := applog.FromContext(r.Context())
	userID := userParam(r)

	if snap, found := s.snapshotCache.Get(userID); found {
		logger.DebugContext(r.Context(), "Snapshot cache hit",
			applog.FieldUserID, userID,
			applog.FieldSnapshotVer, snap.Version)
		writeJSON(w, http.StatusOK, buildDashboardResponse(snap))
		return
	}

	snap, err := s.dashboard.BuildSnapshot(r.Context(), userID)
	if err != nil {
		logger.ErrorContext(r.Context(), "Dashboard snapshot error",
			applog.FieldError, err,
			applog.FieldUserID, userID)
		errorJSON(w, http.StatusBadGateway, "failed to load dashboard data")
		return
	}

	s.snapshotCache.Set(userID, snap)
	writeJSON(w, http.StatusOK, buildDashboardResponse(snap))
}
