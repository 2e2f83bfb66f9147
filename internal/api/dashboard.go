package api

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/erazemk/shramba/internal/model"
	"github.com/erazemk/shramba/internal/store"
)

// DashboardHandler serves the aggregated inventory counters.
type DashboardHandler struct {
	DB *sql.DB
}

// Get handles GET /api/dashboard.
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	items, err := store.ListItems(r.Context(), h.DB, claims.UserID, "", "")
	if err != nil {
		storeError(w, err)
		return
	}

	jsonResponse(w, http.StatusOK, model.Summarize(items, time.Now()))
}
