package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/erazemk/shramba/internal/model"
	"github.com/erazemk/shramba/internal/store"
)

// Dashboard handles GET /dashboard.
func (s *Server) Dashboard(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	items, err := store.ListItems(r.Context(), s.DB, claims.UserID, "", "")
	if err != nil {
		slog.Error("failed to list items for dashboard", "error", err)
	}

	s.Templates.Render(w, "dashboard.html", &struct {
		PageData
		Stats model.Stats
	}{
		PageData: PageData{Title: "Nadzorna plošča", User: claims},
		Stats:    model.Summarize(items, time.Now()),
	})
}
