package web

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/erazemk/shramba/internal/csvio"
	"github.com/erazemk/shramba/internal/store"
)

// ExportCSV handles GET /export-csv, serving the user's full inventory as a
// CSV download with the export date embedded in the filename.
func (s *Server) ExportCSV(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	items, err := store.ListItems(r.Context(), s.DB, claims.UserID, "", "")
	if err != nil {
		slog.Error("failed to list items for export", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("inventory_%s.csv", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := csvio.WriteItems(w, items); err != nil {
		slog.Error("failed to write CSV export", "error", err)
	}
}

// ImportCSV handles POST /import-csv. The upload must be a .csv file; rows
// upsert by item name and the whole file commits or nothing does.
func (s *Server) ImportCSV(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, 10<<20)
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		s.renderImportError(w, r, "Datoteka je prevelika.")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.renderImportError(w, r, "Izberite datoteko CSV.")
		return
	}
	defer file.Close()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".csv") {
		s.renderImportError(w, r, "Dovoljene so samo datoteke CSV.")
		return
	}

	rows, err := csvio.ReadItems(file)
	if err != nil {
		slog.Warn("rejected CSV import", "user", claims.Email, "error", err)
		s.renderImportError(w, r, fmt.Sprintf("Neveljavna datoteka CSV: %v", err))
		return
	}

	count, err := store.ImportItems(r.Context(), s.DB, claims.UserID, rows)
	if err != nil {
		slog.Error("failed to import CSV", "error", err)
		s.renderImportError(w, r, "Napaka pri uvozu. Nobena vrstica ni bila shranjena.")
		return
	}

	slog.Info("csv imported", "user", claims.Email, "rows", count)
	http.Redirect(w, r, "/items", http.StatusSeeOther)
}

// renderImportError re-renders the items page with an import error message.
func (s *Server) renderImportError(w http.ResponseWriter, r *http.Request, msg string) {
	claims := GetWebClaims(r.Context())

	items, err := store.ListItems(r.Context(), s.DB, claims.UserID, "", "")
	if err != nil {
		slog.Error("failed to list items", "error", err)
	}
	categories, err := store.ListCategories(r.Context(), s.DB, claims.UserID)
	if err != nil {
		slog.Error("failed to list categories", "error", err)
	}

	s.Templates.Render(w, "items.html", &struct {
		PageData
		Items      []itemView
		Search     string
		Category   string
		Categories []string
	}{
		PageData:   PageData{Title: "Predmeti", User: claims, Error: msg},
		Items:      buildItemViews(items, time.Now()),
		Categories: categories,
	})
}
