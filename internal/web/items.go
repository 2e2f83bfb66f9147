package web

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/erazemk/shramba/internal/imaging"
	"github.com/erazemk/shramba/internal/model"
	"github.com/erazemk/shramba/internal/store"
)

// itemView pairs an item with its evaluated status flags so templates never
// reach for the clock themselves.
type itemView struct {
	model.Item
	Expired      bool
	ExpiringSoon bool
	LowStock     bool
}

func buildItemViews(items []model.Item, today time.Time) []itemView {
	views := make([]itemView, len(items))
	for i, item := range items {
		views[i] = itemView{
			Item:         item,
			Expired:      item.IsExpired(today),
			ExpiringSoon: item.IsExpiringSoon(today, model.DefaultExpiryHorizon),
			LowStock:     item.IsLowStock(),
		}
	}
	return views
}

// itemFormData feeds the add/edit form template.
type itemFormData struct {
	PageData
	Mode       string // "add" or "edit"
	Item       *model.Item
	Categories []string
	Barcode    string // prefill from the scanner
}

// ItemsPage handles GET /items with optional search and category filters.
func (s *Server) ItemsPage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	search := strings.TrimSpace(r.URL.Query().Get("search"))
	category := strings.TrimSpace(r.URL.Query().Get("category"))

	items, err := store.ListItems(r.Context(), s.DB, claims.UserID, category, search)
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
		PageData:   PageData{Title: "Predmeti", User: claims},
		Items:      buildItemViews(items, time.Now()),
		Search:     search,
		Category:   category,
		Categories: categories,
	})
}

// ItemAddPage handles GET /items/add. A barcode query parameter (from the
// scanner page) prefills the form.
func (s *Server) ItemAddPage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	s.Templates.Render(w, "item_form.html", &itemFormData{
		PageData:   PageData{Title: "Dodaj predmet", User: claims},
		Mode:       "add",
		Categories: model.Categories,
		Barcode:    r.URL.Query().Get("barcode"),
	})
}

// ItemAddSubmit handles POST /items/add.
func (s *Server) ItemAddSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	fields, msg := parseItemForm(r)
	if msg == "" {
		_, err := store.CreateItem(r.Context(), s.DB, claims.UserID, fields)
		if store.IsValidation(err) {
			msg = "Ime je obvezno, količina pa mora biti večja od nič."
		} else if err != nil {
			slog.Error("failed to create item", "error", err)
			msg = "Napaka pri shranjevanju."
		}
	}

	if msg != "" {
		s.Templates.Render(w, "item_form.html", &itemFormData{
			PageData:   PageData{Title: "Dodaj predmet", User: claims, Error: msg},
			Mode:       "add",
			Categories: model.Categories,
			Barcode:    fields.Barcode,
		})
		return
	}

	slog.Info("item created", "user", claims.Email, "item", fields.Name)
	http.Redirect(w, r, "/items", http.StatusSeeOther)
}

// ItemEditPage handles GET /items/{id}/edit.
func (s *Server) ItemEditPage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		s.NotFound(w, r)
		return
	}

	item, err := store.GetItem(r.Context(), s.DB, id, claims.UserID)
	if err == store.ErrNotFound || err == store.ErrForbidden {
		// Missing and foreign items look identical to the user.
		s.NotFound(w, r)
		return
	}
	if err != nil {
		slog.Error("failed to load item", "error", err)
		http.Error(w, "failed to load item", http.StatusInternalServerError)
		return
	}

	s.Templates.Render(w, "item_form.html", &itemFormData{
		PageData:   PageData{Title: "Uredi predmet", User: claims},
		Mode:       "edit",
		Item:       item,
		Categories: model.Categories,
	})
}

// ItemEditSubmit handles POST /items/{id}/edit. Unlike creation, edits do
// not re-validate quantity, so stock can be zeroed out here.
func (s *Server) ItemEditSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		s.NotFound(w, r)
		return
	}

	fields, msg := parseItemForm(r)
	if msg == "" {
		_, err := store.UpdateItem(r.Context(), s.DB, id, claims.UserID, fields)
		if err == store.ErrNotFound || err == store.ErrForbidden {
			s.NotFound(w, r)
			return
		}
		if store.IsValidation(err) {
			msg = "Ime je obvezno."
		} else if err != nil {
			slog.Error("failed to update item", "error", err)
			msg = "Napaka pri shranjevanju."
		}
	}

	if msg != "" {
		item, _ := store.GetItem(r.Context(), s.DB, id, claims.UserID)
		s.Templates.Render(w, "item_form.html", &itemFormData{
			PageData:   PageData{Title: "Uredi predmet", User: claims, Error: msg},
			Mode:       "edit",
			Item:       item,
			Categories: model.Categories,
		})
		return
	}

	slog.Info("item updated", "user", claims.Email, "item", fields.Name)
	http.Redirect(w, r, "/items", http.StatusSeeOther)
}

// ItemDeleteSubmit handles POST /items/{id}/delete.
func (s *Server) ItemDeleteSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		s.NotFound(w, r)
		return
	}

	err = store.DeleteItem(r.Context(), s.DB, id, claims.UserID)
	if err != nil && err != store.ErrNotFound && err != store.ErrForbidden {
		slog.Error("failed to delete item", "error", err)
	}

	// Missing and foreign items both fall through to the list, silently.
	http.Redirect(w, r, "/items", http.StatusSeeOther)
}

// ItemImageSubmit handles POST /items/{id}/image.
func (s *Server) ItemImageSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		s.NotFound(w, r)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 5<<20)
	if err := r.ParseMultipartForm(5 << 20); err != nil {
		http.Error(w, "file too large", http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "image required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	result, err := imaging.Process(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := store.SetItemImage(r.Context(), s.DB, id, claims.UserID, result.Data, result.MIME); err != nil {
		if err == store.ErrNotFound || err == store.ErrForbidden {
			s.NotFound(w, r)
			return
		}
		slog.Error("failed to save image", "error", err)
		http.Error(w, "failed to save image", http.StatusInternalServerError)
		return
	}

	slog.Info("item photo uploaded", "user", claims.Email, "item", id)
	http.Redirect(w, r, fmt.Sprintf("/items/%d/edit", id), http.StatusSeeOther)
}

// ItemImageGet handles GET /items/{id}/image.
func (s *Server) ItemImageGet(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		s.NotFound(w, r)
		return
	}

	data, mime, err := store.GetItemImage(r.Context(), s.DB, id, claims.UserID)
	if err != nil || data == nil {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Content-Disposition", "inline")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Cache-Control", "private, max-age=3600")
	if _, err := w.Write(data); err != nil {
		slog.Error("failed to write image response", "error", err)
	}
}

// parseItemForm converts submitted form values to a field set, returning a
// user-facing message on parse failure.
func parseItemForm(r *http.Request) (model.ItemFields, string) {
	f := model.ItemFields{
		Name:     strings.TrimSpace(r.FormValue("name")),
		Category: strings.TrimSpace(r.FormValue("category")),
		Barcode:  strings.TrimSpace(r.FormValue("barcode")),
		Unit:     strings.TrimSpace(r.FormValue("unit")),
		Location: strings.TrimSpace(r.FormValue("location")),
	}

	quantity, err := strconv.ParseFloat(strings.TrimSpace(r.FormValue("quantity")), 64)
	if err != nil {
		return f, "Količina mora biti število."
	}
	f.Quantity = quantity

	if s := strings.TrimSpace(r.FormValue("low_stock_threshold")); s != "" {
		threshold, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return f, "Prag zaloge mora biti število."
		}
		f.LowStockThreshold = &threshold
	}

	if s := strings.TrimSpace(r.FormValue("expiry_date")); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return f, "Neveljaven datum (pričakovan format YYYY-MM-DD)."
		}
		f.ExpiryDate = &t
	}

	return f, ""
}
