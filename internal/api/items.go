package api

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/erazemk/shramba/internal/csvio"
	"github.com/erazemk/shramba/internal/imaging"
	"github.com/erazemk/shramba/internal/model"
	"github.com/erazemk/shramba/internal/store"
)

// ItemsHandler handles item CRUD, CSV exchange and photo endpoints.
type ItemsHandler struct {
	DB *sql.DB
}

// itemRequest is the JSON payload for create and update. The expiry date is
// a YYYY-MM-DD string; empty means no expiry.
type itemRequest struct {
	Name              string   `json:"name"`
	Category          string   `json:"category"`
	Barcode           string   `json:"barcode"`
	Quantity          float64  `json:"quantity"`
	Unit              string   `json:"unit"`
	ExpiryDate        string   `json:"expiry_date"`
	Location          string   `json:"location"`
	LowStockThreshold *float64 `json:"low_stock_threshold"`
}

// fields converts the request to a validated field set.
func (req *itemRequest) fields() (model.ItemFields, error) {
	f := model.ItemFields{
		Name:              req.Name,
		Category:          req.Category,
		Barcode:           req.Barcode,
		Quantity:          req.Quantity,
		Unit:              req.Unit,
		Location:          req.Location,
		LowStockThreshold: req.LowStockThreshold,
	}
	if req.ExpiryDate != "" {
		t, err := time.Parse("2006-01-02", req.ExpiryDate)
		if err != nil {
			return f, fmt.Errorf("expiry_date must be YYYY-MM-DD")
		}
		f.ExpiryDate = &t
	}
	return f, nil
}

// List handles GET /api/items. Supports category and search query filters,
// always scoped to the authenticated user.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	category := r.URL.Query().Get("category")
	search := r.URL.Query().Get("search")

	items, err := store.ListItems(r.Context(), h.DB, claims.UserID, category, search)
	if err != nil {
		storeError(w, err)
		return
	}
	if items == nil {
		items = []model.Item{}
	}
	jsonResponse(w, http.StatusOK, items)
}

// Create handles POST /api/items.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	var req itemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	fields, err := req.fields()
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	item, err := store.CreateItem(r.Context(), h.DB, claims.UserID, fields)
	if err != nil {
		storeError(w, err)
		return
	}

	jsonResponse(w, http.StatusCreated, item)
}

// Get handles GET /api/items/{id}.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	item, err := store.GetItem(r.Context(), h.DB, id, claims.UserID)
	if err != nil {
		storeError(w, err)
		return
	}

	today := time.Now()
	jsonResponse(w, http.StatusOK, map[string]any{
		"item":             item,
		"is_expired":       item.IsExpired(today),
		"is_expiring_soon": item.IsExpiringSoon(today, model.DefaultExpiryHorizon),
		"is_low_stock":     item.IsLowStock(),
	})
}

// Update handles PUT /api/items/{id}. Quantity is not re-validated on
// update, so stock can be zeroed out through an edit.
func (h *ItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	var req itemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	fields, err := req.fields()
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	item, err := store.UpdateItem(r.Context(), h.DB, id, claims.UserID, fields)
	if err != nil {
		storeError(w, err)
		return
	}

	jsonResponse(w, http.StatusOK, item)
}

// Delete handles DELETE /api/items/{id}.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	if err := store.DeleteItem(r.Context(), h.DB, id, claims.UserID); err != nil {
		storeError(w, err)
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "item deleted"})
}

// Export handles GET /api/items/export, streaming the user's inventory as a
// CSV download with the export date in the filename.
func (h *ItemsHandler) Export(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	items, err := store.ListItems(r.Context(), h.DB, claims.UserID, "", "")
	if err != nil {
		storeError(w, err)
		return
	}

	filename := fmt.Sprintf("inventory_%s.csv", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := csvio.WriteItems(w, items); err != nil {
		// Headers are already out; nothing left to do but log.
		slog.Error("writing CSV export", "error", err)
	}
}

// Import handles POST /api/items/import. The body is the raw CSV document.
// The whole import commits or nothing does.
func (h *ItemsHandler) Import(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	defer r.Body.Close()

	rows, err := csvio.ReadItems(http.MaxBytesReader(w, r.Body, 10<<20))
	if err != nil {
		storeError(w, err)
		return
	}

	count, err := store.ImportItems(r.Context(), h.DB, claims.UserID, rows)
	if err != nil {
		storeError(w, err)
		return
	}

	jsonResponse(w, http.StatusOK, map[string]int{"imported": count})
}

// UploadImage handles PUT /api/items/{id}/image.
func (h *ItemsHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	// Limit to 5 MB.
	r.Body = http.MaxBytesReader(w, r.Body, 5<<20)

	if err := r.ParseMultipartForm(5 << 20); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "image file required")
		return
	}
	defer file.Close()

	result, err := imaging.Process(file)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := store.SetItemImage(r.Context(), h.DB, id, claims.UserID, result.Data, result.MIME); err != nil {
		storeError(w, err)
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "image uploaded"})
}

// GetImage handles GET /api/items/{id}/image.
func (h *ItemsHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	data, mime, err := store.GetItemImage(r.Context(), h.DB, id, claims.UserID)
	if err != nil {
		storeError(w, err)
		return
	}
	if data == nil {
		jsonError(w, http.StatusNotFound, "no image")
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "private, max-age=3600")
	w.Write(data)
}
