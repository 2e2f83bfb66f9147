package api

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/erazemk/shramba/internal/store"
)

// AccountHandler handles operations on the authenticated user's own account.
type AccountHandler struct {
	DB *sql.DB
}

// Get handles GET /api/account.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	user, err := store.GetUser(r.Context(), h.DB, claims.UserID)
	if err != nil {
		storeError(w, err)
		return
	}
	if user == nil {
		jsonError(w, http.StatusNotFound, "account not found")
		return
	}

	jsonResponse(w, http.StatusOK, user)
}

// Delete handles DELETE /api/account. Removes the account and every item it
// owns in one transaction; other users' items are untouched.
func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	if err := store.DeleteUser(r.Context(), h.DB, claims.UserID); err != nil {
		storeError(w, err)
		return
	}

	if claims.ID != "" && claims.ExpiresAt != nil {
		if err := store.RevokeToken(r.Context(), h.DB, claims.ID, claims.ExpiresAt.Time); err != nil {
			slog.Error("revoking token after account deletion", "error", err)
		}
	}

	slog.Info("account deleted", "user", claims.Email)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "account deleted"})
}
