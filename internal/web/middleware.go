package web

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/erazemk/shramba/internal/auth"
	"github.com/erazemk/shramba/internal/store"
)

type webContextKey string

const webClaimsKey webContextKey = "webclaims"

// CookieAuthMiddleware validates the JWT from the session cookie, checks
// token revocation, and adds claims to the context.
func CookieAuthMiddleware(secret string, db *sql.DB) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := cookieClaims(r, secret, db)
			if claims == nil {
				clearAuthCookie(w)
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			ctx := context.WithValue(r.Context(), webClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// cookieClaims extracts and validates claims from the session cookie.
// Returns nil for missing, invalid or revoked tokens.
func cookieClaims(r *http.Request, secret string, db *sql.DB) *auth.Claims {
	cookie, err := r.Cookie("token")
	if err != nil || cookie.Value == "" {
		return nil
	}

	claims, err := auth.ValidateToken(secret, cookie.Value)
	if err != nil {
		return nil
	}

	if claims.ID != "" {
		revoked, err := store.IsTokenRevoked(r.Context(), db, claims.ID)
		if err != nil {
			slog.Error("failed to check token revocation", "error", err)
			return nil
		}
		if revoked {
			return nil
		}
	}

	return claims
}

// clearAuthCookie clears the authentication cookie with consistent attributes.
func clearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// GetWebClaims retrieves the JWT claims from web context.
func GetWebClaims(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(webClaimsKey).(*auth.Claims)
	return claims
}
