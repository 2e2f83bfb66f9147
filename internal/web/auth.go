package web

import (
	"log/slog"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/erazemk/shramba/internal/auth"
	"github.com/erazemk/shramba/internal/store"
)

// MinPasswordLength is the minimum accepted password length at signup.
const MinPasswordLength = 6

// Home handles GET /. Logged-in users land on the dashboard.
func (s *Server) Home(w http.ResponseWriter, r *http.Request) {
	if claims := cookieClaims(r, s.JWTSecret, s.DB); claims != nil {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	s.Templates.Render(w, "home.html", &PageData{Title: "Domov"})
}

// LoginPage handles GET /login.
func (s *Server) LoginPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "login.html", &PageData{Title: "Prijava"})
}

// LoginSubmit handles POST /login.
func (s *Server) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")

	if email == "" || password == "" {
		s.Templates.Render(w, "login.html", &PageData{
			Title: "Prijava",
			Error: "Vnesite e-pošto in geslo.",
		})
		return
	}

	user, err := store.VerifyCredentials(r.Context(), s.DB, email, password)
	if err != nil {
		slog.Warn("login failed", "email", store.NormalizeEmail(email), "remote", r.RemoteAddr)
		s.Templates.Render(w, "login.html", &PageData{
			Title: "Prijava",
			Error: "Napačna e-pošta ali geslo.",
		})
		return
	}

	token, err := auth.GenerateToken(s.JWTSecret, user.ID, user.Name, user.Email)
	if err != nil {
		s.Templates.Render(w, "login.html", &PageData{
			Title: "Prijava",
			Error: "Napaka pri prijavi.",
		})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(auth.TokenExpiry.Seconds()),
	})

	slog.Info("user logged in", "user", user.Email)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// SignupPage handles GET /signup.
func (s *Server) SignupPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "signup.html", &PageData{Title: "Registracija"})
}

// SignupSubmit handles POST /signup.
func (s *Server) SignupSubmit(w http.ResponseWriter, r *http.Request) {
	name := r.FormValue("name")
	email := r.FormValue("email")
	password := r.FormValue("password")
	confirm := r.FormValue("confirm_password")

	renderError := func(msg string) {
		s.Templates.Render(w, "signup.html", &PageData{Title: "Registracija", Error: msg})
	}

	if name == "" || email == "" || password == "" {
		renderError("Vsa polja so obvezna.")
		return
	}
	if len(password) < MinPasswordLength {
		renderError("Geslo mora imeti vsaj 6 znakov.")
		return
	}
	if password != confirm {
		renderError("Gesli se ne ujemata.")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		renderError("Napaka pri registraciji.")
		return
	}

	user, err := store.CreateUser(r.Context(), s.DB, name, email, string(hash))
	if err == store.ErrDuplicateEmail {
		s.Templates.Render(w, "login.html", &PageData{
			Title:   "Prijava",
			Success: "E-pošta je že registrirana. Prijavite se.",
		})
		return
	}
	if err != nil {
		slog.Error("failed to create user", "error", err)
		renderError("Napaka pri registraciji.")
		return
	}

	slog.Info("user signed up", "user", user.Email)
	s.Templates.Render(w, "login.html", &PageData{
		Title:   "Prijava",
		Success: "Račun je ustvarjen. Prijavite se.",
	})
}

// Logout handles POST /logout: revokes the token and clears the cookie.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	if claims := cookieClaims(r, s.JWTSecret, s.DB); claims != nil && claims.ID != "" && claims.ExpiresAt != nil {
		if err := store.RevokeToken(r.Context(), s.DB, claims.ID, claims.ExpiresAt.Time); err != nil {
			slog.Error("failed to revoke token on logout", "error", err)
		}
	}

	clearAuthCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
