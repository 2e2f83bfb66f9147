package web

import (
	"database/sql"
	"net/http"

	webembed "github.com/erazemk/shramba/web"
)

// NewRouter creates the web page router with all page routes registered.
func NewRouter(db *sql.DB, jwtSecret string) (http.Handler, error) {
	templates, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{
		DB:        db,
		Templates: templates,
		JWTSecret: jwtSecret,
	}

	mux := http.NewServeMux()
	cookieAuth := CookieAuthMiddleware(jwtSecret, db)

	// Static assets.
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(webembed.StaticFS()))))

	// Public routes.
	mux.HandleFunc("GET /{$}", s.Home)
	mux.HandleFunc("GET /login", s.LoginPage)
	mux.HandleFunc("POST /login", s.LoginSubmit)
	mux.HandleFunc("GET /signup", s.SignupPage)
	mux.HandleFunc("POST /signup", s.SignupSubmit)
	mux.HandleFunc("POST /logout", s.Logout)

	// Authenticated routes.
	mux.Handle("GET /dashboard", cookieAuth(http.HandlerFunc(s.Dashboard)))

	mux.Handle("GET /items", cookieAuth(http.HandlerFunc(s.ItemsPage)))
	mux.Handle("GET /items/add", cookieAuth(http.HandlerFunc(s.ItemAddPage)))
	mux.Handle("POST /items/add", cookieAuth(http.HandlerFunc(s.ItemAddSubmit)))
	mux.Handle("GET /items/{id}/edit", cookieAuth(http.HandlerFunc(s.ItemEditPage)))
	mux.Handle("POST /items/{id}/edit", cookieAuth(http.HandlerFunc(s.ItemEditSubmit)))
	mux.Handle("POST /items/{id}/delete", cookieAuth(http.HandlerFunc(s.ItemDeleteSubmit)))
	mux.Handle("POST /items/{id}/image", cookieAuth(http.HandlerFunc(s.ItemImageSubmit)))
	mux.Handle("GET /items/{id}/image", cookieAuth(http.HandlerFunc(s.ItemImageGet)))

	mux.Handle("GET /scan", cookieAuth(http.HandlerFunc(s.ScanPage)))

	mux.Handle("GET /export-csv", cookieAuth(http.HandlerFunc(s.ExportCSV)))
	mux.Handle("POST /import-csv", cookieAuth(http.HandlerFunc(s.ImportCSV)))

	// Everything else gets the custom error page.
	mux.HandleFunc("/", s.NotFound)

	return mux, nil
}
