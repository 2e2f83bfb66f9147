package api

import (
	"database/sql"
	"net/http"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, jwtSecret string) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: db, JWTSecret: jwtSecret}
	itemsHandler := &ItemsHandler{DB: db}
	dashboardHandler := &DashboardHandler{DB: db}
	accountHandler := &AccountHandler{DB: db}

	authMW := AuthMiddleware(jwtSecret, db)

	// Public: signup and login.
	mux.HandleFunc("POST /api/auth/signup", authHandler.Signup)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)

	// Everything below operates on the authenticated user's own data.
	mux.Handle("POST /api/auth/logout", authMW(http.HandlerFunc(authHandler.Logout)))

	mux.Handle("GET /api/dashboard", authMW(http.HandlerFunc(dashboardHandler.Get)))

	mux.Handle("GET /api/items", authMW(http.HandlerFunc(itemsHandler.List)))
	mux.Handle("POST /api/items", authMW(http.HandlerFunc(itemsHandler.Create)))
	mux.Handle("GET /api/items/export", authMW(http.HandlerFunc(itemsHandler.Export)))
	mux.Handle("POST /api/items/import", authMW(http.HandlerFunc(itemsHandler.Import)))
	mux.Handle("GET /api/items/{id}", authMW(http.HandlerFunc(itemsHandler.Get)))
	mux.Handle("PUT /api/items/{id}", authMW(http.HandlerFunc(itemsHandler.Update)))
	mux.Handle("DELETE /api/items/{id}", authMW(http.HandlerFunc(itemsHandler.Delete)))
	mux.Handle("PUT /api/items/{id}/image", authMW(http.HandlerFunc(itemsHandler.UploadImage)))
	mux.Handle("GET /api/items/{id}/image", authMW(http.HandlerFunc(itemsHandler.GetImage)))

	mux.Handle("GET /api/account", authMW(http.HandlerFunc(accountHandler.Get)))
	mux.Handle("DELETE /api/account", authMW(http.HandlerFunc(accountHandler.Delete)))

	return mux
}
