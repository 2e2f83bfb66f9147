package web

import "net/http"

// ScanPage handles GET /scan. Barcode decoding happens entirely in the
// browser; the decoded string comes back as a prefill for the add-item form
// and is stored verbatim.
func (s *Server) ScanPage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	s.Templates.Render(w, "scan.html", &PageData{Title: "Skeniranje črtne kode", User: claims})
}

// NotFound renders the custom error page with a 404 status.
func (s *Server) NotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	s.Templates.Render(w, "error.html", &PageData{
		Title: "Napaka",
		Error: "Stran ne obstaja.",
	})
}
