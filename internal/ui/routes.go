package ui

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"

	"access-diff/internal/ui/assets"
)

// MountRoutes registers the UI pages on r.
func MountRoutes(r chi.Router, h *Handler) {
	staticFS, err := fs.Sub(assets.StaticFS(), "static")
	if err == nil {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	}

	r.Group(func(r chi.Router) {
		r.Use(h.EnsureCSRFToken)
		r.Get("/", h.Home)
		r.Get("/download/{token}", h.Download)
		r.With(h.CheckCSRFCookie, h.ParseUpload, h.RequireCSRF).Post("/compare", h.Compare)
	})
}
