// Package api provides the JSON HTTP API for roster comparisons.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"access-diff/internal/middleware"
	"access-diff/internal/service/review"
)

// Multipart field names accepted by POST /v1/compare.
const (
	OldFileField = "old_file"
	NewFileField = "new_file"
)

const defaultMaxUploadBytes = 32 << 20

// Handler serves the /v1 JSON API.
type Handler struct {
	review         *review.Service
	maxUploadBytes int64
	logger         *slog.Logger
}

// NewHandler creates a new API Handler.
func NewHandler(reviewSvc *review.Service, maxUploadBytes int64, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUploadBytes
	}
	return &Handler{
		review:         reviewSvc,
		maxUploadBytes: maxUploadBytes,
		logger:         logger.With("component", "api"),
	}
}

// Routes returns the /v1 router with CORS applied for allowedOrigins.
func (h *Handler) Routes(allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader, "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Post("/compare", h.Compare)
	r.Get("/exports/{token}", h.GetExport)
	return r
}

// Health reports liveness.
func Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
