package ui

import (
	"log/slog"
	"net/http"

	gomponents "maragu.dev/gomponents"

	"access-diff/internal/service/review"
)

// Handler serves the comparison web UI.
type Handler struct {
	Review         *review.Service
	Production     bool
	MaxUploadBytes int64
	logger         *slog.Logger
}

// NewHandler creates a UI Handler.
func NewHandler(reviewSvc *review.Service, production bool, maxUploadBytes int64, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handler{
		Review:         reviewSvc,
		Production:     production,
		MaxUploadBytes: maxUploadBytes,
		logger:         logger.With("component", "ui"),
	}
}

func renderHTML(w http.ResponseWriter, status int, node gomponents.Node) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = node.Render(w)
}
