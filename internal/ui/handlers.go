package ui

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"access-diff/internal/domain"
)

// Home renders the upload form.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	renderHTML(w, http.StatusOK, homePage(csrfField(r)))
}

// Compare runs a comparison of the two uploaded snapshots.
func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	oldSrc, oldFile, err := uploadedSource(r, oldFileField, "old")
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	defer oldFile.Close() //nolint:errcheck

	newSrc, newFile, err := uploadedSource(r, newFileField, "new")
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	defer newFile.Close() //nolint:errcheck

	report, err := h.Review.Compare(r.Context(), oldSrc, newSrc)
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}

	renderHTML(w, http.StatusOK, resultsPage(resultsPageData{
		OldName: oldSrc.Name,
		NewName: newSrc.Name,
		Report:  report,
	}))
}

// Download streams a stored export as a CSV attachment.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	f, err := h.Review.Export(chi.URLParam(r, "token"))
	if err != nil {
		renderHTML(w, http.StatusNotFound, errorPage("Not Found", "Not found or expired"))
		return
	}
	writeCSV(w, f.Filename, f.Bytes)
}

func writeCSV(w http.ResponseWriter, filename string, payload []byte) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}

func (h *Handler) renderServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	title := "Unexpected Error"
	message := "An unexpected error occurred while comparing the files."

	var notFound *domain.NotFoundError
	var validation *domain.ValidationError
	var ingest *domain.IngestError
	switch {
	case errors.As(err, &notFound):
		status = http.StatusNotFound
		title = "Not Found"
		message = notFound.Error()
	case errors.As(err, &validation):
		status = http.StatusBadRequest
		title = "Invalid Request"
		message = validation.Error()
	case errors.As(err, &ingest):
		status = http.StatusBadRequest
		title = "Could Not Read Spreadsheet"
		message = ingest.Error()
	default:
		h.logger.Error("request failed", "path", r.URL.Path, "error", err)
	}

	renderHTML(w, status, errorPage(title, message))
}
