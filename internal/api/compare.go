package api

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"

	"access-diff/internal/domain"
	"access-diff/internal/service/review"
)

// CompareResponse is the body of a successful POST /v1/compare.
type CompareResponse struct {
	ID      string             `json:"id"`
	Summary domain.DiffSummary `json:"summary"`
	Result  *domain.DiffResult `json:"result"`
	Exports map[string]string  `json:"exports"`
}

const multipartMemory = 8 << 20

// Compare reconciles the two uploaded snapshots and stores their exports.
func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > h.maxUploadBytes {
		h.writeError(w, r, domain.ErrValidation("upload exceeds %d bytes", h.maxUploadBytes))
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.writeError(w, r, domain.ErrValidation("upload exceeds %d bytes", h.maxUploadBytes))
			return
		}
		h.writeError(w, r, domain.ErrValidation("invalid multipart upload: %v", err))
		return
	}
	defer r.MultipartForm.RemoveAll() //nolint:errcheck

	oldFile, oldHeader, err := formSource(r, OldFileField)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	defer oldFile.Close() //nolint:errcheck

	newFile, newHeader, err := formSource(r, NewFileField)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	defer newFile.Close() //nolint:errcheck

	report, err := h.review.Compare(r.Context(),
		review.Source{Name: oldHeader.Filename, Reader: oldFile},
		review.Source{Name: newHeader.Filename, Reader: newFile},
	)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	exports := make(map[string]string, len(report.Exports))
	for _, link := range report.Exports {
		exports[link.Filename] = link.Token
	}
	writeJSON(w, http.StatusOK, CompareResponse{
		ID:      report.ID,
		Summary: report.Summary,
		Result:  report.Result,
		Exports: exports,
	})
}

// formSource opens a required, non-empty upload field.
func formSource(r *http.Request, field string) (multipart.File, *multipart.FileHeader, error) {
	f, header, err := r.FormFile(field)
	if err != nil {
		return nil, nil, domain.ErrValidation("missing upload %q", field)
	}
	if header.Size == 0 {
		_ = f.Close()
		return nil, nil, domain.ErrValidation("upload %q is empty", field)
	}
	return f, header, nil
}

// GetExport returns a stored CSV export.
func (h *Handler) GetExport(w http.ResponseWriter, r *http.Request) {
	f, err := h.review.Export(chi.URLParam(r, "token"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+f.Filename+`"`)
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(f.Bytes)
}
