package ui

import (
	"errors"
	"mime/multipart"
	"net/http"

	"access-diff/internal/domain"
	"access-diff/internal/service/review"
)

const (
	oldFileField = "oldFile"
	newFileField = "newFile"

	defaultMaxUploadBytes = 32 << 20
	multipartMemory       = 8 << 20
)

// ParseUpload caps the request body and parses the multipart form so later
// middleware and handlers can read fields and files from it.
func (h *Handler) ParseUpload(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := parseMultipart(w, r, h.maxUploadBytes()); err != nil {
			h.renderServiceError(w, r, err)
			return
		}
		defer r.MultipartForm.RemoveAll() //nolint:errcheck
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) maxUploadBytes() int64 {
	if h.MaxUploadBytes <= 0 {
		return defaultMaxUploadBytes
	}
	return h.MaxUploadBytes
}

func parseMultipart(w http.ResponseWriter, r *http.Request, limit int64) error {
	if r.ContentLength > limit {
		return domain.ErrValidation("upload exceeds %d bytes", limit)
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return domain.ErrValidation("upload exceeds %d bytes", limit)
		}
		return domain.ErrValidation("invalid multipart upload: %v", err)
	}
	return nil
}

// uploadedSource opens one uploaded file. Missing and zero-byte files are
// validation errors. The caller closes it.
func uploadedSource(r *http.Request, field, label string) (review.Source, multipart.File, error) {
	f, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return review.Source{}, nil, domain.ErrValidation("please upload the %s file", label)
		}
		return review.Source{}, nil, domain.ErrValidation("read %s file: %v", label, err)
	}
	if header.Size == 0 {
		_ = f.Close()
		return review.Source{}, nil, domain.ErrValidation("the %s file is empty", label)
	}
	return review.Source{Name: header.Filename, Reader: f}, f, nil
}
