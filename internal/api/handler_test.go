package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"access-diff/internal/domain"
	"access-diff/internal/export"
	"access-diff/internal/ingest"
	"access-diff/internal/service/review"
)

func newTestHandler(maxUpload int64) http.Handler {
	svc := review.NewService(ingest.NewIngestor(nil), export.NewStore(time.Minute), nil)
	return NewHandler(svc, maxUpload, nil).Routes([]string{"https://review.example"})
}

func multipartRequest(t *testing.T, files map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for field, body := range files {
		fw, err := mw.CreateFormFile(field, field+".csv")
		require.NoError(t, err)
		_, err = fw.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, "/compare", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var body ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestCompare_ReturnsSummaryAndExports(t *testing.T) {
	h := newTestHandler(0)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, multipartRequest(t, map[string]string{
		OldFileField: "UserID,Name,App,Role\nu1,Alice,CRM,Admin\n",
		NewFileField: "UserID,Name,App,Role\nu1,Alice,CRM,Admin\nu1,Alice,ERP,Viewer\nu2,Bob,CRM,Viewer\n",
	}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp CompareResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, domain.DiffSummary{UsersAdded: 1, EntAdded: 2}, resp.Summary)
	require.NotNil(t, resp.Result)
	assert.True(t, resp.Result.EntitlementComparisonAvailable)
	assert.Equal(t, []domain.UserChange{{UserID: "u2", Name: "Bob"}}, resp.Result.UsersAdded)
	require.Len(t, resp.Exports, 5)

	token := resp.Exports[export.FileEntitlementsAdded]
	require.NotEmpty(t, token)

	dl := httptest.NewRecorder()
	h.ServeHTTP(dl, httptest.NewRequest(http.MethodGet, "/exports/"+token, nil))
	require.Equal(t, http.StatusOK, dl.Code)
	assert.Equal(t, "text/csv; charset=utf-8", dl.Header().Get("Content-Type"))
	assert.Contains(t, dl.Header().Get("Content-Disposition"), export.FileEntitlementsAdded)
	assert.Equal(t, "UserID,Name,Application,Role\nu1,Alice,ERP,Viewer\nu2,Bob,CRM,Viewer\n", dl.Body.String())
}

func TestCompare_MissingUpload(t *testing.T) {
	h := newTestHandler(0)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, multipartRequest(t, map[string]string{OldFileField: "UserID\nu1\n"}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, http.StatusBadRequest, body.Code)
	assert.Contains(t, body.Message, NewFileField)
}

func TestCompare_EmptyUpload(t *testing.T) {
	h := newTestHandler(0)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, multipartRequest(t, map[string]string{
		OldFileField: "",
		NewFileField: "UserID,Name,App,Role\nu1,Alice,CRM,Admin\n",
	}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, http.StatusBadRequest, body.Code)
	assert.Equal(t, `upload "old_file" is empty`, body.Message)
}

func TestCompare_UploadTooLarge(t *testing.T) {
	h := newTestHandler(16)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, multipartRequest(t, map[string]string{
		OldFileField: "UserID\nu1\n",
		NewFileField: "UserID\nu2\n",
	}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec).Message, "upload exceeds 16 bytes")
}

func TestCompare_IngestFailureIsBadRequest(t *testing.T) {
	h := newTestHandler(0)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, multipartRequest(t, map[string]string{
		OldFileField: "UserID\nu1\n",
		NewFileField: "%PDF-1.4\n%\xE2\xE3\xCF\xD3\n",
	}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec).Message, "spreadsheet parsing failed")
}

func TestGetExport_NotFound(t *testing.T) {
	h := newTestHandler(0)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/exports/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, ErrorResponse{Code: 404, Message: "export not found or expired"}, decodeError(t, rec))
}

func TestRoutes_CORSPreflight(t *testing.T) {
	h := newTestHandler(0)

	req := httptest.NewRequest(http.MethodOptions, "/compare", nil)
	req.Header.Set("Origin", "https://review.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "https://review.example", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	Health(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestHTTPStatusFromDomainError(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, httpStatusFromDomainError(domain.ErrNotFound("x")))
	assert.Equal(t, http.StatusBadRequest, httpStatusFromDomainError(domain.ErrValidation("x")))
	assert.Equal(t, http.StatusBadRequest, httpStatusFromDomainError(domain.ErrIngest("a.xlsx", assert.AnError)))
	assert.Equal(t, http.StatusInternalServerError, httpStatusFromDomainError(assert.AnError))
}
