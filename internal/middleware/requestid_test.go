package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// serveWithRequestID runs RequestID around a handler that captures the
// context ID, and returns it along with the recorder.
func serveWithRequestID(t *testing.T, incoming string) (string, *httptest.ResponseRecorder) {
	t.Helper()
	var captured string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = RequestIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodPost, "/v1/compare", nil)
	if incoming != "" {
		req.Header.Set(RequestIDHeader, incoming)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)
	return captured, rec
}

func TestRequestID_AssignsUUIDWhenAbsent(t *testing.T) {
	id, rec := serveWithRequestID(t, "")

	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, id, rec.Header().Get(RequestIDHeader))
}

func TestRequestID_IncomingHeader(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{name: "review correlation id", incoming: "review-2026_10_18", keep: true},
		{name: "single character", incoming: "r", keep: true},
		{name: "at length cap", incoming: strings.Repeat("r", maxRequestIDLen), keep: true},
		{name: "one over length cap", incoming: strings.Repeat("r", maxRequestIDLen+1)},
		{name: "newline injection", incoming: "upload-1\nlevel=ERROR msg=forged"},
		{name: "carriage return", incoming: "upload-1\rforged"},
		{name: "space", incoming: "upload 1"},
		{name: "markup", incoming: "<b>upload</b>"},
		{name: "dot and slash", incoming: "../exports/abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, rec := serveWithRequestID(t, tt.incoming)

			assert.Equal(t, id, rec.Header().Get(RequestIDHeader))
			if tt.keep {
				assert.Equal(t, tt.incoming, id)
				return
			}
			assert.NotEqual(t, tt.incoming, id)
			_, err := uuid.Parse(id)
			assert.NoError(t, err, "replacement should be a fresh UUID")
		})
	}
}

func TestValidRequestID_LengthCap(t *testing.T) {
	assert.False(t, validRequestID(""))
	assert.True(t, validRequestID(strings.Repeat("A", maxRequestIDLen)))
	assert.False(t, validRequestID(strings.Repeat("A", maxRequestIDLen+1)))
}

func TestRequestIDFromContext_EmptyWithoutMiddleware(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, RequestIDFromContext(req.Context()))
}
