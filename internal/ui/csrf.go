package ui

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"net/http"
	"strings"

	gomponents "maragu.dev/gomponents"
	html "maragu.dev/gomponents/html"
)

const (
	csrfCookieName = "accessdiff_csrf"
	csrfFormField  = "csrf_token"
	csrfHeader     = "X-CSRF-Token"
)

type csrfContextKey struct{}

// EnsureCSRFToken issues the double-submit cookie when the client has none and
// exposes the token to page renderers.
func (h *Handler) EnsureCSRFToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := readCSRFCookie(r)
		if token == "" {
			token = randomToken(32)
			http.SetCookie(w, &http.Cookie{
				Name:     csrfCookieName,
				Value:    token,
				Path:     "/",
				HttpOnly: true,
				Secure:   h.Production,
				SameSite: http.SameSiteLaxMode,
			})
		}
		ctx := context.WithValue(r.Context(), csrfContextKey{}, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CheckCSRFCookie rejects unsafe requests before their body is read: the
// cookie must be present, and a header token, when sent, must match it.
// Form tokens are left to RequireCSRF.
func (h *Handler) CheckCSRFCookie(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if safeMethod(r.Method) {
			next.ServeHTTP(w, r)
			return
		}

		cookieToken := readCSRFCookie(r)
		if cookieToken == "" {
			rejectCSRF(w, "Missing CSRF token cookie.")
			return
		}
		if headerToken := strings.TrimSpace(r.Header.Get(csrfHeader)); headerToken != "" && !tokensMatch(cookieToken, headerToken) {
			rejectCSRF(w, "Invalid or missing CSRF token.")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireCSRF rejects unsafe requests whose form or header token does not
// match the cookie. Multipart bodies must already be parsed.
func (h *Handler) RequireCSRF(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if safeMethod(r.Method) {
			next.ServeHTTP(w, r)
			return
		}

		cookieToken := readCSRFCookie(r)
		if cookieToken == "" {
			rejectCSRF(w, "Missing CSRF token cookie.")
			return
		}

		formToken := strings.TrimSpace(r.Header.Get(csrfHeader))
		if formToken == "" {
			if r.MultipartForm == nil {
				_ = r.ParseForm()
			}
			formToken = strings.TrimSpace(r.FormValue(csrfFormField))
		}

		if !tokensMatch(cookieToken, formToken) {
			rejectCSRF(w, "Invalid or missing CSRF token.")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func safeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

func tokensMatch(cookieToken, token string) bool {
	return subtle.ConstantTimeCompare([]byte(cookieToken), []byte(token)) == 1
}

func rejectCSRF(w http.ResponseWriter, msg string) {
	renderHTML(w, http.StatusForbidden, errorPage("CSRF Validation Failed", msg))
}

func csrfField(r *http.Request) gomponents.Node {
	token, _ := r.Context().Value(csrfContextKey{}).(string)
	if token == "" {
		token = readCSRFCookie(r)
	}
	return html.Input(
		html.Type("hidden"),
		html.Name(csrfFormField),
		html.Value(token),
	)
}

func readCSRFCookie(r *http.Request) string {
	cookie, err := r.Cookie(csrfCookieName)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(cookie.Value)
}

func randomToken(size int) string {
	if size < 16 {
		size = 16
	}
	b := make([]byte, size)
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}
