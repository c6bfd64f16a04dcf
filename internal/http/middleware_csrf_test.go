package httpx

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func csrfProtected(t *testing.T) (http.Handler, *bool) {
	t.Helper()
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})
	return CSRFProtection()(next), &called
}

func issuedCSRFToken(t *testing.T, handler http.Handler) string {
	t.Helper()
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/inicio", nil))
	for _, c := range rec.Result().Cookies() {
		if c.Name == CSRFCookieName {
			return c.Value
		}
	}
	t.Fatal("no csrf cookie issued")
	return ""
}

func TestCSRFTokenIssuedOnSafeRequest(t *testing.T) {
	handler, called := csrfProtected(t)

	token := issuedCSRFToken(t, handler)
	assert.NotEmpty(t, token)
	assert.True(t, *called)
}

func TestCSRFPostWithoutEchoRejected(t *testing.T) {
	handler, called := csrfProtected(t)
	token := issuedCSRFToken(t, handler)
	*called = false

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/me/solicitudes", nil)
	req.AddCookie(&http.Cookie{Name: CSRFCookieName, Value: token})
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "csrf_token_invalid")
	assert.False(t, *called)
}

func TestCSRFPostWithHeaderEchoPasses(t *testing.T) {
	handler, called := csrfProtected(t)
	token := issuedCSRFToken(t, handler)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/me/solicitudes", nil)
	req.AddCookie(&http.Cookie{Name: CSRFCookieName, Value: token})
	req.Header.Set(CSRFHeaderName, token)
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, *called)
}

func TestCSRFPostWithWrongHeaderRejected(t *testing.T) {
	handler, called := csrfProtected(t)
	token := issuedCSRFToken(t, handler)
	*called = false

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/me/solicitudes", nil)
	req.AddCookie(&http.Cookie{Name: CSRFCookieName, Value: token})
	req.Header.Set(CSRFHeaderName, "forged")
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, *called)
}

func TestCSRFFormFieldEchoPasses(t *testing.T) {
	handler, called := csrfProtected(t)
	token := issuedCSRFToken(t, handler)

	form := url.Values{"csrf_token": {token}}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/me/solicitudes", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: CSRFCookieName, Value: token})
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, *called)
}
