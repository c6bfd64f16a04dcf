package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mockauth "github.com/apodaca-kapital/investor-portal/internal/mocks/auth"
	"github.com/apodaca-kapital/investor-portal/internal/service"
)

type authHandlerFixture struct {
	handler  *AuthHandler
	store    *mockauth.MockCredentialStore
	sessions *mockauth.MemorySessionStore
}

func newAuthHandlerFixture(t *testing.T) *authHandlerFixture {
	t.Helper()
	store := mockauth.NewMockCredentialStore()
	sessions := mockauth.NewMemorySessionStore()
	svc := service.NewAuthService(service.AuthServiceOptions{
		Store:    store,
		Sessions: sessions,
		Roles:    mockauth.AllowlistRoleResolver{AdminEmails: []string{"admin@example.com"}},
		Throttle: mockauth.NewMemoryThrottle(5),
		Policy: service.AuthPolicy{
			AdminPrefixes:      []string{"/admin"},
			AdminHome:          "/admin",
			ClientHome:         "/inicio",
			BaseURL:            "https://portal.example.com",
			SessionTTL:         8 * time.Hour,
			SessionTTLRemember: 720 * time.Hour,
			RefreshWindow:      30 * time.Minute,
		},
	})
	return &authHandlerFixture{
		handler:  NewAuthHandler(svc, SessionCookieCodec{}, "/login"),
		store:    store,
		sessions: sessions,
	}
}

func postJSON(t *testing.T, body string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func sessionCookieFrom(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == SessionCookieName && c.MaxAge >= 0 && c.Value != "" {
			return c
		}
	}
	return nil
}

func TestLoginSuccessSetsSessionCookie(t *testing.T) {
	f := newAuthHandlerFixture(t)
	rec := httptest.NewRecorder()

	f.handler.Login(rec, postJSON(t, `{"email":"cliente@example.com","password":"secreta123"}`))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		OK         bool   `json:"ok"`
		RedirectTo string `json:"redirectTo"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
	assert.Equal(t, "/inicio", resp.RedirectTo)

	cookie := sessionCookieFrom(t, rec)
	require.NotNil(t, cookie)
	assert.Equal(t, 1, f.sessions.Len())
}

func TestLoginWrongPasswordIsGenericAndCookieless(t *testing.T) {
	f := newAuthHandlerFixture(t)
	rec := httptest.NewRecorder()

	f.handler.Login(rec, postJSON(t, `{"email":"cliente@example.com","password":"wrong"}`))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), service.GenericLoginFailure)
	assert.Nil(t, sessionCookieFrom(t, rec))
	assert.Zero(t, f.sessions.Len())
}

func TestLoginMissingInput(t *testing.T) {
	f := newAuthHandlerFixture(t)
	rec := httptest.NewRecorder()

	f.handler.Login(rec, postJSON(t, `{"email":"","password":""}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing_input")
}

func TestCallbackExchangesCodeAndRedirects(t *testing.T) {
	f := newAuthHandlerFixture(t)
	rec := httptest.NewRecorder()

	req := httptest.NewRequest(http.MethodGet, "/auth/callback?code=valid-code&redirect=%2Fdocumentos", nil)
	f.handler.Callback(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/documentos", rec.Header().Get("Location"))
	assert.NotNil(t, sessionCookieFrom(t, rec))
}

func TestCallbackExpiredCodeRedirectsToLoginWithGenericError(t *testing.T) {
	f := newAuthHandlerFixture(t)
	rec := httptest.NewRecorder()

	req := httptest.NewRequest(http.MethodGet, "/auth/callback?code=expired", nil)
	f.handler.Callback(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)
	loc := rec.Header().Get("Location")
	assert.True(t, strings.HasPrefix(loc, "/login?error="))
	// the error parameter never distinguishes expired from unknown codes
	assert.Contains(t, loc, "invalid+credentials")
	assert.Nil(t, sessionCookieFrom(t, rec))
}

func TestLogoutInvalidatesAndClearsCookie(t *testing.T) {
	f := newAuthHandlerFixture(t)

	loginRec := httptest.NewRecorder()
	f.handler.Login(loginRec, postJSON(t, `{"email":"cliente@example.com","password":"secreta123"}`))
	cookie := sessionCookieFrom(t, loginRec)
	require.NotNil(t, cookie)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: cookie.Name, Value: cookie.Value})
	f.handler.Logout(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, f.sessions.Len())
	assert.Equal(t, []string{"mock-access"}, f.store.InvalidatedTokens)

	var cleared bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == SessionCookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared)
}

func TestStatusWithoutSession(t *testing.T) {
	f := newAuthHandlerFixture(t)
	rec := httptest.NewRecorder()

	f.handler.Status(rec, httptest.NewRequest(http.MethodGet, "/api/auth/status", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"authenticated":false`)
}

func TestStatusWithSession(t *testing.T) {
	f := newAuthHandlerFixture(t)

	loginRec := httptest.NewRecorder()
	f.handler.Login(loginRec, postJSON(t, `{"email":"cliente@example.com","password":"secreta123"}`))
	cookie := sessionCookieFrom(t, loginRec)
	require.NotNil(t, cookie)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/status", nil)
	req.AddCookie(&http.Cookie{Name: cookie.Name, Value: cookie.Value})
	f.handler.Status(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Authenticated bool `json:"authenticated"`
		User          struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Authenticated)
	assert.Equal(t, "cliente@example.com", resp.User.Email)
	assert.Equal(t, "client", resp.User.Role)
}
