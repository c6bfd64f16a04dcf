package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/apodaca-kapital/investor-portal/internal/domain/auth"
	"github.com/apodaca-kapital/investor-portal/internal/service"
)

type fakeSessionChecker struct {
	check  *service.SessionCheck
	err    error
	calls  int
	policy service.AuthPolicy
}

func (f *fakeSessionChecker) GetSession(_ context.Context, _ string) (*service.SessionCheck, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.check, nil
}

func (f *fakeSessionChecker) Policy() service.AuthPolicy { return f.policy }

func testPolicy() service.AuthPolicy {
	return service.AuthPolicy{
		AdminPrefixes: []string{"/admin", "/api/admin"},
		AdminHome:     "/admin",
		ClientHome:    "/inicio",
	}
}

func newTestGateway(auth *fakeSessionChecker) *Gateway {
	return NewGateway(GatewayConfig{
		Auth:           auth,
		Codec:          SessionCookieCodec{},
		PublicPrefixes: []string{"/login", "/api/auth", "/healthz"},
		LoginPath:      "/login",
	})
}

func sessionCheck(role domainauth.Role) *service.SessionCheck {
	return &service.SessionCheck{
		Session: domainauth.Session{
			ID:        "sess-1",
			UserID:    "user-1",
			Email:     "cliente@example.com",
			ExpiresAt: time.Now().Add(time.Hour),
		},
		Role: role,
	}
}

func withSessionCookie(r *http.Request) *http.Request {
	r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "sess-1"})
	return r
}

func passThrough(t *testing.T) (http.Handler, *bool) {
	t.Helper()
	called := false
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}), &called
}

func TestGatewayAnonymousPageRedirectsToLoginWithDestination(t *testing.T) {
	auth := &fakeSessionChecker{policy: testPolicy()}
	next, called := passThrough(t)
	rec := httptest.NewRecorder()

	newTestGateway(auth).Middleware(next).ServeHTTP(rec,
		httptest.NewRequest(http.MethodGet, "/admin/clientes", nil))

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login?redirect=%2Fadmin%2Fclientes", rec.Header().Get("Location"))
	assert.False(t, *called)
	assert.Zero(t, auth.calls, "no cookie means no session lookup")
}

func TestGatewayAnonymousAPIGets401(t *testing.T) {
	auth := &fakeSessionChecker{policy: testPolicy()}
	next, called := passThrough(t)
	rec := httptest.NewRecorder()

	newTestGateway(auth).Middleware(next).ServeHTTP(rec,
		httptest.NewRequest(http.MethodGet, "/api/me/cuenta", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "authentication_required")
	assert.False(t, *called)
}

func TestGatewayPublicPathSkipsSessionRead(t *testing.T) {
	auth := &fakeSessionChecker{policy: testPolicy()}
	next, called := passThrough(t)
	rec := httptest.NewRecorder()

	req := withSessionCookie(httptest.NewRequest(http.MethodPost, "/api/auth/login", nil))
	newTestGateway(auth).Middleware(next).ServeHTTP(rec, req)

	assert.True(t, *called)
	assert.Zero(t, auth.calls)
}

func TestGatewayClientOnAdminPageRedirectsHomeWithoutSessionMutation(t *testing.T) {
	auth := &fakeSessionChecker{policy: testPolicy(), check: sessionCheck(domainauth.RoleClient)}
	next, called := passThrough(t)
	rec := httptest.NewRecorder()

	req := withSessionCookie(httptest.NewRequest(http.MethodGet, "/admin/clientes", nil))
	newTestGateway(auth).Middleware(next).ServeHTTP(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/inicio", rec.Header().Get("Location"))
	assert.False(t, *called)
	assert.Empty(t, rec.Header().Values("Set-Cookie"), "deny must not touch the session")
}

func TestGatewayClientOnAdminAPIGets403(t *testing.T) {
	auth := &fakeSessionChecker{policy: testPolicy(), check: sessionCheck(domainauth.RoleClient)}
	next, called := passThrough(t)
	rec := httptest.NewRecorder()

	req := withSessionCookie(httptest.NewRequest(http.MethodGet, "/api/admin/clientes", nil))
	newTestGateway(auth).Middleware(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "insufficient_permissions")
	assert.False(t, *called)
}

func TestGatewayAdminPassesWithPrincipal(t *testing.T) {
	auth := &fakeSessionChecker{policy: testPolicy(), check: sessionCheck(domainauth.RoleAdmin)}
	var principal Principal
	var found bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, found = GetPrincipal(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	rec := httptest.NewRecorder()

	req := withSessionCookie(httptest.NewRequest(http.MethodGet, "/admin/clientes", nil))
	newTestGateway(auth).Middleware(next).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, found)
	assert.Equal(t, "user-1", principal.Session.UserID)
	assert.True(t, principal.IsAdmin())
}

func TestGatewayClientPassesOnClientPath(t *testing.T) {
	auth := &fakeSessionChecker{policy: testPolicy(), check: sessionCheck(domainauth.RoleClient)}
	next, called := passThrough(t)
	rec := httptest.NewRecorder()

	req := withSessionCookie(httptest.NewRequest(http.MethodGet, "/movimientos", nil))
	newTestGateway(auth).Middleware(next).ServeHTTP(rec, req)

	assert.True(t, *called)
	assert.Equal(t, 1, auth.calls)
}

func TestGatewayRefreshRewritesExactlyOneSessionCookie(t *testing.T) {
	check := sessionCheck(domainauth.RoleClient)
	check.Refreshed = true
	auth := &fakeSessionChecker{policy: testPolicy(), check: check}
	next, called := passThrough(t)
	rec := httptest.NewRecorder()

	req := withSessionCookie(httptest.NewRequest(http.MethodGet, "/documentos", nil))
	newTestGateway(auth).Middleware(next).ServeHTTP(rec, req)

	assert.True(t, *called)
	var sessionCookies int
	for _, c := range rec.Result().Cookies() {
		if c.Name == SessionCookieName && c.MaxAge >= 0 {
			sessionCookies++
			assert.Equal(t, "sess-1", c.Value)
		}
	}
	assert.Equal(t, 1, sessionCookies)
}

func TestGatewayStoreFailureClearsCookieAndDenies(t *testing.T) {
	auth := &fakeSessionChecker{policy: testPolicy(), err: context.DeadlineExceeded}
	next, called := passThrough(t)
	rec := httptest.NewRecorder()

	req := withSessionCookie(httptest.NewRequest(http.MethodGet, "/inicio", nil))
	newTestGateway(auth).Middleware(next).ServeHTTP(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Location"), "/login"))
	assert.False(t, *called)

	var cleared bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == SessionCookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared, "invalid session cookie should be expired")
}
