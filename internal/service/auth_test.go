package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/apodaca-kapital/investor-portal/internal/domain/auth"
	mockauth "github.com/apodaca-kapital/investor-portal/internal/mocks/auth"
	"github.com/apodaca-kapital/investor-portal/internal/ports"
)

const adminEmail = "rafael_apodaca@hotmail.com"

type authFixture struct {
	store    *mockauth.MockCredentialStore
	sessions *mockauth.MemorySessionStore
	throttle *mockauth.MemoryThrottle
	svc      *AuthService
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	store := mockauth.NewMockCredentialStore()
	sessions := mockauth.NewMemorySessionStore()
	throttle := mockauth.NewMemoryThrottle(3)

	svc := NewAuthService(AuthServiceOptions{
		Store:    store,
		Sessions: sessions,
		Roles:    mockauth.AllowlistRoleResolver{AdminEmails: []string{adminEmail}},
		Throttle: throttle,
		Policy: AuthPolicy{
			AdminPrefixes:      []string{"/admin", "/backoffice"},
			AdminHome:          "/admin",
			ClientHome:         "/inicio",
			BaseURL:            "https://portal.example.com",
			SessionTTL:         8 * time.Hour,
			SessionTTLRemember: 720 * time.Hour,
			RefreshWindow:      30 * time.Minute,
		},
	})
	return &authFixture{store: store, sessions: sessions, throttle: throttle, svc: svc}
}

func (f *authFixture) asAdmin() {
	f.store.DefaultIdentity = domainauth.Identity{ID: "admin-1", Email: adminEmail}
}

func TestLogin_AdminDefaultsToAdminHome(t *testing.T) {
	f := newAuthFixture(t)
	f.asAdmin()

	res, err := f.svc.Login(context.Background(), LoginInput{
		Email:    adminEmail,
		Password: "secreta123",
	})
	require.NoError(t, err)
	assert.True(t, res.OK)
	assert.Equal(t, "/admin", res.RedirectTo)
	assert.Equal(t, domainauth.RoleAdmin, res.Role)
	require.NotNil(t, res.Session)
	assert.Equal(t, 1, f.sessions.Len())
}

func TestLogin_AdminDeepLinkWithinAdminAreaHonored(t *testing.T) {
	f := newAuthFixture(t)
	f.asAdmin()

	res, err := f.svc.Login(context.Background(), LoginInput{
		Email:             adminEmail,
		Password:          "secreta123",
		RequestedRedirect: "/admin/clientes?page=2",
	})
	require.NoError(t, err)
	assert.Equal(t, "/admin/clientes?page=2", res.RedirectTo)
}

func TestLogin_AdminRedirectOutsideAdminAreaOverridden(t *testing.T) {
	f := newAuthFixture(t)
	f.asAdmin()

	res, err := f.svc.Login(context.Background(), LoginInput{
		Email:             adminEmail,
		Password:          "secreta123",
		RequestedRedirect: "/inicio",
	})
	require.NoError(t, err)
	assert.Equal(t, "/admin", res.RedirectTo)
}

func TestLogin_ClientNeverRedirectedIntoAdminArea(t *testing.T) {
	f := newAuthFixture(t)

	res, err := f.svc.Login(context.Background(), LoginInput{
		Email:             "cliente@example.com",
		Password:          "secreta123",
		RequestedRedirect: "/admin/clientes",
	})
	require.NoError(t, err)
	assert.True(t, res.OK)
	assert.Equal(t, "/inicio", res.RedirectTo)
	assert.Equal(t, domainauth.RoleClient, res.Role)
}

func TestLogin_ClientSafeRedirectHonored(t *testing.T) {
	f := newAuthFixture(t)

	res, err := f.svc.Login(context.Background(), LoginInput{
		Email:             "cliente@example.com",
		Password:          "secreta123",
		RequestedRedirect: "/movimientos",
	})
	require.NoError(t, err)
	assert.Equal(t, "/movimientos", res.RedirectTo)
}

func TestLogin_UnsafeRedirectDiscarded(t *testing.T) {
	f := newAuthFixture(t)
	f.asAdmin()

	res, err := f.svc.Login(context.Background(), LoginInput{
		Email:             adminEmail,
		Password:          "secreta123",
		RequestedRedirect: "//evil.com/phish",
	})
	require.NoError(t, err)
	assert.True(t, res.OK)
	assert.Equal(t, "/admin", res.RedirectTo)
}

func TestLogin_WrongPasswordGenericFailure(t *testing.T) {
	f := newAuthFixture(t)

	res, err := f.svc.Login(context.Background(), LoginInput{
		Email:    "cliente@example.com",
		Password: "wrong",
	})
	require.NoError(t, err)
	assert.False(t, res.OK)
	assert.Equal(t, GenericLoginFailure, res.Message)
	assert.Nil(t, res.Session)
	assert.Equal(t, 0, f.sessions.Len())
}

func TestLogin_MissingInput(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.svc.Login(context.Background(), LoginInput{Email: "", Password: "x"})
	assert.ErrorIs(t, err, ErrMissingInput)

	_, err = f.svc.Login(context.Background(), LoginInput{Email: "a@b.c", Password: ""})
	assert.ErrorIs(t, err, ErrMissingInput)
}

func TestLogin_StoreUnavailableFailsClosed(t *testing.T) {
	f := newAuthFixture(t)
	f.store.VerifyPasswordFunc = func(_ context.Context, _, _ string) (ports.Credentials, error) {
		return ports.Credentials{}, errors.New("dial tcp: connection refused")
	}

	res, err := f.svc.Login(context.Background(), LoginInput{
		Email:    "cliente@example.com",
		Password: "secreta123",
	})
	require.NoError(t, err)
	assert.False(t, res.OK)
	assert.Equal(t, StoreUnavailableMessage, res.Message)
	assert.Equal(t, 0, f.sessions.Len())
}

func TestLogin_ThrottleBlocksAfterRepeatedFailures(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	for range 3 {
		res, err := f.svc.Login(ctx, LoginInput{
			Email:    "cliente@example.com",
			Password: "wrong",
			ClientIP: "10.0.0.1",
		})
		require.NoError(t, err)
		require.False(t, res.OK)
	}

	// correct password is now also rejected for this email+IP
	res, err := f.svc.Login(ctx, LoginInput{
		Email:    "cliente@example.com",
		Password: "secreta123",
		ClientIP: "10.0.0.1",
	})
	require.NoError(t, err)
	assert.False(t, res.OK)
	assert.Equal(t, GenericLoginFailure, res.Message)

	// another IP is unaffected
	res, err = f.svc.Login(ctx, LoginInput{
		Email:    "cliente@example.com",
		Password: "secreta123",
		ClientIP: "10.0.0.2",
	})
	require.NoError(t, err)
	assert.True(t, res.OK)
}

func TestLogin_ThrottleOutageDoesNotLockOut(t *testing.T) {
	f := newAuthFixture(t)
	f.throttle.AllowErr = errors.New("redis down")

	res, err := f.svc.Login(context.Background(), LoginInput{
		Email:    "cliente@example.com",
		Password: "secreta123",
	})
	require.NoError(t, err)
	assert.True(t, res.OK)
}

func TestLogin_RememberExtendsSession(t *testing.T) {
	f := newAuthFixture(t)

	res, err := f.svc.Login(context.Background(), LoginInput{
		Email:    "cliente@example.com",
		Password: "secreta123",
		Remember: true,
	})
	require.NoError(t, err)
	require.True(t, res.OK)
	assert.True(t, res.Session.Remember)
	assert.Greater(t, time.Until(res.Session.ExpiresAt), 700*time.Hour)
}

func TestExchangeOneTimeLink_AdminAlwaysLandsOnAdminHome(t *testing.T) {
	f := newAuthFixture(t)
	f.asAdmin()

	res, err := f.svc.ExchangeOneTimeLink(context.Background(), ExchangeInput{
		Code:     "valid-code",
		NextPath: "/inicio",
	})
	require.NoError(t, err)
	assert.True(t, res.OK)
	assert.Equal(t, "/admin", res.RedirectTo)
}

func TestExchangeOneTimeLink_ClientHonorsSafeNextPath(t *testing.T) {
	f := newAuthFixture(t)

	res, err := f.svc.ExchangeOneTimeLink(context.Background(), ExchangeInput{
		Code:     "valid-code",
		NextPath: "/documentos",
	})
	require.NoError(t, err)
	assert.Equal(t, "/documentos", res.RedirectTo)
}

func TestExchangeOneTimeLink_ClientUnsafeNextPathFallsBack(t *testing.T) {
	f := newAuthFixture(t)

	res, err := f.svc.ExchangeOneTimeLink(context.Background(), ExchangeInput{
		Code:     "valid-code",
		NextPath: "//evil.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "/inicio", res.RedirectTo)
}

func TestExchangeOneTimeLink_ExpiredCode(t *testing.T) {
	f := newAuthFixture(t)

	res, err := f.svc.ExchangeOneTimeLink(context.Background(), ExchangeInput{Code: "expired"})
	require.NoError(t, err)
	assert.False(t, res.OK)
	assert.Equal(t, GenericLoginFailure, res.Message)
	assert.Equal(t, 0, f.sessions.Len())
}

func TestRequestMagicLink_EncodesSanitizedNextPath(t *testing.T) {
	f := newAuthFixture(t)

	err := f.svc.RequestMagicLink(context.Background(), MagicLinkRequest{
		Email:      "cliente@example.com",
		RedirectTo: "/documentos",
	})
	require.NoError(t, err)
	require.Len(t, f.store.SentMagicLinks, 1)
	assert.Equal(t, "cliente@example.com", f.store.SentMagicLinks[0].Email)
	assert.Equal(t,
		"https://portal.example.com/auth/callback?redirect=%2Fdocumentos",
		f.store.SentMagicLinks[0].CallbackURL)
}

func TestRequestMagicLink_UnsafeNextPathReplaced(t *testing.T) {
	f := newAuthFixture(t)

	err := f.svc.RequestMagicLink(context.Background(), MagicLinkRequest{
		Email:      "cliente@example.com",
		RedirectTo: "https://evil.com",
	})
	require.NoError(t, err)
	require.Len(t, f.store.SentMagicLinks, 1)
	assert.Equal(t,
		"https://portal.example.com/auth/callback?redirect=%2Finicio",
		f.store.SentMagicLinks[0].CallbackURL)
}

func TestRequestMagicLink_ThrottledSilently(t *testing.T) {
	f := newAuthFixture(t)

	in := MagicLinkRequest{Email: "cliente@example.com", ClientIP: "10.0.0.9"}
	for range 3 {
		require.NoError(t, f.svc.RequestMagicLink(context.Background(), in))
	}
	require.Len(t, f.store.SentMagicLinks, 3)

	// Over the limit the outcome stays identical but no email goes out.
	require.NoError(t, f.svc.RequestMagicLink(context.Background(), in))
	assert.Len(t, f.store.SentMagicLinks, 3)
}

func TestGetSession_ValidSession(t *testing.T) {
	f := newAuthFixture(t)

	login, err := f.svc.Login(context.Background(), LoginInput{
		Email:    "cliente@example.com",
		Password: "secreta123",
	})
	require.NoError(t, err)

	check, err := f.svc.GetSession(context.Background(), login.Session.ID)
	require.NoError(t, err)
	assert.Equal(t, login.Session.ID, check.Session.ID)
	assert.Equal(t, domainauth.RoleClient, check.Role)
	assert.False(t, check.Refreshed)
}

func TestGetSession_RoleRecomputedPerRequest(t *testing.T) {
	f := newAuthFixture(t)
	f.asAdmin()

	login, err := f.svc.Login(context.Background(), LoginInput{
		Email:    adminEmail,
		Password: "secreta123",
	})
	require.NoError(t, err)
	require.Equal(t, domainauth.RoleAdmin, login.Role)

	// demote mid-session by swapping the resolver: the next check must see it
	f.svc.roles = mockauth.AllowlistRoleResolver{AdminEmails: nil}

	check, err := f.svc.GetSession(context.Background(), login.Session.ID)
	require.NoError(t, err)
	assert.Equal(t, domainauth.RoleClient, check.Role)
}

func TestGetSession_MissingOrExpired(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.svc.GetSession(context.Background(), "")
	assert.Error(t, err)

	_, err = f.svc.GetSession(context.Background(), "unknown")
	assert.Error(t, err)
}

func TestGetSession_StoreFailureFailsClosed(t *testing.T) {
	f := newAuthFixture(t)

	login, err := f.svc.Login(context.Background(), LoginInput{
		Email:    "cliente@example.com",
		Password: "secreta123",
	})
	require.NoError(t, err)

	f.store.CurrentUserFunc = func(_ context.Context, _ string) (domainauth.Identity, error) {
		return domainauth.Identity{}, context.DeadlineExceeded
	}
	f.store.RefreshFunc = func(_ context.Context, _ string) (ports.Credentials, error) {
		return ports.Credentials{}, context.DeadlineExceeded
	}

	_, err = f.svc.GetSession(context.Background(), login.Session.ID)
	assert.Error(t, err)
}

func TestGetSession_SlidingRefreshNearExpiry(t *testing.T) {
	f := newAuthFixture(t)

	login, err := f.svc.Login(context.Background(), LoginInput{
		Email:    "cliente@example.com",
		Password: "secreta123",
	})
	require.NoError(t, err)

	// push the stored session close to expiry, inside the refresh window
	sess := *login.Session
	sess.ExpiresAt = time.Now().Add(5 * time.Minute)
	require.NoError(t, f.sessions.Save(context.Background(), sess))

	check, err := f.svc.GetSession(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.True(t, check.Refreshed)
	assert.Equal(t, sess.ID, check.Session.ID)
	assert.Equal(t, "mock-access-2", check.Session.AccessToken)
	assert.Greater(t, time.Until(check.Session.ExpiresAt), time.Hour)
}

func TestGetSession_RevokedTokenRecoveredViaRefresh(t *testing.T) {
	f := newAuthFixture(t)

	login, err := f.svc.Login(context.Background(), LoginInput{
		Email:    "cliente@example.com",
		Password: "secreta123",
	})
	require.NoError(t, err)

	// access token no longer validates, but the refresh token still works
	f.store.CurrentUserFunc = func(_ context.Context, _ string) (domainauth.Identity, error) {
		return domainauth.Identity{}, ports.ErrInvalidCredentials
	}

	check, err := f.svc.GetSession(context.Background(), login.Session.ID)
	require.NoError(t, err)
	assert.True(t, check.Refreshed)
	assert.Equal(t, "mock-access-2", check.Session.AccessToken)
}

func TestLogout(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	login, err := f.svc.Login(ctx, LoginInput{
		Email:    "cliente@example.com",
		Password: "secreta123",
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(ctx, login.Session.ID))
	assert.Equal(t, 0, f.sessions.Len())
	assert.Contains(t, f.store.InvalidatedTokens, "mock-access")

	// logout without a session is a no-op
	assert.NoError(t, f.svc.Logout(ctx, ""))
}
