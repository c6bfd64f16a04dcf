package bootstrap

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/apodaca-kapital/investor-portal/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func mockAuthConfig(t *testing.T) *config.AppConfig {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secreta123"), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := &config.AppConfig{}
	cfg.Auth.Mode = config.AuthModeMock
	cfg.Auth.DevAuth.Users = []string{"cliente@example.com:" + string(hash)}
	cfg.Auth.SessionTTL = 8 * time.Hour
	return cfg
}

func TestBuildAuthServiceRequiresRedis(t *testing.T) {
	_, _, err := BuildAuthService(AuthDeps{
		Config: mockAuthConfig(t),
		Logger: discardLogger(),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis")
}

func TestBuildCredentialStoreMockMode(t *testing.T) {
	store, err := buildCredentialStore(mockAuthConfig(t), discardLogger())
	require.NoError(t, err)
	assert.NotNil(t, store)
}

func TestBuildCredentialStoreGoTrueRequiresEndpoint(t *testing.T) {
	cfg := &config.AppConfig{}
	cfg.Auth.Mode = config.AuthModeGoTrue

	_, err := buildCredentialStore(cfg, discardLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GOTRUE_BASE_URL")
}

func TestBuildCredentialStoreUnknownMode(t *testing.T) {
	cfg := &config.AppConfig{}
	cfg.Auth.Mode = config.AuthMode("saml")

	_, err := buildCredentialStore(cfg, discardLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported auth mode")
}
