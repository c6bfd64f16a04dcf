package bootstrap

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/redis/go-redis/v9"

	"github.com/apodaca-kapital/investor-portal/config"
	"github.com/apodaca-kapital/investor-portal/internal/adapters/authroles"
	"github.com/apodaca-kapital/investor-portal/internal/adapters/devauth"
	"github.com/apodaca-kapital/investor-portal/internal/adapters/gotrue"
	redisadapter "github.com/apodaca-kapital/investor-portal/internal/adapters/redis"
	"github.com/apodaca-kapital/investor-portal/internal/ports"
	"github.com/apodaca-kapital/investor-portal/internal/service"
)

// AuthDeps groups dependencies for building the auth service.
type AuthDeps struct {
	Config      *config.AppConfig
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// BuildAuthService wires the credential store, session store, throttle and
// role resolver behind the auth service. The credential store doubles as the
// user provisioner for client-access onboarding, so both are returned.
func BuildAuthService(deps AuthDeps) (*service.AuthService, ports.UserProvisioner, error) {
	if deps.RedisClient == nil {
		return nil, nil, fmt.Errorf("auth service requires a redis client")
	}
	cfg := deps.Config

	store, err := buildCredentialStore(cfg, deps.Logger)
	if err != nil {
		return nil, nil, err
	}

	sessions := redisadapter.NewSessionStoreWithPrefix(deps.RedisClient, "session:")
	throttle := redisadapter.NewLoginThrottle(
		deps.RedisClient,
		cfg.Auth.ThrottleMaxAttempts,
		cfg.Auth.ThrottleWindow,
	)

	svc := service.NewAuthService(service.AuthServiceOptions{
		Store:    store,
		Sessions: sessions,
		Roles:    authroles.NewAllowlistResolver(cfg.Auth.AdminEmails),
		Throttle: throttle,
		Policy: service.AuthPolicy{
			AdminPrefixes:      cfg.HTTP.AdminPrefixes,
			AdminHome:          cfg.HTTP.AdminHome,
			ClientHome:         cfg.HTTP.ClientHome,
			BaseURL:            cfg.HTTP.BaseURL,
			SessionTTL:         cfg.Auth.SessionTTL,
			SessionTTLRemember: cfg.Auth.SessionTTLRemember,
			RefreshWindow:      cfg.Auth.RefreshWindow,
		},
		Logger: deps.Logger,
	})
	return svc, store, nil
}

// credentialStore is satisfied by both the gotrue and devauth adapters.
type credentialStore interface {
	ports.CredentialStore
	ports.UserProvisioner
}

func buildCredentialStore(cfg *config.AppConfig, logger *slog.Logger) (credentialStore, error) {
	switch cfg.Auth.Mode {
	case config.AuthModeMock:
		store, err := devauth.NewStore(cfg.Auth.DevAuth.Users, cfg.Auth.SessionTTL, logger)
		if err != nil {
			return nil, fmt.Errorf("build dev credential store: %w", err)
		}
		if logger != nil {
			logger.Warn("mock credential store enabled; not for production use")
		}
		return store, nil

	case config.AuthModeGoTrue:
		if cfg.Auth.GoTrue.BaseURL == "" || cfg.Auth.GoTrue.APIKey == "" {
			return nil, fmt.Errorf("gotrue credential store requires GOTRUE_BASE_URL and GOTRUE_API_KEY")
		}
		store, err := gotrue.NewStore(gotrue.Config{
			BaseURL:    cfg.Auth.GoTrue.BaseURL,
			APIKey:     cfg.Auth.GoTrue.APIKey,
			Issuer:     cfg.Auth.GoTrue.Issuer,
			Audience:   cfg.Auth.GoTrue.Audience,
			HTTPClient: &http.Client{Timeout: cfg.Auth.GoTrue.Timeout},
		})
		if err != nil {
			return nil, fmt.Errorf("build gotrue credential store: %w", err)
		}
		return store, nil

	default:
		return nil, fmt.Errorf("unsupported auth mode %q", cfg.Auth.Mode)
	}
}
