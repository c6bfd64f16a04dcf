package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/apodaca-kapital/investor-portal/config"
	httpx "github.com/apodaca-kapital/investor-portal/internal/http"
)

// HTTPServerDeps contains dependencies for the HTTP server.
type HTTPServerDeps struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// NewHTTPServer builds the router and a configured server. It does not
// start listening; use Serve.
func NewHTTPServer(deps HTTPServerDeps) *http.Server {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := deps.Config

	handler := httpx.NewRouter(httpx.RouterServices{
		Auth:          deps.Services.Auth,
		Clients:       deps.Services.Clients,
		Accounts:      deps.Services.Accounts,
		Movements:     deps.Services.Movements,
		Beneficiaries: deps.Services.Beneficiaries,
		Documents:     deps.Services.Documents,
		Requests:      deps.Services.Requests,
		Profiles:      deps.Services.Profiles,
		PublicPaths:   cfg.HTTP.PublicPaths,
		LoginPath:     cfg.HTTP.LoginPath,
		SecureCookies: strings.HasPrefix(cfg.HTTP.BaseURL, "https://"),
		Logger:        logger,
	})

	addr := cfg.HTTP.Addr
	// Guard against empty addr to avoid listening on Go default
	if addr == "" {
		addr = ":8080"
	}

	return &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
}

// Serve runs the server until ctx is canceled, then drains in-flight
// connections before returning.
func Serve(ctx context.Context, server *http.Server, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down HTTP server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}

		logger.Info("HTTP server stopped")
		return nil
	})
	return g.Wait()
}
