package bootstrap

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/apodaca-kapital/investor-portal/config"
	"github.com/apodaca-kapital/investor-portal/internal/core"
	"github.com/apodaca-kapital/investor-portal/internal/data"
	"github.com/apodaca-kapital/investor-portal/internal/service"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Auth          *service.AuthService
	Clients       *service.ClientService
	Accounts      *service.AccountService
	Movements     *service.MovementService
	Beneficiaries *service.BeneficiaryService
	Documents     *service.DocumentService
	Requests      *service.RequestService
	Profiles      core.ProfileRepository
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// BuildServices constructs the repositories and wires every domain service.
func BuildServices(deps ServiceDeps) (ServiceContainer, error) {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	auth, provisioner, err := BuildAuthService(AuthDeps{
		Config:      deps.Config,
		RedisClient: deps.RedisClient,
		Logger:      logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build auth service: %w", err)
	}

	clients := data.NewClientRepo(deps.DB)
	accounts := data.NewAccountRepo(deps.DB)
	movements := data.NewMovementRepo(deps.DB)
	beneficiaries := data.NewBeneficiaryRepo(deps.DB)
	documents := data.NewDocumentRepo(deps.DB)
	requests := data.NewRequestRepo(deps.DB)
	profiles := data.NewProfileRepo(deps.DB)

	notifier, err := buildRequestNotifier(deps.Config.Webhook, logger)
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build request notifier: %w", err)
	}

	return ServiceContainer{
		Auth: auth,
		Clients: service.NewClientService(service.ClientServiceOptions{
			ClientRepo:  clients,
			AccountRepo: accounts,
			ProfileRepo: profiles,
			Provisioner: provisioner,
			Logger:      logger,
		}),
		Accounts: service.NewAccountService(service.AccountServiceOptions{
			AccountRepo: accounts,
			Logger:      logger,
		}),
		Movements: service.NewMovementService(service.MovementServiceOptions{
			MovementRepo: movements,
			Logger:       logger,
		}),
		Beneficiaries: service.NewBeneficiaryService(service.BeneficiaryServiceOptions{
			BeneficiaryRepo: beneficiaries,
			Logger:          logger,
		}),
		Documents: service.NewDocumentService(service.DocumentServiceOptions{
			DocumentRepo: documents,
			Logger:       logger,
		}),
		Requests: service.NewRequestService(service.RequestServiceOptions{
			RequestRepo: requests,
			Notifier:    notifier,
			Logger:      logger,
		}),
		Profiles: profiles,
	}, nil
}

// buildRequestNotifier returns nil when no webhook URL is configured; the
// request service treats a nil notifier as notifications disabled.
func buildRequestNotifier(cfg config.WebhookConfig, logger *slog.Logger) (service.RequestNotifier, error) {
	if cfg.URL == "" {
		logger.Info("request webhook disabled: no sink URL configured")
		return nil, nil
	}

	var headers map[string]string
	if cfg.Token != "" {
		headers = map[string]string{"Authorization": "Bearer " + cfg.Token}
	}

	notifier, err := service.NewWebhookNotifier(service.WebhookConfig{
		URL:            cfg.URL,
		AllowedDomains: cfg.AllowedDomains,
		AckExpr:        cfg.AckExpr,
		AckValue:       cfg.AckValue,
		Timeout:        cfg.Timeout,
		Headers:        headers,
	})
	if err != nil {
		return nil, err
	}
	return notifier, nil
}
