package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/apodaca-kapital/investor-portal/internal/core"
	"github.com/apodaca-kapital/investor-portal/internal/domain/model"
	"github.com/apodaca-kapital/investor-portal/internal/ports"
)

// ErrClientHasNoEmail marks a provisioning attempt for a client without an
// email on file.
var ErrClientHasNoEmail = errors.New("client has no email on file")

// ClientServiceOptions groups dependencies for ClientService.
type ClientServiceOptions struct {
	ClientRepo  core.ClientRepository
	AccountRepo core.AccountRepository
	ProfileRepo core.ProfileRepository
	Provisioner ports.UserProvisioner
	Logger      *slog.Logger
}

// ClientService orchestrates client records: CRUD, onboarding transitions,
// and portal-access provisioning against the credential store.
type ClientService struct {
	clients     core.ClientRepository
	accounts    core.AccountRepository
	profiles    core.ProfileRepository
	provisioner ports.UserProvisioner
	logger      *slog.Logger
}

// NewClientService constructs a new ClientService.
func NewClientService(opts ClientServiceOptions) *ClientService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &ClientService{
		clients:     opts.ClientRepo,
		accounts:    opts.AccountRepo,
		profiles:    opts.ProfileRepo,
		provisioner: opts.Provisioner,
		logger:      logger.With("component", "clients"),
	}
}

// Create creates a client and provisions its base MXN account.
func (s *ClientService) Create(ctx context.Context, req *model.CreateClientRequest) (*model.Client, error) {
	if req == nil {
		return nil, errors.New("create client request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRequest, err)
	}

	client, err := s.clients.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}

	if _, err := s.accounts.Upsert(ctx, &model.Account{ClientID: client.ID, Currency: "MXN"}); err != nil {
		return nil, fmt.Errorf("provision base account: %w", err)
	}

	s.logger.InfoContext(ctx, "client created", "id", client.ID)
	return client, nil
}

// GetByID retrieves a client by ID.
func (s *ClientService) GetByID(ctx context.Context, id string) (*model.Client, error) {
	return s.clients.GetByID(ctx, id)
}

// Update updates a client's contact fields.
func (s *ClientService) Update(ctx context.Context, id string, req model.UpdateClientRequest) (*model.Client, error) {
	client, err := s.clients.Update(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("update client: %w", err)
	}
	return client, nil
}

// SetOnboarding transitions a client's onboarding status.
func (s *ClientService) SetOnboarding(ctx context.Context, id string, req model.SetOnboardingRequest) (*model.Client, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRequest, err)
	}
	client, err := s.clients.SetOnboarding(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("set onboarding: %w", err)
	}
	s.logger.InfoContext(ctx, "onboarding status changed", "id", id, "status", req.Status)
	return client, nil
}

// List returns a page of clients.
func (s *ClientService) List(ctx context.Context, opts model.ClientsListOptions) ([]*model.Client, error) {
	if opts.Limit <= 0 {
		opts.Limit = 50
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}
	return s.clients.List(ctx, opts)
}

// ProvisionResult is the outcome of granting a client portal access. The
// temporary password is returned once, for the admin to hand over; it is
// never stored.
type ProvisionResult struct {
	UserID       string `json:"user_id"`
	Email        string `json:"email"`
	TempPassword string `json:"temp_password"`
}

// ProvisionAccess creates a credential-store user for a client and links the
// two through the profiles table.
func (s *ClientService) ProvisionAccess(ctx context.Context, clientID string) (*ProvisionResult, error) {
	client, err := s.clients.GetByID(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("load client: %w", err)
	}
	if client.Email == nil || strings.TrimSpace(*client.Email) == "" {
		return nil, ErrClientHasNoEmail
	}
	email := strings.ToLower(strings.TrimSpace(*client.Email))

	password, err := generateTempPassword()
	if err != nil {
		return nil, fmt.Errorf("generate password: %w", err)
	}

	identity, err := s.provisioner.CreateUser(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("create portal user: %w", err)
	}

	profile := &model.Profile{
		UserID:      identity.ID,
		Email:       email,
		ClientID:    client.ID,
		Name:        client.Name,
		DisplayRole: "client",
	}
	if err := s.profiles.Upsert(ctx, profile); err != nil {
		return nil, fmt.Errorf("link profile: %w", err)
	}

	s.logger.InfoContext(ctx, "portal access provisioned", "client_id", client.ID, "user_id", identity.ID)
	return &ProvisionResult{UserID: identity.ID, Email: email, TempPassword: password}, nil
}

func generateTempPassword() (string, error) {
	buf := make([]byte, 12)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
