package core

// Package core defines repository interfaces for the portal's record store.
// Implementations live in internal/data; the store itself is opaque to the
// rest of the application.

import (
	"context"

	"github.com/apodaca-kapital/investor-portal/internal/domain/model"
)

// ClientRepository provides CRUD operations for client records.
type ClientRepository interface {
	Create(ctx context.Context, req *model.CreateClientRequest) (*model.Client, error)
	GetByID(ctx context.Context, id string) (*model.Client, error)
	Update(ctx context.Context, id string, req model.UpdateClientRequest) (*model.Client, error)
	SetOnboarding(ctx context.Context, id string, req model.SetOnboardingRequest) (*model.Client, error)
	List(ctx context.Context, opts model.ClientsListOptions) ([]*model.Client, error)
}

// AccountRepository provides operations for the per-client account record.
type AccountRepository interface {
	// Upsert writes the account row for a client, creating it when absent.
	Upsert(ctx context.Context, acct *model.Account) (*model.Account, error)
	GetByClientID(ctx context.Context, clientID string) (*model.Account, error)
}

// MovementRepository provides operations for movement ledger entries.
type MovementRepository interface {
	Create(ctx context.Context, req *model.CreateMovementRequest) (*model.Movement, error)
	// BulkInsert inserts pre-validated movements and returns the count written.
	BulkInsert(ctx context.Context, movements []*model.Movement) (int, error)
	List(ctx context.Context, opts model.MovementsListOptions) ([]*model.Movement, error)
}

// BeneficiaryRepository provides slot-based beneficiary storage.
type BeneficiaryRepository interface {
	UpsertSlot(ctx context.Context, b *model.Beneficiary) error
	ClearSlot(ctx context.Context, clientID string, slot int) error
	ListByClient(ctx context.Context, clientID string) ([]*model.Beneficiary, error)
}

// DocumentRepository provides operations for registered document links.
type DocumentRepository interface {
	Create(ctx context.Context, req *model.CreateDocumentRequest) (*model.Document, error)
	ListByClient(ctx context.Context, clientID string) ([]*model.Document, error)
}

// FundsRequestRepository provides operations for client funds requests.
type FundsRequestRepository interface {
	Create(ctx context.Context, fr *model.FundsRequest) (*model.FundsRequest, error)
	Update(ctx context.Context, id string, req model.UpdateRequestRequest) (*model.FundsRequest, error)
	GetByID(ctx context.Context, id string) (*model.FundsRequest, error)
	ListByClient(ctx context.Context, clientID string, limit, offset int) ([]*model.FundsRequest, error)
	List(ctx context.Context, limit, offset int) ([]*model.FundsRequest, error)
}

// ProfileRepository links credential-store users to client records.
type ProfileRepository interface {
	Upsert(ctx context.Context, p *model.Profile) error
	GetByUserID(ctx context.Context, userID string) (*model.Profile, error)
	GetByEmail(ctx context.Context, email string) (*model.Profile, error)
}
