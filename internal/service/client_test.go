package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainauth "github.com/apodaca-kapital/investor-portal/internal/domain/auth"
	"github.com/apodaca-kapital/investor-portal/internal/domain/model"
	"github.com/apodaca-kapital/investor-portal/internal/mocks"
)

const testClientID = "client-123"

func newClientService(t *testing.T) (*mocks.MockClientRepository, *mocks.MockAccountRepository, *mocks.MockProfileRepository, *mocks.MockUserProvisioner, *ClientService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	clientRepo := mocks.NewMockClientRepository(ctrl)
	accountRepo := mocks.NewMockAccountRepository(ctrl)
	profileRepo := mocks.NewMockProfileRepository(ctrl)
	provisioner := mocks.NewMockUserProvisioner(ctrl)

	svc := NewClientService(ClientServiceOptions{
		ClientRepo:  clientRepo,
		AccountRepo: accountRepo,
		ProfileRepo: profileRepo,
		Provisioner: provisioner,
	})
	return clientRepo, accountRepo, profileRepo, provisioner, svc
}

func TestClientService_Create_ProvisionsBaseAccount(t *testing.T) {
	t.Parallel()
	clientRepo, accountRepo, _, _, svc := newClientService(t)

	req := &model.CreateClientRequest{Name: "María López"}
	created := &model.Client{
		ID:               testClientID,
		Name:             "María López",
		OnboardingStatus: model.OnboardingPending,
		CreatedAt:        time.Now(),
	}

	clientRepo.EXPECT().Create(gomock.Any(), req).Return(created, nil)
	accountRepo.EXPECT().
		Upsert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, acct *model.Account) (*model.Account, error) {
			assert.Equal(t, testClientID, acct.ClientID)
			assert.Equal(t, "MXN", acct.Currency)
			assert.Zero(t, acct.Balance)
			return acct, nil
		})

	got, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestClientService_Create_InvalidRequest(t *testing.T) {
	t.Parallel()
	_, _, _, _, svc := newClientService(t)

	_, err := svc.Create(context.Background(), &model.CreateClientRequest{Name: "  "})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestClientService_SetOnboarding_RejectsUnknownStatus(t *testing.T) {
	t.Parallel()
	_, _, _, _, svc := newClientService(t)

	_, err := svc.SetOnboarding(context.Background(), testClientID, model.SetOnboardingRequest{Status: "aprobado"})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestClientService_ProvisionAccess_Success(t *testing.T) {
	t.Parallel()
	clientRepo, _, profileRepo, provisioner, svc := newClientService(t)

	email := "Maria@Example.com"
	clientRepo.EXPECT().GetByID(gomock.Any(), testClientID).Return(&model.Client{
		ID:    testClientID,
		Name:  "María López",
		Email: &email,
	}, nil)

	provisioner.EXPECT().
		CreateUser(gomock.Any(), "maria@example.com", gomock.Any()).
		DoAndReturn(func(_ context.Context, email, password string) (domainauth.Identity, error) {
			assert.NotEmpty(t, password)
			return domainauth.Identity{ID: "user-9", Email: email}, nil
		})

	profileRepo.EXPECT().
		Upsert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p *model.Profile) error {
			assert.Equal(t, "user-9", p.UserID)
			assert.Equal(t, testClientID, p.ClientID)
			assert.Equal(t, "client", p.DisplayRole)
			return nil
		})

	res, err := svc.ProvisionAccess(context.Background(), testClientID)
	require.NoError(t, err)
	assert.Equal(t, "user-9", res.UserID)
	assert.Equal(t, "maria@example.com", res.Email)
	assert.NotEmpty(t, res.TempPassword)
}

func TestClientService_ProvisionAccess_RequiresEmail(t *testing.T) {
	t.Parallel()
	clientRepo, _, _, _, svc := newClientService(t)

	clientRepo.EXPECT().GetByID(gomock.Any(), testClientID).Return(&model.Client{ID: testClientID, Name: "Sin Correo"}, nil)

	_, err := svc.ProvisionAccess(context.Background(), testClientID)
	assert.ErrorIs(t, err, ErrClientHasNoEmail)
}

func TestClientService_ProvisionAccess_ProvisionerFailure(t *testing.T) {
	t.Parallel()
	clientRepo, _, _, provisioner, svc := newClientService(t)

	email := "maria@example.com"
	clientRepo.EXPECT().GetByID(gomock.Any(), testClientID).Return(&model.Client{
		ID: testClientID, Name: "María", Email: &email,
	}, nil)
	provisioner.EXPECT().
		CreateUser(gomock.Any(), email, gomock.Any()).
		Return(domainauth.Identity{}, errors.New("store down"))

	_, err := svc.ProvisionAccess(context.Background(), testClientID)
	assert.Error(t, err)
}

func TestClientService_List_NormalizesPaging(t *testing.T) {
	t.Parallel()
	clientRepo, _, _, _, svc := newClientService(t)

	clientRepo.EXPECT().
		List(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, opts model.ClientsListOptions) ([]*model.Client, error) {
			assert.Equal(t, 50, opts.Limit)
			assert.Equal(t, 0, opts.Offset)
			return nil, nil
		})

	_, err := svc.List(context.Background(), model.ClientsListOptions{Limit: 0, Offset: -3})
	require.NoError(t, err)
}
