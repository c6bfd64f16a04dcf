package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/apodaca-kapital/investor-portal/internal/domain/model"
	"github.com/apodaca-kapital/investor-portal/internal/mocks"
)

func newAccountService(t *testing.T) (*mocks.MockAccountRepository, *AccountService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	repo := mocks.NewMockAccountRepository(ctrl)
	return repo, NewAccountService(AccountServiceOptions{AccountRepo: repo})
}

func TestAccountService_Upsert_ComputesProjection(t *testing.T) {
	t.Parallel()
	repo, svc := newAccountService(t)

	start := "2025-01-15"
	req := &model.UpsertAccountRequest{
		ClientID:    testClientID,
		Balance:     100_000,
		MTD:         1.2,
		YTD:         8.5,
		PlanMonths:  12,
		MonthlyRate: 2, // percent form
		StartDate:   &start,
	}

	repo.EXPECT().
		Upsert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, acct *model.Account) (*model.Account, error) {
			require.NotNil(t, acct.ProjectedGain)
			require.NotNil(t, acct.ProjectedTotal)
			require.NotNil(t, acct.EndDate)
			assert.InDelta(t, 24_000, *acct.ProjectedGain, 0.001)
			assert.InDelta(t, 124_000, *acct.ProjectedTotal, 0.001)
			assert.Equal(t, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), *acct.EndDate)
			assert.InDelta(t, 0.02, *acct.MonthlyRate, 1e-9)
			return acct, nil
		})

	_, err := svc.Upsert(context.Background(), req)
	require.NoError(t, err)
}

func TestAccountService_Upsert_FractionRateAccepted(t *testing.T) {
	t.Parallel()
	repo, svc := newAccountService(t)

	start := "2025-01-01"
	req := &model.UpsertAccountRequest{
		ClientID:    testClientID,
		Balance:     50_000,
		PlanMonths:  6,
		MonthlyRate: 0.015,
		StartDate:   &start,
	}

	repo.EXPECT().
		Upsert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, acct *model.Account) (*model.Account, error) {
			assert.InDelta(t, 0.015, *acct.MonthlyRate, 1e-9)
			assert.InDelta(t, 50_000*0.015*6, *acct.ProjectedGain, 0.001)
			return acct, nil
		})

	_, err := svc.Upsert(context.Background(), req)
	require.NoError(t, err)
}

func TestAccountService_Upsert_NoPlanClearsProjection(t *testing.T) {
	t.Parallel()
	repo, svc := newAccountService(t)

	repo.EXPECT().
		Upsert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, acct *model.Account) (*model.Account, error) {
			assert.Nil(t, acct.PlanMonths)
			assert.Nil(t, acct.ProjectedGain)
			assert.Nil(t, acct.ProjectedTotal)
			assert.Nil(t, acct.EndDate)
			return acct, nil
		})

	_, err := svc.Upsert(context.Background(), &model.UpsertAccountRequest{
		ClientID: testClientID,
		Balance:  12_345.67,
	})
	require.NoError(t, err)
}

func TestAccountService_Upsert_Validation(t *testing.T) {
	t.Parallel()
	_, svc := newAccountService(t)

	_, err := svc.Upsert(context.Background(), &model.UpsertAccountRequest{})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	bad := "15/01/2025"
	_, err = svc.Upsert(context.Background(), &model.UpsertAccountRequest{
		ClientID:  testClientID,
		StartDate: &bad,
	})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}
