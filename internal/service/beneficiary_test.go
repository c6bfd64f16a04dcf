package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/apodaca-kapital/investor-portal/internal/domain/model"
	"github.com/apodaca-kapital/investor-portal/internal/mocks"
)

func newBeneficiaryService(t *testing.T) (*mocks.MockBeneficiaryRepository, *BeneficiaryService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	repo := mocks.NewMockBeneficiaryRepository(ctrl)
	return repo, NewBeneficiaryService(BeneficiaryServiceOptions{BeneficiaryRepo: repo})
}

func TestBeneficiaryService_Save_UpsertsAndClears(t *testing.T) {
	t.Parallel()
	repo, svc := newBeneficiaryService(t)

	rel := "hermana"
	req := &model.SaveBeneficiariesRequest{
		ClientID: testClientID,
		Slots: []model.BeneficiarySlotUpdate{
			{Slot: 1, Name: "Ana García", Relationship: &rel},
			{Slot: 2, Name: "  "}, // clears
		},
	}

	repo.EXPECT().
		UpsertSlot(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, b *model.Beneficiary) error {
			assert.Equal(t, 1, b.Slot)
			assert.Equal(t, "Ana García", b.Name)
			require.NotNil(t, b.Relationship)
			assert.Equal(t, "hermana", *b.Relationship)
			return nil
		})
	repo.EXPECT().ClearSlot(gomock.Any(), testClientID, 2).Return(nil)

	require.NoError(t, svc.Save(context.Background(), req))
}

func TestBeneficiaryService_Save_RejectsBadSlots(t *testing.T) {
	t.Parallel()
	_, svc := newBeneficiaryService(t)

	err := svc.Save(context.Background(), &model.SaveBeneficiariesRequest{
		ClientID: testClientID,
		Slots:    []model.BeneficiarySlotUpdate{{Slot: 4, Name: "X"}},
	})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	err = svc.Save(context.Background(), &model.SaveBeneficiariesRequest{
		ClientID: testClientID,
		Slots: []model.BeneficiarySlotUpdate{
			{Slot: 1, Name: "X"},
			{Slot: 1, Name: "Y"},
		},
	})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}
