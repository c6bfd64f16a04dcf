package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateClientRequestValidate(t *testing.T) {
	clabe := "123456789012345678"
	shortClabe := "12345"

	tests := []struct {
		name    string
		req     CreateClientRequest
		wantErr bool
	}{
		{"valid", CreateClientRequest{Name: "Ana Torres", Clabe: &clabe}, false},
		{"empty name", CreateClientRequest{Name: "   "}, true},
		{"bad clabe", CreateClientRequest{Name: "Ana", Clabe: &shortClabe}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseOnboardingStatus(t *testing.T) {
	st, ok := ParseOnboardingStatus("  Validado ")
	require.True(t, ok)
	assert.Equal(t, OnboardingValidated, st)

	_, ok = ParseOnboardingStatus("aprobado")
	assert.False(t, ok)
}

func TestUpsertAccountRequestNormalizedRate(t *testing.T) {
	// "2" means 2% monthly, "0.02" already is a fraction.
	assert.InDelta(t, 0.02, (&UpsertAccountRequest{MonthlyRate: 2}).NormalizedRate(), 1e-9)
	assert.InDelta(t, 0.02, (&UpsertAccountRequest{MonthlyRate: 0.02}).NormalizedRate(), 1e-9)
	assert.Zero(t, (&UpsertAccountRequest{MonthlyRate: 0}).NormalizedRate())
}

func TestProject(t *testing.T) {
	start := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	p := Project(100_000, 12, 0.02, start)

	assert.InDelta(t, 24_000, p.Gain, 1e-9)
	assert.InDelta(t, 124_000, p.Total, 1e-9)
	assert.Equal(t, time.Date(2027, 1, 15, 0, 0, 0, 0, time.UTC), p.EndDate)
}

func TestCreateMovementRequestValidate(t *testing.T) {
	req := CreateMovementRequest{ClientID: "c1", Date: "2026-01-03", Kind: "Aportación", Amount: 50000}
	require.NoError(t, req.Validate())

	req.Date = "03/01/2026"
	assert.Error(t, req.Validate())

	req.Date = "2026-01-03"
	req.Kind = ""
	assert.Error(t, req.Validate())
}

func TestSaveBeneficiariesRequestValidate(t *testing.T) {
	req := SaveBeneficiariesRequest{
		ClientID: "c1",
		Slots: []BeneficiarySlotUpdate{
			{Slot: 1, Name: "Luis"},
			{Slot: 2, Name: ""},
		},
	}
	require.NoError(t, req.Validate())
	assert.False(t, req.Slots[0].Clear())
	assert.True(t, req.Slots[1].Clear())

	req.Slots = append(req.Slots, BeneficiarySlotUpdate{Slot: 4, Name: "X"})
	assert.Error(t, req.Validate())

	req.Slots = []BeneficiarySlotUpdate{{Slot: 1, Name: "A"}, {Slot: 1, Name: "B"}}
	assert.Error(t, req.Validate())
}

func TestCreateRequestRequestValidate(t *testing.T) {
	req := CreateRequestRequest{ClientID: "c1", Kind: RequestDeposit, Amount: 1000}
	require.NoError(t, req.Validate())

	// Withdrawals must confirm the registered CLABE.
	req.Kind = RequestWithdrawal
	assert.Error(t, req.Validate())
	req.ClabeConfirmed = true
	require.NoError(t, req.Validate())

	req.Amount = 0
	assert.Error(t, req.Validate())
}

func TestRequestKindFolioPrefix(t *testing.T) {
	assert.Equal(t, "APO", RequestDeposit.FolioPrefix())
	assert.Equal(t, "RET", RequestWithdrawal.FolioPrefix())
}

func TestUpdateRequestRequestValidate(t *testing.T) {
	assert.Error(t, (&UpdateRequestRequest{}).Validate())

	bad := RequestStatus("lista")
	assert.Error(t, (&UpdateRequestRequest{Status: &bad}).Validate())

	good := RequestCompleted
	assert.NoError(t, (&UpdateRequestRequest{Status: &good}).Validate())
}
