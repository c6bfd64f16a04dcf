package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/apodaca-kapital/investor-portal/internal/domain/model"
	"github.com/apodaca-kapital/investor-portal/internal/mocks"
)

func newMovementService(t *testing.T) (*mocks.MockMovementRepository, *MovementService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	repo := mocks.NewMockMovementRepository(ctrl)
	return repo, NewMovementService(MovementServiceOptions{MovementRepo: repo})
}

func expectBulkInsert(repo *mocks.MockMovementRepository, capture *[]*model.Movement) {
	repo.EXPECT().
		BulkInsert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, movs []*model.Movement) (int, error) {
			*capture = movs
			return len(movs), nil
		})
}

func TestMovementService_ImportCSV_CommaDelimited(t *testing.T) {
	t.Parallel()
	repo, svc := newMovementService(t)

	csv := "fecha,tipo,monto,nota\n" +
		"2025-03-01,Aportación,10000,transferencia\n" +
		"2025-03-15,Retiro,2500.50,\n"

	var got []*model.Movement
	expectBulkInsert(repo, &got)

	n, err := svc.ImportCSV(context.Background(), testClientID, strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.Len(t, got, 2)

	assert.Equal(t, testClientID, got[0].ClientID)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), got[0].Date)
	assert.Equal(t, "Aportación", got[0].Kind)
	assert.InDelta(t, 10000, got[0].Amount, 0.001)
	require.NotNil(t, got[0].Note)
	assert.Equal(t, "transferencia", *got[0].Note)

	assert.Equal(t, "Retiro", got[1].Kind)
	assert.InDelta(t, 2500.50, got[1].Amount, 0.001)
	assert.Nil(t, got[1].Note)
}

func TestMovementService_ImportCSV_SemicolonDelimited(t *testing.T) {
	t.Parallel()
	repo, svc := newMovementService(t)

	csv := "fecha;tipo;monto\n2025-04-01;Aportación;1000\n"

	var got []*model.Movement
	expectBulkInsert(repo, &got)

	_, err := svc.ImportCSV(context.Background(), testClientID, strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.InDelta(t, 1000, got[0].Amount, 0.001)
}

func TestMovementService_ImportCSV_TabDelimited(t *testing.T) {
	t.Parallel()
	repo, svc := newMovementService(t)

	csv := "fecha\ttipo\tmonto\n2025-04-02\tRetiro\t500\n"

	var got []*model.Movement
	expectBulkInsert(repo, &got)

	_, err := svc.ImportCSV(context.Background(), testClientID, strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Retiro", got[0].Kind)
}

func TestMovementService_ImportCSV_HeaderAliases(t *testing.T) {
	t.Parallel()
	repo, svc := newMovementService(t)

	csv := "Date,Type,Importe,Concepto\n2025-05-01,Aportación,750,depósito inicial\n"

	var got []*model.Movement
	expectBulkInsert(repo, &got)

	_, err := svc.ImportCSV(context.Background(), testClientID, strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.InDelta(t, 750, got[0].Amount, 0.001)
	require.NotNil(t, got[0].Note)
	assert.Equal(t, "depósito inicial", *got[0].Note)
}

func TestMovementService_ImportCSV_QuotedFieldsAndCurrency(t *testing.T) {
	t.Parallel()
	repo, svc := newMovementService(t)

	csv := "fecha,tipo,monto,nota\n" +
		"2025-06-01,Aportación,\"$1,250,000.75\",\"nota, con coma\"\n"

	var got []*model.Movement
	expectBulkInsert(repo, &got)

	_, err := svc.ImportCSV(context.Background(), testClientID, strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.InDelta(t, 1250000.75, got[0].Amount, 0.001)
	assert.Equal(t, "nota, con coma", *got[0].Note)
}

func TestMovementService_ImportCSV_MissingKindDefaults(t *testing.T) {
	t.Parallel()
	repo, svc := newMovementService(t)

	csv := "fecha,monto\n2025-06-10,300\n"

	var got []*model.Movement
	expectBulkInsert(repo, &got)

	_, err := svc.ImportCSV(context.Background(), testClientID, strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, model.DefaultMovementKind, got[0].Kind)
}

func TestMovementService_ImportCSV_RowWithoutDateAborts(t *testing.T) {
	t.Parallel()
	_, svc := newMovementService(t)

	csv := "fecha,tipo,monto\n" +
		"2025-06-01,Aportación,100\n" +
		",Retiro,50\n"

	_, err := svc.ImportCSV(context.Background(), testClientID, strings.NewReader(csv))
	require.ErrorIs(t, err, ErrInvalidRequest)
	assert.Contains(t, err.Error(), "row 3")
}

func TestMovementService_ImportCSV_SkipsBlankLines(t *testing.T) {
	t.Parallel()
	repo, svc := newMovementService(t)

	csv := "fecha,monto\n2025-06-01,100\n,,\n\n"

	var got []*model.Movement
	expectBulkInsert(repo, &got)

	_, err := svc.ImportCSV(context.Background(), testClientID, strings.NewReader(csv))
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestMovementService_ImportCSV_Empty(t *testing.T) {
	t.Parallel()
	_, svc := newMovementService(t)

	_, err := svc.ImportCSV(context.Background(), testClientID, strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyCSV)

	_, err = svc.ImportCSV(context.Background(), testClientID, strings.NewReader("fecha,monto\n"))
	assert.ErrorIs(t, err, ErrEmptyCSV)
}

func TestMovementService_ImportCSV_RequiresClient(t *testing.T) {
	t.Parallel()
	_, svc := newMovementService(t)

	_, err := svc.ImportCSV(context.Background(), " ", strings.NewReader("fecha,monto\n2025-01-01,1\n"))
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestMovementService_ImportCSV_AlternateDateFormats(t *testing.T) {
	t.Parallel()
	repo, svc := newMovementService(t)

	csv := "fecha,monto\n15/03/2025,100\n"

	var got []*model.Movement
	expectBulkInsert(repo, &got)

	_, err := svc.ImportCSV(context.Background(), testClientID, strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), got[0].Date)
}

func TestMovementService_Create_Validation(t *testing.T) {
	t.Parallel()
	_, svc := newMovementService(t)

	_, err := svc.Create(context.Background(), &model.CreateMovementRequest{
		ClientID: testClientID,
		Date:     "not-a-date",
		Kind:     "Aportación",
	})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}
