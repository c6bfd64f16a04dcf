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

func newDocumentService(t *testing.T) (*mocks.MockDocumentRepository, *DocumentService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	repo := mocks.NewMockDocumentRepository(ctrl)
	return repo, NewDocumentService(DocumentServiceOptions{DocumentRepo: repo})
}

func TestDocumentService_Create(t *testing.T) {
	t.Parallel()
	repo, svc := newDocumentService(t)

	req := &model.CreateDocumentRequest{
		ClientID: testClientID,
		Kind:     "estado_cuenta",
		Title:    "Estado de cuenta marzo",
		URL:      "https://files.example.com/estados/2025-03.pdf",
	}
	repo.EXPECT().Create(gomock.Any(), req).Return(&model.Document{ID: "doc-1"}, nil)

	doc, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "doc-1", doc.ID)
}

func TestDocumentService_Create_RejectsNonHTTPURL(t *testing.T) {
	t.Parallel()
	_, svc := newDocumentService(t)

	_, err := svc.Create(context.Background(), &model.CreateDocumentRequest{
		ClientID: testClientID,
		Kind:     "contrato",
		Title:    "Contrato",
		URL:      "ftp://files.example.com/contrato.pdf",
	})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}
