package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/apodaca-kapital/investor-portal/internal/core"
	"github.com/apodaca-kapital/investor-portal/internal/domain/model"
)

// DocumentServiceOptions groups dependencies for DocumentService.
type DocumentServiceOptions struct {
	DocumentRepo core.DocumentRepository
	Logger       *slog.Logger
}

// DocumentService manages registered document links.
type DocumentService struct {
	documents core.DocumentRepository
	logger    *slog.Logger
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(opts DocumentServiceOptions) *DocumentService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &DocumentService{documents: opts.DocumentRepo, logger: logger.With("component", "documents")}
}

// Create registers a document link for a client.
func (s *DocumentService) Create(ctx context.Context, req *model.CreateDocumentRequest) (*model.Document, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRequest, err)
	}
	u, err := url.Parse(req.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, fmt.Errorf("%w: url must be http(s)", ErrInvalidRequest)
	}

	doc, err := s.documents.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}
	s.logger.InfoContext(ctx, "document registered", "client_id", req.ClientID, "tipo", req.Kind)
	return doc, nil
}

// ListByClient returns a client's documents, newest first.
func (s *DocumentService) ListByClient(ctx context.Context, clientID string) ([]*model.Document, error) {
	return s.documents.ListByClient(ctx, clientID)
}
