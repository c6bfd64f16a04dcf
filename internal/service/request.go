package service

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"log/slog"
	"time"

	"github.com/apodaca-kapital/investor-portal/internal/core"
	"github.com/apodaca-kapital/investor-portal/internal/domain/model"
)

// RequestServiceOptions groups dependencies for RequestService.
type RequestServiceOptions struct {
	RequestRepo core.FundsRequestRepository
	Notifier    RequestNotifier
	Logger      *slog.Logger
}

// RequestService handles client funds requests: folio assignment on intake
// and backoffice status updates.
type RequestService struct {
	requests core.FundsRequestRepository
	notifier RequestNotifier
	logger   *slog.Logger
}

// NewRequestService constructs a new RequestService.
func NewRequestService(opts RequestServiceOptions) *RequestService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &RequestService{
		requests: opts.RequestRepo,
		notifier: opts.Notifier,
		logger:   logger.With("component", "requests"),
	}
}

// Create files a funds request with a fresh folio and notifies the sink when
// one is configured. Notification failures are logged, never surfaced: the
// request is already on file.
func (s *RequestService) Create(ctx context.Context, req *model.CreateRequestRequest) (*model.FundsRequest, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRequest, err)
	}

	fr := &model.FundsRequest{
		ClientID:   req.ClientID,
		Kind:       req.Kind,
		Amount:     req.Amount,
		Status:     model.RequestReceived,
		Folio:      NewFolio(req.Kind, time.Now()),
		Reference:  req.Reference,
		ClientNote: req.ClientNote,
	}

	saved, err := s.requests.Create(ctx, fr)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	s.logger.InfoContext(ctx, "funds request filed",
		"folio", saved.Folio, "client_id", saved.ClientID, "tipo", saved.Kind)

	if s.notifier != nil {
		payload := NewRequestPayload{
			Folio:    saved.Folio,
			ClientID: saved.ClientID,
			Kind:     string(saved.Kind),
			Amount:   saved.Amount,
			Status:   string(saved.Status),
		}
		if notifyErr := s.notifier.NotifyNewRequest(ctx, payload); notifyErr != nil {
			s.logger.WarnContext(ctx, "request notification failed",
				"folio", saved.Folio, "err", notifyErr)
		}
	}
	return saved, nil
}

// Update applies a backoffice change to a funds request.
func (s *RequestService) Update(ctx context.Context, id string, req model.UpdateRequestRequest) (*model.FundsRequest, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRequest, err)
	}
	fr, err := s.requests.Update(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("update request: %w", err)
	}
	return fr, nil
}

// GetByID retrieves a funds request by ID.
func (s *RequestService) GetByID(ctx context.Context, id string) (*model.FundsRequest, error) {
	return s.requests.GetByID(ctx, id)
}

// ListByClient returns a client's funds requests, newest first.
func (s *RequestService) ListByClient(ctx context.Context, clientID string, limit, offset int) ([]*model.FundsRequest, error) {
	return s.requests.ListByClient(ctx, clientID, normalizePage(limit), max(offset, 0))
}

// List returns all funds requests for the backoffice, newest first.
func (s *RequestService) List(ctx context.Context, limit, offset int) ([]*model.FundsRequest, error) {
	return s.requests.List(ctx, normalizePage(limit), max(offset, 0))
}

// NewFolio builds a folio like APO-20250601-4F2C: kind prefix, date, and a
// random hex suffix.
func NewFolio(kind model.RequestKind, now time.Time) string {
	var buf [2]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// fall back to the clock; folio uniqueness is also enforced in storage
		binary.BigEndian.PutUint16(buf[:], uint16(now.UnixNano()))
	}
	return fmt.Sprintf("%s-%s-%04X", kind.FolioPrefix(), now.Format("20060102"), binary.BigEndian.Uint16(buf[:]))
}

func normalizePage(limit int) int {
	if limit <= 0 {
		return 50
	}
	return limit
}
