package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/apodaca-kapital/investor-portal/internal/core"
	"github.com/apodaca-kapital/investor-portal/internal/domain/model"
)

// BeneficiaryServiceOptions groups dependencies for BeneficiaryService.
type BeneficiaryServiceOptions struct {
	BeneficiaryRepo core.BeneficiaryRepository
	Logger          *slog.Logger
}

// BeneficiaryService manages a client's fixed beneficiary slots.
type BeneficiaryService struct {
	beneficiaries core.BeneficiaryRepository
	logger        *slog.Logger
}

// NewBeneficiaryService constructs a new BeneficiaryService.
func NewBeneficiaryService(opts BeneficiaryServiceOptions) *BeneficiaryService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &BeneficiaryService{
		beneficiaries: opts.BeneficiaryRepo,
		logger:        logger.With("component", "beneficiaries"),
	}
}

// Save applies slot updates for a client. A slot with an empty name is
// cleared; the others are written in place.
func (s *BeneficiaryService) Save(ctx context.Context, req *model.SaveBeneficiariesRequest) error {
	if err := req.Validate(); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidRequest, err)
	}

	for _, slot := range req.Slots {
		if slot.Clear() {
			if err := s.beneficiaries.ClearSlot(ctx, req.ClientID, slot.Slot); err != nil {
				return fmt.Errorf("clear slot %d: %w", slot.Slot, err)
			}
			continue
		}
		b := &model.Beneficiary{
			ClientID:     req.ClientID,
			Slot:         slot.Slot,
			Name:         slot.Name,
			Relationship: slot.Relationship,
			Phone:        slot.Phone,
			Email:        slot.Email,
		}
		if err := s.beneficiaries.UpsertSlot(ctx, b); err != nil {
			return fmt.Errorf("save slot %d: %w", slot.Slot, err)
		}
	}

	s.logger.InfoContext(ctx, "beneficiaries saved", "client_id", req.ClientID, "slots", len(req.Slots))
	return nil
}

// ListByClient returns a client's beneficiaries ordered by slot.
func (s *BeneficiaryService) ListByClient(ctx context.Context, clientID string) ([]*model.Beneficiary, error) {
	return s.beneficiaries.ListByClient(ctx, clientID)
}
