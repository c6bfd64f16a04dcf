package model

import (
	"errors"
	"strings"
)

const (
	// BeneficiarySlots is the fixed number of beneficiary slots per client.
	BeneficiarySlots = 3
)

// Beneficiary occupies one of a client's fixed beneficiary slots.
type Beneficiary struct {
	ClientID     string  `json:"cliente_id"            db:"cliente_id"`
	Slot         int     `json:"slot"                  db:"slot"`
	Name         string  `json:"nombre"                db:"nombre"`
	Relationship *string `json:"parentesco,omitempty"  db:"parentesco"`
	Phone        *string `json:"telefono,omitempty"    db:"telefono"`
	Email        *string `json:"email,omitempty"       db:"email"`
}

// BeneficiarySlotUpdate is one slot in a SaveBeneficiariesRequest. An empty
// name clears the slot.
type BeneficiarySlotUpdate struct {
	Slot         int     `json:"slot"`
	Name         string  `json:"nombre"`
	Relationship *string `json:"parentesco,omitempty"`
	Phone        *string `json:"telefono,omitempty"`
	Email        *string `json:"email,omitempty"`
}

// Clear reports whether this update empties the slot.
func (u BeneficiarySlotUpdate) Clear() bool {
	return strings.TrimSpace(u.Name) == ""
}

// SaveBeneficiariesRequest saves up to BeneficiarySlots slots for a client.
type SaveBeneficiariesRequest struct {
	ClientID string                  `json:"cliente_id"`
	Slots    []BeneficiarySlotUpdate `json:"slots"`
}

// Validate validates SaveBeneficiariesRequest.
func (r *SaveBeneficiariesRequest) Validate() error {
	if strings.TrimSpace(r.ClientID) == "" {
		return errors.New("cliente_id is required")
	}
	if len(r.Slots) == 0 {
		return errors.New("at least one slot is required")
	}
	seen := make(map[int]bool, len(r.Slots))
	for _, s := range r.Slots {
		if s.Slot < 1 || s.Slot > BeneficiarySlots {
			return errors.New("slot must be between 1 and 3")
		}
		if seen[s.Slot] {
			return errors.New("duplicate slot")
		}
		seen[s.Slot] = true
	}
	return nil
}
