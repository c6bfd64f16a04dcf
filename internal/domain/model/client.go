//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxClientNameLen = 255
	clabeLen         = 18
)

// OnboardingStatus tracks a client's onboarding progress in the backoffice.
type OnboardingStatus string

const (
	OnboardingPending   OnboardingStatus = "pendiente"
	OnboardingInReview  OnboardingStatus = "en_revision"
	OnboardingValidated OnboardingStatus = "validado"
)

// Valid reports whether the onboarding status is supported.
func (s OnboardingStatus) Valid() bool {
	switch s {
	case OnboardingPending, OnboardingInReview, OnboardingValidated:
		return true
	default:
		return false
	}
}

// ParseOnboardingStatus normalizes a status string and reports whether it is supported.
func ParseOnboardingStatus(value string) (OnboardingStatus, bool) {
	st := OnboardingStatus(strings.ToLower(strings.TrimSpace(value)))
	if st.Valid() {
		return st, true
	}
	return "", false
}

// Client represents an investor record.
type Client struct {
	ID                  string           `json:"id"                             db:"id"`
	Name                string           `json:"nombre"                         db:"nombre"`
	Email               *string          `json:"email,omitempty"                db:"email"`
	Phone               *string          `json:"telefono,omitempty"             db:"telefono"`
	Clabe               *string          `json:"clabe,omitempty"                db:"clabe"`
	OnboardingStatus    OnboardingStatus `json:"onboarding_status"              db:"onboarding_status"`
	OnboardingNotes     *string          `json:"onboarding_notas,omitempty"     db:"onboarding_notas"`
	OnboardingUpdatedAt *time.Time       `json:"onboarding_updated_at,omitempty" db:"onboarding_updated_at"`
	ValidatedAt         *time.Time       `json:"validated_at,omitempty"         db:"validated_at"`
	CreatedAt           time.Time        `json:"created_at"                     db:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"                     db:"updated_at"`
}

// ClientsListOptions controls paging and filtering for listing clients.
// Q matches name or email via ILIKE substring.
type ClientsListOptions struct {
	Limit  int
	Offset int
	Q      *string
	Status *OnboardingStatus
}

// CreateClientRequest represents parameters to create a Client.
type CreateClientRequest struct {
	Name  string  `json:"nombre"`
	Email *string `json:"email,omitempty"`
	Phone *string `json:"telefono,omitempty"`
	Clabe *string `json:"clabe,omitempty"`
}

// UpdateClientRequest represents parameters to update a Client.
type UpdateClientRequest struct {
	Name  *string `json:"nombre,omitempty"`
	Email *string `json:"email,omitempty"`
	Phone *string `json:"telefono,omitempty"`
	Clabe *string `json:"clabe,omitempty"`
}

// SetOnboardingRequest updates a client's onboarding state.
type SetOnboardingRequest struct {
	Status OnboardingStatus `json:"status"`
	Notes  *string          `json:"onboarding_notas,omitempty"`
}

// Validate validates CreateClientRequest.
func (r *CreateClientRequest) Validate() error {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return errors.New("nombre is required and cannot be empty")
	}
	if utf8.RuneCountInString(name) > maxClientNameLen {
		return errors.New("nombre exceeds maximum length")
	}
	if r.Clabe != nil {
		if c := strings.TrimSpace(*r.Clabe); c != "" && len(c) != clabeLen {
			return errors.New("clabe must be 18 digits")
		}
	}
	return nil
}

// Validate validates SetOnboardingRequest.
func (r *SetOnboardingRequest) Validate() error {
	if !r.Status.Valid() {
		return errors.New("status must be one of pendiente, en_revision, validado")
	}
	return nil
}
