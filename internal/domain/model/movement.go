package model

import (
	"errors"
	"strings"
	"time"
)

// Movement is a ledger entry on a client's account.
type Movement struct {
	ID        string    `json:"id"             db:"id"`
	ClientID  string    `json:"cliente_id"     db:"cliente_id"`
	Date      time.Time `json:"fecha"          db:"fecha"`
	Kind      string    `json:"tipo"           db:"tipo"`
	Amount    float64   `json:"monto"          db:"monto"`
	Note      *string   `json:"nota,omitempty" db:"nota"`
	CreatedAt time.Time `json:"created_at"     db:"created_at"`
}

// DefaultMovementKind is assumed when a CSV row omits the tipo column.
const DefaultMovementKind = "Aportación"

// MovementsListOptions controls paging and filtering for listing movements.
type MovementsListOptions struct {
	ClientID string
	Limit    int
	Offset   int
	Kind     *string
	From     *time.Time
	To       *time.Time
}

// CreateMovementRequest represents parameters to record a movement.
type CreateMovementRequest struct {
	ClientID string  `json:"cliente_id"`
	Date     string  `json:"fecha"` // YYYY-MM-DD
	Kind     string  `json:"tipo"`
	Amount   float64 `json:"monto"`
	Note     *string `json:"nota,omitempty"`
}

// Validate validates CreateMovementRequest.
func (r *CreateMovementRequest) Validate() error {
	if strings.TrimSpace(r.ClientID) == "" {
		return errors.New("cliente_id is required")
	}
	if strings.TrimSpace(r.Date) == "" {
		return errors.New("fecha is required (YYYY-MM-DD)")
	}
	if _, err := r.ParsedDate(); err != nil {
		return errors.New("fecha must be YYYY-MM-DD")
	}
	if strings.TrimSpace(r.Kind) == "" {
		return errors.New("tipo is required")
	}
	return nil
}

// ParsedDate parses the request date.
func (r *CreateMovementRequest) ParsedDate() (time.Time, error) {
	return time.Parse("2006-01-02", strings.TrimSpace(r.Date))
}
