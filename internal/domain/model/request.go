package model

import (
	"errors"
	"strings"
	"time"
)

// RequestKind is the type of a client funds request.
type RequestKind string

const (
	RequestDeposit    RequestKind = "aportacion"
	RequestWithdrawal RequestKind = "retiro"
)

// Valid reports whether the request kind is supported.
func (k RequestKind) Valid() bool {
	return k == RequestDeposit || k == RequestWithdrawal
}

// FolioPrefix returns the folio prefix for the kind.
func (k RequestKind) FolioPrefix() string {
	if k == RequestWithdrawal {
		return "RET"
	}
	return "APO"
}

// RequestStatus tracks a funds request through the backoffice.
type RequestStatus string

const (
	RequestReceived   RequestStatus = "recibida"
	RequestInProcess  RequestStatus = "en_proceso"
	RequestCompleted  RequestStatus = "completada"
	RequestRejected   RequestStatus = "rechazada"
)

// Valid reports whether the request status is supported.
func (s RequestStatus) Valid() bool {
	switch s {
	case RequestReceived, RequestInProcess, RequestCompleted, RequestRejected:
		return true
	default:
		return false
	}
}

// FundsRequest is a client-submitted deposit or withdrawal request.
type FundsRequest struct {
	ID         string        `json:"id"                       db:"id"`
	ClientID   string        `json:"cliente_id"               db:"cliente_id"`
	Kind       RequestKind   `json:"tipo"                     db:"tipo"`
	Amount     float64       `json:"monto"                    db:"monto"`
	Status     RequestStatus `json:"status"                   db:"status"`
	Folio      string        `json:"folio"                    db:"folio"`
	Reference  *string       `json:"referencia,omitempty"     db:"referencia"`
	ClientNote *string       `json:"nota_cliente,omitempty"   db:"nota_cliente"`
	AdminNote  *string       `json:"nota,omitempty"           db:"nota"`
	ReceiptURL *string       `json:"comprobante_url,omitempty" db:"comprobante_url"`
	CreatedAt  time.Time     `json:"created_at"               db:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"               db:"updated_at"`
}

// CreateRequestRequest represents a client submitting a funds request.
// Withdrawals require ClabeConfirmed: funds only move to the registered CLABE.
type CreateRequestRequest struct {
	ClientID       string      `json:"cliente_id"`
	Kind           RequestKind `json:"tipo"`
	Amount         float64     `json:"monto"`
	Reference      *string     `json:"referencia,omitempty"`
	ClientNote     *string     `json:"nota_cliente,omitempty"`
	ClabeConfirmed bool        `json:"clabe_confirmada,omitempty"`
}

// Validate validates CreateRequestRequest.
func (r *CreateRequestRequest) Validate() error {
	if strings.TrimSpace(r.ClientID) == "" {
		return errors.New("cliente_id is required")
	}
	if !r.Kind.Valid() {
		return errors.New("tipo must be aportacion or retiro")
	}
	if r.Amount <= 0 {
		return errors.New("monto must be greater than zero")
	}
	if r.Kind == RequestWithdrawal && !r.ClabeConfirmed {
		return errors.New("withdrawal must confirm the registered CLABE")
	}
	return nil
}

// UpdateRequestRequest represents a backoffice update to a funds request.
type UpdateRequestRequest struct {
	Status     *RequestStatus `json:"status,omitempty"`
	AdminNote  *string        `json:"nota,omitempty"`
	Folio      *string        `json:"folio,omitempty"`
	ReceiptURL *string        `json:"comprobante_url,omitempty"`
}

// Validate validates UpdateRequestRequest.
func (r *UpdateRequestRequest) Validate() error {
	if r.Status != nil && !r.Status.Valid() {
		return errors.New("status must be one of recibida, en_proceso, completada, rechazada")
	}
	if r.Status == nil && r.AdminNote == nil && r.Folio == nil && r.ReceiptURL == nil {
		return errors.New("no fields to update")
	}
	return nil
}
