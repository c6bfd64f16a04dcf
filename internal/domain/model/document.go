package model

import (
	"errors"
	"strings"
	"time"
)

// Document is a registered link to a client-visible document (statements,
// contracts, weekly letters). The portal stores links, not file contents.
type Document struct {
	ID        string    `json:"id"         db:"id"`
	ClientID  string    `json:"cliente_id" db:"cliente_id"`
	Kind      string    `json:"tipo"       db:"tipo"`
	Title     string    `json:"titulo"     db:"titulo"`
	URL       string    `json:"url"        db:"url"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CreateDocumentRequest represents parameters to register a document link.
type CreateDocumentRequest struct {
	ClientID string `json:"cliente_id"`
	Kind     string `json:"tipo"`
	Title    string `json:"titulo"`
	URL      string `json:"url"`
}

// Validate validates CreateDocumentRequest.
func (r *CreateDocumentRequest) Validate() error {
	if strings.TrimSpace(r.ClientID) == "" {
		return errors.New("cliente_id is required")
	}
	if strings.TrimSpace(r.Kind) == "" {
		return errors.New("tipo is required")
	}
	if strings.TrimSpace(r.Title) == "" {
		return errors.New("titulo is required")
	}
	if strings.TrimSpace(r.URL) == "" {
		return errors.New("url is required")
	}
	return nil
}
