package model

import "time"

// Profile links a credential-store user to a client record.
//
// DisplayRole mirrors the legacy profiles.role column. It is a display hint
// only: authorization always re-derives Role from the admin allow-list, never
// from this field.
type Profile struct {
	UserID      string    `json:"id"          db:"id"`
	Email       string    `json:"email"       db:"email"`
	ClientID    string    `json:"cliente_id"  db:"cliente_id"`
	Name        string    `json:"nombre"      db:"nombre"`
	DisplayRole string    `json:"role"        db:"role"`
	CreatedAt   time.Time `json:"created_at"  db:"created_at"`
}
