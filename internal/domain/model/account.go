package model

import (
	"errors"
	"time"
)

// Account is a client's single investment account. Balance and the projection
// fields are maintained by the backoffice; MTD/YTD are display returns.
type Account struct {
	ClientID        string     `json:"cliente_id"                  db:"cliente_id"`
	Currency        string     `json:"moneda"                      db:"moneda"`
	Balance         float64    `json:"saldo"                       db:"saldo"`
	MTD             float64    `json:"mtd"                         db:"mtd"`
	YTD             float64    `json:"ytd"                         db:"ytd"`
	PlanMonths      *int       `json:"meses_inversion,omitempty"   db:"meses_inversion"`
	MonthlyRate     *float64   `json:"utilidad_mensual,omitempty"  db:"utilidad_mensual"`
	StartDate       *time.Time `json:"fecha_inicio,omitempty"      db:"fecha_inicio"`
	EndDate         *time.Time `json:"fecha_fin,omitempty"         db:"fecha_fin"`
	ProjectedGain   *float64   `json:"proyeccion_ganancia,omitempty" db:"proyeccion_ganancia"`
	ProjectedTotal  *float64   `json:"proyeccion_total,omitempty"  db:"proyeccion_total"`
	UpdatedAt       time.Time  `json:"updated_at"                  db:"updated_at"`
}

// UpsertAccountRequest carries the backoffice account update form.
// MonthlyRate accepts either a percentage ("2" => 2%/month) or a fraction
// ("0.02"); NormalizedRate resolves the ambiguity.
type UpsertAccountRequest struct {
	ClientID    string   `json:"cliente_id"`
	Balance     float64  `json:"saldo"`
	MTD         float64  `json:"mtd"`
	YTD         float64  `json:"ytd"`
	PlanMonths  int      `json:"meses_inversion,omitempty"`
	MonthlyRate float64  `json:"utilidad_mensual,omitempty"`
	StartDate   *string  `json:"fecha_inicio,omitempty"` // YYYY-MM-DD
}

// Validate validates UpsertAccountRequest.
func (r *UpsertAccountRequest) Validate() error {
	if r.ClientID == "" {
		return errors.New("cliente_id is required")
	}
	if r.PlanMonths < 0 {
		return errors.New("meses_inversion cannot be negative")
	}
	if r.MonthlyRate < 0 {
		return errors.New("utilidad_mensual cannot be negative")
	}
	if r.StartDate != nil {
		if _, err := time.Parse("2006-01-02", *r.StartDate); err != nil {
			return errors.New("fecha_inicio must be YYYY-MM-DD")
		}
	}
	return nil
}

// NormalizedRate returns the monthly rate as a fraction. Values above 1 are
// interpreted as percentages, matching the backoffice form convention.
func (r *UpsertAccountRequest) NormalizedRate() float64 {
	if r.MonthlyRate <= 0 {
		return 0
	}
	if r.MonthlyRate > 1 {
		return r.MonthlyRate / 100
	}
	return r.MonthlyRate
}

// Projection is the simple-interest plan projection stored with the account.
type Projection struct {
	Gain    float64
	Total   float64
	EndDate time.Time
}

// Project computes the plan projection for a balance: simple interest over
// the plan months at the monthly rate, ending months after start.
func Project(balance float64, months int, monthlyRate float64, start time.Time) Projection {
	gain := balance * monthlyRate * float64(months)
	return Projection{
		Gain:    gain,
		Total:   balance + gain,
		EndDate: start.AddDate(0, months, 0),
	}
}
