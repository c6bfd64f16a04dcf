package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/apodaca-kapital/investor-portal/internal/data/pgxutil"
	"github.com/apodaca-kapital/investor-portal/internal/domain/model"
)

// BeneficiaryRepo provides slot-based beneficiary storage. Each client owns a
// fixed set of numbered slots; slots are upserted or cleared, never listed
// beyond the fixed range.
type BeneficiaryRepo struct {
	DB *sql.DB
}

// NewBeneficiaryRepo creates a BeneficiaryRepo.
func NewBeneficiaryRepo(db *sql.DB) *BeneficiaryRepo {
	return &BeneficiaryRepo{DB: db}
}

// UpsertSlot writes one beneficiary slot for a client.
func (r *BeneficiaryRepo) UpsertSlot(ctx context.Context, b *model.Beneficiary) error {
	if b == nil {
		return errors.New("beneficiary is required")
	}
	if b.Slot < 1 || b.Slot > model.BeneficiarySlots {
		return ErrSlotOutOfRange
	}
	if strings.TrimSpace(b.Name) == "" {
		return fmt.Errorf("%w: nombre is required", ErrInvalidInput)
	}

	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		_, err := conn.Exec(ctx, `
			INSERT INTO beneficiarios (cliente_id, slot, nombre, parentesco, telefono, email)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (cliente_id, slot) DO UPDATE SET
				nombre = EXCLUDED.nombre,
				parentesco = EXCLUDED.parentesco,
				telefono = EXCLUDED.telefono,
				email = EXCLUDED.email`,
			b.ClientID, b.Slot, strings.TrimSpace(b.Name), b.Relationship, b.Phone, b.Email,
		)
		return err
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return ErrClientNotFound
		}
		return fmt.Errorf("beneficiary upsert failed: %w", err)
	}
	return nil
}

// ClearSlot removes a beneficiary slot. Clearing an empty slot is a no-op.
func (r *BeneficiaryRepo) ClearSlot(ctx context.Context, clientID string, slot int) error {
	if slot < 1 || slot > model.BeneficiarySlots {
		return ErrSlotOutOfRange
	}
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		_, err := conn.Exec(ctx,
			`DELETE FROM beneficiarios WHERE cliente_id = $1 AND slot = $2`, clientID, slot)
		return err
	})
	if err != nil {
		return fmt.Errorf("beneficiary clear failed: %w", err)
	}
	return nil
}

// ListByClient retrieves a client's beneficiaries ordered by slot.
func (r *BeneficiaryRepo) ListByClient(ctx context.Context, clientID string) ([]*model.Beneficiary, error) {
	var rowsOut []model.Beneficiary
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT cliente_id, slot, nombre, parentesco, telefono, email
			FROM beneficiarios
			WHERE cliente_id = $1
			ORDER BY slot`, clientID)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Beneficiary])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list beneficiaries: %w", err)
	}

	res := make([]*model.Beneficiary, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}
