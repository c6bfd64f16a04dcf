package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/apodaca-kapital/investor-portal/internal/data/pgxutil"
	"github.com/apodaca-kapital/investor-portal/internal/domain/model"
)

// ErrAccountNotFound is returned when a client has no account row yet.
var ErrAccountNotFound = fmt.Errorf("%w: account", ErrNotFound)

const accountColumnList = `cliente_id, moneda, saldo, mtd, ytd, meses_inversion, utilidad_mensual,
	fecha_inicio, fecha_fin, proyeccion_ganancia, proyeccion_total, updated_at`

// AccountRepo provides database operations for the per-client account record.
type AccountRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewAccountRepo creates an AccountRepo with the real clock.
func NewAccountRepo(db *sql.DB) *AccountRepo {
	return &AccountRepo{DB: db, timeProvider: RealTimeProvider{}}
}

// NewAccountRepoWithTimeProvider creates an AccountRepo with a custom clock (tests).
func NewAccountRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *AccountRepo {
	return &AccountRepo{DB: db, timeProvider: tp}
}

// Upsert writes the account row for a client, creating it when absent. The
// cliente_id column is the primary key so each client has one account.
func (r *AccountRepo) Upsert(ctx context.Context, acct *model.Account) (*model.Account, error) {
	if acct == nil || acct.ClientID == "" {
		return nil, errors.New("account with cliente_id is required")
	}
	currency := acct.Currency
	if currency == "" {
		currency = "MXN"
	}

	var out model.Account
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO cuentas (
				cliente_id, moneda, saldo, mtd, ytd, meses_inversion, utilidad_mensual,
				fecha_inicio, fecha_fin, proyeccion_ganancia, proyeccion_total, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			ON CONFLICT (cliente_id) DO UPDATE SET
				moneda = EXCLUDED.moneda,
				saldo = EXCLUDED.saldo,
				mtd = EXCLUDED.mtd,
				ytd = EXCLUDED.ytd,
				meses_inversion = EXCLUDED.meses_inversion,
				utilidad_mensual = EXCLUDED.utilidad_mensual,
				fecha_inicio = EXCLUDED.fecha_inicio,
				fecha_fin = EXCLUDED.fecha_fin,
				proyeccion_ganancia = EXCLUDED.proyeccion_ganancia,
				proyeccion_total = EXCLUDED.proyeccion_total,
				updated_at = EXCLUDED.updated_at
			RETURNING `+accountColumnList,
			acct.ClientID, currency, acct.Balance, acct.MTD, acct.YTD,
			acct.PlanMonths, acct.MonthlyRate, acct.StartDate, acct.EndDate,
			acct.ProjectedGain, acct.ProjectedTotal, r.timeProvider.Now(),
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Account])
		return err
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("account upsert failed: %w", err)
	}
	return &out, nil
}

// GetByClientID retrieves a client's account row.
func (r *AccountRepo) GetByClientID(ctx context.Context, clientID string) (*model.Account, error) {
	var out model.Account
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			`SELECT `+accountColumnList+` FROM cuentas WHERE cliente_id = $1`, clientID)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Account])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &out, nil
}
