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

	"github.com/apodaca-kapital/investor-portal/internal/data/database"
	"github.com/apodaca-kapital/investor-portal/internal/data/pgxutil"
	"github.com/apodaca-kapital/investor-portal/internal/domain/model"
)

const movementColumnList = `id, cliente_id, fecha, tipo, monto, nota, created_at`

// bulkInsertChunkSize bounds the parameter count of one multi-row INSERT.
const bulkInsertChunkSize = 500

// MovementRepo provides database operations for movement ledger entries.
type MovementRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewMovementRepo creates a MovementRepo with the real clock.
func NewMovementRepo(db *sql.DB) *MovementRepo {
	return &MovementRepo{DB: db, timeProvider: RealTimeProvider{}}
}

// NewMovementRepoWithTimeProvider creates a MovementRepo with a custom clock (tests).
func NewMovementRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *MovementRepo {
	return &MovementRepo{DB: db, timeProvider: tp}
}

// Create records one movement.
func (r *MovementRepo) Create(ctx context.Context, req *model.CreateMovementRequest) (*model.Movement, error) {
	if req == nil {
		return nil, errors.New("create movement request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}
	date, err := req.ParsedDate()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	var out model.Movement
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO movimientos (cliente_id, fecha, tipo, monto, nota, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING `+movementColumnList,
			req.ClientID, date, strings.TrimSpace(req.Kind), req.Amount, req.Note,
			r.timeProvider.Now(),
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Movement])
		return err
	}); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("movement insert failed: %w", err)
	}
	return &out, nil
}

// BulkInsert inserts pre-validated movements in one transaction, chunked to
// keep statements bounded. Returns the count written.
func (r *MovementRepo) BulkInsert(ctx context.Context, movements []*model.Movement) (int, error) {
	if len(movements) == 0 {
		return 0, nil
	}

	now := r.timeProvider.Now()
	inserted := 0
	err := pgxutil.WithPgxTx(ctx, r.DB, pgxutil.TxConfig{Fn: func(tx pgx.Tx) error {
		for start := 0; start < len(movements); start += bulkInsertChunkSize {
			end := min(start+bulkInsertChunkSize, len(movements))
			query, args := buildMovementInsert(movements[start:end], now)
			ct, err := tx.Exec(ctx, query, args...)
			if err != nil {
				return err
			}
			inserted += int(ct.RowsAffected())
		}
		return nil
	}})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return 0, ErrClientNotFound
		}
		return 0, fmt.Errorf("movement bulk insert failed: %w", err)
	}
	return inserted, nil
}

// List retrieves movements for a client, newest first.
func (r *MovementRepo) List(ctx context.Context, opts model.MovementsListOptions) ([]*model.Movement, error) {
	if strings.TrimSpace(opts.ClientID) == "" {
		return nil, fmt.Errorf("%w: cliente_id is required", ErrInvalidInput)
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = 100
	}
	offset := max(opts.Offset, 0)

	listOpts := []database.ListOption{
		database.WithColumns(strings.Fields("id cliente_id fecha tipo monto nota created_at")...),
		database.WithConditions(database.WhereCond("cliente_id", database.Equal, opts.ClientID)),
		database.WithOrderBy("fecha", true),
		database.WithLimit(limit),
		database.WithOffset(offset),
	}
	if opts.Kind != nil && strings.TrimSpace(*opts.Kind) != "" {
		listOpts = append(listOpts, database.WithConditions(
			database.WhereCond("tipo", database.Equal, strings.TrimSpace(*opts.Kind)),
		))
	}
	if opts.From != nil {
		listOpts = append(listOpts, database.WithConditions(
			database.WhereCond("fecha", database.GreaterOrEqual, *opts.From),
		))
	}
	if opts.To != nil {
		listOpts = append(listOpts, database.WithConditions(
			database.WhereCond("fecha", database.LessOrEqual, *opts.To),
		))
	}

	query, args, err := database.BuildListQuery("movimientos", listOpts...)
	if err != nil {
		return nil, fmt.Errorf("build movements list query: %w", err)
	}

	var rowsOut []model.Movement
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Movement])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list movements: %w", err)
	}

	res := make([]*model.Movement, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

func buildMovementInsert(chunk []*model.Movement, now any) (string, []any) {
	var sb strings.Builder
	sb.WriteString("INSERT INTO movimientos (cliente_id, fecha, tipo, monto, nota, created_at) VALUES ")
	args := make([]any, 0, len(chunk)*6)
	for i, m := range chunk {
		if i > 0 {
			sb.WriteString(", ")
		}
		base := i * 6
		fmt.Fprintf(&sb, "($%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6)
		kind := m.Kind
		if kind == "" {
			kind = model.DefaultMovementKind
		}
		args = append(args, m.ClientID, m.Date, kind, m.Amount, m.Note, now)
	}
	return sb.String(), args
}
