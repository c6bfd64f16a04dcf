package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/apodaca-kapital/investor-portal/internal/data/pgxutil"
	"github.com/apodaca-kapital/investor-portal/internal/domain/model"
)

var (
	// ErrRequestNotFound is returned when a funds request does not exist.
	ErrRequestNotFound = fmt.Errorf("%w: funds request", ErrNotFound)
	// ErrFolioExists is returned on a duplicate folio.
	ErrFolioExists = fmt.Errorf("%w: folio", ErrDuplicate)
)

const requestColumnList = `id, cliente_id, tipo, monto, status, folio, referencia,
	nota_cliente, nota, comprobante_url, created_at, updated_at`

// RequestRepo provides database operations for client funds requests.
type RequestRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewRequestRepo creates a RequestRepo with the real clock.
func NewRequestRepo(db *sql.DB) *RequestRepo {
	return &RequestRepo{DB: db, timeProvider: RealTimeProvider{}}
}

// NewRequestRepoWithTimeProvider creates a RequestRepo with a custom clock (tests).
func NewRequestRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *RequestRepo {
	return &RequestRepo{DB: db, timeProvider: tp}
}

// Create inserts a funds request. The caller assigns the folio before calling.
func (r *RequestRepo) Create(ctx context.Context, fr *model.FundsRequest) (*model.FundsRequest, error) {
	if fr == nil {
		return nil, errors.New("funds request is required")
	}
	if fr.Folio == "" {
		return nil, fmt.Errorf("%w: folio is required", ErrInvalidInput)
	}
	status := fr.Status
	if status == "" {
		status = model.RequestReceived
	}

	now := r.timeProvider.Now()
	var out model.FundsRequest
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO solicitudes (
				cliente_id, tipo, monto, status, folio, referencia, nota_cliente, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
			RETURNING `+requestColumnList,
			fr.ClientID, fr.Kind, fr.Amount, status, fr.Folio, fr.Reference, fr.ClientNote, now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.FundsRequest])
		return err
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgerrcode.UniqueViolation:
				return nil, ErrFolioExists
			case pgerrcode.ForeignKeyViolation:
				return nil, ErrClientNotFound
			}
		}
		return nil, fmt.Errorf("funds request insert failed: %w", err)
	}
	return &out, nil
}

// Update applies a backoffice update to a funds request.
func (r *RequestRepo) Update(ctx context.Context, id string, req model.UpdateRequestRequest) (*model.FundsRequest, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	setParts := make([]string, 0, 5)
	args := make([]any, 0, 6)
	nextIdx := func() int { return len(args) + 1 }

	if req.Status != nil {
		setParts = append(setParts, fmt.Sprintf("status = $%d", nextIdx()))
		args = append(args, *req.Status)
	}
	if req.AdminNote != nil {
		setParts = append(setParts, fmt.Sprintf("nota = $%d", nextIdx()))
		args = append(args, *req.AdminNote)
	}
	if req.Folio != nil {
		setParts = append(setParts, fmt.Sprintf("folio = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.Folio))
	}
	if req.ReceiptURL != nil {
		setParts = append(setParts, fmt.Sprintf("comprobante_url = $%d", nextIdx()))
		args = append(args, *req.ReceiptURL)
	}
	setParts = append(setParts, fmt.Sprintf("updated_at = $%d", nextIdx()))
	args = append(args, r.timeProvider.Now())

	var out model.FundsRequest
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		args = append(args, id)
		query := "UPDATE solicitudes SET " + strings.Join(setParts, ", ") +
			" WHERE id = $" + strconv.Itoa(len(args)) +
			" RETURNING " + requestColumnList
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		var e error
		out, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.FundsRequest])
		return e
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRequestNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, ErrFolioExists
		}
		return nil, fmt.Errorf("funds request update failed: %w", err)
	}
	return &out, nil
}

// GetByID retrieves a funds request by ID.
func (r *RequestRepo) GetByID(ctx context.Context, id string) (*model.FundsRequest, error) {
	var out model.FundsRequest
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			`SELECT `+requestColumnList+` FROM solicitudes WHERE id = $1`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.FundsRequest])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to get funds request: %w", err)
	}
	return &out, nil
}

// ListByClient retrieves a client's funds requests, newest first.
func (r *RequestRepo) ListByClient(ctx context.Context, clientID string, limit, offset int) ([]*model.FundsRequest, error) {
	return r.list(ctx,
		`SELECT `+requestColumnList+`
		FROM solicitudes
		WHERE cliente_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`,
		clientID, normalizeLimit(limit), max(offset, 0))
}

// List retrieves all funds requests, newest first. Backoffice view.
func (r *RequestRepo) List(ctx context.Context, limit, offset int) ([]*model.FundsRequest, error) {
	return r.list(ctx,
		`SELECT `+requestColumnList+`
		FROM solicitudes
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`,
		normalizeLimit(limit), max(offset, 0))
}

func (r *RequestRepo) list(ctx context.Context, query string, args ...any) ([]*model.FundsRequest, error) {
	var rowsOut []model.FundsRequest
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.FundsRequest])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list funds requests: %w", err)
	}

	res := make([]*model.FundsRequest, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return 50
	}
	return limit
}
