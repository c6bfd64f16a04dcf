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

	"github.com/apodaca-kapital/investor-portal/internal/data/database"
	"github.com/apodaca-kapital/investor-portal/internal/data/pgxutil"
	"github.com/apodaca-kapital/investor-portal/internal/domain/model"
)

var (
	// ErrClientNotFound is returned when a client record does not exist.
	ErrClientNotFound = fmt.Errorf("%w: client", ErrNotFound)
	// ErrClientEmailExists is returned on a duplicate client email.
	ErrClientEmailExists = fmt.Errorf("%w: client email", ErrDuplicate)
)

const clientColumnList = `id, nombre, email, telefono, clabe, onboarding_status, onboarding_notas,
	onboarding_updated_at, validated_at, created_at, updated_at`

// ClientRepo provides database operations for client records.
type ClientRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewClientRepo creates a ClientRepo with the real clock.
func NewClientRepo(db *sql.DB) *ClientRepo {
	return &ClientRepo{DB: db, timeProvider: RealTimeProvider{}}
}

// NewClientRepoWithTimeProvider creates a ClientRepo with a custom clock (tests).
func NewClientRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *ClientRepo {
	return &ClientRepo{DB: db, timeProvider: tp}
}

// Create inserts a new client record.
func (r *ClientRepo) Create(ctx context.Context, req *model.CreateClientRequest) (*model.Client, error) {
	if req == nil {
		return nil, errors.New("create client request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	now := r.timeProvider.Now()
	var out model.Client
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO clientes (nombre, email, telefono, clabe, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $5)
			RETURNING `+clientColumnList,
			strings.TrimSpace(req.Name),
			normalizeOptionalEmail(req.Email),
			req.Phone,
			req.Clabe,
			now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Client])
		return err
	}); err != nil {
		return nil, r.mapWriteErr(err, false)
	}
	return &out, nil
}

// GetByID retrieves a client by ID.
func (r *ClientRepo) GetByID(ctx context.Context, id string) (*model.Client, error) {
	var out model.Client
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			`SELECT `+clientColumnList+` FROM clientes WHERE id = $1`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Client])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to get client by ID: %w", err)
	}
	return &out, nil
}

// Update updates fields of a client record.
func (r *ClientRepo) Update(ctx context.Context, id string, req model.UpdateClientRequest) (*model.Client, error) {
	setClause, args := r.buildUpdateClause(req)
	if setClause == "" {
		return r.GetByID(ctx, id)
	}

	var out model.Client
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		args = append(args, id)
		query := "UPDATE clientes SET " + setClause +
			" WHERE id = $" + strconv.Itoa(len(args)) +
			" RETURNING " + clientColumnList
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		var e error
		out, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Client])
		return e
	})
	if err != nil {
		return nil, r.mapWriteErr(err, true)
	}
	return &out, nil
}

// SetOnboarding updates a client's onboarding state. Reaching validado also
// stamps validated_at.
func (r *ClientRepo) SetOnboarding(ctx context.Context, id string, req model.SetOnboardingRequest) (*model.Client, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	now := r.timeProvider.Now()
	var validatedAt any
	if req.Status == model.OnboardingValidated {
		validatedAt = now
	}

	var out model.Client
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			UPDATE clientes
			SET onboarding_status = $1,
			    onboarding_notas = COALESCE($2, onboarding_notas),
			    onboarding_updated_at = $3,
			    validated_at = COALESCE($4, validated_at),
			    updated_at = $3
			WHERE id = $5
			RETURNING `+clientColumnList,
			req.Status, req.Notes, now, validatedAt, id,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		var e error
		out, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Client])
		return e
	})
	if err != nil {
		return nil, r.mapWriteErr(err, true)
	}
	return &out, nil
}

// List retrieves clients with paging and optional filters.
func (r *ClientRepo) List(ctx context.Context, opts model.ClientsListOptions) ([]*model.Client, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := max(opts.Offset, 0)

	listOpts := []database.ListOption{
		database.WithColumns(clientColumns()...),
		database.WithOrderBy("nombre", false),
		database.WithLimit(limit),
		database.WithOffset(offset),
	}
	if opts.Q != nil && strings.TrimSpace(*opts.Q) != "" {
		pattern := "%" + strings.TrimSpace(*opts.Q) + "%"
		listOpts = append(listOpts, database.WithConditions(
			database.WhereRawCond("(nombre ILIKE $%d OR email ILIKE $%d)", pattern, pattern),
		))
	}
	if opts.Status != nil {
		listOpts = append(listOpts, database.WithConditions(
			database.WhereCond("onboarding_status", database.Equal, string(*opts.Status)),
		))
	}

	query, args, err := database.BuildListQuery("clientes", listOpts...)
	if err != nil {
		return nil, fmt.Errorf("build clients list query: %w", err)
	}

	var rowsOut []model.Client
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Client])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}

	res := make([]*model.Client, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

func (r *ClientRepo) buildUpdateClause(req model.UpdateClientRequest) (string, []any) {
	setParts := make([]string, 0, 5)
	args := make([]any, 0, 6)
	nextIdx := func() int { return len(args) + 1 }

	if req.Name != nil {
		setParts = append(setParts, fmt.Sprintf("nombre = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.Name))
	}
	if req.Email != nil {
		setParts = append(setParts, fmt.Sprintf("email = $%d", nextIdx()))
		args = append(args, normalizeOptionalEmail(req.Email))
	}
	if req.Phone != nil {
		setParts = append(setParts, fmt.Sprintf("telefono = $%d", nextIdx()))
		args = append(args, *req.Phone)
	}
	if req.Clabe != nil {
		setParts = append(setParts, fmt.Sprintf("clabe = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.Clabe))
	}
	if len(setParts) == 0 {
		return "", nil
	}

	setParts = append(setParts, fmt.Sprintf("updated_at = $%d", nextIdx()))
	args = append(args, r.timeProvider.Now())
	return strings.Join(setParts, ", "), args
}

func (r *ClientRepo) mapWriteErr(err error, includeNotFound bool) error {
	if err == nil {
		return nil
	}
	if includeNotFound && errors.Is(err, pgx.ErrNoRows) {
		return ErrClientNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return ErrClientEmailExists
	}
	return fmt.Errorf("client write failed: %w", err)
}

func clientColumns() []string {
	return []string{
		"id",
		"nombre",
		"email",
		"telefono",
		"clabe",
		"onboarding_status",
		"onboarding_notas",
		"onboarding_updated_at",
		"validated_at",
		"created_at",
		"updated_at",
	}
}

// normalizeOptionalEmail lowercases and trims a nullable email so the unique
// index behaves case-insensitively.
func normalizeOptionalEmail(email *string) *string {
	if email == nil {
		return nil
	}
	e := strings.ToLower(strings.TrimSpace(*email))
	if e == "" {
		return nil
	}
	return &e
}
