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

// ErrProfileNotFound is returned when no profile links the user to a client.
var ErrProfileNotFound = fmt.Errorf("%w: profile", ErrNotFound)

const profileColumnList = `id, email, cliente_id, nombre, role, created_at`

// ProfileRepo links credential-store users to client records.
type ProfileRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewProfileRepo creates a ProfileRepo with the real clock.
func NewProfileRepo(db *sql.DB) *ProfileRepo {
	return &ProfileRepo{DB: db, timeProvider: RealTimeProvider{}}
}

// NewProfileRepoWithTimeProvider creates a ProfileRepo with a custom clock (tests).
func NewProfileRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *ProfileRepo {
	return &ProfileRepo{DB: db, timeProvider: tp}
}

// Upsert writes the profile row for a user, keyed by the credential-store
// user ID.
func (r *ProfileRepo) Upsert(ctx context.Context, p *model.Profile) error {
	if p == nil || p.UserID == "" {
		return errors.New("profile with user id is required")
	}
	email := strings.ToLower(strings.TrimSpace(p.Email))
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	displayRole := p.DisplayRole
	if displayRole == "" {
		displayRole = "client"
	}

	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		_, err := conn.Exec(ctx, `
			INSERT INTO profiles (id, email, cliente_id, nombre, role, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (id) DO UPDATE SET
				email = EXCLUDED.email,
				cliente_id = EXCLUDED.cliente_id,
				nombre = EXCLUDED.nombre,
				role = EXCLUDED.role`,
			p.UserID, email, p.ClientID, p.Name, displayRole, r.timeProvider.Now(),
		)
		return err
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgerrcode.UniqueViolation:
				return ErrDuplicate
			case pgerrcode.ForeignKeyViolation:
				return ErrClientNotFound
			}
		}
		return fmt.Errorf("profile upsert failed: %w", err)
	}
	return nil
}

// GetByUserID retrieves a profile by credential-store user ID.
func (r *ProfileRepo) GetByUserID(ctx context.Context, userID string) (*model.Profile, error) {
	return r.getByQuery(ctx, `SELECT `+profileColumnList+` FROM profiles WHERE id = $1`, userID)
}

// GetByEmail retrieves a profile by email, case-insensitively.
func (r *ProfileRepo) GetByEmail(ctx context.Context, email string) (*model.Profile, error) {
	return r.getByQuery(ctx,
		`SELECT `+profileColumnList+` FROM profiles WHERE email = $1`,
		strings.ToLower(strings.TrimSpace(email)))
}

func (r *ProfileRepo) getByQuery(ctx context.Context, query string, arg any) (*model.Profile, error) {
	var out model.Profile
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, arg)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Profile])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &out, nil
}
