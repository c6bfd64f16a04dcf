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

const documentColumnList = `id, cliente_id, tipo, titulo, url, created_at`

// DocumentRepo provides database operations for registered document links.
type DocumentRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewDocumentRepo creates a DocumentRepo with the real clock.
func NewDocumentRepo(db *sql.DB) *DocumentRepo {
	return &DocumentRepo{DB: db, timeProvider: RealTimeProvider{}}
}

// NewDocumentRepoWithTimeProvider creates a DocumentRepo with a custom clock (tests).
func NewDocumentRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *DocumentRepo {
	return &DocumentRepo{DB: db, timeProvider: tp}
}

// Create registers a document link for a client.
func (r *DocumentRepo) Create(ctx context.Context, req *model.CreateDocumentRequest) (*model.Document, error) {
	if req == nil {
		return nil, errors.New("create document request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	var out model.Document
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO documentos (cliente_id, tipo, titulo, url, created_at)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING `+documentColumnList,
			req.ClientID, strings.TrimSpace(req.Kind), strings.TrimSpace(req.Title),
			strings.TrimSpace(req.URL), r.timeProvider.Now(),
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Document])
		return err
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("document insert failed: %w", err)
	}
	return &out, nil
}

// ListByClient retrieves a client's documents, newest first.
func (r *DocumentRepo) ListByClient(ctx context.Context, clientID string) ([]*model.Document, error) {
	var rowsOut []model.Document
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT `+documentColumnList+`
			FROM documentos
			WHERE cliente_id = $1
			ORDER BY created_at DESC`, clientID)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Document])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	res := make([]*model.Document, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}
