package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/apodaca-kapital/investor-portal/internal/core"
	"github.com/apodaca-kapital/investor-portal/internal/domain/model"
)

// ErrEmptyCSV marks an import whose file has no data rows.
var ErrEmptyCSV = errors.New("csv has no data rows")

// MovementServiceOptions groups dependencies for MovementService.
type MovementServiceOptions struct {
	MovementRepo core.MovementRepository
	Logger       *slog.Logger
}

// MovementService manages the movement ledger: single entries from the
// backoffice and CSV bulk imports per client.
type MovementService struct {
	movements core.MovementRepository
	logger    *slog.Logger
}

// NewMovementService constructs a new MovementService.
func NewMovementService(opts MovementServiceOptions) *MovementService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &MovementService{movements: opts.MovementRepo, logger: logger.With("component", "movements")}
}

// Create records a single movement.
func (s *MovementService) Create(ctx context.Context, req *model.CreateMovementRequest) (*model.Movement, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRequest, err)
	}
	mov, err := s.movements.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create movement: %w", err)
	}
	return mov, nil
}

// List returns a page of movements, always scoped to one client.
func (s *MovementService) List(ctx context.Context, opts model.MovementsListOptions) ([]*model.Movement, error) {
	if opts.Limit <= 0 {
		opts.Limit = 100
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}
	return s.movements.List(ctx, opts)
}

// ImportCSV parses a movement CSV for one client and bulk-inserts the rows.
// The delimiter (comma, semicolon or tab) is sniffed from the header line and
// header names are accepted in their common variants. Any row without a date
// aborts the whole import.
func (s *MovementService) ImportCSV(ctx context.Context, clientID string, r io.Reader) (int, error) {
	if strings.TrimSpace(clientID) == "" {
		return 0, fmt.Errorf("%w: cliente_id is required", ErrInvalidRequest)
	}

	rows, err := parseMovementCSV(r)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, ErrEmptyCSV
	}

	movements := make([]*model.Movement, 0, len(rows))
	for i, row := range rows {
		date, parseErr := parseMovementDate(row.Date)
		if parseErr != nil {
			return 0, fmt.Errorf("%w: row %d has no valid fecha", ErrInvalidRequest, i+2)
		}
		mov := &model.Movement{
			ClientID: clientID,
			Date:     date,
			Kind:     row.Kind,
			Amount:   row.Amount,
		}
		if row.Note != "" {
			note := row.Note
			mov.Note = &note
		}
		movements = append(movements, mov)
	}

	inserted, err := s.movements.BulkInsert(ctx, movements)
	if err != nil {
		return 0, fmt.Errorf("bulk insert: %w", err)
	}

	s.logger.InfoContext(ctx, "csv import finished", "client_id", clientID, "rows", inserted)
	return inserted, nil
}

// csvMovementRow is one parsed data row before validation.
type csvMovementRow struct {
	Date   string
	Kind   string
	Amount float64
	Note   string
}

// movementHeaderAliases maps accepted header spellings to canonical columns.
var movementHeaderAliases = map[string]string{
	"fecha":       "fecha",
	"date":        "fecha",
	"tipo":        "tipo",
	"type":        "tipo",
	"monto":       "monto",
	"amount":      "monto",
	"importe":     "monto",
	"nota":        "nota",
	"note":        "nota",
	"concepto":    "nota",
	"descripcion": "nota",
}

func parseMovementCSV(r io.Reader) ([]csvMovementRow, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	text := strings.TrimPrefix(string(data), "\ufeff")
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyCSV
	}

	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = sniffDelimiter(text)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: unreadable header", ErrInvalidRequest)
	}
	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = movementHeaderAliases[normalizeHeader(h)]
	}

	var rows []csvMovementRow
	for {
		record, readErr := reader.Read()
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidRequest, readErr)
		}
		if emptyRecord(record) {
			continue
		}

		var row csvMovementRow
		for i, value := range record {
			if i >= len(columns) {
				break
			}
			value = strings.TrimSpace(value)
			switch columns[i] {
			case "fecha":
				if row.Date == "" {
					row.Date = value
				}
			case "tipo":
				if row.Kind == "" {
					row.Kind = value
				}
			case "monto":
				row.Amount = parseAmount(value)
			case "nota":
				if row.Note == "" {
					row.Note = value
				}
			}
		}
		if row.Kind == "" {
			row.Kind = model.DefaultMovementKind
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// sniffDelimiter picks the delimiter from the header line. Tabs win ties,
// then semicolons, then the comma default.
func sniffDelimiter(text string) rune {
	line := text
	if idx := strings.IndexByte(line, '\n'); idx >= 0 {
		line = line[:idx]
	}
	commas := strings.Count(line, ",")
	semis := strings.Count(line, ";")
	tabs := strings.Count(line, "\t")
	switch {
	case tabs >= commas && tabs >= semis:
		if tabs > 0 {
			return '\t'
		}
		return ','
	case semis > commas:
		return ';'
	default:
		return ','
	}
}

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.Join(strings.Fields(h), "_")
}

func emptyRecord(record []string) bool {
	for _, c := range record {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// parseAmount reads a money value, tolerating thousands separators and a
// currency sign. Unparseable values become zero, matching the import's
// permissive handling of everything except the date.
func parseAmount(v string) float64 {
	v = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(v), "$"))
	v = strings.ReplaceAll(v, ",", "")
	if v == "" {
		return 0
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return n
}

// movementDateFormats are the accepted fecha spellings, most common first.
var movementDateFormats = []string{"2006-01-02", "02/01/2006", "2006/01/02"}

func parseMovementDate(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, errors.New("empty date")
	}
	for _, layout := range movementDateFormats {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", v)
}
