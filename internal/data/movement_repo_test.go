package data

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apodaca-kapital/investor-portal/internal/domain/model"
)

func TestBuildMovementInsert(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	note := "aporte inicial"
	chunk := []*model.Movement{
		{ClientID: "c1", Date: now, Kind: "Aportación", Amount: 1000, Note: &note},
		{ClientID: "c1", Date: now, Kind: "", Amount: -250},
	}

	query, args := buildMovementInsert(chunk, now)
	assert.Equal(t,
		"INSERT INTO movimientos (cliente_id, fecha, tipo, monto, nota, created_at) "+
			"VALUES ($1, $2, $3, $4, $5, $6), ($7, $8, $9, $10, $11, $12)",
		query)
	require.Len(t, args, 12)

	// rows missing tipo fall back to the default kind
	assert.Equal(t, model.DefaultMovementKind, args[8])
	assert.Equal(t, -250.0, args[9])
}

func TestMovementListRequiresClient(t *testing.T) {
	repo := NewMovementRepo(nil)
	_, err := repo.List(t.Context(), model.MovementsListOptions{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
