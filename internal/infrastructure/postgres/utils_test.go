package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/ActivosTI-api/internal/domain"
	"github.com/jhoicas/ActivosTI-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Querier de prueba: todo Exec devuelve el error configurado
// ─────────────────────────────────────────────

type errQuerier struct {
	err error
}

func (q *errQuerier) Exec(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, q.err
}

func (q *errQuerier) Query(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
	return nil, q.err
}

func (q *errQuerier) QueryRow(_ context.Context, _ string, _ ...any) pgx.Row {
	panic("no usado en estas pruebas")
}

func pgError(code string) *pgconn.PgError {
	return &pgconn.PgError{Code: code}
}

// ─────────────────────────────────────────────
// Clasificación de errores de PostgreSQL
// ─────────────────────────────────────────────

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(pgError("23505")))
	assert.False(t, isUniqueViolation(pgError("23503")))
}

func TestIsForeignKeyViolation(t *testing.T) {
	assert.True(t, isForeignKeyViolation(pgError("23503")))
	assert.False(t, isForeignKeyViolation(pgError("23505")))
}

// ─────────────────────────────────────────────
// Mapeo a errores de dominio en los INSERT
// ─────────────────────────────────────────────

func TestStockIssuanceCreate_DuplicadoMapeaADominio(t *testing.T) {
	repo := NewStockIssuanceRepository(&errQuerier{err: pgError("23505")})

	err := repo.Create(&entity.StockIssuance{ID: "si-1", RequisitionID: "req-1"})

	require.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestStockIssuanceCreate_ClaveForaneaMapeaANotFound(t *testing.T) {
	repo := NewStockIssuanceRepository(&errQuerier{err: pgError("23503")})

	err := repo.Create(&entity.StockIssuance{ID: "si-1", RequisitionID: "req-inexistente"})

	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMaintenanceTicketCreate_ClaveForaneaMapeaANotFound(t *testing.T) {
	repo := NewMaintenanceTicketRepository(&errQuerier{err: pgError("23503")})

	err := repo.Create(&entity.MaintenanceTicket{
		ID:        "tk-1",
		AssetID:   "activo-inexistente",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	})

	require.ErrorIs(t, err, domain.ErrNotFound)
}
