package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/ActivosTI-api/internal/domain/entity"
	"github.com/jhoicas/ActivosTI-api/internal/domain/repository"
)

var _ repository.StockBatchRepository = (*StockBatchRepo)(nil)

// StockBatchRepo lotes de recepción sobre PostgreSQL. Los lotes agotados se
// conservan como registro histórico; nunca se borran físicamente.
type StockBatchRepo struct {
	q Querier
}

// NewStockBatchRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockBatchRepository(q Querier) *StockBatchRepo {
	return &StockBatchRepo{q: q}
}

const stockBatchColumns = `id, stock_received_id, item_id, received_qty, remaining,
		warranty_from, warranty_until, created_at, updated_at, deleted_at`

// Create persiste un lote nuevo.
func (r *StockBatchRepo) Create(batch *entity.StockBatch) error {
	query := `
		INSERT INTO stock_batches (id, stock_received_id, item_id, received_qty, remaining,
			warranty_from, warranty_until, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		batch.ID, batch.StockReceivedID, batch.ItemID, batch.ReceivedQty, batch.Remaining,
		batch.WarrantyFrom, batch.WarrantyUntil, batch.CreatedAt, batch.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock batch: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID. Incluye eliminados: el caso de uso decide
// si un lote soft-deleted es despachable (no lo es).
func (r *StockBatchRepo) GetByID(id string) (*entity.StockBatch, error) {
	return r.get(id, "")
}

// GetForUpdate bloquea la fila del lote (SELECT FOR UPDATE).
func (r *StockBatchRepo) GetForUpdate(id string) (*entity.StockBatch, error) {
	return r.get(id, " FOR UPDATE")
}

func (r *StockBatchRepo) get(id, lock string) (*entity.StockBatch, error) {
	query := `SELECT ` + stockBatchColumns + ` FROM stock_batches WHERE id = $1` + lock
	var b entity.StockBatch
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&b.ID, &b.StockReceivedID, &b.ItemID, &b.ReceivedQty, &b.Remaining,
		&b.WarrantyFrom, &b.WarrantyUntil, &b.CreatedAt, &b.UpdatedAt, &b.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock batch: %w", err)
	}
	return &b, nil
}

// UpdateRemaining fija la cantidad restante del lote.
func (r *StockBatchRepo) UpdateRemaining(id string, remaining int) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE stock_batches SET remaining = $2, updated_at = now() WHERE id = $1`, id, remaining)
	if err != nil {
		return fmt.Errorf("update batch remaining: %w", err)
	}
	return nil
}

// ListByItem lista los lotes de un artículo, más recientes primero.
func (r *StockBatchRepo) ListByItem(itemID string, limit, offset int) ([]*entity.StockBatch, error) {
	query := `SELECT ` + stockBatchColumns + `
		FROM stock_batches WHERE item_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, itemID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock batches: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockBatch
	for rows.Next() {
		var b entity.StockBatch
		if err := rows.Scan(&b.ID, &b.StockReceivedID, &b.ItemID, &b.ReceivedQty, &b.Remaining,
			&b.WarrantyFrom, &b.WarrantyUntil, &b.CreatedAt, &b.UpdatedAt, &b.DeletedAt); err != nil {
			return nil, fmt.Errorf("scan stock batch: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}
