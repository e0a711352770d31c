package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/ActivosTI-api/internal/domain/entity"
	"github.com/jhoicas/ActivosTI-api/internal/domain/repository"
)

var _ repository.StockReceivedRepository = (*StockReceivedRepo)(nil)

// StockReceivedRepo recepciones de compra sobre PostgreSQL (append-only).
type StockReceivedRepo struct {
	q Querier
}

// NewStockReceivedRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockReceivedRepository(q Querier) *StockReceivedRepo {
	return &StockReceivedRepo{q: q}
}

const stockReceivedColumns = `id, supplier_id, purchase_order, item_id, quantity, unit_cost,
		warranty_months, received_by_id, received_at, created_at`

// Create persiste una recepción de compra.
func (r *StockReceivedRepo) Create(received *entity.StockReceived) error {
	query := `
		INSERT INTO stock_received (` + stockReceivedColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		received.ID, received.SupplierID, received.PurchaseOrder, received.ItemID,
		received.Quantity, received.UnitCost, received.WarrantyMonths,
		received.ReceivedByID, received.ReceivedAt, received.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock received: %w", err)
	}
	return nil
}

// GetByID obtiene una recepción por ID.
func (r *StockReceivedRepo) GetByID(id string) (*entity.StockReceived, error) {
	query := `SELECT ` + stockReceivedColumns + ` FROM stock_received WHERE id = $1`
	var sr entity.StockReceived
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&sr.ID, &sr.SupplierID, &sr.PurchaseOrder, &sr.ItemID,
		&sr.Quantity, &sr.UnitCost, &sr.WarrantyMonths,
		&sr.ReceivedByID, &sr.ReceivedAt, &sr.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock received: %w", err)
	}
	return &sr, nil
}

// ListByItem lista recepciones de un artículo, más recientes primero.
func (r *StockReceivedRepo) ListByItem(itemID string, limit, offset int) ([]*entity.StockReceived, error) {
	query := `SELECT ` + stockReceivedColumns + `
		FROM stock_received WHERE item_id = $1
		ORDER BY received_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, itemID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock received: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockReceived
	for rows.Next() {
		var sr entity.StockReceived
		if err := rows.Scan(&sr.ID, &sr.SupplierID, &sr.PurchaseOrder, &sr.ItemID,
			&sr.Quantity, &sr.UnitCost, &sr.WarrantyMonths,
			&sr.ReceivedByID, &sr.ReceivedAt, &sr.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock received: %w", err)
		}
		list = append(list, &sr)
	}
	return list, rows.Err()
}
