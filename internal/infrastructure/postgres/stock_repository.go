package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/ActivosTI-api/internal/domain/entity"
	"github.com/jhoicas/ActivosTI-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo libro mayor agregado de stock sobre PostgreSQL. Una fila por
// artículo del catálogo.
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene la fila de stock de un artículo.
func (r *StockRepo) Get(itemID string) (*entity.Stock, error) {
	return r.get(itemID, "")
}

// GetForUpdate bloquea la fila de stock (SELECT FOR UPDATE). La verificación
// de suficiencia y el decremento posterior ocurren bajo este bloqueo.
func (r *StockRepo) GetForUpdate(itemID string) (*entity.Stock, error) {
	return r.get(itemID, " FOR UPDATE")
}

func (r *StockRepo) get(itemID, lock string) (*entity.Stock, error) {
	query := `SELECT item_id, quantity, updated_at FROM stock WHERE item_id = $1` + lock
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, itemID).Scan(&s.ItemID, &s.Quantity, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// Increment suma qty al agregado en una sola sentencia: el DO UPDATE opera
// sobre el valor ya confirmado de la fila, de modo que dos primeras
// recepciones concurrentes del mismo artículo se acumulan en vez de pisarse.
func (r *StockRepo) Increment(itemID string, qty int) (int, error) {
	query := `
		INSERT INTO stock (item_id, quantity, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (item_id) DO UPDATE
			SET quantity = stock.quantity + EXCLUDED.quantity, updated_at = now()
		RETURNING quantity`
	var newQty int
	if err := r.q.QueryRow(context.Background(), query, itemID, qty).Scan(&newQty); err != nil {
		return 0, fmt.Errorf("increment stock: %w", err)
	}
	return newQty, nil
}

// Upsert escribe la cantidad absoluta de la fila de stock. Solo lo usa el
// decremento del despacho, que ya bloqueó la fila con GetForUpdate.
func (r *StockRepo) Upsert(stock *entity.Stock) error {
	query := `
		INSERT INTO stock (item_id, quantity, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (item_id) DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query, stock.ItemID, stock.Quantity, stock.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}
