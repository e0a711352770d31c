package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/ActivosTI-api/internal/domain"
	"github.com/jhoicas/ActivosTI-api/internal/domain/entity"
	"github.com/jhoicas/ActivosTI-api/internal/domain/repository"
)

var _ repository.StockIssuanceRepository = (*StockIssuanceRepo)(nil)

// StockIssuanceRepo registros de despacho sobre PostgreSQL.
type StockIssuanceRepo struct {
	q Querier
}

// NewStockIssuanceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockIssuanceRepository(q Querier) *StockIssuanceRepo {
	return &StockIssuanceRepo{q: q}
}

const stockIssuanceColumns = `id, requisition_id, batch_id, item_id, quantity,
		issued_by_id, issued_at, note, asset_id, created_at`

// Create persiste un despacho. INSERT plano a propósito: un segundo despacho
// de la misma requisición debe fallar, nunca sobrescribir el registro previo.
func (r *StockIssuanceRepo) Create(issuance *entity.StockIssuance) error {
	query := `
		INSERT INTO stock_issuances (` + stockIssuanceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		issuance.ID, issuance.RequisitionID, issuance.BatchID, issuance.ItemID,
		issuance.Quantity, issuance.IssuedByID, issuance.IssuedAt, issuance.Note,
		issuance.AssetID, issuance.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert stock issuance: %w", err)
	}
	return nil
}

// GetByID obtiene un despacho por ID.
func (r *StockIssuanceRepo) GetByID(id string) (*entity.StockIssuance, error) {
	return r.scanOne(`SELECT `+stockIssuanceColumns+` FROM stock_issuances WHERE id = $1`, id)
}

// GetByRequisition obtiene el despacho asociado a una requisición.
func (r *StockIssuanceRepo) GetByRequisition(requisitionID string) (*entity.StockIssuance, error) {
	return r.scanOne(`SELECT `+stockIssuanceColumns+` FROM stock_issuances WHERE requisition_id = $1`, requisitionID)
}

func (r *StockIssuanceRepo) scanOne(query string, arg any) (*entity.StockIssuance, error) {
	var si entity.StockIssuance
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&si.ID, &si.RequisitionID, &si.BatchID, &si.ItemID, &si.Quantity,
		&si.IssuedByID, &si.IssuedAt, &si.Note, &si.AssetID, &si.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock issuance: %w", err)
	}
	return &si, nil
}

// List lista despachos, más recientes primero.
func (r *StockIssuanceRepo) List(limit, offset int) ([]*entity.StockIssuance, error) {
	query := `SELECT ` + stockIssuanceColumns + `
		FROM stock_issuances ORDER BY issued_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock issuances: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockIssuance
	for rows.Next() {
		var si entity.StockIssuance
		if err := rows.Scan(&si.ID, &si.RequisitionID, &si.BatchID, &si.ItemID, &si.Quantity,
			&si.IssuedByID, &si.IssuedAt, &si.Note, &si.AssetID, &si.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock issuance: %w", err)
		}
		list = append(list, &si)
	}
	return list, rows.Err()
}
