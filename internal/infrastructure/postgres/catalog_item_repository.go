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

var _ repository.CatalogItemRepository = (*CatalogItemRepo)(nil)

// CatalogItemRepo implementación sobre PostgreSQL del catálogo de artículos.
type CatalogItemRepo struct {
	q Querier
}

// NewCatalogItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCatalogItemRepository(q Querier) *CatalogItemRepo {
	return &CatalogItemRepo{q: q}
}

const catalogItemColumns = `id, code, name, device_type, classification, brand, model,
		warranty_months, supplier_id, spec_payload, created_at, updated_at`

// Create persiste un artículo del catálogo.
func (r *CatalogItemRepo) Create(item *entity.CatalogItem) error {
	query := `
		INSERT INTO catalog_items (` + catalogItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Code, item.Name, item.DeviceType, item.Classification,
		item.Brand, item.Model, item.WarrantyMonths, item.SupplierID,
		item.SpecPayload, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert catalog item: %w", err)
	}
	return nil
}

// GetByID obtiene un artículo por ID (excluye eliminados).
func (r *CatalogItemRepo) GetByID(id string) (*entity.CatalogItem, error) {
	return r.scanOne(`SELECT `+catalogItemColumns+` FROM catalog_items WHERE id = $1 AND deleted_at IS NULL`, id)
}

// GetByCode obtiene un artículo por código legible (excluye eliminados).
func (r *CatalogItemRepo) GetByCode(code string) (*entity.CatalogItem, error) {
	return r.scanOne(`SELECT `+catalogItemColumns+` FROM catalog_items WHERE code = $1 AND deleted_at IS NULL`, code)
}

func (r *CatalogItemRepo) scanOne(query string, arg any) (*entity.CatalogItem, error) {
	var it entity.CatalogItem
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&it.ID, &it.Code, &it.Name, &it.DeviceType, &it.Classification,
		&it.Brand, &it.Model, &it.WarrantyMonths, &it.SupplierID,
		&it.SpecPayload, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get catalog item: %w", err)
	}
	return &it, nil
}

// List lista artículos con paginación (excluye eliminados).
func (r *CatalogItemRepo) List(limit, offset int) ([]*entity.CatalogItem, error) {
	query := `SELECT ` + catalogItemColumns + `
		FROM catalog_items WHERE deleted_at IS NULL
		ORDER BY code LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list catalog items: %w", err)
	}
	defer rows.Close()
	var list []*entity.CatalogItem
	for rows.Next() {
		var it entity.CatalogItem
		if err := rows.Scan(&it.ID, &it.Code, &it.Name, &it.DeviceType, &it.Classification,
			&it.Brand, &it.Model, &it.WarrantyMonths, &it.SupplierID,
			&it.SpecPayload, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan catalog item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// Update actualiza un artículo. La clasificación no se toca: es inmutable y
// el caso de uso rechaza el cambio antes de llegar aquí.
func (r *CatalogItemRepo) Update(item *entity.CatalogItem) error {
	query := `
		UPDATE catalog_items SET name = $2, device_type = $3, brand = $4, model = $5,
			warranty_months = $6, supplier_id = $7, spec_payload = $8, updated_at = $9
		WHERE id = $1 AND deleted_at IS NULL`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.DeviceType, item.Brand, item.Model,
		item.WarrantyMonths, item.SupplierID, item.SpecPayload, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update catalog item: %w", err)
	}
	return nil
}

// SoftDelete marca el artículo como eliminado.
func (r *CatalogItemRepo) SoftDelete(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE catalog_items SET deleted_at = now() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("soft delete catalog item: %w", err)
	}
	return nil
}
