package repository

import "github.com/jhoicas/ActivosTI-api/internal/domain/entity"

// CatalogItemRepository define el puerto de persistencia para artículos del
// catálogo. Las consultas excluyen registros con soft delete.
type CatalogItemRepository interface {
	Create(item *entity.CatalogItem) error
	GetByID(id string) (*entity.CatalogItem, error)
	GetByCode(code string) (*entity.CatalogItem, error)
	List(limit, offset int) ([]*entity.CatalogItem, error)
	// Update nunca cambia Classification; el caso de uso lo rechaza antes.
	Update(item *entity.CatalogItem) error
	SoftDelete(id string) error
}
