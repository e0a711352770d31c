package repository

import "github.com/jhoicas/ActivosTI-api/internal/domain/entity"

// AssetFilter filtros de listado de activos.
type AssetFilter struct {
	Status     string
	Department string
	UserID     string
	Limit      int
	Offset     int
}

// InventoryAssetRepository define el puerto de persistencia para activos
// fijos y su detalle de dispositivo (una sola variante por activo).
type InventoryAssetRepository interface {
	// NextAssetTag devuelve una etiqueta única monótona (secuencia de BD).
	// La colisión de etiquetas es un bug, no una carrera tolerada.
	NextAssetTag() (string, error)
	Create(asset *entity.InventoryAsset) error
	GetByID(id string) (*entity.InventoryAsset, error)
	GetByTag(tag string) (*entity.InventoryAsset, error)
	Update(asset *entity.InventoryAsset) error
	List(filter AssetFilter) ([]*entity.InventoryAsset, error)
}
