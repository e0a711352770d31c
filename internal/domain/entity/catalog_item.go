package entity

import "time"

// Clasificación de un artículo del catálogo. Inmutable después de la creación:
// determina si el despacho materializa un activo fijo o solo descuenta stock.
const (
	ClassificationFixedAsset = "fixed_asset"
	ClassificationConsumable = "consumable"
)

// Tipos de dispositivo del catálogo.
const (
	DeviceTypeLaptop  = "laptop"
	DeviceTypeDesktop = "desktop"
	DeviceTypePrinter = "printer"
	DeviceTypeUPS     = "ups"
	DeviceTypeOther   = "other"
)

// CatalogItem representa un artículo de TI del catálogo (definición de producto,
// distinto de cualquier unidad física del mismo).
type CatalogItem struct {
	ID             string
	Code           string // código legible único, ej. IT-001
	Name           string
	DeviceType     string // laptop, desktop, printer, ups, other
	Classification string // fixed_asset, consumable
	Brand          string
	Model          string
	WarrantyMonths int     // garantía por defecto
	SupplierID     *string // proveedor habitual (opcional)
	SpecPayload    []byte  // JSON libre con especificaciones; semilla del detalle de dispositivo
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      *time.Time
}

// IsFixedAsset indica si el despacho de este artículo crea un activo fijo.
func (i *CatalogItem) IsFixedAsset() bool {
	return i.Classification == ClassificationFixedAsset
}
