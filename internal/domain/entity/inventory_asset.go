package entity

import "time"

// Estados de ciclo de vida de un activo fijo.
const (
	AssetActive   = "active"
	AssetObsolete = "obsolete"
	AssetDisposed = "disposed"
)

// InventoryAsset es un activo fijo individualmente identificable, materializado
// al despachar un artículo con clasificación fixed_asset. Posee como máximo un
// sub-registro de detalle por tipo de dispositivo (unión etiquetada, ver
// DeviceDetail).
type InventoryAsset struct {
	ID              string
	AssetTag        string // etiqueta única, ej. ACT-2025-000123
	ItemID          string
	StockReceivedID string // recepción de origen (hereda garantía y compra)
	RequisitionID   *string
	AssignedUserID  *string
	Department      string
	Unit            string
	Room            string
	PurchaseDate    time.Time
	WarrantyUntil   time.Time
	Status          string // active, obsolete, disposed
	DisposedAt      *time.Time
	DisposalMethod  *string
	DisposalReason  *string
	Detail          *DeviceDetail // nil para tipos sin payload de especificación
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       *time.Time
}
