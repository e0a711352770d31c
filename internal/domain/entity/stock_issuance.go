package entity

import "time"

// StockIssuance registra un evento de despacho: qué requisición, contra qué
// lote, qué artículo y cantidad. Se crea exactamente una vez por transacción
// de despacho exitosa y nunca se modifica.
type StockIssuance struct {
	ID            string
	RequisitionID string
	BatchID       string
	ItemID        string
	Quantity      int
	IssuedByID    string // almacenista que despachó
	IssuedAt      time.Time
	Note          string // nota libre de entrega
	AssetID       *string // activo materializado, solo para artículos fixed_asset
	CreatedAt     time.Time
}
