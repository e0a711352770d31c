package entity

import "time"

// StockBatch representa un lote físico de recepción. Mantiene la cantidad
// restante de ese lote y su ventana de garantía. Un lote con Remaining 0 está
// agotado pero no se elimina (registro histórico).
type StockBatch struct {
	ID              string
	StockReceivedID string
	ItemID          string
	ReceivedQty     int // cantidad original del lote, nunca cambia
	Remaining       int // invariante: 0 <= Remaining <= ReceivedQty
	WarrantyFrom    time.Time
	WarrantyUntil   time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       *time.Time
}

// IsExhausted indica si el lote ya no tiene unidades disponibles.
func (b *StockBatch) IsExhausted() bool {
	return b.Remaining <= 0
}
