package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockReceived registra una recepción de compra: proveedor, orden de compra,
// artículo, cantidad y términos de garantía. Append-only una vez creado; las
// correcciones se modelan como registros nuevos.
type StockReceived struct {
	ID             string
	SupplierID     string
	PurchaseOrder  string // referencia de orden de compra / factura del proveedor
	ItemID         string
	Quantity       int
	UnitCost       decimal.Decimal
	WarrantyMonths int
	ReceivedByID   string // usuario que recibió la mercancía
	ReceivedAt     time.Time
	CreatedAt      time.Time
}
