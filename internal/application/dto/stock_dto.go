package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiveStockRequest recepción de compra: crea StockReceived + lote e
// incrementa el agregado en la misma transacción.
type ReceiveStockRequest struct {
	SupplierID     string          `json:"supplier_id" validate:"required"`
	PurchaseOrder  string          `json:"purchase_order" validate:"required"`
	ItemID         string          `json:"item_id" validate:"required"`
	Quantity       int             `json:"quantity" validate:"required,min=1"`
	UnitCost       decimal.Decimal `json:"unit_cost"`
	WarrantyMonths int             `json:"warranty_months" validate:"min=0"`
}

// ReceiveStockResponse identificadores creados por la recepción.
type ReceiveStockResponse struct {
	StockReceivedID string `json:"stock_received_id"`
	BatchID         string `json:"batch_id"`
	NewQuantity     int    `json:"new_quantity"`
}

// StockResponse existencia agregada de un artículo.
type StockResponse struct {
	ItemID    string    `json:"item_id"`
	Quantity  int       `json:"quantity"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BatchResponse lote de recepción expuesto por la API.
type BatchResponse struct {
	ID            string    `json:"id"`
	ItemID        string    `json:"item_id"`
	ReceivedQty   int       `json:"received_qty"`
	Remaining     int       `json:"remaining"`
	WarrantyFrom  time.Time `json:"warranty_from"`
	WarrantyUntil time.Time `json:"warranty_until"`
}
