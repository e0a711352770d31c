package dto

import "time"

// IssueRequisitionRequest despacho de una requisición itd_approved contra un
// lote concreto. ItemID puede diferir del solicitado originalmente; queda
// fijado como el artículo realmente entregado.
type IssueRequisitionRequest struct {
	ItemID   string `json:"item_id" validate:"required"`
	BatchID  string `json:"batch_id" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
	Note     string `json:"note"`
}

// IssueRequisitionResponse resultado del despacho. Warning presente cuando la
// mutación quedó confirmada pero alguna notificación falló (éxito degradado).
type IssueRequisitionResponse struct {
	IssuanceID string  `json:"issuance_id"`
	AssetID    *string `json:"asset_id,omitempty"`
	AssetTag   *string `json:"asset_tag,omitempty"`
	Warning    string  `json:"warning,omitempty"`
}

// IssuanceResponse registro de despacho expuesto por la API.
type IssuanceResponse struct {
	ID            string    `json:"id"`
	RequisitionID string    `json:"requisition_id"`
	BatchID       string    `json:"batch_id"`
	ItemID        string    `json:"item_id"`
	Quantity      int       `json:"quantity"`
	IssuedByID    string    `json:"issued_by_id"`
	IssuedAt      time.Time `json:"issued_at"`
	Note          string    `json:"note,omitempty"`
	AssetID       *string   `json:"asset_id,omitempty"`
}
