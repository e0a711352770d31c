package dto

import "time"

// DisposeAssetRequest baja definitiva de un activo.
type DisposeAssetRequest struct {
	Method string `json:"method" validate:"required"` // donación, subasta, destrucción...
	Reason string `json:"reason" validate:"required"`
}

// DeviceDetailResponse detalle de dispositivo del activo (una sola variante).
type DeviceDetailResponse struct {
	Kind    string `json:"kind"`
	Payload any    `json:"payload"`
}

// AssetResponse activo fijo expuesto por la API.
type AssetResponse struct {
	ID             string                `json:"id"`
	AssetTag       string                `json:"asset_tag"`
	ItemID         string                `json:"item_id"`
	RequisitionID  *string               `json:"requisition_id,omitempty"`
	AssignedUserID *string               `json:"assigned_user_id,omitempty"`
	Department     string                `json:"department"`
	Unit           string                `json:"unit,omitempty"`
	Room           string                `json:"room,omitempty"`
	PurchaseDate   time.Time             `json:"purchase_date"`
	WarrantyUntil  time.Time             `json:"warranty_until"`
	Status         string                `json:"status"`
	DisposedAt     *time.Time            `json:"disposed_at,omitempty"`
	DisposalMethod *string               `json:"disposal_method,omitempty"`
	DisposalReason *string               `json:"disposal_reason,omitempty"`
	Detail         *DeviceDetailResponse `json:"detail,omitempty"`
	CreatedAt      time.Time             `json:"created_at"`
}
