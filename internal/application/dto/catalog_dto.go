package dto

import (
	"encoding/json"
	"time"
)

// CreateCatalogItemRequest alta de artículo. La clasificación es inmutable
// después de la creación.
type CreateCatalogItemRequest struct {
	Code           string          `json:"code" validate:"required"`
	Name           string          `json:"name" validate:"required"`
	DeviceType     string          `json:"device_type" validate:"required,oneof=laptop desktop printer ups other"`
	Classification string          `json:"classification" validate:"required,oneof=fixed_asset consumable"`
	Brand          string          `json:"brand"`
	Model          string          `json:"model"`
	WarrantyMonths int             `json:"warranty_months" validate:"min=0"`
	SupplierID     string          `json:"supplier_id"`
	SpecPayload    json.RawMessage `json:"spec_payload"`
}

// UpdateCatalogItemRequest actualización de artículo (sin clasificación).
type UpdateCatalogItemRequest struct {
	Name           string          `json:"name"`
	Brand          string          `json:"brand"`
	Model          string          `json:"model"`
	WarrantyMonths int             `json:"warranty_months" validate:"min=0"`
	SupplierID     string          `json:"supplier_id"`
	SpecPayload    json.RawMessage `json:"spec_payload"`
	// Classification presente solo para detectar intentos de cambio y
	// rechazarlos explícitamente.
	Classification string `json:"classification"`
}

// CatalogItemResponse artículo expuesto por la API.
type CatalogItemResponse struct {
	ID             string          `json:"id"`
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	DeviceType     string          `json:"device_type"`
	Classification string          `json:"classification"`
	Brand          string          `json:"brand,omitempty"`
	Model          string          `json:"model,omitempty"`
	WarrantyMonths int             `json:"warranty_months"`
	SupplierID     *string         `json:"supplier_id,omitempty"`
	SpecPayload    json.RawMessage `json:"spec_payload,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
