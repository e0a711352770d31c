package dto

import "time"

// CreateTicketRequest apertura de ticket de mantenimiento sobre un activo.
type CreateTicketRequest struct {
	AssetID     string `json:"asset_id" validate:"required"`
	IssueKind   string `json:"issue_kind" validate:"required,oneof=hardware software network other"`
	Description string `json:"description" validate:"required"`
	Priority    string `json:"priority" validate:"omitempty,oneof=low medium high"`
}

// AssignTicketRequest asignación de técnico.
type AssignTicketRequest struct {
	TechnicianID string `json:"technician_id" validate:"required"`
}

// ResolveTicketRequest cierre del ticket con resolución.
type ResolveTicketRequest struct {
	Resolution string `json:"resolution" validate:"required"`
}

// TicketResponse ticket expuesto por la API.
type TicketResponse struct {
	ID           string     `json:"id"`
	AssetID      string     `json:"asset_id"`
	IssueKind    string     `json:"issue_kind"`
	Description  string     `json:"description"`
	Priority     string     `json:"priority"`
	ReportedByID string     `json:"reported_by_id"`
	TechnicianID *string    `json:"technician_id,omitempty"`
	Status       string     `json:"status"`
	Resolution   *string    `json:"resolution,omitempty"`
	ResolvedAt   *time.Time `json:"resolved_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
