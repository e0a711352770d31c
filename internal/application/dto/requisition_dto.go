package dto

import "time"

// CreateRequisitionRequest creación de una requisición (estado submitted).
type CreateRequisitionRequest struct {
	ItemID      string `json:"item_id"` // opcional; el almacenista puede fijar otro artículo al despachar
	Description string `json:"description" validate:"required"`
	Quantity    int    `json:"quantity" validate:"required,min=1"`
	Urgency     string `json:"urgency" validate:"omitempty,oneof=low medium high"`
	Department  string `json:"department" validate:"required"`
	Unit        string `json:"unit"`
	Room        string `json:"room"`
}

// SubmitRequisitionRequest envío a aprobación: liga los dos aprobadores.
type SubmitRequisitionRequest struct {
	DeptApproverID string `json:"dept_approver_id" validate:"required"`
	ITDApproverID  string `json:"itd_approver_id" validate:"required"`
}

// DeclineRequisitionRequest rechazo; la razón es obligatoria.
type DeclineRequisitionRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// RequisitionResponse requisición expuesta por la API.
type RequisitionResponse struct {
	ID             string     `json:"id"`
	Code           string     `json:"code"`
	RequesterID    string     `json:"requester_id"`
	ItemID         *string    `json:"item_id,omitempty"`
	Description    string     `json:"description"`
	Quantity       int        `json:"quantity"`
	Urgency        string     `json:"urgency"`
	Department     string     `json:"department"`
	Unit           string     `json:"unit,omitempty"`
	Room           string     `json:"room,omitempty"`
	DeptApproverID *string    `json:"dept_approver_id,omitempty"`
	ITDApproverID  *string    `json:"itd_approver_id,omitempty"`
	Status         string     `json:"status"`
	DeclineReason  *string    `json:"decline_reason,omitempty"`
	IssuedByID     *string    `json:"issued_by_id,omitempty"`
	IssuedAt       *time.Time `json:"issued_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
