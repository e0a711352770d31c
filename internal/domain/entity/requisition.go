package entity

import "time"

// Estados de una requisición. El flujo es estrictamente hacia adelante:
//
//	submitted → pending_dept_approval → pending_itd_approval → itd_approved → processed
//
// con ramas terminales de rechazo dept_declined / itd_declined desde los dos
// estados de aprobación pendiente. Ningún estado se revisita.
const (
	RequisitionSubmitted           = "submitted"
	RequisitionPendingDeptApproval = "pending_dept_approval"
	RequisitionPendingITDApproval  = "pending_itd_approval"
	RequisitionITDApproved         = "itd_approved"
	RequisitionProcessed           = "processed"
	RequisitionDeptDeclined        = "dept_declined"
	RequisitionITDDeclined         = "itd_declined"
)

// Niveles de urgencia de una requisición.
const (
	UrgencyLow    = "low"
	UrgencyMedium = "medium"
	UrgencyHigh   = "high"
)

// Requisition representa una solicitud de equipo de un funcionario, sujeta a
// aprobación en dos etapas (jefe de área y departamento de TI) antes del
// despacho. Nunca se elimina físicamente (solo soft delete).
type Requisition struct {
	ID             string
	Code           string // código legible único, ej. REQ-2025-0001
	RequesterID    string
	ItemID         *string // puede ser nulo hasta que el almacenista fija el artículo final
	Description    string  // descripción libre de lo solicitado
	Quantity       int
	Urgency        string // low, medium, high
	Department     string
	Unit           string
	Room           string
	DeptApproverID *string // aprobador de departamento ligado al enviar
	ITDApproverID  *string // aprobador de TI ligado al enviar
	Status         string
	DeclineReason  *string
	IssuedByID     *string
	IssuedAt       *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      *time.Time
}

// IsDeleted indica si la requisición fue eliminada lógicamente.
// Una requisición eliminada no acepta ninguna transición.
func (r *Requisition) IsDeleted() bool {
	return r.DeletedAt != nil
}
