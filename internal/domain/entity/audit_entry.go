package entity

import "time"

// Acciones auditadas del sistema.
const (
	AuditRequisitionCreated      = "requisition_created"
	AuditRequisitionSubmitted    = "requisition_submitted"
	AuditRequisitionDeptApproved = "requisition_dept_approved"
	AuditRequisitionITDApproved  = "requisition_itd_approved"
	AuditRequisitionDeclined     = "requisition_declined"
	AuditStockReceived           = "stock_received"
	AuditStockIssued             = "stock_issued"
	AuditAssetObsoleted          = "asset_obsoleted"
	AuditAssetDisposed           = "asset_disposed"
	AuditTicketCreated           = "ticket_created"
	AuditTicketResolved          = "ticket_resolved"
)

// AuditEntry es una instantánea inmutable de una mutación de negocio. Se
// escribe dentro de la misma transacción que la mutación que describe: una
// entrada de auditoría nunca existe sin su cambio de estado, ni al revés.
type AuditEntry struct {
	ID            string
	Action        string
	ActorID       string
	SubjectUserID *string
	EntityKind    string // requisition, stock, asset, ticket
	EntityID      string
	OldState      *string
	NewState      *string
	Context       string         // departamento/unidad u otro contexto breve
	Metadata      map[string]any // detalle libre (item, cantidad, fallos de notificación)
	CreatedAt     time.Time
}
