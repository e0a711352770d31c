package entity

import "time"

// Estados y prioridades de un ticket de mantenimiento.
const (
	TicketOpen     = "open"
	TicketResolved = "resolved"

	TicketPriorityLow    = "low"
	TicketPriorityMedium = "medium"
	TicketPriorityHigh   = "high"
)

// MaintenanceTicket representa una atención de servicio sobre un activo fijo.
// Solo referencia activos (fixed_asset); los consumibles no se rastrean
// individualmente después del despacho.
type MaintenanceTicket struct {
	ID            string
	AssetID       string
	IssueKind     string // hardware, software, network, other
	Description   string
	Priority      string // low, medium, high
	ReportedByID  string
	TechnicianID  *string
	Status        string // open, resolved
	Resolution    *string
	ResolvedAt    *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
