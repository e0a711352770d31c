package repository

import "github.com/jhoicas/ActivosTI-api/internal/domain/entity"

// MaintenanceTicketRepository define el puerto de persistencia para tickets
// de mantenimiento.
type MaintenanceTicketRepository interface {
	Create(ticket *entity.MaintenanceTicket) error
	GetByID(id string) (*entity.MaintenanceTicket, error)
	Update(ticket *entity.MaintenanceTicket) error
	ListByAsset(assetID string, limit, offset int) ([]*entity.MaintenanceTicket, error)
	List(status string, limit, offset int) ([]*entity.MaintenanceTicket, error)
}
