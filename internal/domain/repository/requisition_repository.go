package repository

import "github.com/jhoicas/ActivosTI-api/internal/domain/entity"

// RequisitionFilter filtros de listado de requisiciones.
type RequisitionFilter struct {
	Status      string
	RequesterID string
	Department  string
	Limit       int
	Offset      int
}

// RequisitionRepository define el puerto de persistencia para requisiciones.
// Las requisiciones nunca se eliminan físicamente; GetByID/List excluyen las
// soft-deleted y GetForUpdate las devuelve para que el caso de uso responda
// con ErrGone en lugar de ErrNotFound.
type RequisitionRepository interface {
	// Create asigna el código legible (secuencia REQ-<año>-<n>) y persiste.
	Create(req *entity.Requisition) error
	GetByID(id string) (*entity.Requisition, error)
	GetByCode(code string) (*entity.Requisition, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE) dentro de una
	// transacción; incluye soft-deleted.
	GetForUpdate(id string) (*entity.Requisition, error)
	Update(req *entity.Requisition) error
	List(filter RequisitionFilter) ([]*entity.Requisition, error)
	SoftDelete(id string) error
}
