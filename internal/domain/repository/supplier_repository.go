package repository

import "github.com/jhoicas/ActivosTI-api/internal/domain/entity"

// SupplierRepository define el puerto de persistencia para proveedores.
// Todas las consultas excluyen registros con soft delete.
type SupplierRepository interface {
	Create(supplier *entity.Supplier) error
	GetByID(id string) (*entity.Supplier, error)
	List(limit, offset int) ([]*entity.Supplier, error)
	Update(supplier *entity.Supplier) error
	SoftDelete(id string) error
}
