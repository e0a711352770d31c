package entity

import "time"

// Supplier representa un proveedor de equipos de TI.
type Supplier struct {
	ID        string
	Name      string
	TaxID     string
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time // soft delete
}
