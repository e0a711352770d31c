package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin       = "admin"
	RoleSolicitante = "solicitante"  // personal que crea requisiciones
	RoleJefeArea    = "jefe_area"    // aprobador de departamento
	RoleAprobadorTI = "aprobador_ti" // aprobador del departamento de TI
	RoleAlmacenista = "almacenista"  // oficial de almacén (despacha stock)
	RoleTecnico     = "tecnico"      // técnico de mantenimiento
)

// User representa un usuario del sistema.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, solicitante, jefe_area, aprobador_ti, almacenista, tecnico
	Department   string
	Unit         string
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsActive indica si el usuario puede operar en el sistema.
func (u *User) IsActive() bool {
	return u != nil && u.Status == "active"
}
