package repository

import "github.com/jhoicas/ActivosTI-api/internal/domain/entity"

// AuditRepository es el sumidero de auditoría (solo escritura desde el core).
// Create se invoca dentro de la misma transacción que la mutación de negocio
// que describe.
type AuditRepository interface {
	Create(entry *entity.AuditEntry) error
}
