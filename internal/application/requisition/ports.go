package requisition

import (
	"context"

	"github.com/jhoicas/ActivosTI-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la lectura del estado de la
// requisición (FOR UPDATE), su actualización condicional y la entrada de
// auditoría sean atómicas.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		reqRepo repository.RequisitionRepository,
		auditRepo repository.AuditRepository,
	) error) error
}
