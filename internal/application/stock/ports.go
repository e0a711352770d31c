package stock

import (
	"context"

	"github.com/jhoicas/ActivosTI-api/internal/domain/repository"
)

// TxRunner ejecuta la recepción de stock dentro de una transacción: registro
// de compra, lote, incremento del agregado y auditoría, o nada.
type TxRunner interface {
	RunReceive(ctx context.Context, fn func(
		receivedRepo repository.StockReceivedRepository,
		batchRepo repository.StockBatchRepository,
		stockRepo repository.StockRepository,
		auditRepo repository.AuditRepository,
	) error) error
}
