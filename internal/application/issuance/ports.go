package issuance

import (
	"context"

	"github.com/jhoicas/ActivosTI-api/internal/domain/repository"
)

// TxRunner ejecuta el flujo completo de despacho dentro de una sola
// transacción: verificación de precondiciones, decremento de stock, registro
// de despacho, materialización del activo y auditoría. La verificación de
// suficiencia y el decremento nunca quedan separados por una ventana en la
// que otra transacción pueda pasar su propia verificación.
type TxRunner interface {
	RunIssuance(ctx context.Context, fn func(
		reqRepo repository.RequisitionRepository,
		itemRepo repository.CatalogItemRepository,
		stockRepo repository.StockRepository,
		batchRepo repository.StockBatchRepository,
		receivedRepo repository.StockReceivedRepository,
		issuanceRepo repository.StockIssuanceRepository,
		assetRepo repository.InventoryAssetRepository,
		auditRepo repository.AuditRepository,
	) error) error
}
