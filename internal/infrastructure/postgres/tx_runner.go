package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/ActivosTI-api/internal/application/issuance"
	"github.com/jhoicas/ActivosTI-api/internal/application/requisition"
	"github.com/jhoicas/ActivosTI-api/internal/application/stock"
	"github.com/jhoicas/ActivosTI-api/internal/application/usecase"
	"github.com/jhoicas/ActivosTI-api/internal/domain/repository"
)

// Ensure TxRunner implementa los puertos transaccionales de la aplicación.
var _ requisition.TxRunner = (*TxRunner)(nil)
var _ issuance.TxRunner = (*TxRunner)(nil)
var _ stock.TxRunner = (*TxRunner)(nil)
var _ usecase.AssetTxRunner = (*TxRunner)(nil)
var _ usecase.TicketTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL, con
// repositorios atados a la tx. Commit si fn devuelve nil, Rollback si no.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

func (r *TxRunner) inTx(ctx context.Context, fn func(q Querier) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Run ejecuta una transición de requisición (estado + auditoría) en una tx.
func (r *TxRunner) Run(ctx context.Context, fn func(
	reqRepo repository.RequisitionRepository,
	auditRepo repository.AuditRepository,
) error) error {
	return r.inTx(ctx, func(q Querier) error {
		return fn(NewRequisitionRepository(q), NewAuditRepository(q))
	})
}

// RunIssuance ejecuta el flujo completo de despacho en una tx: requisición,
// catálogo, libro mayor, lote, recepción de origen, despacho, activo y
// auditoría comparten la misma transacción.
func (r *TxRunner) RunIssuance(ctx context.Context, fn func(
	reqRepo repository.RequisitionRepository,
	itemRepo repository.CatalogItemRepository,
	stockRepo repository.StockRepository,
	batchRepo repository.StockBatchRepository,
	receivedRepo repository.StockReceivedRepository,
	issuanceRepo repository.StockIssuanceRepository,
	assetRepo repository.InventoryAssetRepository,
	auditRepo repository.AuditRepository,
) error) error {
	return r.inTx(ctx, func(q Querier) error {
		return fn(
			NewRequisitionRepository(q),
			NewCatalogItemRepository(q),
			NewStockRepository(q),
			NewStockBatchRepository(q),
			NewStockReceivedRepository(q),
			NewStockIssuanceRepository(q),
			NewInventoryAssetRepository(q),
			NewAuditRepository(q),
		)
	})
}

// RunReceive ejecuta la recepción de stock (compra + lote + incremento +
// auditoría) en una tx.
func (r *TxRunner) RunReceive(ctx context.Context, fn func(
	receivedRepo repository.StockReceivedRepository,
	batchRepo repository.StockBatchRepository,
	stockRepo repository.StockRepository,
	auditRepo repository.AuditRepository,
) error) error {
	return r.inTx(ctx, func(q Querier) error {
		return fn(
			NewStockReceivedRepository(q),
			NewStockBatchRepository(q),
			NewStockRepository(q),
			NewAuditRepository(q),
		)
	})
}

// RunAsset ejecuta una mutación de ciclo de vida de activo en una tx.
func (r *TxRunner) RunAsset(ctx context.Context, fn func(
	assetRepo repository.InventoryAssetRepository,
	auditRepo repository.AuditRepository,
) error) error {
	return r.inTx(ctx, func(q Querier) error {
		return fn(NewInventoryAssetRepository(q), NewAuditRepository(q))
	})
}

// RunTicket ejecuta una mutación de ticket de mantenimiento en una tx.
func (r *TxRunner) RunTicket(ctx context.Context, fn func(
	ticketRepo repository.MaintenanceTicketRepository,
	auditRepo repository.AuditRepository,
) error) error {
	return r.inTx(ctx, func(q Querier) error {
		return fn(NewMaintenanceTicketRepository(q), NewAuditRepository(q))
	})
}
