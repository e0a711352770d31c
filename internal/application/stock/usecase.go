package stock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/ActivosTI-api/internal/application/dto"
	"github.com/jhoicas/ActivosTI-api/internal/domain"
	"github.com/jhoicas/ActivosTI-api/internal/domain/entity"
	"github.com/jhoicas/ActivosTI-api/internal/domain/repository"
)

// UseCase registra recepciones de compra e incrementa el libro mayor.
type UseCase struct {
	txRunner     TxRunner
	itemRepo     repository.CatalogItemRepository
	supplierRepo repository.SupplierRepository
	userRepo     repository.UserRepository
	stockRepo    repository.StockRepository
	batchRepo    repository.StockBatchRepository
}

// NewUseCase construye el caso de uso de recepción.
func NewUseCase(
	txRunner TxRunner,
	itemRepo repository.CatalogItemRepository,
	supplierRepo repository.SupplierRepository,
	userRepo repository.UserRepository,
	stockRepo repository.StockRepository,
	batchRepo repository.StockBatchRepository,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		itemRepo:     itemRepo,
		supplierRepo: supplierRepo,
		userRepo:     userRepo,
		stockRepo:    stockRepo,
		batchRepo:    batchRepo,
	}
}

// Receive crea StockReceived + StockBatch e incrementa el agregado del
// artículo por la misma cantidad, todo en una transacción. Falla con
// ErrNotFound si el artículo o el proveedor no existen.
func (uc *UseCase) Receive(ctx context.Context, receiverID string, in dto.ReceiveStockRequest) (*dto.ReceiveStockResponse, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.itemRepo.GetByID(in.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	supplier, err := uc.supplierRepo.GetByID(in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	receiver, err := uc.userRepo.GetByID(receiverID)
	if err != nil {
		return nil, err
	}
	if !receiver.IsActive() {
		return nil, domain.ErrUserNotFound
	}

	warrantyMonths := in.WarrantyMonths
	if warrantyMonths == 0 {
		warrantyMonths = item.WarrantyMonths
	}
	now := time.Now()
	received := &entity.StockReceived{
		ID:             uuid.New().String(),
		SupplierID:     in.SupplierID,
		PurchaseOrder:  in.PurchaseOrder,
		ItemID:         in.ItemID,
		Quantity:       in.Quantity,
		UnitCost:       in.UnitCost,
		WarrantyMonths: warrantyMonths,
		ReceivedByID:   receiverID,
		ReceivedAt:     now,
		CreatedAt:      now,
	}
	batch := &entity.StockBatch{
		ID:              uuid.New().String(),
		StockReceivedID: received.ID,
		ItemID:          in.ItemID,
		ReceivedQty:     in.Quantity,
		Remaining:       in.Quantity,
		WarrantyFrom:    now,
		WarrantyUntil:   now.AddDate(0, warrantyMonths, 0),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	var newQty int
	err = uc.txRunner.RunReceive(ctx, func(
		receivedRepo repository.StockReceivedRepository,
		batchRepo repository.StockBatchRepository,
		stockRepo repository.StockRepository,
		auditRepo repository.AuditRepository,
	) error {
		if err := receivedRepo.Create(received); err != nil {
			return err
		}
		if err := batchRepo.Create(batch); err != nil {
			return err
		}
		// Incremento atómico en SQL: en la primera recepción del artículo
		// no existe fila que bloquear, así que leer-luego-escribir perdería
		// una recepción concurrente.
		n, err := stockRepo.Increment(in.ItemID, in.Quantity)
		if err != nil {
			return err
		}
		newQty = n
		return auditRepo.Create(&entity.AuditEntry{
			ID:         uuid.New().String(),
			Action:     entity.AuditStockReceived,
			ActorID:    receiverID,
			EntityKind: "stock",
			EntityID:   batch.ID,
			Context:    item.Code,
			Metadata: map[string]any{
				"item_id":        in.ItemID,
				"supplier_id":    in.SupplierID,
				"purchase_order": in.PurchaseOrder,
				"quantity":       in.Quantity,
			},
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}
	return &dto.ReceiveStockResponse{
		StockReceivedID: received.ID,
		BatchID:         batch.ID,
		NewQuantity:     newQty,
	}, nil
}

// GetStock devuelve la existencia agregada de un artículo.
func (uc *UseCase) GetStock(itemID string) (*entity.Stock, error) {
	item, err := uc.itemRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	s, err := uc.stockRepo.Get(itemID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		// Artículo sin recepciones todavía: existencia cero.
		s = &entity.Stock{ItemID: itemID}
	}
	return s, nil
}

// ListBatches lista los lotes de un artículo (incluye agotados: histórico).
func (uc *UseCase) ListBatches(itemID string, limit, offset int) ([]*entity.StockBatch, error) {
	return uc.batchRepo.ListByItem(itemID, limit, offset)
}
