package issuance

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/ActivosTI-api/internal/application/dto"
	"github.com/jhoicas/ActivosTI-api/internal/application/ports"
	"github.com/jhoicas/ActivosTI-api/internal/domain"
	"github.com/jhoicas/ActivosTI-api/internal/domain/catalog"
	"github.com/jhoicas/ActivosTI-api/internal/domain/entity"
	"github.com/jhoicas/ActivosTI-api/internal/domain/repository"
)

// Result resultado de un despacho. NotificationErrors no vacío significa
// éxito degradado: los datos quedaron confirmados pero alguna notificación
// falló.
type Result struct {
	Issuance           *entity.StockIssuance
	Asset              *entity.InventoryAsset
	Requisition        *entity.Requisition
	NotificationErrors []string
}

// UseCase orquesta el despacho de una requisición aprobada: transiciona a
// processed, descuenta el libro mayor y el lote, crea el registro de despacho
// y, solo para artículos fixed_asset, materializa el activo con su detalle de
// dispositivo. Todo en una sola transacción.
type UseCase struct {
	txRunner TxRunner
	userRepo repository.UserRepository
	notifier ports.Notifier
}

// NewUseCase construye el orquestador.
func NewUseCase(txRunner TxRunner, userRepo repository.UserRepository, notifier ports.Notifier) *UseCase {
	return &UseCase{txRunner: txRunner, userRepo: userRepo, notifier: notifier}
}

// Issue despacha la requisición contra el lote indicado. Precondiciones en
// orden (la primera falla gana, todas dentro de la tx):
//  1. requisición existe, no eliminada, en itd_approved
//  2. artículo del catálogo existe
//  3. agregado y lote con cantidad suficiente, lote no eliminado
//  4. el oficial que despacha resuelve a un usuario activo
//
// Un segundo despacho contra la misma requisición falla con
// ErrInvalidStateTransition: nunca se trata como idempotente.
func (uc *UseCase) Issue(ctx context.Context, requisitionID, officerID string, in dto.IssueRequisitionRequest) (*Result, error) {
	if in.Quantity <= 0 || in.ItemID == "" || in.BatchID == "" {
		return nil, domain.ErrInvalidInput
	}

	res := &Result{}
	now := time.Now()

	err := uc.txRunner.RunIssuance(ctx, func(
		reqRepo repository.RequisitionRepository,
		itemRepo repository.CatalogItemRepository,
		stockRepo repository.StockRepository,
		batchRepo repository.StockBatchRepository,
		receivedRepo repository.StockReceivedRepository,
		issuanceRepo repository.StockIssuanceRepository,
		assetRepo repository.InventoryAssetRepository,
		auditRepo repository.AuditRepository,
	) error {
		// 1. Requisición: bloqueo de fila y verificación de estado.
		req, err := reqRepo.GetForUpdate(requisitionID)
		if err != nil {
			return err
		}
		if req == nil {
			return domain.ErrNotFound
		}
		if req.IsDeleted() {
			return domain.ErrGone
		}
		if req.Status != entity.RequisitionITDApproved {
			return domain.ErrInvalidStateTransition
		}

		// 2. Artículo del catálogo (puede diferir del solicitado).
		item, err := itemRepo.GetByID(in.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}

		// 3. Suficiencia: agregado y lote, ambos bajo FOR UPDATE.
		stock, err := stockRepo.GetForUpdate(in.ItemID)
		if err != nil {
			return err
		}
		batch, err := batchRepo.GetForUpdate(in.BatchID)
		if err != nil {
			return err
		}
		if batch == nil {
			return domain.ErrNotFound
		}
		if batch.DeletedAt != nil || batch.ItemID != in.ItemID {
			return domain.ErrInsufficientStock
		}
		if stock == nil || stock.Quantity < in.Quantity || batch.Remaining < in.Quantity {
			return domain.ErrInsufficientStock
		}

		// 4. Oficial de almacén activo.
		officer, err := uc.userRepo.GetByID(officerID)
		if err != nil {
			return err
		}
		if !officer.IsActive() {
			return domain.ErrNotFound
		}

		// Efectos. Requisición → processed, fijando el artículo entregado.
		oldStatus := req.Status
		req.Status = entity.RequisitionProcessed
		req.ItemID = &in.ItemID
		req.IssuedByID = &officerID
		req.IssuedAt = &now
		req.UpdatedAt = now
		if err := reqRepo.Update(req); err != nil {
			return err
		}

		// Decremento agregado + lote en la misma tx, sin decremento parcial.
		stock.Quantity -= in.Quantity
		stock.UpdatedAt = now
		if err := stockRepo.Upsert(stock); err != nil {
			return err
		}
		batch.Remaining -= in.Quantity
		if err := batchRepo.UpdateRemaining(batch.ID, batch.Remaining); err != nil {
			return err
		}

		issuance := &entity.StockIssuance{
			ID:            uuid.New().String(),
			RequisitionID: req.ID,
			BatchID:       batch.ID,
			ItemID:        item.ID,
			Quantity:      in.Quantity,
			IssuedByID:    officerID,
			IssuedAt:      now,
			Note:          in.Note,
			CreatedAt:     now,
		}

		// Materialización condicional del activo fijo.
		if catalog.Classify(item) == entity.ClassificationFixedAsset {
			asset, err := uc.buildAsset(req, item, batch, receivedRepo, assetRepo, now)
			if err != nil {
				return err
			}
			if err := assetRepo.Create(asset); err != nil {
				return err
			}
			issuance.AssetID = &asset.ID
			res.Asset = asset
		}

		if err := issuanceRepo.Create(issuance); err != nil {
			return err
		}
		res.Issuance = issuance
		res.Requisition = req

		// Notificaciones best-effort: los datos ya están mutados; los fallos
		// se registran en la auditoría y nunca revierten la transacción.
		res.NotificationErrors = uc.notify(ctx, req, officer, item, issuance, res.Asset)

		meta := map[string]any{
			"item_id":  item.ID,
			"quantity": in.Quantity,
			"batch_id": batch.ID,
		}
		if res.Asset != nil {
			meta["asset_id"] = res.Asset.ID
			meta["asset_tag"] = res.Asset.AssetTag
		}
		if len(res.NotificationErrors) > 0 {
			meta["notification_failures"] = res.NotificationErrors
		}
		newStatus := req.Status
		return auditRepo.Create(&entity.AuditEntry{
			ID:            uuid.New().String(),
			Action:        entity.AuditStockIssued,
			ActorID:       officerID,
			SubjectUserID: &req.RequesterID,
			EntityKind:    "requisition",
			EntityID:      req.ID,
			OldState:      &oldStatus,
			NewState:      &newStatus,
			Context:       req.Department,
			Metadata:      meta,
			CreatedAt:     now,
		})
	})
	if err != nil {
		return nil, err
	}
	if len(res.NotificationErrors) > 0 {
		return res, domain.ErrNotificationFailure
	}
	return res, nil
}

// buildAsset materializa el activo: etiqueta de secuencia monótona, contexto
// de la requisición y términos de garantía/compra de la recepción de origen.
func (uc *UseCase) buildAsset(
	req *entity.Requisition,
	item *entity.CatalogItem,
	batch *entity.StockBatch,
	receivedRepo repository.StockReceivedRepository,
	assetRepo repository.InventoryAssetRepository,
	now time.Time,
) (*entity.InventoryAsset, error) {
	received, err := receivedRepo.GetByID(batch.StockReceivedID)
	if err != nil {
		return nil, err
	}
	if received == nil {
		return nil, domain.ErrNotFound
	}
	tag, err := assetRepo.NextAssetTag()
	if err != nil {
		return nil, err
	}
	detail, err := catalog.BuildDeviceDetail(item)
	if err != nil {
		return nil, err
	}
	warrantyUntil := received.ReceivedAt.AddDate(0, received.WarrantyMonths, 0)
	asset := &entity.InventoryAsset{
		ID:              uuid.New().String(),
		AssetTag:        tag,
		ItemID:          item.ID,
		StockReceivedID: received.ID,
		RequisitionID:   &req.ID,
		AssignedUserID:  &req.RequesterID,
		Department:      req.Department,
		Unit:            req.Unit,
		Room:            req.Room,
		PurchaseDate:    received.ReceivedAt,
		WarrantyUntil:   warrantyUntil,
		Status:          entity.AssetActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if detail != nil {
		detail.AssetID = asset.ID
		asset.Detail = detail
	}
	return asset, nil
}

// notify intenta las dos notificaciones (solicitante y oficial) y devuelve
// los fallos en orden de intento.
func (uc *UseCase) notify(ctx context.Context, req *entity.Requisition, officer *entity.User, item *entity.CatalogItem, issuance *entity.StockIssuance, asset *entity.InventoryAsset) []string {
	if uc.notifier == nil {
		return nil
	}
	params := map[string]string{
		"code":     req.Code,
		"item":     item.Name,
		"quantity": fmt.Sprintf("%d", issuance.Quantity),
	}
	if asset != nil {
		params["asset_tag"] = asset.AssetTag
	}
	var failures []string
	requester, err := uc.userRepo.GetByID(req.RequesterID)
	if err != nil || requester == nil {
		failures = append(failures, "requester: destinatario no resuelto")
	} else if err := uc.notifier.Send(ctx, requester.Email, ports.TemplateStockIssued, params); err != nil {
		failures = append(failures, fmt.Sprintf("requester: %v", err))
	}
	if err := uc.notifier.Send(ctx, officer.Email, ports.TemplateStockIssued, params); err != nil {
		failures = append(failures, fmt.Sprintf("officer: %v", err))
	}
	return failures
}
