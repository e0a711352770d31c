package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/ActivosTI-api/internal/application/dto"
	"github.com/jhoicas/ActivosTI-api/internal/domain"
	"github.com/jhoicas/ActivosTI-api/internal/domain/entity"
	"github.com/jhoicas/ActivosTI-api/internal/domain/repository"
)

// AssetTxRunner ejecuta mutaciones de ciclo de vida de activos con su entrada
// de auditoría en la misma transacción.
type AssetTxRunner interface {
	RunAsset(ctx context.Context, fn func(
		assetRepo repository.InventoryAssetRepository,
		auditRepo repository.AuditRepository,
	) error) error
}

// AssetUseCase ciclo de vida de activos fijos después del despacho:
// consulta, marca de obsolescencia y baja definitiva.
type AssetUseCase struct {
	txRunner AssetTxRunner
	repo     repository.InventoryAssetRepository
}

// NewAssetUseCase construye el caso de uso.
func NewAssetUseCase(txRunner AssetTxRunner, repo repository.InventoryAssetRepository) *AssetUseCase {
	return &AssetUseCase{txRunner: txRunner, repo: repo}
}

// GetByID obtiene un activo por ID.
func (uc *AssetUseCase) GetByID(id string) (*dto.AssetResponse, error) {
	asset, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, domain.ErrNotFound
	}
	return toAssetResponse(asset), nil
}

// GetByTag obtiene un activo por etiqueta.
func (uc *AssetUseCase) GetByTag(tag string) (*dto.AssetResponse, error) {
	asset, err := uc.repo.GetByTag(tag)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, domain.ErrNotFound
	}
	return toAssetResponse(asset), nil
}

// List lista activos con filtros.
func (uc *AssetUseCase) List(filter repository.AssetFilter) ([]dto.AssetResponse, error) {
	list, err := uc.repo.List(filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AssetResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *toAssetResponse(a))
	}
	return items, nil
}

// MarkObsolete marca un activo activo como obsoleto: active → obsolete.
func (uc *AssetUseCase) MarkObsolete(ctx context.Context, assetID, actorID string) (*dto.AssetResponse, error) {
	return uc.transition(ctx, assetID, actorID, entity.AssetActive, entity.AssetObsolete,
		entity.AuditAssetObsoleted, nil)
}

// Dispose da de baja definitiva un activo: active/obsolete → disposed.
// Registra fecha, método y razón de la baja.
func (uc *AssetUseCase) Dispose(ctx context.Context, assetID, actorID string, in dto.DisposeAssetRequest) (*dto.AssetResponse, error) {
	if strings.TrimSpace(in.Method) == "" || strings.TrimSpace(in.Reason) == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.transition(ctx, assetID, actorID, "", entity.AssetDisposed,
		entity.AuditAssetDisposed, &in)
}

func (uc *AssetUseCase) transition(ctx context.Context, assetID, actorID, fromStatus, toStatus, auditAction string, disposal *dto.DisposeAssetRequest) (*dto.AssetResponse, error) {
	var asset *entity.InventoryAsset
	err := uc.txRunner.RunAsset(ctx, func(assetRepo repository.InventoryAssetRepository, auditRepo repository.AuditRepository) error {
		var err error
		asset, err = assetRepo.GetByID(assetID)
		if err != nil {
			return err
		}
		if asset == nil {
			return domain.ErrNotFound
		}
		if asset.Status == entity.AssetDisposed {
			return domain.ErrInvalidStateTransition
		}
		if fromStatus != "" && asset.Status != fromStatus {
			return domain.ErrInvalidStateTransition
		}
		old := asset.Status
		now := time.Now()
		asset.Status = toStatus
		asset.UpdatedAt = now
		if disposal != nil {
			asset.DisposedAt = &now
			asset.DisposalMethod = &disposal.Method
			asset.DisposalReason = &disposal.Reason
		}
		if err := assetRepo.Update(asset); err != nil {
			return err
		}
		meta := map[string]any{"asset_tag": asset.AssetTag}
		if disposal != nil {
			meta["method"] = disposal.Method
			meta["reason"] = disposal.Reason
		}
		newStatus := asset.Status
		return auditRepo.Create(&entity.AuditEntry{
			ID:            uuid.New().String(),
			Action:        auditAction,
			ActorID:       actorID,
			SubjectUserID: asset.AssignedUserID,
			EntityKind:    "asset",
			EntityID:      asset.ID,
			OldState:      &old,
			NewState:      &newStatus,
			Context:       asset.Department,
			Metadata:      meta,
			CreatedAt:     now,
		})
	})
	if err != nil {
		return nil, err
	}
	return toAssetResponse(asset), nil
}

func toAssetResponse(a *entity.InventoryAsset) *dto.AssetResponse {
	if a == nil {
		return nil
	}
	resp := &dto.AssetResponse{
		ID:             a.ID,
		AssetTag:       a.AssetTag,
		ItemID:         a.ItemID,
		RequisitionID:  a.RequisitionID,
		AssignedUserID: a.AssignedUserID,
		Department:     a.Department,
		Unit:           a.Unit,
		Room:           a.Room,
		PurchaseDate:   a.PurchaseDate,
		WarrantyUntil:  a.WarrantyUntil,
		Status:         a.Status,
		DisposedAt:     a.DisposedAt,
		DisposalMethod: a.DisposalMethod,
		DisposalReason: a.DisposalReason,
		CreatedAt:      a.CreatedAt,
	}
	if a.Detail != nil {
		var payload any
		switch a.Detail.Kind {
		case entity.DetailLaptop:
			payload = a.Detail.Laptop
		case entity.DetailDesktop:
			payload = a.Detail.Desktop
		case entity.DetailPrinter:
			payload = a.Detail.Printer
		case entity.DetailUPS:
			payload = a.Detail.UPS
		case entity.DetailOther:
			payload = a.Detail.Other
		}
		resp.Detail = &dto.DeviceDetailResponse{Kind: string(a.Detail.Kind), Payload: payload}
	}
	return resp
}
