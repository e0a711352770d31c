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

// TicketTxRunner ejecuta mutaciones de tickets con auditoría en la misma
// transacción.
type TicketTxRunner interface {
	RunTicket(ctx context.Context, fn func(
		ticketRepo repository.MaintenanceTicketRepository,
		auditRepo repository.AuditRepository,
	) error) error
}

// MaintenanceUseCase tickets de mantenimiento sobre activos fijos. Los
// tickets solo referencian activos: la identidad estable del activo es lo que
// permite el historial de servicio.
type MaintenanceUseCase struct {
	txRunner  TicketTxRunner
	repo      repository.MaintenanceTicketRepository
	assetRepo repository.InventoryAssetRepository
	userRepo  repository.UserRepository
}

// NewMaintenanceUseCase construye el caso de uso.
func NewMaintenanceUseCase(
	txRunner TicketTxRunner,
	repo repository.MaintenanceTicketRepository,
	assetRepo repository.InventoryAssetRepository,
	userRepo repository.UserRepository,
) *MaintenanceUseCase {
	return &MaintenanceUseCase{txRunner: txRunner, repo: repo, assetRepo: assetRepo, userRepo: userRepo}
}

// Create abre un ticket sobre un activo existente y no dado de baja.
func (uc *MaintenanceUseCase) Create(ctx context.Context, reporterID string, in dto.CreateTicketRequest) (*dto.TicketResponse, error) {
	asset, err := uc.assetRepo.GetByID(in.AssetID)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, domain.ErrNotFound
	}
	if asset.Status == entity.AssetDisposed {
		return nil, domain.ErrInvalidStateTransition
	}
	priority := in.Priority
	if priority == "" {
		priority = entity.TicketPriorityMedium
	}
	now := time.Now()
	ticket := &entity.MaintenanceTicket{
		ID:           uuid.New().String(),
		AssetID:      in.AssetID,
		IssueKind:    in.IssueKind,
		Description:  in.Description,
		Priority:     priority,
		ReportedByID: reporterID,
		Status:       entity.TicketOpen,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err = uc.txRunner.RunTicket(ctx, func(ticketRepo repository.MaintenanceTicketRepository, auditRepo repository.AuditRepository) error {
		if err := ticketRepo.Create(ticket); err != nil {
			return err
		}
		newState := entity.TicketOpen
		return auditRepo.Create(&entity.AuditEntry{
			ID:         uuid.New().String(),
			Action:     entity.AuditTicketCreated,
			ActorID:    reporterID,
			EntityKind: "ticket",
			EntityID:   ticket.ID,
			NewState:   &newState,
			Context:    asset.Department,
			Metadata:   map[string]any{"asset_tag": asset.AssetTag, "priority": priority},
			CreatedAt:  now,
		})
	})
	if err != nil {
		return nil, err
	}
	return toTicketResponse(ticket), nil
}

// Assign asigna un técnico activo al ticket abierto.
func (uc *MaintenanceUseCase) Assign(ctx context.Context, ticketID string, in dto.AssignTicketRequest) (*dto.TicketResponse, error) {
	technician, err := uc.userRepo.GetByID(in.TechnicianID)
	if err != nil {
		return nil, err
	}
	if !technician.IsActive() || technician.Role != entity.RoleTecnico {
		return nil, domain.ErrInvalidInput
	}
	ticket, err := uc.repo.GetByID(ticketID)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, domain.ErrNotFound
	}
	if ticket.Status != entity.TicketOpen {
		return nil, domain.ErrInvalidStateTransition
	}
	ticket.TechnicianID = &in.TechnicianID
	ticket.UpdatedAt = time.Now()
	if err := uc.repo.Update(ticket); err != nil {
		return nil, err
	}
	return toTicketResponse(ticket), nil
}

// Resolve cierra el ticket con resolución: open → resolved.
func (uc *MaintenanceUseCase) Resolve(ctx context.Context, ticketID, actorID string, in dto.ResolveTicketRequest) (*dto.TicketResponse, error) {
	resolution := strings.TrimSpace(in.Resolution)
	if resolution == "" {
		return nil, domain.ErrInvalidInput
	}
	var ticket *entity.MaintenanceTicket
	err := uc.txRunner.RunTicket(ctx, func(ticketRepo repository.MaintenanceTicketRepository, auditRepo repository.AuditRepository) error {
		var err error
		ticket, err = ticketRepo.GetByID(ticketID)
		if err != nil {
			return err
		}
		if ticket == nil {
			return domain.ErrNotFound
		}
		if ticket.Status != entity.TicketOpen {
			return domain.ErrInvalidStateTransition
		}
		now := time.Now()
		old := ticket.Status
		ticket.Status = entity.TicketResolved
		ticket.Resolution = &resolution
		ticket.ResolvedAt = &now
		ticket.UpdatedAt = now
		if err := ticketRepo.Update(ticket); err != nil {
			return err
		}
		newStatus := ticket.Status
		return auditRepo.Create(&entity.AuditEntry{
			ID:         uuid.New().String(),
			Action:     entity.AuditTicketResolved,
			ActorID:    actorID,
			EntityKind: "ticket",
			EntityID:   ticket.ID,
			OldState:   &old,
			NewState:   &newStatus,
			Metadata:   map[string]any{"resolution": resolution},
			CreatedAt:  now,
		})
	})
	if err != nil {
		return nil, err
	}
	return toTicketResponse(ticket), nil
}

// GetByID obtiene un ticket por ID.
func (uc *MaintenanceUseCase) GetByID(id string) (*dto.TicketResponse, error) {
	ticket, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, domain.ErrNotFound
	}
	return toTicketResponse(ticket), nil
}

// List lista tickets por estado con paginación.
func (uc *MaintenanceUseCase) List(status string, limit, offset int) ([]dto.TicketResponse, error) {
	list, err := uc.repo.List(status, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TicketResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *toTicketResponse(t))
	}
	return items, nil
}

// ListByAsset historial de servicio de un activo.
func (uc *MaintenanceUseCase) ListByAsset(assetID string, limit, offset int) ([]dto.TicketResponse, error) {
	list, err := uc.repo.ListByAsset(assetID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TicketResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *toTicketResponse(t))
	}
	return items, nil
}

func toTicketResponse(t *entity.MaintenanceTicket) *dto.TicketResponse {
	if t == nil {
		return nil
	}
	return &dto.TicketResponse{
		ID:           t.ID,
		AssetID:      t.AssetID,
		IssueKind:    t.IssueKind,
		Description:  t.Description,
		Priority:     t.Priority,
		ReportedByID: t.ReportedByID,
		TechnicianID: t.TechnicianID,
		Status:       t.Status,
		Resolution:   t.Resolution,
		ResolvedAt:   t.ResolvedAt,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}
