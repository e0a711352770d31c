package requisition

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/ActivosTI-api/internal/application/dto"
	"github.com/jhoicas/ActivosTI-api/internal/application/ports"
	"github.com/jhoicas/ActivosTI-api/internal/domain"
	"github.com/jhoicas/ActivosTI-api/internal/domain/entity"
	"github.com/jhoicas/ActivosTI-api/internal/domain/repository"
	"github.com/jhoicas/ActivosTI-api/pkg/logger"
)

// UseCase gobierna la máquina de estados de las requisiciones: creación,
// envío a aprobación y las transiciones aprobar/rechazar en dos etapas.
// Cada transición corre en una transacción con bloqueo de fila (FOR UPDATE)
// y escribe su instantánea de auditoría en la misma tx.
type UseCase struct {
	txRunner TxRunner
	reqRepo  repository.RequisitionRepository
	userRepo repository.UserRepository
	itemRepo repository.CatalogItemRepository
	notifier ports.Notifier
	log      *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	reqRepo repository.RequisitionRepository,
	userRepo repository.UserRepository,
	itemRepo repository.CatalogItemRepository,
	notifier ports.Notifier,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner: txRunner,
		reqRepo:  reqRepo,
		userRepo: userRepo,
		itemRepo: itemRepo,
		notifier: notifier,
		log:      log,
	}
}

// Create crea una requisición en estado submitted a nombre del solicitante.
func (uc *UseCase) Create(ctx context.Context, requesterID string, in dto.CreateRequisitionRequest) (*entity.Requisition, error) {
	requester, err := uc.userRepo.GetByID(requesterID)
	if err != nil {
		return nil, err
	}
	if !requester.IsActive() {
		return nil, domain.ErrUserNotFound
	}
	if in.Quantity <= 0 || strings.TrimSpace(in.Description) == "" {
		return nil, domain.ErrInvalidInput
	}
	var itemID *string
	if in.ItemID != "" {
		item, err := uc.itemRepo.GetByID(in.ItemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, domain.ErrNotFound
		}
		itemID = &in.ItemID
	}
	urgency := in.Urgency
	if urgency == "" {
		urgency = entity.UrgencyMedium
	}
	now := time.Now()
	req := &entity.Requisition{
		ID:          uuid.New().String(),
		RequesterID: requesterID,
		ItemID:      itemID,
		Description: in.Description,
		Quantity:    in.Quantity,
		Urgency:     urgency,
		Department:  in.Department,
		Unit:        in.Unit,
		Room:        in.Room,
		Status:      entity.RequisitionSubmitted,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err = uc.txRunner.Run(ctx, func(reqRepo repository.RequisitionRepository, auditRepo repository.AuditRepository) error {
		if err := reqRepo.Create(req); err != nil {
			return err
		}
		newState := entity.RequisitionSubmitted
		return auditRepo.Create(&entity.AuditEntry{
			ID:         uuid.New().String(),
			Action:     entity.AuditRequisitionCreated,
			ActorID:    requesterID,
			EntityKind: "requisition",
			EntityID:   req.ID,
			NewState:   &newState,
			Context:    req.Department,
			Metadata:   map[string]any{"code": req.Code, "quantity": req.Quantity},
			CreatedAt:  now,
		})
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

// Submit envía la requisición a aprobación: solo el solicitante puede hacerlo,
// liga los dos aprobadores y mueve submitted → pending_dept_approval.
func (uc *UseCase) Submit(ctx context.Context, requisitionID, actorID string, in dto.SubmitRequisitionRequest) (*entity.Requisition, error) {
	deptApprover, err := uc.userRepo.GetByID(in.DeptApproverID)
	if err != nil {
		return nil, err
	}
	if !deptApprover.IsActive() || deptApprover.Role != entity.RoleJefeArea {
		return nil, domain.ErrInvalidInput
	}
	itdApprover, err := uc.userRepo.GetByID(in.ITDApproverID)
	if err != nil {
		return nil, err
	}
	if !itdApprover.IsActive() || itdApprover.Role != entity.RoleAprobadorTI {
		return nil, domain.ErrInvalidInput
	}

	var req *entity.Requisition
	err = uc.txRunner.Run(ctx, func(reqRepo repository.RequisitionRepository, auditRepo repository.AuditRepository) error {
		var err error
		req, err = uc.lockRequisition(reqRepo, requisitionID)
		if err != nil {
			return err
		}
		if req.Status != entity.RequisitionSubmitted {
			return domain.ErrInvalidStateTransition
		}
		if req.RequesterID != actorID {
			return domain.ErrUnauthorized
		}
		old := req.Status
		req.DeptApproverID = &in.DeptApproverID
		req.ITDApproverID = &in.ITDApproverID
		req.Status = entity.RequisitionPendingDeptApproval
		req.UpdatedAt = time.Now()
		if err := reqRepo.Update(req); err != nil {
			return err
		}
		return uc.auditTransition(auditRepo, entity.AuditRequisitionSubmitted, actorID, req, old, nil)
	})
	if err != nil {
		return nil, err
	}
	uc.notifyBestEffort(ctx, deptApprover.Email, ports.TemplateRequisitionSubmitted, map[string]string{
		"code":        req.Code,
		"department":  req.Department,
		"description": req.Description,
		"quantity":    fmt.Sprintf("%d", req.Quantity),
		"urgency":     req.Urgency,
	})
	return req, nil
}

// ApproveDept aprueba en la etapa de departamento:
// pending_dept_approval → pending_itd_approval. El actor debe ser exactamente
// el aprobador ligado a la requisición.
func (uc *UseCase) ApproveDept(ctx context.Context, requisitionID, actorID string) (*entity.Requisition, error) {
	return uc.approve(ctx, requisitionID, actorID,
		entity.RequisitionPendingDeptApproval, entity.RequisitionPendingITDApproval,
		entity.AuditRequisitionDeptApproved,
		func(r *entity.Requisition) *string { return r.DeptApproverID },
	)
}

// ApproveITD aprueba en la etapa de TI: pending_itd_approval → itd_approved.
func (uc *UseCase) ApproveITD(ctx context.Context, requisitionID, actorID string) (*entity.Requisition, error) {
	return uc.approve(ctx, requisitionID, actorID,
		entity.RequisitionPendingITDApproval, entity.RequisitionITDApproved,
		entity.AuditRequisitionITDApproved,
		func(r *entity.Requisition) *string { return r.ITDApproverID },
	)
}

func (uc *UseCase) approve(
	ctx context.Context,
	requisitionID, actorID, fromStatus, toStatus, auditAction string,
	boundApprover func(*entity.Requisition) *string,
) (*entity.Requisition, error) {
	var req *entity.Requisition
	err := uc.txRunner.Run(ctx, func(reqRepo repository.RequisitionRepository, auditRepo repository.AuditRepository) error {
		var err error
		req, err = uc.lockRequisition(reqRepo, requisitionID)
		if err != nil {
			return err
		}
		if req.Status != fromStatus {
			return domain.ErrInvalidStateTransition
		}
		approver := boundApprover(req)
		if approver == nil || *approver != actorID {
			return domain.ErrUnauthorized
		}
		old := req.Status
		req.Status = toStatus
		req.UpdatedAt = time.Now()
		if err := reqRepo.Update(req); err != nil {
			return err
		}
		return uc.auditTransition(auditRepo, auditAction, actorID, req, old, nil)
	})
	if err != nil {
		return nil, err
	}
	uc.notifyRequester(ctx, req, ports.TemplateRequisitionApproved)
	return req, nil
}

// Decline rechaza la requisición en cualquiera de las dos etapas pendientes.
// La razón es obligatoria y se valida antes de cualquier mutación.
func (uc *UseCase) Decline(ctx context.Context, requisitionID, actorID string, in dto.DeclineRequisitionRequest) (*entity.Requisition, error) {
	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		return nil, domain.ErrInvalidInput
	}
	var req *entity.Requisition
	err := uc.txRunner.Run(ctx, func(reqRepo repository.RequisitionRepository, auditRepo repository.AuditRepository) error {
		var err error
		req, err = uc.lockRequisition(reqRepo, requisitionID)
		if err != nil {
			return err
		}
		var toStatus string
		var approver *string
		switch req.Status {
		case entity.RequisitionPendingDeptApproval:
			toStatus = entity.RequisitionDeptDeclined
			approver = req.DeptApproverID
		case entity.RequisitionPendingITDApproval:
			toStatus = entity.RequisitionITDDeclined
			approver = req.ITDApproverID
		default:
			return domain.ErrInvalidStateTransition
		}
		if approver == nil || *approver != actorID {
			return domain.ErrUnauthorized
		}
		old := req.Status
		req.Status = toStatus
		req.DeclineReason = &reason
		req.UpdatedAt = time.Now()
		if err := reqRepo.Update(req); err != nil {
			return err
		}
		return uc.auditTransition(auditRepo, entity.AuditRequisitionDeclined, actorID, req, old, &reason)
	})
	if err != nil {
		return nil, err
	}
	uc.notifyRequester(ctx, req, ports.TemplateRequisitionDeclined)
	return req, nil
}

// GetByID obtiene una requisición visible (excluye soft-deleted).
func (uc *UseCase) GetByID(id string) (*entity.Requisition, error) {
	req, err := uc.reqRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, domain.ErrNotFound
	}
	return req, nil
}

// List lista requisiciones con filtros.
func (uc *UseCase) List(filter repository.RequisitionFilter) ([]*entity.Requisition, error) {
	return uc.reqRepo.List(filter)
}

// SoftDelete marca la requisición como eliminada; después no acepta transiciones.
func (uc *UseCase) SoftDelete(id string) error {
	req, err := uc.reqRepo.GetByID(id)
	if err != nil {
		return err
	}
	if req == nil {
		return domain.ErrNotFound
	}
	return uc.reqRepo.SoftDelete(id)
}

// lockRequisition obtiene la fila con FOR UPDATE y resuelve no-existencia y
// soft delete a sus errores de dominio.
func (uc *UseCase) lockRequisition(reqRepo repository.RequisitionRepository, id string) (*entity.Requisition, error) {
	req, err := reqRepo.GetForUpdate(id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, domain.ErrNotFound
	}
	if req.IsDeleted() {
		return nil, domain.ErrGone
	}
	return req, nil
}

func (uc *UseCase) auditTransition(auditRepo repository.AuditRepository, action, actorID string, req *entity.Requisition, oldStatus string, reason *string) error {
	meta := map[string]any{"code": req.Code}
	if reason != nil {
		meta["reason"] = *reason
	}
	newStatus := req.Status
	return auditRepo.Create(&entity.AuditEntry{
		ID:            uuid.New().String(),
		Action:        action,
		ActorID:       actorID,
		SubjectUserID: &req.RequesterID,
		EntityKind:    "requisition",
		EntityID:      req.ID,
		OldState:      &oldStatus,
		NewState:      &newStatus,
		Context:       req.Department,
		Metadata:      meta,
		CreatedAt:     time.Now(),
	})
}

// notifyRequester envía la notificación al solicitante, best-effort: el fallo
// solo se registra en el log, nunca afecta la transición ya confirmada.
func (uc *UseCase) notifyRequester(ctx context.Context, req *entity.Requisition, template string) {
	requester, err := uc.userRepo.GetByID(req.RequesterID)
	if err != nil || requester == nil {
		return
	}
	params := map[string]string{
		"code":   req.Code,
		"status": req.Status,
	}
	if req.DeclineReason != nil {
		params["reason"] = *req.DeclineReason
	}
	uc.notifyBestEffort(ctx, requester.Email, template, params)
}

func (uc *UseCase) notifyBestEffort(ctx context.Context, recipient, template string, params map[string]string) {
	if uc.notifier == nil || recipient == "" {
		return
	}
	if err := uc.notifier.Send(ctx, recipient, template, params); err != nil && uc.log != nil {
		uc.log.Warn().Err(err).Str("template", template).Msg("notificación fallida")
	}
}
