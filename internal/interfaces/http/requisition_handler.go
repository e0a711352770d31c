package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/ActivosTI-api/internal/application/dto"
	"github.com/jhoicas/ActivosTI-api/internal/application/requisition"
	"github.com/jhoicas/ActivosTI-api/internal/domain/entity"
	"github.com/jhoicas/ActivosTI-api/internal/domain/repository"
)

// RequisitionHandler maneja el ciclo de vida de las requisiciones (protegido).
type RequisitionHandler struct {
	uc *requisition.UseCase
}

// NewRequisitionHandler construye el handler.
func NewRequisitionHandler(uc *requisition.UseCase) *RequisitionHandler {
	return &RequisitionHandler{uc: uc}
}

// Create godoc
// @Summary      Crear requisición
// @Tags         requisitions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRequisitionRequest  true  "Datos de la requisición"
// @Success      201   {object}  dto.RequisitionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/requisitions [post]
func (h *RequisitionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRequisitionRequest
	if err := parseAndValidate(c, &in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	req, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toRequisitionResponse(req))
}

// Submit godoc
// @Summary      Enviar requisición a aprobación
// @Tags         requisitions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la requisición"
// @Param        body  body  dto.SubmitRequisitionRequest  true  "Aprobadores"
// @Success      200   {object}  dto.RequisitionResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/requisitions/{id}/submit [post]
func (h *RequisitionHandler) Submit(c *fiber.Ctx) error {
	var in dto.SubmitRequisitionRequest
	if err := parseAndValidate(c, &in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	req, err := h.uc.Submit(c.Context(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(toRequisitionResponse(req))
}

// ApproveDept godoc
// @Summary      Aprobar como jefe de área
// @Tags         requisitions
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la requisición"
// @Success      200  {object}  dto.RequisitionResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/requisitions/{id}/approve-dept [post]
func (h *RequisitionHandler) ApproveDept(c *fiber.Ctx) error {
	req, err := h.uc.ApproveDept(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(toRequisitionResponse(req))
}

// ApproveITD godoc
// @Summary      Aprobar como departamento de TI
// @Tags         requisitions
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la requisición"
// @Success      200  {object}  dto.RequisitionResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/requisitions/{id}/approve-itd [post]
func (h *RequisitionHandler) ApproveITD(c *fiber.Ctx) error {
	req, err := h.uc.ApproveITD(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(toRequisitionResponse(req))
}

// Decline godoc
// @Summary      Rechazar requisición
// @Tags         requisitions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la requisición"
// @Param        body  body  dto.DeclineRequisitionRequest  true  "Motivo del rechazo"
// @Success      200   {object}  dto.RequisitionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/requisitions/{id}/decline [post]
func (h *RequisitionHandler) Decline(c *fiber.Ctx) error {
	var in dto.DeclineRequisitionRequest
	if err := parseAndValidate(c, &in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	req, err := h.uc.Decline(c.Context(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(toRequisitionResponse(req))
}

// GetByID godoc
// @Summary      Obtener requisición por ID
// @Tags         requisitions
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la requisición"
// @Success      200  {object}  dto.RequisitionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      410  {object}  dto.ErrorResponse
// @Router       /api/requisitions/{id} [get]
func (h *RequisitionHandler) GetByID(c *fiber.Ctx) error {
	req, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(toRequisitionResponse(req))
}

// List godoc
// @Summary      Listar requisiciones
// @Tags         requisitions
// @Security     Bearer
// @Produce      json
// @Param        status      query  string  false  "Filtrar por estado"
// @Param        requester   query  string  false  "Filtrar por solicitante"
// @Param        department  query  string  false  "Filtrar por departamento"
// @Param        limit       query  int     false  "Límite"  default(20)
// @Param        offset      query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.RequisitionResponse
// @Router       /api/requisitions [get]
func (h *RequisitionHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	filter := repository.RequisitionFilter{
		Status:      c.Query("status"),
		RequesterID: c.Query("requester"),
		Department:  c.Query("department"),
		Limit:       page.Limit,
		Offset:      page.Offset,
	}
	// Un solicitante solo ve lo suyo; los demás roles ven según filtros.
	if GetRole(c) == entity.RoleSolicitante {
		filter.RequesterID = GetUserID(c)
	}
	reqs, err := h.uc.List(filter)
	if err != nil {
		return domainError(c, err)
	}
	out := make([]dto.RequisitionResponse, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, *toRequisitionResponse(r))
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar requisición (lógico)
// @Tags         requisitions
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la requisición"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/requisitions/{id} [delete]
func (h *RequisitionHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.SoftDelete(c.Params("id")); err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "requisición eliminada"})
}

func toRequisitionResponse(r *entity.Requisition) *dto.RequisitionResponse {
	if r == nil {
		return nil
	}
	return &dto.RequisitionResponse{
		ID:             r.ID,
		Code:           r.Code,
		RequesterID:    r.RequesterID,
		ItemID:         r.ItemID,
		Description:    r.Description,
		Quantity:       r.Quantity,
		Urgency:        r.Urgency,
		Department:     r.Department,
		Unit:           r.Unit,
		Room:           r.Room,
		DeptApproverID: r.DeptApproverID,
		ITDApproverID:  r.ITDApproverID,
		Status:         r.Status,
		DeclineReason:  r.DeclineReason,
		IssuedByID:     r.IssuedByID,
		IssuedAt:       r.IssuedAt,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}
