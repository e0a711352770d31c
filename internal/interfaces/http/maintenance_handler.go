package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/ActivosTI-api/internal/application/dto"
	"github.com/jhoicas/ActivosTI-api/internal/application/usecase"
)

// MaintenanceHandler maneja tickets de mantenimiento (protegido).
type MaintenanceHandler struct {
	uc *usecase.MaintenanceUseCase
}

// NewMaintenanceHandler construye el handler.
func NewMaintenanceHandler(uc *usecase.MaintenanceUseCase) *MaintenanceHandler {
	return &MaintenanceHandler{uc: uc}
}

// Create godoc
// @Summary      Abrir ticket de mantenimiento
// @Tags         maintenance
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTicketRequest  true  "Datos del ticket"
// @Success      201   {object}  dto.TicketResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/maintenance [post]
func (h *MaintenanceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTicketRequest
	if err := parseAndValidate(c, &in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Assign godoc
// @Summary      Asignar técnico a un ticket
// @Tags         maintenance
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del ticket"
// @Param        body  body  dto.AssignTicketRequest  true  "Técnico"
// @Success      200   {object}  dto.TicketResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/maintenance/{id}/assign [post]
func (h *MaintenanceHandler) Assign(c *fiber.Ctx) error {
	var in dto.AssignTicketRequest
	if err := parseAndValidate(c, &in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.Assign(c.Context(), c.Params("id"), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// Resolve godoc
// @Summary      Resolver ticket
// @Tags         maintenance
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del ticket"
// @Param        body  body  dto.ResolveTicketRequest  true  "Resolución"
// @Success      200   {object}  dto.TicketResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/maintenance/{id}/resolve [post]
func (h *MaintenanceHandler) Resolve(c *fiber.Ctx) error {
	var in dto.ResolveTicketRequest
	if err := parseAndValidate(c, &in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.Resolve(c.Context(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener ticket por ID
// @Tags         maintenance
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del ticket"
// @Success      200  {object}  dto.TicketResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/maintenance/{id} [get]
func (h *MaintenanceHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar tickets
// @Tags         maintenance
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Filtrar por estado (open, resolved)"
// @Param        asset   query  string  false  "Filtrar por activo"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.TicketResponse
// @Router       /api/maintenance [get]
func (h *MaintenanceHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	if assetID := c.Query("asset"); assetID != "" {
		out, err := h.uc.ListByAsset(assetID, page.Limit, page.Offset)
		if err != nil {
			return domainError(c, err)
		}
		return c.JSON(out)
	}
	out, err := h.uc.List(c.Query("status"), page.Limit, page.Offset)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}
