package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/ActivosTI-api/internal/application/dto"
	"github.com/jhoicas/ActivosTI-api/internal/application/usecase"
	"github.com/jhoicas/ActivosTI-api/internal/domain/repository"
)

// AssetHandler maneja el ciclo de vida de activos fijos (protegido).
type AssetHandler struct {
	uc *usecase.AssetUseCase
}

// NewAssetHandler construye el handler.
func NewAssetHandler(uc *usecase.AssetUseCase) *AssetHandler {
	return &AssetHandler{uc: uc}
}

// GetByID godoc
// @Summary      Obtener activo por ID
// @Tags         assets
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del activo"
// @Success      200  {object}  dto.AssetResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/assets/{id} [get]
func (h *AssetHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// GetByTag godoc
// @Summary      Obtener activo por etiqueta
// @Tags         assets
// @Security     Bearer
// @Produce      json
// @Param        tag  path  string  true  "Etiqueta del activo (ej. ACT-2025-000123)"
// @Success      200  {object}  dto.AssetResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/assets/tag/{tag} [get]
func (h *AssetHandler) GetByTag(c *fiber.Ctx) error {
	out, err := h.uc.GetByTag(c.Params("tag"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar activos
// @Tags         assets
// @Security     Bearer
// @Produce      json
// @Param        status      query  string  false  "Filtrar por estado"
// @Param        department  query  string  false  "Filtrar por departamento"
// @Param        user        query  string  false  "Filtrar por usuario asignado"
// @Param        limit       query  int     false  "Límite"  default(20)
// @Param        offset      query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.AssetResponse
// @Router       /api/assets [get]
func (h *AssetHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	filter := repository.AssetFilter{
		Status:     c.Query("status"),
		Department: c.Query("department"),
		UserID:     c.Query("user"),
		Limit:      page.Limit,
		Offset:     page.Offset,
	}
	out, err := h.uc.List(filter)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// MarkObsolete godoc
// @Summary      Marcar activo como obsoleto
// @Tags         assets
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del activo"
// @Success      200  {object}  dto.AssetResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/assets/{id}/obsolete [post]
func (h *AssetHandler) MarkObsolete(c *fiber.Ctx) error {
	out, err := h.uc.MarkObsolete(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// Dispose godoc
// @Summary      Dar de baja un activo
// @Tags         assets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del activo"
// @Param        body  body  dto.DisposeAssetRequest  true  "Método y motivo de la baja"
// @Success      200   {object}  dto.AssetResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/assets/{id}/dispose [post]
func (h *AssetHandler) Dispose(c *fiber.Ctx) error {
	var in dto.DisposeAssetRequest
	if err := parseAndValidate(c, &in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.Dispose(c.Context(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}
