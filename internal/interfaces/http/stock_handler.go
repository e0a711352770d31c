package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/ActivosTI-api/internal/application/dto"
	"github.com/jhoicas/ActivosTI-api/internal/application/stock"
)

// StockHandler maneja recepciones de compra y consultas de existencia.
type StockHandler struct {
	uc *stock.UseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *stock.UseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// Receive godoc
// @Summary      Registrar recepción de compra
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReceiveStockRequest  true  "Datos de la recepción"
// @Success      201   {object}  dto.ReceiveStockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/receive [post]
func (h *StockHandler) Receive(c *fiber.Ctx) error {
	var in dto.ReceiveStockRequest
	if err := parseAndValidate(c, &in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.Receive(c.Context(), GetUserID(c), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetStock godoc
// @Summary      Existencia agregada de un artículo
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        itemId  path  string  true  "ID del artículo"
// @Success      200  {object}  dto.StockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/{itemId} [get]
func (h *StockHandler) GetStock(c *fiber.Ctx) error {
	s, err := h.uc.GetStock(c.Params("itemId"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.StockResponse{ItemID: s.ItemID, Quantity: s.Quantity, UpdatedAt: s.UpdatedAt})
}

// ListBatches godoc
// @Summary      Lotes de un artículo
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        itemId  path   string  true   "ID del artículo"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.BatchResponse
// @Router       /api/stock/{itemId}/batches [get]
func (h *StockHandler) ListBatches(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	batches, err := h.uc.ListBatches(c.Params("itemId"), page.Limit, page.Offset)
	if err != nil {
		return domainError(c, err)
	}
	out := make([]dto.BatchResponse, 0, len(batches))
	for _, b := range batches {
		out = append(out, dto.BatchResponse{
			ID:            b.ID,
			ItemID:        b.ItemID,
			ReceivedQty:   b.ReceivedQty,
			Remaining:     b.Remaining,
			WarrantyFrom:  b.WarrantyFrom,
			WarrantyUntil: b.WarrantyUntil,
		})
	}
	return c.JSON(out)
}
