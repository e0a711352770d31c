package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/ActivosTI-api/internal/application/dto"
	"github.com/jhoicas/ActivosTI-api/internal/application/issuance"
	"github.com/jhoicas/ActivosTI-api/internal/domain"
)

// IssuanceHandler maneja el despacho de requisiciones y el acta de entrega.
type IssuanceHandler struct {
	uc      *issuance.UseCase
	voucher *issuance.VoucherService
}

// NewIssuanceHandler construye el handler.
func NewIssuanceHandler(uc *issuance.UseCase, voucher *issuance.VoucherService) *IssuanceHandler {
	return &IssuanceHandler{uc: uc, voucher: voucher}
}

// Issue godoc
// @Summary      Despachar requisición aprobada
// @Tags         issuances
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la requisición"
// @Param        body  body  dto.IssueRequisitionRequest  true  "Artículo, lote y cantidad"
// @Success      201   {object}  dto.IssueRequisitionResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      410   {object}  dto.ErrorResponse
// @Router       /api/requisitions/{id}/issue [post]
func (h *IssuanceHandler) Issue(c *fiber.Ctx) error {
	var in dto.IssueRequisitionRequest
	if err := parseAndValidate(c, &in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}

	res, err := h.uc.Issue(c.Context(), c.Params("id"), GetUserID(c), in)
	if err != nil && !errors.Is(err, domain.ErrNotificationFailure) {
		return domainError(c, err)
	}

	out := dto.IssueRequisitionResponse{IssuanceID: res.Issuance.ID}
	if res.Asset != nil {
		out.AssetID = &res.Asset.ID
		out.AssetTag = &res.Asset.AssetTag
	}
	// Éxito degradado: los datos quedaron confirmados pero alguna
	// notificación falló. Se responde 201 con warning, nunca error.
	if errors.Is(err, domain.ErrNotificationFailure) {
		out.Warning = fmt.Sprintf("despacho confirmado; %d notificación(es) fallida(s)", len(res.NotificationErrors))
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Voucher godoc
// @Summary      Acta de entrega en PDF
// @Tags         issuances
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la requisición"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/requisitions/{id}/voucher [get]
func (h *IssuanceHandler) Voucher(c *fiber.Ctx) error {
	pdfBytes, err := h.voucher.VoucherPDF(c.Context(), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="acta-entrega.pdf"`)
	return c.Send(pdfBytes)
}
