package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/lojazen/balcao/internal/application/dto"
	"github.com/lojazen/balcao/internal/application/sales"
	"github.com/lojazen/balcao/internal/domain"
)

// SaleHandler trata o checkout e as consultas ao livro de vendas.
type SaleHandler struct {
	checkout  *sales.CheckoutUseCase
	report    *sales.ReportUseCase
	storeName string
}

// NewSaleHandler constrói o handler.
func NewSaleHandler(checkout *sales.CheckoutUseCase, report *sales.ReportUseCase, storeName string) *SaleHandler {
	return &SaleHandler{checkout: checkout, report: report, storeName: storeName}
}

// Checkout godoc
// @Summary      Registrar venda multi-item
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CheckoutRequest  true  "Linhas e forma de pagamento"
// @Success      201   {object}  entity.Sale
// @Failure      422   {object}  dto.ErrorResponse  "Estoque insuficiente"
// @Router       /api/sales [post]
func (h *SaleHandler) Checkout(c *fiber.Ctx) error {
	var in dto.CheckoutRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.checkout.Checkout(in)
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "linhas e forma de pagamento válidas são obrigatórias"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List devolve o livro de vendas, mais recente primeiro.
func (h *SaleHandler) List(c *fiber.Ctx) error {
	out, err := h.report.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Totais de vendas por forma de pagamento
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SalesSummaryResponse
// @Router       /api/sales/summary [get]
func (h *SaleHandler) Summary(c *fiber.Ctx) error {
	out, err := h.report.Summary()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Receipt godoc
// @Summary      Comprovante de venda em PDF
// @Tags         sales
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID da venda"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/receipt [get]
func (h *SaleHandler) Receipt(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id obrigatório"})
	}
	pdfBytes, err := h.report.Receipt(id, h.storeName)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "venda não encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="comprovante-`+id+`.pdf"`)
	return c.Send(pdfBytes)
}
