package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/lojazen/balcao/internal/application/dto"
	"github.com/lojazen/balcao/internal/application/usecase"
	"github.com/lojazen/balcao/internal/domain"
)

// VendorHandler trata as requisições HTTP de fornecedores.
type VendorHandler struct {
	uc *usecase.VendorUseCase
}

// NewVendorHandler constrói o handler.
func NewVendorHandler(uc *usecase.VendorUseCase) *VendorHandler {
	return &VendorHandler{uc: uc}
}

// Create godoc
// @Summary      Criar fornecedor
// @Tags         vendors
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateVendorRequest  true  "Dados do fornecedor"
// @Success      201   {object}  entity.Vendor
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/vendors [post]
func (h *VendorHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateVendorRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "documento já cadastrado"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name e document são obrigatórios"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List devolve todos os fornecedores.
func (h *VendorHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetByID devolve um fornecedor por ID.
func (h *VendorHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id numérico obrigatório"})
	}
	out, err := h.uc.GetByID(uint64(id))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "fornecedor não encontrado"})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Atualizar fornecedor
// @Tags         vendors
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID do fornecedor"
// @Param        body  body  dto.UpdateVendorRequest  true  "Campos a atualizar"
// @Success      200   {object}  entity.Vendor
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/vendors/{id} [put]
func (h *VendorHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id numérico obrigatório"})
	}
	var in dto.UpdateVendorRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.Update(uint64(id), in)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "documento já cadastrado em outro fornecedor"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "campos inválidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "fornecedor não encontrado"})
	}
	return c.JSON(out)
}

// Delete remove um fornecedor. Idempotente; não apaga produtos associados.
func (h *VendorHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id numérico obrigatório"})
	}
	if err := h.uc.Delete(uint64(id)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
