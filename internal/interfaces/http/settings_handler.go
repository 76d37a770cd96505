package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lojazen/balcao/internal/application/dto"
	"github.com/lojazen/balcao/internal/application/usecase"
	"github.com/lojazen/balcao/internal/domain/entity"
)

// SettingsHandler trata leitura e sobrescrita das configurações.
type SettingsHandler struct {
	uc *usecase.SettingsUseCase
}

// NewSettingsHandler constrói o handler.
func NewSettingsHandler(uc *usecase.SettingsUseCase) *SettingsHandler {
	return &SettingsHandler{uc: uc}
}

// GetStockAlerts devolve o mapa produto → limite mínimo de estoque.
func (h *SettingsHandler) GetStockAlerts(c *fiber.Ctx) error {
	out, err := h.uc.StockAlerts()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// SetStockAlerts sobrescreve o mapa de limites mínimos.
func (h *SettingsHandler) SetStockAlerts(c *fiber.Ctx) error {
	var in map[uint64]int64
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if err := h.uc.SetStockAlerts(in); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetIgnoreStock devolve o mapa produto → ignorar validação de estoque.
func (h *SettingsHandler) GetIgnoreStock(c *fiber.Ctx) error {
	out, err := h.uc.IgnoreStock()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// SetIgnoreStock sobrescreve o mapa de sinalizadores.
func (h *SettingsHandler) SetIgnoreStock(c *fiber.Ctx) error {
	var in map[uint64]bool
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if err := h.uc.SetIgnoreStock(in); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetIntegrations devolve as credenciais de integração.
func (h *SettingsHandler) GetIntegrations(c *fiber.Ctx) error {
	out, err := h.uc.Integrations()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// SetIntegrations sobrescreve as credenciais de integração.
func (h *SettingsHandler) SetIntegrations(c *fiber.Ctx) error {
	var in entity.IntegrationSettings
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if err := h.uc.SetIntegrations(&in); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
