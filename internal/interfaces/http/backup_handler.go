package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/lojazen/balcao/internal/application/backup"
	"github.com/lojazen/balcao/internal/application/dto"
	"github.com/lojazen/balcao/internal/domain"
)

// BackupHandler exporta e restaura snapshots do banco inteiro.
type BackupHandler struct {
	uc *backup.UseCase
}

// NewBackupHandler constrói o handler.
func NewBackupHandler(uc *backup.UseCase) *BackupHandler {
	return &BackupHandler{uc: uc}
}

// Export godoc
// @Summary      Exportar backup completo
// @Tags         backup
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  backup.Snapshot
// @Router       /api/backup [get]
func (h *BackupHandler) Export(c *fiber.Ctx) error {
	snap, err := h.uc.Export()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	filename := "balcao-backup-" + snap.BackupDate.Format(time.DateOnly) + ".json"
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.JSON(snap)
}

// Restore godoc
// @Summary      Restaurar backup (substitui todos os dados)
// @Tags         backup
// @Security     Bearer
// @Accept       json
// @Param        body  body  backup.Snapshot  true  "Snapshot exportado"
// @Success      204
// @Failure      400   {object}  dto.ErrorResponse  "Arquivo de backup inválido"
// @Router       /api/backup/restore [post]
func (h *BackupHandler) Restore(c *fiber.Ctx) error {
	var snap backup.Snapshot
	if err := c.BodyParser(&snap); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BACKUP", Message: "arquivo de backup inválido"})
	}
	if err := h.uc.Restore(&snap); err != nil {
		if errors.Is(err, domain.ErrInvalidBackup) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BACKUP", Message: "arquivo de backup inválido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
