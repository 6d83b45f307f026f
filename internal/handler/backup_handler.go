package handler

import (
	"errors"
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/contestops/pitchscore-api/internal/service"
	"github.com/contestops/pitchscore-api/internal/utils"
)

// BackupHandler exports and restores the flat-file data set.
type BackupHandler struct {
	service service.BackupService
	logger  zerolog.Logger
}

// NewBackupHandler constructs the handler.
func NewBackupHandler(service service.BackupService, logger zerolog.Logger) *BackupHandler {
	return &BackupHandler{
		service: service,
		logger:  logger.With().Str("component", "backup_handler").Logger(),
	}
}

// Register wires backup routes.
func (h *BackupHandler) Register(router fiber.Router) {
	router.Get("/export", h.export)
	router.Post("/restore", h.restore)
}

func (h *BackupHandler) export(c *fiber.Ctx) error {
	archive, filename, err := h.service.Export(c.Context())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to export backup")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to export backup")
	}

	c.Set(fiber.HeaderContentType, "application/zip")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(archive)
}

func (h *BackupHandler) restore(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "backup file is required")
	}

	handle, err := file.Open()
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "backup file is unreadable")
	}
	defer handle.Close()

	archive, err := io.ReadAll(handle)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "backup file is unreadable")
	}

	report, err := h.service.Restore(c.Context(), archive)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBackupInvalid):
			return utils.SendError(c, fiber.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, service.ErrBackupEmpty):
			return utils.SendError(c, fiber.StatusUnprocessableEntity, "backup archive contains no data files")
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to restore backup")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to restore backup")
		}
	}

	return utils.SendSuccess(c, "backup restored", report)
}
