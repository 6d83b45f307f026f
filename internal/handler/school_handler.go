package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/contestops/pitchscore-api/internal/dto"
	"github.com/contestops/pitchscore-api/internal/service"
	"github.com/contestops/pitchscore-api/internal/utils"
)

// SchoolHandler handles school registration endpoints.
type SchoolHandler struct {
	service service.SchoolService
	logger  zerolog.Logger
}

// NewSchoolHandler constructs the handler.
func NewSchoolHandler(service service.SchoolService, logger zerolog.Logger) *SchoolHandler {
	return &SchoolHandler{
		service: service,
		logger:  logger.With().Str("component", "school_handler").Logger(),
	}
}

// Register wires school routes.
func (h *SchoolHandler) Register(router fiber.Router) {
	router.Post("", h.create)
	router.Get("", h.list)
	router.Get("/:id", h.get)
	router.Delete("/:id", h.delete)
}

func (h *SchoolHandler) create(c *fiber.Ctx) error {
	var payload dto.SchoolCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.Create(c.Context(), payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid school data")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to register school")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to register school")
	}

	return utils.SendCreated(c, "school registered", response)
}

func (h *SchoolHandler) list(c *fiber.Ctx) error {
	schools, err := h.service.List(c.Context())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list schools")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list schools")
	}
	return utils.SendSuccess(c, "schools retrieved", schools)
}

func (h *SchoolHandler) get(c *fiber.Ctx) error {
	id, err := parseParamID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid school id")
	}

	school, err := h.service.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrSchoolNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "school not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to fetch school")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch school")
	}
	return utils.SendSuccess(c, "school retrieved", school)
}

func (h *SchoolHandler) delete(c *fiber.Ctx) error {
	id, err := parseParamID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid school id")
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		if errors.Is(err, service.ErrSchoolNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "school not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to delete school")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete school")
	}
	return utils.SendSuccess(c, "school deleted", nil)
}
