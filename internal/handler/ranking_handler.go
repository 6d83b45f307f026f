package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/contestops/pitchscore-api/internal/dto"
	"github.com/contestops/pitchscore-api/internal/service"
	"github.com/contestops/pitchscore-api/internal/utils"
)

// RankingHandler serves the contest ranking, per-criterion details, the
// special judge award toggle and certificate rendering.
type RankingHandler struct {
	service service.RankingService
	logger  zerolog.Logger
}

// NewRankingHandler constructs the handler.
func NewRankingHandler(service service.RankingService, logger zerolog.Logger) *RankingHandler {
	return &RankingHandler{
		service: service,
		logger:  logger.With().Str("component", "ranking_handler").Logger(),
	}
}

// Register wires ranking routes.
func (h *RankingHandler) Register(router fiber.Router) {
	router.Get("", h.ranking)
	router.Get("/:id/details", h.details)
	router.Put("/:id/special-award", h.specialAward)
	router.Get("/:id/certificates", h.certificates)
}

func (h *RankingHandler) ranking(c *fiber.Ctx) error {
	entries, err := h.service.Ranking(c.Context())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to assemble ranking")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to assemble ranking")
	}
	return utils.SendSuccess(c, "ranking retrieved", entries)
}

func (h *RankingHandler) details(c *fiber.Ctx) error {
	id, err := parseParamID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid result id")
	}

	details, err := h.service.Details(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrResultNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "evaluation result not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to fetch evaluation details")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch evaluation details")
	}
	return utils.SendSuccess(c, "evaluation details retrieved", details)
}

func (h *RankingHandler) specialAward(c *fiber.Ctx) error {
	id, err := parseParamID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid result id")
	}

	var payload dto.SpecialAwardRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	if err := h.service.SetSpecialAward(c.Context(), id, payload.Flagged); err != nil {
		if errors.Is(err, service.ErrResultNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "evaluation result not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to update special judge award")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to update special judge award")
	}
	return utils.SendSuccess(c, "special judge award updated", nil)
}

func (h *RankingHandler) certificates(c *fiber.Ctx) error {
	id, err := parseParamID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid result id")
	}

	response, err := h.service.Certificates(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrResultNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "evaluation result not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to render certificates")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to render certificates")
	}
	return utils.SendSuccess(c, "certificates rendered", response)
}
