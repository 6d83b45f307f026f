package handler

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/contestops/pitchscore-api/internal/dto"
	"github.com/contestops/pitchscore-api/internal/service"
	"github.com/contestops/pitchscore-api/internal/utils"
	"github.com/contestops/pitchscore-api/pkg/ai"
)

// ScoringHandler triggers scoring passes over submissions.
type ScoringHandler struct {
	service service.ScoringService
	logger  zerolog.Logger
}

// NewScoringHandler constructs the handler.
func NewScoringHandler(service service.ScoringService, logger zerolog.Logger) *ScoringHandler {
	return &ScoringHandler{
		service: service,
		logger:  logger.With().Str("component", "scoring_handler").Logger(),
	}
}

// Register wires scoring routes under the submissions group. The optional
// middleware chain runs before each pass; the router uses it to rate limit.
func (h *ScoringHandler) Register(router fiber.Router, chain ...fiber.Handler) {
	score := make([]fiber.Handler, 0, len(chain)+1)
	score = append(score, chain...)
	router.Post("/:id/score", append(score, h.score)...)

	rescore := make([]fiber.Handler, 0, len(chain)+1)
	rescore = append(rescore, chain...)
	router.Post("/:id/rescore", append(rescore, h.rescore)...)
}

func (h *ScoringHandler) score(c *fiber.Ctx) error {
	return h.run(c, h.service.Score, "scoring pass completed")
}

func (h *ScoringHandler) rescore(c *fiber.Ctx) error {
	return h.run(c, h.service.Rescore, "rescoring pass completed")
}

func (h *ScoringHandler) run(c *fiber.Ctx, pass func(context.Context, uint) (dto.ScoreResponse, error), message string) error {
	id, err := parseParamID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid submission id")
	}

	response, err := pass(c.Context(), id)
	if err != nil {
		return h.sendScoringError(c, err)
	}

	return utils.SendSuccess(c, message, response)
}

func (h *ScoringHandler) sendScoringError(c *fiber.Ctx, err error) error {
	var mismatch *ai.ProviderMismatchError
	switch {
	case errors.Is(err, service.ErrSubmissionNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "submission not found")
	case errors.Is(err, ai.ErrNotConfigured):
		return utils.SendError(c, fiber.StatusPreconditionFailed, "no scoring provider configured")
	case errors.As(err, &mismatch):
		return utils.SendError(c, fiber.StatusPreconditionFailed, mismatch.Error())
	case errors.Is(err, service.ErrNoFiles):
		return utils.SendError(c, fiber.StatusUnprocessableEntity, "submission has no uploaded files")
	case errors.Is(err, service.ErrEmptyExtractedText):
		return utils.SendError(c, fiber.StatusUnprocessableEntity, "no text could be extracted from the submission files")
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("scoring pass failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "scoring pass failed")
	}
}
