package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/contestops/pitchscore-api/internal/dto"
	"github.com/contestops/pitchscore-api/internal/utils"
	"github.com/contestops/pitchscore-api/pkg/ai"
)

// ProviderHandler manages the scoring backend credential for the session.
type ProviderHandler struct {
	manager   *ai.Manager
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewProviderHandler constructs the handler.
func NewProviderHandler(manager *ai.Manager, validate *validator.Validate, logger zerolog.Logger) *ProviderHandler {
	return &ProviderHandler{
		manager:   manager,
		validator: validate,
		logger:    logger.With().Str("component", "provider_handler").Logger(),
	}
}

// Register wires provider routes.
func (h *ProviderHandler) Register(router fiber.Router) {
	router.Get("", h.status)
	router.Put("", h.configure)
}

func (h *ProviderHandler) status(c *fiber.Ctx) error {
	response := dto.ProviderStatusResponse{
		Configured: h.manager.Configured(),
		Provider:   string(h.manager.Provider()),
	}
	return utils.SendSuccess(c, "provider status retrieved", response)
}

func (h *ProviderHandler) configure(c *fiber.Ctx) error {
	var payload dto.ProviderConfigureRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := h.validator.Struct(payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid provider configuration")
	}

	if err := h.manager.Configure(payload.APIKey, ai.Provider(payload.Provider)); err != nil {
		var mismatch *ai.ProviderMismatchError
		switch {
		case errors.As(err, &mismatch):
			return utils.SendError(c, fiber.StatusBadRequest, mismatch.Error())
		case errors.Is(err, ai.ErrUnsupportedProvider):
			return utils.SendError(c, fiber.StatusBadRequest, "unsupported provider")
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to configure scoring provider")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to configure scoring provider")
		}
	}

	response := dto.ProviderStatusResponse{
		Configured: true,
		Provider:   string(h.manager.Provider()),
	}
	return utils.SendSuccess(c, "provider configured", response)
}
