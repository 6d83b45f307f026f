package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/contestops/pitchscore-api/internal/config"
	"github.com/contestops/pitchscore-api/internal/handler"
	"github.com/contestops/pitchscore-api/internal/middleware"
	"github.com/contestops/pitchscore-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	SchoolHandler     *handler.SchoolHandler
	SubmissionHandler *handler.SubmissionHandler
	ScoringHandler    *handler.ScoringHandler
	RankingHandler    *handler.RankingHandler
	ProviderHandler   *handler.ProviderHandler
	BackupHandler     *handler.BackupHandler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))
	app.Get("/metrics", observability.MetricsHandler())

	if deps.SchoolHandler != nil {
		deps.SchoolHandler.Register(api.Group("/schools"))
	}

	if deps.SubmissionHandler != nil {
		submissions := api.Group("/submissions")
		deps.SubmissionHandler.Register(submissions)

		// Scoring operates on submissions, so it shares the group. Each pass
		// fans out to the LLM backend and is rate limited per route.
		if deps.ScoringHandler != nil {
			deps.ScoringHandler.Register(submissions, middleware.RateLimit("scoring", 5, time.Minute))
		}
	}

	if deps.RankingHandler != nil {
		deps.RankingHandler.Register(api.Group("/results"))
	}

	if deps.ProviderHandler != nil {
		deps.ProviderHandler.Register(api.Group("/provider"))
	}

	if deps.BackupHandler != nil {
		deps.BackupHandler.Register(api.Group("/backup"))
	}
}
