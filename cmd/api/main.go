package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/contestops/pitchscore-api/internal/config"
	"github.com/contestops/pitchscore-api/internal/handler"
	"github.com/contestops/pitchscore-api/internal/middleware"
	"github.com/contestops/pitchscore-api/internal/repository"
	"github.com/contestops/pitchscore-api/internal/router"
	"github.com/contestops/pitchscore-api/internal/service"
	"github.com/contestops/pitchscore-api/internal/store"
	"github.com/contestops/pitchscore-api/pkg/ai"
	"github.com/contestops/pitchscore-api/pkg/extract"
	"github.com/contestops/pitchscore-api/pkg/localdisk"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	dataStore, err := store.New(cfg.DataDir)
	if err != nil {
		log.Fatalf("failed to open data store: %v", err)
	}
	if err := dataStore.Ensure(); err != nil {
		log.Fatalf("failed to initialise data files: %v", err)
	}

	storage, err := localdisk.New(localdisk.Config{Root: cfg.UploadDir}, logger)
	if err != nil {
		log.Fatalf("failed to prepare upload storage: %v", err)
	}

	manager := ai.NewManager(logger)
	manager.SetOptions(ai.ScorerOptions{
		MaxContentChars: cfg.ScoringContentLimit,
		Temperature:     float32(cfg.ScoringTemperature),
	})
	if key, provider := selectCredential(cfg); key != "" {
		if err := manager.Configure(key, provider); err != nil {
			log.Fatalf("failed to configure scoring provider: %v", err)
		}
	} else if err := manager.FromEnv(); err != nil {
		log.Fatalf("failed to configure scoring provider from environment: %v", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	schoolRepo := repository.NewSchoolRepository(dataStore)
	submissionRepo := repository.NewSubmissionRepository(dataStore)
	fileRepo := repository.NewSubmissionFileRepository(dataStore)
	resultRepo := repository.NewResultRepository(dataStore)
	detailRepo := repository.NewDetailRepository(dataStore)

	schoolService := service.NewSchoolService(schoolRepo, validate, logger)
	submissionService := service.NewSubmissionService(submissionRepo, schoolRepo, fileRepo, storage, validate, cfg.MaxUploadMB, logger)
	scoringService := service.NewScoringService(submissionRepo, fileRepo, resultRepo, detailRepo, manager, extract.NewPlainTextExtractor(), logger)
	awardService := service.NewAwardService()
	certificateService := service.NewCertificateService(detailRepo, cfg.ContestName, logger)
	rankingService := service.NewRankingService(resultRepo, detailRepo, awardService, certificateService, logger)
	backupService := service.NewBackupService(dataStore, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		SchoolHandler:     handler.NewSchoolHandler(schoolService, logger),
		SubmissionHandler: handler.NewSubmissionHandler(submissionService, logger),
		ScoringHandler:    handler.NewScoringHandler(scoringService, logger),
		RankingHandler:    handler.NewRankingHandler(rankingService, logger),
		ProviderHandler:   handler.NewProviderHandler(manager, validate, logger),
		BackupHandler:     handler.NewBackupHandler(backupService, logger),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

// selectCredential picks the API key and provider the manager should be
// configured with. An explicit PITCH_AI_PROVIDER is honoured even when it
// contradicts the supplied key, so the mismatch surfaces at startup instead
// of silently scoring with the wrong backend.
func selectCredential(cfg config.Config) (string, ai.Provider) {
	provider := ai.Provider(cfg.AIProvider)
	switch {
	case provider == ai.ProviderGemini && cfg.GoogleAPIKey != "":
		return cfg.GoogleAPIKey, provider
	case cfg.OpenAIAPIKey != "":
		return cfg.OpenAIAPIKey, provider
	case cfg.GoogleAPIKey != "":
		return cfg.GoogleAPIKey, provider
	}
	return "", provider
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
