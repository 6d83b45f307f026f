package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName      string
	AppEnv       string
	AppPort      string
	DataDir      string
	UploadDir    string
	MaxUploadMB  int
	ContestName  string
	AIProvider   string
	OpenAIAPIKey string
	GoogleAPIKey string

	ScoringContentLimit int
	ScoringTemperature  float64
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("PITCH")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "PitchScore API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("data.dir", "data")
	v.SetDefault("upload.dir", "data/uploads")
	v.SetDefault("upload.max_mb", 10)
	v.SetDefault("contest.name", "Pitch Contest")
	v.SetDefault("ai.provider", "")
	v.SetDefault("scoring.content_limit", 8000)
	v.SetDefault("scoring.temperature", 0.2)

	cfg := Config{
		AppName:      v.GetString("app.name"),
		AppEnv:       v.GetString("app.env"),
		AppPort:      v.GetString("app.port"),
		DataDir:      v.GetString("data.dir"),
		UploadDir:    v.GetString("upload.dir"),
		MaxUploadMB:  v.GetInt("upload.max_mb"),
		ContestName:  v.GetString("contest.name"),
		AIProvider:   strings.ToLower(v.GetString("ai.provider")),
		OpenAIAPIKey: v.GetString("openai_api_key"),
		GoogleAPIKey: v.GetString("google_api_key"),

		ScoringContentLimit: v.GetInt("scoring.content_limit"),
		ScoringTemperature:  v.GetFloat64("scoring.temperature"),
	}

	if cfg.DataDir == "" {
		return Config{}, fmt.Errorf("data directory must be provided")
	}

	if cfg.MaxUploadMB <= 0 {
		cfg.MaxUploadMB = 10
	}

	return cfg, nil
}
