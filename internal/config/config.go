package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/rghoshroy/gent-disagreement-go/internal/db"
)

// Config holds all configuration values.
type Config struct {
	// Postgres connection
	DB db.Config

	// External APIs
	DeepgramAPIKey string
	OpenAIAPIKey   string

	// Pipeline directories
	AudioDir            string
	TranscriptOutputDir string
	FormattedOutputDir  string

	// Logging
	LogFile  string
	LogLevel slog.Level
}

// Load reads configuration from environment variables. DB_PASSWORD has no
// default and must be set.
func Load() (Config, error) {
	password := os.Getenv("DB_PASSWORD")
	if password == "" {
		return Config{}, fmt.Errorf("DB_PASSWORD environment variable is required")
	}

	return Config{
		DB: db.Config{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: password,
			Database: getEnv("DB_NAME", "gent_disagreement"),
		},

		DeepgramAPIKey: os.Getenv("DEEPGRAM_API_KEY"),
		OpenAIAPIKey:   os.Getenv("OPENAI_API_KEY"),

		AudioDir:            getEnv("AUDIO_DIR", "data/audio"),
		TranscriptOutputDir: getEnv("TRANSCRIPT_OUTPUT_DIR", "data/transcripts/raw"),
		FormattedOutputDir:  getEnv("FORMATTED_OUTPUT_DIR", "data/transcripts/formatted"),

		LogFile:  getEnv("LOG_FILE", "/tmp/gent-disagreement.log"),
		LogLevel: parseLogLevel(getEnv("LOG_LEVEL", "INFO")),
	}, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
