// Package config loads process-wide settings from flags and the environment.
// Values are read once at startup and never change afterwards.
package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Defaults for every tunable. Each has a matching environment key.
const (
	DefaultModel           = "gemini-2.5-flash"
	DefaultTimeout         = 60 * time.Second
	DefaultMaxOutputTokens = 8192
	DefaultTemperature     = 0.7
	DefaultMaxFiles        = 10
	DefaultMaxTotalBytes   = 20 << 20 // 20 MiB
)

type Config struct {
	APIKey            string
	Model             string
	Timeout           time.Duration
	MaxOutputTokens   int
	Temperature       float64
	MaxFiles          int
	MaxTotalFileBytes int64

	// Port enables the websocket/HTTP transport when non-empty; the stdio
	// transport always runs.
	Port string

	Archive ArchiveConfig
}

type ArchiveConfig struct {
	Enabled   bool
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	port := flag.String("port", "", "serve the websocket transport on this port (empty: stdio only)")
	flag.Parse()

	if envPort := strings.TrimSpace(os.Getenv("PORT")); envPort != "" {
		if strings.HasPrefix(envPort, ":") {
			*port = envPort
		} else {
			*port = ":" + envPort
		}
	}

	cfg, err := fromEnv()
	if err != nil {
		return nil, err
	}
	cfg.Port = *port
	return cfg, nil
}

func fromEnv() (*Config, error) {
	apiKey := strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}

	timeoutSec, err := envInt("GEMINI_TIMEOUT_SECONDS", int(DefaultTimeout/time.Second))
	if err != nil {
		return nil, err
	}
	maxTokens, err := envInt("GEMINI_MAX_OUTPUT_TOKENS", DefaultMaxOutputTokens)
	if err != nil {
		return nil, err
	}
	temperature, err := envFloat("GEMINI_TEMPERATURE", DefaultTemperature)
	if err != nil {
		return nil, err
	}
	maxFiles, err := envInt("MAX_FILES", DefaultMaxFiles)
	if err != nil {
		return nil, err
	}
	maxBytes, err := envInt64("MAX_TOTAL_FILE_BYTES", DefaultMaxTotalBytes)
	if err != nil {
		return nil, err
	}

	return &Config{
		APIKey:            apiKey,
		Model:             firstNonEmpty(strings.TrimSpace(os.Getenv("GEMINI_MODEL")), DefaultModel),
		Timeout:           time.Duration(timeoutSec) * time.Second,
		MaxOutputTokens:   maxTokens,
		Temperature:       temperature,
		MaxFiles:          maxFiles,
		MaxTotalFileBytes: maxBytes,
		Archive:           loadArchiveConfig(),
	}, nil
}

func loadArchiveConfig() ArchiveConfig {
	endpoint := strings.TrimSpace(os.Getenv("ARCHIVE_S3_ENDPOINT"))
	return ArchiveConfig{
		Enabled:   endpoint != "",
		Endpoint:  endpoint,
		Region:    firstNonEmpty(strings.TrimSpace(os.Getenv("ARCHIVE_S3_REGION")), "us-east-1"),
		AccessKey: strings.TrimSpace(os.Getenv("ARCHIVE_S3_ACCESS_KEY")),
		SecretKey: strings.TrimSpace(os.Getenv("ARCHIVE_S3_SECRET_KEY")),
		Bucket:    firstNonEmpty(strings.TrimSpace(os.Getenv("ARCHIVE_S3_BUCKET")), "genbridge-responses"),
		UseSSL:    envBool("ARCHIVE_S3_USE_SSL", true),
	}
}

func envInt(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func envInt64(key string, fallback int64) (int64, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func envFloat(key string, fallback float64) (float64, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func envBool(key string, fallback bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
