package config

import (
	"log"
	"os"
	"strconv"
)

// Config holds the server settings read from the environment.
type Config struct {
	Port           string
	DBPath         string
	JWTSecret      string
	LogFile        string // Rotated log file, empty for stdout only
	PipelineConfig string // YAML file with reconstruction options
	RateLimit      int    // Requests per minute per client IP
}

// Load reads the configuration from the environment.
func Load() *Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./data/snapshots.db"
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "your-secret-key-change-in-production"
	}

	pipelineConfig := os.Getenv("PIPELINE_CONFIG")
	if pipelineConfig == "" {
		pipelineConfig = "./pipeline.yml"
	}

	return &Config{
		Port:           port,
		DBPath:         dbPath,
		JWTSecret:      jwtSecret,
		LogFile:        os.Getenv("LOG_FILE"),
		PipelineConfig: pipelineConfig,
		RateLimit:      envInt("RATE_LIMIT", 120),
	}
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		log.Printf("[Config] Ignoring invalid %s=%q, using %v", key, raw, fallback)
		return fallback
	}
	return v
}
