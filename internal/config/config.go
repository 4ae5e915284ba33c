package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"dota-draft-advisor/internal/constants"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Config struct {
	OpenDotaBaseURL string
	OpenDotaAPIKey  string
	OpenDotaRPS     float64
	DBPath          string
	ServerPort      string
	LogLevel        string
	HeuristicsPath  string
	HeroSyncTTL     time.Duration
	MatchupTTL      time.Duration
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		OpenDotaBaseURL: getEnv("OPENDOTA_BASE_URL", "https://api.opendota.com"),
		OpenDotaAPIKey:  getEnv("OPENDOTA_API_KEY", ""),
		DBPath:          getEnv("DB_PATH", "dota.db"),
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		HeuristicsPath:  getEnv("HEURISTICS_PATH", ""),
	}

	var err error
	if cfg.HeroSyncTTL, err = getDuration("HERO_SYNC_TTL", constants.HeroSyncTTL); err != nil {
		return nil, err
	}
	if cfg.MatchupTTL, err = getDuration("MATCHUP_TTL", constants.MatchupTTL); err != nil {
		return nil, err
	}
	if cfg.OpenDotaRPS, err = getFloat("OPENDOTA_RPS", 1); err != nil {
		return nil, err
	}
	if cfg.OpenDotaRPS <= 0 {
		return nil, fmt.Errorf("OPENDOTA_RPS must be positive, got %v", cfg.OpenDotaRPS)
	}

	logger.Info().
		Str("opendota_base_url", cfg.OpenDotaBaseURL).
		Bool("opendota_api_key", cfg.OpenDotaAPIKey != "").
		Float64("opendota_rps", cfg.OpenDotaRPS).
		Str("db_path", cfg.DBPath).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Str("heuristics_path", cfg.HeuristicsPath).
		Dur("hero_sync_ttl", cfg.HeroSyncTTL).
		Dur("matchup_ttl", cfg.MatchupTTL).
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

var Module = fx.Provide(Load)
