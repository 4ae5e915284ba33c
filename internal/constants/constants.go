package constants

import "time"

const (
	HeroSyncTTL = 24 * time.Hour
	MatchupTTL  = 6 * time.Hour
)

const (
	ExternalAPITimeout = 10 * time.Second
	DatabaseTimeout    = 5 * time.Second
	RequestTimeout     = 30 * time.Second
)

const (
	DBMaxOpenConns    = 100
	DBMaxIdleConns    = 10
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
	DBBatchSize       = 100
)

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	// concurrent OpenDota matchup fetches per request
	MatchupFetchConcurrency = 5
	OpenDotaBurst           = 3
)

const (
	SuggestionLimit    = 10
	MaxSuggestionLimit = 50
)
