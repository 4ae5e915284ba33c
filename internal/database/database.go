package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"net/url"
	"path/filepath"

	"dota-draft-advisor/internal/config"
	"dota-draft-advisor/internal/constants"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Connection-scoped settings go on the DSN so every pooled connection gets them.
var dsnParams = map[string]string{
	"_foreign_keys": "on",
	"_busy_timeout": "5000",
	"_journal_mode": "WAL",
	"_synchronous":  "NORMAL",
	"_cache_size":   "-64000",
}

// Database-wide pragmas applied once after connecting.
var pragmas = []struct {
	name  string
	value string
}{
	{"temp_store", "MEMORY"},
	{"mmap_size", "268435456"}, // https://sqlite.org/mmap.html
}

func New(cfg *config.Config, logger zerolog.Logger) (*sql.DB, error) {
	return Open(cfg.DBPath, logger)
}

// Open connects to the SQLite file at path and applies pending migrations.
func Open(path string, logger zerolog.Logger) (*sql.DB, error) {
	logger.Info().Str("path", path).Msg("connecting to database")

	db, err := sql.Open("sqlite3", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(constants.DBMaxOpenConns)
	db.SetMaxIdleConns(constants.DBMaxIdleConns)
	db.SetConnMaxLifetime(constants.DBConnMaxLifetime)
	db.SetConnMaxIdleTime(constants.DBMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), constants.DatabaseTimeout)
	defer cancel()

	if err := tune(ctx, db, logger); err != nil {
		db.Close()
		return nil, err
	}
	if err := migrate(ctx, db, logger); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info().Str("path", path).Msg("database ready")
	return db, nil
}

// Ping checks the connection within the database timeout.
func Ping(ctx context.Context, db *sql.DB) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return db.PingContext(ctx)
}

func dsn(path string) string {
	q := url.Values{}
	for k, v := range dsnParams {
		q.Set(k, v)
	}
	return path + "?" + q.Encode()
}

func tune(ctx context.Context, db *sql.DB, logger zerolog.Logger) error {
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, fmt.Sprintf("PRAGMA %s = %s", p.name, p.value)); err != nil {
			logger.Warn().Err(err).Str("pragma", p.name).Str("value", p.value).Msg("failed to set pragma")
			return fmt.Errorf("failed to set PRAGMA %s: %w", p.name, err)
		}
	}
	return nil
}

func migrate(ctx context.Context, db *sql.DB, logger zerolog.Logger) error {
	fsys, err := fs.Sub(embedMigrations, "migrations")
	if err != nil {
		return fmt.Errorf("failed to open migrations: %w", err)
	}
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, fsys)
	if err != nil {
		return fmt.Errorf("failed to create migration provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	for _, r := range results {
		logger.Info().
			Int64("version", r.Source.Version).
			Str("file", filepath.Base(r.Source.Path)).
			Dur("duration", r.Duration).
			Msg("migration applied")
	}

	version, err := provider.GetDBVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	logger.Debug().Int64("version", version).Int("applied", len(results)).Msg("schema up to date")
	return nil
}
