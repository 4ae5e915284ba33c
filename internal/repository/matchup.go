package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"dota-draft-advisor/internal/db"
	"dota-draft-advisor/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

type MatchupRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewMatchupRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *MatchupRepository {
	return &MatchupRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

func (r *MatchupRepository) GetByHero(ctx context.Context, heroID int) ([]domain.MatchupRecord, error) {
	rows, err := r.queries.ListMatchupsByHero(ctx, int64(heroID))
	if err != nil {
		return nil, err
	}

	records := make([]domain.MatchupRecord, len(rows))
	for i, row := range rows {
		records[i] = domain.MatchupRecord{
			ID:          row.ID,
			HeroID:      int(row.HeroID),
			OpponentID:  int(row.OpponentID),
			GamesPlayed: int(row.GamesPlayed),
			Wins:        int(row.Wins),
			FetchedAt:   row.FetchedAt,
		}
	}
	return records, nil
}

func matchupSyncKey(heroID int) string {
	return fmt.Sprintf("matchups:%d", heroID)
}

// ShouldRefresh reports whether heroID was never synced or its last sync is
// older than ttl. A sync that returned no matchups still counts.
func (r *MatchupRepository) ShouldRefresh(ctx context.Context, heroID int, ttl time.Duration) (bool, error) {
	state, err := r.queries.GetSyncState(ctx, matchupSyncKey(heroID))
	if errors.Is(err, sql.ErrNoRows) {
		r.logger.Debug().Int("hero_id", heroID).Msg("matchups never synced, should refresh")
		return true, nil
	}
	if err != nil {
		r.logger.Error().Err(err).Int("hero_id", heroID).Msg("failed to get matchup sync state")
		return false, err
	}

	timeSince := time.Since(state.SyncedAt)
	shouldRefresh := timeSince > ttl
	r.logger.Debug().
		Int("hero_id", heroID).
		Time("synced_at", state.SyncedAt).
		Dur("time_since", timeSince).
		Dur("ttl", ttl).
		Bool("should_refresh", shouldRefresh).
		Msg("checking if matchups should refresh")

	return shouldRefresh, nil
}

// Replace swaps every cached matchup of heroID for records and stamps the sync
// time with the oldest record's fetch time.
func (r *MatchupRepository) Replace(ctx context.Context, heroID int, records []domain.MatchupRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)

	if err := qtx.DeleteMatchupsByHero(ctx, int64(heroID)); err != nil {
		return fmt.Errorf("failed to clear matchups for hero %d: %w", heroID, err)
	}

	now := time.Now()
	syncedAt := now
	for _, rec := range records {
		id := rec.ID
		if id == "" {
			id, err = gonanoid.New()
			if err != nil {
				return fmt.Errorf("failed to generate nanoid: %w", err)
			}
		}
		fetchedAt := rec.FetchedAt
		if fetchedAt.IsZero() {
			fetchedAt = now
		}
		if fetchedAt.Before(syncedAt) {
			syncedAt = fetchedAt
		}

		err := qtx.UpsertMatchup(ctx, db.UpsertMatchupParams{
			ID:          id,
			HeroID:      int64(heroID),
			OpponentID:  int64(rec.OpponentID),
			GamesPlayed: int64(rec.GamesPlayed),
			Wins:        int64(rec.Wins),
			FetchedAt:   fetchedAt,
		})
		if err != nil {
			return fmt.Errorf("failed to upsert matchup %d vs %d: %w", heroID, rec.OpponentID, err)
		}
	}

	// stamped even for an empty list so ShouldRefresh honours the ttl
	err = qtx.UpsertSyncState(ctx, db.UpsertSyncStateParams{
		Key:      matchupSyncKey(heroID),
		SyncedAt: syncedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to update matchup sync state for hero %d: %w", heroID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit matchups for hero %d: %w", heroID, err)
	}

	r.logger.Debug().Int("hero_id", heroID).Int("records", len(records)).Msg("matchups stored")
	return nil
}
