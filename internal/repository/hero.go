package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"dota-draft-advisor/internal/constants"
	"dota-draft-advisor/internal/db"
	"dota-draft-advisor/internal/domain"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

const heroSyncKey = "heroes"

type HeroRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewHeroRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *HeroRepository {
	return &HeroRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

func (r *HeroRepository) List(ctx context.Context) ([]domain.Hero, error) {
	rows, err := r.queries.ListHeroes(ctx)
	if err != nil {
		return nil, err
	}

	heroes := make([]domain.Hero, 0, len(rows))
	for _, row := range rows {
		h, err := heroFromRow(row)
		if err != nil {
			return nil, err
		}
		heroes = append(heroes, h)
	}
	return heroes, nil
}

func (r *HeroRepository) Get(ctx context.Context, id int) (*domain.Hero, error) {
	row, err := r.queries.GetHero(ctx, int64(id))
	if err != nil {
		return nil, err
	}
	h, err := heroFromRow(row)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *HeroRepository) ListStats(ctx context.Context) ([]domain.HeroStats, error) {
	rows, err := r.queries.ListHeroStats(ctx)
	if err != nil {
		return nil, err
	}

	stats := make([]domain.HeroStats, 0, len(rows))
	for _, row := range rows {
		s, err := statsFromRow(row)
		if err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, nil
}

func (r *HeroRepository) Count(ctx context.Context) (int, error) {
	n, err := r.queries.CountHeroes(ctx)
	return int(n), err
}

// ShouldRefresh reports whether the last completed hero sync is older than ttl.
func (r *HeroRepository) ShouldRefresh(ctx context.Context, ttl time.Duration) (bool, error) {
	state, err := r.queries.GetSyncState(ctx, heroSyncKey)
	if errors.Is(err, sql.ErrNoRows) {
		r.logger.Debug().Msg("heroes never synced, should refresh")
		return true, nil
	}
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to get hero sync state")
		return false, err
	}

	timeSince := time.Since(state.SyncedAt)
	shouldRefresh := timeSince > ttl
	r.logger.Debug().
		Time("synced_at", state.SyncedAt).
		Dur("time_since", timeSince).
		Dur("ttl", ttl).
		Bool("should_refresh", shouldRefresh).
		Msg("checking if heroes should refresh")

	return shouldRefresh, nil
}

// UpsertBatch writes heroes and their stats in one transaction and stamps the
// sync time on success.
func (r *HeroRepository) UpsertBatch(ctx context.Context, heroes []domain.Hero, stats []domain.HeroStats) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)
	now := time.Now()

	for i := 0; i < len(heroes); i += constants.DBBatchSize {
		end := min(i+constants.DBBatchSize, len(heroes))
		for _, h := range heroes[i:end] {
			roles, err := json.Marshal(h.Roles)
			if err != nil {
				return fmt.Errorf("failed to encode roles for hero %d: %w", h.ID, err)
			}
			createdAt := h.CreatedAt
			if createdAt.IsZero() {
				createdAt = now
			}
			err = qtx.UpsertHero(ctx, db.UpsertHeroParams{
				ID:            int64(h.ID),
				Name:          h.Name,
				LocalizedName: h.LocalizedName,
				PrimaryAttr:   h.PrimaryAttr,
				AttackType:    h.AttackType,
				Roles:         string(roles),
				Img:           h.Img,
				Icon:          h.Icon,
				CreatedAt:     createdAt,
				UpdatedAt:     now,
			})
			if err != nil {
				return fmt.Errorf("failed to upsert hero %d: %w", h.ID, err)
			}
		}
	}

	for _, s := range stats {
		params, err := statsParams(s, now)
		if err != nil {
			return err
		}
		if err := qtx.UpsertHeroStats(ctx, params); err != nil {
			return fmt.Errorf("failed to upsert stats for hero %d: %w", s.HeroID, err)
		}
	}

	if err := qtx.UpsertSyncState(ctx, db.UpsertSyncStateParams{Key: heroSyncKey, SyncedAt: now}); err != nil {
		return fmt.Errorf("failed to update sync state: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit hero batch: %w", err)
	}

	r.logger.Debug().
		Int("heroes", len(heroes)).
		Int("stats", len(stats)).
		Msg("hero batch stored")
	return nil
}

func heroFromRow(row db.Hero) (domain.Hero, error) {
	var roles []string
	if err := json.Unmarshal([]byte(row.Roles), &roles); err != nil {
		return domain.Hero{}, fmt.Errorf("failed to decode roles for hero %d: %w", row.ID, err)
	}
	return domain.Hero{
		ID:            int(row.ID),
		Name:          row.Name,
		LocalizedName: row.LocalizedName,
		PrimaryAttr:   row.PrimaryAttr,
		AttackType:    row.AttackType,
		Roles:         roles,
		Img:           row.Img,
		Icon:          row.Icon,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}, nil
}

func statsFromRow(row db.HeroStat) (domain.HeroStats, error) {
	s := domain.HeroStats{
		HeroID:    int(row.HeroID),
		PubPick:   int(row.PubPick),
		PubWin:    int(row.PubWin),
		ProPick:   int(row.ProPick),
		ProWin:    int(row.ProWin),
		ProBan:    int(row.ProBan),
		TurboPick: int(row.TurboPick),
		TurboWin:  int(row.TurboWin),
		UpdatedAt: row.UpdatedAt,
	}

	var bracketPick, bracketWin []int
	columns := []struct {
		name string
		raw  string
		dst  *[]int
	}{
		{"pub_pick_trend", row.PubPickTrend, &s.PubPickTrend},
		{"pub_win_trend", row.PubWinTrend, &s.PubWinTrend},
		{"turbo_pick_trend", row.TurboPickTrend, &s.TurboPickTrend},
		{"turbo_win_trend", row.TurboWinTrend, &s.TurboWinTrend},
		{"bracket_pick", row.BracketPick, &bracketPick},
		{"bracket_win", row.BracketWin, &bracketWin},
	}
	for _, c := range columns {
		if err := json.Unmarshal([]byte(c.raw), c.dst); err != nil {
			return domain.HeroStats{}, fmt.Errorf("failed to decode %s for hero %d: %w", c.name, row.HeroID, err)
		}
	}
	copy(s.BracketPick[:], bracketPick)
	copy(s.BracketWin[:], bracketWin)

	return s, nil
}

func statsParams(s domain.HeroStats, now time.Time) (db.UpsertHeroStatsParams, error) {
	p := db.UpsertHeroStatsParams{
		HeroID:    int64(s.HeroID),
		PubPick:   int64(s.PubPick),
		PubWin:    int64(s.PubWin),
		ProPick:   int64(s.ProPick),
		ProWin:    int64(s.ProWin),
		ProBan:    int64(s.ProBan),
		TurboPick: int64(s.TurboPick),
		TurboWin:  int64(s.TurboWin),
		UpdatedAt: now,
	}

	columns := []struct {
		name string
		src  any
		dst  *string
	}{
		{"pub_pick_trend", nonNil(s.PubPickTrend), &p.PubPickTrend},
		{"pub_win_trend", nonNil(s.PubWinTrend), &p.PubWinTrend},
		{"turbo_pick_trend", nonNil(s.TurboPickTrend), &p.TurboPickTrend},
		{"turbo_win_trend", nonNil(s.TurboWinTrend), &p.TurboWinTrend},
		{"bracket_pick", s.BracketPick, &p.BracketPick},
		{"bracket_win", s.BracketWin, &p.BracketWin},
	}
	for _, c := range columns {
		b, err := json.Marshal(c.src)
		if err != nil {
			return p, fmt.Errorf("failed to encode %s for hero %d: %w", c.name, s.HeroID, err)
		}
		*c.dst = string(b)
	}
	return p, nil
}

func nonNil(v []int) []int {
	if v == nil {
		return []int{}
	}
	return v
}
