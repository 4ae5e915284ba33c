package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dota-draft-advisor/internal/api"
	"dota-draft-advisor/internal/constants"
	"dota-draft-advisor/internal/domain"
	"dota-draft-advisor/internal/draft"
	"dota-draft-advisor/internal/metrics"

	"github.com/rs/zerolog"
)

// ErrNoHeroData is returned when the cache is empty and OpenDota cannot be reached.
var ErrNoHeroData = errors.New("no hero data available")

type HeroSource interface {
	GetHeroStats(ctx context.Context) ([]api.HeroStatsEntry, error)
}

type HeroStore interface {
	List(ctx context.Context) ([]domain.Hero, error)
	ListStats(ctx context.Context) ([]domain.HeroStats, error)
	Count(ctx context.Context) (int, error)
	ShouldRefresh(ctx context.Context, ttl time.Duration) (bool, error)
	UpsertBatch(ctx context.Context, heroes []domain.Hero, stats []domain.HeroStats) error
}

type HeroService struct {
	source HeroSource
	repo   HeroStore
	ttl    time.Duration
	logger zerolog.Logger
}

func NewHeroService(source HeroSource, repo HeroStore, ttl time.Duration, logger zerolog.Logger) *HeroService {
	return &HeroService{source: source, repo: repo, ttl: ttl, logger: logger}
}

// Sync pulls hero stats from OpenDota and stores them. Entries with a
// non-positive id are dropped.
func (s *HeroService) Sync(ctx context.Context) (int, error) {
	apiCtx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()

	entries, err := s.source.GetHeroStats(apiCtx)
	if err != nil {
		metrics.HeroSyncs.WithLabelValues("error").Inc()
		s.logger.Error().Err(err).Msg("failed to fetch hero stats")
		return 0, fmt.Errorf("failed to fetch hero stats: %w", err)
	}

	heroes := make([]domain.Hero, 0, len(entries))
	stats := make([]domain.HeroStats, 0, len(entries))
	for _, e := range entries {
		if e.ID <= 0 {
			s.logger.Warn().Int("hero_id", e.ID).Str("name", e.Name).Msg("skipping hero with invalid id")
			continue
		}
		heroes = append(heroes, e.Hero())
		stats = append(stats, e.Stats())
	}

	if err := s.repo.UpsertBatch(ctx, heroes, stats); err != nil {
		metrics.HeroSyncs.WithLabelValues("error").Inc()
		s.logger.Error().Err(err).Msg("failed to store hero stats")
		return 0, fmt.Errorf("failed to store hero stats: %w", err)
	}

	metrics.HeroSyncs.WithLabelValues("ok").Inc()
	s.logger.Info().Int("heroes", len(heroes)).Msg("hero stats synced")
	return len(heroes), nil
}

// EnsureFresh syncs when the cache is older than the configured ttl. A failed
// sync is tolerated while stale data exists.
func (s *HeroService) EnsureFresh(ctx context.Context) error {
	shouldRefresh, err := s.repo.ShouldRefresh(ctx, s.ttl)
	if err != nil {
		return fmt.Errorf("failed to check hero cache: %w", err)
	}
	if !shouldRefresh {
		return nil
	}

	if _, syncErr := s.Sync(ctx); syncErr != nil {
		n, err := s.repo.Count(ctx)
		if err != nil {
			return fmt.Errorf("failed to count cached heroes: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("%w: %w", ErrNoHeroData, syncErr)
		}
		s.logger.Warn().Err(syncErr).Int("cached", n).Msg("hero sync failed, serving stale data")
	}
	return nil
}

// Registry builds a registry snapshot from the cache.
func (s *HeroService) Registry(ctx context.Context) (*draft.Registry, error) {
	if err := s.EnsureFresh(ctx); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	heroes, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load heroes: %w", err)
	}
	stats, err := s.repo.ListStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load hero stats: %w", err)
	}
	return draft.NewRegistry(heroes, stats), nil
}
