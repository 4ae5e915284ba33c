package service

import (
	"context"
	"time"

	"dota-draft-advisor/internal/api"
	"dota-draft-advisor/internal/constants"
	"dota-draft-advisor/internal/domain"
	"dota-draft-advisor/internal/draft"
	"dota-draft-advisor/internal/metrics"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type MatchupSource interface {
	GetMatchups(ctx context.Context, heroID int) ([]api.MatchupEntry, error)
}

type MatchupCache interface {
	GetByHero(ctx context.Context, heroID int) ([]domain.MatchupRecord, error)
	ShouldRefresh(ctx context.Context, heroID int, ttl time.Duration) (bool, error)
	Replace(ctx context.Context, heroID int, records []domain.MatchupRecord) error
}

type MatchupService struct {
	source MatchupSource
	cache  MatchupCache
	ttl    time.Duration
	logger zerolog.Logger
}

func NewMatchupService(source MatchupSource, cache MatchupCache, ttl time.Duration, logger zerolog.Logger) *MatchupService {
	return &MatchupService{source: source, cache: cache, ttl: ttl, logger: logger}
}

// Load fetches matchups for every hero in heroIDs concurrently and returns a
// fully populated store. A hero whose data cannot be loaded is left out, which
// scores as neutral; Load itself never fails.
func (s *MatchupService) Load(ctx context.Context, heroIDs []int) *draft.MatchupStore {
	results := make([][]domain.MatchupRecord, len(heroIDs))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(constants.MatchupFetchConcurrency)
	for i, id := range heroIDs {
		g.Go(func() error {
			results[i] = s.loadOne(gCtx, id)
			return nil
		})
	}
	_ = g.Wait()

	store := draft.NewMatchupStore()
	for i, id := range heroIDs {
		if results[i] != nil {
			store.SetMatchups(id, results[i])
		}
	}

	s.logger.Debug().
		Ints("hero_ids", heroIDs).
		Int("loaded", store.Len()).
		Msg("matchups loaded")
	return store
}

func (s *MatchupService) loadOne(ctx context.Context, heroID int) []domain.MatchupRecord {
	stale, err := s.cache.ShouldRefresh(ctx, heroID, s.ttl)
	if err != nil {
		s.logger.Warn().Err(err).Int("hero_id", heroID).Msg("matchup cache check failed")
		stale = true
	}

	if !stale {
		records, err := s.cache.GetByHero(ctx, heroID)
		if err == nil {
			metrics.MatchupFetches.WithLabelValues("cache").Inc()
			return records
		}
		s.logger.Warn().Err(err).Int("hero_id", heroID).Msg("failed to read cached matchups")
	}

	apiCtx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()

	entries, err := s.source.GetMatchups(apiCtx, heroID)
	if err != nil {
		metrics.MatchupFetches.WithLabelValues("error").Inc()
		s.logger.Warn().Err(err).Int("hero_id", heroID).Msg("failed to fetch matchups")
		return s.fallback(ctx, heroID)
	}
	metrics.MatchupFetches.WithLabelValues("api").Inc()

	now := time.Now()
	records := make([]domain.MatchupRecord, 0, len(entries))
	for _, e := range entries {
		rec := e.Record(heroID)
		rec.FetchedAt = now
		records = append(records, rec)
	}

	if err := s.cache.Replace(ctx, heroID, records); err != nil {
		s.logger.Warn().Err(err).Int("hero_id", heroID).Msg("failed to cache matchups")
	}
	return records
}

// fallback serves whatever is cached, however old.
func (s *MatchupService) fallback(ctx context.Context, heroID int) []domain.MatchupRecord {
	records, err := s.cache.GetByHero(ctx, heroID)
	if err != nil || len(records) == 0 {
		return nil
	}
	s.logger.Debug().Int("hero_id", heroID).Int("records", len(records)).Msg("using stale matchups")
	return records
}
