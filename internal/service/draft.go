package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"dota-draft-advisor/internal/constants"
	"dota-draft-advisor/internal/domain"
	"dota-draft-advisor/internal/draft"
	"dota-draft-advisor/internal/draft/lane"
	"dota-draft-advisor/internal/draft/suggest"
	"dota-draft-advisor/internal/heuristics"
	"dota-draft-advisor/internal/metrics"
	"dota-draft-advisor/internal/middleware"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

var (
	ErrUnknownHero     = errors.New("unknown hero")
	ErrUnknownScenario = errors.New("unknown scenario")
)

type RegistryProvider interface {
	Registry(ctx context.Context) (*draft.Registry, error)
}

type MatchupLoader interface {
	Load(ctx context.Context, heroIDs []int) *draft.MatchupStore
}

type TableProvider interface {
	Current() *heuristics.Table
}

// SuggestResult is one scored batch. BatchID identifies it in logs.
type SuggestResult struct {
	BatchID     string
	Suggestions []suggest.Suggestion
	Weights     heuristics.Weights
	GeneratedAt time.Time
}

type DraftService struct {
	heroes   RegistryProvider
	matchups MatchupLoader
	table    TableProvider
	logger   zerolog.Logger
}

func NewDraftService(heroes RegistryProvider, matchups MatchupLoader, table TableProvider, logger zerolog.Logger) *DraftService {
	return &DraftService{heroes: heroes, matchups: matchups, table: table, logger: logger}
}

func (s *DraftService) Suggest(ctx context.Context, state *domain.DraftState, gameCtx domain.GameContext, roles []string, limit int) (*SuggestResult, error) {
	return s.run(ctx, "suggest", state, nil, func(e *suggest.Engine, _ *draft.MatchupStore) ([]suggest.Suggestion, error) {
		return e.Suggest(state, gameCtx, roles, clampLimit(limit)), nil
	})
}

// ScenarioFilters narrows a scenario's suggestions. Zero values disable a filter.
type ScenarioFilters struct {
	Lane       int
	Phase      string
	CountersTo int
}

func (f ScenarioFilters) build(store *draft.MatchupStore) []suggest.Filter {
	var out []suggest.Filter
	if f.Lane > 0 {
		out = append(out, suggest.OnlyLane(f.Lane))
	}
	if f.Phase != "" {
		out = append(out, suggest.OnlyTimingPhase(f.Phase))
	}
	if f.CountersTo > 0 {
		out = append(out, suggest.CountersTo(f.CountersTo, store))
	}
	return out
}

func (s *DraftService) SuggestScenario(ctx context.Context, state *domain.DraftState, scenario suggest.Scenario, lanes []int, limit int, filters ScenarioFilters) (*SuggestResult, error) {
	if _, ok := suggest.PresetFor(scenario); !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScenario, scenario)
	}
	var related []int
	if filters.CountersTo > 0 {
		related = append(related, filters.CountersTo)
	}
	return s.run(ctx, "suggest_scenario", state, related, func(e *suggest.Engine, store *draft.MatchupStore) ([]suggest.Suggestion, error) {
		return e.SuggestScenario(state, scenario, lanes, clampLimit(limit), filters.build(store)...)
	})
}

// AnalyzeHero scores one hero against the draft, even if it is already picked.
func (s *DraftService) AnalyzeHero(ctx context.Context, state *domain.DraftState, gameCtx domain.GameContext, heroID int) (*suggest.Suggestion, error) {
	res, err := s.run(ctx, "analyze_hero", state, nil, func(e *suggest.Engine, _ *draft.MatchupStore) ([]suggest.Suggestion, error) {
		sg, ok := e.Score(state, gameCtx, heroID)
		if !ok {
			return nil, fmt.Errorf("%w: %d", ErrUnknownHero, heroID)
		}
		return []suggest.Suggestion{sg}, nil
	})
	if err != nil {
		return nil, err
	}
	return &res.Suggestions[0], nil
}

// AssignLanes runs the lane optimizer alone over heroIDs in the given order.
func (s *DraftService) AssignLanes(ctx context.Context, heroIDs []int) ([]lane.Assignment, error) {
	reg, err := s.heroes.Registry(ctx)
	if err != nil {
		return nil, err
	}
	if err := checkKnown(reg, heroIDs); err != nil {
		return nil, err
	}
	return lane.NewOptimizer().Assign(reg.Resolve(heroIDs)), nil
}

// run loads matchups for the enemy picks plus related, which are extra heroes
// a filter needs data for, and hands the engine to score.
func (s *DraftService) run(ctx context.Context, procedure string, state *domain.DraftState, related []int, score func(*suggest.Engine, *draft.MatchupStore) ([]suggest.Suggestion, error)) (*SuggestResult, error) {
	start := time.Now()
	metrics.SuggestRequests.WithLabelValues(procedure).Inc()
	defer func() {
		metrics.SuggestLatency.WithLabelValues(procedure).Observe(time.Since(start).Seconds())
	}()

	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	batchID, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("failed to generate batch id: %w", err)
	}
	logger := s.logger.With().
		Str("batch_id", batchID).
		Str("request_id", middleware.GetRequestID(ctx)).
		Str("procedure", procedure).
		Logger()

	reg, err := s.heroes.Registry(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load hero registry")
		return nil, err
	}
	if state == nil {
		state = domain.NewDraftState()
	}
	enemies := state.EnemyHeroIDs()
	if err := checkKnown(reg, append(append(state.YourHeroIDs(), enemies...), related...)); err != nil {
		return nil, err
	}

	table := s.table.Current()
	store := s.matchups.Load(ctx, lo.Uniq(append(slices.Clone(enemies), related...)))
	engine := suggest.New(reg, store,
		suggest.WithTable(table),
		suggest.WithLogger(logger),
	)

	suggestions, err := score(engine, store)
	if err != nil {
		return nil, err
	}

	degraded := lo.CountBy(suggestions, func(sg suggest.Suggestion) bool { return sg.Degraded })
	metrics.DegradedSuggestions.Add(float64(degraded))

	logger.Info().
		Int("your_picks", len(state.YourHeroIDs())).
		Int("enemy_picks", len(enemies)).
		Int("suggestions", len(suggestions)).
		Int("degraded", degraded).
		Dur("elapsed", time.Since(start)).
		Msg("draft scored")

	return &SuggestResult{
		BatchID:     batchID,
		Suggestions: suggestions,
		Weights:     table.Weights,
		GeneratedAt: time.Now(),
	}, nil
}

func clampLimit(n int) int {
	if n <= 0 {
		return constants.SuggestionLimit
	}
	return min(n, constants.MaxSuggestionLimit)
}

func checkKnown(reg *draft.Registry, ids []int) error {
	for _, id := range ids {
		if _, ok := reg.Hero(id); !ok {
			return fmt.Errorf("%w: %d", ErrUnknownHero, id)
		}
	}
	return nil
}
