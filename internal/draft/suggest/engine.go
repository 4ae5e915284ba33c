// Package suggest ranks undrafted heroes for a draft state by combining the
// eight heuristic factors into a weighted score.
package suggest

import (
	"fmt"
	"runtime/debug"
	"sort"

	"dota-draft-advisor/internal/domain"
	"dota-draft-advisor/internal/draft"
	"dota-draft-advisor/internal/draft/itembuild"
	"dota-draft-advisor/internal/draft/lane"
	"dota-draft-advisor/internal/draft/proscene"
	"dota-draft-advisor/internal/draft/synergy"
	"dota-draft-advisor/internal/draft/timing"
	"dota-draft-advisor/internal/heuristics"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

const (
	DefaultLimit = 10

	metaBaselineWinRate = 45.0
	metaWinRateScale    = 5.0
	metaWinWeight       = 0.7
	metaPickWeight      = 0.3

	strategyBonus       = 0.1
	offLanePenaltyRatio = 0.5
)

type ItemBuilder interface {
	Generate(hero *domain.Hero, ctx domain.GameContext) []itembuild.ItemBuild
	ComputeSynergy(hero *domain.Hero, team []*domain.Hero) float64
}

type LaneAssigner interface {
	Assign(heroes []*domain.Hero) []lane.Assignment
}

type TimingAnalyzer interface {
	Analyze(hero *domain.Hero, ctx domain.GameContext) [3]timing.Window
}

type ProAnalyzer interface {
	Analyze(hero *domain.Hero) proscene.Pattern
}

type SynergyPredictor interface {
	Team(heroes []*domain.Hero) float64
	RoleFit(candidate *domain.Hero, team []*domain.Hero) float64
}

type Suggestion struct {
	Hero       *domain.Hero
	Score      float64
	Breakdown  ScoreBreakdown
	Reasons    []string
	ItemBuilds []itembuild.ItemBuild
	Lanes      []lane.Assignment
	Timing     []timing.Window
	ProPattern proscene.Pattern
	Degraded   bool
}

// Engine scores candidates against one snapshot of registry, matchups and
// heuristics. Build a new Engine per query; it keeps no state between calls.
type Engine struct {
	registry *draft.Registry
	matchups *draft.MatchupStore
	table    *heuristics.Table

	items   ItemBuilder
	lanes   LaneAssigner
	timing  TimingAnalyzer
	pro     ProAnalyzer
	synergy SynergyPredictor

	logger zerolog.Logger
}

type Option func(*Engine)

func WithTable(t *heuristics.Table) Option {
	return func(e *Engine) { e.table = t }
}

func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

func WithItemBuilder(b ItemBuilder) Option {
	return func(e *Engine) { e.items = b }
}

func WithLaneAssigner(a LaneAssigner) Option {
	return func(e *Engine) { e.lanes = a }
}

func WithTimingAnalyzer(a TimingAnalyzer) Option {
	return func(e *Engine) { e.timing = a }
}

func WithProAnalyzer(a ProAnalyzer) Option {
	return func(e *Engine) { e.pro = a }
}

func WithSynergyPredictor(p SynergyPredictor) Option {
	return func(e *Engine) { e.synergy = p }
}

func New(registry *draft.Registry, matchups *draft.MatchupStore, opts ...Option) *Engine {
	e := &Engine{
		registry: registry,
		matchups: matchups,
		logger:   zerolog.Nop(),
		items:    itembuild.NewAnalyzer(),
		lanes:    lane.NewOptimizer(),
		timing:   timing.NewAnalyzer(),
		synergy:  synergy.NewPredictor(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.table == nil {
		e.table = heuristics.Default()
	}
	if e.pro == nil {
		e.pro = proscene.NewAnalyzer(e.table)
	}
	if e.matchups == nil {
		e.matchups = draft.NewMatchupStore()
	}
	if e.registry == nil {
		e.registry = draft.NewRegistry(nil, nil)
	}
	return e
}

func (e *Engine) Weights() heuristics.Weights {
	return e.table.Weights
}

// teams resolves both sides of the draft once per query.
type teams struct {
	own     []*domain.Hero
	enemies []*domain.Hero
}

func (e *Engine) resolve(state *domain.DraftState) teams {
	return teams{
		own:     e.registry.Resolve(state.YourHeroIDs()),
		enemies: e.registry.Resolve(state.EnemyHeroIDs()),
	}
}

// Suggest returns the top limit candidates, best first. Heroes already in
// either team are never suggested; a non-empty roles filter keeps heroes
// carrying at least one of the roles.
func (e *Engine) Suggest(state *domain.DraftState, ctx domain.GameContext, roles []string, limit int) []Suggestion {
	return e.SuggestFiltered(state, ctx, roles, limit)
}

// SuggestFiltered applies post-ranking filters before truncating to limit.
func (e *Engine) SuggestFiltered(state *domain.DraftState, ctx domain.GameContext, roles []string, limit int, filters ...Filter) []Suggestion {
	if limit <= 0 {
		limit = DefaultLimit
	}
	ranked := Apply(e.rank(state, ctx, roles), filters...)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// Score evaluates a single hero against the draft, whether or not it is picked.
func (e *Engine) Score(state *domain.DraftState, ctx domain.GameContext, heroID int) (Suggestion, bool) {
	h, ok := e.registry.Hero(heroID)
	if !ok {
		return Suggestion{}, false
	}
	return e.safeScore(h, e.resolve(state), ctx), true
}

func (e *Engine) rank(state *domain.DraftState, ctx domain.GameContext, roles []string) []Suggestion {
	if state == nil {
		state = domain.NewDraftState()
	}
	picked := state.Picked()
	t := e.resolve(state)

	out := make([]Suggestion, 0, e.registry.Len())
	for _, h := range e.registry.Heroes() {
		if _, taken := picked[h.ID]; taken {
			continue
		}
		if len(roles) > 0 && !lo.Some(h.Roles, roles) {
			continue
		}
		out = append(out, e.safeScore(h, t, ctx))
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Hero.ID < out[j].Hero.ID
	})
	return out
}

// safeScore is the single boundary between the full scorer and the degraded
// one: any failure while scoring a candidate yields a neutral suggestion.
func (e *Engine) safeScore(h *domain.Hero, t teams, ctx domain.GameContext) (s Suggestion) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn().
				Int("hero_id", h.ID).
				Str("hero", h.LocalizedName).
				Str("panic", fmt.Sprint(r)).
				Bytes("stack", debug.Stack()).
				Msg("candidate scoring failed, using degraded suggestion")
			s = e.degraded(h)
		}
	}()
	return e.score(h, t, ctx)
}

func (e *Engine) degraded(h *domain.Hero) Suggestion {
	b := NeutralBreakdown()
	return Suggestion{
		Hero:      h,
		Score:     b.Total(e.table.Weights),
		Breakdown: b,
		Reasons:   []string{reasonDegraded},
		Degraded:  true,
	}
}

func (e *Engine) score(h *domain.Hero, t teams, ctx domain.GameContext) Suggestion {
	// an already picked candidate is scored as if its slot were still open
	own := lo.Reject(t.own, func(o *domain.Hero, _ int) bool { return o.ID == h.ID })
	withCandidate := make([]*domain.Hero, 0, len(own)+1)
	withCandidate = append(withCandidate, own...)
	withCandidate = append(withCandidate, h)

	builds := e.items.Generate(h, ctx)
	assignments := e.lanes.Assign(withCandidate)
	windows := e.timing.Analyze(h, ctx)
	pattern := e.pro.Analyze(h)

	b := ScoreBreakdown{
		Meta:             e.metaScore(h),
		Counter:          clamp01(e.matchups.CounterScore(h.ID, t.enemies) / 100),
		Synergy:          clamp01(e.synergy.RoleFit(h, own)),
		ItemSynergy:      e.itemSynergyScore(h, own, ctx),
		LaneOptimization: laneScore(assignments, h.ID, ctx.PreferredLanes),
		Timing:           timingScore(windows, ctx),
		ProPattern:       clamp01(pattern.Score()),
		MLSynergy:        clamp01(e.synergy.Team(withCandidate)),
	}

	return Suggestion{
		Hero:       h,
		Score:      b.Total(e.table.Weights),
		Breakdown:  b,
		Reasons:    reasons(b, assignments, h.ID),
		ItemBuilds: builds,
		Lanes:      assignments,
		Timing:     windows[:],
		ProPattern: pattern,
	}
}

// metaScore blends win-rate deviation from a 45% baseline with pick share.
func (e *Engine) metaScore(h *domain.Hero) float64 {
	stats, ok := e.registry.Stats(h.ID)
	if !ok || stats.PubPick == 0 {
		return NeutralScore
	}
	wr := draft.WinRate(stats)
	winPart := clamp01((wr - metaBaselineWinRate) * metaWinRateScale / 100)
	score := metaWinWeight*winPart + metaPickWeight*e.registry.PickShare(h.ID)
	score += e.table.Boost(h.Name, heuristics.CategoryMarquee)
	return clamp01(score)
}

func (e *Engine) itemSynergyScore(h *domain.Hero, own []*domain.Hero, ctx domain.GameContext) float64 {
	score := e.items.ComputeSynergy(h, own)
	switch {
	case ctx.ItemStrategy == domain.ItemStrategyEarly && h.HasRole(domain.RoleSupport):
		score += strategyBonus
	case ctx.ItemStrategy == domain.ItemStrategyScaling && h.HasRole(domain.RoleCarry):
		score += strategyBonus
	case ctx.ItemStrategy == domain.ItemStrategyUtility && h.HasRole(domain.RoleInitiator):
		score += strategyBonus
	}
	return clamp01(score)
}

func laneScore(assignments []lane.Assignment, heroID int, preferred []int) float64 {
	a, ok := lane.For(assignments, heroID)
	if !ok {
		return NeutralScore
	}
	c := a.Confidence
	if !lane.Fits(a, preferred) {
		c *= offLanePenaltyRatio
	}
	return clamp01(c)
}

// timingScore averages window power; an explicit game length also weighs the
// window the game is expected to end in.
func timingScore(windows [3]timing.Window, ctx domain.GameContext) float64 {
	avg := timing.AveragePower(windows[:])
	d, ok := ctx.Duration()
	if !ok {
		return clamp01(avg)
	}
	return clamp01((avg + timing.At(windows[:], d).PowerLevel) / 2)
}
