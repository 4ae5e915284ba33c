package server

import (
	"time"

	"dota-draft-advisor/internal/domain"
	"dota-draft-advisor/internal/draft"
	"dota-draft-advisor/internal/draft/itembuild"
	"dota-draft-advisor/internal/draft/lane"
	"dota-draft-advisor/internal/draft/proscene"
	"dota-draft-advisor/internal/draft/suggest"
	"dota-draft-advisor/internal/draft/timing"
	"dota-draft-advisor/internal/heuristics"
	"dota-draft-advisor/internal/service"
)

type GameContext struct {
	ExpectedDuration *int   `json:"expected_duration,omitempty" validate:"omitempty,gte=1,lte=180"`
	PreferredLanes   []int  `json:"preferred_lanes,omitempty" validate:"max=5,dive,gte=1,lte=5"`
	Playstyle        string `json:"playstyle,omitempty" validate:"omitempty,oneof=aggressive balanced defensive"`
	ItemStrategy     string `json:"item_strategy,omitempty" validate:"omitempty,oneof=early scaling utility"`
}

func (c GameContext) toDomain() domain.GameContext {
	return domain.GameContext{
		ExpectedDuration: c.ExpectedDuration,
		PreferredLanes:   c.PreferredLanes,
		Playstyle:        c.Playstyle,
		ItemStrategy:     c.ItemStrategy,
	}
}

type SuggestRequest struct {
	YourTeam  []int       `json:"your_team" validate:"max=5,dive,gte=0"`
	EnemyTeam []int       `json:"enemy_team" validate:"max=5,dive,gte=0"`
	Roles     []string    `json:"roles,omitempty" validate:"max=9,dive,oneof=Carry Support Nuker Disabler Jungler Durable Escape Pusher Initiator"`
	Context   GameContext `json:"context"`
	Limit     int         `json:"limit,omitempty" validate:"gte=0,lte=50"`
}

type SuggestScenarioRequest struct {
	YourTeam       []int  `json:"your_team" validate:"max=5,dive,gte=0"`
	EnemyTeam      []int  `json:"enemy_team" validate:"max=5,dive,gte=0"`
	Scenario       string `json:"scenario" validate:"required,oneof=early_game late_game team_fight push defensive"`
	PreferredLanes []int  `json:"preferred_lanes,omitempty" validate:"max=5,dive,gte=1,lte=5"`
	Limit          int    `json:"limit,omitempty" validate:"gte=0,lte=50"`
	OnlyLane       int    `json:"only_lane,omitempty" validate:"omitempty,gte=1,lte=5"`
	OnlyPhase      string `json:"only_phase,omitempty" validate:"omitempty,oneof=early mid late"`
	CountersTo     int    `json:"counters_to,omitempty" validate:"omitempty,gt=0"`
}

func (r *SuggestScenarioRequest) filters() service.ScenarioFilters {
	return service.ScenarioFilters{
		Lane:       r.OnlyLane,
		Phase:      r.OnlyPhase,
		CountersTo: r.CountersTo,
	}
}

type AnalyzeHeroRequest struct {
	HeroID    int         `json:"hero_id" validate:"required,gt=0"`
	YourTeam  []int       `json:"your_team" validate:"max=5,dive,gte=0"`
	EnemyTeam []int       `json:"enemy_team" validate:"max=5,dive,gte=0"`
	Context   GameContext `json:"context"`
}

type AssignLanesRequest struct {
	HeroIDs []int `json:"hero_ids" validate:"required,min=1,max=5,dive,gt=0"`
}

type SyncHeroesRequest struct{}

type SyncHeroesResponse struct {
	Synced int `json:"synced"`
}

type Hero struct {
	ID            int        `json:"id"`
	Name          string     `json:"name"`
	LocalizedName string     `json:"localized_name"`
	PrimaryAttr   string     `json:"primary_attr"`
	AttackType    string     `json:"attack_type"`
	Roles         []string   `json:"roles"`
	Img           string     `json:"img,omitempty"`
	Icon          string     `json:"icon,omitempty"`
	Stats         *HeroStats `json:"stats,omitempty"`
}

// HeroStats carries win percentages; BracketWinRates runs Herald to Immortal.
type HeroStats struct {
	WinRate         float64   `json:"win_rate"`
	ProWinRate      float64   `json:"pro_win_rate"`
	TurboWinRate    float64   `json:"turbo_win_rate"`
	BracketWinRates []float64 `json:"bracket_win_rates"`
	PickShare       float64   `json:"pick_share"`
}

type ListHeroesResponse struct {
	Heroes []Hero `json:"heroes"`
}

type Weights struct {
	Counter          float64 `json:"counter"`
	Synergy          float64 `json:"synergy"`
	Meta             float64 `json:"meta"`
	ItemSynergy      float64 `json:"item_synergy"`
	LaneOptimization float64 `json:"lane_optimization"`
	Timing           float64 `json:"timing"`
	ProPattern       float64 `json:"pro_pattern"`
	MLSynergy        float64 `json:"ml_synergy"`
}

type ScoreBreakdown struct {
	Meta             float64 `json:"meta"`
	Counter          float64 `json:"counter"`
	Synergy          float64 `json:"synergy"`
	ItemSynergy      float64 `json:"item_synergy"`
	LaneOptimization float64 `json:"lane_optimization"`
	Timing           float64 `json:"timing"`
	ProPattern       float64 `json:"pro_pattern"`
	MLSynergy        float64 `json:"ml_synergy"`
}

type ItemTiming struct {
	Item   string `json:"item"`
	Minute int    `json:"minute"`
}

type ItemBuild struct {
	Name          string       `json:"name"`
	Items         []string     `json:"items"`
	Timings       []ItemTiming `json:"timings"`
	Effectiveness float64      `json:"effectiveness"`
	Phase         string       `json:"phase"`
}

type LaneAssignment struct {
	Position   int      `json:"position"`
	HeroID     int      `json:"hero_id"`
	Confidence float64  `json:"confidence"`
	Reasons    []string `json:"reasons"`
}

type TimingWindow struct {
	Phase      string   `json:"phase"`
	Start      int      `json:"start"`
	End        int      `json:"end"`
	PowerLevel float64  `json:"power_level"`
	KeyItems   []string `json:"key_items"`
	Objectives []string `json:"objectives"`
}

type ProPattern struct {
	PickOrder           int      `json:"pick_order"`
	BanPriority         float64  `json:"ban_priority"`
	FirstPickRate       float64  `json:"first_pick_rate"`
	SituationalPickRate float64  `json:"situational_pick_rate"`
	Pairings            []string `json:"pairings"`
	Counters            []string `json:"counters"`
}

type Suggestion struct {
	Hero       Hero             `json:"hero"`
	Score      float64          `json:"score"`
	Breakdown  ScoreBreakdown   `json:"breakdown"`
	Reasons    []string         `json:"reasons"`
	ItemBuilds []ItemBuild      `json:"item_builds"`
	Lanes      []LaneAssignment `json:"lanes"`
	Timing     []TimingWindow   `json:"timing"`
	ProPattern ProPattern       `json:"pro_pattern"`
	Degraded   bool             `json:"degraded,omitempty"`
}

type SuggestResponse struct {
	BatchID     string       `json:"batch_id"`
	GeneratedAt time.Time    `json:"generated_at"`
	Weights     Weights      `json:"weights"`
	Suggestions []Suggestion `json:"suggestions"`
}

type AnalyzeHeroResponse struct {
	Suggestion Suggestion `json:"suggestion"`
}

type AssignLanesResponse struct {
	Assignments []LaneAssignment `json:"assignments"`
}

func toHero(h *domain.Hero) Hero {
	return Hero{
		ID:            h.ID,
		Name:          h.Name,
		LocalizedName: h.LocalizedName,
		PrimaryAttr:   h.PrimaryAttr,
		AttackType:    h.AttackType,
		Roles:         h.Roles,
		Img:           h.Img,
		Icon:          h.Icon,
	}
}

func toHeroStats(reg *draft.Registry, id int) *HeroStats {
	s, ok := reg.Stats(id)
	if !ok {
		return nil
	}
	brackets := make([]float64, domain.NumBrackets)
	for i := range brackets {
		brackets[i] = draft.BracketWinRate(s, i+1)
	}
	return &HeroStats{
		WinRate:         draft.WinRate(s),
		ProWinRate:      draft.ProWinRate(s),
		TurboWinRate:    draft.TurboWinRate(s),
		BracketWinRates: brackets,
		PickShare:       reg.PickShare(id),
	}
}

func toWeights(w heuristics.Weights) Weights {
	return Weights{
		Counter:          w.Counter,
		Synergy:          w.Synergy,
		Meta:             w.Meta,
		ItemSynergy:      w.ItemSynergy,
		LaneOptimization: w.LaneOptimization,
		Timing:           w.Timing,
		ProPattern:       w.ProPattern,
		MLSynergy:        w.MLSynergy,
	}
}

func toItemBuilds(builds []itembuild.ItemBuild) []ItemBuild {
	out := make([]ItemBuild, len(builds))
	for i, b := range builds {
		timings := make([]ItemTiming, len(b.Timings))
		for j, t := range b.Timings {
			timings[j] = ItemTiming{Item: t.Item, Minute: t.Minute}
		}
		out[i] = ItemBuild{
			Name:          b.Name,
			Items:         b.Items,
			Timings:       timings,
			Effectiveness: b.Effectiveness,
			Phase:         b.Phase,
		}
	}
	return out
}

func toLanes(assignments []lane.Assignment) []LaneAssignment {
	out := make([]LaneAssignment, len(assignments))
	for i, a := range assignments {
		out[i] = LaneAssignment{
			Position:   a.Position,
			HeroID:     a.Hero.ID,
			Confidence: a.Confidence,
			Reasons:    a.Reasons,
		}
	}
	return out
}

func toWindows(windows []timing.Window) []TimingWindow {
	out := make([]TimingWindow, len(windows))
	for i, w := range windows {
		out[i] = TimingWindow{
			Phase:      w.Phase,
			Start:      w.Start,
			End:        w.End,
			PowerLevel: w.PowerLevel,
			KeyItems:   w.KeyItems,
			Objectives: w.Objectives,
		}
	}
	return out
}

func toPattern(p proscene.Pattern) ProPattern {
	return ProPattern{
		PickOrder:           p.PickOrder,
		BanPriority:         p.BanPriority,
		FirstPickRate:       p.FirstPickRate,
		SituationalPickRate: p.SituationalPickRate,
		Pairings:            p.Pairings,
		Counters:            p.Counters,
	}
}

func toSuggestion(s suggest.Suggestion) Suggestion {
	b := s.Breakdown
	return Suggestion{
		Hero:  toHero(s.Hero),
		Score: s.Score,
		Breakdown: ScoreBreakdown{
			Meta:             b.Meta,
			Counter:          b.Counter,
			Synergy:          b.Synergy,
			ItemSynergy:      b.ItemSynergy,
			LaneOptimization: b.LaneOptimization,
			Timing:           b.Timing,
			ProPattern:       b.ProPattern,
			MLSynergy:        b.MLSynergy,
		},
		Reasons:    s.Reasons,
		ItemBuilds: toItemBuilds(s.ItemBuilds),
		Lanes:      toLanes(s.Lanes),
		Timing:     toWindows(s.Timing),
		ProPattern: toPattern(s.ProPattern),
		Degraded:   s.Degraded,
	}
}

func toSuggestResponse(res *service.SuggestResult) *SuggestResponse {
	out := &SuggestResponse{
		BatchID:     res.BatchID,
		GeneratedAt: res.GeneratedAt,
		Weights:     toWeights(res.Weights),
		Suggestions: make([]Suggestion, len(res.Suggestions)),
	}
	for i, s := range res.Suggestions {
		out.Suggestions[i] = toSuggestion(s)
	}
	return out
}
