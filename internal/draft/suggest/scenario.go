package suggest

import (
	"fmt"
	"slices"

	"dota-draft-advisor/internal/domain"
	"dota-draft-advisor/internal/draft"
	"dota-draft-advisor/internal/draft/timing"
)

type Scenario string

const (
	ScenarioEarlyGame Scenario = "early_game"
	ScenarioLateGame  Scenario = "late_game"
	ScenarioTeamFight Scenario = "team_fight"
	ScenarioPush      Scenario = "push"
	ScenarioDefensive Scenario = "defensive"
)

// Preset seeds the game context and role filter for a canned scenario.
type Preset struct {
	Context domain.GameContext
	Roles   []string
}

var presets = map[Scenario]Preset{
	ScenarioEarlyGame: {
		Context: domain.GameContext{
			ExpectedDuration: domain.Minutes(25),
			Playstyle:        domain.PlaystyleAggressive,
			ItemStrategy:     domain.ItemStrategyEarly,
		},
	},
	ScenarioLateGame: {
		Context: domain.GameContext{
			ExpectedDuration: domain.Minutes(60),
			Playstyle:        domain.PlaystyleBalanced,
			ItemStrategy:     domain.ItemStrategyScaling,
		},
	},
	ScenarioTeamFight: {
		Context: domain.GameContext{
			ExpectedDuration: domain.Minutes(35),
			Playstyle:        domain.PlaystyleBalanced,
			ItemStrategy:     domain.ItemStrategyUtility,
		},
		Roles: []string{domain.RoleInitiator, domain.RoleDisabler, domain.RoleNuker},
	},
	ScenarioPush: {
		Context: domain.GameContext{
			ExpectedDuration: domain.Minutes(28),
			Playstyle:        domain.PlaystyleAggressive,
			ItemStrategy:     domain.ItemStrategyEarly,
		},
		Roles: []string{domain.RolePusher},
	},
	ScenarioDefensive: {
		Context: domain.GameContext{
			ExpectedDuration: domain.Minutes(50),
			Playstyle:        domain.PlaystyleDefensive,
			ItemStrategy:     domain.ItemStrategyScaling,
		},
		Roles: []string{domain.RoleDurable, domain.RoleSupport, domain.RoleCarry},
	},
}

func Scenarios() []Scenario {
	return []Scenario{ScenarioEarlyGame, ScenarioLateGame, ScenarioTeamFight, ScenarioPush, ScenarioDefensive}
}

func PresetFor(s Scenario) (Preset, bool) {
	p, ok := presets[s]
	if !ok {
		return Preset{}, false
	}
	p.Roles = slices.Clone(p.Roles)
	return p, true
}

// SuggestScenario runs Suggest with the scenario's preset. Preferred lanes from
// the caller are kept since no preset sets them.
func (e *Engine) SuggestScenario(state *domain.DraftState, s Scenario, lanes []int, limit int, filters ...Filter) ([]Suggestion, error) {
	p, ok := PresetFor(s)
	if !ok {
		return nil, fmt.Errorf("unknown scenario %q", s)
	}
	p.Context.PreferredLanes = lanes
	return e.SuggestFiltered(state, p.Context, p.Roles, limit, filters...), nil
}

// Filter keeps a suggestion when it returns true.
type Filter func(Suggestion) bool

func Apply(in []Suggestion, filters ...Filter) []Suggestion {
	if len(filters) == 0 {
		return in
	}
	out := in[:0:0]
	for _, s := range in {
		keep := true
		for _, f := range filters {
			if !f(s) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, s)
		}
	}
	return out
}

// OnlyLane keeps suggestions whose hero was assigned position n.
func OnlyLane(n int) Filter {
	return func(s Suggestion) bool {
		for _, a := range s.Lanes {
			if a.Hero.ID == s.Hero.ID {
				return a.Position == n
			}
		}
		return false
	}
}

// OnlyTimingPhase keeps suggestions whose strongest window is phase.
func OnlyTimingPhase(phase string) Filter {
	return func(s Suggestion) bool {
		return len(s.Timing) > 0 && timing.Peak(s.Timing).Phase == phase
	}
}

// CountersTo keeps heroes with a favourable significant matchup against heroID.
func CountersTo(heroID int, store *draft.MatchupStore) Filter {
	return func(s Suggestion) bool {
		wr, ok := store.Matchup(s.Hero.ID, heroID)
		return ok && wr > 50
	}
}
