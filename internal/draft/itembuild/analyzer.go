// Package itembuild generates role-based item builds with timing milestones.
package itembuild

import (
	"sort"

	"dota-draft-advisor/internal/domain"
)

const (
	PhaseEarly = "early"
	PhaseMid   = "mid"
	PhaseLate  = "late"
)

const (
	// DefaultDuration is assumed when the context has no expected game length.
	DefaultDuration = 40

	shortGameMinutes = 30
	longGameMinutes  = 45

	aggressiveCarryBonus = 0.1
)

type Timing struct {
	Item   string
	Minute int
}

type ItemBuild struct {
	Name          string
	Items         []string
	Timings       []Timing
	Effectiveness float64 // 0..1
	Phase         string
}

// Analyzer is stateless; the zero value is ready to use.
type Analyzer struct{}

func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Generate returns the builds for every build-relevant role the hero carries,
// best first.
func (a *Analyzer) Generate(hero *domain.Hero, ctx domain.GameContext) []ItemBuild {
	duration := ctx.DurationOr(DefaultDuration)
	short := duration < shortGameMinutes

	var builds []ItemBuild
	if hero.HasRole(domain.RoleCarry) {
		b := carryBuild(short)
		if ctx.Playstyle == domain.PlaystyleAggressive {
			b.Effectiveness = min(1, b.Effectiveness+aggressiveCarryBonus)
		}
		builds = append(builds, b)
	}
	if hero.HasRole(domain.RoleSupport) {
		builds = append(builds, supportBuild(short))
	}
	if hero.HasRole(domain.RoleInitiator) {
		builds = append(builds, initiatorBuild(short))
	}
	if hero.HasRole(domain.RoleNuker) {
		builds = append(builds, nukerBuild(short, duration > longGameMinutes))
	}
	if len(builds) == 0 {
		builds = append(builds, coreBuild())
	}

	sort.SliceStable(builds, func(i, j int) bool {
		return builds[i].Effectiveness > builds[j].Effectiveness
	})
	return builds
}

// ComputeSynergy scores how well the hero's itemization complements the team, in [0,1].
func (a *Analyzer) ComputeSynergy(hero *domain.Hero, team []*domain.Hero) float64 {
	score := 0.5
	if hero.HasRole(domain.RoleSupport) {
		for _, mate := range team {
			if mate != nil && mate.ID != hero.ID && mate.HasRole(domain.RoleCarry) {
				score += 0.3
				break
			}
		}
	}
	return min(1, score)
}

func carryBuild(short bool) ItemBuild {
	if short {
		return ItemBuild{
			Name:  "Aggressive Carry",
			Items: []string{"Phase Boots", "Maelstrom", "Black King Bar", "Desolator"},
			Timings: []Timing{
				{"Phase Boots", 6}, {"Maelstrom", 12}, {"Black King Bar", 18}, {"Desolator", 23},
			},
			Effectiveness: 0.75,
			Phase:         PhaseEarly,
		}
	}
	return ItemBuild{
		Name:  "Farming Carry",
		Items: []string{"Power Treads", "Battle Fury", "Manta Style", "Black King Bar", "Butterfly", "Satanic"},
		Timings: []Timing{
			{"Power Treads", 8}, {"Battle Fury", 15}, {"Manta Style", 22}, {"Black King Bar", 27},
			{"Butterfly", 34}, {"Satanic", 40},
		},
		Effectiveness: 0.8,
		Phase:         PhaseLate,
	}
}

func supportBuild(short bool) ItemBuild {
	if short {
		return ItemBuild{
			Name:          "Lane Support",
			Items:         []string{"Tranquil Boots", "Magic Wand", "Urn of Shadows", "Force Staff"},
			Timings:       []Timing{{"Tranquil Boots", 5}, {"Magic Wand", 7}, {"Urn of Shadows", 10}, {"Force Staff", 16}},
			Effectiveness: 0.7,
			Phase:         PhaseEarly,
		}
	}
	return ItemBuild{
		Name:          "Utility Support",
		Items:         []string{"Arcane Boots", "Glimmer Cape", "Force Staff", "Aether Lens"},
		Timings:       []Timing{{"Arcane Boots", 8}, {"Glimmer Cape", 14}, {"Force Staff", 20}, {"Aether Lens", 26}},
		Effectiveness: 0.75,
		Phase:         PhaseMid,
	}
}

func initiatorBuild(short bool) ItemBuild {
	if short {
		return ItemBuild{
			Name:          "Blink Initiator",
			Items:         []string{"Arcane Boots", "Blink Dagger", "Black King Bar"},
			Timings:       []Timing{{"Arcane Boots", 6}, {"Blink Dagger", 11}, {"Black King Bar", 19}},
			Effectiveness: 0.75,
			Phase:         PhaseEarly,
		}
	}
	return ItemBuild{
		Name:          "Teamfight Initiator",
		Items:         []string{"Blink Dagger", "Black King Bar", "Pipe of Insight", "Refresher Orb"},
		Timings:       []Timing{{"Blink Dagger", 13}, {"Black King Bar", 21}, {"Pipe of Insight", 27}, {"Refresher Orb", 36}},
		Effectiveness: 0.75,
		Phase:         PhaseMid,
	}
}

func nukerBuild(short, long bool) ItemBuild {
	if short {
		return ItemBuild{
			Name:          "Burst Nuker",
			Items:         []string{"Null Talisman", "Aether Lens", "Kaya"},
			Timings:       []Timing{{"Null Talisman", 4}, {"Aether Lens", 12}, {"Kaya", 17}},
			Effectiveness: 0.7,
			Phase:         PhaseEarly,
		}
	}
	phase := PhaseMid
	if long {
		phase = PhaseLate
	}
	return ItemBuild{
		Name:          "Spell Nuker",
		Items:         []string{"Kaya", "Aghanim's Scepter", "Octarine Core", "Scythe of Vyse"},
		Timings:       []Timing{{"Kaya", 14}, {"Aghanim's Scepter", 21}, {"Octarine Core", 30}, {"Scythe of Vyse", 38}},
		Effectiveness: 0.7,
		Phase:         phase,
	}
}

func coreBuild() ItemBuild {
	return ItemBuild{
		Name:          "Core Build",
		Items:         []string{"Boots of Speed", "Magic Wand", "Black King Bar"},
		Timings:       []Timing{{"Boots of Speed", 4}, {"Magic Wand", 8}, {"Black King Bar", 22}},
		Effectiveness: 0.5,
		Phase:         PhaseMid,
	}
}
