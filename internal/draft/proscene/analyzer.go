// Package proscene produces heuristic professional-scene metadata for a hero.
// Nothing here is derived from real pro match data; the values are proxies
// built from role versatility and the heuristic table.
package proscene

import (
	"dota-draft-advisor/internal/domain"
	"dota-draft-advisor/internal/heuristics"
)

type Pattern struct {
	PickOrder           int     // 1 = first pick phase, 5 = last pick
	BanPriority         float64 // 0..1
	FirstPickRate       float64 // 0..1
	SituationalPickRate float64 // 0..1
	Pairings            []string
	Counters            []string
}

// Analyzer reads complex-hero boosts from the table it was built with.
type Analyzer struct {
	table *heuristics.Table
}

func NewAnalyzer(table *heuristics.Table) *Analyzer {
	if table == nil {
		table = heuristics.Default()
	}
	return &Analyzer{table: table}
}

func (a *Analyzer) Analyze(hero *domain.Hero) Pattern {
	roles := len(hero.Roles)
	complexBoost := a.table.Boost(hero.Name, heuristics.CategoryComplex)

	situational := 0.3 + complexBoost
	if roles <= 2 {
		situational += 0.1
	}

	ban := 0.3 + 0.1*float64(roles)
	if a.table.IsComplex(hero.Name) {
		ban += 0.1
	}

	return Pattern{
		PickOrder:           max(1, min(5, 6-roles)),
		BanPriority:         min(0.9, ban),
		FirstPickRate:       min(0.5, 0.1+0.05*float64(roles)),
		SituationalPickRate: min(1, situational),
		Pairings:            pairings(hero),
		Counters:            counters(hero),
	}
}

// Score averages first-pick and situational rates, in [0,1].
func (p Pattern) Score() float64 {
	return (p.FirstPickRate + p.SituationalPickRate) / 2
}

func pairings(hero *domain.Hero) []string {
	var out []string
	if hero.HasRole(domain.RoleCarry) {
		out = append(out, "Io", "Crystal Maiden")
	}
	if hero.HasRole(domain.RoleSupport) {
		out = append(out, "Juggernaut", "Sven")
	}
	if hero.HasRole(domain.RoleInitiator) {
		out = append(out, "Zeus", "Lina")
	}
	if len(out) == 0 {
		out = append(out, "Shadow Shaman")
	}
	return out
}

func counters(hero *domain.Hero) []string {
	var out []string
	switch hero.AttackType {
	case domain.AttackMelee:
		out = append(out, "Viper", "Razor")
	case domain.AttackRanged:
		out = append(out, "Phantom Assassin", "Spirit Breaker")
	}
	if hero.HasRole(domain.RoleEscape) {
		out = append(out, "Bloodseeker")
	}
	if hero.HasRole(domain.RoleCarry) {
		out = append(out, "Anti-Mage")
	}
	return out
}
