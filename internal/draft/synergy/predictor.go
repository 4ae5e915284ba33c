// Package synergy scores hero pairs and teams with fixed role and attribute
// heuristics. There is no trained model behind it.
package synergy

import (
	"dota-draft-advisor/internal/domain"
)

const (
	Neutral = 0.5

	supportCoreBonus   = 0.2
	attackMixBonus     = 0.05
	sharedRolePenalty  = 0.05
	complementaryBonus = 0.2
)

var coreRoles = []string{domain.RoleCarry, domain.RoleNuker, domain.RolePusher}

type Predictor struct{}

func NewPredictor() *Predictor {
	return &Predictor{}
}

func isSupport(h *domain.Hero) bool {
	return h.HasRole(domain.RoleSupport)
}

func isCore(h *domain.Hero) bool {
	return h.HasAnyRole(coreRoles...)
}

// Pair scores an ordered pair: a supporting b's core role earns the bonus.
func (p *Predictor) Pair(a, b *domain.Hero) float64 {
	score := Neutral
	if isSupport(a) && isCore(b) {
		score += supportCoreBonus
	}
	if a.AttackType != b.AttackType {
		score += attackMixBonus
	}
	return clamp01(score)
}

// Team averages Pair over every unordered pair, Neutral below two heroes.
func (p *Predictor) Team(heroes []*domain.Hero) float64 {
	if len(heroes) < 2 {
		return Neutral
	}
	var total float64
	var pairs int
	for i := 0; i < len(heroes); i++ {
		for j := i + 1; j < len(heroes); j++ {
			total += p.Pair(heroes[i], heroes[j])
			pairs++
		}
	}
	return total / float64(pairs)
}

// RoleFit scores a candidate against teammates: complementary support/core
// pairs gain, every shared role tag costs.
func (p *Predictor) RoleFit(candidate *domain.Hero, team []*domain.Hero) float64 {
	var total float64
	var n int
	for _, mate := range team {
		if mate == nil || mate.ID == candidate.ID {
			continue
		}
		s := Neutral
		if (isSupport(candidate) && isCore(mate)) || (isCore(candidate) && isSupport(mate)) {
			s += complementaryBonus
		}
		s -= sharedRolePenalty * float64(sharedRoles(candidate, mate))
		total += clamp01(s)
		n++
	}
	if n == 0 {
		return Neutral
	}
	return total / float64(n)
}

func sharedRoles(a, b *domain.Hero) int {
	n := 0
	for _, r := range a.Roles {
		if b.HasRole(r) {
			n++
		}
	}
	return n
}

func clamp01(v float64) float64 {
	return max(0, min(1, v))
}
