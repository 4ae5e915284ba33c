// Package lane assigns a team's heroes to the five lane positions.
package lane

import (
	"slices"

	"dota-draft-advisor/internal/domain"
)

const (
	PositionCarry       = 1
	PositionMid         = 2
	PositionOfflane     = 3
	PositionSoftSupport = 4
	PositionHardSupport = 5

	fallbackPosition = PositionSoftSupport
	baseConfidence   = 0.5
	attributeBonus   = 0.1
)

type Assignment struct {
	Position   int
	Hero       *domain.Hero
	Confidence float64
	Reasons    []string
}

// canonical role per position, in claim order.
var canonicalRoles = []struct {
	role     string
	position int
}{
	{domain.RoleCarry, PositionCarry},
	{domain.RoleNuker, PositionMid},
	{domain.RoleInitiator, PositionOfflane},
	{domain.RoleSupport, PositionHardSupport},
}

var positionRoles = map[int]struct {
	role  string
	bonus float64
	attr  string
}{
	PositionCarry:       {domain.RoleCarry, 0.4, domain.AttrAgility},
	PositionMid:         {domain.RoleNuker, 0.35, domain.AttrIntelligence},
	PositionOfflane:     {domain.RoleInitiator, 0.3, domain.AttrStrength},
	PositionSoftSupport: {domain.RoleSupport, 0.3, ""},
	PositionHardSupport: {domain.RoleSupport, 0.4, ""},
}

var positionReasons = map[int][]string{
	PositionCarry:       {"Strong late game scaling", "Benefits from farm priority"},
	PositionMid:         {"Strong laning and rune control", "Converts levels into tempo"},
	PositionOfflane:     {"Durable frontline presence", "Can initiate fights"},
	PositionSoftSupport: {"Roaming and rotation potential", "Flexible utility"},
	PositionHardSupport: {"Protects the carry in lane", "Provides vision and saves"},
}

type Optimizer struct{}

func NewOptimizer() *Optimizer {
	return &Optimizer{}
}

// CanonicalPosition returns the position for the first canonical role the hero
// carries, checked as Carry, Nuker, Initiator, Support. A Support that is also a
// Nuker therefore claims mid.
func CanonicalPosition(h *domain.Hero) (int, bool) {
	for _, cr := range canonicalRoles {
		if h.HasRole(cr.role) {
			return cr.position, true
		}
	}
	return 0, false
}

// Assign is a greedy, order-sensitive reducer. Every hero first reserves its
// canonical position; then, in input order, each hero takes its canonical
// position unless an earlier hero already took it, else the first position
// that is neither reserved nor taken, else position 4. Two heroes may
// therefore share the fallback position.
func (o *Optimizer) Assign(heroes []*domain.Hero) []Assignment {
	reserved := make(map[int]bool, 5)
	for _, h := range heroes {
		if h == nil {
			continue
		}
		if pos, ok := CanonicalPosition(h); ok {
			reserved[pos] = true
		}
	}

	taken := make(map[int]bool, 5)
	out := make([]Assignment, 0, len(heroes))
	for _, h := range heroes {
		if h == nil {
			continue
		}
		pos := pick(h, reserved, taken)
		taken[pos] = true
		out = append(out, Assignment{
			Position:   pos,
			Hero:       h,
			Confidence: confidence(h, pos),
			Reasons:    slices.Clone(positionReasons[pos]),
		})
	}
	return out
}

func pick(h *domain.Hero, reserved, taken map[int]bool) int {
	if pos, ok := CanonicalPosition(h); ok && !taken[pos] {
		return pos
	}
	for pos := PositionCarry; pos <= PositionHardSupport; pos++ {
		if !reserved[pos] && !taken[pos] {
			return pos
		}
	}
	return fallbackPosition
}

func confidence(h *domain.Hero, pos int) float64 {
	c := baseConfidence
	pr := positionRoles[pos]
	if h.HasRole(pr.role) {
		c += pr.bonus
	}
	if pr.attr != "" && h.PrimaryAttr == pr.attr {
		c += attributeBonus
	}
	return min(1, c)
}

// Fits reports whether the assignment lands in one of the preferred lanes.
// An empty preference accepts every position.
func Fits(a Assignment, lanes []int) bool {
	return len(lanes) == 0 || slices.Contains(lanes, a.Position)
}

// For returns the assignment for heroID.
func For(assignments []Assignment, heroID int) (Assignment, bool) {
	for i := len(assignments) - 1; i >= 0; i-- {
		if assignments[i].Hero.ID == heroID {
			return assignments[i], true
		}
	}
	return Assignment{}, false
}
