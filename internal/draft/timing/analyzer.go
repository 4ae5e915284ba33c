// Package timing derives early/mid/late power windows for a hero.
package timing

import (
	"dota-draft-advisor/internal/domain"
)

const (
	PhaseEarly = "early"
	PhaseMid   = "mid"
	PhaseLate  = "late"
)

const (
	earlyEndAggressive = 12
	earlyEndDefault    = 15
	midStart           = 15
	midEnd             = 35
	lateStart          = 35
	minLateEnd         = 60

	basePower = 0.5
)

type Window struct {
	Phase      string
	Start      int // minutes
	End        int
	PowerLevel float64 // 0..1
	KeyItems   []string
	Objectives []string
}

// Contains reports whether minute falls inside the window. The late window is open-ended.
func (w Window) Contains(minute int) bool {
	if w.Phase == PhaseLate {
		return minute >= w.Start
	}
	return minute >= w.Start && minute < w.End
}

type bonus struct {
	role  string
	attr  string
	value float64
}

// Per-phase additive bonuses on top of basePower.
var phaseBonuses = map[string][]bonus{
	PhaseEarly: {
		{attr: domain.AttrStrength, value: 0.15},
		{role: domain.RoleSupport, value: 0.1},
		{role: domain.RoleNuker, value: 0.15},
	},
	PhaseMid: {
		{role: domain.RoleInitiator, value: 0.15},
		{role: domain.RoleNuker, value: 0.1},
		{role: domain.RolePusher, value: 0.15},
	},
	PhaseLate: {
		{role: domain.RoleCarry, value: 0.3},
		{attr: domain.AttrAgility, value: 0.1},
		{role: domain.RoleDurable, value: 0.1},
	},
}

type Analyzer struct{}

func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze always returns the early, mid and late windows in that order.
func (a *Analyzer) Analyze(hero *domain.Hero, ctx domain.GameContext) [3]Window {
	earlyEnd := earlyEndDefault
	if ctx.Playstyle == domain.PlaystyleAggressive {
		earlyEnd = earlyEndAggressive
	}
	lateEnd := max(minLateEnd, ctx.DurationOr(0))

	return [3]Window{
		{
			Phase:      PhaseEarly,
			Start:      0,
			End:        earlyEnd,
			PowerLevel: power(hero, PhaseEarly),
			KeyItems:   earlyItems(hero),
			Objectives: []string{"Win lanes", "Secure runes", "Deny enemy farm"},
		},
		{
			Phase:      PhaseMid,
			Start:      midStart,
			End:        midEnd,
			PowerLevel: power(hero, PhaseMid),
			KeyItems:   midItems(hero),
			Objectives: []string{"Take tier 1 and 2 towers", "Control Roshan", "Force teamfights"},
		},
		{
			Phase:      PhaseLate,
			Start:      lateStart,
			End:        lateEnd,
			PowerLevel: power(hero, PhaseLate),
			KeyItems:   lateItems(hero),
			Objectives: []string{"Take high ground", "Secure Aegis", "End the game"},
		},
	}
}

// AveragePower is the mean power level across the windows.
func AveragePower(windows []Window) float64 {
	if len(windows) == 0 {
		return 0
	}
	var total float64
	for _, w := range windows {
		total += w.PowerLevel
	}
	return total / float64(len(windows))
}

// Peak returns the window with the highest power level, earliest on ties.
func Peak(windows []Window) Window {
	if len(windows) == 0 {
		return Window{}
	}
	best := windows[0]
	for _, w := range windows[1:] {
		if w.PowerLevel > best.PowerLevel {
			best = w
		}
	}
	return best
}

// At returns the window containing minute; windows must be the early, mid and
// late windows from Analyze.
func At(windows []Window, minute int) Window {
	for _, w := range windows {
		if w.Contains(minute) {
			return w
		}
	}
	if minute < windows[1].Start {
		return windows[0]
	}
	return windows[1]
}

func power(hero *domain.Hero, phase string) float64 {
	p := basePower
	for _, b := range phaseBonuses[phase] {
		switch {
		case b.role != "" && hero.HasRole(b.role):
			p += b.value
		case b.attr != "" && hero.PrimaryAttr == b.attr:
			p += b.value
		}
	}
	return clamp01(p)
}

func earlyItems(hero *domain.Hero) []string {
	if hero.HasRole(domain.RoleSupport) {
		return []string{"Tranquil Boots", "Magic Wand", "Observer Ward"}
	}
	return []string{"Boots of Speed", "Magic Wand", "Bracer"}
}

func midItems(hero *domain.Hero) []string {
	switch {
	case hero.HasRole(domain.RoleInitiator):
		return []string{"Blink Dagger", "Black King Bar"}
	case hero.HasRole(domain.RoleCarry):
		return []string{"Battle Fury", "Manta Style"}
	case hero.HasRole(domain.RoleSupport):
		return []string{"Glimmer Cape", "Force Staff"}
	}
	return []string{"Kaya", "Aghanim's Scepter"}
}

func lateItems(hero *domain.Hero) []string {
	if hero.HasRole(domain.RoleCarry) {
		return []string{"Butterfly", "Satanic", "Daedalus"}
	}
	return []string{"Refresher Orb", "Octarine Core", "Aeon Disk"}
}

func clamp01(v float64) float64 {
	return max(0, min(1, v))
}
