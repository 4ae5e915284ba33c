// Package draft holds the read-only hero/stat registry and the matchup store
// the suggestion engine scores against.
package draft

import (
	"sort"

	"dota-draft-advisor/internal/domain"
)

// NeutralWinRate is returned when a hero has no statistics.
const NeutralWinRate = 50.0

// Registry is an immutable view over heroes and their statistics keyed by hero id.
type Registry struct {
	heroes  map[int]*domain.Hero
	stats   map[int]*domain.HeroStats
	ordered []*domain.Hero
	maxPick int
}

func NewRegistry(heroes []domain.Hero, stats []domain.HeroStats) *Registry {
	r := &Registry{
		heroes: make(map[int]*domain.Hero, len(heroes)),
		stats:  make(map[int]*domain.HeroStats, len(stats)),
	}
	for i := range heroes {
		h := heroes[i]
		if h.ID <= 0 {
			continue
		}
		if _, dup := r.heroes[h.ID]; dup {
			continue
		}
		r.heroes[h.ID] = &h
		r.ordered = append(r.ordered, &h)
	}
	sort.Slice(r.ordered, func(i, j int) bool { return r.ordered[i].ID < r.ordered[j].ID })

	for i := range stats {
		s := stats[i]
		r.stats[s.HeroID] = &s
		if s.PubPick > r.maxPick {
			r.maxPick = s.PubPick
		}
	}
	return r
}

func (r *Registry) Hero(id int) (*domain.Hero, bool) {
	h, ok := r.heroes[id]
	return h, ok
}

func (r *Registry) Stats(id int) (*domain.HeroStats, bool) {
	s, ok := r.stats[id]
	return s, ok
}

// Heroes returns every hero ordered by id.
func (r *Registry) Heroes() []*domain.Hero {
	return r.ordered
}

func (r *Registry) Len() int {
	return len(r.ordered)
}

// Resolve maps ids to heroes, skipping empty slots and unknown ids.
func (r *Registry) Resolve(ids []int) []*domain.Hero {
	out := make([]*domain.Hero, 0, len(ids))
	for _, id := range ids {
		if h, ok := r.heroes[id]; ok {
			out = append(out, h)
		}
	}
	return out
}

// WinRate returns the public win percentage for a stats record.
func WinRate(s *domain.HeroStats) float64 {
	if s == nil {
		return 0
	}
	return ratio(s.PubWin, s.PubPick)
}

func ProWinRate(s *domain.HeroStats) float64 {
	if s == nil {
		return 0
	}
	return ratio(s.ProWin, s.ProPick)
}

func TurboWinRate(s *domain.HeroStats) float64 {
	if s == nil {
		return 0
	}
	return ratio(s.TurboWin, s.TurboPick)
}

// BracketWinRate takes a 1-based bracket (1 = Herald, 8 = Immortal).
func BracketWinRate(s *domain.HeroStats, bracket int) float64 {
	if s == nil || bracket < 1 || bracket > domain.NumBrackets {
		return 0
	}
	return ratio(s.BracketWin[bracket-1], s.BracketPick[bracket-1])
}

// HeroWinRate is WinRate with a neutral fallback for heroes without stats.
func (r *Registry) HeroWinRate(id int) float64 {
	s, ok := r.stats[id]
	if !ok {
		return NeutralWinRate
	}
	return WinRate(s)
}

// PickShare is the hero's public picks relative to the most picked hero, in [0,1].
func (r *Registry) PickShare(id int) float64 {
	s, ok := r.stats[id]
	if !ok || r.maxPick == 0 {
		return 0
	}
	return float64(s.PubPick) / float64(r.maxPick)
}

func ratio(wins, games int) float64 {
	if games <= 0 {
		return 0
	}
	return float64(wins) / float64(games) * 100
}
