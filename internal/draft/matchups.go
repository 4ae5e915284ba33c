package draft

import (
	"dota-draft-advisor/internal/domain"
)

// NeutralCounterScore is returned when no usable matchup data exists.
const NeutralCounterScore = 50.0

// MatchupStore maps a hero id to its per-opponent samples. Callers populate it
// before scoring and must not mutate it while a suggestion batch is running.
// The zero value is an empty store.
type MatchupStore struct {
	byHero map[int]map[int]domain.MatchupRecord
}

func NewMatchupStore() *MatchupStore {
	return &MatchupStore{byHero: make(map[int]map[int]domain.MatchupRecord)}
}

// SetMatchups replaces the list for heroID.
func (s *MatchupStore) SetMatchups(heroID int, records []domain.MatchupRecord) {
	m := make(map[int]domain.MatchupRecord, len(records))
	for _, rec := range records {
		rec.HeroID = heroID
		m[rec.OpponentID] = rec
	}
	if s.byHero == nil {
		s.byHero = make(map[int]map[int]domain.MatchupRecord)
	}
	s.byHero[heroID] = m
}

func (s *MatchupStore) Has(heroID int) bool {
	_, ok := s.byHero[heroID]
	return ok
}

func (s *MatchupStore) Len() int {
	return len(s.byHero)
}

// Matchup returns heroID's win rate against opponentID as a percentage. A
// record stored under the hero is used directly; otherwise the opponent's
// record against the hero is inverted. Samples under MinMatchupGames are ignored.
func (s *MatchupStore) Matchup(heroID, opponentID int) (float64, bool) {
	if rec, ok := s.byHero[heroID][opponentID]; ok && rec.Significant() {
		return rec.WinRate(), true
	}
	if rec, ok := s.byHero[opponentID][heroID]; ok && rec.Significant() {
		return 100 - rec.WinRate(), true
	}
	return 0, false
}

// CounterScore averages heroID's win rate over every enemy with a significant
// matchup, in [0,100]. Missing data is neutral.
func (s *MatchupStore) CounterScore(heroID int, enemies []*domain.Hero) float64 {
	if len(enemies) == 0 {
		return NeutralCounterScore
	}
	var total float64
	var valid int
	for _, e := range enemies {
		if e == nil {
			continue
		}
		if wr, ok := s.Matchup(heroID, e.ID); ok {
			total += wr
			valid++
		}
	}
	if valid == 0 {
		return NeutralCounterScore
	}
	return total / float64(valid)
}
