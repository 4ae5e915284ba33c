package draft

import (
	"testing"

	"dota-draft-advisor/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry(t *testing.T) {
	heroes := []domain.Hero{
		{ID: 5, Name: "npc_dota_hero_crystal_maiden"},
		{ID: 1, Name: "npc_dota_hero_antimage"},
		{ID: 0, Name: "npc_dota_hero_invalid"},
		{ID: 1, Name: "npc_dota_hero_duplicate"},
	}
	stats := []domain.HeroStats{
		{HeroID: 1, PubPick: 1000, PubWin: 520},
		{HeroID: 5, PubPick: 250, PubWin: 100},
	}

	r := NewRegistry(heroes, stats)
	require.Equal(t, 2, r.Len())
	assert.Equal(t, 1, r.Heroes()[0].ID)
	assert.Equal(t, 5, r.Heroes()[1].ID)

	h, ok := r.Hero(1)
	require.True(t, ok)
	assert.Equal(t, "npc_dota_hero_antimage", h.Name)

	_, ok = r.Hero(0)
	assert.False(t, ok)

	assert.InDelta(t, 52.0, r.HeroWinRate(1), 1e-9)
	assert.InDelta(t, 40.0, r.HeroWinRate(5), 1e-9)
	assert.InDelta(t, 1.0, r.PickShare(1), 1e-9)
	assert.InDelta(t, 0.25, r.PickShare(5), 1e-9)
}

func TestRegistry_MissingStats(t *testing.T) {
	r := NewRegistry([]domain.Hero{{ID: 7}}, nil)

	_, ok := r.Stats(7)
	assert.False(t, ok)
	assert.Equal(t, NeutralWinRate, r.HeroWinRate(7))
	assert.Equal(t, 0.0, r.PickShare(7))
}

func TestRegistry_Resolve(t *testing.T) {
	r := NewRegistry([]domain.Hero{{ID: 1}, {ID: 2}}, nil)
	got := r.Resolve([]int{2, 0, 99, 1})
	require.Len(t, got, 2)
	assert.Equal(t, 2, got[0].ID)
	assert.Equal(t, 1, got[1].ID)
}

func TestWinRates(t *testing.T) {
	s := &domain.HeroStats{
		PubPick: 200, PubWin: 100,
		ProPick: 10, ProWin: 7,
		TurboPick: 0, TurboWin: 0,
	}
	s.BracketPick[0], s.BracketWin[0] = 50, 30
	s.BracketPick[7], s.BracketWin[7] = 40, 18

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"public", WinRate(s), 50},
		{"pro", ProWinRate(s), 70},
		{"turbo with zero games", TurboWinRate(s), 0},
		{"herald", BracketWinRate(s, 1), 60},
		{"immortal", BracketWinRate(s, 8), 45},
		{"bracket out of range", BracketWinRate(s, 9), 0},
		{"nil stats", WinRate(nil), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.got, 1e-9)
		})
	}
}
