package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"dota-draft-advisor/internal/api"
	"dota-draft-advisor/internal/domain"
	"dota-draft-advisor/internal/heuristics"
)

var errUpstream = errors.New("upstream down")

type fakeHeroSource struct {
	entries []api.HeroStatsEntry
	err     error
	calls   int
}

func (f *fakeHeroSource) GetHeroStats(context.Context) ([]api.HeroStatsEntry, error) {
	f.calls++
	return f.entries, f.err
}

type fakeHeroStore struct {
	heroes  []domain.Hero
	stats   []domain.HeroStats
	refresh bool
	err     error
}

func (f *fakeHeroStore) List(context.Context) ([]domain.Hero, error) { return f.heroes, f.err }

func (f *fakeHeroStore) ListStats(context.Context) ([]domain.HeroStats, error) { return f.stats, f.err }

func (f *fakeHeroStore) Count(context.Context) (int, error) { return len(f.heroes), f.err }

func (f *fakeHeroStore) ShouldRefresh(context.Context, time.Duration) (bool, error) {
	return f.refresh, f.err
}

func (f *fakeHeroStore) UpsertBatch(_ context.Context, heroes []domain.Hero, stats []domain.HeroStats) error {
	if f.err != nil {
		return f.err
	}
	f.heroes, f.stats = heroes, stats
	f.refresh = false
	return nil
}

type fakeMatchupSource struct {
	mu      sync.Mutex
	entries map[int][]api.MatchupEntry
	err     error
	calls   []int
}

func (f *fakeMatchupSource) GetMatchups(_ context.Context, heroID int) ([]api.MatchupEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, heroID)
	if f.err != nil {
		return nil, f.err
	}
	return f.entries[heroID], nil
}

type fakeMatchupCache struct {
	mu      sync.Mutex
	records map[int][]domain.MatchupRecord
	fresh   map[int]bool
}

func newFakeMatchupCache() *fakeMatchupCache {
	return &fakeMatchupCache{records: map[int][]domain.MatchupRecord{}, fresh: map[int]bool{}}
}

func (f *fakeMatchupCache) GetByHero(_ context.Context, heroID int) ([]domain.MatchupRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.records[heroID], nil
}

func (f *fakeMatchupCache) ShouldRefresh(_ context.Context, heroID int, _ time.Duration) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return !f.fresh[heroID], nil
}

func (f *fakeMatchupCache) Replace(_ context.Context, heroID int, records []domain.MatchupRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records[heroID] = records
	f.fresh[heroID] = true
	return nil
}

type staticTable struct{ t *heuristics.Table }

func (s staticTable) Current() *heuristics.Table { return s.t }

func statsEntry(id int, name, localized, attr string, roles ...string) api.HeroStatsEntry {
	return api.HeroStatsEntry{
		ID: id, Name: name, LocalizedName: localized, PrimaryAttr: attr, AttackType: domain.AttackMelee,
		Roles: roles, PubPick: 100, PubWin: 50,
	}
}

func sampleEntries() []api.HeroStatsEntry {
	return []api.HeroStatsEntry{
		statsEntry(1, "npc_dota_hero_antimage", "Anti-Mage", domain.AttrAgility, domain.RoleCarry, domain.RoleEscape, domain.RoleNuker),
		statsEntry(2, "npc_dota_hero_axe", "Axe", domain.AttrStrength, domain.RoleInitiator, domain.RoleDurable),
		statsEntry(5, "npc_dota_hero_crystal_maiden", "Crystal Maiden", domain.AttrIntelligence, domain.RoleSupport, domain.RoleDisabler),
		statsEntry(0, "npc_dota_hero_base", "Base", domain.AttrStrength),
	}
}
