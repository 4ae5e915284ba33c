package suggest

import (
	"testing"

	"dota-draft-advisor/internal/domain"
	"dota-draft-advisor/internal/draft"

	"github.com/stretchr/testify/require"
)

const (
	antiMage      = 1
	axe           = 2
	bane          = 3
	crystalMaiden = 5
	drow          = 6
	earthshaker   = 7
	juggernaut    = 8
	mirana        = 9
	shadowFiend   = 11
	pudge         = 14
	lion          = 26
	invoker       = 74
)

func testHeroes() []domain.Hero {
	return []domain.Hero{
		{ID: antiMage, Name: "npc_dota_hero_antimage", LocalizedName: "Anti-Mage", PrimaryAttr: domain.AttrAgility, AttackType: domain.AttackMelee,
			Roles: []string{domain.RoleCarry, domain.RoleEscape, domain.RoleNuker}},
		{ID: axe, Name: "npc_dota_hero_axe", LocalizedName: "Axe", PrimaryAttr: domain.AttrStrength, AttackType: domain.AttackMelee,
			Roles: []string{domain.RoleInitiator, domain.RoleDurable, domain.RoleDisabler, domain.RoleCarry}},
		{ID: bane, Name: "npc_dota_hero_bane", LocalizedName: "Bane", PrimaryAttr: domain.AttrUniversal, AttackType: domain.AttackRanged,
			Roles: []string{domain.RoleSupport, domain.RoleDisabler, domain.RoleNuker, domain.RoleDurable}},
		{ID: crystalMaiden, Name: "npc_dota_hero_crystal_maiden", LocalizedName: "Crystal Maiden", PrimaryAttr: domain.AttrIntelligence, AttackType: domain.AttackRanged,
			Roles: []string{domain.RoleSupport, domain.RoleDisabler, domain.RoleNuker}},
		{ID: drow, Name: "npc_dota_hero_drow_ranger", LocalizedName: "Drow Ranger", PrimaryAttr: domain.AttrAgility, AttackType: domain.AttackRanged,
			Roles: []string{domain.RoleCarry, domain.RoleDisabler, domain.RolePusher}},
		{ID: earthshaker, Name: "npc_dota_hero_earthshaker", LocalizedName: "Earthshaker", PrimaryAttr: domain.AttrStrength, AttackType: domain.AttackMelee,
			Roles: []string{domain.RoleSupport, domain.RoleInitiator, domain.RoleDisabler, domain.RoleNuker}},
		{ID: juggernaut, Name: "npc_dota_hero_juggernaut", LocalizedName: "Juggernaut", PrimaryAttr: domain.AttrAgility, AttackType: domain.AttackMelee,
			Roles: []string{domain.RoleCarry, domain.RolePusher, domain.RoleEscape}},
		{ID: mirana, Name: "npc_dota_hero_mirana", LocalizedName: "Mirana", PrimaryAttr: domain.AttrUniversal, AttackType: domain.AttackRanged,
			Roles: []string{domain.RoleCarry, domain.RoleSupport, domain.RoleEscape, domain.RoleNuker, domain.RoleDisabler}},
		{ID: shadowFiend, Name: "npc_dota_hero_nevermore", LocalizedName: "Shadow Fiend", PrimaryAttr: domain.AttrAgility, AttackType: domain.AttackRanged,
			Roles: []string{domain.RoleCarry, domain.RoleNuker}},
		{ID: pudge, Name: "npc_dota_hero_pudge", LocalizedName: "Pudge", PrimaryAttr: domain.AttrStrength, AttackType: domain.AttackMelee,
			Roles: []string{domain.RoleDisabler, domain.RoleInitiator, domain.RoleDurable, domain.RoleNuker}},
		{ID: lion, Name: "npc_dota_hero_lion", LocalizedName: "Lion", PrimaryAttr: domain.AttrIntelligence, AttackType: domain.AttackRanged,
			Roles: []string{domain.RoleSupport, domain.RoleDisabler, domain.RoleNuker, domain.RoleInitiator}},
		{ID: invoker, Name: "npc_dota_hero_invoker", LocalizedName: "Invoker", PrimaryAttr: domain.AttrIntelligence, AttackType: domain.AttackRanged,
			Roles: []string{domain.RoleCarry, domain.RoleNuker, domain.RoleDisabler, domain.RoleEscape, domain.RolePusher}},
	}
}

// Lion deliberately has no stats.
func testStats() []domain.HeroStats {
	return []domain.HeroStats{
		{HeroID: antiMage, PubPick: 1000, PubWin: 520},
		{HeroID: axe, PubPick: 800, PubWin: 416},
		{HeroID: bane, PubPick: 200, PubWin: 96},
		{HeroID: crystalMaiden, PubPick: 600, PubWin: 306},
		{HeroID: drow, PubPick: 500, PubWin: 255},
		{HeroID: earthshaker, PubPick: 700, PubWin: 350},
		{HeroID: juggernaut, PubPick: 900, PubWin: 450},
		{HeroID: mirana, PubPick: 400, PubWin: 188},
		{HeroID: shadowFiend, PubPick: 650, PubWin: 312},
		{HeroID: pudge, PubPick: 950, PubWin: 475},
		{HeroID: invoker, PubPick: 300, PubWin: 150},
	}
}

func testRegistry() *draft.Registry {
	return draft.NewRegistry(testHeroes(), testStats())
}

// Anti-Mage's matchups: Crystal Maiden beats him, Axe loses to him, Lion's
// sample is too small to count.
func testMatchups() *draft.MatchupStore {
	s := draft.NewMatchupStore()
	s.SetMatchups(antiMage, []domain.MatchupRecord{
		{OpponentID: crystalMaiden, GamesPlayed: 100, Wins: 40},
		{OpponentID: axe, GamesPlayed: 100, Wins: 70},
		{OpponentID: lion, GamesPlayed: 5, Wins: 0},
	})
	return s
}

func stateWith(t *testing.T, yours, enemy []int) *domain.DraftState {
	t.Helper()
	d, err := domain.DraftFromTeams(yours, enemy)
	require.NoError(t, err)
	return d
}
