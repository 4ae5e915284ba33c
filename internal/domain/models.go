package domain

import (
	"slices"
	"time"
)

const (
	AttrStrength     = "str"
	AttrAgility      = "agi"
	AttrIntelligence = "int"
	AttrUniversal    = "all"
)

const (
	AttackMelee  = "Melee"
	AttackRanged = "Ranged"
)

// Role tags as reported by OpenDota. The set is open; these are the ones the
// heuristics look at.
const (
	RoleCarry     = "Carry"
	RoleSupport   = "Support"
	RoleNuker     = "Nuker"
	RoleDisabler  = "Disabler"
	RoleJungler   = "Jungler"
	RoleDurable   = "Durable"
	RoleEscape    = "Escape"
	RolePusher    = "Pusher"
	RoleInitiator = "Initiator"
)

// NumBrackets is the number of skill brackets OpenDota reports (Herald..Immortal).
const NumBrackets = 8

// MinMatchupGames is the sample size below which a matchup is treated as noise.
const MinMatchupGames = 10

type Hero struct {
	ID            int
	Name          string // npc_dota_hero_*
	LocalizedName string
	PrimaryAttr   string
	AttackType    string
	Roles         []string
	Img           string
	Icon          string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (h *Hero) HasRole(role string) bool {
	return slices.Contains(h.Roles, role)
}

func (h *Hero) HasAnyRole(roles ...string) bool {
	for _, r := range roles {
		if h.HasRole(r) {
			return true
		}
	}
	return false
}

type HeroStats struct {
	HeroID int

	PubPick      int
	PubWin       int
	PubPickTrend []int // last 7 days
	PubWinTrend  []int

	BracketPick [NumBrackets]int
	BracketWin  [NumBrackets]int

	ProPick int
	ProWin  int
	ProBan  int

	TurboPick      int
	TurboWin       int
	TurboPickTrend []int
	TurboWinTrend  []int

	UpdatedAt time.Time
}

type MatchupRecord struct {
	ID          string
	HeroID      int
	OpponentID  int
	GamesPlayed int
	Wins        int
	FetchedAt   time.Time
}

// WinRate returns the hero's win percentage in this matchup, 0 for an empty sample.
func (m MatchupRecord) WinRate() float64 {
	if m.GamesPlayed == 0 {
		return 0
	}
	return float64(m.Wins) / float64(m.GamesPlayed) * 100
}

func (m MatchupRecord) Significant() bool {
	return m.GamesPlayed >= MinMatchupGames
}
