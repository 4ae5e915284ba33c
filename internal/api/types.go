package api

import (
	"dota-draft-advisor/internal/domain"
)

// HeroStatsEntry is one element of GET /api/heroStats.
type HeroStatsEntry struct {
	ID            int      `json:"id"`
	Name          string   `json:"name"`
	LocalizedName string   `json:"localized_name"`
	PrimaryAttr   string   `json:"primary_attr"`
	AttackType    string   `json:"attack_type"`
	Roles         []string `json:"roles"`
	Img           string   `json:"img"`
	Icon          string   `json:"icon"`

	Pick1 int `json:"1_pick"`
	Win1  int `json:"1_win"`
	Pick2 int `json:"2_pick"`
	Win2  int `json:"2_win"`
	Pick3 int `json:"3_pick"`
	Win3  int `json:"3_win"`
	Pick4 int `json:"4_pick"`
	Win4  int `json:"4_win"`
	Pick5 int `json:"5_pick"`
	Win5  int `json:"5_win"`
	Pick6 int `json:"6_pick"`
	Win6  int `json:"6_win"`
	Pick7 int `json:"7_pick"`
	Win7  int `json:"7_win"`
	Pick8 int `json:"8_pick"`
	Win8  int `json:"8_win"`

	ProPick int `json:"pro_pick"`
	ProWin  int `json:"pro_win"`
	ProBan  int `json:"pro_ban"`

	PubPick      int   `json:"pub_pick"`
	PubWin       int   `json:"pub_win"`
	PubPickTrend []int `json:"pub_pick_trend"`
	PubWinTrend  []int `json:"pub_win_trend"`

	TurboPicks      int   `json:"turbo_picks"`
	TurboWins       int   `json:"turbo_wins"`
	TurboPicksTrend []int `json:"turbo_picks_trend"`
	TurboWinsTrend  []int `json:"turbo_wins_trend"`
}

func (e HeroStatsEntry) Hero() domain.Hero {
	return domain.Hero{
		ID:            e.ID,
		Name:          e.Name,
		LocalizedName: e.LocalizedName,
		PrimaryAttr:   e.PrimaryAttr,
		AttackType:    e.AttackType,
		Roles:         e.Roles,
		Img:           e.Img,
		Icon:          e.Icon,
	}
}

func (e HeroStatsEntry) Stats() domain.HeroStats {
	return domain.HeroStats{
		HeroID:         e.ID,
		PubPick:        e.PubPick,
		PubWin:         e.PubWin,
		PubPickTrend:   e.PubPickTrend,
		PubWinTrend:    e.PubWinTrend,
		BracketPick:    [domain.NumBrackets]int{e.Pick1, e.Pick2, e.Pick3, e.Pick4, e.Pick5, e.Pick6, e.Pick7, e.Pick8},
		BracketWin:     [domain.NumBrackets]int{e.Win1, e.Win2, e.Win3, e.Win4, e.Win5, e.Win6, e.Win7, e.Win8},
		ProPick:        e.ProPick,
		ProWin:         e.ProWin,
		ProBan:         e.ProBan,
		TurboPick:      e.TurboPicks,
		TurboWin:       e.TurboWins,
		TurboPickTrend: e.TurboPicksTrend,
		TurboWinTrend:  e.TurboWinsTrend,
	}
}

// MatchupEntry is one element of GET /api/heroes/{id}/matchups.
type MatchupEntry struct {
	HeroID      int `json:"hero_id"`
	GamesPlayed int `json:"games_played"`
	Wins        int `json:"wins"`
}

// Record converts the entry into a matchup of heroID against the entry's hero.
func (e MatchupEntry) Record(heroID int) domain.MatchupRecord {
	return domain.MatchupRecord{
		HeroID:      heroID,
		OpponentID:  e.HeroID,
		GamesPlayed: e.GamesPlayed,
		Wins:        e.Wins,
	}
}
