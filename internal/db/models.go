package db

import (
	"time"
)

type Hero struct {
	ID            int64
	Name          string
	LocalizedName string
	PrimaryAttr   string
	AttackType    string
	Roles         string
	Img           string
	Icon          string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type HeroStat struct {
	HeroID         int64
	PubPick        int64
	PubWin         int64
	PubPickTrend   string
	PubWinTrend    string
	BracketPick    string
	BracketWin     string
	ProPick        int64
	ProWin         int64
	ProBan         int64
	TurboPick      int64
	TurboWin       int64
	TurboPickTrend string
	TurboWinTrend  string
	UpdatedAt      time.Time
}

type Matchup struct {
	ID          string
	HeroID      int64
	OpponentID  int64
	GamesPlayed int64
	Wins        int64
	FetchedAt   time.Time
}

type SyncState struct {
	Key      string
	SyncedAt time.Time
}
