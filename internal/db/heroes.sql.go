package db

import (
	"context"
	"time"
)

const upsertHero = `
INSERT INTO heroes (id, name, localized_name, primary_attr, attack_type, roles, img, icon, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    name = excluded.name,
    localized_name = excluded.localized_name,
    primary_attr = excluded.primary_attr,
    attack_type = excluded.attack_type,
    roles = excluded.roles,
    img = excluded.img,
    icon = excluded.icon,
    updated_at = excluded.updated_at
`

type UpsertHeroParams struct {
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

func (q *Queries) UpsertHero(ctx context.Context, arg UpsertHeroParams) error {
	_, err := q.db.ExecContext(ctx, upsertHero,
		arg.ID,
		arg.Name,
		arg.LocalizedName,
		arg.PrimaryAttr,
		arg.AttackType,
		arg.Roles,
		arg.Img,
		arg.Icon,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const getHero = `
SELECT id, name, localized_name, primary_attr, attack_type, roles, img, icon, created_at, updated_at
FROM heroes WHERE id = ?
`

func (q *Queries) GetHero(ctx context.Context, id int64) (Hero, error) {
	row := q.db.QueryRowContext(ctx, getHero, id)
	var i Hero
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.LocalizedName,
		&i.PrimaryAttr,
		&i.AttackType,
		&i.Roles,
		&i.Img,
		&i.Icon,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const listHeroes = `
SELECT id, name, localized_name, primary_attr, attack_type, roles, img, icon, created_at, updated_at
FROM heroes ORDER BY id
`

func (q *Queries) ListHeroes(ctx context.Context) ([]Hero, error) {
	rows, err := q.db.QueryContext(ctx, listHeroes)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Hero
	for rows.Next() {
		var i Hero
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.LocalizedName,
			&i.PrimaryAttr,
			&i.AttackType,
			&i.Roles,
			&i.Img,
			&i.Icon,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const countHeroes = `SELECT COUNT(*) FROM heroes`

func (q *Queries) CountHeroes(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countHeroes)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const upsertHeroStats = `
INSERT INTO hero_stats (
    hero_id, pub_pick, pub_win, pub_pick_trend, pub_win_trend, bracket_pick, bracket_win,
    pro_pick, pro_win, pro_ban, turbo_pick, turbo_win, turbo_pick_trend, turbo_win_trend, updated_at
)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(hero_id) DO UPDATE SET
    pub_pick = excluded.pub_pick,
    pub_win = excluded.pub_win,
    pub_pick_trend = excluded.pub_pick_trend,
    pub_win_trend = excluded.pub_win_trend,
    bracket_pick = excluded.bracket_pick,
    bracket_win = excluded.bracket_win,
    pro_pick = excluded.pro_pick,
    pro_win = excluded.pro_win,
    pro_ban = excluded.pro_ban,
    turbo_pick = excluded.turbo_pick,
    turbo_win = excluded.turbo_win,
    turbo_pick_trend = excluded.turbo_pick_trend,
    turbo_win_trend = excluded.turbo_win_trend,
    updated_at = excluded.updated_at
`

type UpsertHeroStatsParams struct {
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

func (q *Queries) UpsertHeroStats(ctx context.Context, arg UpsertHeroStatsParams) error {
	_, err := q.db.ExecContext(ctx, upsertHeroStats,
		arg.HeroID,
		arg.PubPick,
		arg.PubWin,
		arg.PubPickTrend,
		arg.PubWinTrend,
		arg.BracketPick,
		arg.BracketWin,
		arg.ProPick,
		arg.ProWin,
		arg.ProBan,
		arg.TurboPick,
		arg.TurboWin,
		arg.TurboPickTrend,
		arg.TurboWinTrend,
		arg.UpdatedAt,
	)
	return err
}

const listHeroStats = `
SELECT hero_id, pub_pick, pub_win, pub_pick_trend, pub_win_trend, bracket_pick, bracket_win,
       pro_pick, pro_win, pro_ban, turbo_pick, turbo_win, turbo_pick_trend, turbo_win_trend, updated_at
FROM hero_stats ORDER BY hero_id
`

func (q *Queries) ListHeroStats(ctx context.Context) ([]HeroStat, error) {
	rows, err := q.db.QueryContext(ctx, listHeroStats)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []HeroStat
	for rows.Next() {
		var i HeroStat
		if err := rows.Scan(
			&i.HeroID,
			&i.PubPick,
			&i.PubWin,
			&i.PubPickTrend,
			&i.PubWinTrend,
			&i.BracketPick,
			&i.BracketWin,
			&i.ProPick,
			&i.ProWin,
			&i.ProBan,
			&i.TurboPick,
			&i.TurboWin,
			&i.TurboPickTrend,
			&i.TurboWinTrend,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
