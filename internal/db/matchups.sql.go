package db

import (
	"context"
	"time"
)

const upsertMatchup = `
INSERT INTO matchups (id, hero_id, opponent_id, games_played, wins, fetched_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(hero_id, opponent_id) DO UPDATE SET
    games_played = excluded.games_played,
    wins = excluded.wins,
    fetched_at = excluded.fetched_at
`

type UpsertMatchupParams struct {
	ID          string
	HeroID      int64
	OpponentID  int64
	GamesPlayed int64
	Wins        int64
	FetchedAt   time.Time
}

func (q *Queries) UpsertMatchup(ctx context.Context, arg UpsertMatchupParams) error {
	_, err := q.db.ExecContext(ctx, upsertMatchup,
		arg.ID,
		arg.HeroID,
		arg.OpponentID,
		arg.GamesPlayed,
		arg.Wins,
		arg.FetchedAt,
	)
	return err
}

const listMatchupsByHero = `
SELECT id, hero_id, opponent_id, games_played, wins, fetched_at
FROM matchups WHERE hero_id = ? ORDER BY opponent_id
`

func (q *Queries) ListMatchupsByHero(ctx context.Context, heroID int64) ([]Matchup, error) {
	rows, err := q.db.QueryContext(ctx, listMatchupsByHero, heroID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Matchup
	for rows.Next() {
		var i Matchup
		if err := rows.Scan(
			&i.ID,
			&i.HeroID,
			&i.OpponentID,
			&i.GamesPlayed,
			&i.Wins,
			&i.FetchedAt,
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

const deleteMatchupsByHero = `DELETE FROM matchups WHERE hero_id = ?`

func (q *Queries) DeleteMatchupsByHero(ctx context.Context, heroID int64) error {
	_, err := q.db.ExecContext(ctx, deleteMatchupsByHero, heroID)
	return err
}
