package db

import (
	"context"
	"time"
)

const getSyncState = `SELECT key, synced_at FROM sync_state WHERE key = ?`

func (q *Queries) GetSyncState(ctx context.Context, key string) (SyncState, error) {
	row := q.db.QueryRowContext(ctx, getSyncState, key)
	var i SyncState
	err := row.Scan(&i.Key, &i.SyncedAt)
	return i, err
}

const upsertSyncState = `
INSERT INTO sync_state (key, synced_at) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET synced_at = excluded.synced_at
`

type UpsertSyncStateParams struct {
	Key      string
	SyncedAt time.Time
}

func (q *Queries) UpsertSyncState(ctx context.Context, arg UpsertSyncStateParams) error {
	_, err := q.db.ExecContext(ctx, upsertSyncState, arg.Key, arg.SyncedAt)
	return err
}
