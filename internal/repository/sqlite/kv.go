package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/techcare/core/internal/db"
	"github.com/techcare/core/pkg/repository"
)

// KV is a durable key-value namespace on its own database handle, kept
// separate from the users/requests store. The session context lives here.
type KV struct {
	conn *db.DB
}

var _ repository.KVStore = (*KV)(nil)

// NewKV opens the namespace, creating the backing table if needed.
func NewKV(ctx context.Context, conn *db.DB) (*KV, error) {
	if _, err := conn.Exec(ctx,
		`CREATE TABLE IF NOT EXISTS session_store (key TEXT PRIMARY KEY, value TEXT NOT NULL)`); err != nil {
		return nil, fmt.Errorf("ensure session_store: %w", err)
	}

	return &KV{conn: conn}, nil
}

func (kv *KV) Get(ctx context.Context, key string) (string, bool, error) {
	row := kv.conn.QueryRow(ctx, `SELECT value FROM session_store WHERE key = ?`, key)
	var v string
	if err := row.Scan(&v); err != nil {
		if err == sql.ErrNoRows {
			return "", false, nil
		}

		return "", false, err
	}

	return v, true, nil
}

func (kv *KV) Set(ctx context.Context, key, value string) error {
	_, err := kv.conn.Exec(ctx,
		`INSERT INTO session_store (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value)
	return err
}

func (kv *KV) Clear(ctx context.Context) error {
	_, err := kv.conn.Exec(ctx, `DELETE FROM session_store`)
	return err
}
