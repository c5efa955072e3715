package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// CacheStore handles summary cache operations
type CacheStore struct {
	db *sql.DB
}

// NewCacheStore creates a new cache store from a base store
func NewCacheStore(store *Store) *CacheStore {
	if store == nil {
		return nil
	}
	return &CacheStore{db: store.DB()}
}

// SaveSummary upserts the summary for digest
func (cs *CacheStore) SaveSummary(ctx context.Context, digest, summary string, updatedAt int64) error {
	if cs == nil || cs.db == nil {
		return fmt.Errorf("cache store not initialized")
	}
	if strings.TrimSpace(digest) == "" || strings.TrimSpace(summary) == "" {
		return fmt.Errorf("invalid summary inputs")
	}
	_, err := cs.db.ExecContext(ctx, `INSERT INTO email_summaries(digest, summary, updated_at)
VALUES(?,?,?)
ON CONFLICT(digest) DO UPDATE SET summary=excluded.summary, updated_at=excluded.updated_at;
`, digest, summary, updatedAt)
	return err
}

// LoadSummary returns a cached summary if present
func (cs *CacheStore) LoadSummary(ctx context.Context, digest string) (string, bool, error) {
	if cs == nil || cs.db == nil {
		return "", false, fmt.Errorf("cache store not initialized")
	}
	var out string
	err := cs.db.QueryRowContext(ctx, `SELECT summary FROM email_summaries WHERE digest=?`, digest).Scan(&out)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return out, true, nil
}

// Purge removes every cached summary
func (cs *CacheStore) Purge(ctx context.Context) error {
	if cs == nil || cs.db == nil {
		return fmt.Errorf("cache store not initialized")
	}
	_, err := cs.db.ExecContext(ctx, `DELETE FROM email_summaries`)
	return err
}

// Count returns the number of cached summaries
func (cs *CacheStore) Count(ctx context.Context) (int, error) {
	if cs == nil || cs.db == nil {
		return 0, fmt.Errorf("cache store not initialized")
	}
	var n int
	if err := cs.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM email_summaries`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
