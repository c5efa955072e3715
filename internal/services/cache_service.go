package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/ajramos/mailbrief/internal/db"
)

// CacheServiceImpl implements CacheService on top of the in-memory store.
// Entries are keyed by a digest of the email body, not by message id.
type CacheServiceImpl struct {
	store *db.CacheStore
}

// NewCacheService creates a new cache service
func NewCacheService(store *db.CacheStore) *CacheServiceImpl {
	return &CacheServiceImpl{
		store: store,
	}
}

// BodyDigest returns the cache key for an email body
func BodyDigest(body string) string {
	sum := sha256.Sum256([]byte(body))
	return hex.EncodeToString(sum[:])
}

func (s *CacheServiceImpl) GetSummary(ctx context.Context, body string) (string, bool, error) {
	if s.store == nil {
		return "", false, fmt.Errorf("cache store not available")
	}
	if strings.TrimSpace(body) == "" {
		return "", false, fmt.Errorf("body cannot be empty")
	}

	summary, found, err := s.store.LoadSummary(ctx, BodyDigest(body))
	if err != nil {
		return "", false, fmt.Errorf("failed to load summary from cache: %w", err)
	}
	return summary, found, nil
}

func (s *CacheServiceImpl) SaveSummary(ctx context.Context, body, summary string) error {
	if s.store == nil {
		return fmt.Errorf("cache store not available")
	}
	if strings.TrimSpace(body) == "" || strings.TrimSpace(summary) == "" {
		return fmt.Errorf("body and summary cannot be empty")
	}

	if err := s.store.SaveSummary(ctx, BodyDigest(body), summary, time.Now().Unix()); err != nil {
		return fmt.Errorf("failed to save summary to cache: %w", err)
	}
	return nil
}

func (s *CacheServiceImpl) ClearCache(ctx context.Context) error {
	if s.store == nil {
		return fmt.Errorf("cache store not available")
	}
	if err := s.store.Purge(ctx); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}
