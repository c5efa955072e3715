package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajramos/mailbrief/internal/db"
)

func newCacheService(t *testing.T) *CacheServiceImpl {
	t.Helper()
	store, err := db.Open(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return NewCacheService(db.NewCacheStore(store))
}

func TestBodyDigest(t *testing.T) {
	assert.Equal(t, BodyDigest("hello"), BodyDigest("hello"))
	assert.NotEqual(t, BodyDigest("hello"), BodyDigest("hello "))
	assert.Len(t, BodyDigest(""), 64)
}

func TestCacheService_NilStore(t *testing.T) {
	svc := NewCacheService(nil)
	ctx := context.Background()

	_, found, err := svc.GetSummary(ctx, "body")
	assert.False(t, found)
	assert.ErrorContains(t, err, "cache store not available")
	assert.ErrorContains(t, svc.SaveSummary(ctx, "body", "s"), "cache store not available")
	assert.ErrorContains(t, svc.ClearCache(ctx), "cache store not available")
}

func TestCacheService_Validation(t *testing.T) {
	svc := newCacheService(t)
	ctx := context.Background()

	_, _, err := svc.GetSummary(ctx, "  ")
	assert.ErrorContains(t, err, "body cannot be empty")
	assert.ErrorContains(t, svc.SaveSummary(ctx, "", "s"), "cannot be empty")
	assert.ErrorContains(t, svc.SaveSummary(ctx, "body", " "), "cannot be empty")
}

func TestCacheService_RoundTripAndClear(t *testing.T) {
	svc := newCacheService(t)
	ctx := context.Background()

	_, found, err := svc.GetSummary(ctx, "Let's meet tomorrow")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, svc.SaveSummary(ctx, "Let's meet tomorrow", "Meeting tomorrow"))

	got, found, err := svc.GetSummary(ctx, "Let's meet tomorrow")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Meeting tomorrow", got)

	require.NoError(t, svc.ClearCache(ctx))
	_, found, err = svc.GetSummary(ctx, "Let's meet tomorrow")
	require.NoError(t, err)
	assert.False(t, found)
}
