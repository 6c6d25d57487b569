package cache

import (
	"context"
	"testing"
	"time"

	"github.com/adelinv/replyscore/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testVerdict(score float64) models.Verdict {
	v := models.Verdict{OverallScore: score}
	v.Normalize()
	return v
}

func TestBuildKey_ContentSensitive(t *testing.T) {
	a := BuildKey("42", "Thanks for reaching out!")
	b := BuildKey("42", "Thanks for reaching out!")
	c := BuildKey("42", "Thanks for reaching out!!")
	d := BuildKey("43", "Thanks for reaching out!")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c, "one-character change must produce a new key")
	assert.NotEqual(t, a, d, "different tickets must not share keys")
	assert.Contains(t, a, "42:")
}

func TestMemoryStore_SetGet(t *testing.T) {
	store := NewMemoryStore(time.Hour, nil, logrus.New())
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "k", testVerdict(7.5)))

	got, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 7.5, got.OverallScore)
	assert.True(t, store.Has(ctx, "k"))
}

func TestMemoryStore_RetentionEviction(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	store := NewMemoryStore(30*24*time.Hour, clock, logrus.New())
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "old", testVerdict(5)))

	// 31 days later the entry is both invisible and evictable
	now = now.Add(31 * 24 * time.Hour)

	_, ok, err := store.Get(ctx, "old")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Equal(t, 1, store.EvictExpired())
	assert.Equal(t, 0, store.Len())
	assert.Equal(t, 0, store.EvictExpired())
}

func TestMemoryStore_FreshEntriesSurviveEviction(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	store := NewMemoryStore(30*24*time.Hour, clock, logrus.New())
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "old", testVerdict(5)))
	now = now.Add(20 * 24 * time.Hour)
	require.NoError(t, store.Set(ctx, "newer", testVerdict(6)))
	now = now.Add(15 * 24 * time.Hour)

	assert.Equal(t, 1, store.EvictExpired())
	assert.True(t, store.Has(ctx, "newer"))
	assert.False(t, store.Has(ctx, "old"))
}

func TestInFlight_BeginEnd(t *testing.T) {
	inflight := NewInFlight()

	assert.True(t, inflight.Begin("k"))
	assert.False(t, inflight.Begin("k"), "second Begin for an outstanding key must fail")
	assert.True(t, inflight.Active("k"))
	assert.True(t, inflight.Begin("other"))

	inflight.End("k")
	assert.False(t, inflight.Active("k"))
	assert.True(t, inflight.Begin("k"))

	// End on an unmarked key is a no-op
	inflight.End("never-started")
}
