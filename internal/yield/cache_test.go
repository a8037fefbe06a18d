package yield

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blz111/qq-farm-bot/internal/tuning"
)

func TestBestSeedCache_MemoizesPerKey(t *testing.T) {
	cat := scenarioCatalog()
	cache := NewBestSeedCache(NewOptimizer(cat, tuning.Default().Yield))

	first := cache.Get(context.Background(), 5, 10)
	second := cache.Get(context.Background(), 5, 10)
	assert.Same(t, first, second)
	assert.Contains(t, first.Line, "Lv5")
	assert.Contains(t, first.Line, "B")

	third := cache.Get(context.Background(), 4, 10)
	assert.NotSame(t, first, third)
	require.NotNil(t, third.Plain)
	assert.Equal(t, seedA, third.Plain.SeedID)
}

func TestBestSeedCache_IncompleteEntryRecomputed(t *testing.T) {
	cat := scenarioCatalog()
	cache := NewBestSeedCache(NewOptimizer(cat, tuning.Default().Yield))

	empty := cache.Get(context.Background(), 0, 10)
	assert.Nil(t, empty.Plain)
	assert.Contains(t, empty.Line, LineNoneMarker)

	again := cache.Get(context.Background(), 0, 10)
	assert.NotSame(t, empty, again)
}

func TestBestSeedCache_Invalidate(t *testing.T) {
	cache := NewBestSeedCache(NewOptimizer(scenarioCatalog(), tuning.Default().Yield))

	first := cache.Get(context.Background(), 5, 10)
	cache.Invalidate()
	assert.NotSame(t, first, cache.Get(context.Background(), 5, 10))
}
