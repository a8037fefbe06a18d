package yield

import (
	"context"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/blz111/qq-farm-bot/internal/domain"
)

type bestSeedKey struct {
	level int
	lands int
}

// BestSeedCache memoizes the optimizer's picks for the current (level, lands)
// pair. An entry missing either pick is recomputed on the next read.
type BestSeedCache struct {
	optimizer *Optimizer

	mu    sync.Mutex
	cache *lru.Cache[bestSeedKey, *domain.BestSeeds]
}

// NewBestSeedCache creates a cache backed by optimizer
func NewBestSeedCache(optimizer *Optimizer) *BestSeedCache {
	cache, err := lru.New[bestSeedKey, *domain.BestSeeds](BestSeedCacheSize)
	if err != nil {
		panic(err)
	}
	return &BestSeedCache{optimizer: optimizer, cache: cache}
}

// Get returns the picks for (level, lands), recomputing when the key changed
// or the cached entry is incomplete
func (c *BestSeedCache) Get(ctx context.Context, level, lands int) *domain.BestSeeds {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := bestSeedKey{level: level, lands: lands}
	if entry, ok := c.cache.Get(key); ok && entry.Plain != nil && entry.Fertilized != nil {
		return entry
	}

	plain, fertilized := c.optimizer.Best(ctx, level, lands, nil)
	entry := &domain.BestSeeds{
		Level:      level,
		Lands:      lands,
		Plain:      plain,
		Fertilized: fertilized,
		Line:       FormatLine(level, lands, plain, fertilized),
	}
	c.cache.Add(key, entry)
	return entry
}

// Invalidate drops the cached entry
func (c *BestSeedCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache.Purge()
}

// FormatLine renders the best-seed summary shown in the status bar
func FormatLine(level, lands int, plain, fertilized *domain.SeedCandidate) string {
	return fmt.Sprintf(LineFmt, level, lands, formatPick(plain, false), formatPick(fertilized, true))
}

func formatPick(c *domain.SeedCandidate, fertilized bool) string {
	if c == nil {
		return LineNoneMarker
	}
	rate := c.ExpPerHour
	if fertilized {
		rate = c.ExpPerHourFertilized
	}
	return fmt.Sprintf(LinePickFmt, c.Name, rate)
}
