package executor

import (
	"context"

	"github.com/blz111/qq-farm-bot/internal/domain"
)

// FarmAPI is the remote farm surface. Batch methods take any number of land
// ids in one call; Plant and Fertilize address a single land.
type FarmAPI interface {
	AllLands(ctx context.Context) (*domain.LandsResult, error)
	Harvest(ctx context.Context, landIDs []int64) error
	Water(ctx context.Context, landIDs []int64) error
	Weed(ctx context.Context, landIDs []int64) error
	Insecticide(ctx context.Context, landIDs []int64) error
	Remove(ctx context.Context, landIDs []int64) error
	Plant(ctx context.Context, seedID, landID int64) error
	Fertilize(ctx context.Context, fertilizerID, landID int64) error
	Bag(ctx context.Context) ([]domain.ItemStack, error)
	ShopGoods(ctx context.Context, shopID int64) ([]domain.ShopGoods, error)
	Buy(ctx context.Context, goodsID, count, price int64) error
}

// SeedPicker chooses the best seed for a level and plot count among filter
type SeedPicker interface {
	Best(ctx context.Context, level, plots int, filter map[int64]bool) (plain, fertilized *domain.SeedCandidate)
}
