package executor

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/blz111/qq-farm-bot/internal/domain"
)

// MockFarmAPI is a testify mock of FarmAPI
type MockFarmAPI struct {
	mock.Mock
}

func (m *MockFarmAPI) AllLands(ctx context.Context) (*domain.LandsResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LandsResult), args.Error(1)
}

func (m *MockFarmAPI) Harvest(ctx context.Context, landIDs []int64) error {
	return m.Called(ctx, landIDs).Error(0)
}

func (m *MockFarmAPI) Water(ctx context.Context, landIDs []int64) error {
	return m.Called(ctx, landIDs).Error(0)
}

func (m *MockFarmAPI) Weed(ctx context.Context, landIDs []int64) error {
	return m.Called(ctx, landIDs).Error(0)
}

func (m *MockFarmAPI) Insecticide(ctx context.Context, landIDs []int64) error {
	return m.Called(ctx, landIDs).Error(0)
}

func (m *MockFarmAPI) Remove(ctx context.Context, landIDs []int64) error {
	return m.Called(ctx, landIDs).Error(0)
}

func (m *MockFarmAPI) Plant(ctx context.Context, seedID, landID int64) error {
	return m.Called(ctx, seedID, landID).Error(0)
}

func (m *MockFarmAPI) Fertilize(ctx context.Context, fertilizerID, landID int64) error {
	return m.Called(ctx, fertilizerID, landID).Error(0)
}

func (m *MockFarmAPI) Bag(ctx context.Context) ([]domain.ItemStack, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ItemStack), args.Error(1)
}

func (m *MockFarmAPI) ShopGoods(ctx context.Context, shopID int64) ([]domain.ShopGoods, error) {
	args := m.Called(ctx, shopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ShopGoods), args.Error(1)
}

func (m *MockFarmAPI) Buy(ctx context.Context, goodsID, count, price int64) error {
	return m.Called(ctx, goodsID, count, price).Error(0)
}

// stubPicker returns fixed picks and records the filter it was given
type stubPicker struct {
	plain      *domain.SeedCandidate
	fertilized *domain.SeedCandidate
	gotFilter  map[int64]bool
}

func (s *stubPicker) Best(ctx context.Context, level, plots int, filter map[int64]bool) (*domain.SeedCandidate, *domain.SeedCandidate) {
	s.gotFilter = filter
	return s.plain, s.fertilized
}
