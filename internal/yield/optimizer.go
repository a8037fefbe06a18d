package yield

import (
	"context"
	"math"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/blz111/qq-farm-bot/internal/domain"
	"github.com/blz111/qq-farm-bot/internal/gameconfig"
	"github.com/blz111/qq-farm-bot/internal/logger"
	"github.com/blz111/qq-farm-bot/internal/tuning"
)

// SeedCatalog is the slice of the static tables the optimizer reads
type SeedCatalog interface {
	SeedShop() []gameconfig.SeedDef
	PlantBySeed(seedID int64) (gameconfig.PlantDef, bool)
}

// Optimizer ranks seeds by experience per hour. Results are pure functions of
// the catalog, tuning and plot count; candidate lists are memoized by plot count.
type Optimizer struct {
	catalog    SeedCatalog
	model      tuning.Yield
	candidates *lru.Cache[int, []domain.SeedCandidate]
}

// NewOptimizer creates an optimizer over catalog
func NewOptimizer(catalog SeedCatalog, model tuning.Yield) *Optimizer {
	cache, err := lru.New[int, []domain.SeedCandidate](CandidateCacheSize)
	if err != nil {
		panic(err)
	}
	return &Optimizer{catalog: catalog, model: model, candidates: cache}
}

// FertilizedGrowTime applies one normal fertilizer to a grow time
func FertilizedGrowTime(grow float64, model tuning.Yield) float64 {
	cut := math.Max(grow*model.FertilizerRatio, model.FertilizerFloorSeconds)
	return math.Max(grow-cut, 0)
}

// CycleTime is grow time plus the time to replant every plot
func CycleTime(grow float64, plots int, fertilized bool, model tuning.Yield) float64 {
	if fertilized {
		return FertilizedGrowTime(grow, model) + float64(plots)/model.PlantRateFertilized
	}
	return grow + float64(plots)/model.PlantRateUnfertilized
}

// ExpPerHour is plots × exp / cycle × 3600, 0 for a non-positive cycle
func ExpPerHour(plots int, exp int64, cycle float64) float64 {
	if cycle <= 0 {
		return 0
	}
	return float64(plots) * float64(exp) / cycle * SecondsPerHour
}

// Candidates returns every shop seed evaluated for plots unlocked plots
func (o *Optimizer) Candidates(ctx context.Context, plots int) []domain.SeedCandidate {
	if cached, ok := o.candidates.Get(plots); ok {
		return cached
	}

	log := logger.FromContext(ctx)
	shop := o.catalog.SeedShop()
	out := make([]domain.SeedCandidate, 0, len(shop))
	for _, s := range shop {
		plant, ok := o.catalog.PlantBySeed(s.SeedID)
		if !ok {
			log.Debug(LogMsgSeedPlantMissing, "seed_id", s.SeedID)
			continue
		}
		grow := float64(plant.GrowTime.Int64())
		exp := plant.Exp.Int64()
		out = append(out, domain.SeedCandidate{
			SeedID:               s.SeedID,
			GoodsID:              s.GoodsID,
			RequiredLevel:        s.RequiredLevel,
			Price:                s.Price,
			Unlocked:             s.IsUnlocked(),
			Name:                 plant.Name,
			Exp:                  exp,
			GrowTime:             plant.GrowTime.Int64(),
			ExpPerHour:           ExpPerHour(plots, exp, CycleTime(grow, plots, false, o.model)),
			ExpPerHourFertilized: ExpPerHour(plots, exp, CycleTime(grow, plots, true, o.model)),
		})
	}

	o.candidates.Add(plots, out)
	log.Debug(LogMsgCandidatesBuilt, "plots", plots, "count", len(out))
	return out
}

// Best picks the top seed by each rate independently among seeds the player
// may buy. filter, when non-nil, restricts the pick to the listed seed ids.
// The first maximum wins ties. Either result is nil when nothing qualifies.
func (o *Optimizer) Best(ctx context.Context, level, plots int, filter map[int64]bool) (plain, fertilized *domain.SeedCandidate) {
	candidates := o.Candidates(ctx, plots)
	for i := range candidates {
		c := &candidates[i]
		if c.RequiredLevel > level || !c.Unlocked {
			continue
		}
		if filter != nil && !filter[c.SeedID] {
			continue
		}
		if plain == nil || c.ExpPerHour > plain.ExpPerHour {
			plain = c
		}
		if fertilized == nil || c.ExpPerHourFertilized > fertilized.ExpPerHourFertilized {
			fertilized = c
		}
	}
	return copyCandidate(plain), copyCandidate(fertilized)
}

func copyCandidate(c *domain.SeedCandidate) *domain.SeedCandidate {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}
