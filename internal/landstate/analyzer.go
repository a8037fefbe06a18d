package landstate

import (
	"context"
	"time"

	"github.com/blz111/qq-farm-bot/internal/domain"
	"github.com/blz111/qq-farm-bot/internal/logger"
)

// PlantCatalog resolves plant display names and configured grow times
type PlantCatalog interface {
	PlantName(id int64, serverName string) string
	GrowTime(id int64) int64
}

// Analysis is the categorized view of one lands fetch. Category id lists are
// disjoint; Need* lists only contain growing lands.
type Analysis struct {
	Empty       []int64
	Dead        []int64
	Harvestable []int64
	Growing     []int64

	NeedWater []int64
	NeedWeed  []int64
	NeedBug   []int64

	UnlockedCount int
	ServerTime    int64
	MinRemaining  *int64
	Plots         []domain.PlotRecord
}

// Counts returns the per-category sizes
func (a *Analysis) Counts() domain.CategoryCounts {
	return domain.CategoryCounts{
		Empty:       len(a.Empty),
		Dead:        len(a.Dead),
		Harvestable: len(a.Harvestable),
		Growing:     len(a.Growing),
		NeedWater:   len(a.NeedWater),
		NeedWeed:    len(a.NeedWeed),
		NeedBug:     len(a.NeedBug),
	}
}

// Snapshot builds the serializable farm summary
func (a *Analysis) Snapshot(takenAt time.Time) *domain.FarmSnapshot {
	snap := &domain.FarmSnapshot{
		Counts:        a.Counts(),
		ServerTime:    a.ServerTime,
		UnlockedCount: a.UnlockedCount,
		Plots:         append([]domain.PlotRecord(nil), a.Plots...),
		TakenAt:       takenAt,
	}
	if a.MinRemaining != nil {
		v := *a.MinRemaining
		snap.MinRemaining = &v
	}
	return snap
}

// Analyzer classifies lands against the server clock
type Analyzer struct {
	catalog PlantCatalog
}

// NewAnalyzer creates an analyzer resolving names through catalog
func NewAnalyzer(catalog PlantCatalog) *Analyzer {
	return &Analyzer{catalog: catalog}
}

// Analyze partitions unlocked lands at server time now. Locked lands are ignored.
func (a *Analyzer) Analyze(ctx context.Context, lands []domain.Land, now int64) *Analysis {
	out := &Analysis{ServerTime: now}

	for i := range lands {
		land := &lands[i]
		if !land.Unlocked {
			continue
		}
		out.UnlockedCount++
		rec := a.classify(ctx, land, now)

		switch rec.Category {
		case domain.CategoryEmpty:
			out.Empty = append(out.Empty, land.ID)
		case domain.CategoryDead:
			out.Dead = append(out.Dead, land.ID)
		case domain.CategoryHarvestable:
			out.Harvestable = append(out.Harvestable, land.ID)
		case domain.CategoryGrowing:
			out.Growing = append(out.Growing, land.ID)
			if rec.NeedsWater {
				out.NeedWater = append(out.NeedWater, land.ID)
			}
			if rec.NeedsWeed {
				out.NeedWeed = append(out.NeedWeed, land.ID)
			}
			if rec.NeedsBug {
				out.NeedBug = append(out.NeedBug, land.ID)
			}
			if rec.RemainingKnown && (out.MinRemaining == nil || rec.Remaining < *out.MinRemaining) {
				v := rec.Remaining
				out.MinRemaining = &v
			}
		}
		out.Plots = append(out.Plots, rec)
	}

	return out
}

func (a *Analyzer) classify(ctx context.Context, land *domain.Land, now int64) domain.PlotRecord {
	rec := domain.PlotRecord{LandID: land.ID, Category: domain.CategoryEmpty}

	plant := land.Plant
	if plant == nil || len(plant.Phases) == 0 {
		return rec
	}
	if !validPhases(plant.Phases) {
		logger.FromContext(ctx).Warn(LogMsgMalformedPlant, "land_id", land.ID, "plant_id", plant.ID)
		return rec
	}

	cur, _ := CurrentPhase(plant.Phases, now)
	rec.Name = a.catalog.PlantName(plant.ID, plant.Name)
	configured := a.catalog.GrowTime(plant.ID)
	rec.TotalGrow = TotalGrowTime(plant.Phases, configured)

	switch {
	case cur.Tag.IsDead():
		rec.Category = domain.CategoryDead
		return rec
	case cur.Tag.IsMature():
		rec.Category = domain.CategoryHarvestable
		return rec
	}

	rec.Category = domain.CategoryGrowing
	rec.NeedsWater = plant.DryNum > 0 || elapsed(cur.DryTime, now)
	rec.NeedsWeed = len(plant.WeedOwners) > 0 || elapsed(cur.WeedsTime, now)
	rec.NeedsBug = len(plant.InsectOwners) > 0 || elapsed(cur.InsectTime, now)
	rec.Remaining, rec.RemainingKnown = RemainingTime(plant.Phases, now, configured)
	return rec
}

// elapsed reports whether a threshold timestamp is set and has passed
func elapsed(threshold, now int64) bool {
	return threshold > 0 && threshold <= now
}

// validPhases rejects timelines with negative timestamps
func validPhases(phases []domain.Phase) bool {
	for _, p := range phases {
		if p.BeginTime < 0 || p.DryTime < 0 || p.WeedsTime < 0 || p.InsectTime < 0 {
			return false
		}
	}
	return true
}
