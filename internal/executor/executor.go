package executor

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/blz111/qq-farm-bot/internal/domain"
	"github.com/blz111/qq-farm-bot/internal/landstate"
	"github.com/blz111/qq-farm-bot/internal/logger"
	"github.com/blz111/qq-farm-bot/internal/metrics"
)

// Options configures the executor
type Options struct {
	UseFertilizer    bool
	FertilizerItemID int64
	GoldItemID       int64
	SeedShopID       int64
	// PerPlotSpacing is the minimum gap between per-plot calls; 0 disables pacing
	PerPlotSpacing time.Duration
}

// Report counts the effects of one Run
type Report struct {
	Harvested  int   `json:"harvested"`
	Watered    int   `json:"watered"`
	Weeded     int   `json:"weeded"`
	Debugged   int   `json:"debugged"`
	Cleared    int   `json:"cleared"`
	Bought     int   `json:"bought"`
	Planted    int   `json:"planted"`
	Fertilized int   `json:"fertilized"`
	SeedID     int64 `json:"seed_id,omitempty"`
}

// Executor issues the remote operations implied by an analysis
type Executor struct {
	api     FarmAPI
	picker  SeedPicker
	opts    Options
	limiter *rate.Limiter
}

// New creates an Executor
func New(api FarmAPI, picker SeedPicker, opts Options) *Executor {
	limit := rate.Inf
	if opts.PerPlotSpacing > 0 {
		limit = rate.Every(opts.PerPlotSpacing)
	}
	return &Executor{
		api:     api,
		picker:  picker,
		opts:    opts,
		limiter: rate.NewLimiter(limit, 1),
	}
}

// FetchLands reads every land with the day's operation limits
func (e *Executor) FetchLands(ctx context.Context) (*domain.LandsResult, error) {
	res, err := e.api.AllLands(ctx)
	metrics.RecordRemoteOp(OpAllLands, err)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch lands: %w", err)
	}
	if res == nil || len(res.Lands) == 0 {
		return nil, domain.ErrNoLands
	}
	return res, nil
}

// Run tends, harvests and replants according to a. Failures are logged and
// reflected in the report counts; they never abort the whole run.
func (e *Executor) Run(ctx context.Context, a *landstate.Analysis, level int) Report {
	var report Report
	if a == nil {
		return report
	}
	log := logger.FromContext(ctx)

	report.Watered, report.Weeded, report.Debugged = e.Tend(ctx, a.NeedWater, a.NeedWeed, a.NeedBug)

	var harvested []int64
	if len(a.Harvestable) > 0 && e.batch(ctx, OpHarvest, a.Harvestable, e.api.Harvest) {
		harvested = a.Harvestable
		report.Harvested = len(harvested)
	}

	toClear := append(append([]int64(nil), a.Dead...), harvested...)
	targets := append(append([]int64(nil), toClear...), a.Empty...)
	if len(targets) > 0 {
		rr := e.Replant(ctx, toClear, targets, a.UnlockedCount, level)
		report.Cleared = rr.Cleared
		report.Bought = rr.Bought
		report.Planted = rr.Planted
		report.Fertilized = rr.Fertilized
		report.SeedID = rr.SeedID
	}

	log.Info(LogMsgRunDone,
		"harvested", report.Harvested,
		"watered", report.Watered,
		"weeded", report.Weeded,
		"debugged", report.Debugged,
		"planted", report.Planted,
		"fertilized", report.Fertilized)
	return report
}

// Tend waters, weeds and de-bugs concurrently. Each kind is one batched call;
// a failing kind reports zero without affecting the others.
func (e *Executor) Tend(ctx context.Context, water, weed, bug []int64) (watered, weeded, debugged int) {
	var g errgroup.Group
	dispatch := func(kind string, ids []int64, call func(context.Context, []int64) error, out *int) {
		if len(ids) == 0 {
			return
		}
		g.Go(func() error {
			if e.batch(ctx, kind, ids, call) {
				*out = len(ids)
			}
			return nil
		})
	}
	dispatch(OpWater, water, e.api.Water, &watered)
	dispatch(OpWeed, weed, e.api.Weed, &weeded)
	dispatch(OpInsecticide, bug, e.api.Insecticide, &debugged)
	_ = g.Wait()
	return watered, weeded, debugged
}

// batch issues one batched call and reports whether it succeeded
func (e *Executor) batch(ctx context.Context, kind string, ids []int64, call func(context.Context, []int64) error) bool {
	err := call(ctx, ids)
	metrics.RecordRemoteOp(kind, err)
	log := logger.FromContext(ctx)
	if err != nil {
		log.Warn(LogMsgBatchFailed, "op", kind, "lands", len(ids), "error", err)
		return false
	}
	log.Debug(LogMsgBatchDone, "op", kind, "lands", ids)
	return true
}

// perPlot calls fn for each id with limiter spacing. With stopOnError the
// sequence ends at the first failure; otherwise failures are skipped.
// It returns the ids that succeeded.
func (e *Executor) perPlot(ctx context.Context, kind string, ids []int64, stopOnError bool, fn func(context.Context, int64) error) []int64 {
	log := logger.FromContext(ctx)
	done := make([]int64, 0, len(ids))
	for _, id := range ids {
		if err := e.limiter.Wait(ctx); err != nil {
			return done
		}
		err := fn(ctx, id)
		metrics.RecordRemoteOp(kind, err)
		if err == nil {
			done = append(done, id)
			continue
		}
		if stopOnError {
			log.Warn(LogMsgFertilizeStopped, "op", kind, "land_id", id, "done", len(done), "error", err)
			return done
		}
		log.Warn(LogMsgPerPlotFailed, "op", kind, "land_id", id, "error", err)
	}
	return done
}

// PlantSequence plants seedID on each land, continuing past failures
func (e *Executor) PlantSequence(ctx context.Context, seedID int64, landIDs []int64) []int64 {
	return e.perPlot(ctx, OpPlant, landIDs, false, func(ctx context.Context, id int64) error {
		return e.api.Plant(ctx, seedID, id)
	})
}

// FertilizeSequence fertilizes each land, stopping at the first failure
func (e *Executor) FertilizeSequence(ctx context.Context, landIDs []int64) []int64 {
	return e.perPlot(ctx, OpFertilize, landIDs, true, func(ctx context.Context, id int64) error {
		return e.api.Fertilize(ctx, e.opts.FertilizerItemID, id)
	})
}
