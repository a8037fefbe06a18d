package executor

import (
	"context"

	"github.com/blz111/qq-farm-bot/internal/domain"
	"github.com/blz111/qq-farm-bot/internal/logger"
	"github.com/blz111/qq-farm-bot/internal/metrics"
)

// ReplantResult counts what the replant pipeline achieved before finishing or
// hitting a failing stage
type ReplantResult struct {
	Cleared    int
	Bought     int
	Planted    int
	Fertilized int
	SeedID     int64
}

// inventory is the part of the bag the pipeline reads
type inventory struct {
	gold       int64
	fertilizer int64
	items      map[int64]int64
}

// Replant clears toClear in one call, then buys and plants the best seed on
// targets and fertilizes what was planted. Stages run in order; a failing
// stage logs a warning and ends the pipeline with the counts so far.
func (e *Executor) Replant(ctx context.Context, toClear, targets []int64, plots, level int) ReplantResult {
	var res ReplantResult
	log := logger.FromContext(ctx)

	if len(toClear) > 0 {
		if !e.batch(ctx, OpRemove, toClear, e.api.Remove) {
			log.Warn(LogMsgReplantStageFailed, "stage", StageClear)
			return res
		}
		res.Cleared = len(toClear)
	}
	if len(targets) == 0 {
		return res
	}

	inv, err := e.readBag(ctx)
	if err != nil {
		log.Warn(LogMsgReplantStageFailed, "stage", StageBag, "error", err)
		return res
	}

	goods, err := e.api.ShopGoods(ctx, e.opts.SeedShopID)
	metrics.RecordRemoteOp(OpShop, err)
	if err != nil {
		log.Warn(LogMsgReplantStageFailed, "stage", StageShop, "error", err)
		return res
	}
	bySeed := make(map[int64]domain.ShopGoods, len(goods))
	filter := make(map[int64]bool, len(goods))
	for _, g := range goods {
		if g.Unlocked {
			bySeed[g.ItemID] = g
			filter[g.ItemID] = true
		}
	}

	fertilize := e.opts.UseFertilizer && inv.fertilizer > 0
	plain, fertilized := e.picker.Best(ctx, level, plots, filter)
	seed := plain
	if fertilize {
		seed = fertilized
	}
	if seed == nil {
		log.Warn(LogMsgNoSeedCandidate, "stage", StagePick, "level", level, "plots", plots, "error", domain.ErrNoSeedCandidate)
		return res
	}
	res.SeedID = seed.SeedID

	available := inv.items[seed.SeedID]
	if shortfall := int64(len(targets)) - available; shortfall > 0 {
		g, listed := bySeed[seed.SeedID]
		price, goodsID := seed.Price, seed.GoodsID
		if listed {
			price, goodsID = g.Price, g.GoodsID
		}
		qty, cost := AffordableQuantity(shortfall, price, inv.gold)
		if qty == 0 {
			log.Warn(LogMsgCannotAfford, "seed_id", seed.SeedID, "price", price, "gold", inv.gold, "error", domain.ErrInsufficientGold)
		} else {
			err := e.api.Buy(ctx, goodsID, qty, price)
			metrics.RecordRemoteOp(OpBuy, err)
			if err != nil {
				log.Warn(LogMsgReplantStageFailed, "stage", StageBuy, "error", err)
			} else {
				res.Bought = int(qty)
				available += qty
				log.Info(LogMsgBought, "seed", seed.Name, "count", qty, "cost", cost)
			}
		}
	}
	if available <= 0 {
		return res
	}
	if available < int64(len(targets)) {
		targets = targets[:available]
	}

	planted := e.PlantSequence(ctx, seed.SeedID, targets)
	res.Planted = len(planted)

	if fertilize && len(planted) > 0 {
		if int64(len(planted)) > inv.fertilizer {
			planted = planted[:inv.fertilizer]
		}
		res.Fertilized = len(e.FertilizeSequence(ctx, planted))
	}

	log.Info(LogMsgReplantDone,
		"seed", seed.Name,
		"cleared", res.Cleared,
		"bought", res.Bought,
		"planted", res.Planted,
		"fertilized", res.Fertilized)
	return res
}

func (e *Executor) readBag(ctx context.Context) (inventory, error) {
	items, err := e.api.Bag(ctx)
	metrics.RecordRemoteOp(OpBag, err)
	if err != nil {
		return inventory{}, err
	}
	inv := inventory{items: make(map[int64]int64, len(items))}
	for _, it := range items {
		inv.items[it.ID] += it.Count
	}
	inv.gold = inv.items[e.opts.GoldItemID]
	inv.fertilizer = inv.items[e.opts.FertilizerItemID]
	return inv, nil
}

// AffordableQuantity clamps desired to what balance can pay for at unitPrice
func AffordableQuantity(desired, unitPrice, balance int64) (quantity, cost int64) {
	if desired <= 0 {
		return 0, 0
	}
	if unitPrice <= 0 {
		return desired, 0
	}
	if balance < unitPrice {
		return 0, 0
	}
	maxAffordable := balance / unitPrice
	if desired <= maxAffordable {
		return desired, desired * unitPrice
	}
	return maxAffordable, maxAffordable * unitPrice
}
