package executor

// Operation kinds, used as metric labels and log attributes
const (
	OpAllLands    = "all_lands"
	OpHarvest     = "harvest"
	OpWater       = "water"
	OpWeed        = "weed"
	OpInsecticide = "insecticide"
	OpRemove      = "remove"
	OpPlant       = "plant"
	OpFertilize   = "fertilize"
	OpBag         = "bag"
	OpShop        = "shop"
	OpBuy         = "buy"
)

// Log messages
const (
	LogMsgBatchFailed        = "Batch operation failed"
	LogMsgBatchDone          = "Batch operation done"
	LogMsgPerPlotFailed      = "Per-plot operation failed"
	LogMsgFertilizeStopped   = "Fertilize failed, stopping sequence (likely out of fertilizer)"
	LogMsgReplantStageFailed = "Replant stage failed"
	LogMsgNoSeedCandidate    = "No purchasable seed for current level"
	LogMsgCannotAfford       = "Cannot afford any seeds"
	LogMsgBought             = "Bought seeds"
	LogMsgReplantDone        = "Replant finished"
	LogMsgRunDone            = "Farm actions finished"
)

// Replant stages, used in warnings
const (
	StageClear = "clear"
	StageBag   = "bag"
	StageShop  = "shop"
	StagePick  = "pick"
	StageBuy   = "buy"
)
