package yield

// SecondsPerHour converts per-second rates to hourly
const SecondsPerHour = 3600.0

// Cache sizes. One entry means a new key evicts the previous one.
const (
	CandidateCacheSize = 1
	BestSeedCacheSize  = 1
)

// Display formats for the best-seed line
const (
	LineFmt        = "Best seed Lv%d / %d plots: %s | fertilized: %s"
	LinePickFmt    = "%s %.0f exp/h"
	LineNoneMarker = "none"
)

// Log messages
const (
	LogMsgSeedPlantMissing = "Seed has no plant entry, skipping"
	LogMsgCandidatesBuilt  = "Seed candidates rebuilt"
)
