package tuning

// Engine defaults
const (
	DefaultPlantRateUnfertilized  = 9.0
	DefaultPlantRateFertilized    = 6.0
	DefaultFertilizerRatio        = 0.2
	DefaultFertilizerFloorSeconds = 30.0

	DefaultImminentSeconds  int64 = 2
	DefaultPushDebounceMs         = 500
	DefaultNotifyBufferSize       = 64

	DefaultPerPlotSpacingMs = 50
)
