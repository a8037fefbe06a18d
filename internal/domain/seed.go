package domain

// SeedCandidate is a purchasable seed evaluated for a given unlocked land count
type SeedCandidate struct {
	SeedID               int64   `json:"seed_id"`
	GoodsID              int64   `json:"goods_id"`
	RequiredLevel        int     `json:"required_level"`
	Price                int64   `json:"price"`
	Unlocked             bool    `json:"unlocked"`
	Name                 string  `json:"name"`
	Exp                  int64   `json:"exp"`
	GrowTime             int64   `json:"grow_time"`
	ExpPerHour           float64 `json:"exp_per_hour"`
	ExpPerHourFertilized float64 `json:"exp_per_hour_fertilized"`
}

// BestSeeds is the optimizer's pick for one (level, lands) pair
type BestSeeds struct {
	Level      int            `json:"level"`
	Lands      int            `json:"lands"`
	Plain      *SeedCandidate `json:"plain,omitempty"`
	Fertilized *SeedCandidate `json:"fertilized,omitempty"`
	Line       string         `json:"line"`
}

// For returns the pick matching the fertilizer preference
func (b *BestSeeds) For(fertilized bool) *SeedCandidate {
	if b == nil {
		return nil
	}
	if fertilized {
		return b.Fertilized
	}
	return b.Plain
}
