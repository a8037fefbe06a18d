package domain

import "time"

// Category is the action class of an unlocked land
type Category string

const (
	CategoryEmpty       Category = "empty"
	CategoryDead        Category = "dead"
	CategoryHarvestable Category = "harvestable"
	CategoryGrowing     Category = "growing"
)

// CategoryCounts is the per-category land count of a snapshot
type CategoryCounts struct {
	Empty       int `json:"empty"`
	Dead        int `json:"dead"`
	Harvestable int `json:"harvestable"`
	Growing     int `json:"growing"`
	NeedWater   int `json:"need_water"`
	NeedWeed    int `json:"need_weed"`
	NeedBug     int `json:"need_bug"`
}

// Actionable reports whether any land needs attention
func (c CategoryCounts) Actionable() bool {
	return c.Empty > 0 || c.Dead > 0 || c.Harvestable > 0 ||
		c.NeedWater > 0 || c.NeedWeed > 0 || c.NeedBug > 0
}

// PlotRecord is the compact per-land record kept in a snapshot. It carries
// enough to regenerate the status projection by extrapolating elapsed time.
type PlotRecord struct {
	LandID         int64    `json:"land_id"`
	Category       Category `json:"category"`
	Name           string   `json:"name,omitempty"`
	TotalGrow      int64    `json:"total_grow"`
	Remaining      int64    `json:"remaining"`
	RemainingKnown bool     `json:"remaining_known"`
	NeedsWater     bool     `json:"needs_water,omitempty"`
	NeedsWeed      bool     `json:"needs_weed,omitempty"`
	NeedsBug       bool     `json:"needs_bug,omitempty"`
}

// FarmSnapshot is a point-in-time summary of the whole farm
type FarmSnapshot struct {
	Counts        CategoryCounts `json:"counts"`
	MinRemaining  *int64         `json:"min_remaining,omitempty"`
	ServerTime    int64          `json:"server_time"`
	UnlockedCount int            `json:"unlocked_count"`
	Plots         []PlotRecord   `json:"plots"`
	TakenAt       time.Time      `json:"taken_at"`
}

// ExtrapolatedMinRemaining advances MinRemaining by the wall time elapsed since
// the snapshot was taken. ok is false when the minimum is unknown.
func (s *FarmSnapshot) ExtrapolatedMinRemaining(now time.Time) (remaining int64, ok bool) {
	if s == nil || s.MinRemaining == nil {
		return 0, false
	}
	elapsed := int64(now.Sub(s.TakenAt) / time.Second)
	if elapsed < 0 {
		elapsed = 0
	}
	return *s.MinRemaining - elapsed, true
}
