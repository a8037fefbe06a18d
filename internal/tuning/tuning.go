package tuning

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/blz111/qq-farm-bot/internal/domain"
)

// Tuning holds engine constants that may be overridden from a YAML file.
// Zero values in the file keep the defaults.
type Tuning struct {
	Yield     Yield     `yaml:"yield"`
	Scheduler Scheduler `yaml:"scheduler"`
	Executor  Executor  `yaml:"executor"`
}

// Yield configures the optimizer's cycle-time model
type Yield struct {
	PlantRateUnfertilized  float64 `yaml:"plant_rate_unfertilized"`
	PlantRateFertilized    float64 `yaml:"plant_rate_fertilized"`
	FertilizerRatio        float64 `yaml:"fertilizer_ratio"`
	FertilizerFloorSeconds float64 `yaml:"fertilizer_floor_seconds"`
}

// Scheduler configures the refresh decision and push handling
type Scheduler struct {
	ImminentSeconds  int64 `yaml:"imminent_seconds"`
	PushDebounceMs   int   `yaml:"push_debounce_ms"`
	NotifyBufferSize int   `yaml:"notify_buffer_size"`
}

// Executor configures per-plot pacing
type Executor struct {
	PerPlotSpacingMs int `yaml:"per_plot_spacing_ms"`
}

// Default returns the built-in tuning
func Default() Tuning {
	return Tuning{
		Yield: Yield{
			PlantRateUnfertilized:  DefaultPlantRateUnfertilized,
			PlantRateFertilized:    DefaultPlantRateFertilized,
			FertilizerRatio:        DefaultFertilizerRatio,
			FertilizerFloorSeconds: DefaultFertilizerFloorSeconds,
		},
		Scheduler: Scheduler{
			ImminentSeconds:  DefaultImminentSeconds,
			PushDebounceMs:   DefaultPushDebounceMs,
			NotifyBufferSize: DefaultNotifyBufferSize,
		},
		Executor: Executor{
			PerPlotSpacingMs: DefaultPerPlotSpacingMs,
		},
	}
}

// Load reads a tuning file. An empty path returns Default().
func Load(path string) (Tuning, error) {
	t := Default()
	if path == "" {
		return t, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("failed to read tuning file %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse decodes YAML over the defaults and validates the result
func Parse(raw []byte) (Tuning, error) {
	var override Tuning
	if err := yaml.Unmarshal(raw, &override); err != nil {
		return Default(), fmt.Errorf("tuning.yaml: %w", err)
	}
	t := Default().merge(override)
	if err := t.Validate(); err != nil {
		return Default(), err
	}
	return t, nil
}

func (t Tuning) merge(o Tuning) Tuning {
	if o.Yield.PlantRateUnfertilized != 0 {
		t.Yield.PlantRateUnfertilized = o.Yield.PlantRateUnfertilized
	}
	if o.Yield.PlantRateFertilized != 0 {
		t.Yield.PlantRateFertilized = o.Yield.PlantRateFertilized
	}
	if o.Yield.FertilizerRatio != 0 {
		t.Yield.FertilizerRatio = o.Yield.FertilizerRatio
	}
	if o.Yield.FertilizerFloorSeconds != 0 {
		t.Yield.FertilizerFloorSeconds = o.Yield.FertilizerFloorSeconds
	}
	if o.Scheduler.ImminentSeconds != 0 {
		t.Scheduler.ImminentSeconds = o.Scheduler.ImminentSeconds
	}
	if o.Scheduler.PushDebounceMs != 0 {
		t.Scheduler.PushDebounceMs = o.Scheduler.PushDebounceMs
	}
	if o.Scheduler.NotifyBufferSize != 0 {
		t.Scheduler.NotifyBufferSize = o.Scheduler.NotifyBufferSize
	}
	if o.Executor.PerPlotSpacingMs != 0 {
		t.Executor.PerPlotSpacingMs = o.Executor.PerPlotSpacingMs
	}
	return t
}

// Validate rejects values the engine cannot work with
func (t Tuning) Validate() error {
	switch {
	case t.Yield.PlantRateUnfertilized <= 0, t.Yield.PlantRateFertilized <= 0:
		return fmt.Errorf("%w: plant rates must be positive", domain.ErrInvalidConfig)
	case t.Yield.FertilizerRatio < 0 || t.Yield.FertilizerRatio > 1:
		return fmt.Errorf("%w: fertilizer_ratio must be within [0,1]", domain.ErrInvalidConfig)
	case t.Yield.FertilizerFloorSeconds < 0:
		return fmt.Errorf("%w: fertilizer_floor_seconds must not be negative", domain.ErrInvalidConfig)
	case t.Scheduler.ImminentSeconds < 0, t.Scheduler.PushDebounceMs < 0, t.Executor.PerPlotSpacingMs < 0:
		return fmt.Errorf("%w: durations must not be negative", domain.ErrInvalidConfig)
	case t.Scheduler.NotifyBufferSize < 0:
		return fmt.Errorf("%w: notify_buffer_size must not be negative", domain.ErrInvalidConfig)
	}
	return nil
}

// PushDebounce returns the push debounce window
func (s Scheduler) PushDebounce() time.Duration {
	return time.Duration(s.PushDebounceMs) * time.Millisecond
}

// PerPlotSpacing returns the minimum gap between per-plot calls
func (e Executor) PerPlotSpacing() time.Duration {
	return time.Duration(e.PerPlotSpacingMs) * time.Millisecond
}
