package metrics

import (
	"strconv"
	"time"

	"github.com/blz111/qq-farm-bot/internal/domain"
)

// RecordRemoteOp counts one remote operation outcome
func RecordRemoteOp(kind string, err error) {
	result := ResultOK
	if err != nil {
		result = ResultError
	}
	RemoteOps.WithLabelValues(kind, result).Inc()
}

// RecordCycle counts a farm cycle by mode
func RecordCycle(mode string) {
	FarmCycles.WithLabelValues(mode).Inc()
}

// ObserveCycleDuration records how long a full cycle took
func ObserveCycleDuration(d time.Duration) {
	FarmCycleDuration.Observe(d.Seconds())
}

// RecordPush counts a push notification and whether it was acted on
func RecordPush(kind domain.NotificationKind, accepted bool) {
	result := ResultAccepted
	if !accepted {
		result = ResultDropped
	}
	PushNotifications.WithLabelValues(string(kind), result).Inc()
}

// SetPlotCounts publishes snapshot category counts
func SetPlotCounts(c domain.CategoryCounts) {
	PlotsByCategory.WithLabelValues(string(domain.CategoryEmpty)).Set(float64(c.Empty))
	PlotsByCategory.WithLabelValues(string(domain.CategoryDead)).Set(float64(c.Dead))
	PlotsByCategory.WithLabelValues(string(domain.CategoryHarvestable)).Set(float64(c.Harvestable))
	PlotsByCategory.WithLabelValues(string(domain.CategoryGrowing)).Set(float64(c.Growing))
	PlotsByCategory.WithLabelValues("need_water").Set(float64(c.NeedWater))
	PlotsByCategory.WithLabelValues("need_weed").Set(float64(c.NeedWeed))
	PlotsByCategory.WithLabelValues("need_bug").Set(float64(c.NeedBug))
}

// LimitObserver publishes daily operation limits as gauges
type LimitObserver struct{}

// NewLimitObserver creates a LimitObserver
func NewLimitObserver() *LimitObserver {
	return &LimitObserver{}
}

// ObserveOperationLimits implements the scheduler's operation limit observer
func (o *LimitObserver) ObserveOperationLimits(limits []domain.OperationLimit) {
	for _, l := range limits {
		OperationLimitRemaining.WithLabelValues(strconv.FormatInt(l.ID, 10)).Set(float64(l.Remaining()))
	}
}
