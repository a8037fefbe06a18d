package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)
)

// Farm Metrics
var (
	FarmCycles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameFarmCycles,
			Help: HelpTextFarmCycles,
		},
		[]string{LabelMode},
	)

	FarmCycleDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameFarmCycleDuration,
			Help:    HelpTextFarmCycleDuration,
			Buckets: CycleLatencyBuckets,
		},
	)

	RemoteOps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRemoteOps,
			Help: HelpTextRemoteOps,
		},
		[]string{LabelKind, LabelResult},
	)

	PlotsByCategory = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: MetricNamePlotsByCategory,
			Help: HelpTextPlotsByCategory,
		},
		[]string{LabelCategory},
	)

	OperationLimitRemaining = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: MetricNameOperationLimit,
			Help: HelpTextOperationLimit,
		},
		[]string{LabelOperation},
	)

	PushNotifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePushNotifications,
			Help: HelpTextPushNotifications,
		},
		[]string{LabelType, LabelResult},
	)
)
