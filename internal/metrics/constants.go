package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal   = "http_requests_total"
	MetricNameHTTPRequestDuration = "http_request_duration_seconds"
)

// Farm metric names
const (
	MetricNameFarmCycles        = "farm_cycles_total"
	MetricNameFarmCycleDuration = "farm_cycle_duration_seconds"
	MetricNameRemoteOps         = "farm_remote_ops_total"
	MetricNamePlotsByCategory   = "farm_plots"
	MetricNameOperationLimit    = "farm_operation_limit_remaining"
	MetricNamePushNotifications = "farm_push_notifications_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal   = "Total number of admin HTTP requests"
	HelpTextHTTPRequestDuration = "Admin HTTP request latency in seconds"
)

// Farm metric help text
const (
	HelpTextFarmCycles        = "Farm cycles by mode (full, projected, skipped, failed)"
	HelpTextFarmCycleDuration = "Duration of full farm cycles in seconds"
	HelpTextRemoteOps         = "Remote farm operations by kind and result"
	HelpTextPlotsByCategory   = "Plots per category in the latest snapshot"
	HelpTextOperationLimit    = "Remaining daily operations reported by the server"
	HelpTextPushNotifications = "Push notifications by type and whether they triggered a check"
)

// ============================================================================
// Metric Label Names
// ============================================================================

const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelType      = "type"
	LabelMode      = "mode"
	LabelKind      = "kind"
	LabelResult    = "result"
	LabelCategory  = "category"
	LabelOperation = "operation"
)

// Label values
const (
	ModeFull      = "full"
	ModeProjected = "projected"
	ModeSkipped   = "skipped"
	ModeFailed    = "failed"

	ResultOK       = "ok"
	ResultError    = "error"
	ResultAccepted = "accepted"
	ResultDropped  = "debounced"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets range from 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// CycleLatencyBuckets range from 50ms to 2m
var CycleLatencyBuckets = []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120}
