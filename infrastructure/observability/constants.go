package observability

// Metric namespace
const (
	MetricNamespace = "bolao"
)

// Label keys
const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelEventType = "event_type"
	LabelResult    = "result"
	LabelOperation = "operation"
)

// Label values for the result label
const (
	ResultSuccess = "success"
	ResultPartial = "partial"
	ResultError   = "error"
)
