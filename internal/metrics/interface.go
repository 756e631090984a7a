package metrics

import "time"

// Recorder is the interface for metrics collection.
// Implementations include the Prometheus-backed collector and the no-op recorder.
type Recorder interface {
	RecordRequest(method, route string, status int, duration time.Duration)
	RecordOperation(operation, status string)
}
