package metrics

import "time"

// Noop discards everything. Used when METRICS_ENABLED=false and in tests.
type Noop struct{}

func NewNoop() *Noop {
	return &Noop{}
}

func (Noop) RecordRequest(method, route string, status int, duration time.Duration) {}

func (Noop) RecordOperation(operation, status string) {}
