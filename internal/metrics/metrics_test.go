package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_RecordOperation(t *testing.T) {
	collector := NewCollector()

	collector.RecordOperation("create_goal", "success")
	collector.RecordOperation("create_goal", "success")
	collector.RecordOperation("create_goal", "invalid")
	collector.RecordOperation("toggle_goal", "not_found")

	assert.Equal(t, 3, testutil.CollectAndCount(collector.operationsTotal))
	assert.Equal(t, 2.0, testutil.ToFloat64(collector.operationsTotal.WithLabelValues("create_goal", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.operationsTotal.WithLabelValues("create_goal", "invalid")))
}

func TestCollector_RecordRequest(t *testing.T) {
	collector := NewCollector()

	collector.RecordRequest("GET", "/goals", 200, 12*time.Millisecond)
	collector.RecordRequest("GET", "/goals", 200, 30*time.Millisecond)
	collector.RecordRequest("POST", "/add", 303, 5*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(collector.requestsTotal.WithLabelValues("GET", "/goals", "200")))
	assert.Equal(t, 2, testutil.CollectAndCount(collector.requestDuration))
}

func TestCollector_Handler(t *testing.T) {
	collector := NewCollector()
	collector.RecordOperation("delete_goal", "success")

	rec := httptest.NewRecorder()
	collector.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `smartgoals_operations_total{operation="delete_goal",status="success"} 1`)
}

func TestNoop_SatisfiesRecorder(t *testing.T) {
	var r Recorder = NewNoop()
	r.RecordOperation("create_goal", "success")
	r.RecordRequest("GET", "/", 200, time.Millisecond)

	var _ Recorder = NewCollector()
}
