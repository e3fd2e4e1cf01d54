package prompush

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"layoffs/internal/metrics"
)

// readCounterValue reads the current value of a Counter for assertions.
func readCounterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()

	m := &dto.Metric{}
	if err := c.Write(m); err != nil {
		t.Fatalf("Counter.Write() error = %v", err)
	}
	if m.GetCounter() == nil {
		t.Fatalf("metric did not contain Counter value")
	}
	return m.GetCounter().GetValue()
}

func TestNewBackend(t *testing.T) {
	t.Parallel()

	if _, err := NewBackend("layoffs", ""); err == nil {
		t.Fatalf("expected error for missing gateway URL")
	}

	b, err := NewBackend("", "http://pushgateway:9091")
	if err != nil {
		t.Fatalf("NewBackend() error = %v", err)
	}
	if b.jobName != "layoffs" {
		t.Fatalf("default jobName = %q, want layoffs", b.jobName)
	}

	b, err = NewBackend("nightly-clean", "http://pushgateway:9091")
	if err != nil {
		t.Fatalf("NewBackend() error = %v", err)
	}
	if b.jobName != "nightly-clean" {
		t.Fatalf("jobName = %q", b.jobName)
	}

	// Label cardinality sanity: these must not panic.
	b.stageCounter.WithLabelValues("normalize", "success").Add(1)
	b.stageDuration.WithLabelValues("load", "failure").Observe(0.5)
	b.recordCounter.WithLabelValues("parsed").Add(1)
	b.batchCounter.Add(1)
}

func TestIncCounterRouting(t *testing.T) {
	t.Parallel()

	b, err := NewBackend("layoffs", "http://example.com")
	if err != nil {
		t.Fatalf("NewBackend() error = %v", err)
	}

	b.IncCounter("layoffs_stage_total", 3, metrics.Labels{"stage": "dedupe", "status": "success"})
	b.IncCounter("layoffs_records_total", 5, metrics.Labels{"kind": "parsed"})
	b.IncCounter("layoffs_batches_total", 2, metrics.Labels{})
	b.IncCounter("unknown_metric", 10, metrics.Labels{"foo": "bar"})

	if got := readCounterValue(t, b.stageCounter.WithLabelValues("dedupe", "success")); got != 3 {
		t.Fatalf("stageCounter value = %v, want 3", got)
	}
	if got := readCounterValue(t, b.recordCounter.WithLabelValues("parsed")); got != 5 {
		t.Fatalf("recordCounter value = %v, want 5", got)
	}
	if got := readCounterValue(t, b.batchCounter); got != 2 {
		t.Fatalf("batchCounter value = %v, want 2", got)
	}
}

// TestIncCounterNilMetrics ensures a zero-value Backend does not panic.
func TestIncCounterNilMetrics(t *testing.T) {
	t.Parallel()

	b := &Backend{}
	b.IncCounter("layoffs_stage_total", 1, metrics.Labels{"stage": "s", "status": "success"})
	b.IncCounter("layoffs_records_total", 1, metrics.Labels{"kind": "parsed"})
	b.IncCounter("layoffs_batches_total", 1, metrics.Labels{})
	b.ObserveHistogram("layoffs_stage_duration_seconds", 1, metrics.Labels{"stage": "s", "status": "success"})
}

// TestFlush verifies Flush pushes the registry to the configured Pushgateway.
func TestFlush(t *testing.T) {
	t.Parallel()

	type pushInfo struct {
		method  string
		bodyLen int
	}
	reqCh := make(chan pushInfo, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		body, _ := io.ReadAll(r.Body)
		reqCh <- pushInfo{method: r.Method, bodyLen: len(body)}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	b, err := NewBackend("layoffs", srv.URL)
	if err != nil {
		t.Fatalf("NewBackend() error = %v", err)
	}
	b.IncCounter("layoffs_stage_total", 1, metrics.Labels{"stage": "parse", "status": "success"})

	if err := b.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	select {
	case got := <-reqCh:
		if got.bodyLen == 0 {
			t.Fatalf("push request body is empty")
		}
	default:
		t.Fatalf("Flush() did not reach the Pushgateway")
	}
}
