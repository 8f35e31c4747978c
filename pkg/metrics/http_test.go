package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func TestHTTPMetricsExportsCountersAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.ObserveRequest("GET", "/api/v1/customers", 200, 120*time.Millisecond)
	m.ObserveRequest("GET", "/api/v1/customers", 200, 80*time.Millisecond)
	m.ObserveRequest("POST", "", 500, 10*time.Millisecond)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	var sawRequests, sawDuration bool
	for _, mf := range mfs {
		switch mf.GetName() {
		case "http_requests_total":
			sawRequests = true
			for _, metric := range mf.GetMetric() {
				for _, label := range metric.GetLabel() {
					if label.GetName() == "route" && label.GetValue() == "/api/v1/customers" {
						if got := metric.GetCounter().GetValue(); got != 2 {
							t.Fatalf("expected 2 customer requests, got %f", got)
						}
					}
					if label.GetName() == "route" && label.GetValue() == "unknown" {
						if got := metric.GetCounter().GetValue(); got != 1 {
							t.Fatalf("expected 1 unknown-route request, got %f", got)
						}
					}
				}
			}
		case "http_request_duration_seconds":
			sawDuration = true
		}
	}
	if !sawRequests || !sawDuration {
		t.Fatalf("missing metric families: requests=%v duration=%v", sawRequests, sawDuration)
	}
}

func TestHTTPMetricsNilRegistererIsNoop(t *testing.T) {
	var m *HTTPMetrics
	m.ObserveRequest("GET", "/", 200, time.Millisecond)

	m = NewHTTPMetrics(nil)
	m.ObserveRequest("GET", "/", 200, time.Millisecond)
}
