package telemetry

import (
	"net/http/httptest"
	"strings"
	"testing"
)

func TestMetricsHandlerServesCounters(t *testing.T) {
	m := NewMetrics()
	m.PacketsIngested.Add(5)
	m.PacketsSampled.Add(2)

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, req)

	body := rec.Body.String()
	if !strings.Contains(body, "magnifier_packets_ingested_total 5") {
		t.Errorf("expected ingested counter in output, got:\n%s", body)
	}
	if !strings.Contains(body, "magnifier_packets_sampled_total 2") {
		t.Errorf("expected sampled counter in output, got:\n%s", body)
	}
}

func TestNewMetricsRegistersDistinctCollectorsPerInstance(t *testing.T) {
	a := NewMetrics()
	b := NewMetrics()
	a.PacketsIngested.Add(1)

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	b.Handler().ServeHTTP(rec, req)

	if strings.Contains(rec.Body.String(), "magnifier_packets_ingested_total 1") {
		t.Error("second Metrics instance should not observe the first's counts")
	}
}
