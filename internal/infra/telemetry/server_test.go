package telemetry

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/prometheus/common/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func mustListen(t *testing.T) net.Listener {
	t.Helper()
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	return listener
}

func waitForHTTPStatus(t *testing.T, url string, want int) *http.Response {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		resp, err := http.Get(url)
		if err == nil {
			if resp.StatusCode == want {
				return resp
			}
			resp.Body.Close()
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("endpoint %s never returned %d", url, want)
	return nil
}

func TestStartHTTPServer_MetricsScrape(t *testing.T) {
	listener := mustListen(t)
	port := listener.Addr().(*net.TCPAddr).Port
	listener.Close()

	registry := prometheus.NewRegistry()
	m := NewPrometheusMetrics(registry)
	m.SetCatalogSize(29)
	m.ObserveListing(2*time.Millisecond, 12, nil)

	ctx, cancel := context.WithCancel(context.Background())
	errChan := make(chan error, 1)
	go func() {
		errChan <- StartHTTPServer(ctx, HTTPServerOptions{
			Addr:          fmt.Sprintf("127.0.0.1:%d", port),
			EnableMetrics: true,
			Registry:      registry,
		}, zap.NewNop())
	}()

	resp := waitForHTTPStatus(t, fmt.Sprintf("http://127.0.0.1:%d/metrics", port), http.StatusOK)
	defer resp.Body.Close()

	parser := expfmt.NewTextParser(model.LegacyValidation)
	families, err := parser.TextToMetricFamilies(resp.Body)
	require.NoError(t, err)
	require.Contains(t, families, "hexad_catalog_size")
	assert.Equal(t, 29.0, families["hexad_catalog_size"].GetMetric()[0].GetGauge().GetValue())
	require.Contains(t, families, "hexad_listing_duration_seconds")

	cancel()
	select {
	case err := <-errChan:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not stop in time")
	}
}

func TestStartHTTPServer_Healthz(t *testing.T) {
	listener := mustListen(t)
	port := listener.Addr().(*net.TCPAddr).Port
	listener.Close()

	tracker := NewHealthTracker()
	beat := tracker.Register("catalog-watch", 200*time.Millisecond)
	beat()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errChan := make(chan error, 1)
	go func() {
		errChan <- StartHTTPServer(ctx, HTTPServerOptions{
			Addr:          fmt.Sprintf("127.0.0.1:%d", port),
			EnableHealthz: true,
			Health:        tracker,
		}, zap.NewNop())
	}()

	url := fmt.Sprintf("http://127.0.0.1:%d/healthz", port)
	resp := waitForHTTPStatus(t, url, http.StatusOK)
	var report HealthReport
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	resp.Body.Close()
	assert.Equal(t, "ok", report.Status)
	assert.Equal(t, "ok", report.Components["catalog-watch"].Status)

	// Stop heartbeating and wait for the staleness window to lapse.
	time.Sleep(300 * time.Millisecond)
	resp = waitForHTTPStatus(t, url, http.StatusServiceUnavailable)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	resp.Body.Close()
	assert.Equal(t, "degraded", report.Status)
	assert.Equal(t, "stale", report.Components["catalog-watch"].Status)
}

func TestStartHTTPServer_HealthzWithoutTracker(t *testing.T) {
	listener := mustListen(t)
	port := listener.Addr().(*net.TCPAddr).Port
	listener.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errChan := make(chan error, 1)
	go func() {
		errChan <- StartHTTPServer(ctx, HTTPServerOptions{
			Addr:          fmt.Sprintf("127.0.0.1:%d", port),
			EnableHealthz: true,
		}, zap.NewNop())
	}()

	url := fmt.Sprintf("http://127.0.0.1:%d/healthz", port)
	resp := waitForHTTPStatus(t, url, http.StatusOK)
	var report HealthReport
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	resp.Body.Close()
	assert.Equal(t, "ok", report.Status)
	assert.Empty(t, report.Components)
}

func TestStartHTTPServer_DisabledIsNoop(t *testing.T) {
	err := StartHTTPServer(context.Background(), HTTPServerOptions{}, zap.NewNop())
	assert.NoError(t, err)
}

func TestHealthTrackerReport(t *testing.T) {
	var nilTracker *HealthTracker
	assert.Equal(t, "ok", nilTracker.Report().Status)

	tracker := NewHealthTracker()
	assert.Equal(t, "ok", tracker.Report().Status)

	beat := tracker.Register("loop", time.Hour)
	beat()
	report := tracker.Report()
	assert.Equal(t, "ok", report.Status)
	require.Contains(t, report.Components, "loop")
	assert.NotEmpty(t, report.Components["loop"].LastBeat)
}
