package metrics

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/nerrad567/device-timeline/internal/device"
	"github.com/nerrad567/device-timeline/internal/export"
)

// scrape returns the exposition text served by m.
func scrape(t *testing.T, m *Metrics) string {
	t.Helper()

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("scrape: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading scrape: %v", err)
	}
	return string(body)
}

func assertContains(t *testing.T, body string, lines ...string) {
	t.Helper()
	for _, l := range lines {
		if !strings.Contains(body, l) {
			t.Errorf("exposition missing %q", l)
		}
	}
}

func TestObserveExport(t *testing.T) {
	m := New()
	m.ObserveExport(export.FormatImage, 4, 120*time.Millisecond, nil)
	m.ObserveExport(export.FormatImage, 0, time.Millisecond, errors.New("no devices"))
	m.ObserveExport(export.FormatDocument, 4, 2*time.Second, nil)

	assertContains(t, scrape(t, m),
		`devicetimeline_exports_total{format="image",result="success"} 1`,
		`devicetimeline_exports_total{format="image",result="error"} 1`,
		`devicetimeline_exports_total{format="document",result="success"} 1`,
		`devicetimeline_export_duration_seconds_count{format="image"} 2`,
		`devicetimeline_export_devices_count{format="image"} 1`,
	)
}

func TestObserveLookup(t *testing.T) {
	m := New()
	m.ObserveLookup(3, 200*time.Millisecond, nil)
	m.ObserveLookup(0, time.Second, errors.New("timeout"))

	assertContains(t, scrape(t, m),
		`devicetimeline_lookups_total{result="success"} 1`,
		`devicetimeline_lookups_total{result="error"} 1`,
		`devicetimeline_lookup_results_count 1`,
		`devicetimeline_lookup_results_sum 3`,
	)
}

func TestCollectionChanged(t *testing.T) {
	m := New()
	m.SetCollectionSize(2)
	m.CollectionChanged(context.Background(), device.ChangeEvent{Action: device.ActionAdded, DeviceID: "x", Count: 3})
	m.CollectionChanged(context.Background(), device.ChangeEvent{Action: device.ActionDeleted, DeviceID: "x", Count: 2})
	m.CollectionChanged(context.Background(), device.ChangeEvent{Action: device.ActionReset})

	assertContains(t, scrape(t, m),
		`devicetimeline_collection_changes_total{action="added"} 1`,
		`devicetimeline_collection_changes_total{action="deleted"} 1`,
		`devicetimeline_collection_changes_total{action="reset"} 1`,
		"devicetimeline_collection_devices 0",
	)
}

func TestObserveHTTP(t *testing.T) {
	m := New()
	m.ObserveHTTP(http.MethodGet, "/api/v1/devices/{id}", http.StatusOK, time.Millisecond)
	m.ObserveHTTP(http.MethodGet, "", http.StatusNotFound, time.Millisecond)

	assertContains(t, scrape(t, m),
		`devicetimeline_http_requests_total{method="GET",route="/api/v1/devices/{id}",status="200"} 1`,
		`devicetimeline_http_requests_total{method="GET",route="unmatched",status="404"} 1`,
	)
}

func TestNew_IndependentRegistries(t *testing.T) {
	a, b := New(), New()
	a.SetCollectionSize(7)

	assertContains(t, scrape(t, b), "devicetimeline_collection_devices 0")
	assertContains(t, scrape(t, a), "devicetimeline_collection_devices 7", "go_goroutines")
}
