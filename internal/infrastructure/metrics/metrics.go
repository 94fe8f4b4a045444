package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nerrad567/device-timeline/internal/device"
	"github.com/nerrad567/device-timeline/internal/export"
)

const (
	metricPrefix = "devicetimeline_"

	resultSuccess = "success"
	resultError   = "error"
)

// Metrics bundles the service's collectors.
type Metrics struct {
	registry *prometheus.Registry

	exportsTotal  *prometheus.CounterVec
	exportLatency *prometheus.HistogramVec
	exportDevices *prometheus.HistogramVec

	collectionSize prometheus.Gauge
	changesTotal   *prometheus.CounterVec

	lookupsTotal  *prometheus.CounterVec
	lookupLatency prometheus.Histogram
	lookupResults prometheus.Histogram

	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec
}

// New constructs the collectors and registers them, together with the Go
// runtime and process collectors, on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		exportsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "exports_total",
				Help: "Total exports by format and result",
			},
			[]string{"format", "result"},
		),
		exportLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "export_duration_seconds",
				Help:    "Export rendering duration in seconds",
				Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"format"},
		),
		exportDevices: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "export_devices",
				Help:    "Devices included per export",
				Buckets: prometheus.ExponentialBuckets(1, 2, 8),
			},
			[]string{"format"},
		),
		collectionSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: metricPrefix + "collection_devices",
			Help: "Devices currently in the collection",
		}),
		changesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "collection_changes_total",
				Help: "Collection mutations by action",
			},
			[]string{"action"},
		),
		lookupsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "lookups_total",
				Help: "Encyclopedia lookups by result",
			},
			[]string{"result"},
		),
		lookupLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    metricPrefix + "lookup_duration_seconds",
			Help:    "Encyclopedia lookup duration in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		lookupResults: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    metricPrefix + "lookup_results",
			Help:    "Candidates returned per lookup",
			Buckets: prometheus.LinearBuckets(0, 1, 11),
		}),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "http_requests_total",
				Help: "HTTP requests by method, route and status",
			},
			[]string{"method", "route", "status"},
		),
		httpLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.exportsTotal,
		m.exportLatency,
		m.exportDevices,
		m.collectionSize,
		m.changesTotal,
		m.lookupsTotal,
		m.lookupLatency,
		m.lookupResults,
		m.httpRequests,
		m.httpLatency,
	)
	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveExport records one export run. It implements export.Recorder.
func (m *Metrics) ObserveExport(format export.Format, devices int, elapsed time.Duration, err error) {
	f := string(format)
	m.exportsTotal.WithLabelValues(f, result(err)).Inc()
	m.exportLatency.WithLabelValues(f).Observe(elapsed.Seconds())
	if err == nil {
		m.exportDevices.WithLabelValues(f).Observe(float64(devices))
	}
}

// ObserveLookup records one encyclopedia search. It implements lookup.Observer.
func (m *Metrics) ObserveLookup(results int, elapsed time.Duration, err error) {
	m.lookupsTotal.WithLabelValues(result(err)).Inc()
	m.lookupLatency.Observe(elapsed.Seconds())
	if err == nil {
		m.lookupResults.Observe(float64(results))
	}
}

// SetCollectionSize sets the collection gauge, typically after Registry.Load.
func (m *Metrics) SetCollectionSize(n int) {
	m.collectionSize.Set(float64(n))
}

// CollectionChanged implements device.Notifier.
func (m *Metrics) CollectionChanged(_ context.Context, ev device.ChangeEvent) {
	m.changesTotal.WithLabelValues(string(ev.Action)).Inc()
	m.collectionSize.Set(float64(ev.Count))
}

// ObserveHTTP records one served request. route is the chi route pattern,
// not the raw path, to keep label cardinality bounded.
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpLatency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func result(err error) string {
	if err != nil {
		return resultError
	}
	return resultSuccess
}
