package api

import (
	"net/http"
	"runtime"
	"time"

	"github.com/nerrad567/device-timeline/internal/timeline"
)

// bytesPerMB converts runtime byte counters to megabytes.
const bytesPerMB = 1024 * 1024

// SystemMetrics represents the complete system metrics response.
type SystemMetrics struct {
	Timestamp     string           `json:"timestamp"`
	Version       string           `json:"version"`
	UptimeSeconds int64            `json:"uptime_seconds"`
	Runtime       RuntimeMetrics   `json:"runtime"`
	WebSocket     WSMetrics        `json:"websocket"`
	MQTT          MQTTMetrics      `json:"mqtt"`
	Devices       DeviceMetrics    `json:"devices"`
	Database      *DatabaseMetrics `json:"database,omitempty"`
	Prometheus    bool             `json:"prometheus"`
}

// RuntimeMetrics contains Go runtime statistics.
type RuntimeMetrics struct {
	Goroutines    int     `json:"goroutines"`
	MemoryAllocMB float64 `json:"memory_alloc_mb"`
	MemoryTotalMB float64 `json:"memory_total_mb"`
	NumGC         uint32  `json:"num_gc"`
}

// WSMetrics contains WebSocket hub statistics.
type WSMetrics struct {
	ConnectedClients int `json:"connected_clients"`
}

// MQTTMetrics contains MQTT client statistics.
type MQTTMetrics struct {
	Enabled   bool `json:"enabled"`
	Connected bool `json:"connected"`
}

// DeviceMetrics summarizes the collection.
type DeviceMetrics struct {
	Total      int            `json:"total"`
	InUse      int            `json:"in_use"`
	FirstYear  int            `json:"first_year,omitempty"`
	LatestYear int            `json:"latest_year,omitempty"`
	ByCategory map[string]int `json:"by_category"`
}

// DatabaseMetrics contains database connection pool statistics.
type DatabaseMetrics struct {
	OpenConnections int   `json:"open_connections"`
	InUse           int   `json:"in_use"`
	Idle            int   `json:"idle"`
	WaitCount       int64 `json:"wait_count"`
}

// handleMetrics returns system metrics as JSON. Prometheus scrapes /metrics
// at the root instead.
func (s *Server) handleMetrics(w http.ResponseWriter, _ *http.Request) {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	resp := SystemMetrics{
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		Version:       s.version,
		UptimeSeconds: int64(time.Since(s.startTime).Seconds()),
		Runtime: RuntimeMetrics{
			Goroutines:    runtime.NumGoroutine(),
			MemoryAllocMB: float64(memStats.Alloc) / bytesPerMB,
			MemoryTotalMB: float64(memStats.TotalAlloc) / bytesPerMB,
			NumGC:         memStats.NumGC,
		},
		WebSocket: WSMetrics{
			ConnectedClients: s.hub.ClientCount(),
		},
		Prometheus: s.metrics != nil,
	}

	if s.mqtt != nil {
		resp.MQTT = MQTTMetrics{Enabled: true, Connected: s.mqtt.IsConnected()}
	}

	stats := timeline.Summary(s.registry.List())
	resp.Devices = DeviceMetrics{
		Total:      stats.Total,
		InUse:      stats.InUse,
		FirstYear:  stats.FirstYear,
		LatestYear: stats.LatestYear,
		ByCategory: make(map[string]int, len(stats.ByCategory)),
	}
	for c, n := range stats.ByCategory {
		resp.Devices.ByCategory[string(c)] = n
	}

	if s.db != nil {
		dbStats := s.db.Stats()
		resp.Database = &DatabaseMetrics{
			OpenConnections: dbStats.OpenConnections,
			InUse:           dbStats.InUse,
			Idle:            dbStats.Idle,
			WaitCount:       dbStats.WaitCount,
		}
	}

	writeJSON(w, http.StatusOK, resp)
}
