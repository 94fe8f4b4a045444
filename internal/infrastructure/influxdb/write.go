package influxdb

import (
	"context"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/nerrad567/device-timeline/internal/device"
	"github.com/nerrad567/device-timeline/internal/export"
)

// Measurement names.
const (
	measurementExportRuns        = "export_runs"
	measurementCollectionChanges = "collection_changes"
)

// ObserveExport writes one export_runs point. It implements export.Recorder.
//
// Fields:
//   - devices: collection size at render time
//   - duration_ms: render wall time
func (c *Client) ObserveExport(format export.Format, devices int, elapsed time.Duration, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}

	c.WritePoint(measurementExportRuns,
		map[string]string{
			"format": string(format),
			"result": result,
		},
		map[string]interface{}{
			"devices":     devices,
			"duration_ms": elapsed.Milliseconds(),
		},
	)
}

// CollectionChanged writes one collection_changes point. It implements
// device.Notifier.
func (c *Client) CollectionChanged(_ context.Context, ev device.ChangeEvent) {
	c.WritePoint(measurementCollectionChanges,
		map[string]string{"action": string(ev.Action)},
		map[string]interface{}{"count": ev.Count},
	)
}

// WritePoint writes a custom point stamped with the current time.
// It is a no-op when the client is closed.
//
// Parameters:
//   - measurement: The measurement name (table)
//   - tags: Key-value pairs for indexing (low cardinality)
//   - fields: Key-value pairs for the actual data
func (c *Client) WritePoint(measurement string, tags map[string]string, fields map[string]interface{}) {
	if !c.IsConnected() {
		return
	}

	c.writeAPI.WritePoint(write.NewPoint(measurement, tags, fields, c.now()))
}
