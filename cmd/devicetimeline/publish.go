package main

import (
	"context"
	"time"

	"github.com/nerrad567/device-timeline/internal/device"
	"github.com/nerrad567/device-timeline/internal/export"
	"github.com/nerrad567/device-timeline/internal/infrastructure/logging"
	"github.com/nerrad567/device-timeline/internal/infrastructure/mqtt"
)

// jsonPublisher is the subset of mqtt.Client used for event publication.
type jsonPublisher interface {
	PublishJSON(topic string, v any) error
	Topics() mqtt.Topics
}

// mqttPublisher mirrors collection changes and finished exports onto the
// broker. Publish failures are logged and never reach the caller.
type mqttPublisher struct {
	client jsonPublisher
	log    *logging.Logger
}

// exportCompleted is the payload published on the export topic.
type exportCompleted struct {
	Format     export.Format `json:"format"`
	Devices    int           `json:"devices"`
	DurationMS int64         `json:"duration_ms"`
	Error      string        `json:"error,omitempty"`
}

// CollectionChanged implements device.Notifier.
func (p *mqttPublisher) CollectionChanged(_ context.Context, ev device.ChangeEvent) {
	if err := p.client.PublishJSON(p.client.Topics().CollectionChanged(), ev); err != nil {
		p.log.Warn("publishing collection change failed", "action", string(ev.Action), "error", err)
	}
}

// ObserveExport implements export.Recorder.
func (p *mqttPublisher) ObserveExport(format export.Format, devices int, elapsed time.Duration, err error) {
	msg := exportCompleted{Format: format, Devices: devices, DurationMS: elapsed.Milliseconds()}
	if err != nil {
		msg.Error = err.Error()
	}
	if pubErr := p.client.PublishJSON(p.client.Topics().ExportCompleted(), msg); pubErr != nil {
		p.log.Warn("publishing export completion failed", "format", string(format), "error", pubErr)
	}
}
