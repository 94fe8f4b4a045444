package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/nerrad567/device-timeline/internal/api"
	"github.com/nerrad567/device-timeline/internal/audit"
	"github.com/nerrad567/device-timeline/internal/device"
	"github.com/nerrad567/device-timeline/internal/export"
	"github.com/nerrad567/device-timeline/internal/infrastructure/config"
	"github.com/nerrad567/device-timeline/internal/infrastructure/database"
	"github.com/nerrad567/device-timeline/internal/infrastructure/influxdb"
	"github.com/nerrad567/device-timeline/internal/infrastructure/logging"
	"github.com/nerrad567/device-timeline/internal/infrastructure/metrics"
	"github.com/nerrad567/device-timeline/internal/infrastructure/mqtt"
	"github.com/nerrad567/device-timeline/internal/lookup"
	"github.com/nerrad567/device-timeline/internal/timeline"
)

// app holds the wired components shared by every subcommand.
type app struct {
	cfg      *config.Config
	log      *logging.Logger
	db       *database.DB
	audit    *audit.SQLiteRepository
	registry *device.Registry
	lookup   *lookup.Client
	renderer *export.Renderer
	hub      *api.Hub
	metrics  *metrics.Metrics
	mqtt     *mqtt.Client
	influx   *influxdb.Client

	closers []func()
}

// newApp opens storage, loads the collection and connects the optional
// integrations. MQTT and InfluxDB failures are logged and the integration
// is left off; a database failure is fatal.
func newApp(ctx context.Context, cfg *config.Config, log *logging.Logger) (*app, error) {
	a := &app{cfg: cfg, log: log}

	db, err := database.Open(ctx, database.Config{
		Path:        cfg.Database.Path,
		WALMode:     cfg.Database.WALMode,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	a.db = db
	a.onClose(func() {
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	})
	log.Info("database connected", "path", cfg.Database.Path)

	if err := db.Migrate(ctx); err != nil {
		a.close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	a.audit = audit.NewSQLiteRepository(db.DB)

	if cfg.Metrics.Enabled {
		a.metrics = metrics.New()
	}
	a.connectMQTT()
	a.connectInflux()

	repo := device.NewSQLiteRepository(db.DB)
	repo.SetLogger(log)
	a.registry = device.NewRegistry(repo)
	a.registry.SetLogger(log)
	if err := a.registry.Load(ctx); err != nil {
		a.close()
		return nil, fmt.Errorf("loading device collection: %w", err)
	}
	log.Info("device collection loaded", "devices", a.registry.Count())

	a.hub = api.NewHub(cfg.WebSocket, log)
	a.registry.SetNotifier(a.notifier())
	if a.metrics != nil {
		a.metrics.SetCollectionSize(a.registry.Count())
	}

	a.lookup = lookup.New(lookup.Config{
		Endpoint:            cfg.Lookup.Endpoint,
		Timeout:             cfg.GetLookupTimeout(),
		ResultLimit:         cfg.Lookup.ResultLimit,
		AdditionalImages:    cfg.Lookup.AdditionalImages,
		MaxAdditionalImages: cfg.Lookup.MaxAdditionalImages,
		UserAgent:           cfg.Lookup.UserAgent,
	})
	a.lookup.SetLogger(log)
	if a.metrics != nil {
		a.lookup.SetObserver(a.metrics)
	}

	opts, err := rendererOptions(cfg.Export)
	if err != nil {
		a.close()
		return nil, err
	}
	a.renderer = export.NewRenderer(opts, export.NewHTTPImageLoader(cfg.GetImageTimeout(), cfg.Lookup.UserAgent))
	a.renderer.SetLogger(log)
	a.renderer.SetRecorder(a.recorder())

	return a, nil
}

// withApp runs fn against a freshly wired app and closes it afterwards.
func withApp(ctx context.Context, cfg *config.Config, log *logging.Logger, fn func(*app) error) error {
	a, err := newApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.close()
	return fn(a)
}

func (a *app) onClose(fn func()) {
	a.closers = append(a.closers, fn)
}

// close releases resources in reverse order of acquisition.
func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

func (a *app) connectMQTT() {
	client, err := mqtt.Connect(a.cfg.MQTT)
	switch {
	case errors.Is(err, mqtt.ErrDisabled):
		a.log.Info("MQTT disabled")
		return
	case err != nil:
		a.log.Warn("MQTT unavailable, change events will not be published", "error", err)
		return
	}
	client.SetLogger(a.log)
	a.mqtt = client
	a.onClose(func() {
		a.log.Info("disconnecting from MQTT")
		if closeErr := client.Close(); closeErr != nil {
			a.log.Error("error closing MQTT", "error", closeErr)
		}
	})
	a.log.Info("MQTT connected",
		"broker", fmt.Sprintf("%s:%d", a.cfg.MQTT.Broker.Host, a.cfg.MQTT.Broker.Port),
		"client_id", a.cfg.MQTT.Broker.ClientID,
	)
}

func (a *app) connectInflux() {
	client, err := influxdb.Connect(a.cfg.InfluxDB)
	switch {
	case errors.Is(err, influxdb.ErrDisabled):
		a.log.Info("InfluxDB disabled")
		return
	case err != nil:
		a.log.Warn("InfluxDB unavailable, export telemetry will not be written", "error", err)
		return
	}
	client.SetOnError(func(err error) {
		a.log.Error("InfluxDB write error", "error", err)
	})
	a.influx = client
	a.onClose(func() {
		a.log.Info("closing InfluxDB connection")
		if closeErr := client.Close(); closeErr != nil {
			a.log.Error("error closing InfluxDB", "error", closeErr)
		}
	})
	a.log.Info("InfluxDB connected", "url", a.cfg.InfluxDB.URL, "bucket", a.cfg.InfluxDB.Bucket)
}

// notifier fans registry changes out to every enabled sink.
// Nil clients are left out so no interface holds a nil pointer.
func (a *app) notifier() device.Notifier {
	recorder := audit.NewRecorder(a.audit)
	recorder.SetLogger(a.log)

	sinks := []device.Notifier{a.hub, recorder}
	if a.metrics != nil {
		sinks = append(sinks, a.metrics)
	}
	if a.influx != nil {
		sinks = append(sinks, a.influx)
	}
	if a.mqtt != nil {
		sinks = append(sinks, &mqttPublisher{client: a.mqtt, log: a.log})
	}
	return device.NotifierFunc(func(ctx context.Context, ev device.ChangeEvent) {
		for _, s := range sinks {
			s.CollectionChanged(ctx, ev)
		}
	})
}

func (a *app) recorder() export.Recorder {
	var rs []export.Recorder
	if a.metrics != nil {
		rs = append(rs, a.metrics)
	}
	if a.influx != nil {
		rs = append(rs, a.influx)
	}
	if a.mqtt != nil {
		rs = append(rs, &mqttPublisher{client: a.mqtt, log: a.log})
	}
	return export.Recorders(rs...)
}

// rendererOptions maps the export section onto renderer options.
func rendererOptions(cfg config.ExportConfig) (export.Options, error) {
	opts := export.DefaultOptions()
	orders := []struct {
		key   string
		value string
		dst   *timeline.Direction
	}{
		{"text_order", cfg.TextOrder, &opts.TextOrder},
		{"image_order", cfg.ImageOrder, &opts.ImageOrder},
		{"document_order", cfg.DocumentOrder, &opts.DocumentOrder},
		{"spreadsheet_order", cfg.SpreadsheetOrder, &opts.SpreadsheetOrder},
	}
	for _, o := range orders {
		dir, ok := timeline.ParseDirection(o.value)
		if !ok {
			return export.Options{}, fmt.Errorf("export.%s: unknown order %q", o.key, o.value)
		}
		*o.dst = dir
	}
	if cfg.ImageConcurrency > 0 {
		opts.ImageConcurrency = cfg.ImageConcurrency
	}
	opts.QRCodes = cfg.QRCodes
	return opts, nil
}

// healthCheck verifies all enabled connections are healthy.
func (a *app) healthCheck(ctx context.Context) error {
	if err := a.db.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if a.mqtt != nil {
		if err := a.mqtt.HealthCheck(ctx); err != nil {
			return fmt.Errorf("mqtt: %w", err)
		}
	}
	if a.influx != nil {
		if err := a.influx.HealthCheck(ctx); err != nil {
			return fmt.Errorf("influxdb: %w", err)
		}
	}
	return nil
}
