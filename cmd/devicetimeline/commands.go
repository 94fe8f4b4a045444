package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/nerrad567/device-timeline/internal/api"
	"github.com/nerrad567/device-timeline/internal/device"
	"github.com/nerrad567/device-timeline/internal/export"
	"github.com/nerrad567/device-timeline/internal/infrastructure/config"
	"github.com/nerrad567/device-timeline/internal/infrastructure/logging"
	"github.com/nerrad567/device-timeline/internal/panel"
)

// outputPermissions is the permission mode for exported files.
const outputPermissions = 0600

// serve runs the HTTP API until ctx is cancelled.
func serve(ctx context.Context, cfg *config.Config, log *logging.Logger) error {
	a, err := newApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.close()

	if cfg.App.SampleData && a.registry.Count() == 0 {
		if _, err := a.registry.Import(ctx, device.SampleDevices()); err != nil {
			return fmt.Errorf("seeding sample devices: %w", err)
		}
		log.Info("sample devices seeded", "devices", a.registry.Count())
	}

	if err := a.healthCheck(ctx); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	log.Info("all health checks passed")

	ui, err := panel.Handler(cfg.App.UIDir)
	if err != nil {
		return err
	}

	srv, err := api.New(api.Deps{
		Config:      cfg.API,
		WS:          cfg.WebSocket,
		Logger:      log,
		Registry:    a.registry,
		Lookup:      a.lookup,
		Renderer:    a.renderer,
		DB:          a.db,
		MQTT:        a.mqtt,
		Metrics:     a.metrics,
		MetricsPath: cfg.Metrics.Path,
		Hub:         a.hub,
		UI:          ui,
		Audit:       a.audit,
		Version:     version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("starting API server: %w", err)
	}
	defer func() {
		log.Info("stopping API server")
		if closeErr := srv.Close(); closeErr != nil {
			log.Error("error stopping API server", "error", closeErr)
		}
	}()

	log.Info("initialisation complete, waiting for shutdown signal")
	<-ctx.Done()
	log.Info("shutdown signal received, cleaning up")
	return nil
}

// seed loads the sample collection into an empty store.
func (a *app) seed(ctx context.Context, out io.Writer) error {
	if n := a.registry.Count(); n > 0 {
		fmt.Fprintf(out, "collection already has %d devices, nothing seeded\n", n)
		return nil
	}
	snapshot, err := a.registry.Import(ctx, device.SampleDevices())
	if err != nil {
		return fmt.Errorf("seeding sample devices: %w", err)
	}
	fmt.Fprintf(out, "seeded sample devices, collection now has %d\n", len(snapshot))
	return nil
}

// importFile appends the devices in a JSON export file.
// An invalid file leaves the collection unchanged.
func (a *app) importFile(ctx context.Context, path string, out io.Writer) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading import file: %w", err)
	}
	devices, err := device.ParseImport(data)
	if err != nil {
		return err
	}
	snapshot, err := a.registry.Import(ctx, devices)
	if err != nil {
		return fmt.Errorf("importing devices: %w", err)
	}
	fmt.Fprintf(out, "imported %d devices, collection now has %d\n", len(devices), len(snapshot))
	return nil
}

// exportFile renders the collection in format and writes it to path.
func (a *app) exportFile(ctx context.Context, format, path string, out io.Writer) error {
	devices := a.registry.List()

	var (
		body []byte
		err  error
	)
	switch export.Format(format) {
	case export.FormatJSON:
		start := time.Now()
		body, err = device.ExportJSON(devices)
		a.renderer.Observe(export.FormatJSON, len(devices), start, err)
	case export.FormatText:
		body = []byte(a.renderer.RenderText(devices))
	case export.FormatImage:
		body, err = a.renderer.RenderImage(ctx, devices)
	case export.FormatDocument:
		body, err = a.renderer.RenderDocument(ctx, devices, func(percent float64) {
			a.log.Debug("document export progress", "percent", percent)
		})
	case export.FormatSpreadsheet:
		body, err = a.renderer.RenderSpreadsheet(devices)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
	if err != nil {
		return fmt.Errorf("exporting %s: %w", format, err)
	}

	if err := os.WriteFile(path, body, outputPermissions); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	fmt.Fprintf(out, "exported %d devices as %s to %s\n", len(devices), format, path)
	return nil
}

// reset empties the collection and its persisted copy.
func (a *app) reset(ctx context.Context, out io.Writer) error {
	if err := a.registry.Reset(ctx); err != nil {
		return fmt.Errorf("resetting collection: %w", err)
	}
	fmt.Fprintln(out, "collection reset")
	return nil
}
