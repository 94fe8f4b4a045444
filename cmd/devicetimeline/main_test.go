package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nerrad567/device-timeline/internal/audit"
	"github.com/nerrad567/device-timeline/internal/device"
	"github.com/nerrad567/device-timeline/internal/export"
	"github.com/nerrad567/device-timeline/internal/infrastructure/config"
	"github.com/nerrad567/device-timeline/internal/infrastructure/logging"
	"github.com/nerrad567/device-timeline/internal/infrastructure/mqtt"
	"github.com/nerrad567/device-timeline/internal/timeline"
)

// writeConfig writes a config pointing at a temp database and sets
// DEVICETIMELINE_CONFIG to it.
func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := fmt.Sprintf(`
database:
  path: %q
  wal_mode: true
  busy_timeout: 5
logging:
  level: error
  format: text
export:
  text_order: descending
`, filepath.Join(dir, "timeline.db"))
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	t.Setenv("DEVICETIMELINE_CONFIG", path)
	return path
}

func newTestApp(t *testing.T) *app {
	t.Helper()
	cfg, err := config.Load(writeConfig(t))
	if err != nil {
		t.Fatalf("config.Load() error = %v", err)
	}
	a, err := newApp(context.Background(), cfg, logging.Discard())
	if err != nil {
		t.Fatalf("newApp() error = %v", err)
	}
	t.Cleanup(a.close)
	return a
}

func TestRun_InvalidConfig(t *testing.T) {
	t.Setenv("DEVICETIMELINE_CONFIG", "/nonexistent/path/config.yaml")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := run(ctx, nil); err == nil {
		t.Fatal("run() should fail with an explicit config path that does not exist")
	}
}

func TestRun_Usage(t *testing.T) {
	writeConfig(t)

	tests := [][]string{
		{"bogus"},
		{"import"},
		{"export", "json"},
	}
	for _, args := range tests {
		if err := run(context.Background(), args); !errors.Is(err, errUsage) {
			t.Errorf("run(%v) error = %v, want errUsage", args, err)
		}
	}
}

func TestRun_Commands(t *testing.T) {
	writeConfig(t)
	out := filepath.Join(t.TempDir(), "timeline.json")

	if err := run(context.Background(), []string{"seed"}); err != nil {
		t.Fatalf("seed error = %v", err)
	}
	if err := run(context.Background(), []string{"export", "json", out}); err != nil {
		t.Fatalf("export error = %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	if !strings.Contains(string(data), `"name": "Nokia 3310"`) {
		t.Errorf("export missing a sample device:\n%.200s", data)
	}
	if err := run(context.Background(), []string{"reset"}); err != nil {
		t.Fatalf("reset error = %v", err)
	}
}

func TestGetConfigPath(t *testing.T) {
	t.Setenv("DEVICETIMELINE_CONFIG", "")
	if path := getConfigPath(); path != defaultConfigPath {
		t.Errorf("getConfigPath() = %q, want %q", path, defaultConfigPath)
	}

	t.Setenv("DEVICETIMELINE_CONFIG", "/custom/path/config.yaml")
	if path := getConfigPath(); path != "/custom/path/config.yaml" {
		t.Errorf("getConfigPath() = %q with env override", path)
	}
}

func TestLoadConfig_DefaultsWhenDefaultFileMissing(t *testing.T) {
	t.Setenv("DEVICETIMELINE_CONFIG", "")
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if cfg.API.Port != 8090 {
		t.Errorf("API.Port = %d, want default 8090", cfg.API.Port)
	}
}

func TestRendererOptions(t *testing.T) {
	opts, err := rendererOptions(config.ExportConfig{
		TextOrder:        config.OrderDescending,
		ImageOrder:       config.OrderAscending,
		DocumentOrder:    config.OrderDescending,
		SpreadsheetOrder: config.OrderAscending,
		ImageConcurrency: 2,
		QRCodes:          false,
	})
	if err != nil {
		t.Fatalf("rendererOptions() error = %v", err)
	}
	if opts.TextOrder != timeline.Descending || opts.ImageOrder != timeline.Ascending ||
		opts.DocumentOrder != timeline.Descending || opts.SpreadsheetOrder != timeline.Ascending {
		t.Errorf("orders = %+v", opts)
	}
	if opts.ImageConcurrency != 2 || opts.QRCodes {
		t.Errorf("opts = %+v", opts)
	}

	if _, err := rendererOptions(config.ExportConfig{TextOrder: "sideways"}); err == nil {
		t.Error("rendererOptions() should reject an unknown order")
	}
}

func TestApp_ImportAndExport(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()
	dir := t.TempDir()

	src := filepath.Join(dir, "in.json")
	payload := `[{"name":"Game Boy","category":"gaming","startYear":1989,"endYear":1995,"imageUrl":"https://img/gb.jpg","description":"Handheld"},
		{"name":"iPod","category":"audio","startYear":2001,"imageUrl":"https://img/ipod.jpg","description":"1000 songs"}]`
	if err := os.WriteFile(src, []byte(payload), 0600); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := a.importFile(ctx, src, &out); err != nil {
		t.Fatalf("importFile() error = %v", err)
	}
	if !strings.Contains(out.String(), "imported 2 devices") || a.registry.Count() != 2 {
		t.Errorf("import output %q, count %d", out.String(), a.registry.Count())
	}

	// Configured descending: newest year first.
	txt := filepath.Join(dir, "journey.txt")
	if err := a.exportFile(ctx, "text", txt, &out); err != nil {
		t.Fatalf("exportFile(text) error = %v", err)
	}
	data, _ := os.ReadFile(txt)
	if strings.Index(string(data), "iPod") > strings.Index(string(data), "Game Boy") {
		t.Errorf("text export not in descending order:\n%s", data)
	}

	if err := a.exportFile(ctx, "gif", filepath.Join(dir, "x.gif"), &out); err == nil {
		t.Error("exportFile() should reject an unknown format")
	}
}

func TestApp_ImportRejectsInvalidFile(t *testing.T) {
	a := newTestApp(t)
	src := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(src, []byte(`[{"name":"x"}]`), 0600); err != nil {
		t.Fatal(err)
	}

	if err := a.importFile(context.Background(), src, &bytes.Buffer{}); !errors.Is(err, device.ErrInvalidImport) {
		t.Errorf("importFile() error = %v, want ErrInvalidImport", err)
	}
	if a.registry.Count() != 0 {
		t.Errorf("Count() = %d after rejected import", a.registry.Count())
	}
}

func TestApp_ChangesReachSinks(t *testing.T) {
	a := newTestApp(t)
	var out bytes.Buffer
	if err := a.seed(context.Background(), &out); err != nil {
		t.Fatalf("seed() error = %v", err)
	}
	if err := a.seed(context.Background(), &out); err != nil {
		t.Fatalf("second seed() error = %v", err)
	}
	if !strings.Contains(out.String(), "nothing seeded") {
		t.Errorf("second seed should be a no-op, output %q", out.String())
	}
	if err := a.reset(context.Background(), &out); err != nil {
		t.Fatalf("reset() error = %v", err)
	}
	if a.metrics == nil {
		t.Fatal("metrics are enabled by default")
	}
	if a.mqtt != nil || a.influx != nil {
		t.Error("disabled integrations should stay nil")
	}

	history, err := a.audit.List(context.Background(), audit.Filter{})
	if err != nil {
		t.Fatalf("audit List() error = %v", err)
	}
	if history.Total != 2 || history.Logs[0].Action != string(device.ActionReset) {
		t.Errorf("audit history = %+v", history)
	}
}

// fakePublisher records PublishJSON calls.
type fakePublisher struct {
	topics []string
	values []any
	err    error
}

func (f *fakePublisher) PublishJSON(topic string, v any) error {
	f.topics = append(f.topics, topic)
	f.values = append(f.values, v)
	return f.err
}

func (f *fakePublisher) Topics() mqtt.Topics { return mqtt.NewTopics("dt") }

func TestMQTTPublisher(t *testing.T) {
	fake := &fakePublisher{}
	p := &mqttPublisher{client: fake, log: logging.Discard()}

	p.CollectionChanged(context.Background(), device.ChangeEvent{Action: device.ActionAdded, DeviceID: "a", Count: 1})
	p.ObserveExport(export.FormatImage, 3, 1500*time.Millisecond, errors.New("boom"))

	want := []string{"dt/collection/changed", "dt/export/completed"}
	if strings.Join(fake.topics, ",") != strings.Join(want, ",") {
		t.Errorf("topics = %v, want %v", fake.topics, want)
	}
	msg, ok := fake.values[1].(exportCompleted)
	if !ok || msg.DurationMS != 1500 || msg.Error != "boom" || msg.Devices != 3 {
		t.Errorf("export payload = %#v", fake.values[1])
	}

	// Broker failures are swallowed.
	fake.err = errors.New("offline")
	p.CollectionChanged(context.Background(), device.ChangeEvent{Action: device.ActionReset})
}
