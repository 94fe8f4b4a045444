// Device Timeline - a personal history of the technology you have owned.
//
// This is the main entry point. By default it serves the HTTP API; the
// remaining subcommands operate on the local collection and exit.
//
//	devicetimeline [serve]
//	devicetimeline seed
//	devicetimeline import <file.json>
//	devicetimeline export <json|text|image|document|spreadsheet> <outfile>
//	devicetimeline reset
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	_ "github.com/nerrad567/device-timeline/migrations"

	"github.com/nerrad567/device-timeline/internal/infrastructure/config"
	"github.com/nerrad567/device-timeline/internal/infrastructure/logging"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

// errUsage is returned for unknown subcommands or missing arguments.
var errUsage = errors.New("usage: devicetimeline [serve|seed|import <file>|export <format> <outfile>|reset]")

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
//
// Parameters:
//   - ctx: Context for cancellation and shutdown signals
//   - args: Command-line arguments without the program name
//
// Returns:
//   - error: nil on clean exit, or error describing failure
func run(ctx context.Context, args []string) error {
	cmd := "serve"
	if len(args) > 0 {
		cmd, args = args[0], args[1:]
	}

	// A missing .env is normal outside development.
	_ = godotenv.Load() //nolint:errcheck // optional file

	log := logging.Default()

	cfg, err := loadConfig(getConfigPath())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log = logging.New(cfg.Logging, version)

	switch cmd {
	case "serve":
		log.Info("starting device timeline", "version", version, "commit", commit, "build_date", date)
		return serve(ctx, cfg, log)
	case "seed":
		return withApp(ctx, cfg, log, func(a *app) error { return a.seed(ctx, os.Stdout) })
	case "import":
		if len(args) != 1 {
			return errUsage
		}
		return withApp(ctx, cfg, log, func(a *app) error { return a.importFile(ctx, args[0], os.Stdout) })
	case "export":
		if len(args) != 2 {
			return errUsage
		}
		return withApp(ctx, cfg, log, func(a *app) error { return a.exportFile(ctx, args[0], args[1], os.Stdout) })
	case "reset":
		return withApp(ctx, cfg, log, func(a *app) error { return a.reset(ctx, os.Stdout) })
	default:
		return errUsage
	}
}

// getConfigPath returns the configuration file path.
// Uses DEVICETIMELINE_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("DEVICETIMELINE_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

// loadConfig reads path, falling back to built-in defaults when the default
// file does not exist. An explicitly configured path must exist.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err == nil {
		return cfg, nil
	}
	if errors.Is(err, fs.ErrNotExist) && os.Getenv("DEVICETIMELINE_CONFIG") == "" {
		return config.Default()
	}
	return nil, err
}
