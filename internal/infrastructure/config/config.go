package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Sort direction values accepted by the export ordering settings.
const (
	OrderAscending  = "ascending"
	OrderDescending = "descending"
)

// Config is the root configuration structure for the device timeline service.
// All configuration is loaded from YAML and can be overridden by environment variables.
type Config struct {
	App       AppConfig       `yaml:"app"`
	Database  DatabaseConfig  `yaml:"database"`
	API       APIConfig       `yaml:"api"`
	WebSocket WebSocketConfig `yaml:"websocket"`
	Logging   LoggingConfig   `yaml:"logging"`
	Lookup    LookupConfig    `yaml:"lookup"`
	Export    ExportConfig    `yaml:"export"`
	MQTT      MQTTConfig      `yaml:"mqtt"`
	InfluxDB  InfluxDBConfig  `yaml:"influxdb"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// AppConfig contains application-wide settings.
type AppConfig struct {
	Name string `yaml:"name"`
	// SampleData seeds the sample collection on first start when the store is empty.
	SampleData bool `yaml:"sample_data"`
	// UIDir serves the browser screen from disk instead of the embedded copy.
	UIDir string `yaml:"ui_dir"`
}

// DatabaseConfig contains SQLite database settings.
type DatabaseConfig struct {
	Path        string `yaml:"path"`
	WALMode     bool   `yaml:"wal_mode"`
	BusyTimeout int    `yaml:"busy_timeout"`
}

// APIConfig contains HTTP API server settings.
type APIConfig struct {
	Host     string           `yaml:"host"`
	Port     int              `yaml:"port"`
	Timeouts APITimeoutConfig `yaml:"timeouts"`
	CORS     CORSConfig       `yaml:"cors"`
}

// APITimeoutConfig contains HTTP timeout settings in seconds.
// Write is generous because document exports render one page at a time.
type APITimeoutConfig struct {
	Read  int `yaml:"read"`
	Write int `yaml:"write"`
	Idle  int `yaml:"idle"`
}

// CORSConfig contains Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
	AllowedMethods []string `yaml:"allowed_methods"`
	AllowedHeaders []string `yaml:"allowed_headers"`
}

// WebSocketConfig contains WebSocket server settings.
type WebSocketConfig struct {
	Path           string `yaml:"path"`
	MaxMessageSize int    `yaml:"max_message_size"`
	PingInterval   int    `yaml:"ping_interval"`
	PongTimeout    int    `yaml:"pong_timeout"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// LookupConfig contains encyclopedia lookup settings.
type LookupConfig struct {
	Endpoint            string `yaml:"endpoint"`
	Timeout             int    `yaml:"timeout"`
	ResultLimit         int    `yaml:"result_limit"`
	AdditionalImages    bool   `yaml:"additional_images"`
	MaxAdditionalImages int    `yaml:"max_additional_images"`
	UserAgent           string `yaml:"user_agent"`
}

// ExportConfig contains export artifact settings.
//
// Each formatter carries its own sort direction; there is no global default.
type ExportConfig struct {
	TextOrder        string `yaml:"text_order"`
	ImageOrder       string `yaml:"image_order"`
	DocumentOrder    string `yaml:"document_order"`
	SpreadsheetOrder string `yaml:"spreadsheet_order"`
	ImageTimeout     int    `yaml:"image_timeout"`
	ImageConcurrency int    `yaml:"image_concurrency"`
	QRCodes          bool   `yaml:"qr_codes"`
}

// MQTTConfig contains MQTT broker connection settings.
type MQTTConfig struct {
	Enabled     bool                `yaml:"enabled"`
	Broker      MQTTBrokerConfig    `yaml:"broker"`
	Auth        MQTTAuthConfig      `yaml:"auth"`
	QoS         int                 `yaml:"qos"`
	TopicPrefix string              `yaml:"topic_prefix"`
	Reconnect   MQTTReconnectConfig `yaml:"reconnect"`
}

// MQTTBrokerConfig contains MQTT broker connection details.
type MQTTBrokerConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	TLS      bool   `yaml:"tls"`
	ClientID string `yaml:"client_id"`
}

// MQTTAuthConfig contains MQTT authentication credentials.
type MQTTAuthConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// MQTTReconnectConfig contains MQTT reconnection settings in seconds.
type MQTTReconnectConfig struct {
	InitialDelay int `yaml:"initial_delay"`
	MaxDelay     int `yaml:"max_delay"`
}

// InfluxDBConfig contains InfluxDB connection settings for export telemetry.
type InfluxDBConfig struct {
	Enabled       bool   `yaml:"enabled"`
	URL           string `yaml:"url"`
	Token         string `yaml:"token"`
	Org           string `yaml:"org"`
	Bucket        string `yaml:"bucket"`
	BatchSize     int    `yaml:"batch_size"`
	FlushInterval int    `yaml:"flush_interval"`
}

// MetricsConfig contains Prometheus exposition settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Load reads configuration from a YAML file and applies environment variable overrides.
//
// The configuration loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults)
//  3. Environment variables (override file values)
//
// Environment variables follow the pattern: DEVICETIMELINE_SECTION_KEY
// For example: DEVICETIMELINE_DATABASE_PATH, DEVICETIMELINE_API_PORT
//
// Parameters:
//   - path: Path to the YAML configuration file
//
// Returns:
//   - *Config: Loaded and validated configuration
//   - error: If file cannot be read, parsed, or validation fails
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Default returns the built-in configuration with environment overrides applied.
// Used when no configuration file exists (first run, CLI use).
//
// Returns:
//   - *Config: Default configuration
//   - error: If environment overrides produce an invalid configuration
func Default() (*Config, error) {
	cfg := defaultConfig()
	applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// defaultConfig returns a Config with sensible defaults.
func defaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Name: "Device Timeline",
		},
		Database: DatabaseConfig{
			Path:        "./data/devicetimeline.db",
			WALMode:     true,
			BusyTimeout: 5,
		},
		API: APIConfig{
			Host: "127.0.0.1",
			Port: 8090,
			Timeouts: APITimeoutConfig{
				Read:  30,
				Write: 300,
				Idle:  60,
			},
		},
		WebSocket: WebSocketConfig{
			Path:           "/ws",
			MaxMessageSize: 8192,
			PingInterval:   30,
			PongTimeout:    10,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
		Lookup: LookupConfig{
			Endpoint:            "https://en.wikipedia.org/w/api.php",
			Timeout:             10,
			ResultLimit:         5,
			AdditionalImages:    true,
			MaxAdditionalImages: 10,
			UserAgent:           "device-timeline/1.0",
		},
		Export: ExportConfig{
			TextOrder:        OrderAscending,
			ImageOrder:       OrderAscending,
			DocumentOrder:    OrderAscending,
			SpreadsheetOrder: OrderAscending,
			ImageTimeout:     15,
			ImageConcurrency: 4,
			QRCodes:          true,
		},
		MQTT: MQTTConfig{
			Broker: MQTTBrokerConfig{
				Host:     "localhost",
				Port:     1883,
				ClientID: "device-timeline",
			},
			QoS:         1,
			TopicPrefix: "devicetimeline",
			Reconnect: MQTTReconnectConfig{
				InitialDelay: 1,
				MaxDelay:     60,
			},
		},
		InfluxDB: InfluxDBConfig{
			BatchSize:     100,
			FlushInterval: 10,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables follow the pattern: DEVICETIMELINE_SECTION_KEY
func applyEnvOverrides(cfg *Config) {
	// Database
	if v := os.Getenv("DEVICETIMELINE_DATABASE_PATH"); v != "" {
		cfg.Database.Path = v
	}

	// API
	if v := os.Getenv("DEVICETIMELINE_API_HOST"); v != "" {
		cfg.API.Host = v
	}
	if v := os.Getenv("DEVICETIMELINE_API_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.API.Port = port
		}
	}

	// Logging
	if v := os.Getenv("DEVICETIMELINE_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}

	// Lookup
	if v := os.Getenv("DEVICETIMELINE_LOOKUP_ENDPOINT"); v != "" {
		cfg.Lookup.Endpoint = v
	}

	// MQTT
	if v := os.Getenv("DEVICETIMELINE_MQTT_HOST"); v != "" {
		cfg.MQTT.Broker.Host = v
	}
	if v := os.Getenv("DEVICETIMELINE_MQTT_USERNAME"); v != "" {
		cfg.MQTT.Auth.Username = v
	}
	if v := os.Getenv("DEVICETIMELINE_MQTT_PASSWORD"); v != "" {
		cfg.MQTT.Auth.Password = v
	}

	// InfluxDB
	if v := os.Getenv("DEVICETIMELINE_INFLUXDB_TOKEN"); v != "" {
		cfg.InfluxDB.Token = v
	}
}

// Validate checks the configuration for errors.
//
// All problems are collected so a single run reports every misconfiguration.
//
// Returns:
//   - error: Description of validation failure, or nil if valid
func (c *Config) Validate() error {
	var errs []string

	if c.Database.Path == "" {
		errs = append(errs, "database.path is required")
	}

	if c.API.Port < 1 || c.API.Port > 65535 {
		errs = append(errs, "api.port must be between 1 and 65535")
	}
	if c.API.Timeouts.Read <= 0 || c.API.Timeouts.Write <= 0 || c.API.Timeouts.Idle <= 0 {
		errs = append(errs, "api.timeouts must be positive")
	}

	if c.Lookup.Timeout <= 0 {
		errs = append(errs, "lookup.timeout must be positive")
	}
	if c.Lookup.ResultLimit < 1 || c.Lookup.ResultLimit > 50 {
		errs = append(errs, "lookup.result_limit must be between 1 and 50")
	}

	orders := []struct{ key, value string }{
		{"export.text_order", c.Export.TextOrder},
		{"export.image_order", c.Export.ImageOrder},
		{"export.document_order", c.Export.DocumentOrder},
		{"export.spreadsheet_order", c.Export.SpreadsheetOrder},
	}
	for _, o := range orders {
		if o.value != OrderAscending && o.value != OrderDescending {
			errs = append(errs, fmt.Sprintf("%s must be %q or %q", o.key, OrderAscending, OrderDescending))
		}
	}
	if c.Export.ImageTimeout <= 0 {
		errs = append(errs, "export.image_timeout must be positive")
	}
	if c.Export.ImageConcurrency < 1 {
		errs = append(errs, "export.image_concurrency must be at least 1")
	}

	if c.MQTT.QoS < 0 || c.MQTT.QoS > 2 {
		errs = append(errs, "mqtt.qos must be 0, 1, or 2")
	}
	if c.MQTT.Enabled && c.MQTT.TopicPrefix == "" {
		errs = append(errs, "mqtt.topic_prefix is required when mqtt is enabled")
	}

	if c.InfluxDB.Enabled && (c.InfluxDB.URL == "" || c.InfluxDB.Bucket == "") {
		errs = append(errs, "influxdb.url and influxdb.bucket are required when influxdb is enabled")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// GetReadTimeout returns the API read timeout as a Duration.
func (c *Config) GetReadTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Read) * time.Second
}

// GetWriteTimeout returns the API write timeout as a Duration.
func (c *Config) GetWriteTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Write) * time.Second
}

// GetIdleTimeout returns the API idle timeout as a Duration.
func (c *Config) GetIdleTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Idle) * time.Second
}

// GetLookupTimeout returns the lookup request timeout as a Duration.
func (c *Config) GetLookupTimeout() time.Duration {
	return time.Duration(c.Lookup.Timeout) * time.Second
}

// GetImageTimeout returns the per-image download timeout for exports.
func (c *Config) GetImageTimeout() time.Duration {
	return time.Duration(c.Export.ImageTimeout) * time.Second
}
