// Package config handles loading and validating device timeline configuration.
//
// This package manages:
//   - Loading configuration from YAML files
//   - Overriding with environment variables (DEVICETIMELINE_SECTION_KEY)
//   - Validation of required fields and value ranges
//   - Default value handling
//
// Security Considerations:
//   - Broker passwords and InfluxDB tokens should be set via environment variables
//   - The config file should have restricted permissions (0600)
//
// Usage:
//
//	cfg, err := config.Load("configs/config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.App.Name)
package config
