package config

import (
	"fmt"
	"time"

	"github.com/kilianp07/fleetrent/core/factory"
	"github.com/kilianp07/fleetrent/core/sim"
	"github.com/kilianp07/fleetrent/infra/mqtt"
)

// DataConfig locates the input files.
type DataConfig struct {
	// VehiclesFile is the CSV file describing the fleet.
	VehiclesFile string `json:"vehicles_file"`
	// RentalsFile is the CSV file listing the rentals to simulate.
	RentalsFile string `json:"rentals_file"`
	// UserDocsFile persists generated user documents between runs. Optional.
	UserDocsFile string `json:"user_docs_file"`
}

// Validate checks mandatory fields.
func (c DataConfig) Validate() error {
	if c.VehiclesFile == "" {
		return fmt.Errorf("data: vehicles_file is required")
	}
	if c.RentalsFile == "" {
		return fmt.Errorf("data: rentals_file is required")
	}
	return nil
}

// SimulationConfig tunes the scheduler. Durations are in milliseconds so
// the file stays plain numbers.
type SimulationConfig struct {
	// StepScaleMS is the real time one simulated second takes.
	StepScaleMS int `json:"step_scale_ms"`
	// RechargeSettleMS is the pause before an empty battery recharges.
	RechargeSettleMS int `json:"recharge_settle_ms"`
	// MaxWorkers bounds concurrent tasks per time group; 0 means one
	// worker per rental.
	MaxWorkers int `json:"max_workers"`
}

// SetDefaults applies sane defaults.
func (c *SimulationConfig) SetDefaults() {
	if c.StepScaleMS == 0 {
		c.StepScaleMS = 1000
	}
	if c.RechargeSettleMS == 0 {
		c.RechargeSettleMS = 1000
	}
}

// Validate checks the ranges.
func (c SimulationConfig) Validate() error {
	if c.StepScaleMS < 0 || c.RechargeSettleMS < 0 || c.MaxWorkers < 0 {
		return fmt.Errorf("simulation: negative values are not allowed")
	}
	return nil
}

// SimConfig converts the section to the scheduler's configuration.
func (c SimulationConfig) SimConfig() sim.Config {
	return sim.Config{
		StepScale:      time.Duration(c.StepScaleMS) * time.Millisecond,
		RechargeSettle: time.Duration(c.RechargeSettleMS) * time.Millisecond,
		MaxWorkers:     c.MaxWorkers,
	}
}

// ReceiptsConfig controls receipt persistence.
type ReceiptsConfig struct {
	// Dir is the directory receiving one file per rental.
	Dir string `json:"dir"`
	// Format selects the writer: "text" or "pdf".
	Format string `json:"format"`
}

// SetDefaults applies sane defaults.
func (c *ReceiptsConfig) SetDefaults() {
	if c.Dir == "" {
		c.Dir = "receipts"
	}
	if c.Format == "" {
		c.Format = "text"
	}
}

// Validate checks the format.
func (c ReceiptsConfig) Validate() error {
	if c.Format != "text" && c.Format != "pdf" {
		return fmt.Errorf("receipts: unknown format %s", c.Format)
	}
	return nil
}

// MetricsConfig defines the sinks and the scrape endpoint.
type MetricsConfig struct {
	Sinks []factory.ModuleConfig `json:"sinks"`
	// PrometheusAddr is the listen address of the /metrics server.
	// Empty disables the server.
	PrometheusAddr string `json:"prometheus_addr"`
}

// MQTTConfig enables position telemetry over MQTT.
type MQTTConfig struct {
	Enabled bool        `json:"enabled"`
	Client  mqtt.Config `json:"client"`
}

// LoggingConfig selects the log level and output format.
type LoggingConfig struct {
	// Level is the minimum level: debug, info, warn or error.
	Level string `json:"level"`
	// Env switches the output format: "dev" for console, "prod" for JSON.
	Env string `json:"env"`
}

// SetDefaults applies sane defaults.
func (c *LoggingConfig) SetDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Env == "" {
		c.Env = "prod"
	}
}

// Validate checks the level and env values.
func (c LoggingConfig) Validate() error {
	switch c.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging: unknown level %s", c.Level)
	}
	if c.Env != "dev" && c.Env != "prod" {
		return fmt.Errorf("logging: unknown env %s", c.Env)
	}
	return nil
}
