package sim

import (
	"fmt"
	"time"
)

// Config defines timing and concurrency parameters for the simulation.
type Config struct {
	// StepScale is the real time that one duration unit of dwell maps to.
	// The original cadence is one second per unit; tests shrink it.
	StepScale time.Duration `json:"step_scale"`
	// RechargeSettle is how long a vehicle waits on an empty battery
	// before it is reset to full charge.
	RechargeSettle time.Duration `json:"recharge_settle"`
	// MaxWorkers caps how many rental tasks of one time group run at
	// once. Zero means one worker per rental.
	MaxWorkers int `json:"max_workers"`
}

// SetDefaults applies the original simulation cadence.
func (c *Config) SetDefaults() {
	if c.StepScale == 0 {
		c.StepScale = time.Second
	}
	if c.RechargeSettle == 0 {
		c.RechargeSettle = time.Second
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.StepScale < 0 {
		return fmt.Errorf("sim: step_scale must not be negative")
	}
	if c.RechargeSettle < 0 {
		return fmt.Errorf("sim: recharge_settle must not be negative")
	}
	if c.MaxWorkers < 0 {
		return fmt.Errorf("sim: max_workers must not be negative")
	}
	return nil
}
