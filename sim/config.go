package sim

import "fmt"

const (
	// HorizonDays is the fixed trial length. Every trial runs exactly one
	// simulated year; there is no early exit.
	HorizonDays = 365

	// ZipfElements bounds both demand distributions: samples fall in
	// [1, ZipfElements].
	ZipfElements = 1000

	// DefaultJobLotShape is the default exponent of the per-customer
	// order-size distribution.
	DefaultJobLotShape = 2.75

	// DefaultTrafficShape is the default exponent of the per-day
	// customer-count distribution.
	DefaultTrafficShape = 4.0
)

// Config groups the inventory policy parameters for NewEngine.
// The zero value for either shape selects the corresponding default.
type Config struct {
	SafetyStock   int64   // reorder trigger threshold (must be >= 0)
	LeadTime      int     // days between order placement and arrival (must be >= 1)
	OrderQuantity int64   // reorder batch size (must be >= 1)
	JobLotShape   float64 // Zipf exponent for per-customer order size (default 2.75)
	TrafficShape  float64 // Zipf exponent for per-day customer count (default 4.0)
}

// ConfigError reports an invalid Config field. It is returned from
// NewEngine only; once an Engine exists, simulation cannot fail on
// configuration.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid config: %s %s", e.Field, e.Reason)
}

// withDefaults returns a copy of c with zero-valued shapes replaced by
// the package defaults.
func (c Config) withDefaults() Config {
	if c.JobLotShape == 0 {
		c.JobLotShape = DefaultJobLotShape
	}
	if c.TrafficShape == 0 {
		c.TrafficShape = DefaultTrafficShape
	}
	return c
}

// validate checks c after defaulting. OrderQuantity >= 1 also protects
// the ceil division in the reorder step.
func (c Config) validate() error {
	if c.SafetyStock < 0 {
		return &ConfigError{Field: "SafetyStock", Reason: "must be >= 0"}
	}
	if c.LeadTime < 1 {
		return &ConfigError{Field: "LeadTime", Reason: "must be >= 1"}
	}
	if c.OrderQuantity < 1 {
		return &ConfigError{Field: "OrderQuantity", Reason: "must be >= 1"}
	}
	if c.JobLotShape <= 0 {
		return &ConfigError{Field: "JobLotShape", Reason: "must be > 0"}
	}
	if c.TrafficShape <= 0 {
		return &ConfigError{Field: "TrafficShape", Reason: "must be > 0"}
	}
	return nil
}
