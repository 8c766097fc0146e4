package cmd

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario describes a named preset in the scenarios YAML file. Omitted
// fields keep their CLI defaults; shapes of 0 select the engine defaults.
type Scenario struct {
	SafetyStock      int64   `yaml:"safety_stock"`
	LeadTime         int     `yaml:"lead_time"`
	OrderQuantity    int64   `yaml:"order_quantity"`
	JobLotShape      float64 `yaml:"job_lot_shape"`
	TrafficShape     float64 `yaml:"traffic_shape"`
	StartingQuantity int64   `yaml:"starting_quantity"`
	Trials           int     `yaml:"trials"`
}

// ScenarioFile represents the full scenarios YAML structure. All
// top-level sections must be listed to satisfy KnownFields(true) strict
// parsing.
type ScenarioFile struct {
	Version   string              `yaml:"version"`
	Scenarios map[string]Scenario `yaml:"scenarios"`
}

// LoadScenario reads the scenarios file and returns the named preset.
// Parsing is strict: unknown or misspelled fields are errors, not
// silently ignored knobs.
func LoadScenario(path, name string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("read scenarios file: %w", err)
	}

	var file ScenarioFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return Scenario{}, fmt.Errorf("parse scenarios file: %w", err)
	}

	scenario, ok := file.Scenarios[name]
	if !ok {
		return Scenario{}, fmt.Errorf("scenario %q not found in %s", name, path)
	}
	return scenario, nil
}

// applyScenario overrides flag-bound values with the preset's non-zero
// fields.
func applyScenario(s Scenario) {
	if s.SafetyStock != 0 {
		safetyStock = s.SafetyStock
	}
	if s.LeadTime != 0 {
		leadTime = s.LeadTime
	}
	if s.OrderQuantity != 0 {
		orderQuantity = s.OrderQuantity
	}
	if s.JobLotShape != 0 {
		jobLotShape = s.JobLotShape
	}
	if s.TrafficShape != 0 {
		trafficShape = s.TrafficShape
	}
	if s.StartingQuantity != 0 {
		startingQuantity = s.StartingQuantity
	}
	if s.Trials != 0 {
		trials = s.Trials
	}
}
