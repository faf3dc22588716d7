// YAML config loader with CUE validation integration
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Arena defines the bounded 2-D area nodes move in.
type Arena struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Traffic defines packet generation and loss behavior.
type Traffic struct {
	SendProbability float64 `yaml:"send_probability"`
	LossProbability float64 `yaml:"loss_probability"`
	PacketSpeed     float64 `yaml:"packet_speed"`
}

// SimulationConfig is the root configuration for the sensor network simulation.
type SimulationConfig struct {
	Arena     Arena   `yaml:"arena"`
	NodeCount int     `yaml:"node_count"`
	CommRange float64 `yaml:"comm_range"`
	MaxSpeed  float64 `yaml:"max_speed"`
	Attack    string  `yaml:"attack"`
	Traffic   Traffic `yaml:"traffic"`
	WindowMs  float64 `yaml:"window_ms"`
}

// Load loads YAML config and validates it against a CUE schema.
func Load(configPath, cueSchemaPath string) (*SimulationConfig, error) {
	if err := ValidateWithCue(configPath, cueSchemaPath); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}
	var cfg SimulationConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("cannot unmarshal YAML config: %w", err)
	}
	return &cfg, nil
}
