package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/queue-sim/queue-sim/sim"
)

// Config represents the full defaults.yaml structure.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type Config struct {
	Version  string         `yaml:"version"`
	Limits   LimitsConfig   `yaml:"limits"`
	Settings SettingsConfig `yaml:"settings"`
}

// LimitsConfig holds the fixed capacities. Zero means "use the built-in value".
type LimitsConfig struct {
	MaxQueueSize int `yaml:"max_queue_size"`
	MaxTills     int `yaml:"max_tills"`
	MaxTime      int `yaml:"max_time"`
	ServiceRate  int `yaml:"service_rate"`
}

// SettingsConfig holds the default run settings. Zero means "use the built-in value".
type SettingsConfig struct {
	SimulationTime int `yaml:"simulation_time"`
	Tills          int `yaml:"tills"`
}

// loadDefaultsConfig parses defaults.yaml into a Config struct.
// Uses strict field checking: typos must cause errors.
func loadDefaultsConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading defaults file: %w", err)
	}
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing defaults YAML %s: %w", path, err)
	}
	return cfg, nil
}

// resolveDefaults loads path, falling back to the built-in defaults with a
// warning when the file does not exist.
func resolveDefaults(path string) (Config, error) {
	cfg, err := loadDefaultsConfig(path)
	if errors.Is(err, fs.ErrNotExist) {
		logrus.Warnf("Defaults file %s not found, using built-in limits", path)
		return Config{}, nil
	}
	return cfg, err
}

// SimLimits builds the immutable limits, filling unset fields with built-in values.
func (c Config) SimLimits() sim.Limits {
	def := sim.DefaultLimits()
	return sim.NewLimits(
		orDefault(c.Limits.MaxQueueSize, def.MaxQueueSize),
		orDefault(c.Limits.MaxTills, def.MaxTills),
		orDefault(c.Limits.MaxTime, def.MaxTime),
		orDefault(c.Limits.ServiceRate, def.ServiceRate),
	)
}

// DefaultSettings returns the simulation time and till count to start from.
func (c Config) DefaultSettings() (simulationTime, tills int) {
	return orDefault(c.Settings.SimulationTime, sim.DefaultSimulationTime),
		orDefault(c.Settings.Tills, sim.DefaultNumTills)
}

func orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}
