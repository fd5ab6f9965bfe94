package sweepfsm

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the fixed kinematic and timing constants. Times are in
// seconds, speeds in m/s, lengths in meters.
type Config struct {
	SampleTime          float64 `json:"sampleTime" yaml:"sampleTime"`
	ForwardSpeed        float64 `json:"forwardSpeed" yaml:"forwardSpeed"`
	BackwardSpeed       float64 `json:"backwardSpeed" yaml:"backwardSpeed"`
	ForwardDuration     float64 `json:"forwardDuration" yaml:"forwardDuration"`
	SpiralDuration      float64 `json:"spiralDuration" yaml:"spiralDuration"`
	RetreatDuration     float64 `json:"retreatDuration" yaml:"retreatDuration"`
	InitialSpiralRadius float64 `json:"initialSpiralRadius" yaml:"initialSpiralRadius"`
	SpiralGrowthFactor  float64 `json:"spiralGrowthFactor" yaml:"spiralGrowthFactor"`
}

// DefaultConfig returns the reference constants for a small cleaning robot
// sampled at 100 Hz.
func DefaultConfig() Config {
	return Config{
		SampleTime:          0.01,
		ForwardSpeed:        0.5,
		BackwardSpeed:       -0.1,
		ForwardDuration:     3.0,
		SpiralDuration:      20.0,
		RetreatDuration:     0.5,
		InitialSpiralRadius: 0.2,
		SpiralGrowthFactor:  0.05,
	}
}

// Validate checks that every behavior is well defined: SampleTime must be
// positive, durations non-negative, InitialSpiralRadius positive and
// SpiralGrowthFactor non-negative so the spiral radius never reaches zero.
func (c Config) Validate() error {
	if !(c.SampleTime > 0) {
		return fmt.Errorf("%w: sampleTime must be positive, got %v", ErrInvalidConfig, c.SampleTime)
	}
	durations := []struct {
		name  string
		value float64
	}{
		{"forwardDuration", c.ForwardDuration},
		{"spiralDuration", c.SpiralDuration},
		{"retreatDuration", c.RetreatDuration},
	}
	for _, d := range durations {
		if !(d.value >= 0) {
			return fmt.Errorf("%w: %s must not be negative, got %v", ErrInvalidConfig, d.name, d.value)
		}
	}
	if !(c.InitialSpiralRadius > 0) {
		return fmt.Errorf("%w: initialSpiralRadius must be positive, got %v", ErrInvalidConfig, c.InitialSpiralRadius)
	}
	if !(c.SpiralGrowthFactor >= 0) {
		return fmt.Errorf("%w: spiralGrowthFactor must not be negative, got %v", ErrInvalidConfig, c.SpiralGrowthFactor)
	}
	return nil
}

// ParseConfig decodes YAML over DefaultConfig, so a document only needs the
// fields it changes. Unknown fields are rejected. An empty document yields
// the defaults.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: yaml decode: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads a YAML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// YAML encodes c as a YAML document.
func (c Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}
