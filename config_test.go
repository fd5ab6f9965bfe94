package sweepfsm_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/comalice/sweepfsm"
)

func TestDefaultConfig_Valid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero sample time", func(c *Config) { c.SampleTime = 0 }},
		{"negative sample time", func(c *Config) { c.SampleTime = -0.01 }},
		{"NaN sample time", func(c *Config) { c.SampleTime = math.NaN() }},
		{"negative forward duration", func(c *Config) { c.ForwardDuration = -1 }},
		{"negative spiral duration", func(c *Config) { c.SpiralDuration = -1 }},
		{"negative retreat duration", func(c *Config) { c.RetreatDuration = -1 }},
		{"zero spiral radius", func(c *Config) { c.InitialSpiralRadius = 0 }},
		{"negative growth", func(c *Config) { c.SpiralGrowthFactor = -0.1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestParseConfig_OverlaysDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte("forwardSpeed: 0.3\nspiralDuration: 12\n"))
	require.NoError(t, err)

	want := DefaultConfig()
	want.ForwardSpeed = 0.3
	want.SpiralDuration = 12
	assert.Equal(t, want, cfg)
}

func TestParseConfig_Rejects(t *testing.T) {
	_, err := ParseConfig([]byte("sampleTime: -1\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = ParseConfig([]byte("sampleTime: [1, 2\n"))
	assert.Error(t, err)
}

func TestParseConfig_RejectsUnknownField(t *testing.T) {
	_, err := ParseConfig([]byte("forwardDuraton: 5\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.ErrorContains(t, err, "forwardDuraton")
}

func TestParseConfig_EmptyDocumentIsDefault(t *testing.T) {
	for _, doc := range []string{"", "# nothing set\n"} {
		cfg, err := ParseConfig([]byte(doc))
		require.NoError(t, err, "document %q", doc)
		assert.Equal(t, DefaultConfig(), cfg)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "robot.yaml")
	require.NoError(t, os.WriteFile(path, []byte("retreatDuration: 1.5\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 1.5, cfg.RetreatDuration)

	_, err = LoadConfig(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestConfig_YAMLRoundTrip(t *testing.T) {
	data, err := DefaultConfig().YAML()
	require.NoError(t, err)
	assert.Contains(t, string(data), "sampleTime: 0.01")

	cfg, err := ParseConfig(data)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}
