package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		level string
		debug bool
	}{
		{"", false},
		{"production", false},
		{"development", true},
		{"debug", true},
		{"warn", false},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			log, err := New(tt.level)
			require.NoError(t, err)
			assert.Equal(t, tt.debug, log.Core().Enabled(zapcore.DebugLevel))
		})
	}
}

func TestNew_UnknownLevel(t *testing.T) {
	_, err := New("loud")
	assert.Error(t, err)
}
