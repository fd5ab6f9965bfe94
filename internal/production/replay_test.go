package production

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/comalice/sweepfsm"
)

func TestReplay_Matches(t *testing.T) {
	trace := recordRun(t, 21, 80, 4, 33, 60)

	core, logs := observer.New(zapcore.DebugLevel)
	got, err := Replay(trace, zap.New(core))
	require.NoError(t, err)
	assert.Equal(t, trace.Steps, got.Steps)
	assert.Equal(t, trace.Transitions, got.Transitions)
	assert.Equal(t, 1, logs.FilterMessage("replay matched").Len())
	assert.Equal(t, len(trace.Transitions), logs.FilterMessage("behavior transition").Len())
}

func TestReplay_Diverged(t *testing.T) {
	trace := recordRun(t, 21, 40, 4)
	trace.Steps[10].Linear = 42

	_, err := Replay(trace, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrReplayDiverged))
	assert.ErrorContains(t, err, "at tick 10")
}

func TestReplay_WrongSeedDiverges(t *testing.T) {
	// Contact on tick 2 reaches Rotate, whose turn depends on the seed.
	trace := recordRun(t, 1, 30, 2)
	var found bool
	for seed := uint64(2); seed < 20 && !found; seed++ {
		other := recordRun(t, seed, 30, 2)
		if rotateAngular(other) != rotateAngular(trace) || len(other.Transitions) != len(trace.Transitions) ||
			other.Transitions[len(other.Transitions)-1].Tick != trace.Transitions[len(trace.Transitions)-1].Tick {
			trace.Seed = seed
			found = true
		}
	}
	require.True(t, found, "every seed produced the same run")

	_, err := Replay(trace, zap.NewNop())
	assert.True(t, errors.Is(err, ErrReplayDiverged))
}

func rotateAngular(tr Trace) float64 {
	for _, s := range tr.Steps {
		if s.Behavior == sweepfsm.Rotate {
			return s.Angular
		}
	}
	return 0
}

func TestReplay_InvalidConfig(t *testing.T) {
	trace := recordRun(t, 1, 5)
	trace.Config.SampleTime = 0

	_, err := Replay(trace, nil)
	assert.ErrorIs(t, err, sweepfsm.ErrInvalidConfig)
}
