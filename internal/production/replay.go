package production

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/comalice/sweepfsm"
)

// ErrReplayDiverged is returned when a replayed run differs from its trace.
var ErrReplayDiverged = errors.New("replay diverged")

// replayAgent feeds the recorded bumper readings back tick by tick.
type replayAgent struct {
	steps []sweepfsm.Step
	tick  int
}

func (a *replayAgent) SetVelocity(float64, float64) {}

func (a *replayAgent) BumperState() bool {
	if a.tick >= len(a.steps) {
		return false
	}
	return a.steps[a.tick].Bumper
}

// Replay rebuilds the machine from the trace's config, seed and initial
// behavior, feeds it the recorded bumper readings and compares every step.
// It returns the replayed trace and an ErrReplayDiverged error naming the
// first differing tick.
func Replay(trace Trace, log *zap.Logger) (Trace, error) {
	if log == nil {
		log = zap.NewNop()
	}
	initial := trace.Initial
	if !initial.Valid() {
		initial = sweepfsm.ForwardSweep
	}
	rec := NewRecorder()
	m, err := sweepfsm.NewMachine(trace.Config,
		sweepfsm.WithSeed(trace.Seed),
		sweepfsm.WithInitial(initial),
		sweepfsm.WithObserver(rec),
		sweepfsm.WithLogger(log),
	)
	if err != nil {
		return Trace{}, fmt.Errorf("build machine: %w", err)
	}
	if err := rec.Bind(m); err != nil {
		return Trace{}, err
	}

	agent := &replayAgent{steps: trace.Steps}
	for agent.tick = 0; agent.tick < len(trace.Steps); agent.tick++ {
		m.Update(agent)
	}

	got := rec.Trace()
	for i, want := range trace.Steps {
		have := got.Steps[i]
		if have.Behavior != want.Behavior || have.Linear != want.Linear || have.Angular != want.Angular {
			return got, fmt.Errorf("%w at tick %d: recorded %s (%g, %g), replayed %s (%g, %g)",
				ErrReplayDiverged, want.Tick,
				want.Behavior, want.Linear, want.Angular,
				have.Behavior, have.Linear, have.Angular)
		}
	}
	log.Debug("replay matched", zap.String("runID", trace.RunID), zap.Int("ticks", len(trace.Steps)))
	return got, nil
}
