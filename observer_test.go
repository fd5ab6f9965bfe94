package sweepfsm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	. "github.com/comalice/sweepfsm"
	"github.com/comalice/sweepfsm/testutil"
)

type recordingObserver struct {
	transitions []Transition
	steps       []Step
}

func (o *recordingObserver) Transitioned(t Transition) { o.transitions = append(o.transitions, t) }
func (o *recordingObserver) Stepped(s Step)            { o.steps = append(o.steps, s) }

func TestObserver_SeesTransitionsAndSteps(t *testing.T) {
	obs := &recordingObserver{}
	agent := testutil.NewScriptedAgent(testutil.BumpAt(2))
	m := newMachine(t, WithObserver(obs), WithRandomizer(testutil.Fixed(1, 0.1)))

	for i := 0; i < 8; i++ {
		m.Update(agent)
	}

	require.Len(t, obs.steps, 8)
	for i, s := range obs.steps {
		assert.Equal(t, uint64(i), s.Tick)
	}
	assert.True(t, obs.steps[2].Bumper)
	assert.Equal(t, Retreat, obs.steps[2].Behavior)
	assert.Equal(t, -0.1, obs.steps[2].Linear)

	require.NotEmpty(t, obs.transitions)
	first := obs.transitions[0]
	assert.Equal(t, Transition{Tick: 2, From: ForwardSweep, To: Retreat, Elapsed: 0.5}, first)
	assert.Equal(t, "ForwardSweep -> Retreat", first.String())

	// Retreat runs ticks 2..4 and hands over to Rotate on tick 5.
	require.GreaterOrEqual(t, len(obs.transitions), 2)
	assert.Equal(t, Retreat, obs.transitions[1].From)
	assert.Equal(t, Rotate, obs.transitions[1].To)
	assert.Equal(t, uint64(5), obs.transitions[1].Tick)
}

func TestObserver_BumperOnlyRecordedWhenRead(t *testing.T) {
	obs := &recordingObserver{}
	agent := testutil.NewScriptedAgent(testutil.Always)
	m := newMachine(t, WithInitial(Retreat), WithObserver(obs), WithSeed(1))

	m.Update(agent)
	require.Len(t, obs.steps, 1)
	assert.False(t, obs.steps[0].Bumper)
}

func TestLogger_LogsTransitionsAtDebug(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	agent := testutil.NewScriptedAgent(testutil.BumpAt(0))
	m := newMachine(t, WithLogger(zap.New(core)), WithSeed(1))

	m.Update(agent)

	entries := logs.FilterMessage("behavior transition").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "ForwardSweep", fields["from"])
	assert.Equal(t, "Retreat", fields["to"])
	assert.Equal(t, uint64(0), fields["tick"])
}
