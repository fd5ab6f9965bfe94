package sweepfsm_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/comalice/sweepfsm"
)

func TestRandomizer_Ranges(t *testing.T) {
	r := NewRandomizer(42)
	seen := map[float64]int{}
	for i := 0; i < 1000; i++ {
		d := r.TurnDirection()
		seen[d]++
		a := r.TargetAngle()
		assert.GreaterOrEqual(t, a, -math.Pi)
		assert.LessOrEqual(t, a, math.Pi)
	}
	assert.Len(t, seen, 2)
	assert.Greater(t, seen[1], 350)
	assert.Greater(t, seen[-1], 350)
}

func TestRandomizer_SameSeedSameSequence(t *testing.T) {
	a, b := NewRandomizer(7), NewRandomizer(7)
	for i := 0; i < 50; i++ {
		assert.Equal(t, a.TurnDirection(), b.TurnDirection())
		assert.Equal(t, a.TargetAngle(), b.TargetAngle())
	}
}

func TestRandomizer_Seeded(t *testing.T) {
	r := NewRandomizer(99)
	s, ok := r.(Seeded)
	if assert.True(t, ok) {
		assert.Equal(t, uint64(99), s.Seed())
	}
}

func TestMachine_SeededRunsAreReproducible(t *testing.T) {
	run := func() []Behavior {
		m, err := NewMachine(DefaultConfig(), WithSeed(3))
		if err != nil {
			t.Fatal(err)
		}
		var seq []Behavior
		bump := 0
		for i := 0; i < 5000; i++ {
			m.Update(agentFunc(func() bool {
				bump++
				return bump%97 == 0
			}))
			seq = append(seq, m.Behavior())
		}
		return seq
	}
	assert.Equal(t, run(), run())
}

// agentFunc adapts a bumper function into an Agent that ignores commands.
type agentFunc func() bool

func (f agentFunc) SetVelocity(float64, float64) {}
func (f agentFunc) BumperState() bool            { return f() }
