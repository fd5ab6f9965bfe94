// Package benchmarks provides shared helpers for benchmark tests.
package benchmarks

import (
	"fmt"

	"github.com/comalice/sweepfsm"
	"github.com/comalice/sweepfsm/internal/production"
	"github.com/comalice/sweepfsm/sim"
)

// Room is the benchmark room: small enough that every behavior is visited
// within a few thousand ticks.
var Room = sim.Room{Width: 3, Height: 2}

// NewRun builds a seeded machine and a robot in Room.
func NewRun(seed uint64, opts ...sweepfsm.Option) (*sweepfsm.Machine, *sim.Robot) {
	robot, err := sim.NewRobot(Room)
	if err != nil {
		panic(err)
	}
	opts = append([]sweepfsm.Option{sweepfsm.WithSeed(seed)}, opts...)
	m, err := sweepfsm.NewMachine(sweepfsm.DefaultConfig(), opts...)
	if err != nil {
		panic(err)
	}
	return m, robot
}

// GenTrace records a closed-loop run of n ticks.
func GenTrace(seed uint64, n int) production.Trace {
	rec := production.NewRecorder()
	m, robot := NewRun(seed, sweepfsm.WithObserver(rec))
	if err := rec.Bind(m); err != nil {
		panic(err)
	}
	dt := m.Config().SampleTime
	for i := 0; i < n; i++ {
		m.Update(robot)
		robot.Advance(dt)
	}
	trace := rec.Trace()
	if len(trace.Transitions) == 0 {
		panic(fmt.Sprintf("seed %d: no transitions in %d ticks", seed, n))
	}
	return trace
}
