package testutil

import (
	"github.com/comalice/sweepfsm"
	"github.com/comalice/sweepfsm/realtime"
)

// Driver provides a common interface for ticking a machine directly or
// through the realtime runtime, so the same scenario can run on both.
type Driver interface {
	Tick()
	Behavior() sweepfsm.Behavior
	Ticks() uint64
}

// Run ticks d n times and returns the behavior active after each tick.
func Run(d Driver, n int) []sweepfsm.Behavior {
	out := make([]sweepfsm.Behavior, 0, n)
	for i := 0; i < n; i++ {
		d.Tick()
		out = append(out, d.Behavior())
	}
	return out
}

// Collapse removes consecutive duplicates: the sequence of distinct
// behaviors visited.
func Collapse(seq []sweepfsm.Behavior) []sweepfsm.Behavior {
	var out []sweepfsm.Behavior
	for _, b := range seq {
		if len(out) == 0 || out[len(out)-1] != b {
			out = append(out, b)
		}
	}
	return out
}

// MachineDriver calls Update directly.
type MachineDriver struct {
	m     *sweepfsm.Machine
	agent sweepfsm.Agent
}

// NewMachineDriver creates a driver that updates m against agent.
func NewMachineDriver(m *sweepfsm.Machine, agent sweepfsm.Agent) *MachineDriver {
	return &MachineDriver{m: m, agent: agent}
}

func (d *MachineDriver) Tick()                       { d.m.Update(d.agent) }
func (d *MachineDriver) Behavior() sweepfsm.Behavior { return d.m.Behavior() }
func (d *MachineDriver) Ticks() uint64               { return d.m.Ticks() }

// RuntimeDriver steps a realtime runtime.
type RuntimeDriver struct {
	rt *realtime.Runtime
}

// NewRuntimeDriver wraps m in a realtime runtime that is only ever stepped.
func NewRuntimeDriver(m *sweepfsm.Machine, agent sweepfsm.Agent) *RuntimeDriver {
	return &RuntimeDriver{rt: realtime.NewRuntime(m, agent, realtime.Config{})}
}

func (d *RuntimeDriver) Tick()                       { d.rt.Step() }
func (d *RuntimeDriver) Behavior() sweepfsm.Behavior { return d.rt.Current() }
func (d *RuntimeDriver) Ticks() uint64               { return d.rt.GetTickNumber() }
