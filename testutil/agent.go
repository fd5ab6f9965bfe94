// Package testutil provides deterministic fakes for driving a sweepfsm.Machine
// in tests: a scripted agent, a fixed-sequence randomizer and adapters that
// run the same scenario directly or through the realtime runtime.
package testutil

import "sync"

// Command is one SetVelocity call.
type Command struct {
	Linear  float64
	Angular float64
}

// ScriptedAgent answers bumper reads from a script and records every
// velocity command. The script is indexed by the number of commands issued
// so far, which is the machine's tick number.
type ScriptedAgent struct {
	mu       sync.Mutex
	bumper   func(tick int) bool
	commands []Command
	reads    int
}

// NewScriptedAgent returns an agent whose bumper reports bumper(tick).
// A nil script never reports contact.
func NewScriptedAgent(bumper func(tick int) bool) *ScriptedAgent {
	if bumper == nil {
		bumper = func(int) bool { return false }
	}
	return &ScriptedAgent{bumper: bumper}
}

// BumpAt reports contact only on the listed ticks.
func BumpAt(ticks ...int) func(int) bool {
	set := make(map[int]bool, len(ticks))
	for _, t := range ticks {
		set[t] = true
	}
	return func(tick int) bool { return set[tick] }
}

// Always reports contact on every tick.
func Always(int) bool { return true }

func (a *ScriptedAgent) SetVelocity(linear, angular float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.commands = append(a.commands, Command{Linear: linear, Angular: angular})
}

func (a *ScriptedAgent) BumperState() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.reads++
	return a.bumper(len(a.commands))
}

// Commands returns a copy of every command issued so far.
func (a *ScriptedAgent) Commands() []Command {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]Command, len(a.commands))
	copy(out, a.commands)
	return out
}

// Last returns the most recent command.
func (a *ScriptedAgent) Last() Command {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.commands) == 0 {
		return Command{}
	}
	return a.commands[len(a.commands)-1]
}

// Reads returns how many times the bumper was read.
func (a *ScriptedAgent) Reads() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.reads
}
