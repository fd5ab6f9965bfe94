package realtime

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/comalice/sweepfsm"
)

var (
	ErrAlreadyStarted = errors.New("runtime already started")
	ErrNotStarted     = errors.New("runtime not started")
	ErrInvalidRate    = errors.New("tick rate must be positive")
)

// Runtime runs a machine against an agent once per tick.
type Runtime struct {
	machine *sweepfsm.Machine
	agent   sweepfsm.Agent

	tickRate time.Duration
	maxTicks uint64
	onTick   func(tick uint64)
	log      *zap.Logger

	// mu guards the machine and the agent. The tick count is the machine's.
	mu sync.Mutex

	// Control
	ticker     *time.Ticker
	tickCtx    context.Context
	tickCancel context.CancelFunc
	stopped    chan struct{}
	started    bool
}

// Config configures the runtime.
type Config struct {
	TickRate time.Duration     // Zero means the machine's SampleTime
	MaxTicks uint64            // The tick loop exits once the machine has run this many; zero is unlimited
	OnTick   func(tick uint64) // Called after each Update, under the runtime lock
	Logger   *zap.Logger
}

// NewRuntime creates a runtime for machine driving agent.
func NewRuntime(machine *sweepfsm.Machine, agent sweepfsm.Agent, cfg Config) *Runtime {
	if cfg.TickRate == 0 {
		cfg.TickRate = time.Duration(machine.Config().SampleTime * float64(time.Second))
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return &Runtime{
		machine:  machine,
		agent:    agent,
		tickRate: cfg.TickRate,
		maxTicks: cfg.MaxTicks,
		onTick:   cfg.OnTick,
		log:      cfg.Logger,
		stopped:  make(chan struct{}),
	}
}

// Start begins ticking until ctx is cancelled, Stop is called or MaxTicks
// is reached. A SampleTime below one nanosecond gives a zero default rate,
// which Start rejects with ErrInvalidRate.
func (rt *Runtime) Start(ctx context.Context) error {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	if rt.started {
		return ErrAlreadyStarted
	}
	if rt.tickRate <= 0 {
		return fmt.Errorf("%w, got %v", ErrInvalidRate, rt.tickRate)
	}
	rt.started = true

	rt.tickCtx, rt.tickCancel = context.WithCancel(ctx)
	rt.ticker = time.NewTicker(rt.tickRate)

	rt.log.Info("runtime started",
		zap.Duration("tickRate", rt.tickRate),
		zap.Stringer("behavior", rt.machine.Behavior()),
	)

	go rt.tickLoop()

	return nil
}

// Stop halts the tick loop and waits for it to exit.
func (rt *Runtime) Stop() error {
	rt.mu.Lock()
	if !rt.started {
		rt.mu.Unlock()
		return ErrNotStarted
	}
	rt.tickCancel()
	rt.ticker.Stop()
	rt.mu.Unlock()

	// Wait for tick loop to exit
	<-rt.stopped

	rt.log.Info("runtime stopped", zap.Uint64("ticks", rt.GetTickNumber()))
	return nil
}

// Done is closed once the tick loop has exited.
func (rt *Runtime) Done() <-chan struct{} {
	return rt.stopped
}

// tickLoop is the main tick execution loop
func (rt *Runtime) tickLoop() {
	defer close(rt.stopped)

	for {
		select {
		case <-rt.tickCtx.Done():
			return
		case <-rt.ticker.C:
			if !rt.stepBelowLimit() {
				return
			}
		}
	}
}

// Step runs one tick synchronously and returns the tick number it ran.
// A tick that panics is not counted, so the same number is run again.
func (rt *Runtime) Step() uint64 {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	tick := rt.machine.Ticks()
	rt.processTick(tick)
	return tick
}

// stepBelowLimit runs one tick unless MaxTicks has been reached, and
// reports whether the loop should keep going.
func (rt *Runtime) stepBelowLimit() bool {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	if rt.maxTicks > 0 && rt.machine.Ticks() >= rt.maxTicks {
		return false
	}
	rt.processTick(rt.machine.Ticks())
	return rt.maxTicks == 0 || rt.machine.Ticks() < rt.maxTicks
}

// GetTickNumber returns the number of ticks the machine has completed.
func (rt *Runtime) GetTickNumber() uint64 {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.machine.Ticks()
}

// Current returns the active behavior.
func (rt *Runtime) Current() sweepfsm.Behavior {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.machine.Behavior()
}

// Inspect calls fn with the machine while holding the runtime lock.
func (rt *Runtime) Inspect(fn func(m *sweepfsm.Machine)) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	fn(rt.machine)
}
