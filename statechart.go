package sweepfsm

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Agent is the robot body the machine drives. Implementations own actuation
// and sensing; the machine only issues commands and reads the bumper.
type Agent interface {
	SetVelocity(linear, angular float64)
	BumperState() bool
}

// State is one active behavior. The set of implementations is closed: the
// unexported seal method keeps other packages from adding variants, and
// Machine.NewState is the only constructor.
type State interface {
	Behavior() Behavior
	// Elapsed is the time spent in this state, in seconds.
	Elapsed() float64
	// CheckTransition may replace the active state through m.ChangeState.
	CheckTransition(a Agent, m *Machine)
	// Execute issues one velocity command and advances the clock by one sample.
	Execute(a Agent)

	seal()
}

// Transition describes a replacement of the active state.
type Transition struct {
	Tick    uint64   `json:"tick" yaml:"tick"`
	From    Behavior `json:"from" yaml:"from"`
	To      Behavior `json:"to" yaml:"to"`
	Elapsed float64  `json:"elapsed" yaml:"elapsed"` // time spent in From
}

func (t Transition) String() string {
	return fmt.Sprintf("%s -> %s", t.From, t.To)
}

// Step is what the machine did during one Update.
type Step struct {
	Tick     uint64   `json:"tick" yaml:"tick"`
	Behavior Behavior `json:"behavior" yaml:"behavior"`
	Linear   float64  `json:"linear" yaml:"linear"`
	Angular  float64  `json:"angular" yaml:"angular"`
	Bumper   bool     `json:"bumper" yaml:"bumper"`
}

// Observer receives machine activity. Calls happen synchronously on the
// goroutine calling Update.
type Observer interface {
	Transitioned(t Transition)
	Stepped(s Step)
}

// ---

// Machine holds exactly one active State and runs it once per tick.
// It is not safe for concurrent use; wrap it (see the realtime package)
// when other goroutines need to read it.
type Machine struct {
	cfg       Config
	rand      Randomizer
	current   State
	ticks     uint64
	log       *zap.Logger
	observers []Observer
	tap       tap
	initial   Behavior
}

//
// Public API
//

// NewMachine validates cfg and creates a machine in its initial behavior
// (ForwardSweep unless WithInitial says otherwise). Without WithRandomizer
// or WithSeed the machine seeds itself from the clock.
func NewMachine(cfg Config, opts ...Option) (*Machine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	m := &Machine{
		cfg:     cfg,
		log:     zap.NewNop(),
		initial: ForwardSweep,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.rand == nil {
		m.rand = NewRandomizer(uint64(time.Now().UnixNano()))
	}
	if !m.initial.Valid() {
		return nil, fmt.Errorf("%w: unknown initial behavior %d", ErrInvalidConfig, m.initial)
	}
	m.current = m.NewState(m.initial)
	return m, nil
}

// NewState constructs a fresh state for b. Rotate draws its direction and
// target angle from the machine's Randomizer at this point.
func (m *Machine) NewState(b Behavior) State {
	switch b {
	case ForwardSweep:
		return &forwardSweep{clock: clock{cfg: &m.cfg}}
	case SpiralSweep:
		return &spiralSweep{clock: clock{cfg: &m.cfg}}
	case Retreat:
		return &retreat{clock: clock{cfg: &m.cfg}}
	case Rotate:
		return newRotate(&m.cfg, m.rand)
	}
	panic(fmt.Sprintf("sweepfsm: unknown behavior %d", b))
}

// ChangeState replaces the active state. Any state may follow any other;
// guards live in each state's CheckTransition. A nil state is ignored.
func (m *Machine) ChangeState(next State) {
	if next == nil {
		return
	}
	prev := m.current
	m.current = next

	t := Transition{
		Tick:    m.ticks,
		From:    prev.Behavior(),
		To:      next.Behavior(),
		Elapsed: prev.Elapsed(),
	}
	m.log.Debug("behavior transition",
		zap.Uint64("tick", t.Tick),
		zap.Stringer("from", t.From),
		zap.Stringer("to", t.To),
		zap.Float64("elapsed", t.Elapsed),
	)
	for _, o := range m.observers {
		o.Transitioned(t)
	}
}

// Update runs one tick: the state active at the start of the tick checks
// its transitions, then the (possibly new) active state executes.
func (m *Machine) Update(a Agent) {
	m.tap.reset(a)
	m.current.CheckTransition(&m.tap, m)
	m.current.Execute(&m.tap)

	s := Step{
		Tick:     m.ticks,
		Behavior: m.current.Behavior(),
		Linear:   m.tap.linear,
		Angular:  m.tap.angular,
		Bumper:   m.tap.bumper,
	}
	m.ticks++
	for _, o := range m.observers {
		o.Stepped(s)
	}
}

// Current returns the active state.
func (m *Machine) Current() State {
	return m.current
}

// Behavior returns the active state's behavior.
func (m *Machine) Behavior() Behavior {
	return m.current.Behavior()
}

// Ticks returns the number of completed Update calls.
func (m *Machine) Ticks() uint64 {
	return m.ticks
}

// Config returns the machine's configuration.
func (m *Machine) Config() Config {
	return m.cfg
}

// Randomizer returns the source Rotate draws from.
func (m *Machine) Randomizer() Randomizer {
	return m.rand
}

//
// Helper Functions (internal API)
//

// tap forwards to the caller's agent and remembers what happened during the
// tick so observers can see it without wrapping the agent themselves.
type tap struct {
	inner   Agent
	linear  float64
	angular float64
	bumper  bool
}

func (t *tap) reset(a Agent) {
	t.inner = a
	t.linear, t.angular, t.bumper = 0, 0, false
}

func (t *tap) SetVelocity(linear, angular float64) {
	t.linear, t.angular = linear, angular
	t.inner.SetVelocity(linear, angular)
}

func (t *tap) BumperState() bool {
	b := t.inner.BumperState()
	t.bumper = t.bumper || b
	return b
}
