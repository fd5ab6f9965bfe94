package sweepfsm

import "math"

// clock counts executed samples. Elapsed time is derived from the tick
// count so it never drifts from ticks × SampleTime.
type clock struct {
	cfg   *Config
	ticks uint64
}

func (c *clock) Elapsed() float64 {
	return float64(c.ticks) * c.cfg.SampleTime
}

func (c *clock) advance() {
	c.ticks++
}

func (*clock) seal() {}

// ---

// forwardSweep drives straight ahead.
type forwardSweep struct {
	clock
}

func (*forwardSweep) Behavior() Behavior { return ForwardSweep }

// Contact is checked first so it wins over an expired timer.
func (s *forwardSweep) CheckTransition(a Agent, m *Machine) {
	if a.BumperState() {
		m.ChangeState(m.NewState(Retreat))
		return
	}
	if s.Elapsed() > s.cfg.ForwardDuration {
		m.ChangeState(m.NewState(SpiralSweep))
	}
}

func (s *forwardSweep) Execute(a Agent) {
	a.SetVelocity(s.cfg.ForwardSpeed, 0)
	s.advance()
}

// ---

// spiralSweep drives forward while the turn radius grows linearly with time.
type spiralSweep struct {
	clock
}

func (*spiralSweep) Behavior() Behavior { return SpiralSweep }

func (s *spiralSweep) CheckTransition(a Agent, m *Machine) {
	if a.BumperState() {
		m.ChangeState(m.NewState(Retreat))
		return
	}
	if s.Elapsed() > s.cfg.SpiralDuration {
		m.ChangeState(m.NewState(ForwardSweep))
	}
}

func (s *spiralSweep) Execute(a Agent) {
	a.SetVelocity(s.cfg.ForwardSpeed, s.AngularSpeed())
	s.advance()
}

// AngularSpeed is the turn rate commanded at the current elapsed time.
func (s *spiralSweep) AngularSpeed() float64 {
	radius := s.cfg.InitialSpiralRadius + s.cfg.SpiralGrowthFactor*s.Elapsed()
	return s.cfg.ForwardSpeed / radius
}

// ---

// retreat backs away from an obstacle. The bumper is not read while
// retreating; only the timer ends it.
type retreat struct {
	clock
}

func (*retreat) Behavior() Behavior { return Retreat }

func (s *retreat) CheckTransition(_ Agent, m *Machine) {
	if s.Elapsed() > s.cfg.RetreatDuration {
		m.ChangeState(m.NewState(Rotate))
	}
}

func (s *retreat) Execute(a Agent) {
	a.SetVelocity(s.cfg.BackwardSpeed, 0)
	s.advance()
}

// ---

// rotate spins in place at unit angular speed in a random direction until
// the elapsed time passes the magnitude of a random target angle.
type rotate struct {
	clock
	direction     float64
	target        float64
	reachedTarget bool
}

func newRotate(cfg *Config, r Randomizer) *rotate {
	return &rotate{
		clock:     clock{cfg: cfg},
		direction: r.TurnDirection(),
		target:    r.TargetAngle(),
	}
}

func (*rotate) Behavior() Behavior { return Rotate }

// The flag is set by Execute, so the transition lands one tick after the
// target is passed.
func (s *rotate) CheckTransition(_ Agent, m *Machine) {
	if s.reachedTarget {
		m.ChangeState(m.NewState(ForwardSweep))
	}
}

func (s *rotate) Execute(a Agent) {
	a.SetVelocity(0, s.direction)
	s.advance()
	if s.Elapsed() > math.Abs(s.target) {
		s.reachedTarget = true
	}
}

// Direction is the drawn turn direction, -1 or +1.
func (s *rotate) Direction() float64 { return s.direction }

// TargetAngle is the drawn rotation target in radians.
func (s *rotate) TargetAngle() float64 { return s.target }

// ReachedTarget reports whether the next check will return to ForwardSweep.
func (s *rotate) ReachedTarget() bool { return s.reachedTarget }
