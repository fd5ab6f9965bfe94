package sweepfsm

import (
	"go.uber.org/zap"
)

// Option applies configuration to Machine via functional options pattern.
type Option func(*Machine)

// WithInitial sets the behavior the machine starts in.
func WithInitial(b Behavior) Option {
	return func(m *Machine) {
		m.initial = b
	}
}

// WithRandomizer sets the source Rotate draws from.
func WithRandomizer(r Randomizer) Option {
	return func(m *Machine) {
		m.rand = r
	}
}

// WithSeed is shorthand for WithRandomizer(NewRandomizer(seed)).
func WithSeed(seed uint64) Option {
	return WithRandomizer(NewRandomizer(seed))
}

// WithLogger logs transitions at debug level.
func WithLogger(l *zap.Logger) Option {
	return func(m *Machine) {
		if l != nil {
			m.log = l
		}
	}
}

// WithObserver registers an observer. May be given more than once.
func WithObserver(o Observer) Option {
	return func(m *Machine) {
		if o != nil {
			m.observers = append(m.observers, o)
		}
	}
}
