package production

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"

	"github.com/comalice/sweepfsm"
)

// Trace is the record of one run: enough to replay it tick for tick.
type Trace struct {
	RunID       string                `json:"runID" yaml:"runID"`
	Seed        uint64                `json:"seed" yaml:"seed"`
	Initial     sweepfsm.Behavior     `json:"initial" yaml:"initial"`
	Config      sweepfsm.Config       `json:"config" yaml:"config"`
	Steps       []sweepfsm.Step       `json:"steps" yaml:"steps"`
	Transitions []sweepfsm.Transition `json:"transitions" yaml:"transitions"`
	Started     time.Time             `json:"started" yaml:"started"`
}

// ErrUnseeded is returned by Bind when the machine's randomizer cannot be
// rebuilt from a seed, so its runs cannot be replayed.
var ErrUnseeded = errors.New("randomizer has no seed")

// Recorder builds a Trace. It implements sweepfsm.Observer.
type Recorder struct {
	trace Trace
}

// NewRecorder starts a trace with a fresh run ID. Register it with
// sweepfsm.WithObserver and call Bind on the resulting machine.
func NewRecorder() *Recorder {
	return &Recorder{trace: Trace{
		RunID:   uuid.NewString(),
		Started: time.Now().UTC(),
	}}
}

// Bind takes the config, initial behavior and seed from m. It must be called
// before the first Update so the initial behavior is the one m started in.
func (r *Recorder) Bind(m *sweepfsm.Machine) error {
	seeded, ok := m.Randomizer().(sweepfsm.Seeded)
	if !ok {
		return ErrUnseeded
	}
	r.trace.Config = m.Config()
	r.trace.Initial = m.Behavior()
	r.trace.Seed = seeded.Seed()
	return nil
}

// Transitioned implements sweepfsm.Observer.
func (r *Recorder) Transitioned(t sweepfsm.Transition) {
	r.trace.Transitions = append(r.trace.Transitions, t)
}

// Stepped implements sweepfsm.Observer.
func (r *Recorder) Stepped(s sweepfsm.Step) {
	r.trace.Steps = append(r.trace.Steps, s)
}

// RunID returns the trace's run ID.
func (r *Recorder) RunID() string {
	return r.trace.RunID
}

// Trace returns the trace recorded so far.
func (r *Recorder) Trace() Trace {
	t := r.trace
	t.Steps = append([]sweepfsm.Step(nil), r.trace.Steps...)
	t.Transitions = append([]sweepfsm.Transition(nil), r.trace.Transitions...)
	return t
}

// Summary aggregates a trace.
type Summary struct {
	Ticks       int                           `json:"ticks" yaml:"ticks"`
	Seconds     float64                       `json:"seconds" yaml:"seconds"`
	Transitions int                           `json:"transitions" yaml:"transitions"`
	Contacts    int                           `json:"contacts" yaml:"contacts"`
	Share       map[sweepfsm.Behavior]float64 `json:"share" yaml:"share"`
	LinearMean  float64                       `json:"linearMean" yaml:"linearMean"`
	LinearStd   float64                       `json:"linearStd" yaml:"linearStd"`
	AngularMean float64                       `json:"angularMean" yaml:"angularMean"`
	AngularStd  float64                       `json:"angularStd" yaml:"angularStd"`
}

// Summarize computes time shares per behavior and command statistics.
func (t Trace) Summarize() Summary {
	s := Summary{
		Ticks:       len(t.Steps),
		Seconds:     float64(len(t.Steps)) * t.Config.SampleTime,
		Transitions: len(t.Transitions),
		Share:       make(map[sweepfsm.Behavior]float64, len(sweepfsm.Behaviors)),
	}
	if len(t.Steps) == 0 {
		return s
	}

	linear := make([]float64, len(t.Steps))
	angular := make([]float64, len(t.Steps))
	counts := make(map[sweepfsm.Behavior]int, len(sweepfsm.Behaviors))
	for i, step := range t.Steps {
		linear[i] = step.Linear
		angular[i] = step.Angular
		counts[step.Behavior]++
		if step.Bumper {
			s.Contacts++
		}
	}
	for _, b := range sweepfsm.Behaviors {
		s.Share[b] = float64(counts[b]) / float64(len(t.Steps))
	}
	s.LinearMean, s.LinearStd = stat.MeanStdDev(linear, nil)
	s.AngularMean, s.AngularStd = stat.MeanStdDev(angular, nil)
	return s
}
