package production

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/comalice/sweepfsm"
)

// Metrics exports machine activity to Prometheus. It implements
// sweepfsm.Observer.
type Metrics struct {
	ticks       prometheus.Counter
	transitions *prometheus.CounterVec
	active      *prometheus.GaugeVec
	contacts    prometheus.Counter
	linear      prometheus.Gauge
	angular     prometheus.Gauge

	last sweepfsm.Behavior
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sweepfsm",
			Name:      "ticks_total",
			Help:      "The total number of machine updates",
		}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sweepfsm",
			Name:      "transitions_total",
			Help:      "Behavior transitions by source and target",
		}, []string{"from", "to"}),
		active: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "sweepfsm",
			Name:      "behavior_active",
			Help:      "1 for the active behavior, 0 otherwise",
		}, []string{"behavior"}),
		contacts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sweepfsm",
			Name:      "bumper_contacts_total",
			Help:      "Ticks on which the bumper was read as pressed",
		}),
		linear: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "sweepfsm",
			Name:      "command_linear_velocity",
			Help:      "Last commanded linear velocity in m/s",
		}),
		angular: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "sweepfsm",
			Name:      "command_angular_velocity",
			Help:      "Last commanded angular velocity in rad/s",
		}),
	}

	for _, c := range []prometheus.Collector{m.ticks, m.transitions, m.active, m.contacts, m.linear, m.angular} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	for _, b := range sweepfsm.Behaviors {
		m.active.WithLabelValues(b.String()).Set(0)
	}
	return m, nil
}

// Transitioned implements sweepfsm.Observer.
func (m *Metrics) Transitioned(t sweepfsm.Transition) {
	m.transitions.WithLabelValues(t.From.String(), t.To.String()).Inc()
}

// Stepped implements sweepfsm.Observer.
func (m *Metrics) Stepped(s sweepfsm.Step) {
	m.ticks.Inc()
	if s.Bumper {
		m.contacts.Inc()
	}
	m.linear.Set(s.Linear)
	m.angular.Set(s.Angular)
	if s.Behavior != m.last {
		if m.last.Valid() {
			m.active.WithLabelValues(m.last.String()).Set(0)
		}
		m.active.WithLabelValues(s.Behavior.String()).Set(1)
		m.last = s.Behavior
	}
}
