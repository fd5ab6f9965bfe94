package benchmarks

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/comalice/sweepfsm"
	"github.com/comalice/sweepfsm/internal/production"
)

// BenchmarkClosedLoop measures one machine update plus one robot step.
func BenchmarkClosedLoop(b *testing.B) {
	m, robot := NewRun(1)
	dt := m.Config().SampleTime

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.Update(robot)
		robot.Advance(dt)
	}
	b.ReportMetric(float64(m.Ticks())*dt/b.Elapsed().Seconds(), "sim-s/s")
}

// BenchmarkClosedLoopObserved adds the recorder and Prometheus metrics.
func BenchmarkClosedLoopObserved(b *testing.B) {
	metrics, err := production.NewMetrics(prometheus.NewRegistry())
	if err != nil {
		b.Fatal(err)
	}
	rec := production.NewRecorder()
	m, robot := NewRun(1, sweepfsm.WithObserver(rec), sweepfsm.WithObserver(metrics))
	if err := rec.Bind(m); err != nil {
		b.Fatal(err)
	}
	dt := m.Config().SampleTime

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.Update(robot)
		robot.Advance(dt)
	}
}

// BenchmarkReplay measures replaying a one-minute trace.
func BenchmarkReplay(b *testing.B) {
	trace := GenTrace(1, 6000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := production.Replay(trace, nil); err != nil {
			b.Fatal(err)
		}
	}
}
