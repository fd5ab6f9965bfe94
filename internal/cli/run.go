package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/comalice/sweepfsm"
	"github.com/comalice/sweepfsm/internal/production"
	"github.com/comalice/sweepfsm/realtime"
	"github.com/comalice/sweepfsm/sim"
)

type runOptions struct {
	configPath  string
	seed        uint64
	ticks       int
	initial     string
	roomWidth   float64
	roomHeight  float64
	cellSize    float64
	realtime    bool
	traceDir    string
	traceFormat string
	metricsAddr string
}

// RunReport is printed after a run.
type RunReport struct {
	RunID     string             `yaml:"runID"`
	Seed      uint64             `yaml:"seed"`
	Final     sweepfsm.Behavior  `yaml:"final"`
	Summary   production.Summary `yaml:"summary"`
	Distance  float64            `yaml:"distance"`
	Contacts  int                `yaml:"wallContacts"`
	Coverage  float64            `yaml:"coverage"`
	TraceFile string             `yaml:"traceFile,omitempty"`
}

func (a *App) newRunCmd() *cobra.Command {
	opts := runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the sweep machine against a simulated robot",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("seed") {
				opts.seed = uint64(time.Now().UnixNano())
			}
			report, err := a.run(cmd.Context(), opts)
			if err != nil {
				return err
			}
			out, err := yaml.Marshal(report)
			if err != nil {
				return fmt.Errorf("yaml marshal: %w", err)
			}
			_, err = a.stdout.Write(out)
			return err
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.configPath, "config", "", "YAML config file (defaults apply to missing fields)")
	f.Uint64Var(&opts.seed, "seed", 0, "seed for rotation draws (default: clock)")
	f.IntVar(&opts.ticks, "ticks", 6000, "number of ticks to run")
	f.StringVar(&opts.initial, "initial", sweepfsm.ForwardSweep.String(), "initial behavior")
	f.Float64Var(&opts.roomWidth, "room-width", 4, "room width in meters")
	f.Float64Var(&opts.roomHeight, "room-height", 3, "room height in meters")
	f.Float64Var(&opts.cellSize, "cell", 0.1, "coverage cell size in meters")
	f.BoolVar(&opts.realtime, "realtime", false, "tick at wall-clock rate instead of as fast as possible")
	f.StringVar(&opts.traceDir, "trace-dir", "", "directory to save the run trace in")
	f.StringVar(&opts.traceFormat, "trace-format", "json", "trace format: json or yaml")
	f.StringVar(&opts.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address during the run")
	return cmd
}

func (a *App) run(ctx context.Context, opts runOptions) (RunReport, error) {
	cfg := sweepfsm.DefaultConfig()
	if opts.configPath != "" {
		loaded, err := sweepfsm.LoadConfig(opts.configPath)
		if err != nil {
			return RunReport{}, err
		}
		cfg = loaded
	}
	if opts.ticks <= 0 {
		return RunReport{}, fmt.Errorf("ticks must be positive, got %d", opts.ticks)
	}
	initial, err := sweepfsm.ParseBehavior(opts.initial)
	if err != nil {
		return RunReport{}, err
	}

	robot, err := sim.NewRobot(sim.Room{Width: opts.roomWidth, Height: opts.roomHeight},
		sim.WithCoverage(opts.cellSize))
	if err != nil {
		return RunReport{}, err
	}

	rec := production.NewRecorder()
	machineOpts := []sweepfsm.Option{
		sweepfsm.WithSeed(opts.seed),
		sweepfsm.WithInitial(initial),
		sweepfsm.WithObserver(rec),
		sweepfsm.WithLogger(a.log.With(zap.String("runID", rec.RunID()))),
	}

	if opts.metricsAddr != "" {
		reg := prometheus.NewRegistry()
		metrics, err := production.NewMetrics(reg)
		if err != nil {
			return RunReport{}, err
		}
		machineOpts = append(machineOpts, sweepfsm.WithObserver(metrics))
		stop := a.serveMetrics(opts.metricsAddr, reg)
		defer stop()
	}

	m, err := sweepfsm.NewMachine(cfg, machineOpts...)
	if err != nil {
		return RunReport{}, err
	}
	if err := rec.Bind(m); err != nil {
		return RunReport{}, err
	}

	a.log.Info("run starting",
		zap.String("runID", rec.RunID()),
		zap.Uint64("seed", opts.seed),
		zap.Int("ticks", opts.ticks),
		zap.Bool("realtime", opts.realtime),
	)

	rt := realtime.NewRuntime(m, robot, realtime.Config{
		MaxTicks: uint64(opts.ticks),
		Logger:   a.log,
		OnTick: func(uint64) {
			robot.Advance(cfg.SampleTime)
		},
	})

	if opts.realtime {
		if err := rt.Start(ctx); err != nil {
			return RunReport{}, err
		}
		select {
		case <-rt.Done():
		case <-ctx.Done():
		}
		if err := rt.Stop(); err != nil {
			return RunReport{}, err
		}
	} else {
		for i := 0; i < opts.ticks && ctx.Err() == nil; i++ {
			rt.Step()
		}
	}
	if err := ctx.Err(); err != nil {
		a.log.Warn("run interrupted", zap.Uint64("ticks", rt.GetTickNumber()))
	}

	trace := rec.Trace()
	report := RunReport{
		RunID:    trace.RunID,
		Seed:     trace.Seed,
		Final:    rt.Current(),
		Summary:  trace.Summarize(),
		Distance: robot.Distance(),
		Contacts: robot.Contacts(),
		Coverage: robot.Coverage().Fraction(),
	}

	if opts.traceDir != "" {
		path, err := saveTrace(ctx, opts.traceDir, opts.traceFormat, trace)
		if err != nil {
			return RunReport{}, err
		}
		report.TraceFile = path
	}

	a.log.Info("run finished",
		zap.String("runID", report.RunID),
		zap.Int("transitions", report.Summary.Transitions),
		zap.Float64("coverage", report.Coverage),
	)
	return report, nil
}

func saveTrace(ctx context.Context, dir, format string, trace production.Trace) (string, error) {
	switch format {
	case "json":
		p, err := production.NewJSONPersister(dir)
		if err != nil {
			return "", err
		}
		return p.Path(trace.RunID), p.Save(ctx, trace)
	case "yaml":
		p, err := production.NewYAMLPersister(dir)
		if err != nil {
			return "", err
		}
		return p.Path(trace.RunID), p.Save(ctx, trace)
	}
	return "", fmt.Errorf("unknown trace format %q", format)
}

// serveMetrics exposes reg on addr until the returned stop func is called.
func (a *App) serveMetrics(addr string, reg *prometheus.Registry) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("metrics server failed", zap.Error(err))
		}
	}()
	a.log.Info("serving metrics", zap.String("addr", addr))

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
