// Package cli provides the sweepbot command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/comalice/sweepfsm/internal/logging"
)

// Version information set at build time.
var (
	Version   = "dev"
	GitCommit = "unknown"
)

// App represents the CLI application.
type App struct {
	root     *cobra.Command
	stdout   io.Writer
	stderr   io.Writer
	logLevel string
	log      *zap.Logger
}

// New creates a new CLI application.
func New() *App {
	app := &App{
		stdout: os.Stdout,
		stderr: os.Stderr,
		log:    zap.NewNop(),
	}

	app.root = &cobra.Command{
		Use:   "sweepbot",
		Short: "Reactive sweep controller for a cleaning robot",
		Long: `sweepbot runs the sweep behavior machine (forward sweep, spiral sweep,
retreat, rotate) against a simulated robot in a rectangular room, and
records, replays and visualizes its runs.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log, err := logging.New(app.logLevel)
			if err != nil {
				return err
			}
			app.log = log
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = app.log.Sync()
		},
	}
	app.root.PersistentFlags().StringVar(&app.logLevel, "log-level", "warn",
		"log level: debug, info, warn, error, development or production")

	// Add subcommands
	app.root.AddCommand(
		app.newVersionCmd(),
		app.newRunCmd(),
		app.newReplayCmd(),
		app.newGraphCmd(),
		app.newConfigCmd(),
	)

	return app
}

// WithOutput sets custom output writers.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	a.root.SetOut(stdout)
	a.root.SetErr(stderr)
	return a
}

// Execute runs the CLI application.
func (a *App) Execute(ctx context.Context) error {
	// Set up signal handling
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return a.root.ExecuteContext(ctx)
}

// ExecuteWithArgs runs the CLI with specific arguments (useful for testing).
func (a *App) ExecuteWithArgs(ctx context.Context, args []string) error {
	a.root.SetArgs(args)
	return a.Execute(ctx)
}

// newVersionCmd creates the version command.
func (a *App) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.stdout, "sweepbot version %s (%s)\n", Version, GitCommit)
		},
	}
}
