package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/comalice/sweepfsm/internal/production"
)

func (a *App) newReplayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "replay <trace-file>",
		Short: "Re-run a recorded trace and check it reproduces tick for tick",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			trace, err := production.LoadTraceFile(args[0])
			if err != nil {
				return err
			}
			if _, err := production.Replay(trace, a.log); err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "replay of %s matched %d ticks, %d transitions\n",
				trace.RunID, len(trace.Steps), len(trace.Transitions))
			return nil
		},
	}
}
