package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/comalice/sweepfsm"
	"github.com/comalice/sweepfsm/internal/production"
)

func (a *App) newGraphCmd() *cobra.Command {
	var (
		format     string
		current    string
		configPath string
	)
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Print the behavior graph as Graphviz DOT or JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfigOrDefault(configPath)
			if err != nil {
				return err
			}
			v := &production.DefaultVisualizer{}
			switch format {
			case "dot":
				var active sweepfsm.Behavior
				if current != "" {
					if active, err = sweepfsm.ParseBehavior(current); err != nil {
						return err
					}
				}
				_, err = fmt.Fprint(a.stdout, v.ExportDOT(cfg, active))
				return err
			case "json":
				data, err := v.ExportJSON(cfg)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(a.stdout, string(data))
				return err
			}
			return fmt.Errorf("unknown format %q", format)
		},
	}
	cmd.Flags().StringVar(&format, "format", "dot", "output format: dot or json")
	cmd.Flags().StringVar(&current, "current", "", "behavior to highlight")
	cmd.Flags().StringVar(&configPath, "config", "", "YAML config file")
	return cmd
}
