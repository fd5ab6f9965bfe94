package cli

import (
	"github.com/spf13/cobra"

	"github.com/comalice/sweepfsm"
)

func (a *App) newConfigCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfigOrDefault(configPath)
			if err != nil {
				return err
			}
			out, err := cfg.YAML()
			if err != nil {
				return err
			}
			_, err = a.stdout.Write(out)
			return err
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "YAML config file")
	return cmd
}

func loadConfigOrDefault(path string) (sweepfsm.Config, error) {
	if path == "" {
		return sweepfsm.DefaultConfig(), nil
	}
	return sweepfsm.LoadConfig(path)
}
