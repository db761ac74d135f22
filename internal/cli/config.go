package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/td0m/tasktracker/internal/config"
)

func newConfigCmd(o *options) *cobra.Command {
	var paths bool
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if paths {
				fmt.Fprintln(out, "user:   ", config.UserConfigPath())
				fmt.Fprintln(out, "project:", config.ProjectConfigPath())
				fmt.Fprintln(out, "data:   ", config.DataDir())
				return nil
			}
			cfg, err := o.loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			data, err := cfg.YAML()
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}
			fmt.Fprint(out, data)
			return nil
		},
	}
	cmd.Flags().BoolVar(&paths, "paths", false, "show where configuration and data are read from")
	return cmd
}
