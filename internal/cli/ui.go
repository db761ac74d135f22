package cli

import (
	"github.com/spf13/cobra"
	"github.com/td0m/tasktracker/internal/tui"
)

func newUICmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI(cmd, o)
		},
	}
}

func runUI(cmd *cobra.Command, o *options) error {
	a, done, err := o.open(cmd, true)
	if err != nil {
		return err
	}
	defer done()
	return tui.Run(a)
}
