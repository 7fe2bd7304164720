package cmd

import (
	"github.com/spf13/cobra"

	"github.com/devlink/desktop/ui"
)

func newGuiCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "gui",
		Short: "Open the DevLink login window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ui.Run(s.rt.Service, s.rt.Logger)
			return nil
		},
	}
}
