package cmd

import (
	"github.com/spf13/cobra"
)

func newRegisterCmd(s *session) *cobra.Command {
	registerCmd := &cobra.Command{
		Use:     "register",
		Aliases: []string{"signup"},
		Short:   "Create a DevLink account",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			username, _ := cmd.Flags().GetString("username")
			email, _ := cmd.Flags().GetString("email")
			password, err := passwordFlag(cmd)
			if err != nil {
				return err
			}

			result, err := s.rt.Service.Register(cmd.Context(), username, email, password)
			if err != nil {
				return err
			}
			return printResult(cmd, result)
		},
	}

	registerCmd.Flags().String("username", "", "account username")
	registerCmd.Flags().String("email", "", "account email")
	registerCmd.Flags().String("password", "", "account password (prompted if omitted)")

	return registerCmd
}
