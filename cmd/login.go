package cmd

import (
	"github.com/spf13/cobra"
)

func newLoginCmd(s *session) *cobra.Command {
	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with email and password",
		Long: `Log in with email and password.

The password is read from --password if given, otherwise prompted for.
On success the API's response is printed as JSON.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			email, _ := cmd.Flags().GetString("email")
			password, err := passwordFlag(cmd)
			if err != nil {
				return err
			}

			result, err := s.rt.Service.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			return printResult(cmd, result)
		},
	}

	loginCmd.Flags().String("email", "", "account email")
	loginCmd.Flags().String("password", "", "account password (prompted if omitted)")

	return loginCmd
}
