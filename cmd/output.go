package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devlink/desktop/internal/auth"
	"github.com/devlink/desktop/internal/json"
)

// printResult writes the service's response, unchanged, as indented JSON.
func printResult(cmd *cobra.Command, result auth.Result) error {
	out, err := json.MarshalIndent(result.Body, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to format response: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return err
}
