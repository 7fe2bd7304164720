package cmd

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/devlink/desktop/core"
	"github.com/devlink/desktop/internal/bootstrap"
)

func newHistoryCmd(s *session) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent login and signup attempts from the local journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			clearAll, _ := cmd.Flags().GetBool("clear")

			journal := s.rt.Journal
			if journal == nil {
				var err error
				journal, err = bootstrap.OpenJournal(s.rt.Config)
				if err != nil {
					return err
				}
				defer journal.Close()
			}

			if clearAll {
				if err := journal.ClearAttempts(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "✅ Journal cleared")
				return nil
			}

			attempts, err := journal.RecentAttempts(cmd.Context(), limit)
			if err != nil {
				return err
			}
			renderAttempts(cmd, attempts)
			return nil
		},
	}

	historyCmd.Flags().IntP("limit", "n", 20, "number of attempts to show")
	historyCmd.Flags().Bool("clear", false, "delete all recorded attempts")

	return historyCmd
}

func renderAttempts(cmd *cobra.Command, attempts []core.Attempt) {
	out := cmd.OutOrStdout()
	if len(attempts) == 0 {
		fmt.Fprintln(out, "🤷‍♂️ No attempts recorded. Enable the journal with --journal or DEVLINK_JOURNAL_ENABLED=true")
		return
	}

	table := tablewriter.NewWriter(out)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"When", "Op", "Email", "Result", "Status", "Message"})

	for _, a := range attempts {
		outcome := color.New(color.FgGreen).Sprint("ok")
		if !a.Success {
			outcome = color.New(color.FgRed).Sprint("failed")
		}

		status := ""
		if a.Status != 0 {
			status = strconv.Itoa(a.Status)
		}

		table.Append([]string{
			a.StartedAt.Local().Format("2006-01-02 15:04:05"),
			a.Op,
			a.Email,
			outcome,
			status,
			a.Message,
		})
	}
	table.Render()
}
