package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/devlink/desktop/internal/auth"
	"github.com/devlink/desktop/internal/bootstrap"
	"github.com/devlink/desktop/internal/config"
	"github.com/devlink/desktop/internal/logging"
	"github.com/devlink/desktop/ui"
)

// session carries what PersistentPreRunE builds to the subcommands.
type session struct {
	verbose bool
	rt      *bootstrap.Runtime
}

// NewRootCmd builds the devlink command tree. Without a subcommand it opens
// the desktop window.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&session{})
}

func newRootCmd(s *session) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "devlink [command] [flags]",
		Short:         "DevLink: log in or sign up to the DevLink API",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.open(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return s.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ui.Run(s.rt.Service, s.rt.Logger)
			return nil
		},
	}

	config.AddFlags(rootCmd.PersistentFlags())
	rootCmd.PersistentFlags().BoolVarP(&s.verbose, "verbose", "v", false, "log to stderr")

	rootCmd.AddCommand(
		newLoginCmd(s),
		newRegisterCmd(s),
		newHistoryCmd(s),
		newGuiCmd(s),
	)

	// cobra skips PersistentPostRunE when RunE fails, so each RunE also
	// closes the session on its way out.
	for _, c := range append([]*cobra.Command{rootCmd}, rootCmd.Commands()...) {
		if c.RunE != nil {
			c.RunE = s.closing(c.RunE)
		}
	}

	return rootCmd
}

// Execute runs the root command and exits non-zero on failure. An interrupt
// cancels any request in flight.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := NewRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		outputErrorAndExit(err)
	}
}

func (s *session) open(cmd *cobra.Command) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}

	// The GUI always logs to stderr; CLI commands keep stdout and stderr
	// for results unless asked.
	console := s.verbose || cmd.Name() == "gui" || !cmd.HasParent()
	logger, err := logging.New(logging.Options{Level: cfg.Log.Level, File: cfg.Log.File, Console: console})
	if err != nil {
		return err
	}

	rt, err := bootstrap.New(cfg, logger)
	if err != nil {
		_ = logger.Sync()
		return err
	}
	s.rt = rt
	return nil
}

// closing wraps run so the session is closed whether or not it fails. A run
// error takes precedence over a close error.
func (s *session) closing(run func(*cobra.Command, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		defer func() {
			if cerr := s.close(); err == nil {
				err = cerr
			}
		}()
		return run(cmd, args)
	}
}

// close is idempotent.
func (s *session) close() error {
	if s.rt == nil {
		return nil
	}
	_ = s.rt.Logger.Sync()
	err := s.rt.Close()
	s.rt = nil
	return err
}

func outputErrorAndExit(err error) {
	color.New(color.FgRed, color.Bold).Fprint(os.Stderr, "🚨 ")
	fmt.Fprintln(os.Stderr, auth.Message(err))
	os.Exit(1)
}
