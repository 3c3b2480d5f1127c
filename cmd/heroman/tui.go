package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/heroman/heroman/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the terminal UI",
	Long: `Open the full-screen habit tracker. This is also what running heroman
without a subcommand does. Logs go to the [log] file from the config.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runTUI(cmd.Context()); err != nil {
			handleError(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// runTUI opens the tracker and runs the terminal UI until the user quits.
// The UI runs the day rollover itself on start.
func runTUI(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM)
	defer stop()

	a, err := openApp(ctx, appOptions{})
	if err != nil {
		return err
	}
	defer a.Close()

	a.log.Info().Str("db", a.cfg.DBPath).Msg("starting tui")
	err = tui.Run(ctx, a.svc, a.log, tui.Options{
		Filter:          a.cfg.Filter,
		Sort:            a.cfg.Sort,
		MessageDuration: a.cfg.MessageDuration,
		Now:             nowFunc,
	})
	if err != nil {
		a.log.Error().Err(err).Msg("tui exited with error")
	}
	return err
}
