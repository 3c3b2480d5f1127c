package main

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/heroman/heroman/internal/service"
)

var playerCmd = &cobra.Command{
	Use:   "player",
	Short: "Show player stats",
	Long:  `Display health, experience, gold and attributes of the player.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		withApp(cmd.Context(), func(a *app) error {
			return runPlayer(cmd.Context(), os.Stdout, a.svc)
		})
	},
}

func init() {
	rootCmd.AddCommand(playerCmd)
}

func runPlayer(ctx context.Context, w io.Writer, svc *service.HabitService) error {
	player, err := svc.Player(ctx)
	if err != nil {
		return err
	}
	printPlayer(w, player, jsonOutput)
	return nil
}
