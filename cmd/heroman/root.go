package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "heroman",
	Short: "Habitica Clone habit tracker",
	Long: `A habit tracker that turns habits, dailies and to-dos into an RPG.

Run without a subcommand to open the terminal UI.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runTUI(cmd.Context()); err != nil {
			handleError(err)
		}
	},
}

// Global flags
var (
	jsonOutput bool
	dbPath     string
	configPath string
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the SQLite database (overrides config and HEROMAN_DB)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the config file (default ~/.heroman/config.toml)")
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitGeneralError)
	}
}
