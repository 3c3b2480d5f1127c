package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/heroman/heroman/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Long: `Create ~/.heroman/config.toml (or the --config path) holding the
built-in defaults. An existing file is left untouched.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			handleError(fmt.Errorf("%w: failed to get home directory: %w", errConfig, err))
		}

		path, err := runInit(homeDir, configPath)
		if err != nil {
			handleError(err)
		}

		printSuccess(os.Stdout, fmt.Sprintf("Created %s", path), jsonOutput)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}

// runInit writes the default config to path, or to the default location
// under homeDir when path is empty. It returns the written path.
func runInit(homeDir, path string) (string, error) {
	if path == "" {
		path = config.DefaultConfigPath(homeDir)
	}
	if err := config.WriteDefault(path, homeDir); err != nil {
		return "", fmt.Errorf("%w: %w", errConfig, err)
	}
	return path, nil
}
