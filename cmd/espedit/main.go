package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"espedit/internal/log"
	"espedit/internal/workspace"
)

var (
	version = "dev"
)

// Entry point for the application
func main() {
	var debug bool

	rootCmd := &cobra.Command{
		Use:     "espedit",
		Short:   "An editor for espanso configuration",
		Long:    `Espedit edits espanso match files and configuration without losing unknown options or comments about file layout.`,
		Version: version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if debug {
				log.SetDebug(true)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI()
		},
	}
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(guiCmd())
	rootCmd.AddCommand(tuiCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(filesCmd())
	rootCmd.AddCommand(newCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// resolveDir picks the espanso directory from the flag, the saved
// settings, or the platform default, in that order.
func resolveDir(flagDir string) (string, error) {
	if flagDir != "" {
		return flagDir, nil
	}
	settings, err := workspace.LoadSettings()
	if err == nil && settings.EspansoDir != "" {
		return settings.EspansoDir, nil
	}
	dir := workspace.DefaultDir()
	if dir == "" {
		return "", fmt.Errorf("could not determine espanso directory")
	}
	return dir, nil
}
