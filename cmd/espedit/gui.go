package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"espedit/internal/gui"
	"espedit/internal/log"
	"espedit/internal/workspace"
)

func guiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gui",
		Short: "Launch the graphical editor",
		Long:  `Launch the graphical editor for espanso match files and configuration.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI()
		},
	}
}

func runGUI() error {
	settingsPath, err := workspace.SettingsPath()
	if err != nil {
		return fmt.Errorf("could not determine settings path: %w", err)
	}
	settings, err := workspace.LoadSettings()
	if err != nil {
		log.Warnf("Could not load settings, using defaults: %v", err)
		settings = &workspace.Settings{}
	}
	if settings.Debug {
		log.SetDebug(true)
	}

	app, err := gui.NewFactory(settings, settingsPath).Create()
	if err != nil {
		return err
	}
	app.Run()
	return nil
}
