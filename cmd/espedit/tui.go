package main

import (
	"github.com/spf13/cobra"

	"espedit/internal/tui"
)

func tuiCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Browse match files in the terminal",
		Long:  `Browse match files and their validation status in an interactive terminal interface.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := resolveDir(dir)
			if err != nil {
				return err
			}
			return tui.Run(target)
		},
	}
	cmd.Flags().StringVarP(&dir, "dir", "d", "", "espanso directory to open")
	return cmd
}
