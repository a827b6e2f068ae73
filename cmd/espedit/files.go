package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"espedit/internal/fsio"
	"espedit/internal/workspace"
)

func filesCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "files",
		Short: "List match files",
		Long:  `List the match files of the espanso directory, one name per line.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := resolveDir(dir)
			if err != nil {
				return err
			}
			if !workspace.Valid(target) {
				return fmt.Errorf("%s is not a valid espanso directory", target)
			}
			stems, err := workspace.MatchFiles(target)
			if err != nil {
				return err
			}
			for _, stem := range stems {
				fmt.Println(stem)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&dir, "dir", "d", "", "espanso directory to list")
	return cmd
}

func newCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "new <name>",
		Short: "Create a match file",
		Long:  `Create an empty match file in the espanso directory.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := resolveDir(dir)
			if err != nil {
				return err
			}
			if !workspace.Valid(target) {
				return fmt.Errorf("%s is not a valid espanso directory", target)
			}
			path, err := workspace.CreateMatchFile(fsio.NewOS(), target, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Created %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&dir, "dir", "d", "", "espanso directory")
	return cmd
}
