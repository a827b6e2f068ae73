package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"espedit/internal/schema"
	"espedit/internal/validate"
	"espedit/internal/workspace"
)

var (
	validateErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F"))
	validateWarnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB454"))
	validateOKStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#73F59F"))
	validateFileStyle  = lipgloss.NewStyle().Bold(true)
)

func validateCmd() *cobra.Command {
	var dir string
	var asConfig bool

	cmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate espanso YAML files",
		Long: `Validate a single espanso YAML file, or the whole espanso directory
when no file is given. Exits non-zero when any file has errors.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				kind := schema.MatchFileKind
				if asConfig {
					kind = schema.ConfigKind
				}
				failed, err := validateFile(args[0], kind)
				if err != nil {
					return err
				}
				if failed {
					os.Exit(1)
				}
				return nil
			}

			target, err := resolveDir(dir)
			if err != nil {
				return err
			}
			if !workspace.Valid(target) {
				return fmt.Errorf("%s is not a valid espanso directory", target)
			}

			anyFailed := false
			failed, err := validateFile(workspace.ConfigPath(target), schema.ConfigKind)
			if err != nil {
				return err
			}
			anyFailed = anyFailed || failed

			stems, err := workspace.MatchFiles(target)
			if err != nil {
				return err
			}
			for _, stem := range stems {
				failed, err := validateFile(workspace.MatchFilePath(target, stem), schema.MatchFileKind)
				if err != nil {
					return err
				}
				anyFailed = anyFailed || failed
			}

			if anyFailed {
				os.Exit(1)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&dir, "dir", "d", "", "espanso directory to validate")
	cmd.Flags().BoolVar(&asConfig, "config", false, "treat the file as a config document")
	return cmd
}

// validateFile prints the issues of a single file and reports whether
// it failed to parse or has error-severity issues.
func validateFile(path string, kind schema.DocKind) (bool, error) {
	fmt.Println(validateFileStyle.Render(path))

	data, err := os.ReadFile(path)
	if err != nil {
		return true, err
	}
	doc, err := schema.ParseDocument(kind, data)
	if err != nil {
		fmt.Println("  " + validateErrorStyle.Render(err.Error()))
		return true, nil
	}

	issues := validate.Document(doc)
	if len(issues) == 0 {
		fmt.Println("  " + validateOKStyle.Render("ok"))
		return false, nil
	}

	failed := false
	for _, issue := range issues {
		style := validateWarnStyle
		if issue.Severity == validate.Error {
			style = validateErrorStyle
			failed = true
		}
		fmt.Println("  " + style.Render(strings.TrimSpace(issue.String())))
	}
	return failed, nil
}
