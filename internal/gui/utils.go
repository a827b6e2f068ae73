package gui

import (
	"strings"

	"espedit/internal/errors"
	"espedit/internal/validate"
)

// formatIssues renders validation issues for a dialog body.
func formatIssues(issues []validate.Issue) string {
	lines := make([]string, 0, len(issues))
	for _, issue := range issues {
		lines = append(lines, issue.String())
	}
	return strings.Join(lines, "\n")
}

// issuesError wraps issues into an error for dialog.ShowError.
func issuesError(issues []validate.Issue) error {
	return errors.New(formatIssues(issues))
}
