// Package validate checks documents for semantic problems before a
// save. Validation is pure: it never mutates the model and never
// fails, it only reports issues.
package validate

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"

	"espedit/internal/schema"
)

// Severity classifies an issue. Errors block a save; warnings allow it
// after user confirmation.
type Severity int

// Severities
const (
	Warning Severity = iota
	Error
)

func (s Severity) String() string {
	if s == Error {
		return "error"
	}
	return "warning"
}

// Issue is one validation finding. Field is a human-readable reference
// to the offending field; Refs holds the indices of every match entry
// involved, when the issue concerns the matches list.
type Issue struct {
	Severity Severity
	Field    string
	Message  string
	Refs     []int
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s: %s", i.Severity, i.Field, i.Message)
}

// HasErrors reports whether any issue carries Error severity.
func HasErrors(issues []Issue) bool {
	for _, issue := range issues {
		if issue.Severity == Error {
			return true
		}
	}
	return false
}

// HasWarnings reports whether any issue carries Warning severity.
func HasWarnings(issues []Issue) bool {
	for _, issue := range issues {
		if issue.Severity == Warning {
			return true
		}
	}
	return false
}

// Config checks a configuration document.
func Config(cfg *schema.Config) []Issue {
	var issues []Issue

	nonNegative := func(field string, v *int) {
		if v != nil && *v < 0 {
			issues = append(issues, Issue{
				Severity: Error,
				Field:    field,
				Message:  fmt.Sprintf("must not be negative, got %d", *v),
			})
		}
	}
	nonNegative("clipboard_threshold", cfg.ClipboardThreshold)
	nonNegative("backspace_limit", cfg.BackspaceLimit)
	nonNegative("inject_delay", cfg.InjectDelay)
	nonNegative("key_delay", cfg.KeyDelay)
	nonNegative("backspace_delay", cfg.BackspaceDelay)
	nonNegative("pre_paste_delay", cfg.PrePasteDelay)
	nonNegative("restore_clipboard_delay", cfg.RestoreClipboardDelay)
	nonNegative("paste_shortcut_event_delay", cfg.PasteShortcutEventDelay)
	nonNegative("evdev_modifier_delay", cfg.EvdevModifierDelay)
	nonNegative("post_form_delay", cfg.PostFormDelay)
	nonNegative("post_search_delay", cfg.PostSearchDelay)

	issues = append(issues, checkGlobs("includes", cfg.Includes)...)
	issues = append(issues, checkGlobs("excludes", cfg.Excludes)...)
	issues = append(issues, checkGlobs("extra_includes", cfg.ExtraIncludes)...)
	issues = append(issues, checkGlobs("extra_excludes", cfg.ExtraExcludes)...)

	return issues
}

// checkGlobs warns about include/exclude entries espanso would reject
// as path patterns.
func checkGlobs(field string, patterns []string) []Issue {
	var issues []Issue
	for i, pattern := range patterns {
		if strings.TrimSpace(pattern) == "" {
			issues = append(issues, Issue{
				Severity: Warning,
				Field:    fmt.Sprintf("%s[%d]", field, i),
				Message:  "empty pattern",
			})
			continue
		}
		if _, err := glob.Compile(pattern, '/'); err != nil {
			issues = append(issues, Issue{
				Severity: Warning,
				Field:    fmt.Sprintf("%s[%d]", field, i),
				Message:  fmt.Sprintf("not a valid glob pattern: %v", err),
			})
		}
	}
	return issues
}

// MatchFile checks a match document.
func MatchFile(mf *schema.MatchFile) []Issue {
	var issues []Issue

	// A match must be reachable through some trigger.
	for i := range mf.Matches {
		m := &mf.Matches[i]
		if !m.HasTrigger() || allBlank(m.TriggerStrings()) {
			issues = append(issues, Issue{
				Severity: Error,
				Field:    fmt.Sprintf("matches[%d].trigger", i),
				Message:  "match has no trigger",
				Refs:     []int{i},
			})
		}
		if isBlank(m.Replace) && isBlank(m.Form) {
			issues = append(issues, Issue{
				Severity: Warning,
				Field:    fmt.Sprintf("matches[%d].replace", i),
				Message:  "replacement is empty",
				Refs:     []int{i},
			})
		}
	}

	// Duplicate triggers within one file shadow each other. One issue
	// per trigger string, referencing every entry that uses it.
	seen := make(map[string][]int)
	order := []string{}
	for i := range mf.Matches {
		for _, trigger := range mf.Matches[i].TriggerStrings() {
			if strings.TrimSpace(trigger) == "" {
				continue
			}
			if _, ok := seen[trigger]; !ok {
				order = append(order, trigger)
			}
			seen[trigger] = append(seen[trigger], i)
		}
	}
	for _, trigger := range order {
		refs := seen[trigger]
		if len(refs) > 1 {
			issues = append(issues, Issue{
				Severity: Error,
				Field:    "matches",
				Message:  fmt.Sprintf("trigger %q is used by %d matches", trigger, len(refs)),
				Refs:     refs,
			})
		}
	}

	return issues
}

// Document validates whichever variant the document holds.
func Document(doc schema.Document) []Issue {
	switch doc.Kind {
	case schema.ConfigKind:
		return Config(doc.Config)
	case schema.MatchFileKind:
		return MatchFile(doc.MatchFile)
	}
	return nil
}

func isBlank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}

func allBlank(ss []string) bool {
	for _, s := range ss {
		if strings.TrimSpace(s) != "" {
			return false
		}
	}
	return true
}
