package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"espedit/internal/schema"
	"espedit/internal/validate"
)

func parseMatches(t *testing.T, doc string) *schema.MatchFile {
	t.Helper()
	mf, err := schema.ParseMatchFile([]byte(doc))
	require.NoError(t, err)
	return mf
}

func TestMatchFileValid(t *testing.T) {
	mf := parseMatches(t, `
matches:
  - trigger: ":hi"
    replace: Hello
  - triggers: [":bye", ":cya"]
    replace: Goodbye
`)
	assert.Empty(t, validate.MatchFile(mf))
}

func TestMatchWithoutTrigger(t *testing.T) {
	mf := parseMatches(t, `
matches:
  - replace: orphan
`)
	issues := validate.MatchFile(mf)
	require.Len(t, issues, 1)
	assert.Equal(t, validate.Error, issues[0].Severity)
	assert.Equal(t, "matches[0].trigger", issues[0].Field)
	assert.Equal(t, []int{0}, issues[0].Refs)
}

func TestMatchWithBlankTrigger(t *testing.T) {
	mf := parseMatches(t, `
matches:
  - trigger: "   "
    replace: something
`)
	issues := validate.MatchFile(mf)
	require.Len(t, issues, 1)
	assert.Equal(t, validate.Error, issues[0].Severity)
}

func TestMatchWithEmptyReplace(t *testing.T) {
	mf := parseMatches(t, `
matches:
  - trigger: ":todo"
    replace: ""
`)
	issues := validate.MatchFile(mf)
	require.Len(t, issues, 1)
	assert.Equal(t, validate.Warning, issues[0].Severity)
	assert.Equal(t, "matches[0].replace", issues[0].Field)
	assert.False(t, validate.HasErrors(issues))
	assert.True(t, validate.HasWarnings(issues))
}

func TestMatchWithFormInsteadOfReplace(t *testing.T) {
	mf := parseMatches(t, `
matches:
  - trigger: ":form"
    form: |
      Name: [[name]]
`)
	assert.Empty(t, validate.MatchFile(mf))
}

func TestDuplicateTriggers(t *testing.T) {
	mf := parseMatches(t, `
matches:
  - trigger: ":date"
    replace: one
  - trigger: ":date"
    replace: two
  - trigger: ":other"
    replace: three
`)
	issues := validate.MatchFile(mf)
	require.Len(t, issues, 1)
	assert.Equal(t, validate.Error, issues[0].Severity)
	assert.Equal(t, "matches", issues[0].Field)
	assert.Contains(t, issues[0].Message, `":date"`)
	assert.Equal(t, []int{0, 1}, issues[0].Refs)
}

func TestDuplicateAcrossTriggersList(t *testing.T) {
	mf := parseMatches(t, `
matches:
  - trigger: ":hi"
    replace: one
  - triggers: [":hey", ":hi"]
    replace: two
`)
	issues := validate.MatchFile(mf)
	require.Len(t, issues, 1)
	assert.Equal(t, []int{0, 1}, issues[0].Refs)
}

func TestConfigNegativeDelays(t *testing.T) {
	threshold := -1
	delay := -200
	cfg := &schema.Config{
		ClipboardThreshold: &threshold,
		InjectDelay:        &delay,
	}
	issues := validate.Config(cfg)
	require.Len(t, issues, 2)
	assert.True(t, validate.HasErrors(issues))
	assert.Equal(t, "clipboard_threshold", issues[0].Field)
	assert.Equal(t, "inject_delay", issues[1].Field)
}

func TestConfigBadIncludePattern(t *testing.T) {
	cfg := &schema.Config{
		Includes: []string{"../match/other/*.yml", "[", ""},
	}
	issues := validate.Config(cfg)
	require.Len(t, issues, 2)
	for _, issue := range issues {
		assert.Equal(t, validate.Warning, issue.Severity)
	}
	assert.Equal(t, "includes[1]", issues[0].Field)
	assert.Equal(t, "includes[2]", issues[1].Field)
	assert.False(t, validate.HasErrors(issues))
}

func TestIssueString(t *testing.T) {
	issue := validate.Issue{
		Severity: validate.Error,
		Field:    "matches[3].trigger",
		Message:  "match has no trigger",
	}
	assert.Equal(t, "error: matches[3].trigger: match has no trigger", issue.String())
}

func TestDocumentDispatch(t *testing.T) {
	doc, err := schema.ParseDocument(schema.MatchFileKind, []byte("matches:\n  - replace: x\n"))
	require.NoError(t, err)
	assert.True(t, validate.HasErrors(validate.Document(doc)))

	doc, err = schema.ParseDocument(schema.ConfigKind, []byte("backend: Auto\n"))
	require.NoError(t, err)
	assert.Empty(t, validate.Document(doc))
}
