package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"espedit/internal/errors"
	"espedit/internal/schema"
)

const basicConfigYAML = `
backend: Clipboard
toggle_key: ALT
undo_backspace: false
backspace_limit: 5
word_separators: [" ", ",", "."]
keyboard_layout:
  layout: us
`

func TestParseConfigKnownOptions(t *testing.T) {
	cfg, err := schema.ParseConfig([]byte(basicConfigYAML))
	require.NoError(t, err)

	require.NotNil(t, cfg.Backend)
	assert.Equal(t, "Clipboard", *cfg.Backend)
	require.NotNil(t, cfg.ToggleKey)
	assert.Equal(t, "ALT", *cfg.ToggleKey)
	require.NotNil(t, cfg.UndoBackspace)
	assert.False(t, *cfg.UndoBackspace)
	require.NotNil(t, cfg.BackspaceLimit)
	assert.Equal(t, 5, *cfg.BackspaceLimit)
	assert.Equal(t, []string{" ", ",", "."}, cfg.WordSeparators)

	layout, ok := cfg.KeyboardLayout.Get("layout")
	require.True(t, ok)
	assert.Equal(t, "us", layout.Str)

	// Options absent from the document stay nil.
	assert.Nil(t, cfg.Enable)
	assert.Nil(t, cfg.ClipboardThreshold)
	assert.Empty(t, cfg.Unknown)
}

func TestParseConfigUnknownKeysPreserved(t *testing.T) {
	cfg, err := schema.ParseConfig([]byte(`
backend: Auto
future_option: 42
nested_option:
  enabled: true
  items:
    - one
    - two
`))
	require.NoError(t, err)

	v, ok := cfg.Unknown.Get("future_option")
	require.True(t, ok)
	assert.Equal(t, schema.IntValue(42), v)

	nested, ok := cfg.Unknown.Get("nested_option")
	require.True(t, ok)
	require.Equal(t, schema.Mapping, nested.Kind)
	enabled, ok := schema.Fields(nested.Map).Get("enabled")
	require.True(t, ok)
	assert.Equal(t, schema.BoolValue(true), enabled)
	items, ok := schema.Fields(nested.Map).Get("items")
	require.True(t, ok)
	require.Equal(t, schema.Sequence, items.Kind)
	require.Len(t, items.Seq, 2)
	assert.Equal(t, "one", items.Seq[0].Str)
}

func TestParseConfigTypeMismatch(t *testing.T) {
	_, err := schema.ParseConfig([]byte("backend: 42\n"))
	require.Error(t, err)
	assert.True(t, errors.IsTypeMismatch(err))

	var perr *errors.ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "backend", perr.Key())
}

func TestParseConfigEmptyDocuments(t *testing.T) {
	for _, doc := range []string{"", "\n\n", "# only a comment\n", "  # indented comment\n\n"} {
		cfg, err := schema.ParseConfig([]byte(doc))
		require.NoError(t, err, "document %q", doc)
		assert.True(t, cfg.Equal(&schema.Config{}))
	}
}

func TestParseConfigMalformed(t *testing.T) {
	_, err := schema.ParseConfig([]byte("includes: [\n"))
	require.Error(t, err)
	assert.True(t, errors.IsMalformed(err))

	_, err = schema.ParseConfig([]byte("- just\n- a\n- list\n"))
	require.Error(t, err)
	assert.True(t, errors.IsMalformed(err))
}

func TestParseMatchFile(t *testing.T) {
	mf, err := schema.ParseMatchFile([]byte(`
matches:
  - trigger: ":espanso"
    replace: "Hi there!"
  - triggers: [":hi", ":hey"]
    replace: "Hello"
    word: true
    propagate_case: true
`))
	require.NoError(t, err)
	require.Len(t, mf.Matches, 2)

	first := mf.Matches[0]
	require.NotNil(t, first.Trigger)
	assert.Equal(t, ":espanso", *first.Trigger)
	require.NotNil(t, first.Replace)
	assert.Equal(t, "Hi there!", *first.Replace)
	assert.Equal(t, []string{":espanso"}, first.TriggerStrings())

	second := mf.Matches[1]
	assert.Nil(t, second.Trigger)
	assert.Equal(t, []string{":hi", ":hey"}, second.TriggerStrings())
	require.NotNil(t, second.Word)
	assert.True(t, *second.Word)
	require.NotNil(t, second.PropagateCase)
	assert.True(t, *second.PropagateCase)
}

func TestParseMatchFileNullMatches(t *testing.T) {
	mf, err := schema.ParseMatchFile([]byte("matches:\n"))
	require.NoError(t, err)
	require.NotNil(t, mf.Matches)
	assert.Empty(t, mf.Matches)
}

func TestParseMatchFileUnknownMatchFields(t *testing.T) {
	mf, err := schema.ParseMatchFile([]byte(`
matches:
  - trigger: ":now"
    replace: "{{mytime}}"
    vars:
      - name: mytime
        type: date
        params:
          format: "%H:%M"
`))
	require.NoError(t, err)
	require.Len(t, mf.Matches, 1)

	vars, ok := mf.Matches[0].Unknown.Get("vars")
	require.True(t, ok)
	require.Equal(t, schema.Sequence, vars.Kind)
	require.Len(t, vars.Seq, 1)
	name, ok := schema.Fields(vars.Seq[0].Map).Get("name")
	require.True(t, ok)
	assert.Equal(t, "mytime", name.Str)
}

func TestParseMatchFileMatchesNotList(t *testing.T) {
	_, err := schema.ParseMatchFile([]byte("matches: nope\n"))
	require.Error(t, err)
	assert.True(t, errors.IsTypeMismatch(err))

	_, err = schema.ParseMatchFile([]byte("matches:\n  - just a string\n"))
	require.Error(t, err)
	assert.True(t, errors.IsTypeMismatch(err))
}

func TestParseDocumentDispatch(t *testing.T) {
	doc, err := schema.ParseDocument(schema.ConfigKind, []byte("backend: Inject\n"))
	require.NoError(t, err)
	require.NotNil(t, doc.Config)
	assert.Nil(t, doc.MatchFile)

	doc, err = schema.ParseDocument(schema.MatchFileKind, []byte("matches: []\n"))
	require.NoError(t, err)
	require.NotNil(t, doc.MatchFile)
	assert.Nil(t, doc.Config)
}
