package schema_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"espedit/internal/schema"
)

// keyPositions returns the byte offset of each top-level "key:" in the
// serialized document, for asserting relative order.
func keyPositions(t *testing.T, data []byte, keys ...string) []int {
	t.Helper()
	out := make([]int, 0, len(keys))
	text := string(data)
	for _, key := range keys {
		pos := strings.Index(text, "\n"+key+":")
		if pos < 0 && strings.HasPrefix(text, key+":") {
			pos = 0
		}
		require.GreaterOrEqual(t, pos, 0, "key %q missing from output:\n%s", key, text)
		out = append(out, pos)
	}
	return out
}

func TestConfigRoundTripPreservesContent(t *testing.T) {
	input := []byte(`toggle_key: "OFF"
future_option: 42
backend: Clipboard
search_trigger: jerry
`)
	cfg, err := schema.ParseConfig(input)
	require.NoError(t, err)

	out, err := schema.SerializeConfig(cfg)
	require.NoError(t, err)

	reparsed, err := schema.ParseConfig(out)
	require.NoError(t, err)
	assert.True(t, cfg.Equal(reparsed), "round trip changed the document:\n%s", out)
	assert.Empty(t, cmp.Diff(cfg.Unknown, reparsed.Unknown))
}

func TestConfigRoundTripPreservesKeyOrder(t *testing.T) {
	input := []byte(`toggle_key: "OFF"
future_option: 42
backend: Clipboard
`)
	cfg, err := schema.ParseConfig(input)
	require.NoError(t, err)

	out, err := schema.SerializeConfig(cfg)
	require.NoError(t, err)

	// Keys keep their on-disk order, including the unknown one between
	// two known ones.
	positions := keyPositions(t, out, "toggle_key", "future_option", "backend")
	assert.True(t, positions[0] < positions[1] && positions[1] < positions[2],
		"key order not preserved:\n%s", out)
}

func TestUnknownKeySurvivesUnrelatedEdit(t *testing.T) {
	cfg, err := schema.ParseConfig([]byte("future_option: 42\nbackend: Auto\n"))
	require.NoError(t, err)

	backend := "Clipboard"
	cfg.Backend = &backend

	out, err := schema.SerializeConfig(cfg)
	require.NoError(t, err)

	reparsed, err := schema.ParseConfig(out)
	require.NoError(t, err)
	v, ok := reparsed.Unknown.Get("future_option")
	require.True(t, ok)
	assert.Equal(t, schema.IntValue(42), v)
	assert.Equal(t, "Clipboard", *reparsed.Backend)
}

func TestConfigSerializeAppendsNewOptionsAtEnd(t *testing.T) {
	cfg, err := schema.ParseConfig([]byte("backend: Auto\n"))
	require.NoError(t, err)

	trigger := "jerry"
	cfg.SearchTrigger = &trigger

	out, err := schema.SerializeConfig(cfg)
	require.NoError(t, err)

	positions := keyPositions(t, out, "backend", "search_trigger")
	assert.Less(t, positions[0], positions[1])
}

func TestConfigSerializeIdempotent(t *testing.T) {
	cfg, err := schema.ParseConfig([]byte(`
backend: Clipboard
word_separators: [" ", ","]
custom_thing:
  a: 1
  b: [x, y]
`))
	require.NoError(t, err)

	first, err := schema.SerializeConfig(cfg)
	require.NoError(t, err)

	reparsed, err := schema.ParseConfig(first)
	require.NoError(t, err)
	second, err := schema.SerializeConfig(reparsed)
	require.NoError(t, err)

	assert.Empty(t, cmp.Diff(string(first), string(second)))
}

func TestMatchFileRoundTrip(t *testing.T) {
	input := []byte(`matches:
  - trigger: ":date"
    replace: "{{mydate}}"
    vars:
      - name: mydate
        type: date
  - triggers: [":hi", ":hey"]
    replace: Hello
    word: true
`)
	mf, err := schema.ParseMatchFile(input)
	require.NoError(t, err)

	out, err := schema.SerializeMatchFile(mf)
	require.NoError(t, err)

	reparsed, err := schema.ParseMatchFile(out)
	require.NoError(t, err)
	assert.True(t, mf.Equal(reparsed), "round trip changed the document:\n%s", out)

	// The per-match unknown field survives intact.
	vars, ok := reparsed.Matches[0].Unknown.Get("vars")
	require.True(t, ok)
	original, _ := mf.Matches[0].Unknown.Get("vars")
	assert.True(t, original.Equal(vars))
}

func TestSerializeEmptyMatchFile(t *testing.T) {
	out, err := schema.SerializeMatchFile(&schema.MatchFile{})
	require.NoError(t, err)
	assert.Contains(t, string(out), "matches: []")

	reparsed, err := schema.ParseMatchFile(out)
	require.NoError(t, err)
	assert.Empty(t, reparsed.Matches)
}

func TestDocumentCloneIsDeep(t *testing.T) {
	doc, err := schema.ParseDocument(schema.MatchFileKind, []byte(`
matches:
  - trigger: ":a"
    replace: alpha
`))
	require.NoError(t, err)

	clone := doc.Clone()
	edited := "beta"
	clone.MatchFile.Matches[0].Replace = &edited

	assert.Equal(t, "alpha", *doc.MatchFile.Matches[0].Replace)
	assert.False(t, doc.Equal(clone))
}
