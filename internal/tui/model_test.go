package tui

import (
	"os"
	"path/filepath"
	"testing"

	alsrt "github.com/alecthomas/assert"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeEspansoDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "config"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "match"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config", "default.yml"), []byte("backend: Auto\n"), 0644))
	return dir
}

func writeMatchFile(t *testing.T, dir, stem, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "match", stem+".yml"), []byte(content), 0644))
}

func TestNewRejectsInvalidDirectory(t *testing.T) {
	_, err := New(t.TempDir())
	assert.Error(t, err)
}

func TestModelListsMatchFiles(t *testing.T) {
	dir := makeEspansoDir(t)
	writeMatchFile(t, dir, "base", "matches:\n  - trigger: \":hi\"\n    replace: Hello\n")
	writeMatchFile(t, dir, "broken", "matches:\n  - replace: orphan\n")

	m, err := New(dir)
	require.NoError(t, err)

	items := m.fileList.Items()
	require.Len(t, items, 2)

	base := items[0].(fileItem)
	alsrt.Equal(t, "base", base.Title())
	alsrt.Equal(t, 0, base.errors)

	broken := items[1].(fileItem)
	alsrt.Equal(t, "broken", broken.Title())
	alsrt.Equal(t, 1, broken.errors)
}

func TestModelInspectShowsIssues(t *testing.T) {
	dir := makeEspansoDir(t)
	writeMatchFile(t, dir, "dupes", "matches:\n  - trigger: \":date\"\n    replace: one\n  - trigger: \":date\"\n    replace: two\n")

	m, err := New(dir)
	require.NoError(t, err)

	m.inspect("dupes")
	assert.Equal(t, "dupes", m.selected)
	require.Len(t, m.issues, 1)
	assert.Contains(t, m.View(), ":date")
}

func TestModelQuitKey(t *testing.T) {
	dir := makeEspansoDir(t)
	m, err := New(dir)
	require.NoError(t, err)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	_, isQuit := cmd().(tea.QuitMsg)
	assert.True(t, isQuit)
}
