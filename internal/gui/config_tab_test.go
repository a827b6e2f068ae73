package gui

import (
	"os"
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"espedit/internal/fsio"
	"espedit/internal/schema"
	"espedit/internal/session"
	"espedit/internal/workspace"
)

// makeEspansoDir lays out a minimal valid espanso directory whose
// config document sets nothing, leaving every option at its default.
func makeEspansoDir(t *testing.T, configYAML string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "config"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "match"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config", "default.yml"), []byte(configYAML), 0644))
	return dir
}

func newTestApp(t *testing.T, dir string) *App {
	t.Helper()
	a := &App{
		fyneApp:       test.NewApp(),
		settings:      &workspace.Settings{EspansoDir: dir},
		fs:            fsio.NewOS(),
		matchSessions: make(map[string]*session.Session),
	}
	a.mainWindow = a.fyneApp.NewWindow("test")
	a.configSession = session.New(a.fs, schema.ConfigKind, workspace.ConfigPath(dir))
	require.NoError(t, a.configSession.Load())
	return a
}

func TestConfigTabBuildDoesNotEditDocument(t *testing.T) {
	dir := makeEspansoDir(t, "# everything at defaults\n")
	a := newTestApp(t, dir)

	a.createConfigTab()

	// Building the form must not count as a user edit: the session
	// stays clean and no option gets materialized into the document.
	assert.Equal(t, session.Clean, a.configSession.State())

	cfg := a.configSession.Document().Config
	assert.True(t, cfg.Equal(&schema.Config{}))
	assert.Nil(t, cfg.Backend)
	assert.Nil(t, cfg.ToggleKey)
	assert.Nil(t, cfg.Enable)
	assert.Nil(t, cfg.UndoBackspace)
	assert.Nil(t, cfg.PreserveClipboard)
	assert.Nil(t, cfg.AutoRestart)
	assert.Nil(t, cfg.ShowNotifications)
	assert.Nil(t, cfg.ShowIcon)
}

func TestConfigTabBuildKeepsExistingOptions(t *testing.T) {
	dir := makeEspansoDir(t, "backend: Inject\nenable: false\n")
	a := newTestApp(t, dir)

	a.createConfigTab()

	assert.Equal(t, session.Clean, a.configSession.State())
	cfg := a.configSession.Document().Config
	require.NotNil(t, cfg.Backend)
	assert.Equal(t, "Inject", *cfg.Backend)
	require.NotNil(t, cfg.Enable)
	assert.False(t, *cfg.Enable)
}
