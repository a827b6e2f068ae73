package gui

import (
	"net/url"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"espedit/internal/fsio"
	"espedit/internal/log"
	"espedit/internal/schema"
	"espedit/internal/session"
	"espedit/internal/watch"
	"espedit/internal/workspace"
)

const projectURL = "https://espanso.org/docs/"

// App is the GUI application
type App struct {
	fyneApp    fyne.App
	mainWindow fyne.Window

	settings     *workspace.Settings
	settingsPath string
	fs           fsio.FileSystem
	watcher      *watch.Watcher

	// One session per open document, keyed by file path
	configSession *session.Session
	matchSessions map[string]*session.Session

	// Matches tab state
	matchFiles   []string
	currentStem  string
	fileList     *widget.List
	matchEditor  *fyne.Container
	dirStatus    *widget.Label
	statusLabel  *widget.Label
	settingsTabs *container.AppTabs
}

// NewApp creates the GUI application around the given editor settings.
func NewApp(settings *workspace.Settings, settingsPath string) *App {
	fyneApp := app.NewWithID("io.github.espedit")

	a := &App{
		fyneApp:       fyneApp,
		settings:      settings,
		settingsPath:  settingsPath,
		fs:            fsio.NewOS(),
		matchSessions: make(map[string]*session.Session),
	}

	a.mainWindow = a.fyneApp.NewWindow("espedit")

	if workspace.Valid(settings.EspansoDir) {
		a.openWorkspace(settings.EspansoDir)
	}

	return a
}

// GetMainWindow returns the main window instance
func (a *App) GetMainWindow() fyne.Window {
	return a.mainWindow
}

// Run starts the GUI application
func (a *App) Run() {
	a.setupMainWindow()

	a.mainWindow.Show()

	a.fyneApp.Run()
}

// openWorkspace points every session and the watcher at a validated
// espanso directory.
func (a *App) openWorkspace(dir string) {
	a.closeWorkspace()

	a.configSession = session.New(a.fs, schema.ConfigKind, workspace.ConfigPath(dir))
	if err := a.configSession.Load(); err != nil {
		log.LogWithFields(log.F("dir", dir), log.F("error", err)).Warn("Failed to load config document")
	}

	stems, err := workspace.MatchFiles(dir)
	if err != nil {
		log.LogWithFields(log.F("dir", dir), log.F("error", err)).Warn("Failed to list match files")
		stems = nil
	}
	a.matchFiles = stems
	a.currentStem = ""

	a.startWatcher(dir)
}

func (a *App) closeWorkspace() {
	if a.watcher != nil {
		a.watcher.Stop()
		a.watcher = nil
	}
	if a.configSession != nil {
		a.configSession.Close()
		a.configSession = nil
	}
	for _, sess := range a.matchSessions {
		sess.Close()
	}
	a.matchSessions = make(map[string]*session.Session)
}

// startWatcher watches the workspace's config and match directories
// and routes change events to the session holding that path.
func (a *App) startWatcher(dir string) {
	watcher, err := watch.New()
	if err != nil {
		log.LogWithFields(log.F("error", err)).Error("Failed to create file watcher")
		return
	}
	if err := watcher.AddDirectory(filepath.Join(dir, "config")); err != nil {
		log.LogWithFields(log.F("error", err)).Warn("Failed to watch config directory")
	}
	if err := watcher.AddDirectory(workspace.MatchDir(dir)); err != nil {
		log.LogWithFields(log.F("error", err)).Warn("Failed to watch match directory")
	}
	if err := watcher.Start(); err != nil {
		log.LogWithFields(log.F("error", err)).Error("Failed to start file watcher")
		return
	}
	a.watcher = watcher

	go func() {
		for event := range watcher.Events() {
			a.handleExternalChange(event.Path)
		}
	}()
}

// handleExternalChange reacts to an on-disk modification. Clean
// sessions are reloaded silently; dirty ones surface a conflict the
// user resolves by reloading or overwriting.
func (a *App) handleExternalChange(path string) {
	sess := a.sessionFor(path)
	if sess == nil || sess.State() == session.Unloaded {
		return
	}
	if !sess.NotifyExternalChange() {
		if err := sess.Reload(); err != nil {
			log.LogWithFields(log.F("path", path), log.F("error", err)).Warn("Failed to reload changed document")
		}
		return
	}
	if sess.InConflict() {
		a.showConflictDialog(sess)
	}
}

func (a *App) sessionFor(path string) *session.Session {
	if a.configSession != nil && a.configSession.Path() == path {
		return a.configSession
	}
	return a.matchSessions[path]
}

func (a *App) showConflictDialog(sess *session.Session) {
	dialog.ShowCustomConfirm(
		"File Changed on Disk",
		"Keep My Edits",
		"Reload From Disk",
		widget.NewLabel("This file was modified outside the editor while you have unsaved changes.\n"+
			"Keep your edits and overwrite the file, or reload it and discard them?"),
		func(keepMine bool) {
			if keepMine {
				if _, err := sess.ForceSave(); err != nil {
					a.ShowError("Failed to save file", err)
				}
				return
			}
			if err := sess.Reload(); err != nil {
				a.ShowError("Failed to reload file", err)
				return
			}
			a.refreshContent()
		},
		a.mainWindow,
	)
}

// setupMainWindow sets up the main window content
func (a *App) setupMainWindow() {
	a.mainWindow.Resize(fyne.NewSize(1024, 768))

	toolbar := widget.NewToolbar(
		widget.NewToolbarAction(theme.ViewRefreshIcon(), func() {
			a.refreshMatchFiles()
			a.refreshContent()
		}),
		widget.NewToolbarSpacer(),
		widget.NewToolbarAction(theme.HelpIcon(), func() {
			dialog.ShowCustomConfirm("About espedit",
				"Open espanso Docs", "Close",
				widget.NewLabel("espedit is a graphical editor for espanso configuration\n"+
					"and match files. It edits the YAML documents the expansion\n"+
					"engine consumes; it does not expand text itself."),
				func(open bool) {
					if open {
						a.openURL(projectURL)
					}
				},
				a.mainWindow)
		}),
	)

	tabs := container.NewAppTabs(
		container.NewTabItem("Matches", a.createMatchesTab()),
		container.NewTabItem("Config", a.createConfigTab()),
		container.NewTabItem("Settings", a.createSettingsTab()),
	)
	tabs.SetTabLocation(container.TabLocationTop)
	a.settingsTabs = tabs

	content := container.NewBorder(
		toolbar,
		a.createStatusBar(),
		nil,
		nil,
		tabs,
	)

	a.mainWindow.SetContent(content)
}

// createStatusBar creates the bottom status bar
func (a *App) createStatusBar() fyne.CanvasObject {
	a.statusLabel = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{})
	a.updateStatus()
	return container.NewHBox(a.statusLabel)
}

func (a *App) updateStatus() {
	if a.statusLabel == nil {
		return
	}
	if !workspace.Valid(a.settings.EspansoDir) {
		a.statusLabel.SetText("No espanso directory selected - open Settings")
		return
	}
	text := "Workspace: " + a.settings.EspansoDir
	if a.currentStem != "" {
		text += "  |  Editing: " + a.currentStem
		if sess := a.currentMatchSession(); sess != nil && sess.Dirty() {
			text += " (unsaved)"
		}
	}
	a.statusLabel.SetText(text)
}

// refreshContent refreshes dynamic window content after state changes
func (a *App) refreshContent() {
	a.updateStatus()
	a.mainWindow.Content().Refresh()
}

// ShowError displays an error dialog
func (a *App) ShowError(title string, err error) {
	if err == nil {
		return
	}
	log.LogWithFields(log.F("title", title), log.F("error", err)).Error("GUI error")
	dialog.ShowError(err, a.mainWindow)
}

// ShowInfo displays an information dialog
func (a *App) ShowInfo(message string) {
	dialog.ShowInformation("Information", message, a.mainWindow)
}

func (a *App) openURL(raw string) {
	u, err := url.Parse(raw)
	if err != nil {
		a.ShowError("Invalid link", err)
		return
	}
	if err := a.fyneApp.OpenURL(u); err != nil {
		a.ShowError("Failed to open link", err)
	}
}
