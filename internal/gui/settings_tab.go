package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"espedit/internal/log"
	"espedit/internal/workspace"
)

// createSettingsTab builds the editor's own settings: which espanso
// directory to edit.
func (a *App) createSettingsTab() fyne.CanvasObject {
	a.dirStatus = widget.NewLabel("")

	dirEntry := widget.NewEntry()
	dirEntry.SetText(a.settings.EspansoDir)
	dirEntry.SetPlaceHolder(workspace.DefaultDir())

	updateDirStatus := func(dir string) {
		if dir == "" {
			a.dirStatus.SetText("No directory selected.")
			return
		}
		if workspace.Valid(dir) {
			a.dirStatus.SetText("Valid espanso directory.")
		} else {
			a.dirStatus.SetText("Not a valid espanso directory: expected config/default.yml and a match/ folder.")
		}
	}
	updateDirStatus(a.settings.EspansoDir)
	dirEntry.OnChanged = updateDirStatus

	browseButton := widget.NewButton("Browse...", func() {
		dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
			if err != nil {
				a.ShowError("Failed to pick directory", err)
				return
			}
			if uri == nil {
				return
			}
			dirEntry.SetText(uri.Path())
		}, a.mainWindow)
	})

	applyButton := widget.NewButton("Apply", func() {
		dir := dirEntry.Text
		if !workspace.Valid(dir) {
			a.ShowInfo("That folder does not look like an espanso directory.")
			return
		}
		a.settings.EspansoDir = dir
		if err := a.settings.Save(a.settingsPath); err != nil {
			log.LogWithFields(log.F("error", err)).Warn("Failed to persist settings")
		}
		a.openWorkspace(dir)
		a.refreshMatchFiles()
		a.refreshContent()
		updateDirStatus(dir)
	})

	dirCard := widget.NewCard("espanso Directory", "",
		container.NewVBox(
			widget.NewLabel("Folder containing config/default.yml and the match/ subdirectory:"),
			dirEntry,
			container.NewHBox(browseButton, applyButton),
			a.dirStatus,
		))

	debugCheck := widget.NewCheck("Verbose logging", func(value bool) {
		a.settings.Debug = value
		log.SetDebug(value)
		if err := a.settings.Save(a.settingsPath); err != nil {
			log.LogWithFields(log.F("error", err)).Warn("Failed to persist settings")
		}
	})
	debugCheck.SetChecked(a.settings.Debug)

	editorCard := widget.NewCard("Editor", "", container.NewVBox(debugCheck))

	return container.NewVBox(dirCard, editorCard)
}
