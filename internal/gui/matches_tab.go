package gui

import (
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"espedit/internal/log"
	"espedit/internal/schema"
	"espedit/internal/session"
	"espedit/internal/validate"
	"espedit/internal/workspace"
)

// createMatchesTab builds the match-file browser and editor.
func (a *App) createMatchesTab() fyne.CanvasObject {
	a.fileList = widget.NewList(
		func() int {
			return len(a.matchFiles)
		},
		func() fyne.CanvasObject {
			return container.NewHBox(
				widget.NewIcon(theme.DocumentIcon()),
				widget.NewLabel("Template match file"),
			)
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id < 0 || id >= len(a.matchFiles) {
				return
			}
			label := obj.(*fyne.Container).Objects[1].(*widget.Label)
			label.SetText(a.matchFiles[id])
		},
	)

	a.fileList.OnSelected = func(id widget.ListItemID) {
		if id < 0 || id >= len(a.matchFiles) {
			return
		}
		a.requestOpenMatchFile(a.matchFiles[id])
	}

	newButton := widget.NewButtonWithIcon("New", theme.ContentAddIcon(), func() {
		a.promptNewMatchFile()
	})
	renameButton := widget.NewButtonWithIcon("Rename", theme.DocumentCreateIcon(), func() {
		a.promptRenameMatchFile()
	})
	deleteButton := widget.NewButtonWithIcon("Delete", theme.DeleteIcon(), func() {
		a.promptDeleteMatchFile()
	})

	left := container.NewBorder(
		widget.NewLabelWithStyle("Match Files", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		container.NewHBox(newButton, renameButton, deleteButton),
		nil,
		nil,
		container.NewScroll(a.fileList),
	)

	a.matchEditor = container.NewStack(widget.NewLabel("Select a match file to edit."))

	split := container.NewHSplit(left, a.matchEditor)
	split.SetOffset(0.25)
	return split
}

// requestOpenMatchFile switches the editor to another file, asking
// about unsaved edits first.
func (a *App) requestOpenMatchFile(stem string) {
	if stem == a.currentStem {
		return
	}
	current := a.currentMatchSession()
	if current != nil && current.Dirty() {
		dialog.ShowConfirm("Unsaved Changes",
			"Leaving this file will discard your unsaved changes. Continue?",
			func(confirmed bool) {
				if !confirmed {
					return
				}
				if err := current.Revert(); err != nil {
					log.LogWithFields(log.F("error", err)).Warn("Failed to revert session")
				}
				a.openMatchFile(stem)
			},
			a.mainWindow)
		return
	}
	a.openMatchFile(stem)
}

func (a *App) openMatchFile(stem string) {
	path := workspace.MatchFilePath(a.settings.EspansoDir, stem)
	sess, ok := a.matchSessions[path]
	if !ok {
		sess = session.New(a.fs, schema.MatchFileKind, path)
		a.matchSessions[path] = sess
	}
	if sess.State() == session.Unloaded {
		if err := sess.Load(); err != nil {
			delete(a.matchSessions, path)
			a.ShowError("Failed to open match file", err)
			return
		}
	}
	a.currentStem = stem
	a.rebuildMatchEditor(sess)
	a.updateStatus()
}

func (a *App) currentMatchSession() *session.Session {
	if a.currentStem == "" {
		return nil
	}
	return a.matchSessions[workspace.MatchFilePath(a.settings.EspansoDir, a.currentStem)]
}

// rebuildMatchEditor recreates the form rows for the session's
// current document.
func (a *App) rebuildMatchEditor(sess *session.Session) {
	doc := sess.Document()
	rows := container.NewVBox()

	for i := range doc.MatchFile.Matches {
		rows.Add(a.matchRow(sess, doc.MatchFile.Matches[i], i))
		rows.Add(widget.NewSeparator())
	}

	addButton := widget.NewButtonWithIcon("Add Match", theme.ContentAddIcon(), func() {
		if err := sess.Update(func(d *schema.Document) {
			d.MatchFile.Matches = append(d.MatchFile.Matches, schema.NewMatch())
		}); err != nil {
			a.ShowError("Failed to add match", err)
			return
		}
		a.rebuildMatchEditor(sess)
		a.updateStatus()
	})

	saveButton := widget.NewButtonWithIcon("Save", theme.DocumentSaveIcon(), func() {
		a.saveSession(sess)
	})
	revertButton := widget.NewButtonWithIcon("Revert", theme.ContentUndoIcon(), func() {
		if err := sess.Revert(); err != nil {
			a.ShowError("Failed to revert", err)
			return
		}
		a.rebuildMatchEditor(sess)
		a.updateStatus()
	})

	content := container.NewBorder(
		nil,
		container.NewHBox(addButton, widget.NewSeparator(), saveButton, revertButton),
		nil,
		nil,
		container.NewScroll(rows),
	)

	a.matchEditor.Objects = []fyne.CanvasObject{content}
	a.matchEditor.Refresh()
}

// matchRow builds the form widgets for one match entry.
func (a *App) matchRow(sess *session.Session, m schema.Match, index int) fyne.CanvasObject {
	triggerEntry := widget.NewEntry()
	triggerEntry.SetPlaceHolder("trigger, e.g. :date")
	if m.Trigger != nil {
		triggerEntry.SetText(*m.Trigger)
	} else if len(m.Triggers) > 0 {
		triggerEntry.SetText(strings.Join(m.Triggers, ", "))
	}
	triggerEntry.OnChanged = func(text string) {
		a.updateMatch(sess, index, func(match *schema.Match) {
			applyTriggerText(match, text)
		})
	}

	replaceEntry := widget.NewMultiLineEntry()
	replaceEntry.SetPlaceHolder("replacement text")
	replaceEntry.Wrapping = fyne.TextWrapWord
	if m.Replace != nil {
		replaceEntry.SetText(*m.Replace)
	}
	replaceEntry.OnChanged = func(text string) {
		a.updateMatch(sess, index, func(match *schema.Match) {
			value := text
			match.Replace = &value
		})
	}

	wordCheck := widget.NewCheck("Whole word", nil)
	if m.Word != nil {
		wordCheck.SetChecked(*m.Word)
	}
	wordCheck.OnChanged = func(value bool) {
		a.updateMatch(sess, index, func(match *schema.Match) {
			v := value
			match.Word = &v
		})
	}

	caseCheck := widget.NewCheck("Propagate case", nil)
	if m.PropagateCase != nil {
		caseCheck.SetChecked(*m.PropagateCase)
	}
	caseCheck.OnChanged = func(value bool) {
		a.updateMatch(sess, index, func(match *schema.Match) {
			v := value
			match.PropagateCase = &v
		})
	}

	deleteButton := widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
		if err := sess.Update(func(d *schema.Document) {
			matches := d.MatchFile.Matches
			d.MatchFile.Matches = append(matches[:index], matches[index+1:]...)
		}); err != nil {
			a.ShowError("Failed to delete match", err)
			return
		}
		a.rebuildMatchEditor(sess)
		a.updateStatus()
	})

	header := container.NewBorder(nil, nil, nil, deleteButton, triggerEntry)
	options := container.NewHBox(wordCheck, caseCheck)
	return container.NewVBox(header, replaceEntry, options)
}

// applyTriggerText maps the trigger entry's text onto the match.
// Comma-separated input means the triggers list form, whichever form
// the match used before; plain input on a single-trigger match stays
// a single trigger.
func applyTriggerText(match *schema.Match, text string) {
	if strings.Contains(text, ",") || match.Triggers != nil {
		parts := strings.Split(text, ",")
		set := make([]string, 0, len(parts))
		for _, p := range parts {
			set = append(set, strings.TrimSpace(p))
		}
		match.Trigger = nil
		match.Triggers = set
		return
	}
	value := text
	match.Trigger = &value
}

func (a *App) updateMatch(sess *session.Session, index int, edit func(*schema.Match)) {
	err := sess.Update(func(d *schema.Document) {
		if index < 0 || index >= len(d.MatchFile.Matches) {
			return
		}
		edit(&d.MatchFile.Matches[index])
	})
	if err != nil {
		a.ShowError("Failed to apply edit", err)
		return
	}
	a.updateStatus()
}

// saveSession validates, confirms warnings with the user, and writes.
func (a *App) saveSession(sess *session.Session) {
	issues := sess.Validate()
	if validate.HasErrors(issues) {
		a.ShowError("Cannot save", issuesError(issues))
		return
	}
	if validate.HasWarnings(issues) {
		dialog.ShowConfirm("Save With Warnings",
			formatIssues(issues)+"\n\nSave anyway?",
			func(confirmed bool) {
				if confirmed {
					a.doSave(sess)
				}
			},
			a.mainWindow)
		return
	}
	a.doSave(sess)
}

func (a *App) doSave(sess *session.Session) {
	if _, err := sess.Save(); err != nil {
		a.ShowError("Failed to save", err)
		return
	}
	a.updateStatus()
}

func (a *App) promptNewMatchFile() {
	entry := widget.NewEntry()
	entry.SetPlaceHolder("file name, e.g. emails")
	dialog.ShowForm("New Match File", "Create", "Cancel",
		[]*widget.FormItem{widget.NewFormItem("Name", entry)},
		func(confirmed bool) {
			if !confirmed || strings.TrimSpace(entry.Text) == "" {
				return
			}
			if _, err := workspace.CreateMatchFile(a.fs, a.settings.EspansoDir, entry.Text); err != nil {
				a.ShowError("Failed to create match file", err)
				return
			}
			a.refreshMatchFiles()
		},
		a.mainWindow)
}

func (a *App) promptRenameMatchFile() {
	if a.currentStem == "" {
		a.ShowInfo("Select a match file to rename.")
		return
	}
	entry := widget.NewEntry()
	entry.SetText(a.currentStem)
	oldStem := a.currentStem
	dialog.ShowForm("Rename Match File", "Rename", "Cancel",
		[]*widget.FormItem{widget.NewFormItem("Name", entry)},
		func(confirmed bool) {
			if !confirmed || entry.Text == oldStem {
				return
			}
			if _, err := workspace.RenameMatchFile(a.settings.EspansoDir, oldStem, entry.Text); err != nil {
				a.ShowError("Failed to rename match file", err)
				return
			}
			oldPath := workspace.MatchFilePath(a.settings.EspansoDir, oldStem)
			if sess, ok := a.matchSessions[oldPath]; ok {
				sess.Close()
				delete(a.matchSessions, oldPath)
			}
			a.currentStem = ""
			a.refreshMatchFiles()
		},
		a.mainWindow)
}

func (a *App) promptDeleteMatchFile() {
	if a.currentStem == "" {
		a.ShowInfo("Select a match file to delete.")
		return
	}
	stem := a.currentStem
	dialog.ShowConfirm("Delete Match File",
		"Are you sure you want to delete \""+stem+"\"? This cannot be undone.",
		func(confirmed bool) {
			if !confirmed {
				return
			}
			if err := workspace.DeleteMatchFile(a.settings.EspansoDir, stem); err != nil {
				a.ShowError("Failed to delete match file", err)
				return
			}
			path := workspace.MatchFilePath(a.settings.EspansoDir, stem)
			if sess, ok := a.matchSessions[path]; ok {
				sess.Close()
				delete(a.matchSessions, path)
			}
			a.currentStem = ""
			a.matchEditor.Objects = []fyne.CanvasObject{widget.NewLabel("Select a match file to edit.")}
			a.matchEditor.Refresh()
			a.refreshMatchFiles()
		},
		a.mainWindow)
}

func (a *App) refreshMatchFiles() {
	if !workspace.Valid(a.settings.EspansoDir) {
		a.matchFiles = nil
	} else {
		stems, err := workspace.MatchFiles(a.settings.EspansoDir)
		if err != nil {
			log.LogWithFields(log.F("error", err)).Warn("Failed to list match files")
			stems = nil
		}
		a.matchFiles = stems
	}
	if a.fileList != nil {
		a.fileList.Refresh()
	}
	a.updateStatus()
}
