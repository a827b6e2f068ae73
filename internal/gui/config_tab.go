package gui

import (
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"espedit/internal/schema"
	"espedit/internal/session"
)

var (
	backendChoices   = []string{"Auto", "Clipboard", "Inject"}
	toggleKeyChoices = []string{"OFF", "CTRL", "ALT", "SHIFT", "META", "LEFT_CTRL", "LEFT_ALT", "LEFT_SHIFT", "LEFT_META", "RIGHT_CTRL", "RIGHT_ALT", "RIGHT_SHIFT", "RIGHT_META"}
)

// createConfigTab builds the form for the top-level config document.
// Only the commonly edited options get widgets; everything else in
// the file is preserved untouched on save.
func (a *App) createConfigTab() fyne.CanvasObject {
	if a.configSession == nil || a.configSession.State() == session.Unloaded {
		return container.NewCenter(widget.NewLabel("No config loaded - select a valid espanso directory in Settings."))
	}

	cfg := a.configSession.Document().Config

	// Widgets get their initial state before the changed callback is
	// attached: SetSelected and SetChecked fire the callback, and a
	// freshly built tab must not count as a user edit.
	backendSelect := widget.NewSelect(backendChoices, nil)
	backendSelect.SetSelected(strOrDefault(cfg.Backend, schema.DefaultBackend))
	backendSelect.OnChanged = func(value string) {
		a.updateConfig(func(c *schema.Config) { c.Backend = &value })
	}

	toggleKeySelect := widget.NewSelect(toggleKeyChoices, nil)
	toggleKeySelect.SetSelected(strOrDefault(cfg.ToggleKey, schema.DefaultToggleKey))
	toggleKeySelect.OnChanged = func(value string) {
		a.updateConfig(func(c *schema.Config) { c.ToggleKey = &value })
	}

	enableCheck := a.boolCheck("Enable expansions", cfg.Enable, true,
		func(c *schema.Config, v *bool) { c.Enable = v })
	notifyCheck := a.boolCheck("Show notifications", cfg.ShowNotifications, true,
		func(c *schema.Config, v *bool) { c.ShowNotifications = v })
	iconCheck := a.boolCheck("Show tray icon", cfg.ShowIcon, true,
		func(c *schema.Config, v *bool) { c.ShowIcon = v })
	undoCheck := a.boolCheck("Undo expansion with backspace", cfg.UndoBackspace, true,
		func(c *schema.Config, v *bool) { c.UndoBackspace = v })
	clipboardCheck := a.boolCheck("Preserve clipboard", cfg.PreserveClipboard, true,
		func(c *schema.Config, v *bool) { c.PreserveClipboard = v })
	restartCheck := a.boolCheck("Auto restart on config change", cfg.AutoRestart, true,
		func(c *schema.Config, v *bool) { c.AutoRestart = v })

	behaviorCard := widget.NewCard("Behavior", "", container.NewVBox(
		container.NewHBox(widget.NewLabel("Backend:"), backendSelect),
		container.NewHBox(widget.NewLabel("Toggle key:"), toggleKeySelect),
		enableCheck,
		undoCheck,
		clipboardCheck,
		restartCheck,
		notifyCheck,
		iconCheck,
	))

	searchTrigger := a.strEntry(cfg.SearchTrigger, "e.g. jump",
		func(c *schema.Config, v *string) { c.SearchTrigger = v })
	searchShortcut := a.strEntry(cfg.SearchShortcut, "e.g. ALT+SPACE",
		func(c *schema.Config, v *string) { c.SearchShortcut = v })
	pasteShortcut := a.strEntry(cfg.PasteShortcut, "e.g. CTRL+V",
		func(c *schema.Config, v *string) { c.PasteShortcut = v })

	separators := widget.NewEntry()
	separators.SetPlaceHolder("comma separated, e.g. \" \", \",\"")
	if cfg.WordSeparators != nil {
		separators.SetText(strings.Join(cfg.WordSeparators, ","))
	}
	separators.OnChanged = func(text string) {
		a.updateConfig(func(c *schema.Config) {
			if strings.TrimSpace(text) == "" {
				c.WordSeparators = nil
				return
			}
			c.WordSeparators = strings.Split(text, ",")
		})
	}

	searchCard := widget.NewCard("Search & Paste", "", container.NewVBox(
		container.NewHBox(widget.NewLabel("Search trigger:"), searchTrigger),
		container.NewHBox(widget.NewLabel("Search shortcut:"), searchShortcut),
		container.NewHBox(widget.NewLabel("Paste shortcut:"), pasteShortcut),
		container.NewHBox(widget.NewLabel("Word separators:"), separators),
	))

	delaysCard := widget.NewCard("Timing", "", container.NewVBox(
		container.NewHBox(widget.NewLabel("Inject delay (ms):"),
			a.intEntry(cfg.InjectDelay, func(c *schema.Config, v *int) { c.InjectDelay = v })),
		container.NewHBox(widget.NewLabel("Key delay (ms):"),
			a.intEntry(cfg.KeyDelay, func(c *schema.Config, v *int) { c.KeyDelay = v })),
		container.NewHBox(widget.NewLabel("Pre-paste delay (ms):"),
			a.intEntry(cfg.PrePasteDelay, func(c *schema.Config, v *int) { c.PrePasteDelay = v })),
		container.NewHBox(widget.NewLabel("Clipboard threshold:"),
			a.intEntry(cfg.ClipboardThreshold, func(c *schema.Config, v *int) { c.ClipboardThreshold = v })),
		container.NewHBox(widget.NewLabel("Backspace limit:"),
			a.intEntry(cfg.BackspaceLimit, func(c *schema.Config, v *int) { c.BackspaceLimit = v })),
	))

	saveButton := widget.NewButtonWithIcon("Save Config", theme.DocumentSaveIcon(), func() {
		a.saveSession(a.configSession)
	})
	revertButton := widget.NewButtonWithIcon("Revert", theme.ContentUndoIcon(), func() {
		if err := a.configSession.Revert(); err != nil {
			a.ShowError("Failed to revert config", err)
			return
		}
		a.refreshContent()
	})

	form := container.NewVBox(behaviorCard, searchCard, delaysCard)

	return container.NewBorder(
		nil,
		container.NewHBox(saveButton, revertButton),
		nil,
		nil,
		container.NewScroll(form),
	)
}

func (a *App) updateConfig(edit func(*schema.Config)) {
	if a.configSession == nil {
		return
	}
	if err := a.configSession.Update(func(d *schema.Document) {
		edit(d.Config)
	}); err != nil {
		a.ShowError("Failed to apply config edit", err)
		return
	}
	a.updateStatus()
}

func (a *App) boolCheck(label string, current *bool, fallback bool, set func(*schema.Config, *bool)) *widget.Check {
	check := widget.NewCheck(label, nil)
	if current != nil {
		check.SetChecked(*current)
	} else {
		check.SetChecked(fallback)
	}
	check.OnChanged = func(value bool) {
		a.updateConfig(func(c *schema.Config) {
			v := value
			set(c, &v)
		})
	}
	return check
}

func (a *App) strEntry(current *string, placeholder string, set func(*schema.Config, *string)) *widget.Entry {
	entry := widget.NewEntry()
	entry.SetPlaceHolder(placeholder)
	if current != nil {
		entry.SetText(*current)
	}
	entry.OnChanged = func(text string) {
		a.updateConfig(func(c *schema.Config) {
			if text == "" {
				set(c, nil)
				return
			}
			v := text
			set(c, &v)
		})
	}
	return entry
}

func (a *App) intEntry(current *int, set func(*schema.Config, *int)) *widget.Entry {
	entry := widget.NewEntry()
	entry.SetPlaceHolder("unset")
	if current != nil {
		entry.SetText(strconv.Itoa(*current))
	}
	entry.OnChanged = func(text string) {
		text = strings.TrimSpace(text)
		if text == "" {
			a.updateConfig(func(c *schema.Config) { set(c, nil) })
			return
		}
		value, err := strconv.Atoi(text)
		if err != nil {
			return
		}
		a.updateConfig(func(c *schema.Config) { set(c, &value) })
	}
	return entry
}

func strOrDefault(s *string, fallback string) string {
	if s != nil && *s != "" {
		return *s
	}
	return fallback
}
