package gui

import (
	"espedit/internal/workspace"
)

// Interface defines the contract for GUI operations
type Interface interface {
	Run()
	ShowError(title string, err error)
	ShowInfo(message string)
}

// Factory creates GUI instances
type Factory struct {
	settings     *workspace.Settings
	settingsPath string
}

// NewFactory creates a new GUI factory
func NewFactory(settings *workspace.Settings, settingsPath string) *Factory {
	return &Factory{
		settings:     settings,
		settingsPath: settingsPath,
	}
}

// Create returns a new GUI instance
func (f *Factory) Create() (Interface, error) {
	app := NewApp(f.settings, f.settingsPath)
	return app, nil
}
