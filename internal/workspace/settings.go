package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Settings is the editor's own persisted state, kept apart from the
// espanso files it edits.
type Settings struct {
	// EspansoDir is the last espanso directory the user worked with.
	EspansoDir string `yaml:"espanso_dir"`
	// Debug enables verbose logging.
	Debug bool `yaml:"debug"`
}

// SettingsPath returns the default location of the editor settings
// file (~/.config/espedit/settings.yaml on Linux).
func SettingsPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "espedit", "settings.yaml"), nil
}

// LoadSettings loads the editor settings from the default location.
func LoadSettings() (*Settings, error) {
	path, err := SettingsPath()
	if err != nil {
		return nil, err
	}
	return LoadSettingsFile(path)
}

// LoadSettingsFile loads settings from a specific file path. A missing
// file yields defaults: the conventional espanso directory when it
// validates, an unset directory otherwise.
func LoadSettingsFile(path string) (*Settings, error) {
	settings := defaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return nil, fmt.Errorf("error reading settings file: %w", err)
	}

	var loaded Settings
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("error parsing settings file: %w", err)
	}
	if loaded.EspansoDir != "" {
		settings.EspansoDir = loaded.EspansoDir
	}
	settings.Debug = loaded.Debug

	return settings, nil
}

func defaultSettings() *Settings {
	settings := &Settings{}
	if dir := DefaultDir(); Valid(dir) {
		settings.EspansoDir = dir
	}
	return settings
}

// Save persists the settings to the given path, creating parent
// directories as needed.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}

	return nil
}
