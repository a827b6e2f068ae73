// Package workspace understands the espanso directory convention: a
// root directory holding config/default.yml and a match/ subdirectory
// of match files. Nothing else about the layout is assumed.
package workspace

import (
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"espedit/internal/errors"
	"espedit/internal/fsio"
	"espedit/internal/log"
	"espedit/internal/schema"
)

// Recognized match file extensions.
var matchExtensions = map[string]bool{
	".yml":  true,
	".yaml": true,
}

var fileNamePattern = regexp.MustCompile(`^[\w\-. ]+$`)

// DefaultDir returns the conventional espanso location under the
// user's config directory.
func DefaultDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, "espanso")
}

// Valid reports whether dir looks like an espanso directory: it must
// contain config/ and match/ directories and a config/default.yml.
func Valid(dir string) bool {
	if dir == "" {
		return false
	}
	configInfo, err := os.Stat(filepath.Join(dir, "config"))
	if err != nil || !configInfo.IsDir() {
		return false
	}
	matchInfo, err := os.Stat(filepath.Join(dir, "match"))
	if err != nil || !matchInfo.IsDir() {
		return false
	}
	defaultInfo, err := os.Stat(filepath.Join(dir, "config", "default.yml"))
	return err == nil && defaultInfo.Mode().IsRegular()
}

// ConfigPath returns the path of the top-level config document.
func ConfigPath(dir string) string {
	return filepath.Join(dir, "config", "default.yml")
}

// MatchDir returns the match subdirectory.
func MatchDir(dir string) string {
	return filepath.Join(dir, "match")
}

// MatchFilePath returns the path of the match file with the given
// stem.
func MatchFilePath(dir, stem string) string {
	return filepath.Join(MatchDir(dir), stem+".yml")
}

// MatchFiles walks the match directory and returns the stems of every
// .yml/.yaml file found, sorted. Symlinked subdirectories are
// followed the way espanso itself resolves them.
func MatchFiles(dir string) ([]string, error) {
	matchDir := MatchDir(dir)
	var stems []string
	err := filepath.WalkDir(matchDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// A vanished entry mid-walk is not fatal
			log.LogWithFields(log.F("path", path), log.F("error", err)).Debug("Skipping unreadable entry")
			return nil
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if matchExtensions[ext] {
			base := filepath.Base(path)
			stems = append(stems, strings.TrimSuffix(base, filepath.Ext(base)))
		}
		return nil
	})
	if err != nil {
		return nil, errors.NewFileError("failed to walk match directory", matchDir, errors.FileOperationFailed, err)
	}
	sort.Strings(stems)
	return stems, nil
}

// ValidFileName reports whether name is acceptable as a match file
// stem: word characters, dashes, dots and spaces only.
func ValidFileName(name string) bool {
	return fileNamePattern.MatchString(name)
}

// CreateMatchFile writes a fresh match file with an empty matches
// list. The ".yml" suffix is optional in name.
func CreateMatchFile(filesystem fsio.FileSystem, dir, name string) (string, error) {
	stem := strings.TrimSuffix(strings.TrimSuffix(name, ".yml"), ".yaml")
	if strings.TrimSpace(stem) == "" || !ValidFileName(stem) {
		return "", errors.NewKind("invalid match file name", errors.InvalidFileName)
	}
	path := MatchFilePath(dir, stem)
	if _, err := os.Stat(path); err == nil {
		return "", errors.NewFileError("match file already exists", path, errors.FileOperationFailed, nil)
	}
	data, err := schema.SerializeMatchFile(&schema.MatchFile{})
	if err != nil {
		return "", err
	}
	if err := filesystem.Write(path, data); err != nil {
		return "", err
	}
	log.LogWithFields(log.F("path", path)).Info("Created match file")
	return path, nil
}

// RenameMatchFile renames a match file stem within the workspace and
// returns the new path.
func RenameMatchFile(dir, oldStem, newStem string) (string, error) {
	if !ValidFileName(newStem) {
		return "", errors.NewKind("invalid match file name", errors.InvalidFileName)
	}
	from := MatchFilePath(dir, oldStem)
	to := MatchFilePath(dir, newStem)
	if _, err := os.Stat(to); err == nil {
		return "", errors.NewFileError("match file already exists", to, errors.FileOperationFailed, nil)
	}
	if err := os.Rename(from, to); err != nil {
		return "", errors.NewFileError("failed to rename match file", from, errors.FileOperationFailed, err)
	}
	log.LogWithFields(log.F("from", from), log.F("to", to)).Info("Renamed match file")
	return to, nil
}

// DeleteMatchFile removes a match file from the workspace.
func DeleteMatchFile(dir, stem string) error {
	path := MatchFilePath(dir, stem)
	if err := os.Remove(path); err != nil {
		kind := errors.FileOperationFailed
		if os.IsNotExist(err) {
			kind = errors.FileNotFound
		}
		return errors.NewFileError("failed to delete match file", path, kind, err)
	}
	log.LogWithFields(log.F("path", path)).Info("Deleted match file")
	return nil
}
