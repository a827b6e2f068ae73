// Package session holds the per-document edit state: the working
// copy, the last-saved snapshot, dirty tracking, and the save/reload
// transitions. One session owns one open document; the presentation
// layer is handed the session by reference, there is no global
// document registry.
package session

import (
	"sync"

	"espedit/internal/errors"
	"espedit/internal/fsio"
	"espedit/internal/log"
	"espedit/internal/schema"
	"espedit/internal/validate"
)

// State is the lifecycle state of a session.
type State int

// Session states
const (
	Unloaded State = iota
	Clean
	Dirty
)

func (s State) String() string {
	switch s {
	case Clean:
		return "clean"
	case Dirty:
		return "dirty"
	}
	return "unloaded"
}

// Session is the mutable working copy of one open document. Methods
// are safe to call from an I/O goroutine and the UI thread, but the
// session has one logical owner: edits are serialized by the mutex,
// not merged.
type Session struct {
	mu sync.Mutex

	fs   fsio.FileSystem
	kind schema.DocKind
	path string

	state    State
	doc      schema.Document
	snapshot schema.Document
	conflict bool
}

// New creates an unloaded session for the document at path.
func New(fs fsio.FileSystem, kind schema.DocKind, path string) *Session {
	return &Session{
		fs:   fs,
		kind: kind,
		path: path,
	}
}

// Path returns the document's file path (its identity).
func (s *Session) Path() string {
	return s.path
}

// Kind returns the document kind the session edits.
func (s *Session) Kind() schema.DocKind {
	return s.kind
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dirty reports whether unsaved edits exist.
func (s *Session) Dirty() bool {
	return s.State() == Dirty
}

// InConflict reports whether the file changed on disk while local
// edits were pending.
func (s *Session) InConflict() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conflict
}

// Load reads and parses the document. On parse or read failure the
// session stays Unloaded and the error is surfaced to the caller.
func (s *Session) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.fs.Read(s.path)
	if err != nil {
		return err
	}
	doc, err := schema.ParseDocument(s.kind, data)
	if err != nil {
		log.LogWithFields(log.F("path", s.path), log.F("error", err)).Warn("Failed to parse document")
		return err
	}
	s.doc = doc
	s.snapshot = doc.Clone()
	s.state = Clean
	s.conflict = false
	log.LogWithFields(log.F("path", s.path), log.F("kind", s.kind.String())).Debug("Document loaded")
	return nil
}

// Document returns a deep copy of the working document for display.
// Mutation goes through Update so dirty tracking stays correct.
func (s *Session) Document() schema.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

// Update applies an edit to the working copy. The session moves to
// Dirty unless the edit brings the document back to its last-saved
// form.
func (s *Session) Update(edit func(*schema.Document)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Unloaded {
		return errors.NewKind("no document loaded", errors.SessionNotLoaded)
	}
	edit(&s.doc)
	if s.doc.Equal(s.snapshot) {
		s.state = Clean
	} else {
		s.state = Dirty
	}
	return nil
}

// Validate reports the current document's issues without touching it.
func (s *Session) Validate() []validate.Issue {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Unloaded {
		return nil
	}
	return validate.Document(s.doc)
}

// Save validates and persists the working copy. A save is refused
// while Error-severity issues exist (the session stays Dirty) or
// while an external change is unresolved; warning-severity issues are
// returned but do not block, the caller confirms those before calling.
func (s *Session) Save() ([]validate.Issue, error) {
	return s.save(false)
}

// ForceSave persists the working copy even if the file changed on
// disk since load, overwriting the external change. Validation still
// applies.
func (s *Session) ForceSave() ([]validate.Issue, error) {
	return s.save(true)
}

func (s *Session) save(force bool) ([]validate.Issue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Unloaded {
		return nil, errors.NewKind("no document loaded", errors.SessionNotLoaded)
	}
	issues := validate.Document(s.doc)
	if validate.HasErrors(issues) {
		log.LogWithFields(log.F("path", s.path), log.F("issues", len(issues))).Warn("Save refused by validation")
		return issues, errors.NewKind("document has validation errors", errors.ValidationBlocked)
	}
	if s.conflict && !force {
		return issues, errors.NewKind("file changed on disk since load", errors.ConflictPending)
	}

	data, err := s.doc.Serialize()
	if err != nil {
		return issues, err
	}
	if err := s.fs.Write(s.path, data); err != nil {
		return issues, err
	}
	s.snapshot = s.doc.Clone()
	s.state = Clean
	s.conflict = false
	log.LogWithFields(log.F("path", s.path)).Info("Document saved")
	return issues, nil
}

// Reload discards local edits and re-reads the document from disk,
// resolving a conflict in favor of the external change.
func (s *Session) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.fs.Read(s.path)
	if err != nil {
		return err
	}
	doc, err := schema.ParseDocument(s.kind, data)
	if err != nil {
		return err
	}
	s.doc = doc
	s.snapshot = doc.Clone()
	s.state = Clean
	s.conflict = false
	log.LogWithFields(log.F("path", s.path)).Info("Document reloaded from disk")
	return nil
}

// Revert resets the working copy to the last-saved snapshot without
// touching the disk.
func (s *Session) Revert() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Unloaded {
		return errors.NewKind("no document loaded", errors.SessionNotLoaded)
	}
	s.doc = s.snapshot.Clone()
	s.state = Clean
	return nil
}

// Close discards everything and returns the session to Unloaded.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = schema.Document{}
	s.snapshot = schema.Document{}
	s.state = Unloaded
	s.conflict = false
}

// NotifyExternalChange records that the file changed on disk. While
// the session is dirty this raises a conflict the UI must resolve via
// Reload or ForceSave; a clean session can simply be reloaded. The
// return value reports whether a conflict is now pending.
func (s *Session) NotifyExternalChange() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Dirty {
		return false
	}
	if !s.conflict {
		log.LogWithFields(log.F("path", s.path)).Warn("File changed on disk with unsaved edits")
	}
	s.conflict = true
	return true
}
