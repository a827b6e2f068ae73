package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherReportsYAMLChanges(t *testing.T) {
	tempDir := t.TempDir()

	w, err := New()
	require.NoError(t, err, "New watcher creation failed")

	require.NoError(t, w.AddDirectory(tempDir), "Failed to add directory to watcher")
	require.NoError(t, w.Start(), "Failed to start watcher")
	defer w.Stop()

	assert.True(t, w.IsRunning())
	assert.Equal(t, []string{tempDir}, w.Directories())

	evChan := w.Events()
	require.NotNil(t, evChan)

	// Allow a brief moment for fsnotify to initialize watches
	time.Sleep(100 * time.Millisecond)

	// A non-YAML file must not produce an event.
	notePath := filepath.Join(tempDir, "notes.txt")
	require.NoError(t, os.WriteFile(notePath, []byte("ignored"), 0644))

	yamlPath := filepath.Join(tempDir, "base.yml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("matches: []\n"), 0644))

	select {
	case event, ok := <-evChan:
		require.True(t, ok, "Event channel closed unexpectedly")
		assert.Equal(t, yamlPath, event.Path, "Non-YAML event leaked through the filter")
		assert.True(t, event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Write))
		assert.False(t, event.Timestamp.IsZero())
	case <-time.After(3 * time.Second):
		t.Fatal("Timeout waiting for YAML change event")
	}
}

func TestWatcherStopClosesChannel(t *testing.T) {
	w, err := New()
	require.NoError(t, err)
	require.NoError(t, w.AddDirectory(t.TempDir()))
	require.NoError(t, w.Start())

	w.Stop()
	assert.False(t, w.IsRunning())

	// Stopping twice is harmless.
	w.Stop()

	select {
	case _, ok := <-w.Events():
		assert.False(t, ok, "Event channel should be closed after stop")
	case <-time.After(1 * time.Second):
		t.Fatal("Timeout waiting for event channel to close")
	}
}

func TestWatcherStopWhileEventsArrive(t *testing.T) {
	dir := t.TempDir()

	w, err := New()
	require.NoError(t, err)
	require.NoError(t, w.AddDirectory(dir))
	require.NoError(t, w.Start())

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 50; i++ {
			name := filepath.Join(dir, fmt.Sprintf("file%d.yml", i))
			if err := os.WriteFile(name, []byte("matches: []\n"), 0644); err != nil {
				return
			}
		}
	}()

	time.Sleep(10 * time.Millisecond)
	w.Stop()
	<-done

	// Draining until closure must terminate without a panic, however
	// many events were in flight when Stop ran.
	for range w.Events() {
	}
	assert.False(t, w.IsRunning())
}

func TestWatcherRejectsDoubleStart(t *testing.T) {
	w, err := New()
	require.NoError(t, err)
	require.NoError(t, w.AddDirectory(t.TempDir()))
	require.NoError(t, w.Start())
	defer w.Stop()

	assert.Error(t, w.Start())
}

func TestWatcherAddMissingDirectory(t *testing.T) {
	w, err := New()
	require.NoError(t, err)
	defer w.Stop()

	err = w.AddDirectory(filepath.Join(t.TempDir(), "does-not-exist"))
	assert.Error(t, err)
}

func TestIsDocumentEvent(t *testing.T) {
	assert.True(t, isDocumentEvent(fsnotify.Event{Name: "match/base.yml", Op: fsnotify.Write}))
	assert.True(t, isDocumentEvent(fsnotify.Event{Name: "config/default.YAML", Op: fsnotify.Create}))
	assert.True(t, isDocumentEvent(fsnotify.Event{Name: "match/base.yml", Op: fsnotify.Remove}))

	assert.False(t, isDocumentEvent(fsnotify.Event{Name: "match/notes.txt", Op: fsnotify.Write}))
	assert.False(t, isDocumentEvent(fsnotify.Event{Name: "match/base.yml", Op: fsnotify.Chmod}))
}
