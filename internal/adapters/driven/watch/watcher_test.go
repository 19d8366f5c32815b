package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/core/domain"
)

func TestIsCandidate(t *testing.T) {
	tests := []struct {
		name string
		path string
		want bool
	}{
		{"pdf", "/drop/report.pdf", true},
		{"txt", "/drop/notes.txt", true},
		{"uppercase extension", "/drop/REPORT.PDF", true},
		{"unsupported", "/drop/malware.exe", false},
		{"no extension", "/drop/README", false},
		{"hidden file", "/drop/.notes.txt", false},
		{"editor temp", "/drop/notes.txt~", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isCandidate(tt.path))
		})
	}
}

func TestNewDirWatcher_MissingDir(t *testing.T) {
	_, err := NewDirWatcher(Config{Dir: filepath.Join(t.TempDir(), "missing")})
	assert.Error(t, err)
}

func TestNewDirWatcher_NotADir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))

	_, err := NewDirWatcher(Config{Dir: path})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDirWatcher_EmitsSettledFile(t *testing.T) {
	dir := t.TempDir()

	watcher, err := NewDirWatcher(Config{Dir: dir, Debounce: 20 * time.Millisecond})
	require.NoError(t, err)
	defer watcher.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := watcher.Watch(ctx)
	require.NoError(t, err)

	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o600))

	select {
	case got := <-events:
		assert.Equal(t, path, got)
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for watch event")
	}
}

func TestDirWatcher_SkipsUnsupportedFiles(t *testing.T) {
	dir := t.TempDir()

	watcher, err := NewDirWatcher(Config{Dir: dir, Debounce: 20 * time.Millisecond})
	require.NoError(t, err)
	defer watcher.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := watcher.Watch(ctx)
	require.NoError(t, err)

	// The unsupported file lands first; only the supported one may
	// come out of the channel.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "junk.exe"), []byte("x"), 0o600))
	supported := filepath.Join(dir, "report.pdf")
	require.NoError(t, os.WriteFile(supported, []byte("%PDF"), 0o600))

	select {
	case got := <-events:
		assert.Equal(t, supported, got)
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for watch event")
	}
}

func TestDirWatcher_CloseStopsChannel(t *testing.T) {
	dir := t.TempDir()

	watcher, err := NewDirWatcher(Config{Dir: dir, Debounce: 20 * time.Millisecond})
	require.NoError(t, err)

	events, err := watcher.Watch(context.Background())
	require.NoError(t, err)

	require.NoError(t, watcher.Close())

	select {
	case _, open := <-events:
		assert.False(t, open)
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for channel close")
	}
}

func TestDirWatcher_CloseTwice(t *testing.T) {
	dir := t.TempDir()

	watcher, err := NewDirWatcher(Config{Dir: dir})
	require.NoError(t, err)

	require.NoError(t, watcher.Close())
	assert.NoError(t, watcher.Close())
}
