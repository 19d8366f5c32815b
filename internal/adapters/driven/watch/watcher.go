// Package watch provides a filesystem implementation of the staging watcher.
//
// The watcher observes a single drop directory and emits the path of each
// supported document that appears or changes there. Events are debounced
// per path, so a file still being copied settles before it is reported,
// and throttled through a token bucket so a bulk copy into the directory
// does not flood the consumer.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/core/domain"
	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/core/ports/driven"
	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/logger"
)

// Ensure DirWatcher implements the interface.
var _ driven.StagingWatcher = (*DirWatcher)(nil)

// Default tuning. Debounce must outlast one copy-in-progress write burst;
// the bucket admits a small batch at once and then one file per second.
const (
	DefaultDebounce        = 500 * time.Millisecond
	DefaultEventsPerSecond = 1.0
	DefaultBurst           = 8
)

// Config holds configuration for a directory watcher.
type Config struct {
	// Dir is the directory to observe. Must exist.
	Dir string

	// Debounce is how long a path must stay quiet before it is emitted.
	Debounce time.Duration

	// EventsPerSecond and Burst tune the emission token bucket.
	EventsPerSecond float64
	Burst           int
}

// DirWatcher watches one directory for supported documents.
type DirWatcher struct {
	watcher  *fsnotify.Watcher
	dir      string
	debounce time.Duration
	limiter  *rate.Limiter

	mu     sync.Mutex
	timers map[string]*time.Timer

	startOnce sync.Once
	stopOnce  sync.Once
	done      chan struct{}
}

// NewDirWatcher creates a watcher for the configured directory.
func NewDirWatcher(cfg Config) (*DirWatcher, error) {
	info, err := os.Stat(cfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("stat watch dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("watch dir %s: %w", cfg.Dir, domain.ErrInvalidInput)
	}

	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if cfg.EventsPerSecond <= 0 {
		cfg.EventsPerSecond = DefaultEventsPerSecond
	}
	if cfg.Burst <= 0 {
		cfg.Burst = DefaultBurst
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	return &DirWatcher{
		watcher:  watcher,
		dir:      cfg.Dir,
		debounce: cfg.Debounce,
		limiter:  rate.NewLimiter(rate.Limit(cfg.EventsPerSecond), cfg.Burst),
		timers:   make(map[string]*time.Timer),
		done:     make(chan struct{}),
	}, nil
}

// Watch starts observing the directory. The returned channel carries the
// path of each settled candidate file and is closed when the context is
// cancelled or the watcher is closed.
func (w *DirWatcher) Watch(ctx context.Context) (<-chan string, error) {
	var startErr error
	out := make(chan string, 16)

	w.startOnce.Do(func() {
		if err := w.watcher.Add(w.dir); err != nil {
			startErr = fmt.Errorf("watch %s: %w", w.dir, err)
			return
		}

		go w.eventLoop(ctx, out)
		logger.Info("watching %s for documents", w.dir)
	})
	if startErr != nil {
		return nil, startErr
	}

	return out, nil
}

// Close stops the watcher and cancels pending debounce timers.
func (w *DirWatcher) Close() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)

		w.mu.Lock()
		for _, timer := range w.timers {
			timer.Stop()
		}
		clear(w.timers)
		w.mu.Unlock()

		err = w.watcher.Close()
	})
	return err
}

// eventLoop processes filesystem events until shutdown.
func (w *DirWatcher) eventLoop(ctx context.Context, out chan<- string) {
	defer close(out)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event, out)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Error(err, "watcher error")

		case <-ctx.Done():
			return

		case <-w.done:
			return
		}
	}
}

// handleEvent debounces create and write events for candidate files.
func (w *DirWatcher) handleEvent(event fsnotify.Event, out chan<- string) {
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
		return
	}
	if !isCandidate(event.Name) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, exists := w.timers[event.Name]; exists {
		timer.Stop()
	}

	path := event.Name
	w.timers[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.timers, path)
		w.mu.Unlock()

		w.emit(path, out)
	})
}

// emit forwards a settled path unless shut down or over the rate limit.
func (w *DirWatcher) emit(path string, out chan<- string) {
	select {
	case <-w.done:
		return
	default:
	}

	if !w.limiter.Allow() {
		logger.Warn("watcher dropped %s: too many new files", path)
		return
	}

	select {
	case out <- path:
	case <-w.done:
	default:
		// Consumer is not draining; dropping is safer than blocking
		// the event loop.
		logger.Warn("watcher dropped %s: consumer busy", path)
	}
}

// isCandidate reports whether the path looks like a stageable document.
// Hidden files and editor temp files are skipped.
func isCandidate(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~") {
		return false
	}

	_, ok := domain.FileTypeForName(base)
	return ok
}
