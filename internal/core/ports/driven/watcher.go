package driven

import "context"

// StagingWatcher watches a drop folder for documents to stage.
//
// The watcher only discovers candidate paths; validation happens in the
// staging service like any other source of files.
type StagingWatcher interface {
	// Watch begins watching and returns a channel of candidate paths.
	// The channel closes when ctx is cancelled or the watcher is closed.
	Watch(ctx context.Context) (<-chan string, error)

	// Close stops watching and releases resources.
	Close() error
}
