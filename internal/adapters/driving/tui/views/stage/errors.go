package stage

import "errors"

// Error definitions for the staging view.
var (
	// ErrNoStagingService indicates that no staging service was provided.
	ErrNoStagingService = errors.New("staging service is required")

	// ErrNoUploadService indicates that no upload service was provided.
	ErrNoUploadService = errors.New("upload service is required")
)
