package domain

import "time"

// DefaultServerURL matches the backend's development listen address.
const DefaultServerURL = "http://localhost:5000"

// ClientSettings holds all ragchat configuration.
type ClientSettings struct {
	// ServerURL is the base URL of the document-chat backend.
	ServerURL string

	// RequestTimeout bounds status, chat, and session calls.
	// Zero means no deadline: requests run to completion or transport
	// failure, which is the reference client behaviour.
	RequestTimeout time.Duration

	// UploadTimeout bounds multipart uploads, which stream file content
	// and then wait for server-side ingestion. Zero means no deadline.
	UploadTimeout time.Duration

	// WatchDir, when set, is a drop folder scanned for new documents
	// to stage automatically while the chat UI is open.
	WatchDir string

	// ArchiveEnabled controls the local transcript archive.
	ArchiveEnabled bool

	// DataDir overrides where the transcript archive lives.
	// Empty means the default under the user's home directory.
	DataDir string

	// LogLevel is the minimum severity written to the log file.
	LogLevel string
}

// DefaultClientSettings returns settings with sensible defaults.
// Timeouts are left at zero so requests behave like the web client:
// they run until the transport gives up.
func DefaultClientSettings() ClientSettings {
	return ClientSettings{
		ServerURL:      DefaultServerURL,
		ArchiveEnabled: true,
		LogLevel:       "info",
	}
}
