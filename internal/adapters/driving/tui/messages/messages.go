// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewStage is the file staging and upload view.
	ViewStage ViewType = iota
	// ViewChat is the conversation view.
	ViewChat
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewStage:
		return "stage"
	case ViewChat:
		return "chat"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// SessionStarted carries the result of the startup sequence: a
// best-effort session clear followed by a status probe.
type SessionStarted struct {
	ClearErr error
	Status   domain.ServerStatus
	Err      error
}

// StatusRefreshed carries a fresh server status probe.
type StatusRefreshed struct {
	Status domain.ServerStatus
	Err    error
}

// SessionCleared signals a manual clear-session finished.
type SessionCleared struct {
	Err error
}

// CleanupCompleted signals a destructive cleanup finished.
type CleanupCompleted struct {
	Err error
}

// FilesStaged carries the outcome of staging a batch of candidates.
type FilesStaged struct {
	Result domain.StageResult
}

// WatcherStarted carries the channel the staging watcher emits on.
type WatcherStarted struct {
	Paths <-chan string
}

// WatchedFileFound is sent when the staging watcher sees a new document.
type WatchedFileFound struct {
	Path string
}

// WatcherClosed is sent when the staging watcher channel drains.
type WatcherClosed struct{}

// UploadCompleted carries the outcome of the upload pipeline.
type UploadCompleted struct {
	Outcome domain.UploadOutcome
	Err     error
}

// ExchangeCompleted carries the server's half of one chat turn.
type ExchangeCompleted struct {
	Outcome domain.ChatOutcome
}

// ToastExpired removes a transient notice from the screen.
type ToastExpired struct {
	ID int
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
