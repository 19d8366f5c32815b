// Package tui provides an interactive terminal user interface for ragchat.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/core/ports/driven"
	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Session manages the server-side conversation lifecycle.
	Session driving.SessionService

	// Staging validates and queues documents for upload.
	Staging driving.StagingService

	// Upload pushes the staged documents to the server.
	Upload driving.UploadService

	// Chat runs question and answer exchanges.
	Chat driving.ChatService

	// Watcher feeds documents dropped into the watch folder. Optional;
	// when nil the watch folder is disabled.
	Watcher driven.StagingWatcher
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	session driving.SessionService,
	staging driving.StagingService,
	upload driving.UploadService,
	chat driving.ChatService,
) *Ports {
	return &Ports{
		Session: session,
		Staging: staging,
		Upload:  upload,
		Chat:    chat,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.Session == nil {
		return ErrMissingSessionService
	}
	if p.Staging == nil {
		return ErrMissingStagingService
	}
	if p.Upload == nil {
		return ErrMissingUploadService
	}
	if p.Chat == nil {
		return ErrMissingChatService
	}
	return nil
}
