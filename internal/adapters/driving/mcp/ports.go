package mcp

import (
	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Session reports and resets the server session.
	Session driving.SessionService

	// Chat conducts the conversation with the loaded documents.
	Chat driving.ChatService

	// Staging validates files before upload.
	Staging driving.StagingService

	// Upload pushes staged files to the server.
	Upload driving.UploadService

	// Transcripts browses the local conversation archive.
	Transcripts driving.TranscriptService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Session == nil {
		return ErrMissingSessionService
	}
	if p.Chat == nil {
		return ErrMissingChatService
	}
	// Staging, Upload and Transcripts are optional; the tools and
	// resources that need them report their absence per call.
	return nil
}
