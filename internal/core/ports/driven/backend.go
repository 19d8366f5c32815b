package driven

import (
	"context"

	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/core/domain"
)

// Backend is the document-chat server this client drives.
//
// All methods issue one HTTP request and return the decoded reply.
// The backend owns ingestion, retrieval, and the conversation memory;
// the client never retries and never cancels an issued request.
type Backend interface {
	// Status reports the server's self-described state. Used once at
	// startup and by the status command; it never mutates anything.
	Status(ctx context.Context) (domain.ServerStatus, error)

	// Upload submits the files as a single multipart request. The
	// server replaces its entire document set with this batch and
	// blocks until ingestion finishes.
	Upload(ctx context.Context, files []domain.StagedFile) (domain.UploadReceipt, error)

	// Chat sends one user message and returns the server's reply.
	Chat(ctx context.Context, message string) (domain.ChatReply, error)

	// ClearSession asks the server to forget its conversation memory.
	ClearSession(ctx context.Context) error

	// Cleanup asks the server to delete uploaded documents along with
	// the conversation memory.
	Cleanup(ctx context.Context) error
}
