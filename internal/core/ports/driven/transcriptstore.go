package driven

import (
	"context"

	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/core/domain"
)

// TranscriptStore persists archived conversations.
// Backed by SQLite; a memory implementation exists for tests.
type TranscriptStore interface {
	// SaveTranscript stores or updates a transcript record.
	SaveTranscript(ctx context.Context, t domain.Transcript) error

	// AppendMessage stores a message at the given position within a
	// transcript. Positions start at zero and are dense.
	AppendMessage(ctx context.Context, transcriptID string, position int, msg domain.ChatMessage) error

	// ReplaceMessages atomically swaps all messages of a transcript.
	ReplaceMessages(ctx context.Context, transcriptID string, msgs []domain.ChatMessage) error

	// GetTranscript retrieves a transcript by ID.
	GetTranscript(ctx context.Context, id string) (*domain.Transcript, error)

	// GetMessages retrieves a transcript's messages in position order.
	GetMessages(ctx context.Context, transcriptID string) ([]domain.ChatMessage, error)

	// ListTranscripts returns all transcripts, newest first.
	ListTranscripts(ctx context.Context) ([]domain.Transcript, error)

	// DeleteTranscript removes a transcript and its messages.
	DeleteTranscript(ctx context.Context, id string) error

	// Close releases the underlying storage.
	Close() error
}
