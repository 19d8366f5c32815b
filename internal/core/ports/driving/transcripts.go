package driving

import (
	"context"

	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/core/domain"
)

// TranscriptService archives conversations locally.
//
// Recording is passive: the chat flow hands over every message it
// renders and the service keeps the archive in step. When the archive
// is disabled all recording methods succeed as no-ops and the browse
// methods return domain.ErrArchiveDisabled.
type TranscriptService interface {
	// Record appends a rendered message to the open transcript. The
	// first user message opens a transcript and provides its title.
	Record(ctx context.Context, msg domain.ChatMessage) error

	// Rewrite replaces the open transcript's messages after the server
	// returned an authoritative conversation.
	Rewrite(ctx context.Context, msgs []domain.ChatMessage) error

	// End closes the open transcript. The next recorded message opens
	// a fresh one.
	End()

	// List returns archived transcripts, newest first.
	List(ctx context.Context) ([]domain.Transcript, error)

	// Get returns one transcript and its messages.
	Get(ctx context.Context, id string) (*domain.Transcript, []domain.ChatMessage, error)
}
