package driving

import (
	"context"

	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/core/domain"
)

// ChatService conducts the conversation with the loaded documents.
//
// Post and Exchange exist separately so an interactive UI can render
// the user's message immediately and run the network round trip in the
// background. One-shot callers use Send.
type ChatService interface {
	// Post validates the message and appends it to the transcript as
	// the user's turn, stamped with the current wall clock. The text is
	// trimmed first. Returns domain.ErrEmptyMessage or
	// domain.ErrNoDocuments without touching the transcript or the
	// network.
	Post(text string) (domain.ChatMessage, error)

	// Exchange sends a previously posted message to the server and
	// reconciles the transcript with the reply. When the server returns
	// the full conversation the transcript is rebuilt from it; when it
	// returns only an answer the answer is appended. Failures become
	// bot messages in the transcript and are reported in the outcome,
	// not as errors.
	Exchange(ctx context.Context, text string) domain.ChatOutcome

	// Send is Post followed by Exchange.
	Send(ctx context.Context, text string) (domain.ChatOutcome, error)
}
