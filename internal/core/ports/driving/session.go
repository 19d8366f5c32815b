package driving

import (
	"context"

	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/core/domain"
)

// SessionService owns the client's view of the server session: whether
// documents are loaded and what the conversation transcript contains.
//
// All other services route their state changes through it, so its view
// is the single source of truth for the UI.
type SessionService interface {
	// RefreshStatus asks the server whether documents are loaded and
	// records the answer. The transcript is never touched; refreshing
	// is an idempotent read used at startup and by the status command.
	RefreshStatus(ctx context.Context) (domain.ServerStatus, error)

	// ClearSession asks the server to forget its conversation memory.
	// On success local state resets to empty. On failure local state is
	// untouched and the caller proceeds; clearing is best-effort.
	ClearSession(ctx context.Context) error

	// Cleanup asks the server to delete uploaded documents and session
	// state. On success local state resets to empty. On failure local
	// state is untouched so it still reflects the last known server
	// state.
	Cleanup(ctx context.Context) error

	// DocumentsLoaded reports the client's belief about the corpus.
	DocumentsLoaded() bool

	// History returns a copy of the transcript in chronological order.
	History() []domain.ChatMessage

	// Phase derives the lifecycle phase from the current state.
	Phase() domain.SessionPhase
}
