package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/core/domain"
	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/core/ports/driven"
	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/core/ports/driving"
)

// Ensure TranscriptService implements the interface.
var _ driving.TranscriptService = (*TranscriptService)(nil)

// TranscriptService archives conversations locally.
//
// It tracks which transcript is open and at what position the next
// message lands. All methods are safe on a nil receiver so callers
// can hold a nil service when the archive is disabled.
type TranscriptService struct {
	store driven.TranscriptStore

	mu      sync.Mutex
	open    *domain.Transcript
	nextPos int
}

// NewTranscriptService creates a new transcript service.
func NewTranscriptService(store driven.TranscriptStore) *TranscriptService {
	return &TranscriptService{store: store}
}

// Record appends a rendered message to the open transcript. The first
// user message opens a transcript and provides its title; bot notices
// arriving before any user turn are not archived.
func (t *TranscriptService) Record(ctx context.Context, msg domain.ChatMessage) error {
	if t == nil || t.store == nil {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.open == nil {
		if msg.Sender != domain.SenderUser {
			return nil
		}
		if err := t.openTranscript(ctx, msg); err != nil {
			return err
		}
	}

	if err := t.store.AppendMessage(ctx, t.open.ID, t.nextPos, msg); err != nil {
		return fmt.Errorf("append message: %w", err)
	}
	t.nextPos++
	return nil
}

// Rewrite replaces the open transcript's messages after the server
// returned an authoritative conversation.
func (t *TranscriptService) Rewrite(ctx context.Context, msgs []domain.ChatMessage) error {
	if t == nil || t.store == nil {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.open == nil {
		first := firstUserMessage(msgs)
		if first == nil {
			return nil
		}
		if err := t.openTranscript(ctx, *first); err != nil {
			return err
		}
	}

	if err := t.store.ReplaceMessages(ctx, t.open.ID, msgs); err != nil {
		return fmt.Errorf("replace messages: %w", err)
	}
	t.nextPos = len(msgs)
	return nil
}

// End closes the open transcript. The next recorded message opens a
// fresh one.
func (t *TranscriptService) End() {
	if t == nil {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.open = nil
	t.nextPos = 0
}

// List returns archived transcripts, newest first.
func (t *TranscriptService) List(ctx context.Context) ([]domain.Transcript, error) {
	if t == nil || t.store == nil {
		return nil, domain.ErrArchiveDisabled
	}
	return t.store.ListTranscripts(ctx)
}

// Get returns one transcript and its messages.
func (t *TranscriptService) Get(ctx context.Context, id string) (*domain.Transcript, []domain.ChatMessage, error) {
	if t == nil || t.store == nil {
		return nil, nil, domain.ErrArchiveDisabled
	}

	transcript, err := t.store.GetTranscript(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	msgs, err := t.store.GetMessages(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return transcript, msgs, nil
}

// openTranscript starts a transcript titled off the given message.
// Caller holds the lock.
func (t *TranscriptService) openTranscript(ctx context.Context, msg domain.ChatMessage) error {
	tr := domain.Transcript{
		ID:        uuid.NewString(),
		Title:     domain.TitleFromText(msg.Text),
		StartedAt: msg.Timestamp,
	}
	if err := t.store.SaveTranscript(ctx, tr); err != nil {
		return fmt.Errorf("open transcript: %w", err)
	}
	t.open = &tr
	t.nextPos = 0
	return nil
}

// firstUserMessage returns the first user-authored message, or nil.
func firstUserMessage(msgs []domain.ChatMessage) *domain.ChatMessage {
	for i := range msgs {
		if msgs[i].Sender == domain.SenderUser {
			return &msgs[i]
		}
	}
	return nil
}
