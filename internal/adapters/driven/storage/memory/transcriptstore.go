// Package memory provides in-memory implementations of the storage
// ports, used in tests and when the archive runs without persistence.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/core/domain"
	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/core/ports/driven"
)

// Ensure TranscriptStore implements the interface.
var _ driven.TranscriptStore = (*TranscriptStore)(nil)

// TranscriptStore is an in-memory implementation of driven.TranscriptStore.
type TranscriptStore struct {
	mu          sync.RWMutex
	transcripts map[string]domain.Transcript
	messages    map[string][]domain.ChatMessage
}

// NewTranscriptStore creates a new in-memory transcript store.
func NewTranscriptStore() *TranscriptStore {
	return &TranscriptStore{
		transcripts: make(map[string]domain.Transcript),
		messages:    make(map[string][]domain.ChatMessage),
	}
}

// SaveTranscript stores or updates a transcript record.
func (s *TranscriptStore) SaveTranscript(_ context.Context, t domain.Transcript) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcripts[t.ID] = t
	return nil
}

// AppendMessage stores a message at the given position.
func (s *TranscriptStore) AppendMessage(_ context.Context, transcriptID string, position int, msg domain.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.transcripts[transcriptID]; !ok {
		return domain.ErrNotFound
	}

	msgs := s.messages[transcriptID]
	if position < len(msgs) {
		msgs[position] = msg
	} else {
		msgs = append(msgs, msg)
	}
	s.messages[transcriptID] = msgs
	return nil
}

// ReplaceMessages atomically swaps all messages of a transcript.
func (s *TranscriptStore) ReplaceMessages(_ context.Context, transcriptID string, msgs []domain.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.transcripts[transcriptID]; !ok {
		return domain.ErrNotFound
	}

	copied := make([]domain.ChatMessage, len(msgs))
	copy(copied, msgs)
	s.messages[transcriptID] = copied
	return nil
}

// GetTranscript retrieves a transcript by ID.
func (s *TranscriptStore) GetTranscript(_ context.Context, id string) (*domain.Transcript, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.transcripts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	t.MessageCount = len(s.messages[id])
	return &t, nil
}

// GetMessages retrieves a transcript's messages in position order.
func (s *TranscriptStore) GetMessages(_ context.Context, transcriptID string) ([]domain.ChatMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.transcripts[transcriptID]; !ok {
		return nil, domain.ErrNotFound
	}

	msgs := s.messages[transcriptID]
	copied := make([]domain.ChatMessage, len(msgs))
	copy(copied, msgs)
	return copied, nil
}

// ListTranscripts returns all transcripts, newest first.
func (s *TranscriptStore) ListTranscripts(_ context.Context) ([]domain.Transcript, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]domain.Transcript, 0, len(s.transcripts))
	for id, t := range s.transcripts {
		t.MessageCount = len(s.messages[id])
		list = append(list, t)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].StartedAt.After(list[j].StartedAt)
	})
	return list, nil
}

// DeleteTranscript removes a transcript and its messages.
func (s *TranscriptStore) DeleteTranscript(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.transcripts[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.transcripts, id)
	delete(s.messages, id)
	return nil
}

// Close releases nothing for the in-memory store.
func (s *TranscriptStore) Close() error {
	return nil
}
