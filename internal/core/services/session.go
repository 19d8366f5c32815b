package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/core/domain"
	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/core/ports/driven"
	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/core/ports/driving"
	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/logger"
)

// Ensure SessionService implements the interface.
var _ driving.SessionService = (*SessionService)(nil)

// SessionService owns the client's view of the server session.
//
// Two locks with distinct jobs: opMu serializes network operations so
// at most one request is in flight at a time, and mu guards the state
// fields. mu is never held across a network call, so UI reads stay
// responsive while a request runs.
type SessionService struct {
	backend     driven.Backend
	transcripts *TranscriptService

	// opMu is shared with the upload and chat services via lockOps so
	// the whole application issues one request at a time.
	opMu sync.Mutex

	mu              sync.RWMutex
	documentsLoaded bool
	history         []domain.ChatMessage
}

// NewSessionService creates a new session service.
func NewSessionService(backend driven.Backend) *SessionService {
	return &SessionService{backend: backend}
}

// SetTranscripts wires the transcript archive so session resets close
// the open transcript. May stay nil when the archive is disabled.
func (s *SessionService) SetTranscripts(transcripts *TranscriptService) {
	s.transcripts = transcripts
}

// RefreshStatus asks the server whether documents are loaded and
// records the answer. The transcript is never touched.
func (s *SessionService) RefreshStatus(ctx context.Context) (domain.ServerStatus, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	status, err := s.backend.Status(ctx)
	if err != nil {
		logger.Error(err, "status check failed")
		return domain.ServerStatus{}, fmt.Errorf("status check: %w", err)
	}

	s.mu.Lock()
	s.documentsLoaded = status.DocumentsLoaded
	s.mu.Unlock()

	logger.Debug("status: documents_loaded=%v redis_connected=%v", status.DocumentsLoaded, status.RedisConnected)
	return status, nil
}

// ClearSession asks the server to forget its conversation memory.
// Best-effort: the caller proceeds whether or not it worked.
func (s *SessionService) ClearSession(ctx context.Context) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()
	return s.clearSession(ctx)
}

// clearSession is ClearSession minus the operation lock, for callers
// that already hold it.
func (s *SessionService) clearSession(ctx context.Context) error {
	if err := s.backend.ClearSession(ctx); err != nil {
		// Log and keep state as-is. The server may still know this
		// conversation, so pretending otherwise would be a lie.
		logger.Warn("clear session failed: %v", err)
		return fmt.Errorf("clear session: %w", err)
	}

	s.mu.Lock()
	s.documentsLoaded = false
	s.history = nil
	s.mu.Unlock()
	s.transcripts.End()

	logger.Debug("session cleared")
	return nil
}

// Cleanup asks the server to delete uploaded documents and session
// state. Unlike ClearSession this is user-invoked and destructive, so
// a failure keeps local state untouched: server-side resources may
// still exist.
func (s *SessionService) Cleanup(ctx context.Context) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if err := s.backend.Cleanup(ctx); err != nil {
		logger.Error(err, "cleanup failed")
		return fmt.Errorf("cleanup: %w", err)
	}

	s.mu.Lock()
	s.documentsLoaded = false
	s.history = nil
	s.mu.Unlock()
	s.transcripts.End()

	logger.Info("cleanup complete")
	return nil
}

// DocumentsLoaded reports the client's belief about the corpus.
func (s *SessionService) DocumentsLoaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.documentsLoaded
}

// History returns a copy of the transcript in chronological order.
func (s *SessionService) History() []domain.ChatMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := make([]domain.ChatMessage, len(s.history))
	copy(history, s.history)
	return history
}

// Phase derives the lifecycle phase from the current state.
func (s *SessionService) Phase() domain.SessionPhase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.PhaseFor(s.documentsLoaded, len(s.history))
}

// lockOps takes the operation lock on behalf of a sibling service so
// upload and chat round trips are serialized with session operations.
func (s *SessionService) lockOps() func() {
	s.opMu.Lock()
	return s.opMu.Unlock
}

// noteUploadSucceeded records a confirmed upload: documents are loaded
// and the conversation starts fresh.
func (s *SessionService) noteUploadSucceeded() {
	s.mu.Lock()
	s.documentsLoaded = true
	s.history = nil
	s.mu.Unlock()
	s.transcripts.End()
}

// appendMessage adds one rendered message to the transcript.
func (s *SessionService) appendMessage(msg domain.ChatMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, msg)
}

// replaceHistory swaps the transcript for a server-authoritative one.
func (s *SessionService) replaceHistory(msgs []domain.ChatMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = msgs
}
