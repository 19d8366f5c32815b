package mcp

import (
	"context"
	"time"

	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/core/domain"
)

// mockSessionService is a mock implementation of driving.SessionService.
type mockSessionService struct {
	status     domain.ServerStatus
	statusErr  error
	clearErr   error
	cleanupErr error
	loaded     bool
	history    []domain.ChatMessage
	clearCalls int
}

func (m *mockSessionService) RefreshStatus(_ context.Context) (domain.ServerStatus, error) {
	return m.status, m.statusErr
}

func (m *mockSessionService) ClearSession(_ context.Context) error {
	m.clearCalls++
	return m.clearErr
}

func (m *mockSessionService) Cleanup(_ context.Context) error {
	return m.cleanupErr
}

func (m *mockSessionService) DocumentsLoaded() bool {
	return m.loaded
}

func (m *mockSessionService) History() []domain.ChatMessage {
	return m.history
}

func (m *mockSessionService) Phase() domain.SessionPhase {
	return domain.PhaseFor(m.loaded, len(m.history))
}

// mockChatService is a mock implementation of driving.ChatService.
type mockChatService struct {
	outcome  domain.ChatOutcome
	sendErr  error
	sentText string
}

func (m *mockChatService) Post(text string) (domain.ChatMessage, error) {
	if m.sendErr != nil {
		return domain.ChatMessage{}, m.sendErr
	}
	return domain.UserMessage(text, time.Time{}), nil
}

func (m *mockChatService) Exchange(_ context.Context, _ string) domain.ChatOutcome {
	return m.outcome
}

func (m *mockChatService) Send(_ context.Context, text string) (domain.ChatOutcome, error) {
	m.sentText = text
	return m.outcome, m.sendErr
}

// mockStagingService is a mock implementation of driving.StagingService.
type mockStagingService struct {
	result      domain.StageResult
	files       []domain.StagedFile
	removeErr   error
	stagedPaths []string
	clearCalls  int
}

func (m *mockStagingService) Stage(paths []string) domain.StageResult {
	m.stagedPaths = paths
	return m.result
}

func (m *mockStagingService) Remove(_ int) error {
	return m.removeErr
}

func (m *mockStagingService) Files() []domain.StagedFile {
	return m.files
}

func (m *mockStagingService) Clear() {
	m.clearCalls++
}

func (m *mockStagingService) CanUpload() bool {
	return len(m.result.Accepted) > 0
}

// mockUploadService is a mock implementation of driving.UploadService.
type mockUploadService struct {
	outcome domain.UploadOutcome
	err     error
	calls   int
}

func (m *mockUploadService) UploadStaged(_ context.Context) (domain.UploadOutcome, error) {
	m.calls++
	return m.outcome, m.err
}

// mockTranscriptService is a mock implementation of driving.TranscriptService.
type mockTranscriptService struct {
	transcripts []domain.Transcript
	listErr     error
	transcript  *domain.Transcript
	messages    []domain.ChatMessage
	getErr      error
	recordErr   error
	rewriteErr  error
}

func (m *mockTranscriptService) Record(_ context.Context, _ domain.ChatMessage) error {
	return m.recordErr
}

func (m *mockTranscriptService) Rewrite(_ context.Context, _ []domain.ChatMessage) error {
	return m.rewriteErr
}

func (m *mockTranscriptService) End() {}

func (m *mockTranscriptService) List(_ context.Context) ([]domain.Transcript, error) {
	return m.transcripts, m.listErr
}

func (m *mockTranscriptService) Get(_ context.Context, _ string) (*domain.Transcript, []domain.ChatMessage, error) {
	return m.transcript, m.messages, m.getErr
}
