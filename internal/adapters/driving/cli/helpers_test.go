package cli

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/core/domain"
)

// Func-field mocks for the driving ports the commands use.

type mockSessionService struct {
	RefreshStatusFunc   func(ctx context.Context) (domain.ServerStatus, error)
	ClearSessionFunc    func(ctx context.Context) error
	CleanupFunc         func(ctx context.Context) error
	DocumentsLoadedFunc func() bool
	HistoryFunc         func() []domain.ChatMessage
	PhaseFunc           func() domain.SessionPhase
}

func (m *mockSessionService) RefreshStatus(ctx context.Context) (domain.ServerStatus, error) {
	if m.RefreshStatusFunc != nil {
		return m.RefreshStatusFunc(ctx)
	}
	return domain.ServerStatus{
		DocumentsLoaded:   true,
		RedisConnected:    true,
		UploadFolder:      "uploads",
		AllowedExtensions: []string{"pdf", "txt"},
	}, nil
}

func (m *mockSessionService) ClearSession(ctx context.Context) error {
	if m.ClearSessionFunc != nil {
		return m.ClearSessionFunc(ctx)
	}
	return nil
}

func (m *mockSessionService) Cleanup(ctx context.Context) error {
	if m.CleanupFunc != nil {
		return m.CleanupFunc(ctx)
	}
	return nil
}

func (m *mockSessionService) DocumentsLoaded() bool {
	if m.DocumentsLoadedFunc != nil {
		return m.DocumentsLoadedFunc()
	}
	return true
}

func (m *mockSessionService) History() []domain.ChatMessage {
	if m.HistoryFunc != nil {
		return m.HistoryFunc()
	}
	return nil
}

func (m *mockSessionService) Phase() domain.SessionPhase {
	if m.PhaseFunc != nil {
		return m.PhaseFunc()
	}
	return domain.PhaseReady
}

type mockStagingService struct {
	StageFunc     func(paths []string) domain.StageResult
	RemoveFunc    func(index int) error
	FilesFunc     func() []domain.StagedFile
	ClearFunc     func()
	CanUploadFunc func() bool
}

func (m *mockStagingService) Stage(paths []string) domain.StageResult {
	if m.StageFunc != nil {
		return m.StageFunc(paths)
	}
	result := domain.StageResult{}
	for _, p := range paths {
		result.Accepted = append(result.Accepted, domain.StagedFile{
			Name: filepath.Base(p),
			Path: p,
			Type: domain.FileTypePDF,
		})
	}
	return result
}

func (m *mockStagingService) Remove(index int) error {
	if m.RemoveFunc != nil {
		return m.RemoveFunc(index)
	}
	return nil
}

func (m *mockStagingService) Files() []domain.StagedFile {
	if m.FilesFunc != nil {
		return m.FilesFunc()
	}
	return nil
}

func (m *mockStagingService) Clear() {
	if m.ClearFunc != nil {
		m.ClearFunc()
	}
}

func (m *mockStagingService) CanUpload() bool {
	if m.CanUploadFunc != nil {
		return m.CanUploadFunc()
	}
	return true
}

type mockUploadService struct {
	UploadStagedFunc func(ctx context.Context) (domain.UploadOutcome, error)
}

func (m *mockUploadService) UploadStaged(ctx context.Context) (domain.UploadOutcome, error) {
	if m.UploadStagedFunc != nil {
		return m.UploadStagedFunc(ctx)
	}
	return domain.UploadOutcome{
		Receipt: domain.UploadReceipt{
			Message: "1 file(s) uploaded and processed successfully",
			Files:   []string{"report.pdf"},
		},
	}, nil
}

type mockChatService struct {
	PostFunc     func(text string) (domain.ChatMessage, error)
	ExchangeFunc func(ctx context.Context, text string) domain.ChatOutcome
	SendFunc     func(ctx context.Context, text string) (domain.ChatOutcome, error)
}

func (m *mockChatService) Post(text string) (domain.ChatMessage, error) {
	if m.PostFunc != nil {
		return m.PostFunc(text)
	}
	return domain.UserMessage(strings.TrimSpace(text), time.Now()), nil
}

func (m *mockChatService) Exchange(ctx context.Context, text string) domain.ChatOutcome {
	if m.ExchangeFunc != nil {
		return m.ExchangeFunc(ctx, text)
	}
	return domain.ChatOutcome{Render: domain.RenderAppended}
}

func (m *mockChatService) Send(ctx context.Context, text string) (domain.ChatOutcome, error) {
	if m.SendFunc != nil {
		return m.SendFunc(ctx, text)
	}
	rt := 0.42
	return domain.ChatOutcome{
		Render: domain.RenderReplaced,
		Reply: domain.ChatReply{
			Answer:       "The answer from the documents.",
			ResponseTime: &rt,
			Context:      []string{"a retrieved passage"},
		},
	}, nil
}

type mockTranscriptService struct {
	RecordFunc  func(ctx context.Context, msg domain.ChatMessage) error
	RewriteFunc func(ctx context.Context, msgs []domain.ChatMessage) error
	EndFunc     func()
	ListFunc    func(ctx context.Context) ([]domain.Transcript, error)
	GetFunc     func(ctx context.Context, id string) (*domain.Transcript, []domain.ChatMessage, error)
}

func (m *mockTranscriptService) Record(ctx context.Context, msg domain.ChatMessage) error {
	if m.RecordFunc != nil {
		return m.RecordFunc(ctx, msg)
	}
	return nil
}

func (m *mockTranscriptService) Rewrite(ctx context.Context, msgs []domain.ChatMessage) error {
	if m.RewriteFunc != nil {
		return m.RewriteFunc(ctx, msgs)
	}
	return nil
}

func (m *mockTranscriptService) End() {
	if m.EndFunc != nil {
		m.EndFunc()
	}
}

func (m *mockTranscriptService) List(ctx context.Context) ([]domain.Transcript, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []domain.Transcript{
		{
			ID:           "t-1",
			Title:        "What is the contract about?",
			StartedAt:    time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
			MessageCount: 4,
		},
	}, nil
}

func (m *mockTranscriptService) Get(ctx context.Context, id string) (*domain.Transcript, []domain.ChatMessage, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	started := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	return &domain.Transcript{ID: id, Title: "What is the contract about?", StartedAt: started},
		[]domain.ChatMessage{
			domain.UserMessage("What is the contract about?", started),
			domain.BotMessage("It covers the lease terms.", started.Add(2*time.Second)),
		}, nil
}

type mockSettingsService struct {
	GetFunc  func() (*domain.ClientSettings, error)
	SaveFunc func(settings *domain.ClientSettings) error
	SetFunc  func(key, value string) error
	PathFunc func() string
}

func (m *mockSettingsService) Get() (*domain.ClientSettings, error) {
	if m.GetFunc != nil {
		return m.GetFunc()
	}
	settings := domain.DefaultClientSettings()
	return &settings, nil
}

func (m *mockSettingsService) Save(settings *domain.ClientSettings) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(settings)
	}
	return nil
}

func (m *mockSettingsService) Set(key, value string) error {
	if m.SetFunc != nil {
		return m.SetFunc(key, value)
	}
	return nil
}

func (m *mockSettingsService) GetDefaults() domain.ClientSettings {
	return domain.DefaultClientSettings()
}

func (m *mockSettingsService) Keys() []string {
	return []string{"server.url", "archive.enabled", "log.level"}
}

func (m *mockSettingsService) Path() string {
	if m.PathFunc != nil {
		return m.PathFunc()
	}
	return "/home/test/.ragchat/config.toml"
}

// setupTestServices installs a happy-path mock set and returns a
// cleanup func restoring whatever was injected before.
func setupTestServices() func() {
	prev := Services{
		Session:     sessionService,
		Staging:     stagingService,
		Upload:      uploadService,
		Chat:        chatService,
		Transcripts: transcriptService,
		Settings:    settingsService,
		NewWatcher:  newWatcher,
	}

	SetServices(Services{
		Session:     &mockSessionService{},
		Staging:     &mockStagingService{},
		Upload:      &mockUploadService{},
		Chat:        &mockChatService{},
		Transcripts: &mockTranscriptService{},
		Settings:    &mockSettingsService{},
	})

	return func() { SetServices(prev) }
}
