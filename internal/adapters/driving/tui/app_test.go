package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/adapters/driving/tui/messages"
	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/core/domain"
)

func newTestPorts() *Ports {
	return &Ports{
		Session: &MockSessionService{},
		Staging: &MockStagingService{},
		Upload:  &MockUploadService{},
		Chat:    &MockChatService{},
	}
}

func TestNewApp_Success(t *testing.T) {
	ports := newTestPorts()

	app, err := NewApp(ports)

	require.NoError(t, err)
	require.NotNil(t, app)
	assert.Equal(t, messages.ViewStage, app.CurrentView())
}

func TestNewApp_InvalidPorts(t *testing.T) {
	ports := &Ports{
		Session: nil,
		Staging: &MockStagingService{},
		Upload:  &MockUploadService{},
		Chat:    &MockChatService{},
	}

	app, err := NewApp(ports)

	assert.Error(t, err)
	assert.Nil(t, app)
}

func TestApp_WithContext(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	type contextKey string
	ctx := context.WithValue(context.Background(), contextKey("key"), "value")
	result := app.WithContext(ctx)

	assert.Equal(t, app, result)
}

func TestApp_Init(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	cmd := app.Init()

	// Init returns a batch command
	assert.NotNil(t, cmd)
}

func TestApp_StartSession_ClearsThenProbes(t *testing.T) {
	var order []string
	ports := newTestPorts()
	ports.Session = &MockSessionService{
		ClearSessionFunc: func(ctx context.Context) error {
			order = append(order, "clear")
			return nil
		},
		RefreshStatusFunc: func(ctx context.Context) (domain.ServerStatus, error) {
			order = append(order, "status")
			return domain.ServerStatus{DocumentsLoaded: true}, nil
		},
	}
	app, _ := NewApp(ports)

	msg := app.startSession()()

	started, ok := msg.(messages.SessionStarted)
	require.True(t, ok)
	assert.Equal(t, []string{"clear", "status"}, order)
	assert.NoError(t, started.ClearErr)
	assert.True(t, started.Status.DocumentsLoaded)
}

func TestApp_StartSession_ClearFailureIsNotFatal(t *testing.T) {
	clearErr := errors.New("connection refused")
	ports := newTestPorts()
	ports.Session = &MockSessionService{
		ClearSessionFunc: func(ctx context.Context) error { return clearErr },
		RefreshStatusFunc: func(ctx context.Context) (domain.ServerStatus, error) {
			return domain.ServerStatus{DocumentsLoaded: true}, nil
		},
	}
	app, _ := NewApp(ports)

	msg := app.startSession()()

	started, ok := msg.(messages.SessionStarted)
	require.True(t, ok)
	// The probe still ran and its result is usable
	assert.Equal(t, clearErr, started.ClearErr)
	assert.NoError(t, started.Err)
	assert.True(t, started.Status.DocumentsLoaded)
}

func TestApp_Update_WindowSize(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	msg := tea.WindowSizeMsg{Width: 80, Height: 24}
	model, cmd := app.Update(msg)

	assert.Equal(t, app, model)
	assert.Nil(t, cmd)
	assert.True(t, app.Ready())
}

func TestApp_Update_ViewChanged(t *testing.T) {
	app, _ := NewApp(newTestPorts())
	app.SetDimensions(80, 24)

	model, _ := app.Update(messages.ViewChanged{View: messages.ViewChat})

	assert.Equal(t, app, model)
	assert.Equal(t, messages.ViewChat, app.CurrentView())
}

func TestApp_Update_SessionStarted_Error(t *testing.T) {
	app, _ := NewApp(newTestPorts())
	app.SetDimensions(80, 24)

	err := errors.New("server unreachable")
	app.Update(messages.SessionStarted{Err: err})

	assert.Error(t, app.Err())
}

func TestApp_Update_Tab_SwitchesViews(t *testing.T) {
	app, _ := NewApp(newTestPorts())
	app.SetDimensions(80, 24)

	msg := tea.KeyMsg{Type: tea.KeyTab}
	app.Update(msg)
	assert.Equal(t, messages.ViewChat, app.CurrentView())

	app.Update(msg)
	assert.Equal(t, messages.ViewStage, app.CurrentView())
}

func TestApp_Update_TabToChat_SyncsHistory(t *testing.T) {
	now := time.Now()
	ports := newTestPorts()
	ports.Session = &MockSessionService{
		HistoryFunc: func() []domain.ChatMessage {
			return []domain.ChatMessage{
				domain.UserMessage("hello", now),
				domain.BotMessage("hi", now),
			}
		},
		PhaseFunc: func() domain.SessionPhase { return domain.PhaseActive },
	}
	app, _ := NewApp(ports)
	app.SetDimensions(80, 24)

	app.Update(tea.KeyMsg{Type: tea.KeyTab})

	assert.Equal(t, messages.ViewChat, app.CurrentView())
	assert.Len(t, app.chatView.History(), 2)
}

func TestApp_Update_KeyMsg_Quit(t *testing.T) {
	app, _ := NewApp(newTestPorts())
	app.SetDimensions(80, 24)

	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}
	model, cmd := app.Update(msg)

	assert.Equal(t, app, model)
	assert.NotNil(t, cmd)
}

func TestApp_Update_KeyMsg_CtrlC(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	msg := tea.KeyMsg{Type: tea.KeyCtrlC}
	model, cmd := app.Update(msg)

	assert.Equal(t, app, model)
	assert.NotNil(t, cmd)
}

func TestApp_Update_QInChat_IsTyping(t *testing.T) {
	app, _ := NewApp(newTestPorts())
	app.SetDimensions(80, 24)
	app.Update(tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, messages.ViewChat, app.CurrentView())

	// 'q' is text in the chat view, never quit
	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})

	assert.Nil(t, cmd)
	assert.Equal(t, "q", app.chatView.InputValue())
}

func TestApp_Update_Help_AndBack(t *testing.T) {
	app, _ := NewApp(newTestPorts())
	app.SetDimensions(80, 24)

	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	assert.Equal(t, messages.ViewHelp, app.CurrentView())

	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, messages.ViewStage, app.CurrentView())
}

func TestApp_Update_ErrorOccurred(t *testing.T) {
	app, _ := NewApp(newTestPorts())
	app.SetDimensions(80, 24)

	err := errors.New("something went wrong")
	model, cmd := app.Update(messages.ErrorOccurred{Err: err})

	assert.Equal(t, app, model)
	assert.Nil(t, cmd)
	assert.Error(t, app.Err())
}

func TestApp_Update_WatcherStarted_ArmsReceive(t *testing.T) {
	app, _ := NewApp(newTestPorts())
	app.SetDimensions(80, 24)

	paths := make(chan string, 1)
	_, cmd := app.Update(messages.WatcherStarted{Paths: paths})

	require.NotNil(t, cmd)

	// The armed command delivers the next dropped path
	paths <- "/drop/report.pdf"
	msg := cmd()
	found, ok := msg.(messages.WatchedFileFound)
	require.True(t, ok)
	assert.Equal(t, "/drop/report.pdf", found.Path)
}

func TestApp_Update_WatcherClosed_EndsLoop(t *testing.T) {
	app, _ := NewApp(newTestPorts())
	app.SetDimensions(80, 24)

	paths := make(chan string)
	close(paths)
	_, cmd := app.Update(messages.WatcherStarted{Paths: paths})

	require.NotNil(t, cmd)
	msg := cmd()
	_, ok := msg.(messages.WatcherClosed)
	assert.True(t, ok)

	_, cmd = app.Update(msg)
	assert.Nil(t, cmd)
}

func TestApp_Update_WatchedFileFound_StagesIt(t *testing.T) {
	var staged []string
	ports := newTestPorts()
	ports.Staging = &MockStagingService{
		StageFunc: func(paths []string) domain.StageResult {
			staged = append(staged, paths...)
			return domain.StageResult{
				Accepted: []domain.StagedFile{{Name: "report.pdf", Path: paths[0]}},
			}
		},
	}
	app, _ := NewApp(ports)
	app.SetDimensions(80, 24)
	app.watchPaths = make(chan string)

	_, cmd := app.Update(messages.WatchedFileFound{Path: "/drop/report.pdf"})

	require.NotNil(t, cmd)
	// The batch contains the staging command; run it via the message
	// values it yields
	collectBatch(t, cmd, app)
	assert.Equal(t, []string{"/drop/report.pdf"}, staged)
}

// collectBatch executes a command tree depth-first, feeding resulting
// messages back into the app, and stops at blocking receives.
func collectBatch(t *testing.T, cmd tea.Cmd, app *App) {
	t.Helper()
	if cmd == nil {
		return
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		msg := cmd()
		if batch, ok := msg.(tea.BatchMsg); ok {
			for _, c := range batch {
				collectBatch(t, c, app)
			}
			return
		}
		if msg != nil {
			app.Update(msg)
		}
	}()
	select {
	case <-done:
	case <-time.After(100 * time.Millisecond):
		// Blocking receive on the watch channel; fine to abandon
	}
}

func TestApp_Update_ExchangeCompleted_RoutedToChat(t *testing.T) {
	now := time.Now()
	app, _ := NewApp(newTestPorts())
	app.SetDimensions(80, 24)

	outcome := domain.ChatOutcome{
		Render: domain.RenderReplaced,
		Messages: []domain.ChatMessage{
			domain.UserMessage("hello", now),
			domain.BotMessage("hi", now),
		},
	}
	app.Update(messages.ExchangeCompleted{Outcome: outcome})

	// Delivered even though the stage view is active
	assert.Equal(t, messages.ViewStage, app.CurrentView())
	assert.Len(t, app.chatView.History(), 2)
}

func TestApp_Update_Quit(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	_, cmd := app.Update(messages.Quit{})

	assert.NotNil(t, cmd)
}

func TestApp_View_NotReady(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	view := app.View()

	assert.Contains(t, view, "Initialising")
}

func TestApp_View_StageView(t *testing.T) {
	app, _ := NewApp(newTestPorts())
	app.SetDimensions(80, 24)

	view := app.View()

	assert.Contains(t, view, "Documents")
}

func TestApp_View_HelpView(t *testing.T) {
	app, _ := NewApp(newTestPorts())
	app.SetDimensions(80, 24)
	app.Update(messages.ViewChanged{View: messages.ViewHelp})

	view := app.View()

	assert.Contains(t, view, "Help")
	assert.Contains(t, view, "Navigation")
}

func TestApp_SetDimensions(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	assert.False(t, app.Ready())

	app.SetDimensions(100, 50)

	assert.True(t, app.Ready())
}
