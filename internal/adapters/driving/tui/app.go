package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/adapters/driving/tui/keymap"
	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/adapters/driving/tui/messages"
	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/adapters/driving/tui/styles"
	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/adapters/driving/tui/views/chat"
	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/adapters/driving/tui/views/stage"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
//
// The app owns view navigation and the startup sequence: any session
// left on the server from a previous run is cleared first, then the
// status probe establishes whether documents are already loaded.
// Everything else is routed to the staging and chat views.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// keymap holds the keybindings.
	keymap *keymap.KeyMap

	// stageView is the document staging and upload view.
	stageView *stage.View

	// chatView is the conversation view.
	chatView *chat.View

	// watchPaths receives candidate documents from the drop folder.
	// Nil when no watcher is configured.
	watchPaths <-chan string

	// currentView tracks which view is active.
	currentView messages.ViewType

	// lastView is where Esc returns to from the help view.
	lastView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		stageView:   stage.NewView(s, km, ports.Staging, ports.Upload, ports.Session),
		chatView:    chat.NewView(s, km, ports.Chat, ports.Session),
		currentView: messages.ViewStage,
		lastView:    messages.ViewStage,
	}, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.stageView.WithContext(ctx)
	a.chatView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
// It enters the alternate screen and starts the session handshake:
// clear whatever session the server still holds, then probe status.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tea.SetWindowTitle("ragchat - Document Chat"),
		a.chatView.Init(),
		a.startSession(),
	}
	if a.ports.Watcher != nil {
		cmds = append(cmds, a.startWatcher())
	}
	return tea.Batch(cmds...)
}

// startSession runs the startup sequence in the background. The clear
// is best-effort and its failure never blocks the status probe.
func (a *App) startSession() tea.Cmd {
	return func() tea.Msg {
		clearErr := a.ports.Session.ClearSession(a.ctx)
		status, err := a.ports.Session.RefreshStatus(a.ctx)
		return messages.SessionStarted{ClearErr: clearErr, Status: status, Err: err}
	}
}

// startWatcher opens the drop-folder channel.
func (a *App) startWatcher() tea.Cmd {
	return func() tea.Msg {
		paths, err := a.ports.Watcher.Watch(a.ctx)
		if err != nil {
			return messages.ErrorOccurred{Err: err}
		}
		return messages.WatcherStarted{Paths: paths}
	}
}

// awaitDocument blocks on the watcher channel for the next candidate.
func (a *App) awaitDocument() tea.Cmd {
	paths := a.watchPaths
	return func() tea.Msg {
		path, ok := <-paths
		if !ok {
			return messages.WatcherClosed{}
		}
		return messages.WatchedFileFound{Path: path}
	}
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocognit,gocyclo // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		// Forward to all views for proper sizing
		a.stageView.SetDimensions(msg.Width, msg.Height)
		a.chatView.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case messages.ViewChanged:
		return a.switchTo(msg.View)

	case messages.SessionStarted:
		// Both views show the session state, so both get the result
		a.stageView, _ = a.stageView.Update(msg)
		a.chatView, _ = a.chatView.Update(msg)
		if msg.Err != nil {
			a.err = msg.Err
		}
		return a, nil

	case messages.StatusRefreshed, messages.SessionCleared, messages.CleanupCompleted:
		a.stageView, _ = a.stageView.Update(msg)
		a.chatView, _ = a.chatView.Update(msg)
		return a, nil

	case messages.FilesStaged, messages.ToastExpired:
		a.stageView, cmd = a.stageView.Update(msg)
		return a, cmd

	case messages.UploadCompleted:
		// The staging view reports the outcome; the chat view resets
		// its transcript for the fresh corpus
		a.stageView, cmd = a.stageView.Update(msg)
		a.chatView, _ = a.chatView.Update(msg)
		return a, cmd

	case messages.ExchangeCompleted:
		// Delivered regardless of the active view so a reply is never
		// lost to navigation
		a.chatView, cmd = a.chatView.Update(msg)
		return a, cmd

	case messages.WatcherStarted:
		a.watchPaths = msg.Paths
		return a, a.awaitDocument()

	case messages.WatchedFileFound:
		return a, tea.Batch(a.stageWatched(msg.Path), a.awaitDocument())

	case messages.WatcherClosed:
		a.watchPaths = nil
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		switch a.currentView {
		case messages.ViewStage:
			a.stageView, cmd = a.stageView.Update(msg)
		case messages.ViewChat:
			a.chatView, cmd = a.chatView.Update(msg)
		case messages.ViewHelp:
			// Help view has no error display
		}
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages (spinner ticks, picker internals) to the
	// active view
	switch a.currentView {
	case messages.ViewStage:
		a.stageView, cmd = a.stageView.Update(msg)
	case messages.ViewChat:
		a.chatView, cmd = a.chatView.Update(msg)
	case messages.ViewHelp:
		// Help view doesn't need to handle other messages
	}

	return a, cmd
}

// handleKey routes keyboard input: navigation is handled here, the
// rest belongs to the active view.
func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global quit with ctrl+c
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewStage:
		// The picker owns the keyboard while it is open
		if !a.stageView.Picking() {
			switch {
			case keymap.Matches(msg.String(), a.keymap.Quit):
				return a, tea.Quit
			case keymap.Matches(msg.String(), a.keymap.Switch):
				return a.switchTo(messages.ViewChat)
			case keymap.Matches(msg.String(), a.keymap.Help):
				return a.switchTo(messages.ViewHelp)
			}
		}
		a.stageView, cmd = a.stageView.Update(msg)
		return a, cmd

	case messages.ViewChat:
		// Anything else may be typed text, so only tab navigates
		if keymap.Matches(msg.String(), a.keymap.Switch) {
			return a.switchTo(messages.ViewStage)
		}
		a.chatView, cmd = a.chatView.Update(msg)
		return a, cmd

	case messages.ViewHelp:
		if msg.Type == tea.KeyEsc || keymap.Matches(msg.String(), a.keymap.Help) ||
			keymap.Matches(msg.String(), a.keymap.Quit) {
			return a.switchTo(a.lastView)
		}
		return a, nil
	}

	return a, nil
}

// switchTo activates a view, remembering where help should return to.
func (a *App) switchTo(view messages.ViewType) (tea.Model, tea.Cmd) {
	if view == messages.ViewHelp && a.currentView != messages.ViewHelp {
		a.lastView = a.currentView
	}
	a.currentView = view

	if view == messages.ViewChat {
		// Pick up whatever the session holds now
		a.chatView.SyncSession()
		return a, a.chatView.Init()
	}
	return a, nil
}

// stageWatched runs a drop-folder candidate through the normal staging
// path; the result lands in the staging view like any other batch.
func (a *App) stageWatched(path string) tea.Cmd {
	return func() tea.Msg {
		return messages.FilesStaged{Result: a.ports.Staging.Stage([]string{path})}
	}
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewStage:
		return a.stageView.View()
	case messages.ViewChat:
		return a.chatView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.stageView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Navigation:
  tab         Switch between documents and chat
  esc         Back / Cancel
  ctrl+c      Quit

Documents:
  j/k, ↑/↓    Navigate staged files
  a           Add files (opens the picker)
  x           Remove selected file
  u           Upload staged files
  q           Quit

Chat:
  (type)      Enter your question
  enter       Send
  ↑/↓, pgup   Scroll the transcript
  ctrl+n      New session (clears the conversation)
  ctrl+r      Refresh server status

[esc] close help`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.stageView.SetDimensions(width, height)
	a.chatView.SetDimensions(width, height)
}
