// Package chat provides the conversation view for the TUI.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/adapters/driving/tui/components/input"
	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/adapters/driving/tui/components/status"
	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/adapters/driving/tui/keymap"
	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/adapters/driving/tui/messages"
	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/adapters/driving/tui/styles"
	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/core/domain"
	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/core/ports/driving"
)

// View represents the conversation view with transcript, input, and
// status bar. The user's message is rendered the moment it is sent; the
// server round trip runs in the background and the reply is folded in
// when it arrives.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.PromptInput
	viewport  viewport.Model
	spinner   spinner.Model
	statusbar *status.Bar

	chatService    driving.ChatService
	sessionService driving.SessionService
	ctx            context.Context

	history []domain.ChatMessage
	width   int
	height  int
	ready   bool
	waiting bool
}

// NewView creates a new chat view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	chatService driving.ChatService,
	sessionService driving.SessionService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = s.Subtitle

	bar := status.NewBar(s, km)
	bar.SetView(messages.ViewChat)

	return &View{
		styles:         s,
		keymap:         km,
		input:          input.NewPromptInput(s),
		viewport:       viewport.New(80, 16),
		spinner:        sp,
		statusbar:      bar,
		chatService:    chatService,
		sessionService: sessionService,
		ctx:            context.Background(),
		width:          80,
		height:         24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the chat view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case spinner.TickMsg:
		// Tick only while a reply is pending
		if !v.waiting {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		v.refreshViewport()
		return v, cmd

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SessionStarted:
		v.SyncSession()
		return v, nil

	case messages.StatusRefreshed:
		v.statusbar.Clear()
		if msg.Err != nil {
			v.statusbar.SetState(status.StateError)
			v.statusbar.SetMessage(msg.Err.Error())
		}
		v.SyncSession()
		return v, nil

	case messages.SessionCleared:
		v.statusbar.Clear()
		if msg.Err != nil {
			v.statusbar.SetState(status.StateError)
			v.statusbar.SetMessage(msg.Err.Error())
		}
		v.SyncSession()
		return v, nil

	case messages.CleanupCompleted:
		v.statusbar.Clear()
		if msg.Err != nil {
			v.statusbar.SetState(status.StateError)
			v.statusbar.SetMessage(msg.Err.Error())
		}
		v.SyncSession()
		return v, nil

	case messages.UploadCompleted:
		// A fresh corpus resets the conversation
		v.SyncSession()
		return v, nil

	case messages.ExchangeCompleted:
		v.handleExchangeCompleted(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.waiting = false
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	// Esc returns to the staging view
	if msg.Type == tea.KeyEsc {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewStage}
		}
	}

	if msg.Type == tea.KeyEnter {
		return v.submit()
	}

	switch {
	case keymap.Matches(msg.String(), v.keymap.Clear):
		if v.waiting {
			return v, nil
		}
		v.statusbar.SetState(status.StateBusy)
		v.statusbar.SetMessage("Clearing session...")
		return v, v.performClear()
	case keymap.Matches(msg.String(), v.keymap.Refresh):
		if v.waiting {
			return v, nil
		}
		v.statusbar.SetState(status.StateBusy)
		v.statusbar.SetMessage("Checking server...")
		return v, v.performRefresh()
	}

	// Scrolling keys go to the transcript; the rest belongs to the input
	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown:
		var cmd tea.Cmd
		v.viewport, cmd = v.viewport.Update(msg)
		return v, cmd
	default:
		// Handle other keys
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// submit posts the typed question and starts the server round trip.
func (v *View) submit() (*View, tea.Cmd) {
	// One exchange at a time
	if v.waiting {
		return v, nil
	}
	if v.chatService == nil {
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(ErrNoChatService.Error())
		return v, nil
	}

	posted, err := v.chatService.Post(v.input.Value())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyMessage):
			// Nothing to send
		case errors.Is(err, domain.ErrNoDocuments):
			v.statusbar.SetState(status.StateError)
			v.statusbar.SetMessage("upload documents before chatting")
		default:
			v.statusbar.SetState(status.StateError)
			v.statusbar.SetMessage(err.Error())
		}
		return v, nil
	}

	v.input.Reset()
	v.waiting = true
	v.statusbar.SetState(status.StateBusy)
	v.statusbar.SetMessage("Waiting for answer...")

	// Render the question immediately; the reply arrives as a message
	v.history = append(v.history, posted)
	v.refreshViewport()

	return v, tea.Batch(v.performExchange(posted.Text), v.spinner.Tick)
}

// performExchange runs the server round trip in the background.
func (v *View) performExchange(text string) tea.Cmd {
	return func() tea.Msg {
		if v.chatService == nil {
			return messages.ErrorOccurred{Err: ErrNoChatService}
		}
		outcome := v.chatService.Exchange(v.ctx, text)
		return messages.ExchangeCompleted{Outcome: outcome}
	}
}

// performClear asks the server to forget the conversation.
func (v *View) performClear() tea.Cmd {
	return func() tea.Msg {
		if v.sessionService == nil {
			return messages.SessionCleared{}
		}
		return messages.SessionCleared{Err: v.sessionService.ClearSession(v.ctx)}
	}
}

// performRefresh re-reads the server status.
func (v *View) performRefresh() tea.Cmd {
	return func() tea.Msg {
		if v.sessionService == nil {
			return messages.StatusRefreshed{}
		}
		st, err := v.sessionService.RefreshStatus(v.ctx)
		return messages.StatusRefreshed{Status: st, Err: err}
	}
}

// handleExchangeCompleted folds the server reply into the transcript.
func (v *View) handleExchangeCompleted(msg messages.ExchangeCompleted) {
	v.waiting = false
	v.statusbar.Clear()
	v.history = msg.Outcome.Messages
	v.statusbar.SetPhase(v.phase())
	v.refreshViewport()
}

// SyncSession re-reads the transcript and phase from the session.
func (v *View) SyncSession() {
	if v.sessionService == nil {
		return
	}
	v.history = v.sessionService.History()
	v.statusbar.SetPhase(v.sessionService.Phase())
	v.refreshViewport()
}

// phase returns the current session phase.
func (v *View) phase() domain.SessionPhase {
	if v.sessionService == nil {
		return domain.PhaseEmpty
	}
	return v.sessionService.Phase()
}

// refreshViewport re-renders the transcript and follows the tail.
func (v *View) refreshViewport() {
	v.viewport.SetContent(v.renderHistory())
	v.viewport.GotoBottom()
}

// renderHistory renders the full transcript.
func (v *View) renderHistory() string {
	if len(v.history) == 0 && !v.waiting {
		if v.phase() == domain.PhaseEmpty {
			return v.styles.Muted.Render("Upload documents to start chatting.")
		}
		return v.styles.Muted.Render("No messages yet. Ask something about your documents.")
	}

	parts := make([]string, 0, len(v.history)+1)
	for i := range v.history {
		parts = append(parts, v.renderMessage(&v.history[i]))
	}
	if v.waiting {
		parts = append(parts, v.styles.BotLabel.Render("Assistant")+" "+v.spinner.View())
	}
	return strings.Join(parts, "\n\n")
}

// renderMessage renders one transcript entry with its header line.
func (v *View) renderMessage(m *domain.ChatMessage) string {
	var label string
	if m.Sender == domain.SenderUser {
		label = v.styles.UserLabel.Render("You")
	} else {
		label = v.styles.BotLabel.Render("Assistant")
	}

	head := label + " " + v.styles.Timestamp.Render(m.Timestamp.Format("15:04"))
	if m.ResponseTime != nil {
		head += " " + v.styles.Timestamp.Render(fmt.Sprintf("(%.2fs)", *m.ResponseTime))
	}

	wrapWidth := v.viewport.Width - 2
	if wrapWidth < 20 {
		wrapWidth = 20
	}
	body := v.styles.Normal.Width(wrapWidth).Render(m.Text)

	return head + "\n" + body
}

// View renders the chat view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := []string{
		v.styles.Title.Render("Document Chat"),
		"",
		v.viewport.View(),
		"",
		v.input.View(),
		v.statusbar.View(),
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.statusbar.SetWidth(width)

	// Reserve space for header, input, and status bar
	vpHeight := height - 8
	if vpHeight < 3 {
		vpHeight = 3
	}
	v.viewport.Width = width
	v.viewport.Height = vpHeight
	v.refreshViewport()
}

// Width returns the current width.
func (v *View) Width() int {
	return v.width
}

// Height returns the current height.
func (v *View) Height() int {
	return v.height
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Waiting returns whether an exchange is in flight.
func (v *View) Waiting() bool {
	return v.waiting
}

// History returns the rendered transcript.
func (v *View) History() []domain.ChatMessage {
	return v.history
}

// InputValue returns the current input text.
func (v *View) InputValue() string {
	return v.input.Value()
}

// SetInputValue sets the input text.
func (v *View) SetInputValue(text string) {
	v.input.SetValue(text)
}

// Reset clears the view back to an empty conversation.
func (v *View) Reset() {
	v.history = nil
	v.waiting = false
	v.input.Reset()
	v.input.Focus()
	v.statusbar.Clear()
	v.refreshViewport()
}
