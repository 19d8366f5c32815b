// Package status provides the status bar component for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/adapters/driving/tui/keymap"
	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/adapters/driving/tui/messages"
	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/adapters/driving/tui/styles"
	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/core/domain"
)

// State represents the current application state for display.
type State string

const (
	// StateReady shows the session phase and staged file count.
	StateReady State = "ready"

	// StateBusy shows a progress message while an operation runs.
	StateBusy State = "busy"

	// StateError shows the last operation failure.
	StateError State = "error"
)

// Bar displays session status and keybinding hints.
type Bar struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	state   State
	message string
	view    messages.ViewType
	phase   domain.SessionPhase
	staged  int
	width   int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		view:   messages.ViewStage,
		phase:  domain.PhaseEmpty,
		width:  80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (s *Bar) Update(msg tea.Msg) (*Bar, tea.Cmd) {
	// Bar is mostly passive, updated via Set methods
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	// Left side: state/message
	left := s.renderLeft()

	// Right side: keybinding hints
	right := s.renderRight()

	// Calculate padding
	leftLen := lipgloss.Width(left)
	rightLen := lipgloss.Width(right)
	padding := s.width - leftLen - rightLen
	if padding < 1 {
		padding = 1
	}

	bar := s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)

	return bar
}

// renderLeft renders the left side of the status bar.
func (s *Bar) renderLeft() string {
	switch s.state {
	case StateBusy:
		if s.message != "" {
			return s.styles.Muted.Render(s.message)
		}
		return s.styles.Muted.Render("Working...")
	case StateError:
		if s.message != "" {
			return s.styles.Error.Render(fmt.Sprintf("Error: %s", s.message))
		}
		return s.styles.Error.Render("Error")
	case StateReady:
		return s.renderSession()
	}
	return s.renderSession()
}

// renderSession renders the session phase and staged file count.
func (s *Bar) renderSession() string {
	var phase string
	switch s.phase {
	case domain.PhaseReady:
		phase = s.styles.Success.Render("Documents loaded")
	case domain.PhaseActive:
		phase = s.styles.Success.Render("Chat active")
	default:
		phase = s.styles.Muted.Render("No documents")
	}

	if s.staged > 0 {
		staged := s.styles.Normal.Render(fmt.Sprintf("%d staged", s.staged))
		return phase + s.styles.Muted.Render(" | ") + staged
	}
	return phase
}

// renderRight renders keybinding hints for the active view.
func (s *Bar) renderRight() string {
	var bindings []key.Binding

	switch s.view {
	case messages.ViewChat:
		bindings = s.keymap.ChatHelp()
	case messages.ViewStage:
		bindings = s.keymap.StageHelp()
	default:
		bindings = s.keymap.ShortHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hint := fmt.Sprintf("%s: %s", h.Key, h.Desc)
		hints = append(hints, hint)
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetMessage sets the busy or error text.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetView sets the view whose keybinding hints are shown.
func (s *Bar) SetView(view messages.ViewType) {
	s.view = view
}

// SetPhase sets the session phase shown when the bar is ready.
func (s *Bar) SetPhase(phase domain.SessionPhase) {
	s.phase = phase
}

// Phase returns the current session phase.
func (s *Bar) Phase() domain.SessionPhase {
	return s.phase
}

// SetStagedCount sets the staged file count.
func (s *Bar) SetStagedCount(count int) {
	s.staged = count
}

// StagedCount returns the staged file count.
func (s *Bar) StagedCount() int {
	return s.staged
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear drops any busy or error notice. The session phase and staged
// count describe durable session facts and are left alone.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
}
