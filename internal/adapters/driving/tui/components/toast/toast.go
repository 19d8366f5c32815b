// Package toast provides transient notices for the TUI.
//
// A notice is pushed with a severity level and expires on its own after
// a fixed interval. Pushing returns a command that delivers the expiry
// message; the owning view routes it back via Expire.
package toast

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/adapters/driving/tui/messages"
	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/adapters/driving/tui/styles"
)

// DefaultTTL is how long a notice stays on screen.
const DefaultTTL = 4 * time.Second

// Level describes the severity of a notice.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notice is a single transient message.
type Notice struct {
	// ID identifies the notice for expiry.
	ID int

	// Text is the message shown to the user.
	Text string

	// Level selects the rendering style.
	Level Level
}

// Stack holds the notices currently on screen, oldest first.
type Stack struct {
	styles  *styles.Styles
	notices []Notice
	nextID  int
	ttl     time.Duration
}

// NewStack creates an empty notice stack.
func NewStack(s *styles.Styles) *Stack {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &Stack{
		styles: s,
		ttl:    DefaultTTL,
	}
}

// Push adds a notice and returns the command that expires it.
func (s *Stack) Push(text string, level Level) tea.Cmd {
	id := s.nextID
	s.nextID++
	s.notices = append(s.notices, Notice{ID: id, Text: text, Level: level})

	return tea.Tick(s.ttl, func(time.Time) tea.Msg {
		return messages.ToastExpired{ID: id}
	})
}

// Expire removes the notice with the given ID. Unknown IDs are ignored.
func (s *Stack) Expire(id int) {
	for i, n := range s.notices {
		if n.ID == id {
			s.notices = append(s.notices[:i], s.notices[i+1:]...)
			return
		}
	}
}

// Len returns the number of notices on screen.
func (s *Stack) Len() int {
	return len(s.notices)
}

// Clear removes all notices.
func (s *Stack) Clear() {
	s.notices = nil
}

// SetTTL overrides the notice lifetime.
func (s *Stack) SetTTL(ttl time.Duration) {
	s.ttl = ttl
}

// View renders the notices, one per line, oldest first.
func (s *Stack) View() string {
	if len(s.notices) == 0 {
		return ""
	}

	lines := make([]string, 0, len(s.notices))
	for _, n := range s.notices {
		lines = append(lines, s.render(n))
	}
	return strings.Join(lines, "\n")
}

// render styles a single notice by level.
func (s *Stack) render(n Notice) string {
	switch n.Level {
	case LevelSuccess:
		return s.styles.Success.Render(n.Text)
	case LevelWarning:
		return s.styles.Warning.Render(n.Text)
	case LevelError:
		return s.styles.Error.Render(n.Text)
	default:
		return s.styles.Muted.Render(n.Text)
	}
}
