package domain

import "time"

// Sender identifies the author of a chat message.
type Sender string

// Message senders.
const (
	// SenderUser marks a message typed by the person at the keyboard.
	SenderUser Sender = "user"

	// SenderBot marks a message produced by the server, including
	// error notices rendered into the transcript.
	SenderBot Sender = "bot"
)

// IsValid returns true if the sender is recognised.
func (s Sender) IsValid() bool {
	switch s {
	case SenderUser, SenderBot:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s Sender) String() string {
	return string(s)
}

// ChatMessage is one entry in the conversation transcript.
// Messages are immutable once rendered: a timestamp assigned at send
// time is never corrected afterwards, even when the server later
// reports its own view of the exchange.
type ChatMessage struct {
	// Sender is who authored the message.
	Sender Sender

	// Text is the message content.
	Text string

	// Timestamp is the local wall-clock time the message was rendered.
	Timestamp time.Time

	// ResponseTime is the server-reported retrieval time in seconds.
	// Only set on bot messages when the server supplies one.
	ResponseTime *float64
}

// UserMessage builds a user-authored message stamped with the given time.
func UserMessage(text string, at time.Time) ChatMessage {
	return ChatMessage{Sender: SenderUser, Text: text, Timestamp: at}
}

// BotMessage builds a bot-authored message stamped with the given time.
func BotMessage(text string, at time.Time) ChatMessage {
	return ChatMessage{Sender: SenderBot, Text: text, Timestamp: at}
}

// HistoryMessages converts a server-authoritative history into transcript
// entries. The server's history is a flat list of message texts with no
// sender markers; entries alternate sender starting with the user, which
// matches how the server's memory stores exchanges. All entries share the
// given timestamp since the server does not report original send times.
func HistoryMessages(history []string, at time.Time) []ChatMessage {
	msgs := make([]ChatMessage, 0, len(history))
	for i, text := range history {
		sender := SenderUser
		if i%2 == 1 {
			sender = SenderBot
		}
		msgs = append(msgs, ChatMessage{Sender: sender, Text: text, Timestamp: at})
	}
	return msgs
}
