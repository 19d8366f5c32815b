package domain

import (
	"strings"
	"time"
)

// Transcript is a locally archived conversation.
//
// The archive is a client-side convenience. The server keeps its own
// chat memory keyed by session; the transcript records what this
// client actually rendered, including error notices.
type Transcript struct {
	// ID is the unique identifier for the transcript.
	ID string

	// Title is a short label, derived from the first user message.
	Title string

	// StartedAt is when the conversation began.
	StartedAt time.Time

	// MessageCount is the number of archived messages.
	MessageCount int
}

// TranscriptTitleLimit caps how much of the first message becomes the title.
const TranscriptTitleLimit = 60

// TitleFromText derives a transcript title from a message text.
func TitleFromText(text string) string {
	title := strings.TrimSpace(text)
	if idx := strings.IndexAny(title, "\r\n"); idx >= 0 {
		title = title[:idx]
	}
	if len(title) > TranscriptTitleLimit {
		title = title[:TranscriptTitleLimit-3] + "..."
	}
	return title
}
