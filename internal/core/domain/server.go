package domain

// ServerStatus is the backend's self-reported state.
type ServerStatus struct {
	// DocumentsLoaded reports whether a document corpus is currently
	// indexed and able to answer questions.
	DocumentsLoaded bool

	// RedisConnected reports whether the server's chat memory store
	// is reachable.
	RedisConnected bool

	// UploadFolder is the server-side ingestion directory.
	UploadFolder string

	// AllowedExtensions lists the file extensions the server accepts.
	AllowedExtensions []string
}

// UploadReceipt reports a successful ingestion run.
type UploadReceipt struct {
	// Message is the server's human-readable summary.
	Message string

	// Files lists the names the server accepted, after sanitisation.
	Files []string
}

// ChatReply is the server's answer to a chat message.
type ChatReply struct {
	// Answer is the generated response text.
	Answer string

	// ResponseTime is the retrieval time in seconds, when reported.
	ResponseTime *float64

	// History is the server-authoritative conversation as bare message
	// texts, oldest first. Nil when the server omits it, in which case
	// the client appends Answer to its local transcript instead.
	History []string

	// Context holds the retrieved passages the answer was grounded on.
	Context []string
}
