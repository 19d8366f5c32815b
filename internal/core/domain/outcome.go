package domain

// UploadOutcome reports a completed upload operation.
type UploadOutcome struct {
	// Receipt is the server's ingestion summary.
	Receipt UploadReceipt

	// ClearErr records a failed pre-upload session clear. The upload
	// proceeds regardless; the failure is preserved so the caller can
	// log it.
	ClearErr error
}

// ChatRender says how a server reply was folded into the transcript.
type ChatRender string

// Render modes.
const (
	// RenderReplaced means the server returned the full conversation
	// and the transcript was rebuilt from it, optimistic entries
	// included.
	RenderReplaced ChatRender = "replaced"

	// RenderAppended means a single bot message was appended after the
	// optimistic user entry.
	RenderAppended ChatRender = "appended"
)

// ChatOutcome reports a chat exchange folded into the transcript.
//
// Transport and server failures do not surface as errors: they become
// bot messages in the transcript, with the underlying cause preserved
// in Failure for logging.
type ChatOutcome struct {
	// Render says whether the transcript was replaced or appended to.
	Render ChatRender

	// Reply is the decoded server reply. Zero when Failure is set.
	Reply ChatReply

	// Messages is the transcript after reconciliation.
	Messages []ChatMessage

	// Failure is the error behind a bot-rendered failure message.
	// Nil on success.
	Failure error
}
