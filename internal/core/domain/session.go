package domain

// SessionPhase describes the client's view of the conversation lifecycle.
//
// The phase is derived from two facts the session coordinator owns:
// whether the server has a document corpus loaded, and whether the
// local transcript is non-empty.
type SessionPhase string

// Session phases.
const (
	// PhaseEmpty means no documents are loaded; chat is unavailable.
	PhaseEmpty SessionPhase = "empty"

	// PhaseReady means documents are loaded and no exchange has
	// happened since the last upload or reset.
	PhaseReady SessionPhase = "ready"

	// PhaseActive means documents are loaded and the transcript has
	// at least one message.
	PhaseActive SessionPhase = "active"
)

// String returns the string representation.
func (p SessionPhase) String() string {
	return string(p)
}

// PhaseFor derives the session phase from the two state variables.
// A non-empty transcript without loaded documents cannot arise: every
// path that clears document state clears the transcript with it.
func PhaseFor(documentsLoaded bool, historyLen int) SessionPhase {
	switch {
	case !documentsLoaded:
		return PhaseEmpty
	case historyLen == 0:
		return PhaseReady
	default:
		return PhaseActive
	}
}
