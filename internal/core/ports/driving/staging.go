package driving

import "github.com/Aryan2005-unq/RAG-based-chatbot/internal/core/domain"

// StagingService validates files and holds them for upload.
//
// The staged set lives entirely in memory; nothing is copied or moved
// on disk. All operations are synchronous and touch no network.
type StagingService interface {
	// Stage validates the candidates and adds the acceptable ones to
	// the staged set. Type is checked before size and only the first
	// failure is reported per candidate. Candidates whose base name is
	// already staged are dropped silently.
	Stage(paths []string) domain.StageResult

	// Remove drops the staged file at the given position.
	// Returns ErrInvalidInput when the position is out of range.
	Remove(index int) error

	// Files returns a copy of the staged set in staging order.
	Files() []domain.StagedFile

	// Clear empties the staged set.
	Clear()

	// CanUpload reports whether at least one file is staged.
	CanUpload() bool
}
