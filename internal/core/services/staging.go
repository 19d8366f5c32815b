package services

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/core/domain"
	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/core/ports/driving"
	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/logger"
)

// Ensure StagingService implements the interface.
var _ driving.StagingService = (*StagingService)(nil)

// StagingService validates files and holds them for upload.
//
// The staged set is the only state here and it never leaves memory.
// File content stays on disk until upload time.
type StagingService struct {
	mu    sync.Mutex
	files []domain.StagedFile
}

// NewStagingService creates a new staging service.
func NewStagingService() *StagingService {
	return &StagingService{}
}

// Stage validates the candidates and adds the acceptable ones to the
// staged set. Type is checked before size, so a candidate failing both
// is reported once, for its type. Candidates whose base name is
// already staged are dropped without a rejection.
func (s *StagingService) Stage(paths []string) domain.StageResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result domain.StageResult
	for _, path := range paths {
		name := filepath.Base(path)

		fileType, ok := domain.FileTypeForName(name)
		if !ok {
			logger.Debug("rejected %s: unsupported type", name)
			result.Rejected = append(result.Rejected, domain.Rejection{Name: name, Reason: domain.RejectReasonType})
			continue
		}

		info, err := os.Stat(path)
		if err != nil {
			logger.Warn("rejected %s: %v", name, err)
			result.Rejected = append(result.Rejected, domain.Rejection{Name: name, Reason: domain.RejectReasonUnreadable})
			continue
		}

		if info.Size() > domain.MaxUploadBytes {
			logger.Debug("rejected %s: %d bytes over limit", name, info.Size())
			result.Rejected = append(result.Rejected, domain.Rejection{Name: name, Reason: domain.RejectReasonSize})
			continue
		}

		if s.isStaged(name) {
			logger.Debug("dropped duplicate %s", name)
			continue
		}

		staged := domain.StagedFile{
			Name:      name,
			Path:      path,
			Type:      fileType,
			SizeBytes: info.Size(),
		}
		s.files = append(s.files, staged)
		result.Accepted = append(result.Accepted, staged)
		logger.Debug("staged %s (%d bytes)", name, info.Size())
	}

	return result
}

// Remove drops the staged file at the given position.
func (s *StagingService) Remove(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.files) {
		return fmt.Errorf("remove index %d: %w", index, domain.ErrInvalidInput)
	}

	logger.Debug("unstaged %s", s.files[index].Name)
	s.files = append(s.files[:index], s.files[index+1:]...)
	return nil
}

// Files returns a copy of the staged set in staging order.
func (s *StagingService) Files() []domain.StagedFile {
	s.mu.Lock()
	defer s.mu.Unlock()

	files := make([]domain.StagedFile, len(s.files))
	copy(files, s.files)
	return files
}

// Clear empties the staged set.
func (s *StagingService) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files = nil
}

// CanUpload reports whether at least one file is staged.
func (s *StagingService) CanUpload() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.files) > 0
}

// isStaged reports whether a file with the given base name is already
// in the staged set. Caller holds the lock.
func (s *StagingService) isStaged(name string) bool {
	for _, f := range s.files {
		if f.Name == name {
			return true
		}
	}
	return false
}
