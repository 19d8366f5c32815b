package services

import (
	"context"
	"fmt"

	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/core/domain"
	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/core/ports/driven"
	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/core/ports/driving"
	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/logger"
)

// Ensure UploadService implements the interface.
var _ driving.UploadService = (*UploadService)(nil)

// UploadService pushes the staged set to the server.
type UploadService struct {
	backend driven.Backend
	session *SessionService
	staging *StagingService
}

// NewUploadService creates a new upload service.
func NewUploadService(backend driven.Backend, session *SessionService, staging *StagingService) *UploadService {
	return &UploadService{
		backend: backend,
		session: session,
		staging: staging,
	}
}

// UploadStaged submits every staged file in one multipart request.
//
// The server session is always cleared first so the new document set
// never attaches to a conversation about the old one. The clear is
// awaited but its failure never aborts the upload; it is recorded in
// the outcome for logging. Documents are marked loaded only after the
// server confirms the upload, and a failed upload keeps the staged
// set intact so the user can retry without re-selecting files.
func (u *UploadService) UploadStaged(ctx context.Context) (domain.UploadOutcome, error) {
	unlock := u.session.lockOps()
	defer unlock()

	files := u.staging.Files()
	if len(files) == 0 {
		return domain.UploadOutcome{}, domain.ErrNoFilesStaged
	}

	var outcome domain.UploadOutcome
	if err := u.session.clearSession(ctx); err != nil {
		outcome.ClearErr = err
	}

	receipt, err := u.backend.Upload(ctx, files)
	if err != nil {
		logger.Error(err, "upload of %d files failed", len(files))
		return outcome, fmt.Errorf("upload: %w", err)
	}

	u.session.noteUploadSucceeded()
	u.staging.Clear()
	outcome.Receipt = receipt

	logger.Info("uploaded %d files: %s", len(files), receipt.Message)
	return outcome, nil
}
