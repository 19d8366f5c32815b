package driving

import (
	"context"

	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/core/domain"
)

// UploadService pushes the staged set to the server.
type UploadService interface {
	// UploadStaged submits every staged file in one request.
	//
	// The sequence is fixed: the server session is cleared first (its
	// failure is recorded in the outcome, never fatal), then the files
	// are uploaded. On success documents are marked loaded, the staged
	// set is emptied, and the transcript resets. On failure the staged
	// set is kept intact for correction and retry, and the error text
	// is the server's own when it sent one.
	//
	// Returns domain.ErrNoFilesStaged without any network traffic when
	// nothing is staged.
	UploadStaged(ctx context.Context) (domain.UploadOutcome, error)
}
