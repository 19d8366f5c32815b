package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Staging and upload errors.

	// ErrNoFilesStaged indicates an upload was requested with an empty
	// staging area. No network request is made.
	ErrNoFilesStaged = errors.New("no files staged")

	// Chat errors. Both are checked before any network traffic.

	// ErrEmptyMessage indicates a chat message was empty after trimming.
	ErrEmptyMessage = errors.New("empty message")

	// ErrNoDocuments indicates chat was attempted before any documents
	// were uploaded and processed.
	ErrNoDocuments = errors.New("no documents loaded")

	// ErrArchiveDisabled indicates the transcript archive is switched
	// off in settings.
	ErrArchiveDisabled = errors.New("transcript archive disabled")
)

// ServerError is a failure response carrying the server's own error
// message. The message is what the server put in its error field and
// is shown to the user verbatim; failures without one are presented
// with generic connectivity wording instead.
type ServerError struct {
	// StatusCode is the HTTP status of the response.
	StatusCode int

	// Message is the server-provided error text.
	Message string
}

// Error implements the error interface.
func (e *ServerError) Error() string {
	return fmt.Sprintf("server error (status %d): %s", e.StatusCode, e.Message)
}
