package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

// MaxUploadBytes is the largest file the server accepts (16 MiB).
// The server enforces the same cap, so oversized files are refused
// locally before any network traffic.
const MaxUploadBytes = 16 * 1024 * 1024

// FileType is the MIME type of a stageable document.
type FileType string

// Accepted document types.
const (
	// FileTypePDF is a PDF document.
	FileTypePDF FileType = "application/pdf"

	// FileTypeText is a plain text document.
	FileTypeText FileType = "text/plain"
)

// IsValid returns true if the file type is accepted for upload.
func (t FileType) IsValid() bool {
	switch t {
	case FileTypePDF, FileTypeText:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t FileType) String() string {
	return string(t)
}

// FileTypeForName maps a file name onto an accepted type by extension.
// Returns false for anything that is not .pdf or .txt.
func FileTypeForName(name string) (FileType, bool) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return FileTypePDF, true
	case ".txt":
		return FileTypeText, true
	default:
		return "", false
	}
}

// StagedFile is a file that passed validation and is queued for upload.
type StagedFile struct {
	// Name is the base file name, unique within the staging area.
	Name string

	// Path is the location on disk the content is read from at upload time.
	Path string

	// Type is the document MIME type derived from the extension.
	Type FileType

	// SizeBytes is the file size at staging time.
	SizeBytes int64
}

// RejectReason classifies why a candidate file was refused.
type RejectReason string

// Rejection reasons. Type is checked before size, so a file failing
// both checks reports only RejectReasonType.
const (
	// RejectReasonType means the file is not a PDF or plain text document.
	RejectReasonType RejectReason = "invalid_type"

	// RejectReasonSize means the file exceeds MaxUploadBytes.
	RejectReasonSize RejectReason = "too_large"

	// RejectReasonUnreadable means the file could not be inspected on disk.
	RejectReasonUnreadable RejectReason = "unreadable"
)

// Rejection records a candidate file refused during staging.
type Rejection struct {
	// Name is the base name of the refused file.
	Name string

	// Reason is the first validation failure encountered.
	Reason RejectReason
}

// Notice returns the user-facing text for the rejection.
func (r Rejection) Notice() string {
	switch r.Reason {
	case RejectReasonType:
		return fmt.Sprintf("%s is not a supported file type. Only PDF and TXT files are allowed.", r.Name)
	case RejectReasonSize:
		return fmt.Sprintf("%s is too large. Maximum file size is 16MB.", r.Name)
	case RejectReasonUnreadable:
		return fmt.Sprintf("%s could not be read.", r.Name)
	default:
		return fmt.Sprintf("%s could not be staged.", r.Name)
	}
}

// StageResult reports the outcome of staging a batch of candidates.
// Candidates whose name is already staged are dropped silently and
// appear in neither list.
type StageResult struct {
	// Accepted holds the files added to the staging area, in input order.
	Accepted []StagedFile

	// Rejected holds one entry per refused candidate, in input order.
	Rejected []Rejection
}
