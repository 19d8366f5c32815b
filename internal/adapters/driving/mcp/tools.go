package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/core/domain"
)

// StatusInput is the input schema for the corpus_status tool.
type StatusInput struct{}

// StatusOutput is the output schema for the corpus_status tool.
type StatusOutput struct {
	DocumentsLoaded     bool     `json:"documents_loaded"`
	ChatMemoryConnected bool     `json:"chat_memory_connected"`
	UploadFolder        string   `json:"upload_folder,omitempty"`
	AllowedExtensions   []string `json:"allowed_extensions,omitempty"`
}

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Question string `json:"question" jsonschema:"the question to ask about the uploaded documents"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Answer       string   `json:"answer"`
	ResponseTime *float64 `json:"response_time,omitempty"`
	Context      []string `json:"context,omitempty"`
}

// UploadInput is the input schema for the upload_documents tool.
type UploadInput struct {
	Paths []string `json:"paths" jsonschema:"paths of the PDF or TXT files to upload"`
}

// UploadOutput is the output schema for the upload_documents tool.
type UploadOutput struct {
	Message string   `json:"message"`
	Files   []string `json:"files,omitempty"`
	Skipped []string `json:"skipped,omitempty"`
	Warning string   `json:"warning,omitempty"`
}

// ClearInput is the input schema for the clear_session tool.
type ClearInput struct{}

// ClearOutput is the output schema for the clear_session tool.
type ClearOutput struct {
	Cleared bool `json:"cleared"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "corpus_status",
		Description: "Check whether the document chat server has documents loaded",
	}, s.handleStatus)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Ask a question about the uploaded documents",
	}, s.handleAsk)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "upload_documents",
		Description: "Upload PDF or TXT files to the document chat server",
	}, s.handleUpload)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "clear_session",
		Description: "Clear the conversation memory on the server",
	}, s.handleClear)
}

// handleStatus handles the corpus_status tool invocation.
func (s *Server) handleStatus(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ StatusInput,
) (*mcp.CallToolResult, StatusOutput, error) {
	status, err := s.ports.Session.RefreshStatus(ctx)
	if err != nil {
		return nil, StatusOutput{}, fmt.Errorf("cannot reach server: %w", err)
	}

	output := StatusOutput{
		DocumentsLoaded:     status.DocumentsLoaded,
		ChatMemoryConnected: status.RedisConnected,
		UploadFolder:        status.UploadFolder,
		AllowedExtensions:   status.AllowedExtensions,
	}

	return nil, output, nil
}

// handleAsk handles the ask tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	outcome, err := s.ports.Chat.Send(ctx, input.Question)
	switch {
	case errors.Is(err, domain.ErrNoDocuments):
		return nil, AskOutput{}, errors.New("no documents loaded; call upload_documents first")
	case errors.Is(err, domain.ErrEmptyMessage):
		return nil, AskOutput{}, errors.New("question is empty")
	case err != nil:
		return nil, AskOutput{}, err
	}
	if outcome.Failure != nil {
		return nil, AskOutput{}, fmt.Errorf("ask failed: %w", outcome.Failure)
	}

	output := AskOutput{
		Answer:       outcome.Reply.Answer,
		ResponseTime: outcome.Reply.ResponseTime,
		Context:      outcome.Reply.Context,
	}

	return nil, output, nil
}

// handleUpload handles the upload_documents tool invocation.
// Each call uploads exactly the given paths, so any leftovers from a
// failed earlier call are dropped before staging.
func (s *Server) handleUpload(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input UploadInput,
) (*mcp.CallToolResult, UploadOutput, error) {
	if s.ports.Staging == nil || s.ports.Upload == nil {
		return nil, UploadOutput{}, errors.New("document upload not configured")
	}

	s.ports.Staging.Clear()
	result := s.ports.Staging.Stage(input.Paths)

	skipped := make([]string, len(result.Rejected))
	for i, rejection := range result.Rejected {
		skipped[i] = rejection.Notice()
	}

	if len(result.Accepted) == 0 {
		if len(skipped) > 0 {
			return nil, UploadOutput{}, fmt.Errorf("no uploadable files: %s", strings.Join(skipped, "; "))
		}
		return nil, UploadOutput{}, errors.New("no uploadable files")
	}

	outcome, err := s.ports.Upload.UploadStaged(ctx)
	if err != nil {
		return nil, UploadOutput{}, fmt.Errorf("upload failed: %w", err)
	}

	output := UploadOutput{
		Message: outcome.Receipt.Message,
		Files:   outcome.Receipt.Files,
		Skipped: skipped,
	}
	if output.Message == "" {
		output.Message = "Upload complete."
	}
	if outcome.ClearErr != nil {
		output.Warning = fmt.Sprintf("pre-upload session clear failed: %v", outcome.ClearErr)
	}

	return nil, output, nil
}

// handleClear handles the clear_session tool invocation.
func (s *Server) handleClear(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ClearInput,
) (*mcp.CallToolResult, ClearOutput, error) {
	if err := s.ports.Session.ClearSession(ctx); err != nil {
		return nil, ClearOutput{}, fmt.Errorf("clear failed: %w", err)
	}

	return nil, ClearOutput{Cleared: true}, nil
}
