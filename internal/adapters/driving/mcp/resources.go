package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for ragchat resources.
	uriScheme = "ragchat://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for listing archived conversations.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "transcripts",
		Name:        "transcripts",
		Description: "List of archived conversations",
		MIMEType:    "application/json",
	}, s.handleTranscriptsResource)

	// Template for a single conversation.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "transcripts/{transcriptId}",
		Name:        "transcript",
		Description: "Messages of one archived conversation",
		MIMEType:    "application/json",
	}, s.handleTranscriptResource)
}

// handleTranscriptsResource returns the list of archived conversations.
func (s *Server) handleTranscriptsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Transcripts == nil {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     "[]",
			}},
		}, nil
	}

	transcripts, err := s.ports.Transcripts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing transcripts: %w", err)
	}

	// Build simplified transcript list.
	type transcriptInfo struct {
		ID           string    `json:"id"`
		Title        string    `json:"title"`
		StartedAt    time.Time `json:"started_at"`
		MessageCount int       `json:"message_count"`
	}

	infos := make([]transcriptInfo, len(transcripts))
	for i, tr := range transcripts {
		infos[i] = transcriptInfo{
			ID:           tr.ID,
			Title:        tr.Title,
			StartedAt:    tr.StartedAt,
			MessageCount: tr.MessageCount,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling transcripts: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleTranscriptResource returns one archived conversation with its messages.
func (s *Server) handleTranscriptResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Transcripts == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	// Extract transcriptId from URI: ragchat://transcripts/{transcriptId}
	transcriptID := extractTranscriptID(req.Params.URI)
	if transcriptID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	transcript, msgs, err := s.ports.Transcripts.Get(ctx, transcriptID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("reading transcript: %w", err)
	}

	// Build the conversation payload.
	type messageInfo struct {
		Sender       string    `json:"sender"`
		Text         string    `json:"text"`
		Timestamp    time.Time `json:"timestamp"`
		ResponseTime *float64  `json:"response_time,omitempty"`
	}

	type conversationInfo struct {
		ID        string        `json:"id"`
		Title     string        `json:"title"`
		StartedAt time.Time     `json:"started_at"`
		Messages  []messageInfo `json:"messages"`
	}

	payload := conversationInfo{
		ID:        transcript.ID,
		Title:     transcript.Title,
		StartedAt: transcript.StartedAt,
		Messages:  make([]messageInfo, len(msgs)),
	}
	for i := range msgs {
		payload.Messages[i] = messageInfo{
			Sender:       msgs[i].Sender.String(),
			Text:         msgs[i].Text,
			Timestamp:    msgs[i].Timestamp,
			ResponseTime: msgs[i].ResponseTime,
		}
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling transcript: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractTranscriptID extracts the transcript ID from a URI like
// ragchat://transcripts/{transcriptId}.
func extractTranscriptID(uri string) string {
	const prefix = uriScheme + "transcripts/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	return strings.TrimPrefix(uri, prefix)
}
