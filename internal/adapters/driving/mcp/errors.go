// Package mcp provides an MCP (Model Context Protocol) server adapter for ragchat.
// It enables AI assistants like Claude to chat with the uploaded documents.
package mcp

import "errors"

var (
	// ErrMissingSessionService is returned when the session service is not provided.
	ErrMissingSessionService = errors.New("mcp: session service is required")

	// ErrMissingChatService is returned when the chat service is not provided.
	ErrMissingChatService = errors.New("mcp: chat service is required")
)
