// Package ragserver provides the Backend adapter for the document-chat
// HTTP server.
//
// The server exposes five JSON endpoints; upload is the one exception,
// a multipart form carrying every staged file under one repeated field.
// Error bodies share a single shape with the server's own message in an
// error field, which is surfaced verbatim as a domain.ServerError.
package ragserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"strings"
	"time"

	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/core/domain"
	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.Backend = (*Client)(nil)

// Config holds configuration for the backend client.
type Config struct {
	// BaseURL is the server base URL (default: domain.DefaultServerURL).
	BaseURL string

	// Timeout bounds status, chat, and session requests. Zero means no
	// deadline: requests run to completion or transport failure, which
	// is the reference web client behaviour.
	Timeout time.Duration

	// UploadTimeout bounds uploads, which move file content and then
	// wait for server-side ingestion. Zero means no deadline.
	UploadTimeout time.Duration
}

// Client talks to the document-chat server.
type Client struct {
	client       *http.Client
	uploadClient *http.Client
	baseURL      string
}

// statusResponse is the /status response format.
type statusResponse struct {
	DocumentsLoaded   bool     `json:"documents_loaded"`
	RedisConnected    bool     `json:"redis_connected"`
	UploadFolder      string   `json:"upload_folder"`
	AllowedExtensions []string `json:"allowed_extensions"`
}

// uploadResponse is the /upload success response format.
type uploadResponse struct {
	Message string   `json:"message"`
	Files   []string `json:"files"`
}

// chatRequest is the /chat request format.
type chatRequest struct {
	Message string `json:"message"`
}

// chatResponse is the /chat response format. ResponseTime, History,
// and Context are omitted by some server versions; History must stay
// nil when absent so the caller can tell "no history" from "empty".
type chatResponse struct {
	Answer       string   `json:"answer"`
	ResponseTime *float64 `json:"response_time"`
	History      []string `json:"chat_history"`
	Context      []string `json:"context"`
}

// errorResponse is the error body shape shared by all endpoints.
type errorResponse struct {
	Error string `json:"error"`
}

// NewClient creates a new backend client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = domain.DefaultServerURL
	}

	return &Client{
		client:       &http.Client{Timeout: cfg.Timeout},
		uploadClient: &http.Client{Timeout: cfg.UploadTimeout},
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
	}
}

// Status reports the server's self-described state.
func (c *Client) Status(ctx context.Context) (domain.ServerStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/status", http.NoBody)
	if err != nil {
		return domain.ServerStatus{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return domain.ServerStatus{}, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if !is2xx(resp.StatusCode) {
		return domain.ServerStatus{}, responseError(resp)
	}

	var status statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return domain.ServerStatus{}, fmt.Errorf("decode response: %w", err)
	}

	return domain.ServerStatus{
		DocumentsLoaded:   status.DocumentsLoaded,
		RedisConnected:    status.RedisConnected,
		UploadFolder:      status.UploadFolder,
		AllowedExtensions: status.AllowedExtensions,
	}, nil
}

// Upload submits the files as a single multipart request, reading each
// file's content from disk at send time.
func (c *Client) Upload(ctx context.Context, files []domain.StagedFile) (domain.UploadReceipt, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for _, f := range files {
		if err := writeFilePart(writer, f); err != nil {
			return domain.UploadReceipt{}, err
		}
	}
	if err := writer.Close(); err != nil {
		return domain.UploadReceipt{}, fmt.Errorf("close multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", &body)
	if err != nil {
		return domain.UploadReceipt{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.uploadClient.Do(req)
	if err != nil {
		return domain.UploadReceipt{}, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if !is2xx(resp.StatusCode) {
		return domain.UploadReceipt{}, responseError(resp)
	}

	var upload uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&upload); err != nil {
		return domain.UploadReceipt{}, fmt.Errorf("decode response: %w", err)
	}

	return domain.UploadReceipt{
		Message: upload.Message,
		Files:   upload.Files,
	}, nil
}

// Chat sends one user message and returns the server's reply.
func (c *Client) Chat(ctx context.Context, message string) (domain.ChatReply, error) {
	jsonBody, err := json.Marshal(chatRequest{Message: message})
	if err != nil {
		return domain.ChatReply{}, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat", bytes.NewReader(jsonBody))
	if err != nil {
		return domain.ChatReply{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return domain.ChatReply{}, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if !is2xx(resp.StatusCode) {
		return domain.ChatReply{}, responseError(resp)
	}

	var chat chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chat); err != nil {
		return domain.ChatReply{}, fmt.Errorf("decode response: %w", err)
	}

	return domain.ChatReply{
		Answer:       chat.Answer,
		ResponseTime: chat.ResponseTime,
		History:      chat.History,
		Context:      chat.Context,
	}, nil
}

// ClearSession asks the server to forget its conversation memory.
func (c *Client) ClearSession(ctx context.Context) error {
	return c.post(ctx, "/clear-session")
}

// Cleanup asks the server to delete uploaded documents and session state.
func (c *Client) Cleanup(ctx context.Context) error {
	return c.post(ctx, "/cleanup")
}

// post sends an empty JSON object to the given path.
func (c *Client) post(ctx context.Context, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader("{}"))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if !is2xx(resp.StatusCode) {
		return responseError(resp)
	}

	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// quoteEscaper escapes names for Content-Disposition headers.
var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// writeFilePart adds one file to the multipart body under the repeated
// form field the server expects, with the document's real MIME type.
func writeFilePart(writer *multipart.Writer, f domain.StagedFile) error {
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="files"; filename="%s"`, quoteEscaper.Replace(f.Name)))
	header.Set("Content-Type", f.Type.String())

	part, err := writer.CreatePart(header)
	if err != nil {
		return fmt.Errorf("create part for %s: %w", f.Name, err)
	}

	file, err := os.Open(f.Path)
	if err != nil {
		return fmt.Errorf("open %s: %w", f.Name, err)
	}
	defer file.Close()

	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("read %s: %w", f.Name, err)
	}
	return nil
}

// is2xx reports whether the status counts as success on this wire.
func is2xx(status int) bool {
	return status >= http.StatusOK && status < http.StatusMultipleChoices
}

// responseError turns a non-2xx response into an error. Bodies carrying
// the server's error field become a domain.ServerError whose message is
// shown to the user verbatim; anything else keeps the raw body for the
// log and is presented with generic wording.
func responseError(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("server error (status %d): failed to read response", resp.StatusCode)
	}

	var errResp errorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &domain.ServerError{StatusCode: resp.StatusCode, Message: errResp.Error}
	}
	return fmt.Errorf("server error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
}
