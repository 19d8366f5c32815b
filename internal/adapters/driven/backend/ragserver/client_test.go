package ragserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/core/domain"
)

func TestNewClientDefaults(t *testing.T) {
	client := NewClient(Config{})
	assert.Equal(t, domain.DefaultServerURL, client.baseURL)

	client = NewClient(Config{BaseURL: "http://example.com:5000/"})
	assert.Equal(t, "http://example.com:5000", client.baseURL)
}

func TestClientStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/status", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"documents_loaded": true,
			"redis_connected": false,
			"upload_folder": "uploads",
			"allowed_extensions": ["pdf", "txt"]
		}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})

	status, err := client.Status(context.Background())
	require.NoError(t, err)
	assert.True(t, status.DocumentsLoaded)
	assert.False(t, status.RedisConnected)
	assert.Equal(t, "uploads", status.UploadFolder)
	assert.Equal(t, []string{"pdf", "txt"}, status.AllowedExtensions)
}

func TestClientStatusServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": "redis unavailable"}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})

	_, err := client.Status(context.Background())
	require.Error(t, err)

	var serverErr *domain.ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, http.StatusInternalServerError, serverErr.StatusCode)
	assert.Equal(t, "redis unavailable", serverErr.Message)
}

// writeUploadFile creates a small file for upload tests and returns
// its staged form.
func writeUploadFile(t *testing.T, dir, name, content string, fileType domain.FileType) domain.StagedFile {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return domain.StagedFile{
		Name:      name,
		Path:      path,
		Type:      fileType,
		SizeBytes: int64(len(content)),
	}
}

func TestClientUpload(t *testing.T) {
	dir := t.TempDir()
	files := []domain.StagedFile{
		writeUploadFile(t, dir, "report.pdf", "%PDF-1.4 fake", domain.FileTypePDF),
		writeUploadFile(t, dir, "notes.txt", "plain notes", domain.FileTypeText),
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/upload", r.URL.Path)

		require.NoError(t, r.ParseMultipartForm(32<<20))
		parts := r.MultipartForm.File["files"]
		require.Len(t, parts, 2)

		assert.Equal(t, "report.pdf", parts[0].Filename)
		assert.Equal(t, "application/pdf", parts[0].Header.Get("Content-Type"))
		assert.Equal(t, "notes.txt", parts[1].Filename)
		assert.Equal(t, "text/plain", parts[1].Header.Get("Content-Type"))

		part, err := parts[1].Open()
		require.NoError(t, err)
		defer part.Close()
		content, err := io.ReadAll(part)
		require.NoError(t, err)
		assert.Equal(t, "plain notes", string(content))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"message": "Successfully processed 2 files",
			"files": ["report.pdf", "notes.txt"]
		}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})

	receipt, err := client.Upload(context.Background(), files)
	require.NoError(t, err)
	assert.Equal(t, "Successfully processed 2 files", receipt.Message)
	assert.Equal(t, []string{"report.pdf", "notes.txt"}, receipt.Files)
}

func TestClientUploadServerError(t *testing.T) {
	dir := t.TempDir()
	files := []domain.StagedFile{
		writeUploadFile(t, dir, "notes.txt", "plain notes", domain.FileTypeText),
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": "Failed to process documents"}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})

	_, err := client.Upload(context.Background(), files)
	require.Error(t, err)

	var serverErr *domain.ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, "Failed to process documents", serverErr.Message)
}

func TestClientUploadMissingFile(t *testing.T) {
	files := []domain.StagedFile{
		{Name: "gone.txt", Path: "/nonexistent/gone.txt", Type: domain.FileTypeText},
	}

	client := NewClient(Config{BaseURL: "http://localhost:1"})

	_, err := client.Upload(context.Background(), files)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gone.txt")
}

func TestClientChat(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "What is the refund policy?", req.Message)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"answer": "Refunds are processed within 14 days.",
			"response_time": 1.42,
			"context": ["Refunds are processed within 14 days of the request."],
			"chat_history": ["What is the refund policy?", "Refunds are processed within 14 days."]
		}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})

	reply, err := client.Chat(context.Background(), "What is the refund policy?")
	require.NoError(t, err)
	assert.Equal(t, "Refunds are processed within 14 days.", reply.Answer)
	require.NotNil(t, reply.ResponseTime)
	assert.InDelta(t, 1.42, *reply.ResponseTime, 0.001)
	assert.Len(t, reply.Context, 1)
	assert.Equal(t, []string{
		"What is the refund policy?",
		"Refunds are processed within 14 days.",
	}, reply.History)
}

func TestClientChatWithoutHistory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"answer": "Just the answer."}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})

	reply, err := client.Chat(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "Just the answer.", reply.Answer)
	assert.Nil(t, reply.ResponseTime)
	assert.Nil(t, reply.History)
}

func TestClientChatNonJSONError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})

	_, err := client.Chat(context.Background(), "hello")
	require.Error(t, err)

	var serverErr *domain.ServerError
	assert.False(t, errors.As(err, &serverErr))
	assert.Contains(t, err.Error(), "status 502")
}

func TestClientClearSession(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.Equal(t, http.MethodPost, r.Method)

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{}`, string(body))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message": "Session cleared successfully"}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})

	require.NoError(t, client.ClearSession(context.Background()))
	assert.Equal(t, "/clear-session", gotPath)
}

func TestClientCleanup(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message": "Cleanup completed"}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})

	require.NoError(t, client.Cleanup(context.Background()))
	assert.Equal(t, "/cleanup", gotPath)
}

func TestClientCleanupServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": "cleanup failed"}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})

	err := client.Cleanup(context.Background())
	require.Error(t, err)

	var serverErr *domain.ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, "cleanup failed", serverErr.Message)
}

func TestClientTransportError(t *testing.T) {
	// Port 1 is never listening.
	client := NewClient(Config{BaseURL: "http://127.0.0.1:1"})

	_, err := client.Status(context.Background())
	require.Error(t, err)

	var serverErr *domain.ServerError
	assert.False(t, errors.As(err, &serverErr))
}
