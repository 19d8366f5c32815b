// Command ragchat is a terminal client for a document-chat server.
//
// This is the composition root: it builds the driven adapters, wires
// the core services, and hands them to the CLI driving adapter.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/adapters/driven/backend/ragserver"
	configfile "github.com/Aryan2005-unq/RAG-based-chatbot/internal/adapters/driven/config/file"
	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/adapters/driven/storage/memory"
	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/adapters/driven/storage/sqlite"
	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/adapters/driven/watch"
	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/adapters/driving/cli"
	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/core/ports/driven"
	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/core/services"
	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/logger"
)

// version is stamped at release time via ldflags.
var version = "dev"

// transcriptStore is kept for teardown after Execute returns.
var transcriptStore driven.TranscriptStore

func main() {
	cli.SetVersion(version)

	// Services are wired after flag parsing so --server, --verbose and
	// --no-archive can take part in configuration.
	cobra.OnInitialize(wire)

	err := cli.Execute()

	if transcriptStore != nil {
		transcriptStore.Close() //nolint:errcheck
	}
	logger.Close() //nolint:errcheck

	if err != nil {
		os.Exit(1)
	}
}

// wire builds the adapter and service graph. Any failure here leaves
// the client unusable, so it aborts the process.
func wire() {
	if err := buildServices(); err != nil {
		fmt.Fprintf(os.Stderr, "ragchat: %v\n", err)
		os.Exit(1)
	}
}

func buildServices() error {
	configStore, err := configfile.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}

	settings := services.NewSettingsService(configStore)
	cfg, err := settings.Get()
	if err != nil {
		return fmt.Errorf("reading settings: %w", err)
	}

	serverURL := resolveServerURL(cfg.ServerURL, os.Getenv("RAGCHAT_SERVER"), cli.ServerOverride())

	if err := logger.Init(logger.Config{
		Level:   cfg.LogLevel,
		File:    logger.DefaultPath(),
		Console: cli.Verbose(),
	}); err != nil {
		return fmt.Errorf("initialising logger: %w", err)
	}

	backend := ragserver.NewClient(ragserver.Config{
		BaseURL:       serverURL,
		Timeout:       cfg.RequestTimeout,
		UploadTimeout: cfg.UploadTimeout,
	})

	session := services.NewSessionService(backend)
	staging := services.NewStagingService()
	upload := services.NewUploadService(backend, session, staging)
	transcripts := buildTranscripts(cfg.ArchiveEnabled, cfg.DataDir)
	session.SetTranscripts(transcripts)
	chat := services.NewChatService(backend, session, transcripts)

	logger.Info("ragchat %s starting, server %s", version, serverURL)

	cli.SetServices(cli.Services{
		Session:     session,
		Staging:     staging,
		Upload:      upload,
		Chat:        chat,
		Transcripts: transcripts,
		Settings:    settings,
		NewWatcher:  newDirWatcher,
	})

	return nil
}

// buildTranscripts picks the archive backing: SQLite when enabled, an
// in-memory store for --no-archive runs, nil when switched off in the
// config. SQLite failures degrade to memory so a broken archive never
// blocks chat.
func buildTranscripts(enabled bool, dataDir string) *services.TranscriptService {
	if cli.NoArchive() {
		transcriptStore = memory.NewTranscriptStore()
		return services.NewTranscriptService(transcriptStore)
	}
	if !enabled {
		return nil
	}

	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		logger.Warn("transcript archive unavailable: %v", err)
		transcriptStore = memory.NewTranscriptStore()
		return services.NewTranscriptService(transcriptStore)
	}

	transcriptStore = store
	return services.NewTranscriptService(store)
}

// resolveServerURL applies the override chain for the backend URL:
// config file, then the RAGCHAT_SERVER environment variable, then the
// --server flag.
func resolveServerURL(configured, env, flag string) string {
	url := configured
	if env != "" {
		url = env
	}
	if flag != "" {
		url = flag
	}
	return url
}

func newDirWatcher(dir string) (driven.StagingWatcher, error) {
	return watch.NewDirWatcher(watch.Config{Dir: dir})
}
