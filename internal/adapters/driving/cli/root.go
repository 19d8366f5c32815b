// Package cli provides the ragchat command line interface.
// It implements a driving adapter following hexagonal architecture
// principles: commands validate input, call core services through
// driving ports, and format output.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/core/ports/driven"
	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/core/ports/driving"
)

// version is the build version, overridden at release time via ldflags.
var version = "dev"

// Injected services. Set through SetServices before Execute; commands
// check for nil so tests can run with a partial set.
var (
	sessionService    driving.SessionService
	stagingService    driving.StagingService
	uploadService     driving.UploadService
	chatService       driving.ChatService
	transcriptService driving.TranscriptService
	settingsService   driving.SettingsService
	newWatcher        func(dir string) (driven.StagingWatcher, error)
)

// Persistent flag values.
var (
	flagServer    string
	flagVerbose   bool
	flagNoArchive bool
)

var rootCmd = &cobra.Command{
	Use:   "ragchat",
	Short: "Chat with your documents from the terminal",
	Long: `ragchat is a terminal client for a document-chat server.

Upload PDF or TXT documents and ask questions about their content.
Run 'ragchat chat' for the interactive UI, or use the one-shot
commands (ask, status, upload, clear) in scripts.`,
	SilenceUsage: true,
}

// Services bundles the core service implementations the commands use.
type Services struct {
	Session     driving.SessionService
	Staging     driving.StagingService
	Upload      driving.UploadService
	Chat        driving.ChatService
	Transcripts driving.TranscriptService
	Settings    driving.SettingsService

	// NewWatcher builds the drop-folder watcher for the chat command.
	// Optional; when nil the --watch flag reports an error.
	NewWatcher func(dir string) (driven.StagingWatcher, error)
}

// SetServices injects the service implementations used by the commands.
func SetServices(s Services) {
	sessionService = s.Session
	stagingService = s.Staging
	uploadService = s.Upload
	chatService = s.Chat
	transcriptService = s.Transcripts
	settingsService = s.Settings
	newWatcher = s.NewWatcher
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagServer, "server", "",
		"backend base URL (overrides config and RAGCHAT_SERVER)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false,
		"also log to the terminal")
	rootCmd.PersistentFlags().BoolVar(&flagNoArchive, "no-archive", false,
		"keep no local transcript archive for this run")
}

// ServerOverride returns the --server flag value, empty when unset.
func ServerOverride() string {
	return flagServer
}

// Verbose reports whether --verbose was given.
func Verbose() bool {
	return flagVerbose
}

// NoArchive reports whether --no-archive was given.
func NoArchive() bool {
	return flagNoArchive
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
