package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/adapters/driving/tui"
	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/logger"
)

var chatWatchDir string

// chatCmd represents the chat command.
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Launch the interactive chat UI",
	Long: `Launch the interactive terminal user interface.

Stage PDF or TXT documents on the documents tab, upload them, then ask
questions on the chat tab. Any previous server session is cleared on
startup so the conversation begins fresh.

Controls:
  tab      - Switch between documents and chat
  a        - Add files (documents tab)
  u        - Upload staged files
  Enter    - Send (chat tab)
  ?        - Toggle help
  q        - Quit (documents tab)`,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().StringVar(&chatWatchDir, "watch", "",
		"stage documents dropped into this folder while the UI is open")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	// Panics inside the UI would otherwise vanish with the alternate
	// screen; print the stack after it is restored
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in chat UI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("chat needs an interactive terminal; use 'ragchat ask' in scripts")
	}

	ports := tui.NewPorts(sessionService, stagingService, uploadService, chatService)

	watchDir := watchDirFor(chatWatchDir)
	if watchDir != "" {
		if newWatcher == nil {
			return errors.New("watch folder support not configured")
		}
		watcher, err := newWatcher(watchDir)
		if err != nil {
			return fmt.Errorf("watch %s: %w", watchDir, err)
		}
		defer watcher.Close()
		ports.Watcher = watcher
		logger.Info("watching drop folder %s", watchDir)
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create chat UI: %w", err)
	}

	app.WithContext(cmd.Context())

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("chat UI error: %w", err)
	}

	return nil
}

// watchDirFor resolves the drop folder: the --watch flag wins, then the
// configured staging.watch_dir, then none.
func watchDirFor(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if settingsService == nil {
		return ""
	}
	settings, err := settingsService.Get()
	if err != nil {
		return ""
	}
	return settings.WatchDir
}
