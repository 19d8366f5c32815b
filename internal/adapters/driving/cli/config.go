package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/core/domain"
)

// configCmd represents the config command.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage ragchat configuration",
	Long:  `View and change configuration stored in the config file.`,
	RunE:  runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Long: `Sets one configuration key.

Keys:
  server.url              Backend base URL
  server.request_timeout  Timeout for status/chat/session calls (e.g. 30s, 0s = none)
  server.upload_timeout   Timeout for uploads (e.g. 5m, 0s = none)
  staging.watch_dir       Drop folder staged automatically by the chat UI
  archive.enabled         Keep a local transcript archive (true/false)
  archive.data_dir        Where the archive lives
  log.level               debug, info, warn or error`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get configuration: %w", err)
	}

	cmd.Println("Current Configuration")
	cmd.Println("=====================")
	cmd.Println()

	cmd.Println("[Server]")
	cmd.Printf("  URL:             %s\n", settings.ServerURL)
	cmd.Printf("  Request timeout: %s\n", timeoutText(settings.RequestTimeout))
	cmd.Printf("  Upload timeout:  %s\n", timeoutText(settings.UploadTimeout))
	cmd.Println()

	cmd.Println("[Staging]")
	if settings.WatchDir != "" {
		cmd.Printf("  Watch folder: %s\n", settings.WatchDir)
	} else {
		cmd.Printf("  Watch folder: (none)\n")
	}
	cmd.Println()

	cmd.Println("[Archive]")
	cmd.Printf("  Enabled: %s\n", yesNo(settings.ArchiveEnabled))
	if settings.ArchiveEnabled {
		dataDir := settings.DataDir
		if dataDir == "" {
			dataDir = "(default)"
		}
		cmd.Printf("  Data dir: %s\n", dataDir)
	}
	cmd.Println()

	cmd.Println("[Log]")
	cmd.Printf("  Level: %s\n", settings.LogLevel)
	cmd.Println()

	cmd.Printf("Config file: %s\n", settingsService.Path())
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return fmt.Errorf("%w\nKeys: %s", err, strings.Join(settingsService.Keys(), ", "))
		}
		return err
	}

	cmd.Printf("Set %s = %s\n", key, value)
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	cmd.Println(settingsService.Path())
	return nil
}

// timeoutText renders a timeout; zero means requests wait for the
// server like the web client does.
func timeoutText(d time.Duration) string {
	if d == 0 {
		return "none"
	}
	return d.String()
}
