package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// statusCmd represents the status command.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show server status",
	Long:  `Asks the server whether documents are loaded and prints its self-reported state.`,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}

	status, err := sessionService.RefreshStatus(cmd.Context())
	if err != nil {
		return fmt.Errorf("cannot reach server: %w", err)
	}

	cmd.Println("Server Status")
	cmd.Println("=============")
	cmd.Printf("  Documents loaded: %s\n", yesNo(status.DocumentsLoaded))
	cmd.Printf("  Chat memory:      %s\n", connected(status.RedisConnected))
	if status.UploadFolder != "" {
		cmd.Printf("  Upload folder:    %s\n", status.UploadFolder)
	}
	if len(status.AllowedExtensions) > 0 {
		cmd.Printf("  Accepted types:   %s\n", strings.Join(status.AllowedExtensions, ", "))
	}

	if !status.DocumentsLoaded {
		cmd.Println()
		cmd.Println("Upload documents with 'ragchat upload' or the chat UI.")
	}

	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func connected(b bool) string {
	if b {
		return "connected"
	}
	return "not connected"
}
