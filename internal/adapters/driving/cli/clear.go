package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// clearCmd represents the clear command.
var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the server's conversation memory",
	Long: `Asks the server to forget the current conversation.

Uploaded documents stay loaded; only the chat memory is reset.`,
	RunE: runClear,
}

func init() {
	rootCmd.AddCommand(clearCmd)
}

func runClear(cmd *cobra.Command, _ []string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}

	if err := sessionService.ClearSession(cmd.Context()); err != nil {
		return fmt.Errorf("clear failed: %w", err)
	}

	cmd.Println("Conversation cleared.")
	return nil
}
