package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/core/domain"
)

// historyCmd represents the history command.
var historyCmd = &cobra.Command{
	Use:   "history [transcript-id]",
	Short: "Browse archived conversations",
	Long: `Lists archived conversations, or prints one transcript in full.

The archive lives on this machine and never leaves it. Disable it with
--no-archive or by setting archive.enabled=false.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	if transcriptService == nil {
		return errors.New("transcript service not configured")
	}

	if len(args) == 1 {
		return showTranscript(cmd, args[0])
	}
	return listTranscripts(cmd)
}

func listTranscripts(cmd *cobra.Command) error {
	transcripts, err := transcriptService.List(cmd.Context())
	if err != nil {
		if errors.Is(err, domain.ErrArchiveDisabled) {
			return errors.New("transcript archive is disabled")
		}
		return fmt.Errorf("failed to list conversations: %w", err)
	}

	if len(transcripts) == 0 {
		cmd.Println("No archived conversations.")
		return nil
	}

	cmd.Println("Archived conversations:")
	cmd.Println()
	for i := range transcripts {
		tr := &transcripts[i]
		cmd.Printf("  %s\n", tr.ID)
		cmd.Printf("    Title:    %s\n", tr.Title)
		cmd.Printf("    Started:  %s\n", tr.StartedAt.Format("2006-01-02 15:04:05"))
		cmd.Printf("    Messages: %d\n", tr.MessageCount)
		cmd.Println()
	}

	cmd.Printf("Total: %d conversations\n", len(transcripts))
	return nil
}

func showTranscript(cmd *cobra.Command, id string) error {
	transcript, msgs, err := transcriptService.Get(cmd.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrArchiveDisabled) {
			return errors.New("transcript archive is disabled")
		}
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("no conversation with id %s", id)
		}
		return fmt.Errorf("failed to load conversation: %w", err)
	}

	cmd.Printf("%s\n", transcript.Title)
	cmd.Printf("Started %s\n\n", transcript.StartedAt.Format("2006-01-02 15:04:05"))

	for i := range msgs {
		speaker := "You"
		if msgs[i].Sender == domain.SenderBot {
			speaker = "Assistant"
		}
		cmd.Printf("%s %s: %s\n", msgs[i].Timestamp.Format("15:04"), speaker, msgs[i].Text)
	}

	return nil
}
