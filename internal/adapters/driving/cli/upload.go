package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/logger"
)

// uploadCmd represents the upload command.
var uploadCmd = &cobra.Command{
	Use:   "upload [files...]",
	Short: "Upload documents to the server",
	Long: `Validates and uploads PDF or TXT documents in one request.

Any previous server session is cleared first, so each upload starts a
fresh conversation over the new corpus. Unsupported types and files
over 16MB are rejected client-side before any network traffic.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runUpload,
}

func init() {
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	if stagingService == nil || uploadService == nil {
		return errors.New("upload service not configured")
	}

	result := stagingService.Stage(args)
	for i := range result.Rejected {
		cmd.Printf("Skipped: %s\n", result.Rejected[i].Notice())
	}
	if len(result.Accepted) == 0 {
		return errors.New("no uploadable files")
	}

	cmd.Printf("Uploading %d file(s)...\n", len(result.Accepted))

	outcome, err := uploadService.UploadStaged(cmd.Context())
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}
	if outcome.ClearErr != nil {
		logger.Warn("pre-upload session clear failed: %v", outcome.ClearErr)
	}

	if outcome.Receipt.Message != "" {
		cmd.Println(outcome.Receipt.Message)
	} else {
		cmd.Println("Upload complete.")
	}
	for _, name := range outcome.Receipt.Files {
		cmd.Printf("  %s\n", name)
	}
	cmd.Println()
	cmd.Println("Ask away with 'ragchat ask' or 'ragchat chat'.")

	return nil
}
