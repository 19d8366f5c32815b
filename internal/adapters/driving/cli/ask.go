package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/core/domain"
)

var askJSON bool

// askCmd represents the ask command.
var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask one question about the loaded documents",
	Long: `Sends a single question to the server and prints the answer.

The server must already hold uploaded documents; run 'ragchat upload'
first or use the interactive UI. Server status is probed before the
question is sent.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the answer as JSON")
	rootCmd.AddCommand(askCmd)
}

// askOutput mirrors the server's chat reply fields.
type askOutput struct {
	Answer       string   `json:"answer"`
	ResponseTime *float64 `json:"response_time,omitempty"`
	Context      []string `json:"context,omitempty"`
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := args[0]

	if sessionService == nil || chatService == nil {
		return errors.New("chat service not configured")
	}

	ctx := cmd.Context()

	// One-shot runs start with no local session state; the probe
	// establishes whether the server holds documents
	if _, err := sessionService.RefreshStatus(ctx); err != nil {
		return fmt.Errorf("cannot reach server: %w", err)
	}

	outcome, err := chatService.Send(ctx, question)
	if err != nil {
		if errors.Is(err, domain.ErrNoDocuments) {
			return errors.New("no documents loaded; run 'ragchat upload' first")
		}
		if errors.Is(err, domain.ErrEmptyMessage) {
			return errors.New("question is empty")
		}
		return err
	}
	if outcome.Failure != nil {
		return fmt.Errorf("ask failed: %w", outcome.Failure)
	}

	if askJSON {
		return outputAskJSON(cmd, outcome.Reply)
	}

	cmd.Println(outcome.Reply.Answer)
	return nil
}

func outputAskJSON(cmd *cobra.Command, reply domain.ChatReply) error {
	out := askOutput{
		Answer:       reply.Answer,
		ResponseTime: reply.ResponseTime,
		Context:      reply.Context,
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal answer: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
