package messages

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/core/domain"
)

// TestViewType_String tests all ViewType string representations
func TestViewType_String(t *testing.T) {
	tests := []struct {
		name     string
		view     ViewType
		expected string
	}{
		{"ViewStage", ViewStage, "stage"},
		{"ViewChat", ViewChat, "chat"},
		{"ViewHelp", ViewHelp, "help"},
		{"UnknownView", ViewType(99), "unknown"},
		{"NegativeView", ViewType(-1), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.view.String())
		})
	}
}

func TestSessionStarted(t *testing.T) {
	t.Run("clear failure does not taint the probe", func(t *testing.T) {
		msg := SessionStarted{
			ClearErr: errors.New("connection refused"),
			Status:   domain.ServerStatus{DocumentsLoaded: true},
			Err:      nil,
		}

		assert.Error(t, msg.ClearErr)
		assert.NoError(t, msg.Err)
		assert.True(t, msg.Status.DocumentsLoaded)
	})

	t.Run("probe failure", func(t *testing.T) {
		msg := SessionStarted{Err: errors.New("status failed")}
		assert.Error(t, msg.Err)
	})
}

func TestFilesStaged(t *testing.T) {
	msg := FilesStaged{Result: domain.StageResult{
		Accepted: []domain.StagedFile{{Name: "notes.txt"}},
		Rejected: []domain.Rejection{{Name: "huge.iso", Reason: domain.RejectReasonType}},
	}}

	assert.Len(t, msg.Result.Accepted, 1)
	assert.Len(t, msg.Result.Rejected, 1)
}

func TestExchangeCompleted(t *testing.T) {
	msg := ExchangeCompleted{Outcome: domain.ChatOutcome{
		Render: domain.RenderAppended,
		Messages: []domain.ChatMessage{
			{Sender: domain.SenderBot, Text: "answer"},
		},
	}}

	assert.Equal(t, domain.RenderAppended, msg.Outcome.Render)
	assert.Len(t, msg.Outcome.Messages, 1)
}

func TestErrorOccurred(t *testing.T) {
	err := errors.New("something went wrong")
	msg := ErrorOccurred{Err: err}

	assert.Error(t, msg.Err)
	assert.Equal(t, "something went wrong", msg.Err.Error())
}
