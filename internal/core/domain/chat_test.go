package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestHistoryMessages tests conversion of server histories into transcripts
func TestHistoryMessages(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		history     []string
		wantSenders []Sender
	}{
		{
			name:        "empty history",
			history:     nil,
			wantSenders: []Sender{},
		},
		{
			name:        "single entry is a user message",
			history:     []string{"Q1"},
			wantSenders: []Sender{SenderUser},
		},
		{
			name:        "full exchange alternates user first",
			history:     []string{"Q1", "A1", "Q2", "A2"},
			wantSenders: []Sender{SenderUser, SenderBot, SenderUser, SenderBot},
		},
		{
			name:        "odd length ends on a user message",
			history:     []string{"Q1", "A1", "Q2"},
			wantSenders: []Sender{SenderUser, SenderBot, SenderUser},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msgs := HistoryMessages(tt.history, now)
			require.Len(t, msgs, len(tt.wantSenders))
			for i, msg := range msgs {
				assert.Equal(t, tt.wantSenders[i], msg.Sender)
				assert.Equal(t, tt.history[i], msg.Text)
				assert.Equal(t, now, msg.Timestamp)
				assert.Nil(t, msg.ResponseTime)
			}
		})
	}
}

// TestUserMessage_BotMessage tests the message constructors
func TestUserMessage_BotMessage(t *testing.T) {
	now := time.Now()

	user := UserMessage("hello", now)
	assert.Equal(t, SenderUser, user.Sender)
	assert.Equal(t, "hello", user.Text)
	assert.Equal(t, now, user.Timestamp)

	bot := BotMessage("hi there", now)
	assert.Equal(t, SenderBot, bot.Sender)
	assert.Equal(t, "hi there", bot.Text)
}

// TestSender_IsValid tests sender validation
func TestSender_IsValid(t *testing.T) {
	assert.True(t, SenderUser.IsValid())
	assert.True(t, SenderBot.IsValid())
	assert.False(t, Sender("server").IsValid())
	assert.False(t, Sender("").IsValid())
}
