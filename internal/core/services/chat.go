package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/core/domain"
	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/core/ports/driven"
	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/core/ports/driving"
	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/logger"
)

// Ensure ChatService implements the interface.
var _ driving.ChatService = (*ChatService)(nil)

// connectivityFailureText is rendered as the bot's turn when the
// server cannot be reached or answers without an error message of its
// own. Server-provided error text takes precedence over it.
const connectivityFailureText = "Sorry, I could not reach the server. Please check your connection and try again."

// ChatService conducts the conversation with the loaded documents.
type ChatService struct {
	backend     driven.Backend
	session     *SessionService
	transcripts *TranscriptService
}

// NewChatService creates a new chat service. transcripts may be nil
// when the archive is disabled.
func NewChatService(backend driven.Backend, session *SessionService, transcripts *TranscriptService) *ChatService {
	return &ChatService{
		backend:     backend,
		session:     session,
		transcripts: transcripts,
	}
}

// Post validates the message and appends it to the transcript as the
// user's turn. The timestamp is taken now and never corrected, even
// if the server later reports its own view of the conversation.
func (c *ChatService) Post(text string) (domain.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.ChatMessage{}, domain.ErrEmptyMessage
	}
	if !c.session.DocumentsLoaded() {
		return domain.ChatMessage{}, domain.ErrNoDocuments
	}

	msg := domain.UserMessage(text, time.Now())
	c.session.appendMessage(msg)
	c.record(context.Background(), msg)

	logger.Debug("posted user message (%d chars)", len(text))
	return msg, nil
}

// Exchange sends a previously posted message to the server and
// reconciles the transcript with the reply.
//
// When the reply carries the full conversation, the local transcript
// is rebuilt from it wholesale; the optimistic entry from Post is part
// of what gets replaced. Without one, the answer is appended after it.
// Failures are folded into the transcript as bot messages so the
// conversation records what happened, and the cause is reported in
// the outcome rather than as an error.
func (c *ChatService) Exchange(ctx context.Context, text string) domain.ChatOutcome {
	unlock := c.session.lockOps()
	defer unlock()

	reply, err := c.backend.Chat(ctx, strings.TrimSpace(text))
	if err != nil {
		return c.renderFailure(ctx, err)
	}

	if reply.History != nil {
		msgs := domain.HistoryMessages(reply.History, time.Now())
		c.session.replaceHistory(msgs)
		if err := c.transcripts.Rewrite(ctx, msgs); err != nil {
			logger.Warn("archive rewrite failed: %v", err)
		}
		logger.Debug("reply rebuilt transcript with %d entries", len(msgs))
		return domain.ChatOutcome{
			Render:   domain.RenderReplaced,
			Reply:    reply,
			Messages: msgs,
		}
	}

	msg := domain.BotMessage(reply.Answer, time.Now())
	msg.ResponseTime = reply.ResponseTime
	c.session.appendMessage(msg)
	c.record(ctx, msg)

	logger.Debug("reply appended to transcript")
	return domain.ChatOutcome{
		Render:   domain.RenderAppended,
		Reply:    reply,
		Messages: c.session.History(),
	}
}

// Send is Post followed by Exchange, for one-shot callers.
func (c *ChatService) Send(ctx context.Context, text string) (domain.ChatOutcome, error) {
	if _, err := c.Post(text); err != nil {
		return domain.ChatOutcome{}, err
	}
	return c.Exchange(ctx, text), nil
}

// renderFailure turns a failed round trip into a bot message. The
// optimistic user entry stays; the error becomes part of the
// conversation record instead of a transient notice.
func (c *ChatService) renderFailure(ctx context.Context, err error) domain.ChatOutcome {
	logger.Error(err, "chat request failed")

	text := connectivityFailureText
	var serverErr *domain.ServerError
	if errors.As(err, &serverErr) {
		text = serverErr.Message
	}

	msg := domain.BotMessage(text, time.Now())
	c.session.appendMessage(msg)
	c.record(ctx, msg)

	return domain.ChatOutcome{
		Render:   domain.RenderAppended,
		Messages: c.session.History(),
		Failure:  err,
	}
}

// record archives one message, logging instead of failing: the
// archive is a convenience and never blocks the conversation.
func (c *ChatService) record(ctx context.Context, msg domain.ChatMessage) {
	if err := c.transcripts.Record(ctx, msg); err != nil {
		logger.Warn("archive record failed: %v", err)
	}
}
