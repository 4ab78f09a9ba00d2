package handler

import (
	"context"
	"fmt"

	"wordreader/internal/domain"
	"wordreader/internal/speech"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Sender is the part of *tele.Bot the chat engine needs
type Sender interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

// ChatEngine speaks into a Telegram chat. When the base engine can
// synthesize audio each utterance is sent as an audio message, otherwise
// the text is sent with a speaker mark.
type ChatEngine struct {
	sender Sender
	chat   tele.Recipient
	base   speech.Engine
	logger *zap.Logger
}

// NewChatEngine creates an engine delivering to chat
func NewChatEngine(sender Sender, chat tele.Recipient, base speech.Engine, logger *zap.Logger) *ChatEngine {
	return &ChatEngine{sender: sender, chat: chat, base: base, logger: logger}
}

// Name returns the backend name
func (e *ChatEngine) Name() string {
	return "telegram+" + e.base.Name()
}

// Voices returns the voices of the base engine
func (e *ChatEngine) Voices(ctx context.Context) ([]domain.Voice, error) {
	return e.base.Voices(ctx)
}

// Speak delivers one utterance. It returns once Telegram accepted it.
func (e *ChatEngine) Speak(ctx context.Context, u speech.Utterance) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	what, err := e.message(ctx, u)
	if err != nil {
		return err
	}

	if _, err := e.sender.Send(e.chat, what); err != nil {
		e.logger.Error("Failed to deliver utterance",
			zap.String("chat", e.chat.Recipient()),
			zap.String("lang", u.Lang),
			zap.Error(err),
		)
		return fmt.Errorf("send utterance: %w", err)
	}
	return nil
}

func (e *ChatEngine) message(ctx context.Context, u speech.Utterance) (interface{}, error) {
	synth, ok := e.base.(speech.Synthesizer)
	if !ok {
		return fmt.Sprintf("🔊 %s", u.Text), nil
	}

	audio, err := synth.Synthesize(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("synthesize %q: %w", u.Text, err)
	}
	return &tele.Audio{
		File:     tele.FromReader(audio),
		Title:    u.Text,
		FileName: "utterance.wav",
		MIME:     "audio/wav",
		Caption:  fmt.Sprintf("%s (%s)", u.Text, u.Lang),
	}, nil
}
