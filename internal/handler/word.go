package handler

import (
	"fmt"
	"strings"

	"wordreader/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleText handles all text messages based on chat state
func (h *Handler) handleText(c tele.Context) error {
	chatID := c.Chat().ID
	text := strings.TrimSpace(c.Text())

	// Unknown commands fall through to OnText
	if strings.HasPrefix(text, "/") {
		return c.Send("Unknown command. Send /help for the list.")
	}

	state := h.GetState(chatID)

	switch state.State {
	case domain.StateWaitingTarget:
		return h.handleWaitingTarget(c, state, text)
	case domain.StateWaitingImport:
		return h.handleWaitingImport(c, text)
	default:
		return h.handleWaitingSource(c, text)
	}
}

// handleWaitingSource stores the first cell of a new row
func (h *Handler) handleWaitingSource(c tele.Context, text string) error {
	chatID := c.Chat().ID

	if text == "" {
		return c.Send("Word cannot be empty. Please try again:")
	}

	h.SetState(chatID, &domain.StateData{
		State:         domain.StateWaitingTarget,
		CurrentSource: text,
	})

	h.logger.Debug("Source word received",
		zap.Int64("chat_id", chatID),
		zap.String("word", text),
	)

	return c.Send(fmt.Sprintf("Now send the translation of «%s» (or /cancel):", text))
}

// handleWaitingTarget completes the row started by handleWaitingSource
func (h *Handler) handleWaitingTarget(c tele.Context, state *domain.StateData, text string) error {
	chatID := c.Chat().ID
	ws := h.workspace(c)

	row, err := ws.AddPair(state.CurrentSource, text)
	if err != nil {
		return c.Send(err.Error() + ". Please try again:")
	}

	h.logger.Info("Word pair added",
		zap.Int64("chat_id", chatID),
		zap.Int("row", row),
	)

	h.SetState(chatID, &domain.StateData{State: domain.StateWaitingSource})

	msg := fmt.Sprintf("✅ Row %d: %s — %s\n\nSend the next word:", row, state.CurrentSource, text)
	return c.Send(msg, mainMenuMarkup())
}

// handleWaitingImport appends the rows of a pasted export
func (h *Handler) handleWaitingImport(c tele.Context, text string) error {
	h.ResetState(c.Chat().ID)
	return h.importText(c, text)
}

// handleCancel drops a half-entered row or a pending import
func (h *Handler) handleCancel(c tele.Context) error {
	h.SetState(c.Chat().ID, &domain.StateData{State: domain.StateWaitingSource})
	return c.Send("Cancelled. Send a word to start a new row.", mainMenuMarkup())
}
